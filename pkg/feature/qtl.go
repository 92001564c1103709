package feature

import (
	"sort"

	"github.com/biogo/store/interval"
)

type QTL struct {
	ID       string `json:"qtl_id"`
	Symbol   string `json:"qtl_symbol"`
	Chr      string `json:"chr"`
	StartPos int    `json:"start"`
	EndPos   int    `json:"end"`
}

// Lane places a QTL in one of NumLanes equal horizontal strips of its track.
type Lane struct {
	Lane     int `json:"lane"`
	NumLanes int `json:"num_lanes"`
}

// Overlap is the shared part of two QTLs.
type Overlap struct {
	A, B     string
	StartPos int
	EndPos   int
}

type qtlInterval struct {
	start, end int
	uid        uintptr
}

// Overlap treats both ranges as closed.
func (q qtlInterval) Overlap(b interval.IntRange) bool {
	return q.start <= b.End && b.Start <= q.end
}

func (q qtlInterval) ID() uintptr { return q.uid }

func (q qtlInterval) Range() interval.IntRange {
	return interval.IntRange{Start: q.start, End: q.end}
}

// Overlaps lists every overlapping pair of distinct QTLs. Touching ends
// count as an overlap.
func Overlaps(qtls []QTL) []Overlap {
	tree := &interval.IntTree{}
	for i, q := range qtls {
		if err := tree.Insert(qtlInterval{start: q.StartPos, end: q.EndPos, uid: uintptr(i)}, true); err != nil {
			continue
		}
	}
	tree.AdjustRanges()

	var out []Overlap
	for i, q := range qtls {
		for _, hit := range tree.Get(qtlInterval{start: q.StartPos, end: q.EndPos}) {
			j := int(hit.ID())
			if j <= i || qtls[j].ID == q.ID {
				continue
			}
			first, second := q, qtls[j]
			if second.StartPos < first.StartPos {
				first, second = second, first
			}
			end := first.EndPos
			if second.EndPos < end {
				end = second.EndPos
			}
			out = append(out, Overlap{A: q.ID, B: qtls[j].ID, StartPos: second.StartPos, EndPos: end})
		}
	}
	return out
}

type qtlEvent struct {
	pos  int
	id   string
	kind int
}

// ArrangeQTLs assigns overlapping QTLs to separate lanes. Sweeping left to
// right, a starting QTL takes the lowest free lane. Every QTL in a run of
// overlaps gets the largest lane count seen during that run, so a QTL
// keeps one height along its whole length. At equal positions ends are
// handled before starts. A lone QTL gets the whole track.
func ArrangeQTLs(qtls []QTL) map[string]Lane {
	out := make(map[string]Lane, len(qtls))
	if len(qtls) == 1 {
		out[qtls[0].ID] = Lane{Lane: 0, NumLanes: 1}
		return out
	}

	seen := make(map[string]bool, len(qtls))
	events := make([]qtlEvent, 0, 2*len(qtls))
	for _, q := range qtls {
		if seen[q.ID] {
			continue
		}
		seen[q.ID] = true
		events = append(events,
			qtlEvent{pos: q.StartPos, id: q.ID, kind: 1},
			qtlEvent{pos: q.EndPos, id: q.ID, kind: -1})
	}
	// Overlap points carry no events of their own; the sweep visits them
	// but only starts and ends change lanes.
	for _, o := range Overlaps(qtls) {
		events = append(events, qtlEvent{pos: o.StartPos}, qtlEvent{pos: o.EndPos})
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].pos != events[j].pos {
			return events[i].pos < events[j].pos
		}
		return events[i].kind < events[j].kind
	})

	lanes := []string{""}
	active, maxActive := 0, 0
	var watch []string

	for _, ev := range events {
		switch ev.kind {
		case 1:
			lane := -1
			for i, holder := range lanes {
				if holder == "" {
					lane = i
					break
				}
			}
			if lane < 0 {
				lanes = append(lanes, "")
				lane = len(lanes) - 1
			}
			lanes[lane] = ev.id
			out[ev.id] = Lane{Lane: lane}
			watch = append(watch, ev.id)
		case -1:
			lanes[out[ev.id].Lane] = ""
			for len(lanes) > 1 && lanes[len(lanes)-1] == "" {
				lanes = lanes[:len(lanes)-1]
			}
		default:
			continue
		}

		active += ev.kind
		if active > maxActive {
			maxActive = active
		}
		if active == 0 {
			watch = nil
			maxActive = 0
		} else if ev.kind > 0 {
			for _, id := range watch {
				l := out[id]
				if l.NumLanes < maxActive {
					l.NumLanes = maxActive
					out[id] = l
				}
			}
		}
	}
	return out
}
