package synteny

import (
	"fmt"
	"math"
	"sort"

	"github.com/biogo/store/interval"

	"github.com/yumyai/synbrowser/pkg/genome"
)

// BlockInfo is the per-block summary used to turn reference positions into
// comparison positions. ScaleToComp is negative when the active anchors
// run backwards on the comparison genome.
type BlockInfo struct {
	Symbol           string  `json:"symbol"`
	StartPos         int     `json:"start_pos"`
	EndPos           int     `json:"end_pos"`
	CompStart        int     `json:"comp_start"`
	CompEnd          int     `json:"comp_end"`
	Chr              string  `json:"chr"`
	OrientationMatch bool    `json:"orientation_match"`
	ScaleToComp      float64 `json:"scale_to_comp"`
}

// CompPos maps a reference position inside the block to the comparison genome.
func (b BlockInfo) CompPos(pos int) int {
	switch pos {
	case b.StartPos:
		return b.CompStart
	case b.EndPos:
		return b.CompEnd
	}
	return b.CompStart + int(math.Round(float64(pos-b.StartPos)*b.ScaleToComp))
}

// Endpoint is a block boundary on the reference axis. LessThan names the
// block that ends here, GreaterThan the block that starts here.
type Endpoint struct {
	Loc         int    `json:"loc"`
	LessThan    string `json:"less_than,omitempty"`
	GreaterThan string `json:"greater_than,omitempty"`
}

// Indicator is one of the two crossing lines drawn over an inverted block.
// From is the reference position on the reference track, To the one on the
// comparison track.
type Indicator struct {
	Block string `json:"block"`
	From  int    `json:"from"`
	To    int    `json:"to"`
}

// CompRange is an interval edge pair resolved into syntenic territory.
type CompRange struct {
	StartBlock string `json:"start_block"`
	EndBlock   string `json:"end_block"`
	RefStart   int    `json:"ref_start"`
	RefEnd     int    `json:"ref_end"`
	StartChr   string `json:"comp_start_chr"`
	CompStart  int    `json:"comp_start"`
	EndChr     string `json:"comp_end_chr"`
	CompEnd    int    `json:"comp_end"`
}

func (c CompRange) StartLabel() string {
	return genome.PositionLabel(c.StartChr, c.CompStart)
}

func (c CompRange) EndLabel() string {
	return genome.PositionLabel(c.EndChr, c.CompEnd)
}

// Table holds everything derived from one orientation's anchors.
type Table struct {
	orientation Orientation
	order       []string
	lookup      map[string]BlockInfo
	asc, desc   []Endpoint
	indicators  []Indicator
}

func newTable(blocks []Block, o Orientation) *Table {
	t := &Table{
		orientation: o,
		order:       make([]string, 0, len(blocks)),
		lookup:      make(map[string]BlockInfo, len(blocks)),
		asc:         make([]Endpoint, 0, 2*len(blocks)),
	}

	for _, b := range blocks {
		a := b.Anchors(o)
		last := a.Len() - 1
		info := BlockInfo{
			Symbol:           b.Symbol,
			StartPos:         a.Ref[0],
			EndPos:           a.Ref[last],
			CompStart:        a.Comp[0],
			CompEnd:          a.Comp[last],
			Chr:              b.CompChr,
			OrientationMatch: b.OrientationMatch,
		}
		if size := info.EndPos - info.StartPos; size != 0 {
			info.ScaleToComp = float64(info.CompEnd-info.CompStart) / float64(size)
		}

		t.order = append(t.order, b.Symbol)
		t.lookup[b.Symbol] = info
		t.asc = append(t.asc,
			Endpoint{Loc: info.StartPos, GreaterThan: b.Symbol},
			Endpoint{Loc: info.EndPos, LessThan: b.Symbol})

		if o == MatchAnchors && !b.OrientationMatch {
			t.indicators = append(t.indicators,
				Indicator{Block: b.Symbol, From: info.StartPos, To: info.EndPos},
				Indicator{Block: b.Symbol, From: info.EndPos, To: info.StartPos})
		}
	}

	// Where one block ends and the next starts at the same base, the end
	// sorts first so the descending list sees the start first.
	sort.SliceStable(t.asc, func(i, j int) bool {
		if t.asc[i].Loc != t.asc[j].Loc {
			return t.asc[i].Loc < t.asc[j].Loc
		}
		return t.asc[i].LessThan != "" && t.asc[j].LessThan == ""
	})

	t.desc = make([]Endpoint, len(t.asc))
	for i, e := range t.asc {
		t.desc[len(t.asc)-1-i] = e
	}
	return t
}

func (t *Table) Orientation() Orientation {
	return t.orientation
}

func (t *Table) Lookup(symbol string) (BlockInfo, bool) {
	b, ok := t.lookup[symbol]
	return b, ok
}

// Blocks returns the block summaries in load order.
func (t *Table) Blocks() []BlockInfo {
	out := make([]BlockInfo, 0, len(t.order))
	for _, s := range t.order {
		out = append(out, t.lookup[s])
	}
	return out
}

func (t *Table) Ascending() []Endpoint {
	return t.asc
}

func (t *Table) Descending() []Endpoint {
	return t.desc
}

// Indicators is empty for the true orientation.
func (t *Table) Indicators() []Indicator {
	return t.indicators
}

// ComparisonCoordinates resolves both edges of iv into syntenic territory.
// An edge inside a block keeps its position; an edge in a gap snaps to the
// nearest boundary of the block on the inner side. The result is only
// valid when the resolved start lies before the resolved end.
func (t *Table) ComparisonCoordinates(iv genome.Interval) (CompRange, bool) {
	if len(t.asc) == 0 {
		return CompRange{}, false
	}

	var r CompRange

	endFound := false
	for i, p := range t.asc {
		if iv.EndPos > p.Loc {
			continue
		}
		if p.LessThan != "" {
			r.RefEnd, r.EndBlock = iv.EndPos, p.LessThan
		} else if i > 0 {
			r.RefEnd, r.EndBlock = t.asc[i-1].Loc, t.asc[i-1].LessThan
		}
		endFound = true
		break
	}
	if !endFound {
		r.RefEnd, r.EndBlock = t.desc[0].Loc, t.desc[0].LessThan
	}

	startFound := false
	for i, p := range t.desc {
		if iv.StartPos < p.Loc {
			continue
		}
		if p.GreaterThan != "" {
			r.RefStart, r.StartBlock = iv.StartPos, p.GreaterThan
		} else if i > 0 {
			r.RefStart, r.StartBlock = t.desc[i-1].Loc, t.desc[i-1].GreaterThan
		}
		startFound = true
		break
	}
	if !startFound {
		r.RefStart, r.StartBlock = t.asc[0].Loc, t.asc[0].GreaterThan
	}

	startInfo, okStart := t.lookup[r.StartBlock]
	endInfo, okEnd := t.lookup[r.EndBlock]
	if !okStart || !okEnd || r.RefStart >= r.RefEnd {
		return CompRange{}, false
	}

	r.StartChr, r.CompStart = startInfo.Chr, startInfo.CompPos(r.RefStart)
	r.EndChr, r.CompEnd = endInfo.Chr, endInfo.CompPos(r.RefEnd)
	return r, true
}

// blockInterval is a block on the reference axis, stored half-open.
type blockInterval struct {
	start, end int
	uid        uintptr
}

func (i blockInterval) Overlap(b interval.IntRange) bool {
	return i.end > b.Start && i.start < b.End
}

func (i blockInterval) ID() uintptr {
	return i.uid
}

func (i blockInterval) Range() interval.IntRange {
	return interval.IntRange{Start: i.start, End: i.end}
}

// Index is built once per loaded chromosome and holds both orientation
// tables so that switching orientation does not rebuild anything.
type Index struct {
	blocks []Block
	bySym  map[string]int
	tables [2]*Table
	tree   *interval.IntTree
}

// NewIndex fails with genome.ErrMissingBlockData for an empty block list.
func NewIndex(blocks []Block) (*Index, error) {
	if len(blocks) == 0 {
		return nil, genome.ErrMissingBlockData
	}

	x := &Index{
		blocks: blocks,
		bySym:  make(map[string]int, len(blocks)),
		tree:   &interval.IntTree{},
	}

	for i, b := range blocks {
		if err := b.validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", genome.ErrMissingBlockData, err)
		}
		if _, dup := x.bySym[b.Symbol]; dup {
			return nil, fmt.Errorf("duplicate block symbol %q", b.Symbol)
		}
		x.bySym[b.Symbol] = i

		iv := blockInterval{start: b.RefStart, end: b.RefEnd + 1, uid: uintptr(i)}
		if err := x.tree.Insert(iv, true); err != nil {
			return nil, err
		}
	}
	x.tree.AdjustRanges()

	x.tables[MatchAnchors] = newTable(blocks, MatchAnchors)
	x.tables[TrueAnchors] = newTable(blocks, TrueAnchors)
	return x, nil
}

func (x *Index) Table(o Orientation) *Table {
	return x.tables[o]
}

func (x *Index) Blocks() []Block {
	return x.blocks
}

func (x *Index) Block(symbol string) (Block, bool) {
	i, ok := x.bySym[symbol]
	if !ok {
		return Block{}, false
	}
	return x.blocks[i], true
}

// Overlapping returns the blocks touching the closed reference range
// [start, end], ordered by reference start.
func (x *Index) Overlapping(start, end int) []Block {
	hits := x.tree.Get(blockInterval{start: start, end: end + 1})
	out := make([]Block, 0, len(hits))
	for _, h := range hits {
		out = append(out, x.blocks[h.ID()])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RefStart < out[j].RefStart })
	return out
}

// BlockAt returns the first block containing the reference position.
func (x *Index) BlockAt(pos int) (Block, bool) {
	hits := x.Overlapping(pos, pos)
	if len(hits) == 0 {
		return Block{}, false
	}
	return hits[0], true
}
