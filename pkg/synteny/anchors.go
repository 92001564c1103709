package synteny

import "sort"

// HomologPair is a homologous gene pair located on both genomes.
type HomologPair struct {
	RefChr     string `json:"ref_chr"`
	RefStart   int    `json:"ref_start_pos"`
	RefEnd     int    `json:"ref_end_pos"`
	RefStrand  string `json:"ref_strand"`
	CompChr    string `json:"comp_chr"`
	CompStart  int    `json:"comp_start_pos"`
	CompEnd    int    `json:"comp_end_pos"`
	CompStrand string `json:"comp_strand"`
}

func (h HomologPair) SameOrientation() bool {
	return h.RefStrand == h.CompStrand
}

// DeriveAnchors fills in both anchor sets of every block.
//
// A homolog becomes an anchor when its orientation agrees with the block
// and it lies inside the block on both genomes. Match anchors swap the
// comparison ends of inverted homologs; true anchors never swap. The block
// ends are always anchors. When two anchors share a reference position the
// last one wins.
func DeriveAnchors(blocks []Block, homologs []HomologPair) []Block {
	out := make([]Block, len(blocks))
	copy(out, blocks)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RefChr != out[j].RefChr {
			return out[i].RefChr < out[j].RefChr
		}
		return out[i].RefStart < out[j].RefStart
	})

	hs := make([]HomologPair, len(homologs))
	copy(hs, homologs)
	sort.SliceStable(hs, func(i, j int) bool {
		if hs[i].RefChr != hs[j].RefChr {
			return hs[i].RefChr < hs[j].RefChr
		}
		return hs[i].RefStart < hs[j].RefStart
	})

	for bi := range out {
		b := &out[bi]
		match := make(map[int]int)
		truth := make(map[int]int)

		// Blocks may overlap on the reference, so every block scans from
		// its own start.
		first := sort.Search(len(hs), func(i int) bool {
			if hs[i].RefChr != b.RefChr {
				return hs[i].RefChr > b.RefChr
			}
			return hs[i].RefStart >= b.RefStart
		})
		for _, h := range hs[first:] {
			if h.RefChr != b.RefChr || h.RefStart >= b.RefEnd {
				break
			}
			same := h.SameOrientation()
			inside := h.RefEnd <= b.RefEnd && h.CompChr == b.CompChr &&
				h.CompStart >= b.CompStart && h.CompEnd <= b.CompEnd
			if b.OrientationMatch != same || !inside {
				continue
			}

			if same {
				match[h.RefStart] = h.CompStart
				match[h.RefEnd] = h.CompEnd
			} else {
				match[h.RefStart] = h.CompEnd
				match[h.RefEnd] = h.CompStart
			}
			truth[h.RefStart] = h.CompStart
			truth[h.RefEnd] = h.CompEnd
		}

		if b.OrientationMatch {
			match[b.RefStart] = b.CompStart
			match[b.RefEnd] = b.CompEnd
		} else {
			match[b.RefStart] = b.CompEnd
			match[b.RefEnd] = b.CompStart
		}
		truth[b.RefStart] = b.CompStart
		truth[b.RefEnd] = b.CompEnd

		b.Match = sortedAnchors(match)
		b.True = sortedAnchors(truth)
	}
	return out
}

func sortedAnchors(m map[int]int) AnchorPoints {
	refs := make([]int, 0, len(m))
	for r := range m {
		refs = append(refs, r)
	}
	sort.Ints(refs)

	a := AnchorPoints{Ref: refs, Comp: make([]int, len(refs))}
	for i, r := range refs {
		a.Comp[i] = m[r]
	}
	return a
}
