package synteny

import "github.com/yumyai/synbrowser/pkg/scale"

// BlockScales maps comparison positions to reference pixels, one linear
// piece per block and one table per orientation.
type BlockScales struct {
	basesToPixels scale.Linear
	blocks        []Block
	tables        [2]map[string]scale.Linear
}

// AnchorLine connects an anchor on the reference track to its partner on
// the comparison track, both in unzoomed pixels.
type AnchorLine struct {
	Block string  `json:"block"`
	RefX  float64 `json:"ref_x"`
	CompX float64 `json:"comp_x"`
}

// NewBlockScales builds both tables. The range of every piece is the block's
// first and last reference anchor in pixels; the domain is the matching
// first and last comparison anchor of that orientation.
func NewBlockScales(blocks []Block, basesToPixels scale.Linear) *BlockScales {
	s := &BlockScales{basesToPixels: basesToPixels, blocks: blocks}

	for _, o := range []Orientation{MatchAnchors, TrueAnchors} {
		t := make(map[string]scale.Linear, len(blocks))
		for _, b := range blocks {
			ref := b.Anchors(o)
			last := ref.Len() - 1
			if last < 0 {
				continue
			}
			t[b.Symbol] = scale.NewLinear(
				float64(ref.Comp[0]), float64(ref.Comp[last]),
				basesToPixels.Map(float64(ref.Ref[0])), basesToPixels.Map(float64(ref.Ref[last])),
			)
		}
		s.tables[o] = t
	}
	return s
}

func (s *BlockScales) Scale(o Orientation, symbol string) (scale.Linear, bool) {
	l, ok := s.tables[o][symbol]
	return l, ok
}

func (s *BlockScales) BasesToPixels() scale.Linear {
	return s.basesToPixels
}

// AnchorLines lists every anchor pair of the given orientation.
func (s *BlockScales) AnchorLines(o Orientation) []AnchorLine {
	var lines []AnchorLine
	for _, b := range s.blocks {
		l, ok := s.tables[o][b.Symbol]
		if !ok {
			continue
		}
		a := b.Anchors(o)
		for i := range a.Ref {
			lines = append(lines, AnchorLine{
				Block: b.Symbol,
				RefX:  s.basesToPixels.Map(float64(a.Ref[i])),
				CompX: l.Map(float64(a.Comp[i])),
			})
		}
	}
	return lines
}
