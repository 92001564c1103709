package browser

import (
	"math"

	"github.com/dustin/go-humanize"

	"github.com/yumyai/synbrowser/pkg/feature"
	"github.com/yumyai/synbrowser/pkg/genome"
	"github.com/yumyai/synbrowser/pkg/synteny"
)

// MinWidthForLabels is the on-screen width a block needs before its
// boundaries get coordinate labels: two labels of about twenty characters
// at five pixels each.
const MinWidthForLabels = 200.0

// X places a reference position in the viewport.
func (b *Browser) X(pos int) float64 {
	return b.view.X(float64(pos))
}

// SpanWidth is the on-screen width of a reference span.
func (b *Browser) SpanWidth(start, end int) float64 {
	return b.view.Span(float64(start), float64(end))
}

func (b *Browser) compScale(blockID string) (func(int) float64, bool) {
	s, ok := b.scales.Scale(b.orientation, blockID)
	if !ok {
		return nil, false
	}
	return func(pos int) float64 { return b.view.Apply(s.Map(float64(pos))) }, true
}

// ScaledX places a comparison gene through the scale of its block. Under
// match anchors a gene on the opposite strand starts at its end.
func (b *Browser) ScaledX(g feature.ComparisonGene) (float64, bool) {
	s, ok := b.compScale(g.BlockID)
	if !ok {
		return 0, false
	}
	if b.orientation == synteny.MatchAnchors && !g.StrandMatch {
		return s(g.EndPos), true
	}
	return s(g.StartPos), true
}

// ScaledWidth is the signed on-screen width of a comparison gene. A gene
// on the opposite strand is measured from its end, so the result may be
// negative; painters draw its absolute value.
func (b *Browser) ScaledWidth(g feature.ComparisonGene) (float64, bool) {
	s, ok := b.compScale(g.BlockID)
	if !ok {
		return 0, false
	}
	if !g.StrandMatch {
		return s(g.StartPos) - s(g.EndPos), true
	}
	return s(g.EndPos) - s(g.StartPos), true
}

// CoordinateLabels are the four labels at the view edges. Comparison is
// nil when the edges do not resolve into syntenic territory in order.
type CoordinateLabels struct {
	RefStart   string             `json:"ref_start"`
	RefEnd     string             `json:"ref_end"`
	Comparison *synteny.CompRange `json:"comparison,omitempty"`
	CompStart  string             `json:"comp_start,omitempty"`
	CompEnd    string             `json:"comp_end,omitempty"`
}

func (b *Browser) CoordinateLabels() CoordinateLabels {
	iv := b.view.Interval()
	l := CoordinateLabels{
		RefStart: genome.PositionLabel(iv.Chr, iv.StartPos),
		RefEnd:   genome.PositionLabel(iv.Chr, iv.EndPos),
	}
	if r, ok := b.table().ComparisonCoordinates(iv); ok {
		l.Comparison = &r
		l.CompStart = r.StartLabel()
		l.CompEnd = r.EndLabel()
	}
	return l
}

// Line is a segment between the two tracks, in viewport pixels.
type Line struct {
	Block string  `json:"block"`
	X1    float64 `json:"x1"`
	X2    float64 `json:"x2"`
}

// OrientationIndicators are the crossed lines over inverted blocks. There
// are none under true anchors.
func (b *Browser) OrientationIndicators() []Line {
	if b.orientation != synteny.MatchAnchors {
		return nil
	}
	ind := b.table().Indicators()
	out := make([]Line, 0, len(ind))
	for _, i := range ind {
		out = append(out, Line{Block: i.Block, X1: b.X(i.From), X2: b.X(i.To)})
	}
	return out
}

// AnchorLines connect every anchor of the active orientation, in viewport
// pixels. Chr colours the line by comparison chromosome.
type AnchorLine struct {
	Line
	Chr string `json:"chr"`
}

func (b *Browser) AnchorLines() []AnchorLine {
	lines := b.scales.AnchorLines(b.orientation)
	out := make([]AnchorLine, 0, len(lines))
	for _, l := range lines {
		blk, _ := b.index.Block(l.Block)
		out = append(out, AnchorLine{
			Line: Line{Block: l.Block, X1: b.view.Apply(l.RefX), X2: b.view.Apply(l.CompX)},
			Chr:  blk.CompChr,
		})
	}
	return out
}

// BlockView is a syntenic block on either track.
type BlockView struct {
	Symbol           string  `json:"symbol"`
	Chr              string  `json:"chr"`
	X                float64 `json:"x"`
	Width            float64 `json:"width"`
	Color            string  `json:"color"`
	OrientationMatch bool    `json:"orientation_match"`
	Labelled         bool    `json:"labelled"`
}

// ReferenceBlocks lists every block of the active orientation with its
// position on the reference track.
func (b *Browser) ReferenceBlocks() []BlockView {
	infos := b.table().Blocks()
	out := make([]BlockView, 0, len(infos))
	for _, i := range infos {
		w := b.SpanWidth(i.StartPos, i.EndPos)
		out = append(out, BlockView{
			Symbol:           i.Symbol,
			Chr:              i.Chr,
			X:                b.X(i.StartPos),
			Width:            w,
			Color:            b.ChromosomeColor(i.Chr),
			OrientationMatch: i.OrientationMatch,
			Labelled:         w > MinWidthForLabels,
		})
	}
	return out
}

// ComparisonBlocks has the same geometry as ReferenceBlocks; comparison
// blocks are drawn directly below their reference partners.
func (b *Browser) ComparisonBlocks() []BlockView {
	return b.ReferenceBlocks()
}

// BlockLabel is a coordinate printed at a block boundary.
type BlockLabel struct {
	Block string  `json:"block"`
	X     float64 `json:"x"`
	Text  string  `json:"text"`
	// Anchor is "start" or "end", the side of the block the label hangs on.
	Anchor string `json:"anchor"`
}

// BlockCoordinateLabels labels the boundaries of blocks wide enough on
// screen. Under true anchors an inverted block prints its comparison end
// at its reference start.
func (b *Browser) BlockCoordinateLabels() (ref, comp []BlockLabel) {
	for _, i := range b.table().Blocks() {
		if b.SpanWidth(i.StartPos, i.EndPos) <= MinWidthForLabels {
			continue
		}
		x0, x1 := b.X(i.StartPos), b.X(i.EndPos)
		ref = append(ref,
			BlockLabel{Block: i.Symbol, X: x0, Text: humanize.Comma(int64(i.StartPos)), Anchor: "start"},
			BlockLabel{Block: i.Symbol, X: x1, Text: humanize.Comma(int64(i.EndPos)), Anchor: "end"})

		first, last := i.CompStart, i.CompEnd
		if b.orientation == synteny.TrueAnchors && !i.OrientationMatch {
			first, last = last, first
		}
		comp = append(comp,
			BlockLabel{Block: i.Symbol, X: x0, Text: genome.PositionLabel(i.Chr, first), Anchor: "start"},
			BlockLabel{Block: i.Symbol, X: x1, Text: genome.PositionLabel(i.Chr, last), Anchor: "end"})
	}
	return ref, comp
}

// Tick is an overview axis tick.
type Tick struct {
	Pos int     `json:"pos"`
	X   float64 `json:"x"`
}

// tickInterval rounds the chromosome length to a 5 Mb multiple giving
// roughly ten ticks.
func tickInterval(maxBase int) int {
	raw := float64(maxBase) / 1e8
	whole := math.Floor(raw)
	frac := math.Round((raw-whole)*100) / 100

	var n float64
	switch {
	case frac > 0.1 && frac < 0.8:
		n = whole + 0.5
	case frac <= 0.2:
		n = whole
	default:
		n = whole + 1
	}
	step := int(math.Round(n * 1e7))
	if step <= 0 {
		step = maxBase / 5
	}
	if step <= 0 {
		step = 1
	}
	return step
}

// OverviewTicks lists the axis ticks of the chromosome overview. The last
// regular tick is dropped when it would crowd the chromosome end.
func (b *Browser) OverviewTicks() []Tick {
	maxBase := b.view.MaxBase()
	step := tickInterval(maxBase)
	padding := int(math.Round(float64(maxBase) / 15))
	b2p := b.view.BasesToPixels()

	var out []Tick
	for pos := 0; pos < maxBase-padding; pos += step {
		out = append(out, Tick{Pos: pos, X: b2p.Map(float64(pos))})
	}
	rounded := int(1e5 * math.Round(float64(maxBase)/1e5))
	if len(out) == 0 || out[len(out)-1].Pos != rounded {
		out = append(out, Tick{Pos: maxBase, X: b2p.Map(float64(maxBase))})
	}
	return out
}

// Selection is the overview rectangle marking the visible interval, in
// overview pixels.
func (b *Browser) Selection() (x, width float64) {
	iv := b.view.Interval()
	b2p := b.view.BasesToPixels()
	return b2p.Map(float64(iv.StartPos)), b2p.Map(float64(iv.EndPos)) - b2p.Map(float64(iv.StartPos))
}
