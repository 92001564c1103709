package browser

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/biogo/store/interval"

	"github.com/yumyai/synbrowser/pkg/feature"
	"github.com/yumyai/synbrowser/pkg/synteny"
)

type geneInterval struct {
	start, end int
	uid        uintptr
}

// Overlap treats both ranges as half-open.
func (g geneInterval) Overlap(b interval.IntRange) bool {
	return g.start < b.End && b.Start < g.end
}

func (g geneInterval) ID() uintptr { return g.uid }

func (g geneInterval) Range() interval.IntRange {
	return interval.IntRange{Start: g.start, End: g.end}
}

func buildGeneTree(genes []feature.ReferenceGene) *interval.IntTree {
	t := &interval.IntTree{}
	for i, g := range genes {
		end := g.EndPos + 1
		if end <= g.StartPos {
			end = g.StartPos + 1
		}
		t.Insert(geneInterval{start: g.StartPos, end: end, uid: uintptr(i)}, true)
	}
	t.AdjustRanges()
	return t
}

// ExonView is an exon in pixels relative to the left edge of its gene.
type ExonView struct {
	X     float64 `json:"x"`
	Width float64 `json:"width"`
}

// GeneView is a gene placed on one of the tracks.
type GeneView struct {
	GeneID     string        `json:"gene_id"`
	Symbol     string        `json:"gene_symbol"`
	HomologIDs []int         `json:"homolog_ids"`
	X          float64       `json:"x"`
	Y          float64       `json:"y"`
	Width      float64       `json:"width"`
	Color      feature.Color `json:"color"`
	ShowLabel  bool          `json:"show_label"`
	Exons      []ExonView    `json:"exons,omitempty"`
	Reference  bool          `json:"reference"`

	gene        feature.Gene
	blockID     string
	strandMatch bool
}

// ShowLabels forces gene labels on at every zoom level.
func (b *Browser) ShowLabels(on bool) { b.showLabels = on }

func (b *Browser) zoomedIn() bool {
	return b.view.Interval().Size <= feature.HideElementCutoff
}

// labelVisible applies the label rules: always when zoomed in, otherwise
// only for forced labels and for highlighted or filtered genes.
func (b *Browser) labelVisible(geneID string, hids []int) bool {
	if b.zoomedIn() || b.showLabels || b.filter.hasGene(geneID) {
		return true
	}
	for _, id := range hids {
		if b.colors.IsHighlighted(id) {
			return true
		}
	}
	return false
}

// VisibleReferenceGenes lists the reference genes inside the view, sorted
// by position. With ShowOnlyFiltered on, only filter matches and
// highlighted genes are kept.
func (b *Browser) VisibleReferenceGenes() []GeneView {
	iv := b.view.Interval()
	hits := b.refTree.Get(geneInterval{start: iv.StartPos, end: iv.EndPos + 1})
	sort.Slice(hits, func(i, j int) bool { return hits[i].ID() < hits[j].ID() })

	keep := b.onlyFilteredReference()
	withExons := iv.Size < feature.HideElementCutoff
	var out []GeneView
	for _, h := range hits {
		g := b.data.Reference[int(h.ID())]
		if keep != nil && !keep.Has(g.GeneID) {
			continue
		}
		x := b.X(g.StartPos)
		w := b.SpanWidth(g.StartPos, g.EndPos)
		if !b.view.IsWithinView(x, x+w) {
			continue
		}
		hids := []int{g.HomologID}
		v := GeneView{
			GeneID:     g.GeneID,
			Symbol:     g.Symbol,
			HomologIDs: hids,
			X:          x,
			Y:          g.YPos,
			Width:      math.Abs(w),
			Color:      b.colors.Color(g.HomologID),
			ShowLabel:  b.labelVisible(g.GeneID, hids),
			Reference:  true,
			gene:       g.Gene,
		}
		if withExons {
			v.Exons = b.Exons(v)
		}
		out = append(out, v)
	}
	return out
}

// autoBlockVisible reports whether a gene tagged with autoBlockID falls
// in one of the bins covering the view.
func autoBlockVisible(autoBlockID string, bins map[int]bool) bool {
	for _, f := range strings.Fields(autoBlockID) {
		n, err := strconv.Atoi(strings.TrimPrefix(f, "block-"))
		if err == nil && bins[n] {
			return true
		}
	}
	return false
}

// VisibleComparisonGenes lists the comparison genes placed inside the
// view through their block scale. Candidates are limited to the automatic
// bins covering the view before the exact check.
func (b *Browser) VisibleComparisonGenes() []GeneView {
	iv := b.view.Interval()
	bins := map[int]bool{}
	for _, n := range feature.AutoBlocks(iv.StartPos, iv.EndPos) {
		bins[n] = true
	}

	keep := b.onlyFilteredComparison()
	withExons := iv.Size < feature.HideElementCutoff
	var out []GeneView
	for _, g := range b.data.Comparison {
		if !autoBlockVisible(g.AutoBlockID, bins) {
			continue
		}
		if keep != nil && !keep.Has(g.GeneID) {
			continue
		}
		x, ok := b.ScaledX(g)
		if !ok {
			continue
		}
		w, _ := b.ScaledWidth(g)
		if !b.view.IsWithinView(x, x+w) {
			continue
		}
		v := GeneView{
			GeneID:      g.GeneID,
			Symbol:      g.Symbol,
			HomologIDs:  g.HomologIDs,
			X:           x,
			Y:           g.YPos,
			Width:       math.Abs(w),
			Color:       b.colors.ColorOf(g.HomologIDs),
			ShowLabel:   b.labelVisible(g.GeneID, g.HomologIDs),
			gene:        g.Gene,
			blockID:     g.BlockID,
			strandMatch: g.StrandMatch,
		}
		if withExons {
			v.Exons = b.Exons(v)
		}
		out = append(out, v)
	}
	return out
}

// Exons lays out the exons of a placed gene. Reference exons scale with
// the gene's on-screen width; comparison exons go through the block
// scale and are mirrored for genes on the opposite strand under match
// anchors.
func (b *Browser) Exons(v GeneView) []ExonView {
	g := v.gene
	size := g.EndPos - g.StartPos
	if size <= 0 || len(g.Exons) == 0 {
		return nil
	}
	out := make([]ExonView, 0, len(g.Exons))

	if v.Reference {
		b2p := b.view.BasesToPixels()
		ratio := b.SpanWidth(g.StartPos, g.EndPos) / b2p.Map(float64(size))
		for _, e := range g.Exons {
			out = append(out, ExonView{
				X:     b2p.Map(float64(e.StartPos-g.StartPos)) * ratio,
				Width: b2p.Map(float64(e.EndPos-e.StartPos)) * ratio,
			})
		}
		return out
	}

	w, ok := b.ScaledWidth(feature.ComparisonGene{Gene: g, BlockID: v.blockID, StrandMatch: v.strandMatch})
	if !ok {
		return nil
	}
	ratio := w / float64(size)
	mirror := b.orientation == synteny.MatchAnchors && !v.strandMatch
	for _, e := range g.Exons {
		start := e.StartPos - g.StartPos
		if mirror {
			start = g.EndPos - e.EndPos
		}
		out = append(out, ExonView{
			X:     math.Abs(float64(start) * ratio),
			Width: math.Abs(float64(e.EndPos-e.StartPos) * ratio),
		})
	}
	return out
}
