package browser

import (
	"maps"
	"math"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/fatih/set.v0"

	"github.com/yumyai/synbrowser/internal/util"
	"github.com/yumyai/synbrowser/pkg/feature"
)

// filterState is the last applied filter, expanded across homologs.
type filterState struct {
	matches []feature.Match
	genes   set.Interface
	hids    []int
}

func (f filterState) hasGene(id string) bool {
	return f.genes != nil && f.genes.Has(id)
}

// SetHighlightedFeatures replaces the highlighted genes and QTLs. Features
// on other chromosomes are kept for the reload key but not drawn.
func (b *Browser) SetHighlightedFeatures(genes []feature.Gene, qtls []feature.QTL) {
	b.highlightedGenes = append([]feature.Gene(nil), genes...)
	b.highlightedQTLs = append([]feature.QTL(nil), qtls...)
	if b.data != nil {
		b.resolveHighlights()
	}
}

func (b *Browser) onChromosome(chr string) bool {
	return util.NormalizeChr(chr) == util.NormalizeChr(b.data.RefChr)
}

func (b *Browser) resolveHighlights() {
	var hids []int
	for _, g := range b.highlightedGenes {
		hids = append(hids, b.data.GenesToHomologs[g.GeneID]...)
	}
	b.colors.SetHighlighted(hids)

	b.chrQTLs = nil
	for _, q := range b.highlightedQTLs {
		if b.onChromosome(q.Chr) {
			b.chrQTLs = append(b.chrQTLs, q)
		}
	}
	b.qtlLanes = feature.ArrangeQTLs(b.chrQTLs)
	b.log.Debug("highlights resolved",
		zap.Int("homolog_ids", len(hids)),
		zap.Int("qtls", len(b.chrQTLs)))
}

// SetFilterMatches colours the matched genes and every homolog of theirs
// on the other track as filtered. A nil list clears the filter.
func (b *Browser) SetFilterMatches(matches []feature.Match) error {
	if b.data == nil {
		return ErrNotLoaded
	}
	genes := set.New(set.NonThreadSafe)
	hidSet := set.New(set.NonThreadSafe)
	for _, m := range matches {
		genes.Add(m.GeneID)
		for _, hid := range b.data.GenesToHomologs[m.GeneID] {
			hidSet.Add(hid)
			entry := b.data.Homologs[hid]
			for _, id := range entry.Reference {
				genes.Add(id)
			}
			for _, id := range entry.Comparison {
				genes.Add(id)
			}
		}
	}
	hids := make([]int, 0, hidSet.Size())
	for _, v := range hidSet.List() {
		hids = append(hids, v.(int))
	}
	sort.Ints(hids)

	b.filter = filterState{
		matches: append([]feature.Match(nil), matches...),
		genes:   genes,
		hids:    hids,
	}
	b.colors.SetFiltered(hids)
	b.log.Debug("filter applied",
		zap.Int("matches", len(matches)),
		zap.Int("genes", genes.Size()))
	return nil
}

func (b *Browser) FilterMatches() []feature.Match { return b.filter.matches }

// ShowOnlyFiltered hides every gene that is neither filtered nor
// highlighted.
func (b *Browser) ShowOnlyFiltered(on bool) { b.showOnlyFiltered = on }

func (b *Browser) onlyFilteredReference() set.Interface {
	if !b.showOnlyFiltered {
		return nil
	}
	keep := set.New(set.NonThreadSafe)
	for _, g := range b.data.Reference {
		if b.filter.hasGene(g.GeneID) || b.colors.IsHighlighted(g.HomologID) {
			keep.Add(g.GeneID)
		}
	}
	return keep
}

func (b *Browser) onlyFilteredComparison() set.Interface {
	if !b.showOnlyFiltered {
		return nil
	}
	keep := set.New(set.NonThreadSafe)
	for _, g := range b.data.Comparison {
		if b.filter.hasGene(g.GeneID) {
			keep.Add(g.GeneID)
			continue
		}
		for _, hid := range g.HomologIDs {
			if b.colors.IsHighlighted(hid) {
				keep.Add(g.GeneID)
				break
			}
		}
	}
	return keep
}

// QTLLayout returns the lane of every highlighted QTL on the loaded
// chromosome.
func (b *Browser) QTLLayout() map[string]feature.Lane {
	return maps.Clone(b.qtlLanes)
}

// QTLView is a highlighted QTL on the reference track.
type QTLView struct {
	feature.QTL
	feature.Lane
	X     float64 `json:"x"`
	Width float64 `json:"width"`
}

// ReferenceQTLs places the highlighted QTLs in the viewport. A QTL is at
// least one pixel wide.
func (b *Browser) ReferenceQTLs() []QTLView {
	var out []QTLView
	for _, q := range b.chrQTLs {
		x := b.X(q.StartPos)
		w := math.Max(b.SpanWidth(q.StartPos, q.EndPos), 1)
		if !b.view.IsWithinView(x, x+w) {
			continue
		}
		out = append(out, QTLView{QTL: q, Lane: b.qtlLanes[q.ID], X: x, Width: w})
	}
	return out
}

// FeatureIndicator marks a highlighted feature on the chromosome
// overview, in overview pixels.
type FeatureIndicator struct {
	ID        string  `json:"id"`
	Symbol    string  `json:"symbol"`
	Kind      string  `json:"kind"`
	Reference bool    `json:"reference"`
	X         float64 `json:"x"`
	Width     float64 `json:"width,omitempty"`
	Lane      int     `json:"lane"`
	NumLanes  int     `json:"num_lanes"`
}

// FeatureIndicators lists overview markers for the highlighted genes and
// QTLs on the loaded chromosome. A comparison gene is marked at the centre
// of its block mapping.
func (b *Browser) FeatureIndicators() []FeatureIndicator {
	b2p := b.view.BasesToPixels()
	var out []FeatureIndicator
	for _, hg := range b.highlightedGenes {
		if g, ok := b.data.ReferenceGene(hg.GeneID); ok {
			center := float64(g.StartPos+g.EndPos) / 2
			out = append(out, FeatureIndicator{
				ID: g.GeneID, Symbol: g.Symbol, Kind: "gene", Reference: true,
				X: b2p.Map(center),
			})
			continue
		}
		for _, g := range b.data.Comparison {
			if g.GeneID != hg.GeneID {
				continue
			}
			s, ok := b.scales.Scale(b.orientation, g.BlockID)
			if !ok {
				break
			}
			out = append(out, FeatureIndicator{
				ID: g.GeneID, Symbol: g.Symbol, Kind: "gene",
				X: s.Map(float64(g.StartPos+g.EndPos) / 2),
			})
			break
		}
	}
	for _, q := range b.chrQTLs {
		l := b.qtlLanes[q.ID]
		out = append(out, FeatureIndicator{
			ID: q.ID, Symbol: q.Symbol, Kind: "qtl", Reference: true,
			X:     b2p.Map(float64(q.StartPos)),
			Width: math.Max(b2p.Map(float64(q.EndPos))-b2p.Map(float64(q.StartPos)), 1),
			Lane:  l.Lane, NumLanes: l.NumLanes,
		})
	}
	return out
}
