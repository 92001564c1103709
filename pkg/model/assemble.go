package model

import (
	"slices"
	"strings"

	"github.com/yumyai/synbrowser/pkg/feature"
	"github.com/yumyai/synbrowser/pkg/synteny"
)

// Assemble builds the homolog tables for one reference chromosome.
//
// A reference gene with homologs gets its own index as homolog id, one
// without gets -(index+1) so that no two genes share an id. A comparison
// homolog is kept only when it lies inside the comparison span of a block
// on the same comparison chromosome; a gene reached from several reference
// genes accumulates all of their homolog ids.
func Assemble(refChr string, blocks []synteny.Block, genes []GeneRecord, trackHeight float64) *feature.ChromosomeData {
	d := &feature.ChromosomeData{
		RefChr:          refChr,
		Reference:       make([]feature.ReferenceGene, 0, len(genes)),
		Homologs:        make(map[int]feature.HomologEntry, len(genes)),
		GenesToHomologs: make(map[string][]int, len(genes)),
	}
	compIndex := make(map[string]int)

	for i, g := range genes {
		hid := i
		if len(g.Homologs) == 0 {
			hid = -(i + 1)
		}
		autoBlock := feature.AutoBlockID(g.StartPos, g.EndPos)
		chr := g.Chr
		if chr == "" {
			chr = refChr
		}

		ref := feature.ReferenceGene{
			Gene: feature.Gene{
				GeneID:      g.GeneID,
				Symbol:      g.Symbol,
				Chr:         chr,
				TaxonID:     g.TaxonID,
				StartPos:    g.StartPos,
				EndPos:      g.EndPos,
				Strand:      g.Strand,
				Type:        g.Type,
				Exons:       feature.DedupExons(g.CanonicalTranscript),
				AutoBlockID: autoBlock,
				YPos:        feature.Jitter(trackHeight, g.StartPos, feature.GeneHeight),
			},
			HomologID: hid,
		}
		d.GenesToHomologs[g.GeneID] = appendUnique(d.GenesToHomologs[g.GeneID], hid)
		entry := feature.HomologEntry{Reference: []string{g.GeneID}}

		for _, h := range g.Homologs {
			for _, b := range blocks {
				if !represented(h, b) {
					continue
				}
				ref.HomologGeneIDs = appendUnique(ref.HomologGeneIDs, h.GeneID)
				entry.Comparison = appendUnique(entry.Comparison, h.GeneID)
				d.GenesToHomologs[h.GeneID] = appendUnique(d.GenesToHomologs[h.GeneID], hid)

				if at, ok := compIndex[h.GeneID]; ok {
					c := &d.Comparison[at]
					c.HomologIDs = appendUnique(c.HomologIDs, hid)
					c.ReferenceHomologs = appendUnique(c.ReferenceHomologs, g.GeneID)
					if !slices.Contains(strings.Fields(c.AutoBlockID), autoBlock) {
						c.AutoBlockID += " " + autoBlock
					}
					continue
				}

				compIndex[h.GeneID] = len(d.Comparison)
				d.Comparison = append(d.Comparison, feature.ComparisonGene{
					Gene: feature.Gene{
						GeneID:      h.GeneID,
						Symbol:      h.Symbol,
						Chr:         h.Chr,
						TaxonID:     h.TaxonID,
						StartPos:    h.StartPos,
						EndPos:      h.EndPos,
						Strand:      h.Strand,
						Type:        h.Type,
						Exons:       feature.DedupExons(h.CanonicalTranscript),
						AutoBlockID: autoBlock,
						YPos:        feature.Jitter(trackHeight, h.StartPos, feature.GeneHeight),
					},
					HomologIDs:        []int{hid},
					BlockID:           b.Symbol,
					StrandMatch:       h.Strand == g.Strand,
					ReferenceHomologs: []string{g.GeneID},
				})
			}
		}

		d.Homologs[hid] = entry
		d.Reference = append(d.Reference, ref)
	}
	return d
}

func represented(h GeneRecord, b synteny.Block) bool {
	return strings.EqualFold(h.Chr, b.CompChr) &&
		h.StartPos >= b.CompStart && h.EndPos <= b.CompEnd
}

func appendUnique[T comparable](s []T, v T) []T {
	if slices.Contains(s, v) {
		return s
	}
	return append(s, v)
}
