// Package feature holds the gene and QTL records drawn on the block view,
// the homolog tables linking the two tracks, and the rules deciding how a
// feature is coloured and laid out.
package feature

import "sort"

type Exon struct {
	StartPos int `json:"start"`
	EndPos   int `json:"end"`
}

type Gene struct {
	GeneID      string  `json:"gene_id"`
	Symbol      string  `json:"gene_symbol"`
	Chr         string  `json:"chr"`
	TaxonID     int     `json:"taxon_id"`
	StartPos    int     `json:"start_pos"`
	EndPos      int     `json:"end_pos"`
	Strand      string  `json:"strand"`
	Type        string  `json:"type"`
	Exons       []Exon  `json:"exons"`
	AutoBlockID string  `json:"auto_block_id"`
	YPos        float64 `json:"ypos"`
}

func (g Gene) Size() int {
	return g.EndPos - g.StartPos
}

// ReferenceGene carries a single homolog id, negative when the gene has no
// homolog on the comparison genome.
type ReferenceGene struct {
	Gene
	HomologID      int      `json:"homolog_id"`
	HomologGeneIDs []string `json:"homolog_gene_ids"`
}

func (g ReferenceGene) HasHomolog() bool {
	return g.HomologID >= 0
}

// ComparisonGene may stand for several reference genes, so it carries every
// homolog id that reached it.
type ComparisonGene struct {
	Gene
	HomologIDs        []int    `json:"homolog_ids"`
	BlockID           string   `json:"block_id"`
	StrandMatch       bool     `json:"strand_match"`
	ReferenceHomologs []string `json:"reference_homologs"`
}

type HomologEntry struct {
	Reference  []string `json:"reference"`
	Comparison []string `json:"comparison"`
}

// ChromosomeData is everything loaded for one reference chromosome. It is
// replaced as a whole on reload and not modified during interaction.
type ChromosomeData struct {
	RefChr          string               `json:"ref_chr"`
	Reference       []ReferenceGene      `json:"reference"`
	Comparison      []ComparisonGene     `json:"comparison"`
	Homologs        map[int]HomologEntry `json:"homologs"`
	GenesToHomologs map[string][]int     `json:"genes_to_homologs"`
}

func (d *ChromosomeData) ReferenceGene(geneID string) (ReferenceGene, bool) {
	for _, g := range d.Reference {
		if g.GeneID == geneID {
			return g, true
		}
	}
	return ReferenceGene{}, false
}

// ComparisonWithHomolog returns the comparison genes tied to homolog id hid.
func (d *ChromosomeData) ComparisonWithHomolog(hid int) []ComparisonGene {
	var out []ComparisonGene
	for _, g := range d.Comparison {
		for _, id := range g.HomologIDs {
			if id == hid {
				out = append(out, g)
				break
			}
		}
	}
	return out
}

// DedupExons drops repeated exons and returns the rest sorted by start.
func DedupExons(exons []Exon) []Exon {
	seen := make(map[Exon]bool, len(exons))
	out := make([]Exon, 0, len(exons))
	for _, e := range exons {
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartPos < out[j].StartPos })
	return out
}
