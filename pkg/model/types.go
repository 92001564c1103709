package model

import (
	"context"

	"github.com/yumyai/synbrowser/pkg/feature"
	"github.com/yumyai/synbrowser/pkg/synteny"
)

// GeneRecord is a gene as served by the data API. Reference genes carry
// their comparison homologs; homologs never nest further.
type GeneRecord struct {
	GeneID              string         `json:"gene_id"`
	Symbol              string         `json:"gene_symbol"`
	Chr                 string         `json:"chr"`
	TaxonID             int            `json:"taxon_id"`
	StartPos            int            `json:"start_pos"`
	EndPos              int            `json:"end_pos"`
	Strand              string         `json:"strand"`
	Type                string         `json:"type"`
	CanonicalTranscript []feature.Exon `json:"canonical_transcript"`
	Homologs            []GeneRecord   `json:"homologs,omitempty"`
}

// Source fetches the raw data for one reference chromosome. Implemented by
// the sqlite store and by the HTTP client.
type Source interface {
	Blocks(ctx context.Context, refTaxon, compTaxon int, chr string) ([]synteny.Block, error)
	Genes(ctx context.Context, refTaxon, compTaxon int, chr string) ([]GeneRecord, error)
	QTLs(ctx context.Context, taxon int, chr string) ([]feature.QTL, error)
}

// Request names the chromosome to load for a species pair.
type Request struct {
	RefTaxon  int
	CompTaxon int
	Chr       string
	// TrackHeight is used to jitter genes vertically. Zero disables jitter.
	TrackHeight float64
}

// Loaded is the result of a successful load.
type Loaded struct {
	ID     string
	Blocks []synteny.Block
	Data   *feature.ChromosomeData
	QTLs   []feature.QTL
}
