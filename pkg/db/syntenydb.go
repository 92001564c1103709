package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/yumyai/synbrowser/internal/util"
	"github.com/yumyai/synbrowser/pkg/feature"
	"github.com/yumyai/synbrowser/pkg/model"
	"github.com/yumyai/synbrowser/pkg/synteny"
)

var ErrDatabaseNotExists = errors.New("synteny database does not exist")

// SyntenyDB serves blocks, genes and QTLs from the synteny database. It
// implements model.Source.
type SyntenyDB struct {
	sql *sql.DB
}

var _ model.Source = (*SyntenyDB)(nil)

func NewSyntenyDB(db *sql.DB) *SyntenyDB {
	return &SyntenyDB{sql: db}
}

// Open opens an existing database file.
func Open(path string) (*SyntenyDB, error) {
	if !util.FileExists(path) {
		return nil, fmt.Errorf("%w: %s", ErrDatabaseNotExists, path)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return NewSyntenyDB(db), nil
}

func (s *SyntenyDB) DB() *sql.DB {
	return s.sql
}

func (s *SyntenyDB) Close() error {
	return s.sql.Close()
}

func (s *SyntenyDB) query(ctx context.Context, q string, args ...any) (*sql.Rows, error) {
	stm, err := s.sql.PrepareContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer stm.Close()
	return stm.QueryContext(ctx, args...)
}

// ReferenceTaxa lists the taxa that have blocks as the reference genome.
func (s *SyntenyDB) ReferenceTaxa(ctx context.Context) ([]int, error) {
	return s.taxa(ctx, `SELECT DISTINCT ref_taxonid FROM syntenic_block ORDER BY ref_taxonid`)
}

// ComparisonTaxa lists the taxa that have blocks against the reference.
func (s *SyntenyDB) ComparisonTaxa(ctx context.Context, refTaxon int) ([]int, error) {
	return s.taxa(ctx, `
		SELECT DISTINCT comp_taxonid FROM syntenic_block
		WHERE ref_taxonid = ? ORDER BY comp_taxonid`, refTaxon)
}

func (s *SyntenyDB) taxa(ctx context.Context, q string, args ...any) ([]int, error) {
	rows, err := s.query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// Blocks returns the blocks of one reference chromosome with their anchor
// points derived from the homologs on that chromosome.
func (s *SyntenyDB) Blocks(ctx context.Context, refTaxon, compTaxon int, chr string) ([]synteny.Block, error) {
	chr = util.NormalizeChr(chr)
	rows, err := s.query(ctx, `
		SELECT symbol, ref_taxonid, ref_chr, ref_start_pos, ref_end_pos,
			comp_taxonid, comp_chr, comp_start_pos, comp_end_pos, same_orientation
		FROM syntenic_block
		WHERE ref_taxonid = ? AND comp_taxonid = ? AND ref_chr = ?
		ORDER BY ref_start_pos`, refTaxon, compTaxon, chr)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []synteny.Block
	for rows.Next() {
		var b synteny.Block
		if err := rows.Scan(&b.Symbol, &b.RefTaxonID, &b.RefChr, &b.RefStart, &b.RefEnd,
			&b.CompTaxonID, &b.CompChr, &b.CompStart, &b.CompEnd, &b.OrientationMatch); err != nil {
			return nil, fmt.Errorf("scanning block: %w", err)
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, nil
	}

	homologs, err := s.homologPairs(ctx, refTaxon, compTaxon, chr)
	if err != nil {
		return nil, err
	}
	return synteny.DeriveAnchors(blocks, homologs), nil
}

func (s *SyntenyDB) homologPairs(ctx context.Context, refTaxon, compTaxon int, chr string) ([]synteny.HomologPair, error) {
	rows, err := s.query(ctx, `
		SELECT ref_seq_id, ref_start, ref_end, ref_strand,
			comp_seq_id, comp_start, comp_end, comp_strand
		FROM homolog
		WHERE ref_taxon_id = ? AND comp_taxon_id = ? AND ref_seq_id = ?
		ORDER BY ref_start`, refTaxon, compTaxon, chr)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []synteny.HomologPair
	for rows.Next() {
		var h synteny.HomologPair
		if err := rows.Scan(&h.RefChr, &h.RefStart, &h.RefEnd, &h.RefStrand,
			&h.CompChr, &h.CompStart, &h.CompEnd, &h.CompStrand); err != nil {
			return nil, fmt.Errorf("scanning homolog: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Genes returns the reference genes of a chromosome that have a canonical
// transcript, sorted by start, each with its comparison homologs.
func (s *SyntenyDB) Genes(ctx context.Context, refTaxon, compTaxon int, chr string) ([]model.GeneRecord, error) {
	chr = util.NormalizeChr(chr)
	rows, err := s.query(ctx, `
		SELECT g.gene_id, IFNULL(g.gene_symbol, ''), g.gene_chr, g.gene_taxonid,
			g.gene_start_pos, g.gene_end_pos, IFNULL(g.gene_strand, ''), IFNULL(g.gene_type, ''),
			e.exon_start_pos, e.exon_end_pos
		FROM gene AS g
			INNER JOIN transcript AS t ON t.gene_id = g.gene_id AND t.taxonid = g.gene_taxonid
			INNER JOIN exon AS e ON e.transcript_id = t.transcript_id AND e.taxonid = t.taxonid
		WHERE g.gene_taxonid = ? AND g.gene_chr = ? AND t.is_canonical
		ORDER BY g.gene_start_pos, g.gene_id, t.transcript_id, e.exon_start_pos`, refTaxon, chr)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var genes []model.GeneRecord
	index := make(map[string]int)
	for rows.Next() {
		var g model.GeneRecord
		var ex feature.Exon
		if err := rows.Scan(&g.GeneID, &g.Symbol, &g.Chr, &g.TaxonID, &g.StartPos, &g.EndPos,
			&g.Strand, &g.Type, &ex.StartPos, &ex.EndPos); err != nil {
			return nil, fmt.Errorf("scanning gene: %w", err)
		}
		at, ok := index[g.GeneID]
		if !ok {
			at = len(genes)
			index[g.GeneID] = at
			genes = append(genes, g)
		}
		genes[at].CanonicalTranscript = append(genes[at].CanonicalTranscript, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	homologs, err := s.comparisonHomologs(ctx, refTaxon, compTaxon, chr)
	if err != nil {
		return nil, err
	}
	for i := range genes {
		genes[i].Homologs = homologs[genes[i].GeneID]
	}
	return genes, nil
}

// comparisonHomologs maps reference gene ids to their homologs on the
// comparison genome, each with its canonical exons.
func (s *SyntenyDB) comparisonHomologs(ctx context.Context, refTaxon, compTaxon int, chr string) (map[string][]model.GeneRecord, error) {
	exons, err := s.comparisonExons(ctx, refTaxon, compTaxon, chr)
	if err != nil {
		return nil, err
	}

	rows, err := s.query(ctx, `
		SELECT h.ref_gene_id, h.comp_gene_id, IFNULL(h.comp_gene_sym, ''), h.comp_seq_id,
			h.comp_taxon_id, h.comp_start, h.comp_end, IFNULL(h.comp_strand, ''), IFNULL(g.gene_type, '')
		FROM homolog AS h
			INNER JOIN gene AS g ON g.gene_id = h.comp_gene_id AND g.gene_taxonid = h.comp_taxon_id
		WHERE h.ref_taxon_id = ? AND h.comp_taxon_id = ? AND h.ref_seq_id = ?
		ORDER BY h.ref_gene_id, h.comp_start`, refTaxon, compTaxon, chr)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]model.GeneRecord)
	for rows.Next() {
		var refID string
		var h model.GeneRecord
		if err := rows.Scan(&refID, &h.GeneID, &h.Symbol, &h.Chr, &h.TaxonID,
			&h.StartPos, &h.EndPos, &h.Strand, &h.Type); err != nil {
			return nil, fmt.Errorf("scanning homolog gene: %w", err)
		}
		h.CanonicalTranscript = exons[h.GeneID]
		out[refID] = append(out[refID], h)
	}
	return out, rows.Err()
}

func (s *SyntenyDB) comparisonExons(ctx context.Context, refTaxon, compTaxon int, chr string) (map[string][]feature.Exon, error) {
	rows, err := s.query(ctx, `
		SELECT DISTINCT t.gene_id, t.transcript_id, e.exon_start_pos, e.exon_end_pos
		FROM homolog AS h
			INNER JOIN transcript AS t ON t.gene_id = h.comp_gene_id AND t.taxonid = h.comp_taxon_id
			INNER JOIN exon AS e ON e.transcript_id = t.transcript_id AND e.taxonid = t.taxonid
		WHERE h.ref_taxon_id = ? AND h.comp_taxon_id = ? AND h.ref_seq_id = ? AND t.is_canonical
		ORDER BY t.gene_id, e.exon_start_pos`, refTaxon, compTaxon, chr)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]feature.Exon)
	for rows.Next() {
		var geneID, transcriptID string
		var ex feature.Exon
		if err := rows.Scan(&geneID, &transcriptID, &ex.StartPos, &ex.EndPos); err != nil {
			return nil, fmt.Errorf("scanning exon: %w", err)
		}
		out[geneID] = append(out[geneID], ex)
	}
	return out, rows.Err()
}

// QTLs returns the QTL features of a chromosome sorted by start.
func (s *SyntenyDB) QTLs(ctx context.Context, taxon int, chr string) ([]feature.QTL, error) {
	rows, err := s.query(ctx, `
		SELECT id, IFNULL(name, id), seq_id, start, "end"
		FROM feature
		WHERE taxon_id = ? AND seq_id = ? AND type = 'QTL'
		ORDER BY start`, taxon, util.NormalizeChr(chr))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []feature.QTL
	for rows.Next() {
		var q feature.QTL
		if err := rows.Scan(&q.ID, &q.Symbol, &q.Chr, &q.StartPos, &q.EndPos); err != nil {
			return nil, fmt.Errorf("scanning QTL: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
