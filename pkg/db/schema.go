package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema is the layout of the synteny database, as produced by the
// import scripts.
const Schema = `
CREATE TABLE IF NOT EXISTS gene (
	gene_id        TEXT NOT NULL,
	gene_taxonid   INTEGER NOT NULL,
	gene_symbol    TEXT,
	gene_chr       TEXT NOT NULL,
	gene_start_pos INTEGER NOT NULL,
	gene_end_pos   INTEGER NOT NULL,
	gene_strand    TEXT,
	gene_type      TEXT,
	PRIMARY KEY (gene_id, gene_taxonid)
);
CREATE INDEX IF NOT EXISTS gene_chr_idx ON gene (gene_taxonid, gene_chr, gene_start_pos);

CREATE TABLE IF NOT EXISTS transcript (
	transcript_id TEXT NOT NULL,
	gene_id       TEXT NOT NULL,
	taxonid       INTEGER NOT NULL,
	is_canonical  INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (transcript_id, taxonid)
);
CREATE INDEX IF NOT EXISTS transcript_gene_idx ON transcript (gene_id);

CREATE TABLE IF NOT EXISTS exon (
	transcript_id  TEXT NOT NULL,
	taxonid        INTEGER NOT NULL,
	exon_chr       TEXT,
	exon_start_pos INTEGER NOT NULL,
	exon_end_pos   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS exon_transcript_idx ON exon (transcript_id);

CREATE TABLE IF NOT EXISTS homolog (
	ref_gene_id   TEXT NOT NULL,
	ref_gene_sym  TEXT,
	ref_taxon_id  INTEGER NOT NULL,
	ref_seq_id    TEXT NOT NULL,
	ref_start     INTEGER NOT NULL,
	ref_end       INTEGER NOT NULL,
	ref_strand    TEXT,
	comp_gene_id  TEXT NOT NULL,
	comp_gene_sym TEXT,
	comp_taxon_id INTEGER NOT NULL,
	comp_seq_id   TEXT NOT NULL,
	comp_start    INTEGER NOT NULL,
	comp_end      INTEGER NOT NULL,
	comp_strand   TEXT
);
CREATE INDEX IF NOT EXISTS homolog_ref_idx ON homolog (ref_taxon_id, comp_taxon_id, ref_seq_id);

CREATE TABLE IF NOT EXISTS syntenic_block (
	ref_taxonid      INTEGER NOT NULL,
	ref_chr          TEXT NOT NULL,
	ref_start_pos    INTEGER NOT NULL,
	ref_end_pos      INTEGER NOT NULL,
	comp_taxonid     INTEGER NOT NULL,
	comp_chr         TEXT NOT NULL,
	comp_start_pos   INTEGER NOT NULL,
	comp_end_pos     INTEGER NOT NULL,
	same_orientation INTEGER NOT NULL,
	symbol           TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS block_ref_idx ON syntenic_block (ref_taxonid, comp_taxonid, ref_chr);

CREATE TABLE IF NOT EXISTS feature (
	taxon_id INTEGER NOT NULL,
	seq_id   TEXT NOT NULL,
	source   TEXT,
	type     TEXT NOT NULL,
	start    INTEGER NOT NULL,
	"end"    INTEGER NOT NULL,
	strand   TEXT,
	id       TEXT NOT NULL,
	name     TEXT
);
CREATE INDEX IF NOT EXISTS feature_seq_idx ON feature (taxon_id, seq_id, type);
`

// CreateSchema creates any missing tables and indexes.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
