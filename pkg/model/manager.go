package model

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yumyai/synbrowser/pkg/feature"
	"github.com/yumyai/synbrowser/pkg/genome"
	"github.com/yumyai/synbrowser/pkg/synteny"
)

// ErrStaleLoad is returned by a load that was superseded by a newer one.
var ErrStaleLoad = errors.New("load superseded by a newer request")

// Manager loads chromosome data from a Source. Only the most recent load
// may deliver a result; starting a load cancels the one in flight.
type Manager struct {
	src     Source
	log     *zap.Logger
	Tracker *LoadTracker

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

func NewManager(src Source, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{src: src, log: log, Tracker: NewLoadTracker()}
}

func (m *Manager) begin(ctx context.Context) (context.Context, uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		m.cancel()
	}
	ctx, m.cancel = context.WithCancel(ctx)
	m.seq++
	return ctx, m.seq
}

func (m *Manager) end(seq uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seq == seq && m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m *Manager) stale(seq uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seq != seq
}

// Load fetches blocks, genes and QTLs concurrently and assembles them.
// A missing QTL table is not fatal.
func (m *Manager) Load(ctx context.Context, req Request) (*Loaded, error) {
	ctx, seq := m.begin(ctx)
	defer m.end(seq)

	job := m.Tracker.NewJob(req)
	log := m.log.With(zap.String("load_id", job.ID), zap.String("chr", req.Chr))
	log.Debug("loading chromosome",
		zap.Int("ref_taxon", req.RefTaxon), zap.Int("comp_taxon", req.CompTaxon))

	var (
		blocks []synteny.Block
		genes  []GeneRecord
		qtls   []feature.QTL
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		blocks, err = m.src.Blocks(gctx, req.RefTaxon, req.CompTaxon, req.Chr)
		if err != nil {
			return fmt.Errorf("loading blocks: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		genes, err = m.src.Genes(gctx, req.RefTaxon, req.CompTaxon, req.Chr)
		if err != nil {
			return fmt.Errorf("loading genes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		qtls, err = m.src.QTLs(gctx, req.RefTaxon, req.Chr)
		if err != nil {
			log.Warn("QTLs unavailable", zap.Error(err))
			qtls = nil
		}
		return nil
	})
	err := g.Wait()

	if m.stale(seq) {
		m.Tracker.Fail(job.ID, ErrStaleLoad)
		return nil, ErrStaleLoad
	}
	switch {
	case err != nil:
	case len(blocks) == 0:
		err = genome.ErrMissingBlockData
	case len(genes) == 0:
		err = genome.ErrMissingGeneData
	}
	if err != nil {
		log.Error("load failed", zap.Error(err))
		m.Tracker.Fail(job.ID, err)
		return nil, err
	}

	data := Assemble(req.Chr, blocks, genes, req.TrackHeight)
	if m.stale(seq) {
		m.Tracker.Fail(job.ID, ErrStaleLoad)
		return nil, ErrStaleLoad
	}

	m.Tracker.Finish(job.ID)
	log.Info("chromosome loaded",
		zap.Int("blocks", len(blocks)),
		zap.Int("reference_genes", len(data.Reference)),
		zap.Int("comparison_genes", len(data.Comparison)),
		zap.Int("qtls", len(qtls)))
	return &Loaded{ID: job.ID, Blocks: blocks, Data: data, QTLs: qtls}, nil
}
