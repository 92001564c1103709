package handler

// DI for all handlers and models alike.

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/yumyai/synbrowser/pkg/genome"
	"github.com/yumyai/synbrowser/pkg/model"
)

type DBContext struct {
	DB      model.Source
	Species []*genome.Species
	Colors  map[string]string
	Logger  *zap.Logger
}

func (dbctx *DBContext) logger() *zap.Logger {
	if dbctx.Logger == nil {
		return zap.NewNop()
	}
	return dbctx.Logger
}

// species finds a configured organism by taxon id.
func (dbctx *DBContext) species(taxon int) (*genome.Species, bool) {
	for _, s := range dbctx.Species {
		if s.TaxonID() == taxon {
			return s, true
		}
	}
	return nil, false
}

func parseTaxon(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil && n > 0
}
