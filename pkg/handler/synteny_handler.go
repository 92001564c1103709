package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/yumyai/synbrowser/internal/util"
	"github.com/yumyai/synbrowser/pkg/feature"
	"github.com/yumyai/synbrowser/pkg/genome"
	"github.com/yumyai/synbrowser/pkg/middle"
	"github.com/yumyai/synbrowser/pkg/model"
	"github.com/yumyai/synbrowser/pkg/synteny"
)

type SpeciesResponse struct {
	TaxonID     int                     `json:"taxon_id"`
	Name        string                  `json:"name"`
	Chromosomes []genome.ChromosomeSize `json:"chromosomes"`
}

type BlocksResponse struct {
	Blocks []synteny.Block `json:"blocks"`
}

type GenesResponse struct {
	Genes []model.GeneRecord `json:"genes"`
}

type QTLsResponse struct {
	QTLs []feature.QTL `json:"qtls"`
}

// pairParams reads {ref}, {comp} and {chr} from the path.
func pairParams(w http.ResponseWriter, r *http.Request) (ref, comp int, chr string, ok bool) {
	ref, okRef := parseTaxon(r.PathValue("ref"))
	comp, okComp := parseTaxon(r.PathValue("comp"))
	if !okRef || !okComp {
		writeError(w, http.StatusBadRequest, "taxon ids must be positive integers")
		return 0, 0, "", false
	}
	chr = util.NormalizeChr(r.PathValue("chr"))
	if chr == "" {
		writeError(w, http.StatusBadRequest, "missing chromosome")
		return 0, 0, "", false
	}
	return ref, comp, chr, true
}

func (dbctx *DBContext) SpeciesHandler(w http.ResponseWriter, r *http.Request) {
	out := make([]SpeciesResponse, 0, len(dbctx.Species))
	for _, s := range dbctx.Species {
		out = append(out, SpeciesResponse{
			TaxonID:     s.TaxonID(),
			Name:        s.Name(),
			Chromosomes: s.ChromosomeSizes(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (dbctx *DBContext) BlocksHandler(w http.ResponseWriter, r *http.Request) {
	ref, comp, chr, ok := pairParams(w, r)
	if !ok {
		return
	}
	log := middle.LoggerFrom(r.Context(), dbctx.logger())

	blocks, err := dbctx.DB.Blocks(r.Context(), ref, comp, chr)
	if err != nil {
		log.Error("Fetch blocks failed", zap.Int("ref", ref), zap.Int("comp", comp), zap.String("chr", chr), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not fetch syntenic blocks")
		return
	}
	if blocks == nil {
		blocks = []synteny.Block{}
	}
	writeJSON(w, http.StatusOK, BlocksResponse{Blocks: blocks})
}

func (dbctx *DBContext) GenesHandler(w http.ResponseWriter, r *http.Request) {
	ref, comp, chr, ok := pairParams(w, r)
	if !ok {
		return
	}
	log := middle.LoggerFrom(r.Context(), dbctx.logger())

	genes, err := dbctx.DB.Genes(r.Context(), ref, comp, chr)
	if err != nil {
		log.Error("Fetch genes failed", zap.Int("ref", ref), zap.Int("comp", comp), zap.String("chr", chr), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not fetch genes")
		return
	}
	if genes == nil {
		genes = []model.GeneRecord{}
	}
	writeJSON(w, http.StatusOK, GenesResponse{Genes: genes})
}

func (dbctx *DBContext) QTLsHandler(w http.ResponseWriter, r *http.Request) {
	taxon, ok := parseTaxon(r.PathValue("taxon"))
	if !ok {
		writeError(w, http.StatusBadRequest, "taxon id must be a positive integer")
		return
	}
	chr := util.NormalizeChr(r.PathValue("chr"))
	log := middle.LoggerFrom(r.Context(), dbctx.logger())

	qtls, err := dbctx.DB.QTLs(r.Context(), taxon, chr)
	if err != nil {
		log.Error("Fetch QTLs failed", zap.Int("taxon", taxon), zap.String("chr", chr), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not fetch QTLs")
		return
	}
	if qtls == nil {
		qtls = []feature.QTL{}
	}
	writeJSON(w, http.StatusOK, QTLsResponse{QTLs: qtls})
}

func (dbctx *DBContext) ChrColorsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dbctx.Colors)
}
