package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/yumyai/synbrowser/pkg/browser"
	"github.com/yumyai/synbrowser/pkg/feature"
	"github.com/yumyai/synbrowser/pkg/genome"
	"github.com/yumyai/synbrowser/pkg/middle"
	"github.com/yumyai/synbrowser/pkg/model"
	"github.com/yumyai/synbrowser/pkg/render"
	"github.com/yumyai/synbrowser/pkg/synteny"
)

const (
	defaultSnapshotWidth = 1000.0
	maxSnapshotWidth     = 5000.0
)

// SnapshotHandler loads one reference chromosome, moves the block view to
// the requested interval and returns it as SVG.
//
// Query parameters: width, orientation (match|true), genes (comma separated
// ids to highlight), symbol (filter by symbol substring).
func (dbctx *DBContext) SnapshotHandler(w http.ResponseWriter, r *http.Request) {
	ref, okRef := parseTaxon(r.PathValue("ref"))
	comp, okComp := parseTaxon(r.PathValue("comp"))
	if !okRef || !okComp {
		writeError(w, http.StatusBadRequest, "taxon ids must be positive integers")
		return
	}
	refSpecies, okRef := dbctx.species(ref)
	compSpecies, okComp := dbctx.species(comp)
	if !okRef || !okComp {
		writeError(w, http.StatusNotFound, "unknown species")
		return
	}

	iv, err := genome.ParseInterval(r.PathValue("interval"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	v := refSpecies.Validator()
	if !v.ValidInterval(iv) {
		writeError(w, http.StatusBadRequest, v.Err().Error())
		return
	}

	q := r.URL.Query()
	width := defaultSnapshotWidth
	if s := q.Get("width"); s != "" {
		width, err = strconv.ParseFloat(s, 64)
		if err != nil || width <= 0 || width > maxSnapshotWidth {
			writeError(w, http.StatusBadRequest, "width must be between 0 and 5000")
			return
		}
	}
	orientation, err := synteny.ParseOrientation(q.Get("orientation"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	log := middle.LoggerFrom(r.Context(), dbctx.logger())
	loaded, err := model.NewManager(dbctx.DB, log).Load(r.Context(), model.Request{
		RefTaxon:    ref,
		CompTaxon:   comp,
		Chr:         iv.Chr,
		TrackHeight: render.TrackHeight,
	})
	if err != nil {
		if errors.Is(err, genome.ErrMissingBlockData) || errors.Is(err, genome.ErrMissingGeneData) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "could not load chromosome")
		return
	}

	b := browser.New(render.DefaultContext(browser.AppContext{
		Logger:     log,
		Reference:  refSpecies,
		Comparison: compSpecies,
		Colors:     dbctx.Colors,
	}), width, nil)
	if err := b.Render(browser.LoadParams{Interval: iv, Blocks: loaded.Blocks, Data: loaded.Data}); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := b.ChangeOrientation(orientation); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if ids := q.Get("genes"); ids != "" {
		var genes []feature.Gene
		for _, id := range strings.Split(ids, ",") {
			genes = append(genes, feature.Gene{GeneID: strings.TrimSpace(id)})
		}
		b.SetHighlightedFeatures(genes, loaded.QTLs)
	} else {
		b.SetHighlightedFeatures(nil, loaded.QTLs)
	}
	if sym := q.Get("symbol"); sym != "" {
		if err := b.SetFilterMatches(feature.BySymbol(loaded.Data, sym, feature.Both)); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	var buf bytes.Buffer
	if err := render.RenderBlockViewSVG(&buf, b); err != nil {
		log.Error("Render snapshot failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not render snapshot")
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(buf.Bytes())
}
