// Package browser is the block view: it owns the viewport, the synteny
// index and the colour state for one loaded reference chromosome, and
// answers every question a painter needs to draw the two tracks.
package browser

import (
	"errors"

	"github.com/biogo/store/interval"
	"go.uber.org/zap"

	"github.com/yumyai/synbrowser/pkg/feature"
	"github.com/yumyai/synbrowser/pkg/genome"
	"github.com/yumyai/synbrowser/pkg/synteny"
	"github.com/yumyai/synbrowser/pkg/viewport"
)

var (
	// ErrNotLoaded is returned by view operations before a successful Render.
	ErrNotLoaded = errors.New("no chromosome loaded")
	// ErrReloadRequired is returned when an interval names a chromosome
	// other than the loaded one.
	ErrReloadRequired = errors.New("interval is on another chromosome")
)

// AppContext is shared by everything in one session. It is created once at
// startup.
type AppContext struct {
	Logger      *zap.Logger
	Reference   *genome.Species
	Comparison  *genome.Species
	Colors      map[string]string
	Preferences viewport.Preferences
}

// Renderer is called back after state changes. Implementations paint by
// querying the browser and never compute positions themselves.
type Renderer interface {
	Rendered(b *Browser)
	IntervalChanged(b *Browser)
	OrientationChanged(b *Browser)
	StatusChanged(s Status)
}

// NopRenderer ignores every hook.
type NopRenderer struct{}

func (NopRenderer) Rendered(*Browser)           {}
func (NopRenderer) IntervalChanged(*Browser)    {}
func (NopRenderer) OrientationChanged(*Browser) {}
func (NopRenderer) StatusChanged(Status)        {}

type StatusKind string

const (
	StatusProcessing StatusKind = "processing"
	StatusFinished   StatusKind = "finished"
	StatusError      StatusKind = "error"
)

type Status struct {
	Message string     `json:"message"`
	Kind    StatusKind `json:"kind"`
}

// LoadParams is everything Render needs for one chromosome.
type LoadParams struct {
	Interval genome.Interval
	Blocks   []synteny.Block
	Data     *feature.ChromosomeData
}

type Browser struct {
	ctx      AppContext
	log      *zap.Logger
	width    float64
	renderer Renderer
	status   Status

	orientation synteny.Orientation
	index       *synteny.Index
	scales      *synteny.BlockScales
	view        *viewport.Viewport
	data        *feature.ChromosomeData
	refTree     *interval.IntTree
	colors      *feature.ColorResolver
	loaded      LoadKey

	highlightedGenes []feature.Gene
	highlightedQTLs  []feature.QTL
	chrQTLs          []feature.QTL
	qtlLanes         map[string]feature.Lane

	filter           filterState
	showOnlyFiltered bool
	showLabels       bool
}

// New creates a browser drawing into width pixels. A nil renderer is
// replaced by NopRenderer.
func New(ctx AppContext, width float64, r Renderer) *Browser {
	if ctx.Logger == nil {
		ctx.Logger = zap.NewNop()
	}
	if ctx.Preferences == (viewport.Preferences{}) {
		ctx.Preferences = viewport.DefaultPreferences()
	}
	if r == nil {
		r = NopRenderer{}
	}
	return &Browser{
		ctx:      ctx,
		log:      ctx.Logger,
		width:    width,
		renderer: r,
		colors:   feature.NewColorResolver(),
		status:   Status{Message: "no data loaded", Kind: StatusFinished},
		qtlLanes: map[string]feature.Lane{},
	}
}

func (b *Browser) setStatus(msg string, kind StatusKind) {
	b.status = Status{Message: msg, Kind: kind}
	b.renderer.StatusChanged(b.status)
}

func (b *Browser) fail(msg string, err error) error {
	b.setStatus(msg, StatusError)
	b.log.Error(msg, zap.Error(err))
	return err
}

// Render replaces all loaded state with params and draws from scratch. The
// interval becomes the one Reset returns to.
func (b *Browser) Render(p LoadParams) error {
	if len(p.Blocks) == 0 {
		return b.fail("no block data", genome.ErrMissingBlockData)
	}
	if p.Data == nil || len(p.Data.Reference) == 0 {
		return b.fail("no gene data", genome.ErrMissingGeneData)
	}
	if b.ctx.Reference == nil {
		return b.fail("missing data", errors.New("no reference species"))
	}
	v := b.ctx.Reference.Validator()
	if !v.ValidInterval(p.Interval) {
		return b.fail("invalid interval", v.Err())
	}
	chrSize, _ := b.ctx.Reference.ChromosomeSize(p.Interval.Chr)

	b.setStatus("rendering", StatusProcessing)
	index, err := synteny.NewIndex(p.Blocks)
	if err != nil {
		return b.fail("no block data", err)
	}
	view, err := viewport.New(p.Interval, chrSize, b.width, b.ctx.Preferences)
	if err != nil {
		return b.fail("invalid interval", err)
	}

	b.index = index
	b.view = view
	b.scales = synteny.NewBlockScales(p.Blocks, view.BasesToPixels())
	b.data = p.Data
	b.refTree = buildGeneTree(p.Data.Reference)
	b.colors = feature.NewColorResolver()
	b.filter = filterState{}
	b.resolveHighlights()
	b.loaded = b.currentKey()

	b.log.Info("block view rendered",
		zap.String("interval", view.Interval().String()),
		zap.Int("blocks", len(p.Blocks)),
		zap.Int("reference_genes", len(p.Data.Reference)),
		zap.Int("comparison_genes", len(p.Data.Comparison)))

	b.renderer.Rendered(b)
	b.setStatus("done", StatusFinished)
	return nil
}

func (b *Browser) Loaded() bool { return b.view != nil }

func (b *Browser) Status() Status { return b.status }

func (b *Browser) Orientation() synteny.Orientation { return b.orientation }

func (b *Browser) Data() *feature.ChromosomeData { return b.data }

func (b *Browser) Index() *synteny.Index { return b.index }

func (b *Browser) Colors() *feature.ColorResolver { return b.colors }

func (b *Browser) Context() AppContext { return b.ctx }

func (b *Browser) Width() float64 { return b.width }

// Interval is the visible reference interval.
func (b *Browser) Interval() genome.Interval {
	if b.view == nil {
		return genome.Interval{}
	}
	return b.view.Interval()
}

func (b *Browser) Transform() viewport.Transform {
	if b.view == nil {
		return viewport.Transform{}
	}
	return b.view.Transform()
}

// ChromosomeColor is the colour of a comparison chromosome, empty when the
// scheme has none.
func (b *Browser) ChromosomeColor(chr string) string {
	return b.ctx.Colors[chr]
}

func (b *Browser) table() *synteny.Table {
	return b.index.Table(b.orientation)
}
