package render

import (
	"html/template"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/yumyai/synbrowser/logger"
	"github.com/yumyai/synbrowser/pkg/browser"
	"github.com/yumyai/synbrowser/pkg/feature"
	"github.com/yumyai/synbrowser/pkg/viewport"
)

// Track geometry of the snapshot, in pixels.
const (
	OverviewHeight = 20.0
	TrackHeight    = 100.0
	RefTrackTop    = 50.0
	CompTrackTop   = 200.0
	SnapshotHeight = 340.0

	anchorOpacity = 0.5
	qtlOpacity    = 0.6
	qtlColor      = "#8b0000"
)

var blockViewTemplate *template.Template

type anchorView struct {
	X1, X2 float64
	Color  string
}

type qtlView struct {
	X, Y, Width, Height float64
	Label               string
	Color               string
}

type blockViewPage struct {
	Width, Height float64
	RefTop        float64
	CompTop       float64
	TrackHeight   float64
	GeneHeight    float64
	Title         string
	Status        browser.Status
	StatusColor   string
	Labels        browser.CoordinateLabels
	Blocks        []browser.BlockView
	RefLabels     []browser.BlockLabel
	CompLabels    []browser.BlockLabel
	Anchors       []anchorView
	Indicators    []browser.Line
	RefGenes      []browser.GeneView
	CompGenes     []browser.GeneView
	QTLs          []qtlView
	Ticks         []browser.Tick
	SelX, SelW    float64
	Features      []browser.FeatureIndicator
}

// init initializes the templates used for rendering the SVG snapshot.
func init() {
	mainTmpl := `<svg xmlns="http://www.w3.org/2000/svg" width="{{f .Width}}" height="{{f .Height}}" font-family="sans-serif" font-size="10">
	<title>{{.Title}}</title>
	<circle cx="{{f (sub .Width 8)}}" cy="8" r="5" fill="{{.StatusColor}}"><title>{{.Status.Message}}</title></circle>
	{{template "overview" .}}
	{{template "tracks" .}}
</svg>`

	overviewTmpl := `{{define "overview"}}
	<g class="overview">
		<rect x="0" y="0" width="{{f .Width}}" height="{{f 10}}" fill="#eeeeee"/>
		<rect class="selection" x="{{f .SelX}}" y="0" width="{{f .SelW}}" height="10" fill="none" stroke="black"/>
		{{range .Ticks}}<line x1="{{f .X}}" x2="{{f .X}}" y1="10" y2="14" stroke="black"/>{{end}}
		{{range .Features}}<rect class="indicator {{.Kind}}" x="{{f .X}}" y="0" width="{{if .Width}}{{f .Width}}{{else}}1{{end}}" height="10" fill="red"/>{{end}}
	</g>{{end}}`

	tracksTmpl := `{{define "tracks"}}
	<text x="0" y="{{f (sub .RefTop 4)}}">{{.Labels.RefStart}}</text>
	<text x="{{f .Width}}" y="{{f (sub .RefTop 4)}}" text-anchor="end">{{.Labels.RefEnd}}</text>
	{{if .Labels.Comparison}}
	<text x="0" y="{{f (add .CompTop (add .TrackHeight 12))}}">{{.Labels.CompStart}}</text>
	<text x="{{f .Width}}" y="{{f (add .CompTop (add .TrackHeight 12))}}" text-anchor="end">{{.Labels.CompEnd}}</text>
	{{end}}
	<g class="blocks">
		{{range .Blocks}}
		<rect class="ref-block" x="{{f .X}}" y="{{f $.RefTop}}" width="{{f .Width}}" height="{{f $.TrackHeight}}" fill="{{fade .Color 0.2}}"/>
		<rect class="comp-block" x="{{f .X}}" y="{{f $.CompTop}}" width="{{f .Width}}" height="{{f $.TrackHeight}}" fill="{{fade .Color 0.2}}"/>
		{{end}}
		{{range .RefLabels}}<text x="{{f .X}}" y="{{f (add $.RefTop 10)}}" text-anchor="{{.Anchor}}">{{.Text}}</text>{{end}}
		{{range .CompLabels}}<text x="{{f .X}}" y="{{f (add $.CompTop 10)}}" text-anchor="{{.Anchor}}">{{.Text}}</text>{{end}}
	</g>
	<g class="anchors">
		{{range .Anchors}}<line x1="{{f .X1}}" x2="{{f .X2}}" y1="{{f (add $.RefTop $.TrackHeight)}}" y2="{{f $.CompTop}}" stroke="{{.Color}}"/>{{end}}
		{{range .Indicators}}<line class="inversion" x1="{{f .X1}}" x2="{{f .X2}}" y1="{{f (add $.RefTop $.TrackHeight)}}" y2="{{f $.CompTop}}" stroke="black" stroke-dasharray="4"/>{{end}}
	</g>
	<g class="qtls">
		{{range .QTLs}}<rect x="{{f .X}}" y="{{f .Y}}" width="{{f .Width}}" height="{{f .Height}}" fill="{{.Color}}"><title>{{.Label}}</title></rect>{{end}}
	</g>
	<g class="ref-genes">{{range .RefGenes}}{{template "gene" (pair . $.RefTop $.GeneHeight)}}{{end}}</g>
	<g class="comp-genes">{{range .CompGenes}}{{template "gene" (pair . $.CompTop $.GeneHeight)}}{{end}}</g>
	{{end}}`

	geneTmpl := `{{define "gene"}}{{$g := .Gene}}{{$y := add .Top $g.Y}}
		<g class="gene" data-id="{{$g.GeneID}}">
			<rect x="{{f $g.X}}" y="{{f (add $y 2)}}" width="{{f $g.Width}}" height="1" fill="{{$g.Color}}"/>
			{{range $g.Exons}}<rect class="exon" x="{{f (add $g.X .X)}}" y="{{f $y}}" width="{{f .Width}}" height="{{f $.Height}}" fill="{{$g.Color}}"/>{{end}}
			{{if $g.ShowLabel}}<text x="{{f $g.X}}" y="{{f (sub $y 2)}}" fill="{{$g.Color}}">{{$g.Symbol}}</text>{{end}}
		</g>{{end}}`

	funcMap := template.FuncMap{
		"f":    func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
		"add":  func(a, b float64) float64 { return a + b },
		"sub":  func(a, b float64) float64 { return a - b },
		"fade": FadeColor,
		"pair": func(g browser.GeneView, top, height float64) geneRow {
			return geneRow{Gene: g, Top: top, Height: height}
		},
	}

	blockViewTemplate = template.New("blockview").Funcs(funcMap)
	blockViewTemplate = template.Must(blockViewTemplate.Parse(mainTmpl))
	blockViewTemplate = template.Must(blockViewTemplate.Parse(overviewTmpl))
	blockViewTemplate = template.Must(blockViewTemplate.Parse(tracksTmpl))
	blockViewTemplate = template.Must(blockViewTemplate.Parse(geneTmpl))
}

type geneRow struct {
	Gene   browser.GeneView
	Top    float64
	Height float64
}

// RenderBlockViewSVG paints the current state of b as a static SVG.
func RenderBlockViewSVG(w io.Writer, b *browser.Browser) error {
	if !b.Loaded() {
		return browser.ErrNotLoaded
	}

	ctx := b.Context()
	title := b.Interval().String()
	if ctx.Reference != nil && ctx.Comparison != nil {
		title = ctx.Reference.Name() + " " + title + " vs " + ctx.Comparison.Name()
	}

	data := blockViewPage{
		Width:       b.Width(),
		Height:      SnapshotHeight,
		RefTop:      RefTrackTop,
		CompTop:     CompTrackTop,
		TrackHeight: TrackHeight,
		GeneHeight:  feature.GeneHeight,
		Title:       title,
		Status:      b.Status(),
		StatusColor: StatusColor(b.Status().Kind),
		Labels:      b.CoordinateLabels(),
		Blocks:      b.ReferenceBlocks(),
		Indicators:  b.OrientationIndicators(),
		RefGenes:    b.VisibleReferenceGenes(),
		CompGenes:   b.VisibleComparisonGenes(),
		Ticks:       b.OverviewTicks(),
		Features:    b.FeatureIndicators(),
	}
	data.RefLabels, data.CompLabels = b.BlockCoordinateLabels()
	data.SelX, data.SelW = b.Selection()

	for _, l := range b.AnchorLines() {
		data.Anchors = append(data.Anchors, anchorView{
			X1:    l.X1,
			X2:    l.X2,
			Color: FadeColor(b.ChromosomeColor(l.Chr), anchorOpacity),
		})
	}
	for _, q := range b.ReferenceQTLs() {
		n := q.NumLanes
		if n < 1 {
			n = 1
		}
		h := TrackHeight / float64(n)
		data.QTLs = append(data.QTLs, qtlView{
			X:      q.X,
			Y:      RefTrackTop + float64(q.Lane.Lane)*h,
			Width:  q.Width,
			Height: h,
			Label:  q.Symbol,
			Color:  FadeColor(qtlColor, qtlOpacity),
		})
	}

	logger.Debug("Rendering block view",
		zap.String("interval", b.Interval().String()),
		zap.Int("reference_genes", len(data.RefGenes)),
		zap.Int("comparison_genes", len(data.CompGenes)))
	return blockViewTemplate.Execute(w, data)
}

// DefaultContext is an AppContext with the chromosome colour scheme and
// default preferences filled in.
func DefaultContext(ctx browser.AppContext) browser.AppContext {
	if ctx.Colors == nil {
		ctx.Colors = ChromosomeColors()
	}
	if ctx.Preferences == (viewport.Preferences{}) {
		ctx.Preferences = viewport.DefaultPreferences()
	}
	return ctx
}
