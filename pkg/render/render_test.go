package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/yumyai/synbrowser/pkg/browser"
	"github.com/yumyai/synbrowser/pkg/feature"
	"github.com/yumyai/synbrowser/pkg/genome"
	"github.com/yumyai/synbrowser/pkg/model"
	"github.com/yumyai/synbrowser/pkg/synteny"
)

func TestFadeColor(t *testing.T) {
	cases := []struct {
		in   string
		op   float64
		want string
	}{
		{"#f74600", 0.5, "rgba(247,70,0,0.5)"},
		{"#FFFFFF", 1, "rgba(255,255,255,1)"},
		{"00217d", 0.25, "rgba(0,33,125,0.25)"},
		{"black", 0.5, "black"},
		{"#zzzzzz", 0.5, "#zzzzzz"},
	}
	for _, c := range cases {
		if got := FadeColor(c.in, c.op); got != c.want {
			t.Errorf("FadeColor(%q, %v) = %q, want %q", c.in, c.op, got, c.want)
		}
	}
}

func TestStatusColor(t *testing.T) {
	if StatusColor(browser.StatusError) != "rgb(201,48,44)" ||
		StatusColor(browser.StatusProcessing) != "rgb(252,177,5)" ||
		StatusColor(browser.StatusFinished) != "rgb(39,175,24)" {
		t.Error("unexpected status colours")
	}
}

func TestChromosomeColors(t *testing.T) {
	c := ChromosomeColors()
	if len(c) != 24 || c["X"] != "#ce4676" || c["9"] != "#006b07" {
		t.Fatalf("scheme = %v", c)
	}
	c["1"] = "changed"
	if ChromosomeColors()["1"] != "#f74600" {
		t.Error("scheme modified through returned map")
	}
}

func TestRenderBlockViewSVG(t *testing.T) {
	ctx := DefaultContext(browser.AppContext{
		Reference:  genome.NewSpecies(10090, "Mus musculus", []genome.ChromosomeSize{{Chr: "1", Size: 20000000}}),
		Comparison: genome.NewSpecies(9606, "Homo sapiens", []genome.ChromosomeSize{{Chr: "2", Size: 20000000}}),
	})
	b := browser.New(ctx, 800, nil)

	var buf bytes.Buffer
	if err := RenderBlockViewSVG(&buf, b); !errors.Is(err, browser.ErrNotLoaded) {
		t.Fatalf("unloaded: err = %v", err)
	}

	blocks := []synteny.Block{{
		Symbol: "b1", RefChr: "1", RefStart: 1000, RefEnd: 5000,
		CompChr: "2", CompStart: 2000, CompEnd: 6000, OrientationMatch: true,
		Match: synteny.AnchorPoints{Ref: []int{1000, 5000}, Comp: []int{2000, 6000}},
		True:  synteny.AnchorPoints{Ref: []int{1000, 5000}, Comp: []int{2000, 6000}},
	}}
	genes := []model.GeneRecord{{
		GeneID: "r1", Symbol: "Abc1", Chr: "1", StartPos: 2000, EndPos: 2500, Strand: "+",
		CanonicalTranscript: []feature.Exon{{StartPos: 2000, EndPos: 2100}},
		Homologs:            []model.GeneRecord{{GeneID: "c1", Symbol: "ABC1", Chr: "2", StartPos: 3100, EndPos: 3600, Strand: "+"}},
	}}
	err := b.Render(browser.LoadParams{
		Interval: genome.NewInterval("1", 1000, 5000),
		Blocks:   blocks,
		Data:     model.Assemble("1", blocks, genes, TrackHeight),
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	b.SetHighlightedFeatures(nil, []feature.QTL{{ID: "q1", Symbol: "Qtl1", Chr: "1", StartPos: 1500, EndPos: 3000}})

	buf.Reset()
	if err := RenderBlockViewSVG(&buf, b); err != nil {
		t.Fatalf("RenderBlockViewSVG: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"<svg", "Mus musculus", "Chr1:1,000", "Chr2:6,000", "Abc1", "ABC1",
		`class="exon"`, "rgba(133,44,0,0.5)", "Qtl1", "rgb(39,175,24)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("snapshot missing %q", want)
		}
	}
}
