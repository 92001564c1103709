package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yumyai/synbrowser/pkg/feature"
	"github.com/yumyai/synbrowser/pkg/genome"
	"github.com/yumyai/synbrowser/pkg/handler"
	"github.com/yumyai/synbrowser/pkg/model"
	"github.com/yumyai/synbrowser/pkg/render"
	"github.com/yumyai/synbrowser/pkg/synteny"
)

type staticSource struct{}

func (staticSource) Blocks(context.Context, int, int, string) ([]synteny.Block, error) {
	return []synteny.Block{{
		Symbol: "b1", RefChr: "1", RefStart: 1000, RefEnd: 5000,
		CompChr: "2", CompStart: 2000, CompEnd: 6000, OrientationMatch: true,
		Match: synteny.AnchorPoints{Ref: []int{1000, 5000}, Comp: []int{2000, 6000}},
		True:  synteny.AnchorPoints{Ref: []int{1000, 5000}, Comp: []int{2000, 6000}},
	}}, nil
}

func (staticSource) Genes(context.Context, int, int, string) ([]model.GeneRecord, error) {
	return []model.GeneRecord{{
		GeneID: "r1", Symbol: "Abc1", Chr: "1", StartPos: 2000, EndPos: 2500, Strand: "+",
		CanonicalTranscript: []feature.Exon{{StartPos: 2000, EndPos: 2100}},
		Homologs:            []model.GeneRecord{{GeneID: "c1", Chr: "2", StartPos: 3100, EndPos: 3600, Strand: "+"}},
	}}, nil
}

func (staticSource) QTLs(context.Context, int, string) ([]feature.QTL, error) {
	return nil, nil
}

func newServer(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(handler.NewRouter(&handler.DBContext{
		DB:      staticSource{},
		Species: []*genome.Species{genome.NewSpecies(10090, "Mus musculus", []genome.ChromosomeSize{{Chr: "1", Size: 20000000}})},
		Colors:  render.ChromosomeColors(),
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/", srv.Client(), nil)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestNewInvalidURL(t *testing.T) {
	for _, u := range []string{"localhost:8080", "ftp://host", "://"} {
		if _, err := New(u, nil, nil); err == nil {
			t.Errorf("New(%q): want error", u)
		}
	}
}

func TestClientFeedsManager(t *testing.T) {
	c := newServer(t)

	loaded, err := model.NewManager(c, nil).Load(context.Background(), model.Request{RefTaxon: 10090, CompTaxon: 9606, Chr: "1"})
	if err != nil {
		t.Fatalf("Load over http: %v", err)
	}
	if len(loaded.Blocks) != 1 || loaded.Blocks[0].Match.Comp[1] != 6000 {
		t.Errorf("blocks = %+v", loaded.Blocks)
	}
	if len(loaded.Data.Comparison) != 1 || loaded.Data.Reference[0].Exons[0].EndPos != 2100 {
		t.Errorf("data = %+v", loaded.Data)
	}

	sp, err := c.Species(context.Background())
	if err != nil || len(sp) != 1 || sp[0].Name != "Mus musculus" {
		t.Errorf("species = %+v, %v", sp, err)
	}
	colors, err := c.ChromosomeColors(context.Background())
	if err != nil || colors["1"] != "#f74600" {
		t.Errorf("colors = %v, %v", colors, err)
	}
}

func TestClientStatusError(t *testing.T) {
	c := newServer(t)

	_, err := c.Blocks(context.Background(), 0, 9606, "1")
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusBadRequest || se.Message == "" {
		t.Fatalf("err = %v, want 400 StatusError", err)
	}
}
