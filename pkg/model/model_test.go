package model

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/yumyai/synbrowser/pkg/feature"
	"github.com/yumyai/synbrowser/pkg/genome"
	"github.com/yumyai/synbrowser/pkg/synteny"
)

func testBlocks() []synteny.Block {
	return []synteny.Block{
		{Symbol: "b1", RefChr: "1", RefStart: 1000, RefEnd: 5000, CompChr: "2", CompStart: 2000, CompEnd: 6000, OrientationMatch: true},
		{Symbol: "b2", RefChr: "1", RefStart: 8000, RefEnd: 12000, CompChr: "3", CompStart: 20000, CompEnd: 24000},
	}
}

func testGenes() []GeneRecord {
	return []GeneRecord{
		{
			GeneID: "r0", Symbol: "Abc", StartPos: 1100, EndPos: 1500, Strand: "+",
			CanonicalTranscript: []feature.Exon{{StartPos: 1100, EndPos: 1200}, {StartPos: 1100, EndPos: 1200}, {StartPos: 1400, EndPos: 1500}},
			Homologs: []GeneRecord{
				{GeneID: "c0", Symbol: "ABC", Chr: "2", StartPos: 2100, EndPos: 2500, Strand: "+"},
				// outside every block
				{GeneID: "cx", Symbol: "ABCX", Chr: "9", StartPos: 100, EndPos: 200, Strand: "+"},
			},
		},
		{GeneID: "r1", Symbol: "Lonely", StartPos: 3000, EndPos: 3100, Strand: "-"},
		{
			GeneID: "r2", Symbol: "Def", StartPos: 9000, EndPos: 9500, Strand: "+",
			Homologs: []GeneRecord{
				{GeneID: "c1", Symbol: "DEF", Chr: "3", StartPos: 21000, EndPos: 21500, Strand: "-"},
			},
		},
		{
			GeneID: "r3", Symbol: "Abc2", StartPos: 1600, EndPos: 1700, Strand: "+",
			Homologs: []GeneRecord{
				{GeneID: "c0", Symbol: "ABC", Chr: "2", StartPos: 2100, EndPos: 2500, Strand: "+"},
			},
		},
	}
}

func TestAssemble(t *testing.T) {
	d := Assemble("1", testBlocks(), testGenes(), 0)

	wantIDs := []int{0, -2, 2, 3}
	for i, g := range d.Reference {
		if g.HomologID != wantIDs[i] {
			t.Errorf("%s homolog id = %d, want %d", g.GeneID, g.HomologID, wantIDs[i])
		}
		if g.Chr != "1" {
			t.Errorf("%s chr = %q", g.GeneID, g.Chr)
		}
	}

	if len(d.Reference[0].Exons) != 2 {
		t.Errorf("exons were not deduplicated: %v", d.Reference[0].Exons)
	}

	if len(d.Comparison) != 2 {
		t.Fatalf("comparison genes = %+v", d.Comparison)
	}
	c0 := d.Comparison[0]
	if c0.GeneID != "c0" || c0.BlockID != "b1" || !c0.StrandMatch {
		t.Errorf("c0 = %+v", c0)
	}
	if !reflect.DeepEqual(c0.HomologIDs, []int{0, 3}) {
		t.Errorf("c0 homolog ids = %v", c0.HomologIDs)
	}
	if !reflect.DeepEqual(c0.ReferenceHomologs, []string{"r0", "r3"}) {
		t.Errorf("c0 reference homologs = %v", c0.ReferenceHomologs)
	}
	if c1 := d.Comparison[1]; c1.StrandMatch || c1.BlockID != "b2" {
		t.Errorf("c1 = %+v", c1)
	}

	if got := d.GenesToHomologs["c0"]; !reflect.DeepEqual(got, []int{0, 3}) {
		t.Errorf("GenesToHomologs[c0] = %v", got)
	}
	if got := d.GenesToHomologs["r1"]; !reflect.DeepEqual(got, []int{-2}) {
		t.Errorf("GenesToHomologs[r1] = %v", got)
	}
	if e := d.Homologs[0]; !reflect.DeepEqual(e.Comparison, []string{"c0"}) {
		t.Errorf("Homologs[0] = %+v", e)
	}
	if _, ok := d.GenesToHomologs["cx"]; ok {
		t.Error("a homolog outside every block should be dropped")
	}
}

type fakeSource struct {
	calls   int32
	started chan struct{}
	qtlErr  error
}

func (f *fakeSource) Blocks(ctx context.Context, ref, comp int, chr string) ([]synteny.Block, error) {
	if f.started != nil && atomic.AddInt32(&f.calls, 1) == 1 {
		close(f.started)
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return testBlocks(), nil
}

func (f *fakeSource) Genes(ctx context.Context, ref, comp int, chr string) ([]GeneRecord, error) {
	return testGenes(), nil
}

func (f *fakeSource) QTLs(ctx context.Context, taxon int, chr string) ([]feature.QTL, error) {
	if f.qtlErr != nil {
		return nil, f.qtlErr
	}
	return []feature.QTL{{ID: "q1", StartPos: 100, EndPos: 200}}, nil
}

func TestManagerLoad(t *testing.T) {
	m := NewManager(&fakeSource{qtlErr: errors.New("no feature table")}, nil)
	got, err := m.Load(context.Background(), Request{RefTaxon: 10090, CompTaxon: 9606, Chr: "1"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Blocks) != 2 || len(got.Data.Reference) != 4 || got.QTLs != nil {
		t.Errorf("unexpected load result %+v", got)
	}
	job, ok := m.Tracker.Get(got.ID)
	if !ok || job.Status != LoadFinished {
		t.Errorf("job = %+v, %v", job, ok)
	}
}

type emptySource struct{ fakeSource }

func (*emptySource) Blocks(ctx context.Context, ref, comp int, chr string) ([]synteny.Block, error) {
	return nil, nil
}

func TestManagerMissingBlocks(t *testing.T) {
	m := NewManager(&emptySource{}, nil)
	_, err := m.Load(context.Background(), Request{Chr: "1"})
	if !errors.Is(err, genome.ErrMissingBlockData) {
		t.Fatalf("err = %v, want ErrMissingBlockData", err)
	}
	job, _ := m.Tracker.Latest()
	if job.Status != LoadFailed {
		t.Errorf("status = %s, want error", job.Status)
	}
}

func TestManagerSupersededLoad(t *testing.T) {
	src := &fakeSource{started: make(chan struct{})}
	m := NewManager(src, nil)

	first := make(chan error, 1)
	go func() {
		_, err := m.Load(context.Background(), Request{Chr: "1"})
		first <- err
	}()
	<-src.started

	if _, err := m.Load(context.Background(), Request{Chr: "2"}); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if err := <-first; !errors.Is(err, ErrStaleLoad) {
		t.Errorf("first load err = %v, want ErrStaleLoad", err)
	}
	if job, _ := m.Tracker.Latest(); job.Request.Chr != "2" || job.Status != LoadFinished {
		t.Errorf("latest job = %+v", job)
	}
}
