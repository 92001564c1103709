package synteny

import (
	"errors"
	"reflect"
	"testing"

	"github.com/yumyai/synbrowser/pkg/genome"
	"github.com/yumyai/synbrowser/pkg/scale"
)

func rawBlocks() []Block {
	return []Block{
		{Symbol: "b2", RefChr: "1", RefStart: 8000, RefEnd: 12000, CompChr: "3", CompStart: 20000, CompEnd: 24000, OrientationMatch: false},
		{Symbol: "b1", RefChr: "1", RefStart: 1000, RefEnd: 5000, CompChr: "2", CompStart: 2000, CompEnd: 6000, OrientationMatch: true},
	}
}

func testHomologs() []HomologPair {
	return []HomologPair{
		{RefChr: "1", RefStart: 2000, RefEnd: 2500, RefStrand: "+", CompChr: "2", CompStart: 3100, CompEnd: 3600, CompStrand: "+"},
		{RefChr: "1", RefStart: 3000, RefEnd: 3200, RefStrand: "+", CompChr: "2", CompStart: 4000, CompEnd: 4100, CompStrand: "-"},
		{RefChr: "1", RefStart: 9000, RefEnd: 9500, RefStrand: "+", CompChr: "3", CompStart: 22000, CompEnd: 22400, CompStrand: "-"},
		{RefChr: "1", RefStart: 10000, RefEnd: 10100, RefStrand: "-", CompChr: "3", CompStart: 1, CompEnd: 50, CompStrand: "+"},
		{RefChr: "0", RefStart: 1500, RefEnd: 1600, RefStrand: "+", CompChr: "2", CompStart: 2500, CompEnd: 2600, CompStrand: "+"},
	}
}

func testIndex(t *testing.T) *Index {
	t.Helper()
	x, err := NewIndex(DeriveAnchors(rawBlocks(), testHomologs()))
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	return x
}

func TestDeriveAnchors(t *testing.T) {
	blocks := DeriveAnchors(rawBlocks(), testHomologs())
	if blocks[0].Symbol != "b1" || blocks[1].Symbol != "b2" {
		t.Fatalf("blocks not ordered by reference start: %s, %s", blocks[0].Symbol, blocks[1].Symbol)
	}

	want := map[string][2]AnchorPoints{
		"b1": {
			{Ref: []int{1000, 2000, 2500, 5000}, Comp: []int{2000, 3100, 3600, 6000}},
			{Ref: []int{1000, 2000, 2500, 5000}, Comp: []int{2000, 3100, 3600, 6000}},
		},
		"b2": {
			{Ref: []int{8000, 9000, 9500, 12000}, Comp: []int{24000, 22400, 22000, 20000}},
			{Ref: []int{8000, 9000, 9500, 12000}, Comp: []int{20000, 22000, 22400, 24000}},
		},
	}

	for _, b := range blocks {
		w := want[b.Symbol]
		if !reflect.DeepEqual(b.Match, w[0]) {
			t.Errorf("%s match anchors = %+v, want %+v", b.Symbol, b.Match, w[0])
		}
		if !reflect.DeepEqual(b.True, w[1]) {
			t.Errorf("%s true anchors = %+v, want %+v", b.Symbol, b.True, w[1])
		}
	}
}

func TestDeriveAnchorsOverlappingBlocks(t *testing.T) {
	blocks := []Block{
		{Symbol: "b1", RefChr: "1", RefStart: 1000, RefEnd: 5000, CompChr: "2", CompStart: 2000, CompEnd: 6000, OrientationMatch: true},
		{Symbol: "b5", RefChr: "1", RefStart: 3000, RefEnd: 7000, CompChr: "4", CompStart: 10000, CompEnd: 14000, OrientationMatch: true},
	}
	homologs := []HomologPair{
		{RefChr: "1", RefStart: 3500, RefEnd: 3700, RefStrand: "+", CompChr: "4", CompStart: 11000, CompEnd: 11200, CompStrand: "+"},
		{RefChr: "1", RefStart: 4000, RefEnd: 4200, RefStrand: "+", CompChr: "2", CompStart: 5000, CompEnd: 5200, CompStrand: "+"},
	}

	want := map[string]AnchorPoints{
		"b1": {Ref: []int{1000, 4000, 4200, 5000}, Comp: []int{2000, 5000, 5200, 6000}},
		"b5": {Ref: []int{3000, 3500, 3700, 7000}, Comp: []int{10000, 11000, 11200, 14000}},
	}
	for _, b := range DeriveAnchors(blocks, homologs) {
		if !reflect.DeepEqual(b.Match, want[b.Symbol]) {
			t.Errorf("%s match anchors = %+v, want %+v", b.Symbol, b.Match, want[b.Symbol])
		}
		if !reflect.DeepEqual(b.True, want[b.Symbol]) {
			t.Errorf("%s true anchors = %+v, want %+v", b.Symbol, b.True, want[b.Symbol])
		}
	}
}

func TestNewIndexEmpty(t *testing.T) {
	if _, err := NewIndex(nil); !errors.Is(err, genome.ErrMissingBlockData) {
		t.Fatalf("err = %v, want ErrMissingBlockData", err)
	}
	if _, err := NewIndex(rawBlocks()); !errors.Is(err, genome.ErrMissingBlockData) {
		t.Fatalf("blocks without anchors: err = %v, want ErrMissingBlockData", err)
	}
}

func TestBlockLookup(t *testing.T) {
	x := testIndex(t)

	b2, ok := x.Table(MatchAnchors).Lookup("b2")
	if !ok {
		t.Fatal("b2 missing from match table")
	}
	want := BlockInfo{Symbol: "b2", StartPos: 8000, EndPos: 12000, CompStart: 24000, CompEnd: 20000, Chr: "3", ScaleToComp: -1}
	if b2 != want {
		t.Errorf("match b2 = %+v, want %+v", b2, want)
	}

	tb2, _ := x.Table(TrueAnchors).Lookup("b2")
	if tb2.ScaleToComp != 1 || tb2.CompStart != 20000 {
		t.Errorf("true b2 = %+v", tb2)
	}

	if got := b2.CompPos(9000); got != 23000 {
		t.Errorf("CompPos(9000) = %d, want 23000", got)
	}
	if got := b2.CompPos(12000); got != 20000 {
		t.Errorf("CompPos at block end = %d, want 20000", got)
	}
}

func TestEndpoints(t *testing.T) {
	x := testIndex(t)
	tab := x.Table(MatchAnchors)

	wantAsc := []Endpoint{
		{Loc: 1000, GreaterThan: "b1"},
		{Loc: 5000, LessThan: "b1"},
		{Loc: 8000, GreaterThan: "b2"},
		{Loc: 12000, LessThan: "b2"},
	}
	if !reflect.DeepEqual(tab.Ascending(), wantAsc) {
		t.Errorf("Ascending = %+v", tab.Ascending())
	}
	desc := tab.Descending()
	if desc[0].Loc != 12000 || desc[3].Loc != 1000 {
		t.Errorf("Descending = %+v", desc)
	}
}

func TestEndpointsAdjacentBlocks(t *testing.T) {
	blocks := DeriveAnchors([]Block{
		{Symbol: "a", RefChr: "1", RefStart: 0, RefEnd: 100, CompChr: "1", CompStart: 0, CompEnd: 100, OrientationMatch: true},
		{Symbol: "b", RefChr: "1", RefStart: 100, RefEnd: 200, CompChr: "1", CompStart: 300, CompEnd: 400, OrientationMatch: true},
	}, nil)
	x, err := NewIndex(blocks)
	if err != nil {
		t.Fatal(err)
	}
	asc := x.Table(MatchAnchors).Ascending()
	if asc[1].LessThan != "a" || asc[2].GreaterThan != "b" {
		t.Errorf("block end should sort before block start at a shared position: %+v", asc)
	}

	r, ok := x.Table(MatchAnchors).ComparisonCoordinates(genome.NewInterval("1", 50, 100))
	if !ok || r.EndBlock != "a" || r.CompEnd != 100 {
		t.Errorf("edge on shared boundary = %+v, %v", r, ok)
	}
}

func TestComparisonCoordinates(t *testing.T) {
	x := testIndex(t)

	cases := []struct {
		name string
		o    Orientation
		iv   genome.Interval
		want CompRange
		ok   bool
	}{
		{"inside one block", MatchAnchors, genome.NewInterval("1", 2000, 4000),
			CompRange{StartBlock: "b1", EndBlock: "b1", RefStart: 2000, RefEnd: 4000, StartChr: "2", CompStart: 3000, EndChr: "2", CompEnd: 5000}, true},
		{"start in gap", MatchAnchors, genome.NewInterval("1", 6000, 10000),
			CompRange{StartBlock: "b2", EndBlock: "b2", RefStart: 8000, RefEnd: 10000, StartChr: "3", CompStart: 24000, EndChr: "3", CompEnd: 22000}, true},
		{"start in gap true anchors", TrueAnchors, genome.NewInterval("1", 6000, 10000),
			CompRange{StartBlock: "b2", EndBlock: "b2", RefStart: 8000, RefEnd: 10000, StartChr: "3", CompStart: 20000, EndChr: "3", CompEnd: 22000}, true},
		{"spans everything", MatchAnchors, genome.NewInterval("1", 0, 13000),
			CompRange{StartBlock: "b1", EndBlock: "b2", RefStart: 1000, RefEnd: 12000, StartChr: "2", CompStart: 2000, EndChr: "3", CompEnd: 20000}, true},
		{"wholly in gap", MatchAnchors, genome.NewInterval("1", 5500, 7000), CompRange{}, false},
		{"before first block", MatchAnchors, genome.NewInterval("1", 0, 500), CompRange{}, false},
		{"after last block", MatchAnchors, genome.NewInterval("1", 12500, 14000), CompRange{}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := x.Table(c.o).ComparisonCoordinates(c.iv)
			if ok != c.ok {
				t.Fatalf("ok = %v, want %v (%+v)", ok, c.ok, got)
			}
			if got != c.want {
				t.Errorf("got %+v, want %+v", got, c.want)
			}
		})
	}
}

func TestCompRangeLabels(t *testing.T) {
	r := CompRange{StartChr: "2", CompStart: 3000, EndChr: "3", CompEnd: 1234567}
	if r.StartLabel() != "Chr2:3,000" || r.EndLabel() != "Chr3:1,234,567" {
		t.Errorf("labels = %q, %q", r.StartLabel(), r.EndLabel())
	}
}

func TestIndicators(t *testing.T) {
	x := testIndex(t)
	want := []Indicator{{Block: "b2", From: 8000, To: 12000}, {Block: "b2", From: 12000, To: 8000}}
	if got := x.Table(MatchAnchors).Indicators(); !reflect.DeepEqual(got, want) {
		t.Errorf("match indicators = %+v", got)
	}
	if got := x.Table(TrueAnchors).Indicators(); len(got) != 0 {
		t.Errorf("true orientation should have no indicators, got %+v", got)
	}
}

func TestOverlapping(t *testing.T) {
	x := testIndex(t)

	syms := func(bs []Block) []string {
		var out []string
		for _, b := range bs {
			out = append(out, b.Symbol)
		}
		return out
	}

	if got := syms(x.Overlapping(4000, 9000)); !reflect.DeepEqual(got, []string{"b1", "b2"}) {
		t.Errorf("Overlapping(4000, 9000) = %v", got)
	}
	if got := x.Overlapping(5001, 7999); len(got) != 0 {
		t.Errorf("gap overlaps %v", syms(got))
	}
	if b, ok := x.BlockAt(5000); !ok || b.Symbol != "b1" {
		t.Errorf("BlockAt(5000) = %v, %v", b.Symbol, ok)
	}
	if b, ok := x.BlockAt(8000); !ok || b.Symbol != "b2" {
		t.Errorf("BlockAt(8000) = %v, %v", b.Symbol, ok)
	}
	if _, ok := x.BlockAt(6000); ok {
		t.Error("BlockAt(6000) should miss")
	}
}

func TestBlockScalesMonotonicity(t *testing.T) {
	x := testIndex(t)
	s := NewBlockScales(x.Blocks(), scale.NewLinear(0, 20000, 0, 1000))

	cases := []struct {
		o          Orientation
		sym        string
		increasing bool
	}{
		{MatchAnchors, "b1", true},
		{MatchAnchors, "b2", false},
		{TrueAnchors, "b1", true},
		{TrueAnchors, "b2", true},
	}

	for _, c := range cases {
		l, ok := s.Scale(c.o, c.sym)
		if !ok {
			t.Fatalf("no %s scale for %s", c.o, c.sym)
		}
		b, _ := x.Block(c.sym)
		prev := l.Map(float64(b.CompStart))
		for p := b.CompStart + 100; p <= b.CompEnd; p += 100 {
			cur := l.Map(float64(p))
			if c.increasing && cur < prev || !c.increasing && cur > prev {
				t.Fatalf("%s %s scale not monotone at %d: %v after %v", c.o, c.sym, p, cur, prev)
			}
			prev = cur
		}
	}

	b1, _ := s.Scale(MatchAnchors, "b1")
	if got := b1.Map(2000); got != 50 {
		t.Errorf("b1(2000) = %v, want 50", got)
	}
	if got := b1.Map(6000); got != 250 {
		t.Errorf("b1(6000) = %v, want 250", got)
	}
}

func TestAnchorLines(t *testing.T) {
	x := testIndex(t)
	s := NewBlockScales(x.Blocks(), scale.NewLinear(0, 20000, 0, 1000))

	lines := s.AnchorLines(MatchAnchors)
	if len(lines) != 8 {
		t.Fatalf("got %d anchor lines, want 8", len(lines))
	}
	for _, l := range lines {
		if l.Block == "b2" && l.RefX == 400 && l.CompX != 400 {
			t.Errorf("first b2 anchor should meet its reference position: %+v", l)
		}
	}
}

func TestParseOrientation(t *testing.T) {
	for in, want := range map[string]Orientation{"match": MatchAnchors, "TRUE": TrueAnchors, "trueAnchorPoints": TrueAnchors} {
		got, err := ParseOrientation(in)
		if err != nil || got != want {
			t.Errorf("ParseOrientation(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseOrientation("sideways"); err == nil {
		t.Error("expected error")
	}
}
