package scale

import (
	"math"
	"testing"
)

func TestLinearMapInvert(t *testing.T) {
	l := NewLinear(0, 1000, 0, 500)

	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{1000, 500},
		{250, 125},
		{-100, -50},
	}

	for _, c := range cases {
		if got := l.Map(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Map(%v) = %v, want %v", c.in, got, c.want)
		}
		if got := l.Invert(c.want); math.Abs(got-c.in) > 1e-9 {
			t.Errorf("Invert(%v) = %v, want %v", c.want, got, c.in)
		}
	}
}

func TestLinearReversedDomain(t *testing.T) {
	l := NewLinear(6000, 2000, 10, 50)

	if l.Increasing() {
		t.Fatal("reversed domain should not be increasing")
	}
	if got := l.Map(6000); got != 10 {
		t.Errorf("Map(6000) = %v, want 10", got)
	}
	if got := l.Map(4000); got != 30 {
		t.Errorf("Map(4000) = %v, want 30", got)
	}
}

func TestLinearCollapsedDomain(t *testing.T) {
	l := NewLinear(5, 5, 3, 9)
	if got := l.Map(100); got != 3 {
		t.Errorf("collapsed domain Map = %v, want 3", got)
	}
	if got := NewLinear(0, 10, 4, 4).Invert(4); got != 0 {
		t.Errorf("collapsed range Invert = %v, want 0", got)
	}
}
