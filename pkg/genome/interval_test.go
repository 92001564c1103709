package genome

import (
	"errors"
	"testing"
)

func TestParseInterval(t *testing.T) {
	cases := []struct {
		in   string
		want Interval
	}{
		{"Chr1:1000-5000", Interval{Chr: "1", StartPos: 1000, EndPos: 5000, Size: 4000}},
		{"chr1:1,000-5,000", Interval{Chr: "1", StartPos: 1000, EndPos: 5000, Size: 4000}},
		{"CHRx:10-20", Interval{Chr: "X", StartPos: 10, EndPos: 20, Size: 10}},
		{"  12 : 300 - 900 ", Interval{Chr: "12", StartPos: 300, EndPos: 900, Size: 600}},
		{"y:0-1", Interval{Chr: "Y", StartPos: 0, EndPos: 1, Size: 1}},
		// bounds are not checked while parsing
		{"Chr2:500-100", Interval{Chr: "2", StartPos: 500, EndPos: 100, Size: -400}},
	}

	for _, c := range cases {
		got, err := ParseInterval(c.in)
		if err != nil {
			t.Errorf("ParseInterval(%q) unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseInterval(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func TestParseIntervalInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"Chr1",
		"Chr1:100",
		"Chr1:-5-100",
		"Chr1:abc-100",
		"Chr_1:1-2",
		"Chr1:1-2:3",
		"Chr1:99999999999999999999999-1",
	} {
		if _, err := ParseInterval(in); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("ParseInterval(%q) err = %v, want ErrInvalidFormat", in, err)
		}
	}
}

func TestIntervalEqual(t *testing.T) {
	a := NewInterval("1", 10, 20)
	if !a.Equal(NewInterval("1", 10, 20)) {
		t.Error("identical intervals should be equal")
	}
	if a.Equal(NewInterval("2", 10, 20)) || a.Equal(NewInterval("1", 11, 20)) || a.Equal(NewInterval("1", 10, 21)) {
		t.Error("intervals differing in any field should not be equal")
	}
}

func TestIntervalString(t *testing.T) {
	iv := NewInterval("1", 1000, 1234567)
	if got := iv.String(); got != "Chr1:1,000-1,234,567" {
		t.Errorf("String() = %q", got)
	}
	if got := PositionLabel("X", 2500); got != "ChrX:2,500" {
		t.Errorf("PositionLabel = %q", got)
	}
}
