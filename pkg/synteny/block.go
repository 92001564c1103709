// Package synteny indexes the syntenic blocks between a reference and a
// comparison chromosome and maps comparison positions onto the reference
// axis, block by block.
package synteny

import (
	"fmt"
	"strings"
)

// Orientation selects which anchor set is active.
type Orientation int

const (
	// MatchAnchors pairs anchors as if both blocks were on the same strand.
	MatchAnchors Orientation = iota
	// TrueAnchors keeps the comparison strand direction.
	TrueAnchors
)

func (o Orientation) String() string {
	switch o {
	case TrueAnchors:
		return "true"
	default:
		return "match"
	}
}

func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(s) {
	case "match", "matchanchorpoints", "":
		return MatchAnchors, nil
	case "true", "trueanchorpoints":
		return TrueAnchors, nil
	}
	return MatchAnchors, fmt.Errorf("unknown orientation %q", s)
}

// AnchorPoints pairs reference positions with comparison positions at the
// same index. Ref is sorted ascending.
type AnchorPoints struct {
	Ref  []int `json:"ref_anchor_points"`
	Comp []int `json:"comp_anchor_points"`
}

func (a AnchorPoints) Len() int {
	return len(a.Ref)
}

// Block is one syntenic block as served by the data API. It is immutable
// once loaded.
type Block struct {
	Symbol           string       `json:"symbol"`
	RefTaxonID       int          `json:"ref_taxonid"`
	RefChr           string       `json:"ref_chr"`
	RefStart         int          `json:"ref_start_pos"`
	RefEnd           int          `json:"ref_end_pos"`
	CompTaxonID      int          `json:"comp_taxonid"`
	CompChr          string       `json:"comp_chr"`
	CompStart        int          `json:"comp_start_pos"`
	CompEnd          int          `json:"comp_end_pos"`
	OrientationMatch bool         `json:"same_orientation"`
	Match            AnchorPoints `json:"match_anchor_points"`
	True             AnchorPoints `json:"true_anchor_points"`
}

func (b Block) Anchors(o Orientation) AnchorPoints {
	if o == TrueAnchors {
		return b.True
	}
	return b.Match
}

func (b Block) validate() error {
	for _, o := range []Orientation{MatchAnchors, TrueAnchors} {
		a := b.Anchors(o)
		if a.Len() == 0 {
			return fmt.Errorf("block %s: no %s anchors", b.Symbol, o)
		}
		if len(a.Comp) != len(a.Ref) {
			return fmt.Errorf("block %s: %d %s reference anchors but %d comparison anchors",
				b.Symbol, len(a.Ref), o, len(a.Comp))
		}
	}
	return nil
}
