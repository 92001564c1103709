// Package genome holds the values shared by every part of the block view:
// intervals on a chromosome, species chromosome tables, and the circular
// genome coordinate system.
package genome

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

var intervalPattern = regexp.MustCompile(`(?i)^\s*(Chr)?([a-z0-9]+)\s*:\s*([0-9]+)\s*-\s*([0-9]+)\s*$`)

// Interval is a contiguous span on a single chromosome. Size is EndPos-StartPos
// and is not forced positive here; see Validator and ErrDegenerateInterval.
type Interval struct {
	Chr      string `json:"chr"`
	StartPos int    `json:"start_pos"`
	EndPos   int    `json:"end_pos"`
	Size     int    `json:"size"`
}

func NewInterval(chr string, start, end int) Interval {
	return Interval{
		Chr:      chr,
		StartPos: start,
		EndPos:   end,
		Size:     end - start,
	}
}

// ParseInterval reads strings such as "Chr1:1,000-5,000" or "x:10-20".
// The chromosome is upper-cased. Bounds are not checked.
func ParseInterval(s string) (Interval, error) {
	if strings.TrimSpace(s) == "" {
		return Interval{}, fmt.Errorf("%w: empty input", ErrInvalidFormat)
	}

	m := intervalPattern.FindStringSubmatch(strings.ReplaceAll(s, ",", ""))
	if m == nil {
		return Interval{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	start, err := strconv.Atoi(m[3])
	if err != nil {
		return Interval{}, fmt.Errorf("%w: start %q", ErrInvalidFormat, m[3])
	}
	end, err := strconv.Atoi(m[4])
	if err != nil {
		return Interval{}, fmt.Errorf("%w: end %q", ErrInvalidFormat, m[4])
	}

	return NewInterval(strings.ToUpper(m[2]), start, end), nil
}

// Equal compares chromosome and bounds.
func (iv Interval) Equal(o Interval) bool {
	return iv.Chr == o.Chr && iv.StartPos == o.StartPos && iv.EndPos == o.EndPos
}

func (iv Interval) Mid() float64 {
	return float64(iv.StartPos+iv.EndPos) / 2
}

func (iv Interval) String() string {
	return fmt.Sprintf("Chr%s:%s-%s", iv.Chr, humanize.Comma(int64(iv.StartPos)), humanize.Comma(int64(iv.EndPos)))
}

// PositionLabel formats a single position the way coordinate labels show it.
func PositionLabel(chr string, pos int) string {
	return "Chr" + chr + ":" + humanize.Comma(int64(pos))
}
