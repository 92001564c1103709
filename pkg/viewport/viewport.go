// Package viewport tracks the visible reference interval and the affine
// transform that places base positions on screen.
package viewport

import (
	"errors"
	"fmt"
	"math"

	"github.com/yumyai/synbrowser/pkg/genome"
	"github.com/yumyai/synbrowser/pkg/scale"
)

// ErrInputBusy is returned when another input source holds the viewport.
var ErrInputBusy = errors.New("another interaction is in progress")

type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// ParseDirection accepts "+" and "-".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "+":
		return Forward, nil
	case "-":
		return Backward, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

type Preferences struct {
	Pan      float64 `json:"pan"`
	ZoomIn   float64 `json:"zoom_in"`
	ZoomOut  float64 `json:"zoom_out"`
	MinWidth int     `json:"min_width"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Pan:      0.5,
		ZoomIn:   3.0 / 4.0,
		ZoomOut:  4.0 / 3.0,
		MinWidth: 200000,
	}
}

// Transform places a base at ScaleFactor*basesToPixels(pos)+XTranslation.
type Transform struct {
	ScaleFactor  float64 `json:"scale_factor"`
	XTranslation float64 `json:"x_translation"`
}

// Viewport is not safe for concurrent use; all changes are expected to come
// from one event loop.
type Viewport struct {
	width         float64
	maxBase       int
	prefs         Preferences
	basesToPixels scale.Linear

	interval  genome.Interval
	original  genome.Interval
	transform Transform

	guard       guard
	scrollScale float64
}

// New places iv in a viewport of width pixels over a chromosome of
// chrSize bases. iv becomes the interval Reset returns to.
func New(iv genome.Interval, chrSize int, width float64, prefs Preferences) (*Viewport, error) {
	if chrSize <= 0 || width <= 0 {
		return nil, fmt.Errorf("viewport needs positive chromosome size and width, got %d and %v", chrSize, width)
	}

	v := &Viewport{
		width:         width,
		maxBase:       chrSize,
		prefs:         prefs,
		basesToPixels: scale.NewLinear(0, float64(chrSize), 0, width),
		scrollScale:   1,
	}
	if err := v.SetInterval(iv); err != nil {
		return nil, err
	}
	v.original = v.interval
	return v, nil
}

// SetInterval recomputes the transform. Size is recomputed from the bounds,
// which must lie inside the chromosome.
func (v *Viewport) SetInterval(iv genome.Interval) error {
	iv = genome.NewInterval(iv.Chr, iv.StartPos, iv.EndPos)
	if iv.Size <= 0 {
		return fmt.Errorf("%w: %s", genome.ErrDegenerateInterval, iv)
	}
	if iv.StartPos < 0 || iv.EndPos > v.maxBase {
		return fmt.Errorf("%w: %s outside [0, %d]", genome.ErrInvalidRange, iv, v.maxBase)
	}

	sf := v.width / v.basesToPixels.Map(float64(iv.Size))
	v.interval = iv
	v.transform = Transform{
		ScaleFactor:  sf,
		XTranslation: -sf * v.basesToPixels.Map(float64(iv.StartPos)),
	}
	return nil
}

func (v *Viewport) Interval() genome.Interval { return v.interval }

func (v *Viewport) Original() genome.Interval { return v.original }

func (v *Viewport) Transform() Transform { return v.transform }

func (v *Viewport) Width() float64 { return v.width }

func (v *Viewport) MaxBase() int { return v.maxBase }

func (v *Viewport) Preferences() Preferences { return v.prefs }

// BasesToPixels is the unzoomed base scale of the whole chromosome.
func (v *Viewport) BasesToPixels() scale.Linear { return v.basesToPixels }

// X places a reference base position in the viewport.
func (v *Viewport) X(pos float64) float64 {
	return v.transform.ScaleFactor*v.basesToPixels.Map(pos) + v.transform.XTranslation
}

// Apply moves an unzoomed pixel position into the viewport.
func (v *Viewport) Apply(px float64) float64 {
	return v.transform.ScaleFactor*px + v.transform.XTranslation
}

// Span is the on-screen width of [start, end].
func (v *Viewport) Span(start, end float64) float64 {
	return v.X(end) - v.X(start)
}

// IsWithinView reports whether any part of an element spanning the two
// pixel positions lies on screen.
func (v *Viewport) IsWithinView(x0, x1 float64) bool {
	return (x0 < v.width || x1 < v.width) && (x1 > 0 || x0 > 0)
}

// Pan shifts the view by the pan fraction of its size without leaving
// the chromosome.
func (v *Viewport) Pan(dir Direction) error {
	iv := v.interval
	shift := int(math.Round(float64(iv.Size) * v.prefs.Pan))

	if dir == Forward {
		if iv.EndPos+shift > v.maxBase {
			shift = v.maxBase - iv.EndPos
		}
	} else {
		if iv.StartPos-shift < 0 {
			shift = iv.StartPos
		}
		shift = -shift
	}
	if shift == 0 {
		return nil
	}
	return v.SetInterval(genome.NewInterval(iv.Chr, iv.StartPos+shift, iv.EndPos+shift))
}

// Zoom scales the view size by the zoom ratio around its midpoint. Zooming
// in stops at MinWidth and zooming out stops at the chromosome length.
func (v *Viewport) Zoom(dir Direction) error {
	iv := v.interval
	var target int

	if dir == Forward {
		if iv.Size <= v.prefs.MinWidth {
			return nil
		}
		target = int(math.Round(float64(iv.Size) * v.prefs.ZoomIn))
		if target < v.prefs.MinWidth {
			target = v.prefs.MinWidth
		}
	} else {
		if iv.Size >= v.maxBase {
			return nil
		}
		target = int(math.Round(float64(iv.Size) * v.prefs.ZoomOut))
		if target > v.maxBase {
			target = v.maxBase
		}
	}

	start := int(math.Round(iv.Mid() - float64(target)/2))
	return v.SetInterval(v.clamp(iv.Chr, start, target))
}

// clamp shifts [start, start+size) back inside the chromosome.
func (v *Viewport) clamp(chr string, start, size int) genome.Interval {
	if size > v.maxBase {
		size = v.maxBase
	}
	if start < 0 {
		start = 0
	}
	if start+size > v.maxBase {
		start = v.maxBase - size
	}
	return genome.NewInterval(chr, start, start+size)
}

// Reset returns to the interval the viewport was created with.
func (v *Viewport) Reset() error {
	return v.SetInterval(v.original)
}

// FocusOn shows [start, end] with margin bases on either side.
func (v *Viewport) FocusOn(start, end, margin int) error {
	if end < start {
		start, end = end, start
	}
	lo := start - margin
	size := end - start + 2*margin
	if size < v.prefs.MinWidth {
		lo -= (v.prefs.MinWidth - size) / 2
		size = v.prefs.MinWidth
	}
	return v.SetInterval(v.clamp(v.interval.Chr, lo, size))
}
