package viewport

import (
	"math"

	"github.com/yumyai/synbrowser/pkg/genome"
)

type source int

const (
	none source = iota
	brush
	scroll
)

// guard lets a single input source change the viewport at a time.
type guard struct {
	holder source
}

func (g *guard) acquire(s source) bool {
	if g.holder != none && g.holder != s {
		return false
	}
	g.holder = s
	return true
}

func (g *guard) release(s source) {
	if g.holder == s {
		g.holder = none
	}
}

// Busy reports whether an input source currently holds the viewport.
func (v *Viewport) Busy() bool {
	return v.guard.holder != none
}

func (v *Viewport) BeginBrush() error {
	if !v.guard.acquire(brush) {
		return ErrInputBusy
	}
	return nil
}

// Brush moves the view to the overview selection given in overview pixels.
// A zero-width selection keeps the current size centred on x.
func (v *Viewport) Brush(x, width float64) error {
	if v.guard.holder != brush {
		return ErrInputBusy
	}

	start := v.basesToPixels.Invert(x)
	size := v.basesToPixels.Invert(x+width) - start
	if width == 0 {
		size = float64(v.interval.Size)
		start -= size / 2
	}
	if start < 0 {
		start = 0
	}

	s := int(math.Round(start))
	n := int(math.Round(size))
	if n <= 0 {
		return genome.ErrDegenerateInterval
	}
	return v.SetInterval(v.clamp(v.interval.Chr, s, n))
}

func (v *Viewport) EndBrush() {
	v.guard.release(brush)
}

// ScrollZoom zooms in when the wheel scale grows and out when it shrinks.
func (v *Viewport) ScrollZoom(wheelScale float64) error {
	if !v.guard.acquire(scroll) {
		return ErrInputBusy
	}
	defer v.guard.release(scroll)

	prev := v.scrollScale
	v.scrollScale = wheelScale
	switch {
	case wheelScale > prev:
		return v.Zoom(Forward)
	case wheelScale < prev:
		return v.Zoom(Backward)
	}
	return nil
}
