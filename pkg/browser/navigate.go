package browser

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/yumyai/synbrowser/internal/util"
	"github.com/yumyai/synbrowser/pkg/genome"
	"github.com/yumyai/synbrowser/pkg/synteny"
	"github.com/yumyai/synbrowser/pkg/viewport"
)

func (b *Browser) intervalChanged() {
	b.setStatus("updating view", StatusProcessing)
	b.log.Debug("interval changed", zap.String("interval", b.view.Interval().String()))
	b.renderer.IntervalChanged(b)
	b.setStatus("done", StatusFinished)
}

// ChangeInterval validates iv against the reference genome and moves the
// view to it. Only the first validation error is returned.
func (b *Browser) ChangeInterval(iv genome.Interval) error {
	if b.view == nil {
		return ErrNotLoaded
	}
	v := b.ctx.Reference.Validator()
	if !v.ValidInterval(iv) {
		return v.Err()
	}
	if util.NormalizeChr(iv.Chr) != util.NormalizeChr(b.view.Interval().Chr) {
		return fmt.Errorf("%w: %s", ErrReloadRequired, iv.Chr)
	}
	if err := b.view.SetInterval(iv); err != nil {
		return err
	}
	b.intervalChanged()
	return nil
}

// ChangeIntervalString parses s and calls ChangeInterval.
func (b *Browser) ChangeIntervalString(s string) error {
	iv, err := genome.ParseInterval(s)
	if err != nil {
		return err
	}
	return b.ChangeInterval(iv)
}

// ChangeOrientation swaps the active anchor table. The interval is kept.
func (b *Browser) ChangeOrientation(o synteny.Orientation) error {
	if b.view == nil {
		return ErrNotLoaded
	}
	if o == b.orientation {
		return nil
	}
	b.orientation = o
	b.log.Debug("orientation changed", zap.Stringer("orientation", o))
	b.renderer.OrientationChanged(b)
	return nil
}

func (b *Browser) navigate(op func(*viewport.Viewport) error) error {
	if b.view == nil {
		return ErrNotLoaded
	}
	before := b.view.Interval()
	if err := op(b.view); err != nil {
		return err
	}
	if !b.view.Interval().Equal(before) {
		b.intervalChanged()
	}
	return nil
}

func (b *Browser) Pan(dir viewport.Direction) error {
	return b.navigate(func(v *viewport.Viewport) error { return v.Pan(dir) })
}

func (b *Browser) Zoom(dir viewport.Direction) error {
	return b.navigate(func(v *viewport.Viewport) error { return v.Zoom(dir) })
}

// Reset returns to the interval the chromosome was loaded with.
func (b *Browser) Reset() error {
	return b.navigate(func(v *viewport.Viewport) error { return v.Reset() })
}

// FocusOn centres the view on [start, end] with margin bases each side.
func (b *Browser) FocusOn(start, end, margin int) error {
	return b.navigate(func(v *viewport.Viewport) error { return v.FocusOn(start, end, margin) })
}

// FocusOnBlock navigates to the block under an overview click.
func (b *Browser) FocusOnBlock(pos int) (synteny.Block, error) {
	if b.view == nil {
		return synteny.Block{}, ErrNotLoaded
	}
	blk, ok := b.index.BlockAt(pos)
	if !ok {
		return synteny.Block{}, fmt.Errorf("no block at %d", pos)
	}
	return blk, b.FocusOn(blk.RefStart, blk.RefEnd, 0)
}

// HandleKey maps a key name to a navigation. It reports whether the key
// was recognised.
func (b *Browser) HandleKey(key string) (bool, error) {
	switch key {
	case "ArrowLeft":
		return true, b.Pan(viewport.Backward)
	case "ArrowRight":
		return true, b.Pan(viewport.Forward)
	case "+", "=":
		return true, b.Zoom(viewport.Forward)
	case "-":
		return true, b.Zoom(viewport.Backward)
	}
	return false, nil
}

func (b *Browser) BeginBrush() error {
	if b.view == nil {
		return ErrNotLoaded
	}
	return b.view.BeginBrush()
}

// Brush moves the view to an overview selection of width pixels starting
// at x. A zero width recentres the view on x.
func (b *Browser) Brush(x, width float64) error {
	return b.navigate(func(v *viewport.Viewport) error { return v.Brush(x, width) })
}

func (b *Browser) EndBrush() {
	if b.view != nil {
		b.view.EndBrush()
	}
}

func (b *Browser) ScrollZoom(wheelScale float64) error {
	return b.navigate(func(v *viewport.Viewport) error { return v.ScrollZoom(wheelScale) })
}

// Busy reports whether a brush or scroll currently holds the view.
func (b *Browser) Busy() bool {
	return b.view != nil && b.view.Busy()
}
