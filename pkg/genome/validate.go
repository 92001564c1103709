package genome

import "strings"

type ChromosomeSize struct {
	Chr  string `json:"chr"`
	Size int    `json:"size"`
}

// Validator checks intervals against a chromosome size table. Errors from
// the last check are kept in the order they were found.
type Validator struct {
	sizes []ChromosomeSize
	errs  []error
}

func NewValidator(sizes []ChromosomeSize) *Validator {
	return &Validator{sizes: sizes}
}

func (v *Validator) lookup(chr string) (ChromosomeSize, bool) {
	for _, c := range v.sizes {
		if strings.EqualFold(c.Chr, chr) {
			return c, true
		}
	}
	return ChromosomeSize{}, false
}

func (v *Validator) fail(kind error, msg string) {
	v.errs = append(v.errs, &ValidationError{Kind: kind, Msg: msg})
}

// ValidChromosome resets the error list.
func (v *Validator) ValidChromosome(chr string) bool {
	v.errs = nil
	if _, ok := v.lookup(chr); !ok {
		v.fail(ErrInvalidChromosome, "Indicated chromosome number is invalid")
		return false
	}
	return true
}

// ValidInterval runs every check and accumulates all failures. A chromosome
// that is not in the table has no size, so both bound checks fail as well.
func (v *Validator) ValidInterval(iv Interval) bool {
	v.ValidChromosome(iv.Chr)
	c, known := v.lookup(iv.Chr)

	if iv.StartPos == iv.EndPos {
		v.fail(ErrInvalidRange, "Interval range must be at least 1")
	} else if iv.StartPos > iv.EndPos {
		v.fail(ErrInvalidRange, "Interval start position must be smaller than the end position")
	}

	if !known || iv.StartPos < 0 || iv.StartPos > c.Size {
		v.fail(ErrInvalidRange, "Interval start position is invalid")
	}
	if !known || iv.EndPos < 0 || iv.EndPos > c.Size {
		v.fail(ErrInvalidRange, "Interval end position is invalid")
	}

	return len(v.errs) == 0
}

func (v *Validator) Errors() []error {
	return v.errs
}

// Err returns the first error, which is the one shown to the user.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return v.errs[0]
}

// ChromosomeSize returns the size entry for chr, if known.
func (v *Validator) ChromosomeSize(chr string) (ChromosomeSize, bool) {
	return v.lookup(chr)
}
