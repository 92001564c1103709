// Package scale holds the linear maps every coordinate conversion is built on.
package scale

// Linear maps a continuous domain onto a continuous range. A collapsed
// domain maps every input to the start of the range.
type Linear struct {
	D0, D1 float64
	R0, R1 float64
}

func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{D0: d0, D1: d1, R0: r0, R1: r1}
}

func (l Linear) Map(x float64) float64 {
	span := l.D1 - l.D0
	if span == 0 {
		return l.R0
	}
	return l.R0 + (x-l.D0)/span*(l.R1-l.R0)
}

// Invert maps a range value back into the domain.
func (l Linear) Invert(y float64) float64 {
	span := l.R1 - l.R0
	if span == 0 {
		return l.D0
	}
	return l.D0 + (y-l.R0)/span*(l.D1-l.D0)
}

func (l Linear) Domain() (float64, float64) {
	return l.D0, l.D1
}

func (l Linear) Range() (float64, float64) {
	return l.R0, l.R1
}

// Increasing reports whether the map preserves the order of its inputs.
func (l Linear) Increasing() bool {
	return (l.D1-l.D0)*(l.R1-l.R0) >= 0
}
