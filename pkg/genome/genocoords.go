package genome

import (
	"math"

	"github.com/yumyai/synbrowser/pkg/scale"
)

// GenoCoords lays a genome out on a circle. Chromosomes are arcs in table
// order separated by a fixed gap, and the first chromosome starts at the top.
type GenoCoords struct {
	chrs           []ChromosomeSize
	index          map[string]int
	scales         []scale.Linear
	radiansPerUnit float64
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GenomePos is a position resolved from an angle.
type GenomePos struct {
	Chr string `json:"chr"`
	Pos int    `json:"pos"`
}

func DegToRad(deg float64) float64 {
	return math.Pi * deg / 180
}

func RadToDeg(rad float64) float64 {
	return 180 * rad / math.Pi
}

// ClampRad returns the same angle forced into [0, 2π).
func ClampRad(rad float64) float64 {
	rad = math.Mod(rad, 2*math.Pi)
	if rad < 0 {
		rad += 2 * math.Pi
	}
	return rad
}

func PolarToCartesian(radius, theta float64) Point {
	return Point{X: math.Cos(theta) * radius, Y: math.Sin(theta) * radius}
}

func NewGenoCoords(chrs []ChromosomeSize, spacingRad float64) *GenoCoords {
	total := 0
	for _, c := range chrs {
		total += c.Size
	}

	g := &GenoCoords{
		chrs:   chrs,
		index:  make(map[string]int, len(chrs)),
		scales: make([]scale.Linear, len(chrs)),
	}
	if total > 0 {
		g.radiansPerUnit = (2*math.Pi - spacingRad*float64(len(chrs))) / float64(total)
	}

	accum := 0
	for i, c := range chrs {
		offset := ClampRad(spacingRad*float64(i) + float64(accum)*g.radiansPerUnit + 1.5*math.Pi)
		length := g.radiansPerUnit * float64(c.Size)
		g.scales[i] = scale.NewLinear(0, float64(c.Size), offset, offset+length)
		g.index[c.Chr] = i
		accum += c.Size
	}
	return g
}

func (g *GenoCoords) RadiansPerUnit() float64 {
	return g.radiansPerUnit
}

// PosToRadians returns false for a chromosome that is not on the circle.
func (g *GenoCoords) PosToRadians(chr string, pos int) (float64, bool) {
	i, ok := g.index[chr]
	if !ok {
		return 0, false
	}
	return g.scales[i].Map(float64(pos)), true
}

func (g *GenoCoords) PosToCartesian(radius float64, chr string, pos int) (Point, bool) {
	rad, ok := g.PosToRadians(chr, pos)
	if !ok {
		return Point{}, false
	}
	return PolarToCartesian(radius, rad), true
}

// RadiansToPos finds the chromosome arc containing rad. Angles that fall in
// the gaps between arcs resolve to nothing.
func (g *GenoCoords) RadiansToPos(rad float64) (GenomePos, bool) {
	for i, s := range g.scales {
		start, stop := s.Range()
		adj := rad
		if adj < start {
			adj += 2 * math.Pi
		}
		if start <= adj && adj <= stop {
			return GenomePos{Chr: g.chrs[i].Chr, Pos: int(math.Round(s.Invert(adj)))}, true
		}
	}
	return GenomePos{}, false
}
