package hex

import (
	"errors"
	"fmt"
	"math"
)

// Address identifies one hexagon on the infinite flat-top grid.
// The addressing is axial: both components are unbounded integers.
type Address struct {
	I int64
	J int64
}

// WorldPoint is a position in the continuous cartesian plane covering the grid.
type WorldPoint struct {
	X float64
	Y float64
}

// Grid geometry. Columns sit one unit apart horizontally, hexagons within a
// column sit two units apart vertically, and adjacent columns are offset by
// one unit. CornerCut is fixed by the hexagon's vertex geometry; changing the
// hexagon proportions would require re-deriving it, so it is not a tunable.
const (
	HorizontalPitch = 1.0
	VerticalPitch   = 2.0
	CornerCut       = 0.25
)

// Edge-adjacent neighbor offsets. Applying an offset moves by the same world
// displacement from every starting address.
var (
	Up        = Address{0, +1}
	UpRight   = Address{+1, +1}
	DownRight = Address{+1, 0}
	Down      = Address{0, -1}
	DownLeft  = Address{-1, -1}
	UpLeft    = Address{-1, 0}
)

// Directions lists the six neighbor offsets in rotational order.
var Directions = []Address{Up, UpRight, DownRight, Down, DownLeft, UpLeft}

// ErrInvalidInput reports a non-finite world coordinate or an address outside
// the range float64 represents exactly.
var ErrInvalidInput = errors.New("hex: invalid input")

// maxCoord bounds address components so the forward mapping stays exact.
const maxCoord = int64(1) << 53

// Add returns a+b in address space.
func (a Address) Add(b Address) Address { return Address{a.I + b.I, a.J + b.J} }

// Sub returns a-b in address space.
func (a Address) Sub(b Address) Address { return Address{a.I - b.I, a.J - b.J} }

// Mul scales an address vector by k.
func (a Address) Mul(k int64) Address { return Address{a.I * k, a.J * k} }

// AddressToWorld returns the world-space origin of hexagon a.
//
// The mapping is x = i, y = 2j - i. It is total over the grid except when a
// component (or the resulting y) exceeds the exactly representable float64
// integer range, in which case it reports ErrInvalidInput.
func AddressToWorld(a Address) (WorldPoint, error) {
	if absInt64(a.I) > maxCoord || absInt64(a.J) > maxCoord {
		return WorldPoint{}, fmt.Errorf("%w: address (%d, %d) exceeds exact float64 range", ErrInvalidInput, a.I, a.J)
	}
	y := 2*a.J - a.I
	if absInt64(y) > maxCoord {
		return WorldPoint{}, fmt.Errorf("%w: origin y for (%d, %d) exceeds exact float64 range", ErrInvalidInput, a.I, a.J)
	}
	return WorldPoint{X: float64(a.I), Y: float64(y)}, nil
}

// WorldToAddress returns the address of the hexagon containing p.
//
// The candidate column square found by floored division strictly contains the
// hexagon plus four corner triangles belonging to four different neighbors,
// so the candidate is corrected by four L1 corner tests. The tests run in a
// fixed order with strict comparisons; a point exactly on a 0.25 cut line
// falls through, so boundary points resolve to exactly one hexagon.
func WorldToAddress(p WorldPoint) (Address, error) {
	if !isFinite(p.X) || !isFinite(p.Y) {
		return Address{}, fmt.Errorf("%w: non-finite point (%v, %v)", ErrInvalidInput, p.X, p.Y)
	}
	if math.Abs(p.X) > float64(maxCoord) || math.Abs(p.Y) > float64(maxCoord) {
		return Address{}, fmt.Errorf("%w: point (%v, %v) exceeds addressable range", ErrInvalidInput, p.X, p.Y)
	}

	i0 := int64(math.Floor(p.X))
	j0 := int64(math.Floor((p.Y + float64(i0)) / 2))

	origin, err := AddressToWorld(Address{i0, j0})
	if err != nil {
		return Address{}, err
	}

	// Local coordinates with y rescaled so the candidate square is the unit
	// square: 0 <= lx,ly < 1 holds by construction.
	lx := p.X - origin.X
	ly := (p.Y - origin.Y) / 2

	switch {
	case lx+ly < CornerCut:
		return Address{i0, j0}.Add(DownLeft), nil
	case lx+(1-ly) < CornerCut:
		return Address{i0, j0}.Add(UpLeft), nil
	case (1-lx)+(1-ly) < CornerCut:
		return Address{i0, j0}.Add(UpRight), nil
	case (1-lx)+ly < CornerCut:
		return Address{i0, j0}.Add(DownRight), nil
	default:
		return Address{i0, j0}, nil
	}
}

// Neighbors returns the six edge-adjacent addresses in Directions order.
func Neighbors(a Address) [6]Address {
	var n [6]Address
	for k, d := range Directions {
		n[k] = a.Add(d)
	}
	return n
}

// Distance returns the minimum number of edge-adjacent steps between a and b.
// The addressing maps onto standard axial coordinates via (q, r) = (i, j-i),
// so the usual cube-coordinate distance applies.
func Distance(a, b Address) int64 {
	dq := b.I - a.I
	dr := (b.J - b.I) - (a.J - a.I)
	ds := -dq - dr
	return maxInt64(absInt64(dq), maxInt64(absInt64(dr), absInt64(ds)))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
