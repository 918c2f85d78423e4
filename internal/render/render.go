// Package render draws address ranges of the hexagonal grid as SVG.
package render

import (
	"fmt"
	"io"

	"github.com/gravitas-015/hexplane/pkg/hex"
	"github.com/gravitas-015/hexplane/pkg/hexcolor"
)

// Color modes.
const (
	ModePalette = "palette" // cycle the scheme palette in draw order
	ModeHash    = "hash"    // deterministic pseudo-color per address
)

// Region selects the addresses to draw: either a rectangular address range
// or a disk around a center.
type Region struct {
	IMin, IMax int64
	JMin, JMax int64

	Disk   bool
	Center hex.Address
	Radius int
}

// MaxCells caps how many hexagons one rendered document may contain. Region
// bounds arrive straight from query strings and flags, so the cap is checked
// before any allocation sized from them.
const MaxCells = 1 << 20

// RectRegion selects the rectangular address range [iMin..iMax] x [jMin..jMax].
func RectRegion(iMin, iMax, jMin, jMax int64) Region {
	return Region{IMin: iMin, IMax: iMax, JMin: jMin, JMax: jMax}
}

// DiskRegion selects all addresses within radius steps of center.
func DiskRegion(center hex.Address, radius int) Region {
	return Region{Disk: true, Center: center, Radius: radius}
}

// Cells returns the number of addresses in the region. Empty regions and
// regions larger than MaxCells are rejected.
func (r Region) Cells() (int64, error) {
	if r.Disk {
		if r.Radius < 0 {
			return 0, fmt.Errorf("render: negative disk radius %d", r.Radius)
		}
		rr := int64(r.Radius)
		// 1 + 3r(r+1) cells; r > 590 already exceeds MaxCells.
		if rr > 590 {
			return 0, fmt.Errorf("render: disk radius %d exceeds %d cells", r.Radius, MaxCells)
		}
		return 1 + 3*rr*(rr+1), nil
	}
	if r.IMax < r.IMin || r.JMax < r.JMin {
		return 0, fmt.Errorf("render: empty region")
	}
	ni := r.IMax - r.IMin + 1
	nj := r.JMax - r.JMin + 1
	// ni or nj <= 0 here means the subtraction wrapped around.
	if ni <= 0 || nj <= 0 || ni > MaxCells || nj > MaxCells || ni*nj > MaxCells {
		return 0, fmt.Errorf("render: region exceeds %d cells", MaxCells)
	}
	return ni * nj, nil
}

// Addresses enumerates the region in a stable order. Empty and oversized
// regions yield nil.
func (r Region) Addresses() []hex.Address {
	n, err := r.Cells()
	if err != nil {
		return nil
	}
	if r.Disk {
		return hex.Disk(r.Center, r.Radius)
	}
	res := make([]hex.Address, 0, n)
	for i := r.IMin; i <= r.IMax; i++ {
		for j := r.JMin; j <= r.JMax; j++ {
			res = append(res, hex.Address{I: i, J: j})
		}
	}
	return res
}

// Options controls scale and coloring.
type Options struct {
	Size        float64 // world-to-output scale, > 0
	Mode        string  // ModePalette or ModeHash
	Scheme      *hexcolor.Scheme
	StrokeWidth float64 // in output units
}

// Renderer draws grid regions with fixed options.
type Renderer struct {
	opts Options
}

// New returns a Renderer, filling unset options with defaults.
func New(opts Options) *Renderer {
	if opts.Size <= 0 {
		opts.Size = 24
	}
	if opts.Mode == "" {
		opts.Mode = ModePalette
	}
	if opts.Scheme == nil {
		opts.Scheme = hexcolor.DefaultScheme()
	}
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = 1
	}
	return &Renderer{opts: opts}
}

// Render draws every hexagon in the region to w as an SVG document. Output is
// deterministic for a given region and options.
func (r *Renderer) Render(w io.Writer, region Region) error {
	if _, err := region.Cells(); err != nil {
		return err
	}
	addrs := region.Addresses()

	origins := make([]hex.WorldPoint, len(addrs))
	for k, a := range addrs {
		o, err := hex.AddressToWorld(a)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		origins[k] = hex.WorldPoint{X: o.X * r.opts.Size, Y: o.Y * r.opts.Size}
	}

	// World bounds of all footprints, in output units.
	minX, maxX := origins[0].X, origins[0].X
	minY, maxY := origins[0].Y, origins[0].Y
	for _, o := range origins {
		minX = minFloat(minX, o.X)
		maxX = maxFloat(maxX, o.X)
		minY = minFloat(minY, o.Y)
		maxY = maxFloat(maxY, o.Y)
	}
	minX -= 0.25 * r.opts.Size
	maxX += 1.25 * r.opts.Size
	maxY += 2 * r.opts.Size

	svg := NewSVG(w)
	svg.Start(minX, minY, maxX-minX, maxY-minY)
	svg.Rect(minX, minY, maxX-minX, maxY-minY, r.opts.Scheme.Background.Hex())

	stroke := r.opts.Scheme.Grid.Hex()
	pts := make([]hex.WorldPoint, 6)
	for k, a := range addrs {
		for v, off := range hex.Shape[:6] {
			pts[v] = hex.WorldPoint{
				X: origins[k].X + off.X*r.opts.Size,
				Y: origins[k].Y + off.Y*r.opts.Size,
			}
		}

		var fill string
		switch r.opts.Mode {
		case ModeHash:
			fill = hexcolor.HashColor(a).Hex()
		default:
			fill = r.opts.Scheme.Cycle(k).Hex()
		}
		svg.Polygon(pts, fill, stroke, r.opts.StrokeWidth)
	}

	svg.End()
	return svg.Err()
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
