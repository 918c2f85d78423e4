// Package hexcolor derives fill colors for hexagons. It is deliberately
// decoupled from the coordinate math: it only consumes addresses.
package hexcolor

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/gravitas-015/hexplane/pkg/hex"
)

// minChannel keeps hash-derived fills visible against dark backgrounds.
const minChannel = 40

// hashAddress returns the stable 64-bit hash of an address.
func hashAddress(a hex.Address) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(a.I))
	binary.LittleEndian.PutUint64(buf[8:], uint64(a.J))
	return xxhash.Sum64(buf[:])
}

// HashColor returns the deterministic pseudo-color for an address. The same
// address always yields the same color; nearby addresses are uncorrelated.
func HashColor(a hex.Address) colorful.Color {
	h := hashAddress(a)
	r := byte(h)
	g := byte(h >> 8)
	b := byte(h >> 16)
	if r < minChannel {
		r += minChannel
	}
	if g < minChannel {
		g += minChannel
	}
	if b < minChannel {
		b += minChannel
	}
	return colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}
}
