package hex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRing(t *testing.T) {
	c := Address{2, -1}

	assert.Equal(t, []Address{c}, Ring(c, 0))

	for k := 1; k <= 5; k++ {
		ring := Ring(c, k)
		require.Len(t, ring, 6*k, "ring %d", k)

		seen := make(map[Address]bool, len(ring))
		for _, a := range ring {
			assert.Equal(t, int64(k), Distance(c, a), "ring %d member (%d, %d)", k, a.I, a.J)
			assert.False(t, seen[a], "duplicate (%d, %d) in ring %d", a.I, a.J, k)
			seen[a] = true
		}
	}
}

func TestDisk(t *testing.T) {
	c := Address{-4, 3}

	assert.Equal(t, []Address{c}, Disk(c, 0))
	assert.Nil(t, Disk(c, -1))

	for r := 1; r <= 4; r++ {
		disk := Disk(c, r)
		require.Len(t, disk, 1+3*r*(r+1), "disk %d", r)

		seen := make(map[Address]bool, len(disk))
		for _, a := range disk {
			assert.LessOrEqual(t, Distance(c, a), int64(r))
			assert.False(t, seen[a], "duplicate (%d, %d) in disk %d", a.I, a.J, r)
			seen[a] = true
		}
	}
}

func TestDiskContainsAllRings(t *testing.T) {
	c := Address{0, 0}
	disk := make(map[Address]bool)
	for _, a := range Disk(c, 3) {
		disk[a] = true
	}
	for k := 0; k <= 3; k++ {
		for _, a := range Ring(c, k) {
			assert.True(t, disk[a], "(%d, %d) from ring %d missing in disk", a.I, a.J, k)
		}
	}
}
