package hex

// Ring returns the addresses at exact distance k from center c, starting from
// direction 4 and proceeding around the six sides. If k==0, returns [c].
func Ring(c Address, k int) []Address {
	if k <= 0 {
		return []Address{c}
	}
	res := make([]Address, 0, 6*k)
	cur := c.Add(Directions[4].Mul(int64(k)))
	for side := 0; side < 6; side++ {
		for step := 0; step < k; step++ {
			res = append(res, cur)
			cur = cur.Add(Directions[side])
		}
	}
	return res
}

// Disk returns all addresses at distance <= r from center c.
func Disk(c Address, r int) []Address {
	if r < 0 {
		return nil
	}
	size := 1 + 3*r*(r+1)
	res := make([]Address, 0, size)
	for q := -r; q <= r; q++ {
		lo := max(-r, -q-r)
		hi := min(r, -q+r)
		for s := lo; s <= hi; s++ {
			// (q, s) is a standard axial offset; j = i + r there, i.e. q + s.
			res = append(res, c.Add(Address{int64(q), int64(q + s)}))
		}
	}
	return res
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
