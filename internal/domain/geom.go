package domain

// Clamp01 clamps n into [0, 1]. Normalized plan coordinates go through this
// on every write.
func Clamp01(n float64) float64 {
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

// NormalizeRect orders two corner points into x1<=x2, y1<=y2 bounds.
func NormalizeRect(ax, ay, bx, by float64) (x1, y1, x2, y2 float64) {
	x1, x2 = ax, bx
	if bx < ax {
		x1, x2 = bx, ax
	}
	y1, y2 = ay, by
	if by < ay {
		y1, y2 = by, ay
	}
	return x1, y1, x2, y2
}
