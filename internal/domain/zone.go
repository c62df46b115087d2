package domain

// ZoneRect 平面图上的命名矩形区域
//
// Bounds are normalized plan coordinates with X1<=X2, Y1<=Y2. Zone rects are
// never mutated in place; editing is delete + recreate.
type ZoneRect struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	X1        float64 `json:"x1"`
	Y1        float64 `json:"y1"`
	X2        float64 `json:"x2"`
	Y2        float64 `json:"y2"`
	CreatedAt int64   `json:"created_at"` // epoch millis
}

// Contains reports whether the closed rectangle contains (x, y).
func (z *ZoneRect) Contains(x, y float64) bool {
	return x >= z.X1 && x <= z.X2 && y >= z.Y1 && y <= z.Y2
}
