package geom

// Rect is an axis-aligned rectangle described by its minimum and maximum
// corners.
type Rect struct {
	Min, Max Vec2
}

// RectFromWH returns a rectangle of the given size centered at the origin.
func RectFromWH(w, h float32) Rect {
	return Rect{Min: Vec2{X: -w / 2, Y: -h / 2}, Max: Vec2{X: w / 2, Y: h / 2}}
}

// RectFromXYWH returns a rectangle of the given size centered at (x, y).
func RectFromXYWH(x, y, w, h float32) Rect {
	return Rect{Min: Vec2{X: x - w/2, Y: y - h/2}, Max: Vec2{X: x + w/2, Y: y + h/2}}
}

// BoundingRect returns the smallest rectangle containing all points.
// The zero Rect is returned for an empty slice.
func BoundingRect(points []Vec2) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r = r.Include(p)
	}
	return r
}

// Include returns the rectangle grown to contain p.
func (r Rect) Include(p Vec2) Rect {
	if p.X < r.Min.X {
		r.Min.X = p.X
	}
	if p.Y < r.Min.Y {
		r.Min.Y = p.Y
	}
	if p.X > r.Max.X {
		r.Max.X = p.X
	}
	if p.Y > r.Max.Y {
		r.Max.Y = p.Y
	}
	return r
}

// W returns the width of the rectangle.
func (r Rect) W() float32 { return r.Max.X - r.Min.X }

// H returns the height of the rectangle.
func (r Rect) H() float32 { return r.Max.Y - r.Min.Y }

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Corners returns the corners counter-clockwise starting at the top-left:
// top-left, bottom-left, bottom-right, top-right.
func (r Rect) Corners() [4]Vec2 {
	return [4]Vec2{
		{X: r.Min.X, Y: r.Max.Y},
		{X: r.Min.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Min.Y},
		{X: r.Max.X, Y: r.Max.Y},
	}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.W() <= 0 || r.H() <= 0
}

// Centroid returns the arithmetic mean of the points.
func Centroid(points []Vec2) Vec2 {
	if len(points) == 0 {
		return Vec2{}
	}
	var sum Vec2
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float32(len(points)))
}
