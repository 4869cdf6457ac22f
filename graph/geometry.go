package graph

// Point is a WGS84 location.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinLat, MinLon float64
	MaxLat, MaxLon float64
}

// emptyRect sorts so that the first Expand replaces both corners.
func emptyRect() Rect {
	return Rect{MinLat: 91, MinLon: 181, MaxLat: -91, MaxLon: -181}
}

// Expand grows the rect to cover p.
func (r Rect) Expand(p Point) Rect {
	if p.Lat < r.MinLat {
		r.MinLat = p.Lat
	}
	if p.Lat > r.MaxLat {
		r.MaxLat = p.Lat
	}
	if p.Lon < r.MinLon {
		r.MinLon = p.Lon
	}
	if p.Lon > r.MaxLon {
		r.MaxLon = p.Lon
	}
	return r
}

// Intersects reports whether the two rects overlap (touching counts).
func (r Rect) Intersects(o Rect) bool {
	return r.MinLat <= o.MaxLat && o.MinLat <= r.MaxLat &&
		r.MinLon <= o.MaxLon && o.MinLon <= r.MaxLon
}

// Covers reports whether o lies entirely within r.
func (r Rect) Covers(o Rect) bool {
	return r.MinLat <= o.MinLat && r.MaxLat >= o.MaxLat &&
		r.MinLon <= o.MinLon && r.MaxLon >= o.MaxLon
}

// PolyLine is an ordered sequence of shape points.
type PolyLine []Point

// Bounds returns the bounding box of the line.
func (l PolyLine) Bounds() Rect {
	r := emptyRect()
	for _, p := range l {
		r = r.Expand(p)
	}
	return r
}

// Polygon is a closed ring. The closing segment from the last point back to
// the first is implicit.
type Polygon []Point

// Bounds returns the bounding box of the ring.
func (pg Polygon) Bounds() Rect {
	r := emptyRect()
	for _, p := range pg {
		r = r.Expand(p)
	}
	return r
}

// ContainsPoint reports whether p lies inside the ring (ray casting).
// Points exactly on the boundary may report either way.
func (pg Polygon) ContainsPoint(p Point) bool {
	inside := false
	n := len(pg)
	if n < 3 {
		return false
	}
	j := n - 1
	for i := 0; i < n; i++ {
		a, b := pg[i], pg[j]
		if (a.Lat > p.Lat) != (b.Lat > p.Lat) {
			cross := (b.Lon-a.Lon)*(p.Lat-a.Lat)/(b.Lat-a.Lat) + a.Lon
			if p.Lon < cross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// FullyEncloses reports whether every shape point of the line lies inside the
// ring and the ring's bounds cover the line's bounds.
func (pg Polygon) FullyEncloses(l PolyLine) bool {
	if len(l) == 0 || !pg.Bounds().Covers(l.Bounds()) {
		return false
	}
	for _, p := range l {
		if !pg.ContainsPoint(p) {
			return false
		}
	}
	return true
}
