package graph

import "math"

// cellSize is the grid resolution in degrees. At mid latitudes one cell is
// roughly a kilometer across, which keeps parking-lot sized areas in a
// handful of cells.
const cellSize = 0.01

type cellKey struct {
	lat, lon int32
}

// areaIndex is a uniform grid over area bounding boxes. Queries collect the
// areas registered in every cell the query rect touches and de-duplicate.
type areaIndex struct {
	cells map[cellKey][]*Area
	ids   map[int64]struct{}
	all   []*Area
}

func newAreaIndex() *areaIndex {
	return &areaIndex{
		cells: make(map[cellKey][]*Area),
		ids:   make(map[int64]struct{}),
	}
}

func (idx *areaIndex) has(id int64) bool {
	_, ok := idx.ids[id]
	return ok
}

func (idx *areaIndex) insert(a *Area) {
	idx.ids[a.ID()] = struct{}{}
	idx.all = append(idx.all, a)
	forEachCell(a.Bounds(), func(k cellKey) {
		idx.cells[k] = append(idx.cells[k], a)
	})
}

func (idx *areaIndex) intersecting(bounds Rect, filter func(*Area) bool) []*Area {
	seen := make(map[int64]struct{})
	var out []*Area
	forEachCell(bounds, func(k cellKey) {
		for _, a := range idx.cells[k] {
			if _, ok := seen[a.ID()]; ok {
				continue
			}
			seen[a.ID()] = struct{}{}
			if !a.Bounds().Intersects(bounds) {
				continue
			}
			if filter == nil || filter(a) {
				out = append(out, a)
			}
		}
	})
	return out
}

func forEachCell(r Rect, fn func(cellKey)) {
	minLat := int32(math.Floor(r.MinLat / cellSize))
	maxLat := int32(math.Floor(r.MaxLat / cellSize))
	minLon := int32(math.Floor(r.MinLon / cellSize))
	maxLon := int32(math.Floor(r.MaxLon / cellSize))
	for lat := minLat; lat <= maxLat; lat++ {
		for lon := minLon; lon <= maxLon; lon++ {
			fn(cellKey{lat: lat, lon: lon})
		}
	}
}
