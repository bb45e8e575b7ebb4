package layer

import (
	"fmt"
	"math"

	"geoview/internal/geom"
)

// RasterLayer is a regular grid of values. Row 0 is the northern edge.
type RasterLayer struct {
	base
	origin   geom.Coordinate // top-left corner
	cellSize float64
	rows     int
	cols     int
	values   []float64
}

// NewRasterLayer returns a grid whose top-left corner sits at origin. values
// is row major and must hold rows*cols cells.
func NewRasterLayer(name string, origin geom.Coordinate, cellSize float64, rows, cols int, values []float64) (*RasterLayer, error) {
	if cellSize <= 0 || rows <= 0 || cols <= 0 {
		return nil, &Error{Layer: name, Op: "create", Err: fmt.Errorf("invalid grid %dx%d cell %g", rows, cols, cellSize)}
	}
	if len(values) != rows*cols {
		return nil, &Error{Layer: name, Op: "create", Err: fmt.Errorf("want %d values, got %d", rows*cols, len(values))}
	}
	return &RasterLayer{
		base:     newBase(name, WGS84),
		origin:   origin,
		cellSize: cellSize,
		rows:     rows,
		cols:     cols,
		values:   values,
	}, nil
}

func (r *RasterLayer) GeometryType() GeometryType { return Raster }

func (r *RasterLayer) Extent() geom.Extent {
	return geom.Extent{
		MinX: r.origin.X,
		MinY: r.origin.Y - float64(r.rows)*r.cellSize,
		MaxX: r.origin.X + float64(r.cols)*r.cellSize,
		MaxY: r.origin.Y,
	}
}

// Rows returns the number of grid rows.
func (r *RasterLayer) Rows() int { return r.rows }

// Cols returns the number of grid columns.
func (r *RasterLayer) Cols() int { return r.cols }

// Value returns the cell value at (row, col).
func (r *RasterLayer) Value(row, col int) (float64, bool) {
	if row < 0 || row >= r.rows || col < 0 || col >= r.cols {
		return 0, false
	}
	return r.values[row*r.cols+col], true
}

// Cell returns the grid cell covering c.
func (r *RasterLayer) Cell(c geom.Coordinate) (row, col int, ok bool) {
	col = int(math.Floor((c.X - r.origin.X) / r.cellSize))
	row = int(math.Floor((r.origin.Y - c.Y) / r.cellSize))
	if row < 0 || row >= r.rows || col < 0 || col >= r.cols {
		return 0, 0, false
	}
	return row, col, true
}

func (r *RasterLayer) cellExtent(row, col int) geom.Extent {
	x := r.origin.X + float64(col)*r.cellSize
	y := r.origin.Y - float64(row)*r.cellSize
	return geom.Extent{MinX: x, MinY: y - r.cellSize, MaxX: x + r.cellSize, MaxY: y}
}

// Identify reports the single cell under the center of the tolerant extent.
func (r *RasterLayer) Identify(tolerant, _ geom.Extent) ([]Hit, error) {
	row, col, ok := r.Cell(tolerant.Center())
	if !ok {
		return nil, nil
	}
	v, _ := r.Value(row, col)
	return []Hit{{
		Layer:      r,
		Index:      row*r.cols + col,
		Geometry:   r.cellExtent(row, col),
		Properties: map[string]any{"row": row, "col": col, "value": v},
	}}, nil
}

// CanReproject reports true only for the current projection; resampling
// grids is not supported.
func (r *RasterLayer) CanReproject(to string) bool { return to == r.projection }

func (r *RasterLayer) Reproject(to string) error {
	if to == r.projection {
		return nil
	}
	return &Error{Layer: r.name, Op: "reproject", Err: fmt.Errorf("%w: raster grids stay in %s", ErrCannotReproject, r.projection)}
}
