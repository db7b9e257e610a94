package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/flowfield/config"
)

// Grid describes how the flow field tiles the canvas.
type Grid struct {
	Width, Height int     // Cells along x and y; Width is the flat index stride
	CanvasW       float64 // Canvas size in pixels
	CanvasH       float64
}

// GridFromConfig builds the grid described by cfg.
func GridFromConfig(cfg *config.Config) Grid {
	return Grid{
		Width:   cfg.Field.Width,
		Height:  cfg.Field.Height,
		CanvasW: cfg.Derived.CanvasW,
		CanvasH: cfg.Derived.CanvasH,
	}
}

// Len returns the number of cells.
func (g Grid) Len() int {
	return g.Width * g.Height
}

// Index returns the flat index of cell (x, y).
func (g Grid) Index(x, y int) int {
	return x + y*g.Width
}

// TileSize returns the pixel size of one cell.
func (g Grid) TileSize() (w, h float64) {
	return g.CanvasW / float64(g.Width), g.CanvasH / float64(g.Height)
}

// CellIndex maps a canvas position to the flat index of the cell whose tile
// contains it. Each axis is truncated and clamped separately, so a coordinate
// sitting exactly on the far edge (a value the wrap step can produce) maps to
// the last column or row. Scaling by Width-1 instead would never reach the
// last cell from inside the canvas.
func (g Grid) CellIndex(pos r2.Vec) int {
	gx := clampCell(int(pos.X/g.CanvasW*float64(g.Width)), g.Width)
	gy := clampCell(int(pos.Y/g.CanvasH*float64(g.Height)), g.Height)
	return g.Index(gx, gy)
}

func clampCell(c, n int) int {
	if c < 0 {
		return 0
	}
	if c >= n {
		return n - 1
	}
	return c
}

// FieldParams holds the sampling parameters of the field generator.
type FieldParams struct {
	DX, DY    float64 // Noise-space spacing between adjacent cells
	Magnitude float64 // Length of every generated vector
}

// FlowField is a dense grid of 2D force vectors sampled from noise.
type FlowField struct {
	grid    Grid
	params  FieldParams
	vectors []r2.Vec
}

// NewFlowField allocates a zeroed field over grid.
func NewFlowField(grid Grid, params FieldParams) *FlowField {
	return &FlowField{
		grid:    grid,
		params:  params,
		vectors: make([]r2.Vec, grid.Len()),
	}
}

// NewFlowFieldFromConfig allocates a zeroed field sized and parameterized by cfg.
func NewFlowFieldFromConfig(cfg *config.Config) *FlowField {
	return NewFlowField(GridFromConfig(cfg), FieldParams{
		DX:        cfg.Field.DX,
		DY:        cfg.Field.DY,
		Magnitude: cfg.Field.Magnitude,
	})
}

// Generate overwrites every cell with the direction sampled from noise at
// (x*DX, y*DY, z). The noise value is read as a fraction of a full turn.
func (f *FlowField) Generate(noise NoiseSource, z float64) {
	g := f.grid
	for y := 0; y < g.Height; y++ {
		yOff := float64(y) * f.params.DY
		for x := 0; x < g.Width; x++ {
			xOff := float64(x) * f.params.DX

			angle := noise.Noise3D(xOff, yOff, z) * 2 * math.Pi
			f.vectors[g.Index(x, y)] = r2.Vec{
				X: math.Cos(angle) * f.params.Magnitude,
				Y: math.Sin(angle) * f.params.Magnitude,
			}
		}
	}
}

// At returns the vector stored at flat index i.
func (f *FlowField) At(i int) r2.Vec {
	return f.vectors[i]
}

// Set overwrites the vector at flat index i.
func (f *FlowField) Set(i int, v r2.Vec) {
	f.vectors[i] = v
}

// Sample returns the vector of the cell containing pos.
func (f *FlowField) Sample(pos r2.Vec) r2.Vec {
	return f.vectors[f.grid.CellIndex(pos)]
}

// Len returns the number of cells.
func (f *FlowField) Len() int {
	return len(f.vectors)
}

// Vectors exposes the backing slice for read-only iteration.
func (f *FlowField) Vectors() []r2.Vec {
	return f.vectors
}

// Grid returns the field's grid.
func (f *FlowField) Grid() Grid {
	return f.grid
}

// Params returns the field's sampling parameters.
func (f *FlowField) Params() FieldParams {
	return f.params
}

// SetParams replaces the sampling parameters used by subsequent Generate calls.
func (f *FlowField) SetParams(p FieldParams) {
	f.params = p
}
