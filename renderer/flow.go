package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flowfield/systems"
)

// FieldOverlay draws the flow field as one arrow per tile: a line from the
// tile origin along the cell's vector, ending in a small dot.
type FieldOverlay struct {
	scale float32 // Arrow length per unit of field, in tiles
	color rl.Color
}

// NewFieldOverlay creates an overlay with the given arrow scale.
func NewFieldOverlay(scale float32) *FieldOverlay {
	return &FieldOverlay{scale: scale, color: rl.Black}
}

// Draw clears the canvas and draws every cell of field.
func (o *FieldOverlay) Draw(field *systems.FlowField) {
	rl.ClearBackground(rl.RayWhite)
	o.DrawArrows(field)
}

// DrawArrows draws every cell of field over whatever is already drawn.
func (o *FieldOverlay) DrawArrows(field *systems.FlowField) {
	grid := field.Grid()
	tileW, tileH := grid.TileSize()

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			start := rl.Vector2{X: float32(float64(x) * tileW), Y: float32(float64(y) * tileH)}

			v := field.At(grid.Index(x, y))
			end := rl.Vector2{
				X: start.X + float32(v.X*tileW)*o.scale,
				Y: start.Y + float32(v.Y*tileH)*o.scale,
			}

			rl.DrawLineV(start, end, o.color)
			rl.DrawCircleV(end, 2, o.color)
		}
	}
}
