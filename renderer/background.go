package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// TrailCanvas is an offscreen target that keeps everything drawn on it.
// The caller decides when it is cleared; left alone, particles leave trails.
type TrailCanvas struct {
	target      rl.RenderTexture2D
	width       int32
	height      int32
	clearColor  rl.Color
	initialized bool
}

// NewTrailCanvas creates a canvas of the given size.
func NewTrailCanvas(width, height int32, clearColor rl.Color) *TrailCanvas {
	return &TrailCanvas{
		width:      width,
		height:     height,
		clearColor: clearColor,
	}
}

// Init allocates the render texture (must be called after the raylib window is created).
func (c *TrailCanvas) Init() {
	if c.initialized {
		return
	}
	c.target = rl.LoadRenderTexture(c.width, c.height)
	c.initialized = true
}

// Begin starts drawing onto the canvas. When firstFrame is set the canvas is
// cleared before anything is drawn.
func (c *TrailCanvas) Begin(firstFrame bool) {
	if !c.initialized {
		c.Init()
	}
	rl.BeginTextureMode(c.target)
	if firstFrame {
		rl.ClearBackground(c.clearColor)
	}
}

// End finishes drawing onto the canvas.
func (c *TrailCanvas) End() {
	rl.EndTextureMode()
}

// Present draws the canvas onto the current framebuffer.
func (c *TrailCanvas) Present() {
	// Render textures are stored upside down
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(c.width), Height: -float32(c.height)}
	rl.DrawTextureRec(c.target.Texture, src, rl.Vector2{}, rl.White)
}

// Unload frees the render texture.
func (c *TrailCanvas) Unload() {
	if c.initialized {
		rl.UnloadRenderTexture(c.target)
		c.initialized = false
	}
}
