// Package palette converts particle colour settings into RGBA values.
// Everything here is pure and independent of the renderer.
package palette

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// FromHSV converts a hue in degrees (any value, wrapped into [0, 360)),
// saturation and value in [0, 1] (clamped) to an RGBA colour with the given
// alpha.
func FromHSV(h, s, v float64, alpha uint8) color.RGBA {
	c := colorful.Hsv(WrapHue(h), clamp01(s), clamp01(v)).Clamped()
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: alpha}
}

// WrapHue maps any hue to [0, 360).
func WrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// HueCycler advances a hue by a fixed step each frame.
type HueCycler struct {
	hue  float64
	step float64
}

// NewHueCycler starts a cycle at hue 0.
func NewHueCycler(step float64) *HueCycler {
	return &HueCycler{step: step}
}

// Next returns the current hue and advances it.
func (c *HueCycler) Next() float64 {
	h := c.hue
	c.hue = WrapHue(c.hue + c.step)
	return h
}

// Hue returns the current hue without advancing.
func (c *HueCycler) Hue() float64 {
	return c.hue
}
