package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromHSVPrimaries(t *testing.T) {
	tests := []struct {
		name    string
		h, s, v float64
		want    color.RGBA
	}{
		{"red", 0, 1, 1, color.RGBA{R: 255, A: 51}},
		{"green", 120, 1, 1, color.RGBA{G: 255, A: 51}},
		{"blue", 240, 1, 1, color.RGBA{B: 255, A: 51}},
		{"white", 77, 0, 1, color.RGBA{R: 255, G: 255, B: 255, A: 51}},
		{"black", 200, 1, 0, color.RGBA{A: 51}},
		{"wrapped red", 360, 1, 1, color.RGBA{R: 255, A: 51}},
		{"negative hue", -120, 1, 1, color.RGBA{B: 255, A: 51}},
		{"clamped inputs", 0, 2, 3, color.RGBA{R: 255, A: 51}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromHSV(tt.h, tt.s, tt.v, 51))
		})
	}
}

func TestWrapHue(t *testing.T) {
	assert.Equal(t, 0.0, WrapHue(0))
	assert.Equal(t, 0.0, WrapHue(360))
	assert.Equal(t, 10.0, WrapHue(370))
	assert.Equal(t, 350.0, WrapHue(-10))
}

func TestHueCycler(t *testing.T) {
	c := NewHueCycler(90)

	assert.Equal(t, 0.0, c.Next())
	assert.Equal(t, 90.0, c.Next())
	assert.Equal(t, 180.0, c.Next())
	assert.Equal(t, 270.0, c.Next())
	assert.Equal(t, 0.0, c.Next(), "wraps after a full turn")
	assert.Equal(t, 90.0, c.Hue())
}
