package scene

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an RGBA color with 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

// RGB creates a fully opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA creates a color with an explicit alpha channel.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// ParseColor parses a hex color string such as "#c80000" or "#c80000ff".
// The 8-digit form carries an alpha channel.
func ParseColor(s string) (Color, error) {
	if len(s) == 9 && s[0] == '#' {
		var r, g, b, a uint8
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
			return Color{}, fmt.Errorf("parsing color %q: %w", s, err)
		}
		return RGBA(r, g, b, a), nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parsing color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB(r, g, b), nil
}

// Darken scales the color channels by amount, clamped to [0, 1]. Alpha is
// unchanged.
func (c Color) Darken(amount float64) Color {
	amount = clamp01(amount)
	return Color{
		R: uint8(float64(c.R) * amount),
		G: uint8(float64(c.G) * amount),
		B: uint8(float64(c.B) * amount),
		A: c.A,
	}
}

// Lerp interpolates channel-wise between c and other. t is clamped to
// [0, 1]; 0 yields c and 1 yields other.
func (c Color) Lerp(other Color, t float64) Color {
	t = clamp01(t)
	return Color{
		R: lerpChannel(c.R, other.R, t),
		G: lerpChannel(c.G, other.G, t),
		B: lerpChannel(c.B, other.B, t),
		A: lerpChannel(c.A, other.A, t),
	}
}

// BlendHCL interpolates between c and other in HCL space, which avoids the
// grayish midpoints of channel-wise blending. Alpha still interpolates
// linearly.
func (c Color) BlendHCL(other Color, t float64) Color {
	t = clamp01(t)
	a := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	b := colorful.Color{R: float64(other.R) / 255, G: float64(other.G) / 255, B: float64(other.B) / 255}
	m := a.BlendHcl(b, t).Clamped()
	r, g, bl := m.RGB255()
	return Color{R: r, G: g, B: bl, A: lerpChannel(c.A, other.A, t)}
}

// CSS renders the color as a #rrggbb hex string. The alpha channel is
// carried separately via Opacity: rgba() functional notation is not
// accepted by all SVG parsers.
func (c Color) CSS() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Opacity returns the alpha channel as a fraction in [0, 1].
func (c Color) Opacity() float64 {
	return float64(c.A) / 255
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
