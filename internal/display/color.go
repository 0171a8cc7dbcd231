package display

import "github.com/charmbracelet/lipgloss"

// RGB is a 24-bit cell colour.
type RGB struct{ R, G, B uint8 }

var Black = RGB{}

// Hex parses "#rrggbb". Malformed input yields white so a typo in a palette
// stays visible instead of vanishing.
func Hex(hex string) RGB {
	if len(hex) != 7 || hex[0] != '#' {
		return RGB{255, 255, 255}
	}
	return RGB{parseHexByte(hex[1:3]), parseHexByte(hex[3:5]), parseHexByte(hex[5:7])}
}

func parseHexByte(s string) uint8 {
	var val int
	for _, c := range s {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	return uint8(val)
}

// Lerp mixes c towards o by t in [0,1].
func (c RGB) Lerp(o RGB, t float64) RGB {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return o
	}
	return RGB{
		R: lerpByte(c.R, o.R, t),
		G: lerpByte(c.G, o.G, t),
		B: lerpByte(c.B, o.B, t),
	}
}

// Scale multiplies every channel by f, saturating at 255.
func (c RGB) Scale(f float64) RGB {
	return RGB{R: clampByte(float64(c.R) * f), G: clampByte(float64(c.G) * f), B: clampByte(float64(c.B) * f)}
}

func (c RGB) IsBlack() bool { return c == Black }

func (c RGB) Hex() string {
	return "#" + hexByte(c.R) + hexByte(c.G) + hexByte(c.B)
}

// Color converts to a lipgloss colour for rendering.
func (c RGB) Color() lipgloss.Color { return lipgloss.Color(c.Hex()) }

// quantize drops the low bits of each channel so neighbouring cells share a
// style run more often.
func (c RGB) quantize() RGB {
	const mask = 0xf8
	return RGB{c.R & mask, c.G & mask, c.B & mask}
}

func lerpByte(a, b uint8, t float64) uint8 {
	return clampByte(float64(a) + (float64(b)-float64(a))*t)
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func hexByte(v uint8) string {
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
