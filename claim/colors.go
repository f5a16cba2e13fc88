package claim

import (
	"fmt"
	"image/color"
	"strings"
)

// DefaultClaimColor is used for guilds without a configured color.
const DefaultClaimColor = "#808080"

// ColorResolver maps guild names to display colors from the configuration.
// Lookups prefer an exact name match and fall back to a case-insensitive one,
// since upstream guild names occasionally differ from the config in casing.
type ColorResolver struct {
	exact  map[string]string
	folded map[string]string
}

// NewColorResolver indexes the configured guild colors. Entries with an
// invalid color value are dropped rather than propagated into renders.
func NewColorResolver(guilds []GuildColorConfig) *ColorResolver {
	cr := &ColorResolver{
		exact:  make(map[string]string, len(guilds)),
		folded: make(map[string]string, len(guilds)),
	}
	for _, g := range guilds {
		if g.Name == "" {
			continue
		}
		if _, err := ParseHexColor(g.Color); err != nil {
			continue
		}
		cr.exact[g.Name] = g.Color
		key := strings.ToLower(g.Name)
		if _, taken := cr.folded[key]; !taken {
			cr.folded[key] = g.Color
		}
	}
	return cr
}

// Resolve returns the display color for the guild, or DefaultClaimColor when
// no configured entry matches.
func (cr *ColorResolver) Resolve(g Guild) string {
	if c, ok := cr.exact[g.Name]; ok {
		return c
	}
	if c, ok := cr.folded[strings.ToLower(g.Name)]; ok {
		return c
	}
	return DefaultClaimColor
}

// ParseHexColor parses "#RGB" or "#RRGGBB" into an opaque RGBA color.
func ParseHexColor(s string) (color.RGBA, error) {
	if len(s) == 0 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("color %q: missing # prefix", s)
	}
	hex := s[1:]

	var r, g, b uint8
	switch len(hex) {
	case 3:
		vals, err := hexNibbles(hex)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
		}
		r = vals[0]*16 + vals[0]
		g = vals[1]*16 + vals[1]
		b = vals[2]*16 + vals[2]
	case 6:
		vals, err := hexNibbles(hex)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
		}
		r = vals[0]*16 + vals[1]
		g = vals[2]*16 + vals[3]
		b = vals[4]*16 + vals[5]
	default:
		return color.RGBA{}, fmt.Errorf("color %q: want #RGB or #RRGGBB", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func hexNibbles(s string) ([]uint8, error) {
	out := make([]uint8, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			out[i] = c - '0'
		case c >= 'a' && c <= 'f':
			out[i] = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			out[i] = c - 'A' + 10
		default:
			return nil, fmt.Errorf("invalid hex digit %q", c)
		}
	}
	return out, nil
}
