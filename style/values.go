package style

import (
	"fmt"
	"strconv"
	"strings"

	"stylecore/css"
)

// Value is one member of the closed union of value domains the
// recognized properties accept.
type Value interface {
	isValue()
	String() string
}

// Color is an sRGB color with channels in [0, 1]. The zero value is
// fully transparent.
type Color struct {
	R, G, B, A float64
}

func (Color) isValue() {}

func (c Color) String() string {
	b := func(v float64) int { return int(v*255 + 0.5) }
	if c.A == 1 {
		return fmt.Sprintf("#%02x%02x%02x", b(c.R), b(c.G), b(c.B))
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", b(c.R), b(c.G), b(c.B),
		strconv.FormatFloat(c.A, 'g', 3, 64))
}

// Display is the display-mode keyword domain.
type Display int

const (
	DisplayInline Display = iota
	DisplayBlock
	DisplayInlineBlock
	DisplayNone
)

func (Display) isValue() {}

func (d Display) String() string {
	switch d {
	case DisplayBlock:
		return "block"
	case DisplayInlineBlock:
		return "inline-block"
	case DisplayNone:
		return "none"
	}
	return "inline"
}

// Length is a number with a unit. Percentages carry the unit "%".
type Length struct {
	Value float64
	Unit  string
}

func (Length) isValue() {}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'g', -1, 64) + l.Unit
}

// Keyword is an identifier value kept as-is, e.g. font-weight's
// "bolder" before computation resolves it.
type Keyword string

func (Keyword) isValue() {}

func (k Keyword) String() string { return string(k) }

// Number is a unitless numeric value.
type Number float64

func (Number) isValue() {}

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

var namedColors = map[string]Color{
	"transparent": {},
	"black":       {A: 1},
	"silver":      {R: 0.75, G: 0.75, B: 0.75, A: 1},
	"gray":        {R: 0.5, G: 0.5, B: 0.5, A: 1},
	"white":       {R: 1, G: 1, B: 1, A: 1},
	"maroon":      {R: 0.5, A: 1},
	"red":         {R: 1, A: 1},
	"purple":      {R: 0.5, B: 0.5, A: 1},
	"fuchsia":     {R: 1, B: 1, A: 1},
	"green":       {G: 0.5, A: 1},
	"lime":        {G: 1, A: 1},
	"olive":       {R: 0.5, G: 0.5, A: 1},
	"yellow":      {R: 1, G: 1, A: 1},
	"navy":        {B: 0.5, A: 1},
	"blue":        {B: 1, A: 1},
	"teal":        {G: 0.5, B: 0.5, A: 1},
	"aqua":        {G: 1, B: 1, A: 1},
	"orange":      {R: 1, G: 0.65, A: 1},
}

// ParseValue parses a declaration's component values into the property's
// value domain. A declaration whose value does not fit the domain is
// rejected here and dropped by the caller.
func ParseValue(p Property, value []css.ComponentValue) (Value, error) {
	trimmed := trimWhitespace(value)
	if len(trimmed) != 1 {
		return nil, fmt.Errorf("%s: expected a single value, got %d", p, len(trimmed))
	}

	switch p {
	case PropBackgroundColor, PropColor:
		return parseColor(trimmed[0])
	case PropDisplay:
		return parseDisplay(trimmed[0])
	case PropFontSize:
		return parseFontSize(trimmed[0])
	case PropFontWeight:
		return parseFontWeight(trimmed[0])
	}
	return nil, fmt.Errorf("no value domain for property %s", p)
}

func trimWhitespace(vs []css.ComponentValue) []css.ComponentValue {
	var out []css.ComponentValue
	for _, v := range vs {
		if pt, ok := v.(*css.PreservedToken); ok && pt.Token.Type == css.WhitespaceToken {
			continue
		}
		out = append(out, v)
	}
	return out
}

func parseColor(v css.ComponentValue) (Value, error) {
	switch cv := v.(type) {
	case *css.PreservedToken:
		switch cv.Token.Type {
		case css.HashToken:
			return parseHexColor(cv.Token.Value)
		case css.IdentToken:
			if c, ok := namedColors[strings.ToLower(cv.Token.Value)]; ok {
				return c, nil
			}
			return nil, fmt.Errorf("unknown color name %q", cv.Token.Value)
		}
	case *css.Function:
		switch strings.ToLower(cv.Name) {
		case "rgb", "rgba":
			return parseRGBFunction(cv)
		}
		return nil, fmt.Errorf("unknown color function %q", cv.Name)
	}
	return nil, fmt.Errorf("not a color: %s", v)
}

func parseHexColor(hex string) (Value, error) {
	channel := func(s string) (float64, error) {
		if len(s) == 1 {
			s += s
		}
		n, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			return 0, fmt.Errorf("bad hex digits %q", s)
		}
		return float64(n) / 255, nil
	}

	var parts []string
	switch len(hex) {
	case 3:
		parts = []string{hex[0:1], hex[1:2], hex[2:3], "f"}
	case 6:
		parts = []string{hex[0:2], hex[2:4], hex[4:6], "ff"}
	case 8:
		parts = []string{hex[0:2], hex[2:4], hex[4:6], hex[6:8]}
	default:
		return nil, fmt.Errorf("hex color needs 3, 6 or 8 digits, got %q", hex)
	}

	var c Color
	var err error
	if c.R, err = channel(parts[0]); err != nil {
		return nil, err
	}
	if c.G, err = channel(parts[1]); err != nil {
		return nil, err
	}
	if c.B, err = channel(parts[2]); err != nil {
		return nil, err
	}
	if c.A, err = channel(parts[3]); err != nil {
		return nil, err
	}
	return c, nil
}

// parseRGBFunction handles rgb(r, g, b) and rgba(r, g, b, a) with
// channels as 0-255 numbers and alpha as 0-1.
func parseRGBFunction(fn *css.Function) (Value, error) {
	var args []float64
	for _, v := range trimWhitespace(fn.Value) {
		pt, ok := v.(*css.PreservedToken)
		if !ok {
			return nil, fmt.Errorf("%s(): unexpected argument %s", fn.Name, v)
		}
		switch pt.Token.Type {
		case css.CommaToken:
			continue
		case css.NumberToken:
			f, ok := pt.Token.Float()
			if !ok {
				return nil, fmt.Errorf("%s(): bad number %q", fn.Name, pt.Token.Value)
			}
			args = append(args, f)
		default:
			return nil, fmt.Errorf("%s(): unexpected token %s", fn.Name, pt.Token)
		}
	}

	wantAlpha := strings.EqualFold(fn.Name, "rgba")
	if wantAlpha && len(args) != 4 || !wantAlpha && len(args) != 3 {
		return nil, fmt.Errorf("%s(): wrong argument count %d", fn.Name, len(args))
	}

	clamp := func(v, max float64) float64 {
		if v < 0 {
			return 0
		}
		if v > max {
			return max
		}
		return v
	}
	c := Color{
		R: clamp(args[0], 255) / 255,
		G: clamp(args[1], 255) / 255,
		B: clamp(args[2], 255) / 255,
		A: 1,
	}
	if wantAlpha {
		c.A = clamp(args[3], 1)
	}
	return c, nil
}

func parseDisplay(v css.ComponentValue) (Value, error) {
	pt, ok := v.(*css.PreservedToken)
	if !ok || pt.Token.Type != css.IdentToken {
		return nil, fmt.Errorf("not a display keyword: %s", v)
	}
	switch strings.ToLower(pt.Token.Value) {
	case "inline":
		return DisplayInline, nil
	case "block":
		return DisplayBlock, nil
	case "inline-block":
		return DisplayInlineBlock, nil
	case "none":
		return DisplayNone, nil
	}
	return nil, fmt.Errorf("unknown display keyword %q", pt.Token.Value)
}

var fontSizeUnits = map[string]bool{"px": true, "pt": true, "em": true, "%": true}

func parseFontSize(v css.ComponentValue) (Value, error) {
	pt, ok := v.(*css.PreservedToken)
	if !ok {
		return nil, fmt.Errorf("not a length: %s", v)
	}
	switch pt.Token.Type {
	case css.DimensionToken:
		f, ok := pt.Token.Float()
		if !ok {
			return nil, fmt.Errorf("bad dimension %q", pt.Token.Value)
		}
		unit := strings.ToLower(pt.Token.Unit())
		if !fontSizeUnits[unit] {
			return nil, fmt.Errorf("unsupported font-size unit %q", unit)
		}
		return Length{Value: f, Unit: unit}, nil
	case css.PercentageToken:
		f, ok := pt.Token.Float()
		if !ok {
			return nil, fmt.Errorf("bad percentage %q", pt.Token.Value)
		}
		return Length{Value: f, Unit: "%"}, nil
	}
	return nil, fmt.Errorf("not a length: %s", pt.Token)
}

func parseFontWeight(v css.ComponentValue) (Value, error) {
	pt, ok := v.(*css.PreservedToken)
	if !ok {
		return nil, fmt.Errorf("not a font weight: %s", v)
	}
	switch pt.Token.Type {
	case css.NumberToken:
		f, ok := pt.Token.Float()
		if !ok || f < 1 || f > 1000 {
			return nil, fmt.Errorf("font-weight out of range: %q", pt.Token.Value)
		}
		return Number(f), nil
	case css.IdentToken:
		switch strings.ToLower(pt.Token.Value) {
		case "normal":
			return Number(400), nil
		case "bold":
			return Number(700), nil
		case "bolder", "lighter":
			return Keyword(strings.ToLower(pt.Token.Value)), nil
		}
	}
	return nil, fmt.Errorf("not a font weight: %s", pt.Token)
}
