// Package style implements the cascade: it applies matched style rules
// to DOM nodes, resolves specified values into computed values through
// inheritance and initial-value fallback, and builds the render tree
// consumed by layout.
package style

// Property identifies a recognized CSS property. The set is closed;
// declarations naming anything else are dropped at rule application.
type Property int

const (
	PropBackgroundColor Property = iota
	PropColor
	PropDisplay
	PropFontSize
	PropFontWeight

	propCount
)

var propNames = [propCount]string{
	PropBackgroundColor: "background-color",
	PropColor:           "color",
	PropDisplay:         "display",
	PropFontSize:        "font-size",
	PropFontWeight:      "font-weight",
}

func (p Property) String() string {
	if p < 0 || p >= propCount {
		return "unknown"
	}
	return propNames[p]
}

// ParseProperty maps a declaration name to a Property. The second
// result is false for unrecognized names.
func ParseProperty(name string) (Property, bool) {
	for p, n := range propNames {
		if n == name {
			return Property(p), true
		}
	}
	return 0, false
}

// Properties returns every recognized property. The cascade iterates
// this set when resolving specified values, so each property gets a value
// on every render node.
func Properties() []Property {
	out := make([]Property, propCount)
	for i := range out {
		out[i] = Property(i)
	}
	return out
}

// Inheritable reports whether an undeclared property takes the parent's
// computed value instead of its initial value.
func (p Property) Inheritable() bool {
	switch p {
	case PropColor, PropFontSize, PropFontWeight:
		return true
	}
	return false
}

// Initial returns the property's initial value.
func (p Property) Initial() Value {
	switch p {
	case PropBackgroundColor:
		return Color{} // transparent
	case PropColor:
		return Color{A: 1} // black
	case PropDisplay:
		return DisplayInline
	case PropFontSize:
		return Length{Value: defaultFontSize, Unit: "px"}
	case PropFontWeight:
		return Number(400)
	}
	return Keyword("initial")
}

const defaultFontSize = 16
