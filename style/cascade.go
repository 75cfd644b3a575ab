package style

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"stylecore/cssom"
	"stylecore/dom"
)

// CascadeOrigin identifies where a rule came from. Origins are recorded
// on contextual rules and in diagnostics; rule application itself stays
// append-order, last match wins.
type CascadeOrigin int

const (
	OriginUserAgent CascadeOrigin = iota
	OriginUser
	OriginAuthor
)

func (o CascadeOrigin) String() string {
	switch o {
	case OriginUserAgent:
		return "user-agent"
	case OriginUser:
		return "user"
	}
	return "author"
}

// ContextualRule is a style rule wrapped with its provenance.
type ContextualRule struct {
	Origin CascadeOrigin
	Sheet  uuid.UUID
	Rule   *cssom.StyleRule
}

// Contextualize wraps a stylesheet's rules for the cascade, preserving
// source order.
func Contextualize(sheet *cssom.StyleSheet, origin CascadeOrigin) []ContextualRule {
	rules := make([]ContextualRule, 0, len(sheet.Rules))
	for i := range sheet.Rules {
		rules = append(rules, ContextualRule{
			Origin: origin,
			Sheet:  sheet.ID,
			Rule:   &sheet.Rules[i],
		})
	}
	return rules
}

// PropertyMap holds per-property values. In specified maps only
// explicitly declared properties appear; computed maps cover every
// recognized property.
type PropertyMap map[Property]Value

// ApplyStyles collects the specified values for one DOM element from
// every rule whose selector list matches it. Rules apply in slice order
// and later declarations overwrite earlier ones. Declarations naming an
// unrecognized property or carrying a value outside the property's
// domain are dropped with a debug diagnostic.
func ApplyStyles(log *zap.Logger, rules []ContextualRule, node *dom.Node) PropertyMap {
	if log == nil {
		log = zap.NewNop()
	}

	specified := PropertyMap{}
	for _, cr := range rules {
		if !cssom.MatchSelectors(cr.Rule.Selectors, node) {
			continue
		}
		for _, decl := range cr.Rule.Declarations {
			prop, ok := ParseProperty(decl.Name)
			if !ok {
				log.Debug("dropping unrecognized property",
					zap.String("name", decl.Name),
					zap.Stringer("origin", cr.Origin),
					zap.String("sheet", cr.Sheet.String()))
				continue
			}
			val, err := ParseValue(prop, decl.Value)
			if err != nil {
				log.Debug("dropping unparsable value",
					zap.Stringer("property", prop),
					zap.Error(err))
				continue
			}
			specified[prop] = val
		}
	}
	return specified
}

// ComputeStyles resolves a node's specified values into computed
// values. Resolution runs in two phases: first every recognized
// property gets a specified value (explicit declaration, then parent's
// computed value for inheritable properties, then the initial value);
// second, each specified value passes through its per-property
// computation step. The computation step reads the phase-one snapshot
// and the parent's finished map only, never the map being built.
func ComputeStyles(specified PropertyMap, parent *RenderNode) PropertyMap {
	snapshot := PropertyMap{}
	for _, prop := range Properties() {
		if v, ok := specified[prop]; ok {
			snapshot[prop] = v
			continue
		}
		if prop.Inheritable() && parent != nil {
			snapshot[prop] = parent.GetStyle(prop)
			continue
		}
		snapshot[prop] = prop.Initial()
	}

	computed := PropertyMap{}
	for prop, v := range snapshot {
		computed[prop] = computeValue(prop, v, parent)
	}
	return computed
}

// computeValue is the per-property specified-to-computed step. Identity
// for most properties; font-size resolves relative units against the
// parent's computed size, font-weight resolves relative keywords
// against the inherited weight.
func computeValue(prop Property, v Value, parent *RenderNode) Value {
	switch prop {
	case PropFontSize:
		return computeFontSize(v, parent)
	case PropFontWeight:
		return computeFontWeight(v, parent)
	}
	return v
}

func parentFontSize(parent *RenderNode) float64 {
	if parent != nil {
		if l, ok := parent.GetStyle(PropFontSize).(Length); ok {
			return l.Value
		}
	}
	return defaultFontSize
}

func computeFontSize(v Value, parent *RenderNode) Value {
	l, ok := v.(Length)
	if !ok {
		return v
	}
	switch l.Unit {
	case "em":
		return Length{Value: l.Value * parentFontSize(parent), Unit: "px"}
	case "%":
		return Length{Value: l.Value / 100 * parentFontSize(parent), Unit: "px"}
	case "pt":
		return Length{Value: l.Value * 96 / 72, Unit: "px"}
	}
	return l
}

// computeFontWeight maps bolder and lighter to absolute weights
// relative to the inherited weight, per the CSS Fonts relative-weight
// table.
func computeFontWeight(v Value, parent *RenderNode) Value {
	kw, ok := v.(Keyword)
	if !ok {
		return v
	}

	inherited := float64(400)
	if parent != nil {
		if n, ok := parent.GetStyle(PropFontWeight).(Number); ok {
			inherited = float64(n)
		}
	}

	switch kw {
	case "bolder":
		switch {
		case inherited < 350:
			return Number(400)
		case inherited < 550:
			return Number(700)
		case inherited < 900:
			return Number(900)
		default:
			return Number(inherited)
		}
	case "lighter":
		switch {
		case inherited < 100:
			return Number(inherited)
		case inherited < 550:
			return Number(100)
		case inherited < 750:
			return Number(400)
		default:
			return Number(700)
		}
	}
	return v
}
