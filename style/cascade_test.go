package style_test

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"stylecore/cssom"
	"stylecore/dom"
	"stylecore/style"
)

func authorRules(t *testing.T, src string) []style.ContextualRule {
	t.Helper()
	sheet, err := cssom.ParseStyleSheet(zap.NewNop(), strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseStyleSheet: %v", err)
	}
	return style.Contextualize(sheet, style.OriginAuthor)
}

func TestApplyStylesLastMatchWins(t *testing.T) {
	rules := authorRules(t, `
		p { color: red; display: inline; }
		.note { color: blue; }
		p { color: green; }
	`)
	node := dom.Elem("p.note")

	got := style.ApplyStyles(zap.NewNop(), rules, node)
	if got[style.PropColor] != (style.Color{G: 0.5, A: 1}) {
		t.Errorf("color = %v, want green from the last matching rule", got[style.PropColor])
	}
	if got[style.PropDisplay] != style.DisplayInline {
		t.Errorf("display = %v, want inline", got[style.PropDisplay])
	}
	if _, ok := got[style.PropFontSize]; ok {
		t.Error("undeclared property must not appear in specified values")
	}
}

func TestApplyStylesDropsUnknown(t *testing.T) {
	rules := authorRules(t, `
		p { margin: 4px; color: not-a-color; display: block; }
	`)
	got := style.ApplyStyles(zap.NewNop(), rules, dom.Elem("p"))
	if len(got) != 1 || got[style.PropDisplay] != style.DisplayBlock {
		t.Errorf("expected only display to survive, got %v", got)
	}
}

func TestApplyStylesNonMatching(t *testing.T) {
	rules := authorRules(t, `h1 { color: red; }`)
	got := style.ApplyStyles(zap.NewNop(), rules, dom.Elem("p"))
	if len(got) != 0 {
		t.Errorf("expected empty map for non-matching rules, got %v", got)
	}
}

func TestComputeStylesInheritance(t *testing.T) {
	parent := &style.RenderNode{Properties: style.PropertyMap{
		style.PropColor:    style.Color{R: 1, A: 1},
		style.PropDisplay:  style.DisplayBlock,
		style.PropFontSize: style.Length{Value: 20, Unit: "px"},
	}}

	got := style.ComputeStyles(style.PropertyMap{}, parent)

	if got[style.PropColor] != (style.Color{R: 1, A: 1}) {
		t.Errorf("color should inherit, got %v", got[style.PropColor])
	}
	if got[style.PropDisplay] != style.DisplayInline {
		t.Errorf("display is not inheritable, want the initial value, got %v", got[style.PropDisplay])
	}
	if got[style.PropFontSize] != (style.Length{Value: 20, Unit: "px"}) {
		t.Errorf("font-size should inherit, got %v", got[style.PropFontSize])
	}
}

func TestComputeStylesExplicitBeatsInherited(t *testing.T) {
	parent := &style.RenderNode{Properties: style.PropertyMap{
		style.PropColor: style.Color{R: 1, A: 1},
	}}
	got := style.ComputeStyles(style.PropertyMap{
		style.PropColor: style.Color{B: 1, A: 1},
	}, parent)
	if got[style.PropColor] != (style.Color{B: 1, A: 1}) {
		t.Errorf("explicit value must win over inherited, got %v", got[style.PropColor])
	}
}

func TestComputeStylesNoParent(t *testing.T) {
	got := style.ComputeStyles(style.PropertyMap{}, nil)
	for _, p := range style.Properties() {
		if got[p] != p.Initial() {
			t.Errorf("%s: got %v, want initial %v", p, got[p], p.Initial())
		}
	}
}

func TestComputeFontSizeRelativeUnits(t *testing.T) {
	parent := &style.RenderNode{Properties: style.PropertyMap{
		style.PropFontSize: style.Length{Value: 20, Unit: "px"},
	}}

	cases := []struct {
		in   style.Length
		want style.Length
	}{
		{style.Length{Value: 2, Unit: "em"}, style.Length{Value: 40, Unit: "px"}},
		{style.Length{Value: 50, Unit: "%"}, style.Length{Value: 10, Unit: "px"}},
		{style.Length{Value: 12, Unit: "pt"}, style.Length{Value: 16, Unit: "px"}},
		{style.Length{Value: 13, Unit: "px"}, style.Length{Value: 13, Unit: "px"}},
	}
	for _, tc := range cases {
		got := style.ComputeStyles(style.PropertyMap{style.PropFontSize: tc.in}, parent)
		if got[style.PropFontSize] != tc.want {
			t.Errorf("%v: got %v, want %v", tc.in, got[style.PropFontSize], tc.want)
		}
	}

	// without a parent, em resolves against the default size
	got := style.ComputeStyles(style.PropertyMap{
		style.PropFontSize: style.Length{Value: 2, Unit: "em"},
	}, nil)
	if got[style.PropFontSize] != (style.Length{Value: 32, Unit: "px"}) {
		t.Errorf("em without parent: got %v", got[style.PropFontSize])
	}
}

func TestComputeFontWeightRelativeKeywords(t *testing.T) {
	weigh := func(inherited float64, kw style.Keyword) style.Value {
		parent := &style.RenderNode{Properties: style.PropertyMap{
			style.PropFontWeight: style.Number(inherited),
		}}
		got := style.ComputeStyles(style.PropertyMap{style.PropFontWeight: kw}, parent)
		return got[style.PropFontWeight]
	}

	cases := []struct {
		inherited float64
		kw        style.Keyword
		want      style.Number
	}{
		{100, "bolder", 400},
		{400, "bolder", 700},
		{700, "bolder", 900},
		{900, "bolder", 900},
		{400, "lighter", 100},
		{700, "lighter", 400},
		{900, "lighter", 700},
	}
	for _, tc := range cases {
		if got := weigh(tc.inherited, tc.kw); got != tc.want {
			t.Errorf("%s from %v: got %v, want %v", tc.kw, tc.inherited, got, tc.want)
		}
	}
}
