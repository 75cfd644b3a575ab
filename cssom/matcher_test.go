package cssom_test

import (
	"testing"

	"stylecore/cssom"
	"stylecore/dom"
)

// findByID walks the subtree for the element carrying the id.
func findByID(n *dom.Node, id string) *dom.Node {
	if el, ok := dom.AsElement(n); ok && el.ID() == id {
		return n
	}
	for _, c := range dom.Children(n) {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func matches(t *testing.T, selector string, node *dom.Node) bool {
	t.Helper()
	return cssom.MatchSelectors(compile(t, selector), node)
}

func TestMatchSimpleSelectors(t *testing.T) {
	h1 := dom.Elem("h1#button.wide", dom.Text("Click"))
	dom.Elem("body", h1)

	cases := []struct {
		selector string
		want     bool
	}{
		{"h1", true},
		{"*", true},
		{"#button", true},
		{".wide", true},
		{"h1#button", true},
		{"h1.wide", true},
		{"p", false},
		{"#other", false},
		{".narrow", false},
		{"p#button", false},
	}
	for _, tc := range cases {
		if got := matches(t, tc.selector, h1); got != tc.want {
			t.Errorf("%q: match = %v, want %v", tc.selector, got, tc.want)
		}
	}
}

func TestMatchDescendant(t *testing.T) {
	tree := dom.Elem("body",
		dom.Elem("div#outer",
			dom.Elem("span",
				dom.Elem("p#deep"),
			),
		),
	)
	deep := findByID(tree, "deep")

	if !matches(t, "div p", deep) {
		t.Error("descendant through a wrapper element should match")
	}
	if !matches(t, "body div p", deep) {
		t.Error("chained descendant selectors should match")
	}
	if matches(t, "ul p", deep) {
		t.Error("no ul ancestor, should not match")
	}
}

func TestMatchChild(t *testing.T) {
	tree := dom.Elem("body",
		dom.Elem("div#parent",
			dom.Elem("p#direct"),
			dom.Elem("span",
				dom.Elem("p#nested"),
			),
		),
	)

	if !matches(t, "div > p", findByID(tree, "direct")) {
		t.Error("direct child should match")
	}
	if matches(t, "div > p", findByID(tree, "nested")) {
		t.Error("grandchild should not match a child combinator")
	}
}

func TestMatchChildWithoutParent(t *testing.T) {
	orphan := dom.Elem("p")
	if matches(t, "div > p", orphan) {
		t.Error("element without a parent cannot satisfy a child combinator")
	}
	if matches(t, "div p", orphan) {
		t.Error("element without ancestors cannot satisfy a descendant combinator")
	}
}

func TestMatchSiblings(t *testing.T) {
	tree := dom.Elem("body",
		dom.Elem("h1"),
		dom.Text("between"),
		dom.Elem("h2#second"),
		dom.Elem("p#third"),
	)
	second := findByID(tree, "second")
	third := findByID(tree, "third")

	if !matches(t, "h1 + h2", second) {
		t.Error("next sibling should match across intervening text")
	}
	if matches(t, "h1 + p", third) {
		t.Error("p is not the next element sibling of h1")
	}
	if !matches(t, "h1 ~ p", third) {
		t.Error("subsequent sibling should match")
	}
	if matches(t, "p ~ h2", second) {
		t.Error("subsequent sibling only looks backwards")
	}
}

func TestMatchCompoundAcrossCombinators(t *testing.T) {
	tree := dom.Elem("body",
		dom.Elem("div#name",
			dom.Elem("button#go.primary"),
		),
	)
	button := findByID(tree, "go")

	if !matches(t, "div#name > button.primary", button) {
		t.Error("compound selectors on both sides should match")
	}
	if matches(t, "h1#name > button", button) {
		t.Error("parent tag mismatch should fail the whole selector")
	}
	if matches(t, "button > h1", button) {
		t.Error("subject compound mismatch should fail before walking up")
	}
}

func TestMatchDescendantCommitsToNearestAncestor(t *testing.T) {
	// the same tag repeats at two depths: the descendant walk commits to
	// the nearest matching ancestor and never retries an outer one
	tree := dom.Elem("article",
		dom.Elem("section",
			dom.Elem("div",
				dom.Elem("section",
					dom.Elem("em#subject"),
				),
			),
		),
	)
	subject := findByID(tree, "subject")

	if matches(t, "article > section em", subject) {
		t.Error("nearest section ancestor is a child of div, selector must not match")
	}
	if !matches(t, "div > section em", subject) {
		t.Error("nearest section ancestor is a child of div, selector should match")
	}
}

func TestMatchSubsequentSiblingCommitsToNearest(t *testing.T) {
	tree := dom.Elem("body",
		dom.Elem("h1"),
		dom.Elem("h2"),
		dom.Elem("div"),
		dom.Elem("h2"),
		dom.Elem("p#last"),
	)
	last := findByID(tree, "last")

	if matches(t, "h1 + h2 ~ p", last) {
		t.Error("nearest h2 sibling follows div, selector must not match")
	}
	if !matches(t, "div + h2 ~ p", last) {
		t.Error("nearest h2 sibling follows div, selector should match")
	}
}

func TestMatchSelectorPanicsOnNonElement(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for text node")
		}
	}()
	sel := compile(t, "p")[0]
	cssom.MatchSelector(sel, dom.Text("hello"))
}
