package cssom

import (
	"stylecore/dom"
)

// MatchSelectors reports whether any selector in the list matches the
// element.
func MatchSelectors(selectors []Selector, node *dom.Node) bool {
	for _, sel := range selectors {
		if MatchSelector(sel, node) {
			return true
		}
	}
	return false
}

// MatchSelector matches a complex selector against an element, walking
// the entries right to left with a single candidate element. For
// Descendant and SubsequentSibling the first ancestor or earlier
// sibling satisfying the compound becomes the new candidate; the walk
// never backtracks to try another one. Panics if node is not an
// element.
func MatchSelector(sel Selector, node *dom.Node) bool {
	entries := sel.Entries
	idx := len(entries) - 1

	cur := dom.MustElement(node)
	if !matchSequence(entries[idx].Sequence, cur) {
		return false
	}

	for idx > 0 {
		comb := entries[idx-1].Combinator
		idx--
		seq := entries[idx].Sequence

		switch comb {
		case Child:
			parent := dom.ParentElement(cur.Node())
			if parent == nil {
				return false
			}
			cur = dom.MustElement(parent)
			if !matchSequence(seq, cur) {
				return false
			}

		case Descendant:
			for {
				parent := dom.ParentElement(cur.Node())
				if parent == nil {
					return false
				}
				cur = dom.MustElement(parent)
				if matchSequence(seq, cur) {
					break
				}
			}

		case NextSibling:
			prev := dom.PreviousElementSibling(cur.Node())
			if prev == nil {
				return false
			}
			cur = dom.MustElement(prev)
			if !matchSequence(seq, cur) {
				return false
			}

		case SubsequentSibling:
			for {
				prev := dom.PreviousElementSibling(cur.Node())
				if prev == nil {
					return false
				}
				cur = dom.MustElement(prev)
				if matchSequence(seq, cur) {
					break
				}
			}

		default:
			return false
		}
	}
	return true
}

// matchSequence reports whether every simple selector in the compound
// matches the element.
func matchSequence(seq SimpleSelectorSequence, el dom.Element) bool {
	for _, s := range seq {
		switch s.Type {
		case UniversalSelector:
			// matches anything
		case TypeSelector:
			if el.TagName() != s.Value {
				return false
			}
		case ClassSelector:
			if !el.HasClass(s.Value) {
				return false
			}
		case IDSelector:
			if el.ID() != s.Value {
				return false
			}
		default:
			return false
		}
	}
	return true
}
