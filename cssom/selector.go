// Package cssom turns parsed CSS syntax into the object model the
// cascade consumes: stylesheets of style rules, each holding compiled
// selectors and declarations, plus the structural selector matcher.
package cssom

import (
	"fmt"
	"strings"

	"stylecore/css"
)

// Combinator is the structural relation joining a compound selector to
// the compound on its right.
type Combinator int

const (
	// NoCombinator marks the rightmost (subject) entry of a selector.
	NoCombinator Combinator = iota
	Child
	Descendant
	NextSibling
	SubsequentSibling
)

func (c Combinator) String() string {
	switch c {
	case Child:
		return ">"
	case Descendant:
		return " "
	case NextSibling:
		return "+"
	case SubsequentSibling:
		return "~"
	}
	return ""
}

// SimpleSelectorType enumerates the supported simple selector kinds.
type SimpleSelectorType int

const (
	UniversalSelector SimpleSelectorType = iota
	TypeSelector
	ClassSelector
	IDSelector
)

// SimpleSelector is one atom of a compound selector. Value is unused for
// the universal selector.
type SimpleSelector struct {
	Type  SimpleSelectorType
	Value string
}

func (s SimpleSelector) String() string {
	switch s.Type {
	case UniversalSelector:
		return "*"
	case ClassSelector:
		return "." + s.Value
	case IDSelector:
		return "#" + s.Value
	}
	return s.Value
}

// SimpleSelectorSequence is a compound selector: a set of simple
// selectors that must all match one element.
type SimpleSelectorSequence []SimpleSelector

// SelectorEntry pairs a compound selector with the combinator linking it
// to the entry on its right. The last entry of a Selector carries
// NoCombinator and represents the matched element itself.
type SelectorEntry struct {
	Sequence   SimpleSelectorSequence
	Combinator Combinator
}

// Selector is a complex selector: compound selectors joined by
// combinators, stored left to right and matched right to left.
type Selector struct {
	Entries []SelectorEntry
}

func (s Selector) String() string {
	var b strings.Builder
	for i, e := range s.Entries {
		for _, simple := range e.Sequence {
			b.WriteString(simple.String())
		}
		if i < len(s.Entries)-1 {
			switch e.Combinator {
			case Descendant:
				b.WriteByte(' ')
			default:
				b.WriteString(" " + e.Combinator.String() + " ")
			}
		}
	}
	return b.String()
}

// CompileSelectorList compiles a qualified rule's prelude into a
// selector list, splitting on top-level commas. An empty or malformed
// group fails the whole list; the caller decides whether to drop the
// rule.
func CompileSelectorList(prelude []css.ComponentValue) ([]Selector, error) {
	tokens := css.PreservedTokens(prelude)
	if len(tokens) != len(prelude) {
		return nil, fmt.Errorf("selector prelude holds a block or function")
	}

	var selectors []Selector
	var group []css.Token
	flush := func() error {
		sel, err := compileSelector(group)
		if err != nil {
			return err
		}
		selectors = append(selectors, sel)
		group = nil
		return nil
	}
	for _, tok := range tokens {
		if tok.Type == css.CommaToken {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		group = append(group, tok)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return selectors, nil
}

// compileSelector compiles one complex selector from its token run.
// Whitespace between compounds is the descendant combinator unless an
// explicit combinator delimiter follows.
func compileSelector(tokens []css.Token) (Selector, error) {
	var sel Selector
	var seq SimpleSelectorSequence
	pending := NoCombinator
	sawSpace := false

	closeSequence := func(next Combinator) {
		sel.Entries = append(sel.Entries, SelectorEntry{Sequence: seq, Combinator: next})
		seq = nil
		pending = NoCombinator
		sawSpace = false
	}
	startAtom := func() {
		if len(seq) == 0 {
			return
		}
		switch {
		case pending != NoCombinator:
			closeSequence(pending)
		case sawSpace:
			closeSequence(Descendant)
		}
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok.Type {
		case css.WhitespaceToken:
			sawSpace = true

		case css.IdentToken:
			startAtom()
			seq = append(seq, SimpleSelector{Type: TypeSelector, Value: tok.Value})

		case css.HashToken:
			if tok.Hash != css.HashID {
				return Selector{}, fmt.Errorf("hash %q is not a valid id selector", tok.Value)
			}
			startAtom()
			seq = append(seq, SimpleSelector{Type: IDSelector, Value: tok.Value})

		case css.DelimToken:
			switch tok.Delim {
			case '*':
				startAtom()
				seq = append(seq, SimpleSelector{Type: UniversalSelector})
			case '.':
				if i+1 >= len(tokens) || tokens[i+1].Type != css.IdentToken {
					return Selector{}, fmt.Errorf("expected ident after '.'")
				}
				startAtom()
				i++
				seq = append(seq, SimpleSelector{Type: ClassSelector, Value: tokens[i].Value})
			case '>', '+', '~':
				if len(seq) == 0 {
					return Selector{}, fmt.Errorf("combinator %q with no left-hand side", tok.Delim)
				}
				if pending != NoCombinator {
					return Selector{}, fmt.Errorf("consecutive combinators")
				}
				pending = combinatorFor(tok.Delim)
			default:
				return Selector{}, fmt.Errorf("unsupported delimiter %q in selector", tok.Delim)
			}

		default:
			return Selector{}, fmt.Errorf("unsupported token %s in selector", tok)
		}
	}

	if pending != NoCombinator {
		return Selector{}, fmt.Errorf("dangling combinator")
	}
	if len(seq) == 0 {
		return Selector{}, fmt.Errorf("empty selector")
	}
	closeSequence(NoCombinator)
	return sel, nil
}

func combinatorFor(d rune) Combinator {
	switch d {
	case '>':
		return Child
	case '+':
		return NextSibling
	case '~':
		return SubsequentSibling
	}
	return NoCombinator
}
