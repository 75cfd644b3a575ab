package cssom

import (
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stylecore/css"
)

// StyleRule is a qualified rule after selector compilation: the parsed
// selector list plus the declarations of the rule block, in source
// order.
type StyleRule struct {
	Selectors    []Selector
	Declarations []*css.Declaration
}

// StyleSheet is the object-model view of one stylesheet source.
type StyleSheet struct {
	ID    uuid.UUID
	Rules []StyleRule
}

// FromRules converts syntax-level rules into a stylesheet. Qualified
// rules with malformed selectors and at-rules are dropped with a debug
// diagnostic; declarations inside rule blocks are parsed with the same
// error tolerance the declaration grammar defines.
func FromRules(log *zap.Logger, rules []css.Rule) *StyleSheet {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("cssom")

	sheet := &StyleSheet{ID: uuid.New()}
	for _, rule := range rules {
		qr, ok := rule.(*css.QualifiedRule)
		if !ok {
			if ar, isAt := rule.(*css.AtRule); isAt {
				log.Debug("ignoring at-rule", zap.String("name", ar.Name))
			}
			continue
		}
		selectors, err := CompileSelectorList(qr.Prelude)
		if err != nil {
			log.Debug("dropping rule with invalid selector", zap.Error(err))
			continue
		}
		sheet.Rules = append(sheet.Rules, StyleRule{
			Selectors:    selectors,
			Declarations: blockDeclarations(log, qr.Block),
		})
	}
	return sheet
}

// ParseStyleSheet parses CSS text and compiles it into a stylesheet.
// Syntax-level warnings are returned alongside the sheet; the sheet is
// always usable.
func ParseStyleSheet(log *zap.Logger, r io.Reader) (*StyleSheet, error) {
	p := css.NewParser(log)
	parsed := p.ParseStylesheet(css.NewTokenStream(r))
	return FromRules(log, parsed.Rules), p.Warnings()
}

// blockDeclarations replays the rule block's component values through
// the declaration-list grammar. At-rules nested in the block are
// dropped.
func blockDeclarations(log *zap.Logger, block *css.SimpleBlock) []*css.Declaration {
	if block == nil {
		return nil
	}
	p := css.NewParser(log)
	items := p.ParseListOfDeclarations(css.NewSliceStream(css.TokensOf(block.Value)))
	var decls []*css.Declaration
	for _, item := range items {
		switch v := item.(type) {
		case *css.Declaration:
			decls = append(decls, v)
		case *css.AtRule:
			log.Debug("ignoring at-rule inside declaration block", zap.String("name", v.Name))
		}
	}
	return decls
}
