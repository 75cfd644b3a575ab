package css

import "fmt"

// The object model mirrors the CSS Syntax Level 3 grammar: a stylesheet
// is a list of rules, a rule is qualified or at-, preludes and blocks are
// component values, declarations live inside blocks. All unions are
// closed; new kinds do not appear at runtime.

// ComponentValue is one grammatical unit of CSS syntax: a preserved
// token, a function, or a simple block.
type ComponentValue interface {
	componentValue()
}

// PreservedToken is a component value holding a single token.
type PreservedToken struct {
	Token Token
}

// Function is a named, parenthesized run of component values.
type Function struct {
	Name  string
	Value []ComponentValue
}

// SimpleBlock is a bracketed, braced or parenthesized run of component
// values tagged with its opening token. The open/close pairing is fixed
// when the block is consumed and never re-derived.
type SimpleBlock struct {
	Token Token
	Value []ComponentValue
}

func (*PreservedToken) componentValue() {}
func (*Function) componentValue()       {}
func (*SimpleBlock) componentValue()    {}

// Preserved wraps a token as a component value.
func Preserved(t Token) *PreservedToken {
	return &PreservedToken{Token: t}
}

// Rule is either a *QualifiedRule or an *AtRule.
type Rule interface {
	rule()
}

// QualifiedRule is a prelude followed by a brace-delimited block, e.g. a
// style rule. Block is nil only when input ended before the block opened.
type QualifiedRule struct {
	Prelude []ComponentValue
	Block   *SimpleBlock
}

// AtRule is an @-introduced rule with a name, a prelude and an optional
// block.
type AtRule struct {
	Name    string
	Prelude []ComponentValue
	Block   *SimpleBlock
}

func (*QualifiedRule) rule() {}
func (*AtRule) rule()        {}

// Declaration is a name/value pair from a declaration list. Value never
// carries trailing whitespace, and a detected "!important" suffix is
// removed from it before Important is set.
type Declaration struct {
	Name      string
	Value     []ComponentValue
	Important bool
}

// DeclarationOrAtRule is either a *Declaration or an *AtRule; the mix
// occurs only inside declaration-list contexts such as rule bodies.
type DeclarationOrAtRule interface {
	declarationOrAtRule()
}

func (*Declaration) declarationOrAtRule() {}
func (*AtRule) declarationOrAtRule()      {}

// Stylesheet is the result of the top-level parse entry point.
type Stylesheet struct {
	Rules []Rule
}

// PreservedTokens extracts the tokens of the preserved component values
// in vs, dropping functions and blocks. Property value parsers that only
// understand flat token runs consume declarations through this.
func PreservedTokens(vs []ComponentValue) []Token {
	tokens := make([]Token, 0, len(vs))
	for _, v := range vs {
		if pt, ok := v.(*PreservedToken); ok {
			tokens = append(tokens, pt.Token)
		}
	}
	return tokens
}

// TokensOf flattens component values back into the token sequence they
// were built from, re-inserting block and function delimiters. Feeding
// the result to a fresh stream replays the exact input, which is how
// rule blocks are re-parsed as declaration lists.
func TokensOf(vs []ComponentValue) []Token {
	var tokens []Token
	for _, v := range vs {
		tokens = appendTokens(tokens, v)
	}
	return tokens
}

func appendTokens(tokens []Token, v ComponentValue) []Token {
	switch v := v.(type) {
	case *PreservedToken:
		tokens = append(tokens, v.Token)
	case *Function:
		tokens = append(tokens, FunctionStart(v.Name))
		for _, inner := range v.Value {
			tokens = appendTokens(tokens, inner)
		}
		tokens = append(tokens, ParenClose())
	case *SimpleBlock:
		tokens = append(tokens, v.Token)
		for _, inner := range v.Value {
			tokens = appendTokens(tokens, inner)
		}
		tokens = append(tokens, v.Token.Mirror())
	}
	return tokens
}

// SyntaxError reports input that does not conform to the exact grammar of
// the entry point that produced it. It is always recoverable by the
// caller and never raised for malformations inside list contexts, which
// are skipped instead.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string {
	return "css: syntax error: " + e.Msg
}

func syntaxErrorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...)}
}
