package css

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Parser implements the CSS Syntax Level 3 parsing algorithms over a
// TokenStream. Each entry point is independently callable against a
// fresh stream; per-parse state (the one-token reconsume slot and the
// collected warnings) is reset on entry.
//
// Malformed constructs never abort a parse. List-producing entry points
// skip the malformed unit, resume at the next syntactic boundary and
// record what was skipped; single-value entry points return *SyntaxError.
type Parser struct {
	log *zap.Logger

	tokens   TokenStream
	topLevel bool

	// One token of pushback: after fetching a token to decide dispatch,
	// a consumption routine may mark it for re-delivery on the next
	// fetch. current is only valid while reconsume is set or immediately
	// after next().
	reconsume bool
	current   Token

	warnings error
}

// NewParser creates a CSS parser logging diagnostics through log.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Warnings returns the tolerated malformations recorded by the last
// parse, aggregated into a single error, or nil if the input was clean.
func (p *Parser) Warnings() error {
	return p.warnings
}

// begin resets per-parse state for a new entry-point invocation.
func (p *Parser) begin(ts TokenStream, topLevel bool) {
	p.tokens = ts
	p.topLevel = topLevel
	p.reconsume = false
	p.current = Token{}
	p.warnings = nil
}

// emit records a tolerated malformation. The debug check happens at every
// emission; enabling debug logging on the injected logger surfaces parse
// diagnostics without reconfiguring the parser.
func (p *Parser) emit(msg string, tok Token) {
	p.log.Debug("parse error", zap.String("detail", msg), zap.Stringer("token", tok))
	p.warnings = multierr.Append(p.warnings, fmt.Errorf("%s at %s", msg, tok))
}

// next consumes and returns the next input token, honoring a pending
// reconsume.
func (p *Parser) next() Token {
	if p.reconsume {
		p.reconsume = false
		return p.current
	}
	p.current = p.tokens.Next()
	return p.current
}

// peek returns the next input token without consuming it.
func (p *Parser) peek() Token {
	if p.reconsume {
		return p.current
	}
	return p.tokens.Peek()
}

// unread marks the current token for re-delivery on the next fetch.
func (p *Parser) unread() {
	p.reconsume = true
}

func (p *Parser) skipWhitespace() {
	for p.peek().Type == WhitespaceToken {
		p.next()
	}
}

// ParseStylesheet parses a complete stylesheet. At the top level CDO/CDC
// markers are discarded rather than treated as rule starts. The result is
// never nil; malformed rules are dropped and recorded as warnings.
func (p *Parser) ParseStylesheet(ts TokenStream) *Stylesheet {
	p.begin(ts, true)
	return &Stylesheet{Rules: p.consumeListOfRules()}
}

// ParseListOfRules parses a list of rules in non-top-level mode: CDO/CDC
// tokens are not discarded and trigger qualified-rule parsing.
func (p *Parser) ParseListOfRules(ts TokenStream) []Rule {
	p.begin(ts, false)
	return p.consumeListOfRules()
}

// ParseRule parses exactly one rule. It fails unless, after skipping
// leading and trailing whitespace, the entire input is consumed by one
// rule.
func (p *Parser) ParseRule(ts TokenStream) (Rule, error) {
	p.begin(ts, false)
	p.skipWhitespace()

	var rule Rule
	switch p.peek().Type {
	case EOFToken:
		return nil, syntaxErrorf("unexpected EOF, expected a rule")
	case AtKeywordToken:
		rule = p.consumeAtRule()
	default:
		qr := p.consumeQualifiedRule()
		if qr == nil {
			return nil, syntaxErrorf("expected a qualified rule")
		}
		rule = qr
	}

	p.skipWhitespace()
	if tok := p.peek(); tok.Type != EOFToken {
		return nil, syntaxErrorf("expected EOF after rule, got %s", tok)
	}
	return rule, nil
}

// ParseDeclaration parses exactly one declaration. The first
// non-whitespace token must be an identifier.
func (p *Parser) ParseDeclaration(ts TokenStream) (*Declaration, error) {
	p.begin(ts, false)
	p.skipWhitespace()

	if tok := p.peek(); tok.Type != IdentToken {
		return nil, syntaxErrorf("expected ident at start of declaration, got %s", tok)
	}
	d := p.consumeDeclaration()
	if d == nil {
		return nil, syntaxErrorf("malformed declaration")
	}
	return d, nil
}

// ParseListOfDeclarations parses a rule body: a mix of declarations and
// nested at-rules. Malformed segments contribute nothing and never stop
// the list.
func (p *Parser) ParseListOfDeclarations(ts TokenStream) []DeclarationOrAtRule {
	p.begin(ts, false)
	return p.consumeListOfDeclarations()
}

// ParseComponentValue parses exactly one component value, requiring the
// input to be (whitespace)* value (whitespace)* EOF.
func (p *Parser) ParseComponentValue(ts TokenStream) (ComponentValue, error) {
	p.begin(ts, false)
	p.skipWhitespace()

	if p.peek().Type == EOFToken {
		return nil, syntaxErrorf("unexpected EOF, expected a component value")
	}
	v := p.consumeComponentValue()

	p.skipWhitespace()
	if tok := p.peek(); tok.Type != EOFToken {
		return nil, syntaxErrorf("expected EOF after component value, got %s", tok)
	}
	return v, nil
}

// ParseListOfComponentValues parses component values until EOF.
func (p *Parser) ParseListOfComponentValues(ts TokenStream) []ComponentValue {
	p.begin(ts, false)

	var values []ComponentValue
	for {
		v := p.consumeComponentValue()
		if isPreserved(v, EOFToken) {
			return values
		}
		values = append(values, v)
	}
}

// ParseCommaSeparatedListOfComponentValues splits component values on
// top-level commas; commas inside nested blocks and functions do not
// split.
func (p *Parser) ParseCommaSeparatedListOfComponentValues(ts TokenStream) [][]ComponentValue {
	p.begin(ts, false)

	var groups [][]ComponentValue
	var group []ComponentValue
	for {
		v := p.consumeComponentValue()
		if isPreserved(v, EOFToken) {
			groups = append(groups, group)
			return groups
		}
		if isPreserved(v, CommaToken) {
			groups = append(groups, group)
			group = nil
			continue
		}
		group = append(group, v)
	}
}

// consumeListOfRules consumes rules until EOF. (CSS Syntax §5.4.1)
func (p *Parser) consumeListOfRules() []Rule {
	var rules []Rule
	for {
		tok := p.next()
		switch tok.Type {
		case WhitespaceToken:
			// nop
		case EOFToken:
			return rules
		case CDOToken, CDCToken:
			if p.topLevel {
				continue
			}
			p.unread()
			if r := p.consumeQualifiedRule(); r != nil {
				rules = append(rules, r)
			}
		case AtKeywordToken:
			p.unread()
			rules = append(rules, p.consumeAtRule())
		default:
			p.unread()
			if r := p.consumeQualifiedRule(); r != nil {
				rules = append(rules, r)
			}
		}
	}
}

// consumeAtRule consumes an at-rule, starting at its at-keyword token.
// (§5.4.2)
func (p *Parser) consumeAtRule() *AtRule {
	name := p.next()
	rule := &AtRule{Name: name.Value}

	for {
		tok := p.next()
		switch tok.Type {
		case SemicolonToken:
			return rule
		case EOFToken:
			p.emit("unexpected EOF while consuming an at-rule", tok)
			return rule
		case BraceOpenToken:
			rule.Block = p.consumeSimpleBlock()
			return rule
		default:
			// A block introduced by anything but a brace is unreachable
			// in this grammar; everything else is prelude.
			p.unread()
			rule.Prelude = append(rule.Prelude, p.consumeComponentValue())
		}
	}
}

// consumeQualifiedRule consumes one qualified rule, returning nil if EOF
// arrives before its block opens. (§5.4.3)
func (p *Parser) consumeQualifiedRule() *QualifiedRule {
	rule := &QualifiedRule{}

	for {
		tok := p.next()
		switch tok.Type {
		case EOFToken:
			p.emit("unexpected EOF while consuming a qualified rule", tok)
			return nil
		case BraceOpenToken:
			rule.Block = p.consumeSimpleBlock()
			return rule
		default:
			p.unread()
			rule.Prelude = append(rule.Prelude, p.consumeComponentValue())
		}
	}
}

// consumeListOfDeclarations consumes declarations and nested at-rules
// until EOF. A segment that is not introduced by an ident or at-keyword
// is discarded up to the next semicolon. (§5.4.4)
func (p *Parser) consumeListOfDeclarations() []DeclarationOrAtRule {
	var list []DeclarationOrAtRule
	for {
		tok := p.next()
		switch tok.Type {
		case WhitespaceToken, SemicolonToken:
			// nop
		case EOFToken:
			return list
		case AtKeywordToken:
			p.unread()
			list = append(list, p.consumeAtRule())
		case IdentToken:
			// Collect the declaration's component values up to the next
			// semicolon, then parse them as one declaration.
			values := []ComponentValue{Preserved(tok)}
			for {
				if t := p.peek(); t.Type == SemicolonToken || t.Type == EOFToken {
					break
				}
				values = append(values, p.consumeComponentValue())
			}
			if d := p.declarationFromValues(values); d != nil {
				list = append(list, d)
			}
		default:
			p.emit("unexpected token in declaration list", tok)
			// Reconsume the offending token so a block-open is discarded
			// as one component value; a semicolon inside it must not end
			// the resync.
			p.unread()
			for {
				if t := p.peek(); t.Type == SemicolonToken || t.Type == EOFToken {
					break
				}
				p.consumeComponentValue()
			}
		}
	}
}

// consumeDeclaration consumes one declaration from the token stream,
// starting at its name ident. A missing colon yields nil after a
// diagnostic. (§5.4.5)
func (p *Parser) consumeDeclaration() *Declaration {
	name := p.next()
	if name.Type != IdentToken {
		panic(fmt.Sprintf("css: consumeDeclaration on %s, want Ident", name))
	}
	d := &Declaration{Name: name.Value}

	p.skipWhitespace()
	if tok := p.peek(); tok.Type != ColonToken {
		p.emit("expected colon in declaration", tok)
		return nil
	}
	p.next()
	p.skipWhitespace()

	for p.peek().Type != EOFToken {
		d.Value = append(d.Value, p.consumeComponentValue())
	}

	finishDeclaration(d)
	return d
}

// declarationFromValues parses one declaration from component values
// gathered inside a declaration list. values[0] is the name ident; the
// caller guarantees that.
func (p *Parser) declarationFromValues(values []ComponentValue) *Declaration {
	name, ok := values[0].(*PreservedToken)
	if !ok || name.Token.Type != IdentToken {
		panic(fmt.Sprintf("css: declaration values start with %v, want Ident", values[0]))
	}
	d := &Declaration{Name: name.Token.Value}

	rest := values[1:]
	rest = skipWhitespaceValues(rest)
	if len(rest) == 0 || !isPreserved(rest[0], ColonToken) {
		tok := EOF()
		if len(rest) > 0 {
			if pt, ok := rest[0].(*PreservedToken); ok {
				tok = pt.Token
			}
		}
		p.emit("expected colon in declaration", tok)
		return nil
	}
	rest = skipWhitespaceValues(rest[1:])

	d.Value = append(d.Value, rest...)
	finishDeclaration(d)
	return d
}

// finishDeclaration applies the end-of-declaration invariants: detect and
// remove a trailing "!important" pair once, then strip trailing
// whitespace.
func finishDeclaration(d *Declaration) {
	d.Value, d.Important = detectImportant(d.Value)
	for len(d.Value) > 0 && isPreserved(d.Value[len(d.Value)-1], WhitespaceToken) {
		d.Value = d.Value[:len(d.Value)-1]
	}
}

// detectImportant scans from the end, past whitespace, for an ident
// "important" (case-insensitive) preceded by a '!' delimiter. When found
// both are removed; whitespace between or after them is left for the
// trailing-whitespace strip.
func detectImportant(values []ComponentValue) ([]ComponentValue, bool) {
	last := -1
	for i := len(values) - 1; i >= 0; i-- {
		if isPreserved(values[i], WhitespaceToken) {
			continue
		}
		last = i
		break
	}
	if last < 0 {
		return values, false
	}
	pt, ok := values[last].(*PreservedToken)
	if !ok || !pt.Token.EqualIdent("important") {
		return values, false
	}

	prev := -1
	for i := last - 1; i >= 0; i-- {
		if isPreserved(values[i], WhitespaceToken) {
			continue
		}
		prev = i
		break
	}
	if prev < 0 {
		return values, false
	}
	if pt, ok := values[prev].(*PreservedToken); !ok || pt.Token.Type != DelimToken || pt.Token.Delim != '!' {
		return values, false
	}

	trimmed := append([]ComponentValue{}, values[:prev]...)
	trimmed = append(trimmed, values[prev+1:last]...)
	trimmed = append(trimmed, values[last+1:]...)
	return trimmed, true
}

// consumeComponentValue consumes one component value: a block for a
// block-open token, a function for a function token, otherwise the token
// itself preserved. (§5.4.6)
func (p *Parser) consumeComponentValue() ComponentValue {
	tok := p.next()
	switch {
	case tok.IsBlockOpen():
		return p.consumeSimpleBlock()
	case tok.Type == FunctionToken:
		return p.consumeFunction()
	default:
		return Preserved(tok)
	}
}

// consumeSimpleBlock consumes a simple block whose open token is the
// current token, up to its mirror close token. An unterminated block at
// EOF is returned as-is. (§5.4.7)
func (p *Parser) consumeSimpleBlock() *SimpleBlock {
	open := p.current
	closing := open.Mirror()
	block := &SimpleBlock{Token: open}

	for {
		tok := p.next()
		switch tok.Type {
		case closing.Type:
			return block
		case EOFToken:
			p.emit("unexpected EOF while consuming a simple block", tok)
			return block
		default:
			p.unread()
			block.Value = append(block.Value, p.consumeComponentValue())
		}
	}
}

// consumeFunction consumes a function whose name token is the current
// token, up to its closing parenthesis. (§5.4.8)
func (p *Parser) consumeFunction() *Function {
	fn := &Function{Name: p.current.Value}

	for {
		tok := p.next()
		switch tok.Type {
		case ParenCloseToken:
			return fn
		case EOFToken:
			p.emit("unexpected EOF while consuming a function", tok)
			return fn
		default:
			p.unread()
			fn.Value = append(fn.Value, p.consumeComponentValue())
		}
	}
}

func isPreserved(v ComponentValue, tt TokenType) bool {
	pt, ok := v.(*PreservedToken)
	return ok && pt.Token.Type == tt
}

func skipWhitespaceValues(vs []ComponentValue) []ComponentValue {
	for len(vs) > 0 && isPreserved(vs[0], WhitespaceToken) {
		vs = vs[1:]
	}
	return vs
}
