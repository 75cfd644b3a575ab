package css

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenType identifies the lexical kind of a Token. The set is closed:
// every token the stream can deliver is one of these kinds, so dispatch
// over tokens is always an exhaustive switch.
type TokenType int

const (
	EOFToken TokenType = iota
	IdentToken
	FunctionToken
	AtKeywordToken
	HashToken
	StringToken
	URLToken
	DelimToken
	NumberToken
	PercentageToken
	DimensionToken
	WhitespaceToken
	CDOToken
	CDCToken
	ColonToken
	SemicolonToken
	CommaToken
	BracketOpenToken
	BracketCloseToken
	ParenOpenToken
	ParenCloseToken
	BraceOpenToken
	BraceCloseToken
)

// String returns a short name for the token type, used in diagnostics.
func (tt TokenType) String() string {
	switch tt {
	case EOFToken:
		return "EOF"
	case IdentToken:
		return "Ident"
	case FunctionToken:
		return "Function"
	case AtKeywordToken:
		return "AtKeyword"
	case HashToken:
		return "Hash"
	case StringToken:
		return "String"
	case URLToken:
		return "URL"
	case DelimToken:
		return "Delim"
	case NumberToken:
		return "Number"
	case PercentageToken:
		return "Percentage"
	case DimensionToken:
		return "Dimension"
	case WhitespaceToken:
		return "Whitespace"
	case CDOToken:
		return "CDO"
	case CDCToken:
		return "CDC"
	case ColonToken:
		return "Colon"
	case SemicolonToken:
		return "Semicolon"
	case CommaToken:
		return "Comma"
	case BracketOpenToken:
		return "BracketOpen"
	case BracketCloseToken:
		return "BracketClose"
	case ParenOpenToken:
		return "ParenOpen"
	case ParenCloseToken:
		return "ParenClose"
	case BraceOpenToken:
		return "BraceOpen"
	case BraceCloseToken:
		return "BraceClose"
	}
	return "Invalid(" + strconv.Itoa(int(tt)) + ")"
}

// HashType distinguishes hash tokens whose text forms a valid identifier
// (usable as an ID selector) from unrestricted ones.
type HashType int

const (
	HashUnrestricted HashType = iota
	HashID
)

// Token is one lexical unit of CSS text, produced by the token source and
// never mutated afterwards. Value carries the textual payload for
// ident-like and numeric kinds with any syntactic decoration ('@', '#',
// quotes, the function's open paren) already stripped. Delim carries the
// code point of a Delim token, Hash the classification of a Hash token.
// The zero value is the EOF token.
type Token struct {
	Type  TokenType
	Value string
	Delim rune
	Hash  HashType
}

// Convenience constructors for the token kinds that carry a payload.
// Tests and the selector compiler build expected token sequences with
// these instead of struct literals.

func Ident(v string) Token            { return Token{Type: IdentToken, Value: v} }
func FunctionStart(name string) Token { return Token{Type: FunctionToken, Value: name} }
func AtKeyword(name string) Token     { return Token{Type: AtKeywordToken, Value: name} }
func Delim(r rune) Token              { return Token{Type: DelimToken, Delim: r, Value: string(r)} }
func Number(v string) Token           { return Token{Type: NumberToken, Value: v} }
func Dimension(v string) Token        { return Token{Type: DimensionToken, Value: v} }
func Percentage(v string) Token       { return Token{Type: PercentageToken, Value: v} }
func Str(v string) Token              { return Token{Type: StringToken, Value: v} }
func Whitespace() Token               { return Token{Type: WhitespaceToken, Value: " "} }
func Colon() Token                    { return Token{Type: ColonToken, Value: ":"} }
func Semicolon() Token                { return Token{Type: SemicolonToken, Value: ";"} }
func Comma() Token                    { return Token{Type: CommaToken, Value: ","} }
func BraceOpen() Token                { return Token{Type: BraceOpenToken, Value: "{"} }
func BraceClose() Token               { return Token{Type: BraceCloseToken, Value: "}"} }
func BracketOpen() Token              { return Token{Type: BracketOpenToken, Value: "["} }
func BracketClose() Token             { return Token{Type: BracketCloseToken, Value: "]"} }
func ParenOpen() Token                { return Token{Type: ParenOpenToken, Value: "("} }
func ParenClose() Token               { return Token{Type: ParenCloseToken, Value: ")"} }
func EOF() Token                      { return Token{Type: EOFToken} }

// Hash returns a hash token classified as ID or unrestricted.
func Hash(name string, ht HashType) Token {
	return Token{Type: HashToken, Value: name, Hash: ht}
}

// IsBlockOpen reports whether the token opens a simple block.
func (t Token) IsBlockOpen() bool {
	switch t.Type {
	case BraceOpenToken, BracketOpenToken, ParenOpenToken:
		return true
	}
	return false
}

// Mirror returns the close token matching a block-open token. The pairing
// is fixed at the token level; asking for the mirror of any other token is
// a caller contract breach.
func (t Token) Mirror() Token {
	switch t.Type {
	case BraceOpenToken:
		return BraceClose()
	case BracketOpenToken:
		return BracketClose()
	case ParenOpenToken:
		return ParenClose()
	}
	panic(fmt.Sprintf("css: token %s has no mirror", t.Type))
}

// Float parses the numeric part of a Number, Percentage or Dimension
// token. The second result is false when the token carries no number.
func (t Token) Float() (float64, bool) {
	switch t.Type {
	case NumberToken, PercentageToken, DimensionToken:
		num := t.Value
		if i := numericPrefixLen(num); i > 0 {
			num = num[:i]
		}
		f, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Unit returns the unit suffix of a Dimension token ("px" of "16px"), "%"
// for a Percentage token and "" otherwise.
func (t Token) Unit() string {
	switch t.Type {
	case PercentageToken:
		return "%"
	case DimensionToken:
		return t.Value[numericPrefixLen(t.Value):]
	}
	return ""
}

// numericPrefixLen returns the length of the leading number in s.
func numericPrefixLen(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	seenDot := false
	seenExp := false
	for i < len(s) {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c == '.' && !seenDot && !seenExp:
			seenDot = true
		case (c == 'e' || c == 'E') && !seenExp && i+1 < len(s) &&
			(s[i+1] >= '0' && s[i+1] <= '9' || s[i+1] == '+' || s[i+1] == '-'):
			seenExp = true
			if s[i+1] == '+' || s[i+1] == '-' {
				i++
			}
		default:
			return i
		}
		i++
	}
	return i
}

// String renders the token for diagnostics.
func (t Token) String() string {
	switch t.Type {
	case DelimToken:
		return fmt.Sprintf("Delim(%q)", t.Delim)
	case IdentToken, FunctionToken, AtKeywordToken, HashToken, StringToken,
		URLToken, NumberToken, PercentageToken, DimensionToken:
		return fmt.Sprintf("%s(%s)", t.Type, t.Value)
	}
	return t.Type.String()
}

// EqualIdent reports whether the token is an ident token matching name
// ASCII case-insensitively, the comparison CSS keywords require.
func (t Token) EqualIdent(name string) bool {
	return t.Type == IdentToken && strings.EqualFold(t.Value, name)
}
