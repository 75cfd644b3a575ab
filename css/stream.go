package css

import (
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	tdcss "github.com/tdewolff/parse/v2/css"
)

// TokenStream is the parser's view of the external tokenizer: an
// EOF-terminated sequence supporting peek-without-consuming and
// consume-and-advance. Once EOF is delivered both methods keep returning
// EOF, so lookahead past the end is always well defined.
type TokenStream interface {
	// Next consumes and returns the next token.
	Next() Token
	// Peek returns the next token without consuming it.
	Peek() Token
}

// lexerStream adapts the tdewolff CSS lexer to the TokenStream contract,
// normalizing its lexical kinds into the parser's token model.
type lexerStream struct {
	lexer *tdcss.Lexer
	buf   Token
	full  bool
	done  bool
}

// NewTokenStream returns a TokenStream tokenizing CSS text from r.
func NewTokenStream(r io.Reader) TokenStream {
	return &lexerStream{lexer: tdcss.NewLexer(parse.NewInput(r))}
}

// NewStringStream returns a TokenStream over in-memory CSS text.
func NewStringStream(s string) TokenStream {
	return NewTokenStream(strings.NewReader(s))
}

func (ls *lexerStream) Next() Token {
	if ls.full {
		ls.full = false
		return ls.buf
	}
	return ls.lex()
}

func (ls *lexerStream) Peek() Token {
	if !ls.full {
		ls.buf = ls.lex()
		ls.full = true
	}
	return ls.buf
}

// lex pulls raw lexer tokens until one survives normalization. Comments
// are a tokenizer-level artifact and never reach the parser.
func (ls *lexerStream) lex() Token {
	if ls.done {
		return EOF()
	}
	for {
		tt, data := ls.lexer.Next()
		switch tt {
		case tdcss.ErrorToken:
			// The lexer reports end of input as an error token; any
			// other lexer error also terminates the stream.
			ls.done = true
			return EOF()
		case tdcss.CommentToken:
			continue
		default:
			return convertToken(tt, string(data))
		}
	}
}

// convertToken maps one tdewolff lexical token onto the parser's token
// model, stripping syntactic decoration from the payload.
func convertToken(tt tdcss.TokenType, data string) Token {
	switch tt {
	case tdcss.IdentToken:
		return Ident(data)
	case tdcss.FunctionToken:
		return FunctionStart(strings.TrimSuffix(data, "("))
	case tdcss.AtKeywordToken:
		return AtKeyword(strings.TrimPrefix(data, "@"))
	case tdcss.HashToken:
		name := strings.TrimPrefix(data, "#")
		return Hash(name, classifyHash(name))
	case tdcss.StringToken:
		return Str(unquote(data))
	case tdcss.BadStringToken:
		return Str(unquote(data))
	case tdcss.URLToken, tdcss.BadURLToken:
		return Token{Type: URLToken, Value: unwrapURL(data)}
	case tdcss.NumberToken:
		return Number(data)
	case tdcss.PercentageToken:
		return Percentage(data)
	case tdcss.DimensionToken:
		return Dimension(data)
	case tdcss.WhitespaceToken:
		return Whitespace()
	case tdcss.CDOToken:
		return Token{Type: CDOToken, Value: data}
	case tdcss.CDCToken:
		return Token{Type: CDCToken, Value: data}
	case tdcss.ColonToken:
		return Colon()
	case tdcss.SemicolonToken:
		return Semicolon()
	case tdcss.CommaToken:
		return Comma()
	case tdcss.LeftBracketToken:
		return BracketOpen()
	case tdcss.RightBracketToken:
		return BracketClose()
	case tdcss.LeftParenthesisToken:
		return ParenOpen()
	case tdcss.RightParenthesisToken:
		return ParenClose()
	case tdcss.LeftBraceToken:
		return BraceOpen()
	case tdcss.RightBraceToken:
		return BraceClose()
	}
	// Multi-code-point oddities (unicode ranges, match operators) have no
	// place in the grammar this parser consumes; preserve them as delims
	// so error recovery can skip over them.
	r := ' '
	for _, c := range data {
		r = c
		break
	}
	return Token{Type: DelimToken, Delim: r, Value: data}
}

// classifyHash decides whether a hash token's text is a valid CSS
// identifier, which makes the hash usable as an ID selector.
func classifyHash(name string) HashType {
	if name == "" {
		return HashUnrestricted
	}
	for i, r := range name {
		ok := r == '_' || r == '-' || r > 0x80 ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9' && i > 0)
		if !ok {
			return HashUnrestricted
		}
	}
	// A leading digit, or a lone hyphen, never starts an identifier.
	if name[0] >= '0' && name[0] <= '9' || name == "-" {
		return HashUnrestricted
	}
	return HashID
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') {
		if s[len(s)-1] == s[0] {
			return s[1 : len(s)-1]
		}
		return s[1:]
	}
	return s
}

func unwrapURL(s string) string {
	if len(s) >= 4 && strings.EqualFold(s[:4], "url(") {
		s = s[4:]
		s = strings.TrimSuffix(s, ")")
	}
	return unquote(strings.TrimSpace(s))
}

// sliceStream replays a fixed token sequence, then EOF forever. The
// parser uses it to re-parse declaration segments, and tests use it to
// drive entry points from hand-built token lists.
type sliceStream struct {
	tokens []Token
	i      int
}

// NewSliceStream returns a TokenStream over a fixed token sequence.
func NewSliceStream(tokens []Token) TokenStream {
	return &sliceStream{tokens: tokens}
}

func (ss *sliceStream) Next() Token {
	if ss.i >= len(ss.tokens) {
		return EOF()
	}
	t := ss.tokens[ss.i]
	ss.i++
	return t
}

func (ss *sliceStream) Peek() Token {
	if ss.i >= len(ss.tokens) {
		return EOF()
	}
	return ss.tokens[ss.i]
}
