package css_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"stylecore/css"
)

func drain(ts css.TokenStream) []css.Token {
	var tokens []css.Token
	for {
		t := ts.Next()
		if t.Type == css.EOFToken {
			return tokens
		}
		tokens = append(tokens, t)
	}
}

func TestTokenStream_Normalization(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []css.Token
	}{
		{
			name:  "function name is stripped of its paren",
			input: "rgb(0)",
			want: []css.Token{
				css.FunctionStart("rgb"),
				css.Number("0"),
				css.ParenClose(),
			},
		},
		{
			name:  "at-keyword loses the at sign",
			input: "@media",
			want:  []css.Token{css.AtKeyword("media")},
		},
		{
			name:  "id hash",
			input: "#main",
			want:  []css.Token{css.Hash("main", css.HashID)},
		},
		{
			name:  "unrestricted hash",
			input: "#12ab",
			want:  []css.Token{css.Hash("12ab", css.HashUnrestricted)},
		},
		{
			name:  "string is unquoted",
			input: `"hello"`,
			want:  []css.Token{css.Str("hello")},
		},
		{
			name:  "comments vanish",
			input: "a/* note */b",
			want:  []css.Token{css.Ident("a"), css.Ident("b")},
		},
		{
			name:  "numeric kinds",
			input: "12 50% 16px",
			want: []css.Token{
				css.Number("12"),
				css.Whitespace(),
				css.Percentage("50%"),
				css.Whitespace(),
				css.Dimension("16px"),
			},
		},
		{
			name:  "punctuation",
			input: "{[(:;,)]}",
			want: []css.Token{
				css.BraceOpen(),
				css.BracketOpen(),
				css.ParenOpen(),
				css.Colon(),
				css.Semicolon(),
				css.Comma(),
				css.ParenClose(),
				css.BracketClose(),
				css.BraceClose(),
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := drain(css.NewStringStream(tc.input))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("token mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenStream_PeekDoesNotConsume(t *testing.T) {
	ts := css.NewStringStream("a b")

	if got := ts.Peek(); got.Value != "a" {
		t.Fatalf("Peek: expected 'a', got %s", got)
	}
	if got := ts.Peek(); got.Value != "a" {
		t.Fatalf("second Peek: expected 'a', got %s", got)
	}
	if got := ts.Next(); got.Value != "a" {
		t.Fatalf("Next after Peek: expected 'a', got %s", got)
	}
}

func TestTokenStream_EOFIsSticky(t *testing.T) {
	ts := css.NewStringStream("a")
	ts.Next()

	for range 3 {
		if got := ts.Peek(); got.Type != css.EOFToken {
			t.Fatalf("Peek past end: expected EOF, got %s", got)
		}
		if got := ts.Next(); got.Type != css.EOFToken {
			t.Fatalf("Next past end: expected EOF, got %s", got)
		}
	}
}

func TestTokenMirror(t *testing.T) {
	pairs := map[css.Token]css.Token{
		css.BraceOpen():   css.BraceClose(),
		css.BracketOpen(): css.BracketClose(),
		css.ParenOpen():   css.ParenClose(),
	}
	for open, want := range pairs {
		if got := open.Mirror(); got != want {
			t.Errorf("%s.Mirror() = %s, want %s", open, got, want)
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for Mirror on a non-block token")
		}
	}()
	css.Ident("div").Mirror()
}

func TestTokenFloatAndUnit(t *testing.T) {
	tests := []struct {
		tok  css.Token
		val  float64
		unit string
	}{
		{css.Number("12"), 12, ""},
		{css.Number("-1.5"), -1.5, ""},
		{css.Percentage("50%"), 50, "%"},
		{css.Dimension("16px"), 16, "px"},
		{css.Dimension("1.2em"), 1.2, "em"},
	}
	for _, tc := range tests {
		f, ok := tc.tok.Float()
		if !ok {
			t.Errorf("%s: Float() not ok", tc.tok)
			continue
		}
		if f != tc.val {
			t.Errorf("%s: Float() = %v, want %v", tc.tok, f, tc.val)
		}
		if u := tc.tok.Unit(); u != tc.unit {
			t.Errorf("%s: Unit() = %q, want %q", tc.tok, u, tc.unit)
		}
	}

	if _, ok := css.Ident("auto").Float(); ok {
		t.Error("ident should not have a numeric value")
	}
}
