package token

import (
	"errors"
	"testing"
)

func TestTokenizeTypes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []TokenType
	}{
		{"empty object", `{}`, []TokenType{TLCurl, TRCurl}},
		{"empty array", `[]`, []TokenType{TLSquare, TRSquare}},
		{"object", `{"a": 1}`, []TokenType{TLCurl, TString, TColon, TInteger, TRCurl}},
		{"array", `[1, 2.5, "x"]`, []TokenType{TLSquare, TInteger, TComma, TFloat, TComma, TString, TRSquare}},
		{"literals", `[true, false, null]`, []TokenType{TLSquare, TTrue, TComma, TFalse, TComma, TNull, TRSquare}},
		{"negative", `-42`, []TokenType{TInteger}},
		{"exponent", `1e9`, []TokenType{TFloat}},
		{"neg fraction", `-0.25`, []TokenType{TFloat}},
		{"ws and newlines", "{\n  \"a\": 1\n}", []TokenType{TLCurl, TString, TColon, TInteger, TRCurl}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, _, err := Tokenize([]byte(tt.input))
			if err != nil {
				t.Fatal(err)
			}
			if len(toks) != len(tt.want) {
				t.Fatalf("got %d tokens, want %d", len(toks), len(tt.want))
			}
			for i, tok := range toks {
				if tok.Type != tt.want[i] {
					t.Errorf("token %d = %s, want %s", i, tok.Type, tt.want[i])
				}
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"unterminated string", `"abc`, ErrUnterminated},
		{"bad escape", `"\q"`, ErrBadEscape},
		{"bad unicode", `"\uZZZZ"`, ErrBadUnicode},
		{"leading zero", `01`, ErrNumberLeadingZero},
		{"lone minus", `-`, ErrNumber},
		{"raw control", "\"a\nb\"", ErrUnicodeControl},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Tokenize([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTokenizeUnexpected(t *testing.T) {
	_, _, err := Tokenize([]byte(`@`))
	if err == nil {
		t.Fatal("expected error for stray byte")
	}
}

func TestTokenPositions(t *testing.T) {
	toks, _, err := Tokenize([]byte("{\n\"a\": 7}"))
	if err != nil {
		t.Fatal(err)
	}
	// "a" starts at line 1, col 0
	if line, col := toks[1].Pos.LineCol(); line != 1 || col != 0 {
		t.Fatalf("string pos = (%d,%d), want (1,0)", line, col)
	}
	// 7 is on line 1
	if toks[3].Pos.Line() != 1 {
		t.Fatalf("number line = %d, want 1", toks[3].Pos.Line())
	}
}

func TestTokenString(t *testing.T) {
	toks, _, err := Tokenize([]byte(`"a\tb"`))
	if err != nil {
		t.Fatal(err)
	}
	if got := toks[0].String(); got != "a\tb" {
		t.Fatalf("String() = %q", got)
	}
}
