package parser

import (
	"context"
	"testing"
)

var fuzzSeeds = []string{
	"docclass article\nstartdoc\nHello\n",
	"docclass article (10pt, a4paper)\nimport {\n  amsmath, amssymb\n}\n",
	"startdoc\n$x^2 + {a//b}$ and $$\\int f$$",
	"startdoc\nbegenv equation\nbegenv align\nx\nendenv\ny\nendenv\n",
	"defun* foo (#1)\n #1 \nenddef*",
	"defenv box [1, x]\nendswith*\nendenv",
	"useenv center { mtxt a etxt }",
	"pbegenv proof\npendenv proof",
	"% comment\n%* block *%#!raw!#",
	`\section*[a\;b]{c}`,
	"{", "}", "$", "$$", "\\", "##+", "\x01", "-.5", "1.",
}

func FuzzLexer(f *testing.F) {
	for _, seed := range fuzzSeeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		for _, mode := range []Mode{TextMode, MathMode} {
			tokens := NewLexer([]byte(input), "fuzz.ves").ScanAll(mode)

			last := tokens[len(tokens)-1]
			if last.Type != EOF {
				t.Fatalf("last token is %s, want EOF", last.Type)
			}

			offset := 0
			for _, tok := range tokens {
				if tok.Span.Start.Offset < offset {
					t.Fatalf("token %s at offset %d goes backwards from %d", tok.Type, tok.Span.Start.Offset, offset)
				}
				if tok.Type != EOF && tok.Span.End.Offset <= tok.Span.Start.Offset {
					t.Fatalf("token %s has an empty span", tok.Type)
				}
				offset = tok.Span.End.Offset
			}
		}
	})
}

func FuzzParser(f *testing.F) {
	for _, seed := range fuzzSeeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		latex, err := ParseString(context.Background(), input)
		if err != nil {
			if _, ok := err.(*ParseError); !ok {
				t.Fatalf("error is %T, want *ParseError", err)
			}
			return
		}
		for i, stmt := range latex {
			if stmt == nil {
				t.Fatalf("statement %d is nil", i)
			}
		}
	})
}
