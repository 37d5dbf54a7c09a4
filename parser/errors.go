package parser

import (
	"fmt"
	"strings"

	"github.com/robinvdvleuten/vesti/ast"
)

// ErrorKind classifies parse errors.
type ErrorKind uint8

const (
	ErrEOF ErrorKind = iota + 1
	ErrParseInt
	ErrParseFloat
	ErrNameMiss
	ErrBracketMismatch
	ErrBracketNumberMatched
	ErrIsNotOpened
	ErrIsNotClosed
	ErrTypeMismatch
	ErrIllegalUse
	ErrBeforeDocument
	ErrInvalidTokToConvert
	ErrIllegalCharacter
	ErrDeprecated
)

var errorKindNames = map[ErrorKind]string{
	ErrEOF:                  "EOF",
	ErrParseInt:             "ParseInt",
	ErrParseFloat:           "ParseFloat",
	ErrNameMiss:             "NameMiss",
	ErrBracketMismatch:      "BracketMismatch",
	ErrBracketNumberMatched: "BracketNumberMatched",
	ErrIsNotOpened:          "IsNotOpened",
	ErrIsNotClosed:          "IsNotClosed",
	ErrTypeMismatch:         "TypeMismatch",
	ErrIllegalUse:           "IllegalUse",
	ErrBeforeDocument:       "BeforeDocument",
	ErrInvalidTokToConvert:  "InvalidTokToConvert",
	ErrIllegalCharacter:     "IllegalCharacter",
	ErrDeprecated:           "Deprecated",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Code returns the stable diagnostic code of the kind, e.g. "E0101".
func (k ErrorKind) Code() string {
	return fmt.Sprintf("E01%02d", int(k))
}

// ParseError is returned for the first syntax error the parser meets.
// Which of the optional fields are set depends on Kind.
type ParseError struct {
	Kind ErrorKind
	Span ast.Span

	Expected []TokenType // TypeMismatch, BracketMismatch
	Got      TokenType   // TypeMismatch, IllegalUse, BeforeDocument, InvalidTokToConvert, Deprecated
	Open     []TokenType // IsNotOpened, IsNotClosed
	Close    TokenType   // IsNotOpened, IsNotClosed
	Instead  string      // Deprecated
	Literal  string      // offending source text, when known

	Underlying error
}

// Error implements error as "file:line:col: message".
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Span.Start, e.Message())
}

// Message returns the error text without its location.
func (e *ParseError) Message() string {
	switch e.Kind {
	case ErrEOF:
		return "EOF found unexpectedly"
	case ErrParseInt:
		return fmt.Sprintf("cannot parse %q as an integer", e.Literal)
	case ErrParseFloat:
		return fmt.Sprintf("cannot parse %q as a number", e.Literal)
	case ErrNameMiss:
		return fmt.Sprintf("missing name after `%s`", e.Got)
	case ErrBracketMismatch:
		return fmt.Sprintf("cannot find `%s` to close this", joinTypes(e.Expected))
	case ErrBracketNumberMatched:
		return "delimiter pair does not match"
	case ErrIsNotOpened:
		return fmt.Sprintf("`%s` is used without its opening part", e.Close)
	case ErrIsNotClosed:
		return fmt.Sprintf("`%s` is not closed", joinTypes(e.Open))
	case ErrTypeMismatch:
		return fmt.Sprintf("expected %s, got `%s`", joinTypes(e.Expected), e.Got)
	case ErrIllegalUse:
		return fmt.Sprintf("`%s` cannot be used here", e.Got)
	case ErrBeforeDocument:
		return fmt.Sprintf("`%s` must be used after `startdoc`", e.Got)
	case ErrInvalidTokToConvert:
		return fmt.Sprintf("`%s` is not allowed here", e.Got)
	case ErrIllegalCharacter:
		return fmt.Sprintf("illegal character %q", e.Literal)
	case ErrDeprecated:
		return fmt.Sprintf("`%s` is deprecated", e.Got)
	}
	return "parse error"
}

// Details returns help lines shown under the source excerpt.
func (e *ParseError) Details() []string {
	switch e.Kind {
	case ErrEOF:
		return []string{"the file ended before this construct was complete"}
	case ErrNameMiss:
		return []string{fmt.Sprintf("write a name right after `%s`", e.Got)}
	case ErrBracketMismatch, ErrBracketNumberMatched:
		return []string{"check that every opening delimiter has a matching close"}
	case ErrIsNotOpened:
		return []string{fmt.Sprintf("add one of %s before this", joinTypes(e.Open))}
	case ErrIsNotClosed:
		return []string{fmt.Sprintf("add `%s` to close it", e.Close)}
	case ErrIllegalUse:
		switch e.Got {
		case SUPERSCRIPT, SUBSCRIPT:
			return []string{"use it inside math mode or a definition body"}
		case FRAC_DIVIDE:
			return []string{"a fraction needs its own braces: {a // b}"}
		}
	case ErrBeforeDocument:
		return []string{fmt.Sprintf("move `%s` after `startdoc`", e.Got)}
	case ErrInvalidTokToConvert:
		return []string{"this math delimiter closes nothing"}
	case ErrDeprecated:
		if e.Instead != "" {
			return []string{fmt.Sprintf("use `%s` instead", e.Instead)}
		}
	}
	return nil
}

// GetPosition returns the start of the span the error points at.
func (e *ParseError) GetPosition() ast.Position {
	return e.Span.Start
}

// GetSpan returns the span the error points at.
func (e *ParseError) GetSpan() ast.Span {
	return e.Span
}

// Code returns the diagnostic code of the error's kind.
func (e *ParseError) Code() string {
	return e.Kind.Code()
}

func (e *ParseError) Unwrap() error {
	return e.Underlying
}

func joinTypes(types []TokenType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ", ")
}

func errorAt(kind ErrorKind, span ast.Span) *ParseError {
	return &ParseError{Kind: kind, Span: span}
}

func eofError(span ast.Span) *ParseError {
	return errorAt(ErrEOF, span)
}

func typeMismatch(got Token, expected ...TokenType) *ParseError {
	if got.Type == EOF {
		return eofError(got.Span)
	}
	return &ParseError{Kind: ErrTypeMismatch, Span: got.Span, Expected: expected, Got: got.Type, Literal: got.Literal}
}

func notOpened(tok Token, open ...TokenType) *ParseError {
	return &ParseError{Kind: ErrIsNotOpened, Span: tok.Span, Open: open, Close: tok.Type}
}

func notClosed(span ast.Span, open, close TokenType) *ParseError {
	return &ParseError{Kind: ErrIsNotClosed, Span: span, Open: []TokenType{open}, Close: close}
}

func nameMissing(keyword Token) *ParseError {
	return &ParseError{Kind: ErrNameMiss, Span: keyword.Span, Got: keyword.Type}
}

func bracketMismatch(span ast.Span, expected TokenType) *ParseError {
	return &ParseError{Kind: ErrBracketMismatch, Span: span, Expected: []TokenType{expected}}
}

func bracketCount(open Token) *ParseError {
	return &ParseError{Kind: ErrBracketNumberMatched, Span: open.Span, Open: []TokenType{open.Type}}
}

func illegalUse(tok Token) *ParseError {
	return &ParseError{Kind: ErrIllegalUse, Span: tok.Span, Got: tok.Type, Literal: tok.Literal}
}
