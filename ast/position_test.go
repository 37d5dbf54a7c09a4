package ast

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestSpan_Text(t *testing.T) {
	source := []byte("startdoc 한글 text")

	at := func(offset int) Position {
		return Position{Offset: offset, Line: 1, Column: offset + 1}
	}

	t.Run("Valid span", func(t *testing.T) {
		span := Span{Start: at(0), End: at(8)}
		assert.Equal(t, "startdoc", span.Text(source))
	})

	t.Run("Multibyte span", func(t *testing.T) {
		span := Span{Start: at(9), End: at(15)}
		assert.Equal(t, "한글", span.Text(source))
	})

	t.Run("Zero span", func(t *testing.T) {
		assert.Equal(t, "", Span{}.Text(source), "zero span should return empty string")
	})

	t.Run("Start greater than End", func(t *testing.T) {
		span := Span{Start: at(10), End: at(5)}
		assert.Equal(t, "", span.Text(source), "start > end should return empty string")
	})

	t.Run("End beyond source", func(t *testing.T) {
		span := Span{Start: at(0), End: at(100)}
		assert.Equal(t, "", span.Text(source), "end beyond source should return empty string")
	})
}

func TestPosition_String(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		want string
	}{
		{"with filename", Position{Filename: "main.ves", Line: 3, Column: 7}, "main.ves:3:7"},
		{"without filename", Position{Line: 1, Column: 1}, "1:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pos.String())
		})
	}
}

func TestSpan_String(t *testing.T) {
	single := Span{
		Start: Position{Line: 2, Column: 1},
		End:   Position{Line: 2, Column: 7},
	}
	assert.Equal(t, "2:1-7", single.String())

	multi := Span{
		Start: Position{Filename: "a.ves", Line: 2, Column: 1},
		End:   Position{Filename: "a.ves", Line: 4, Column: 3},
	}
	assert.Equal(t, "a.ves:2:1-4:3", multi.String())
}

func TestTrimAll(t *testing.T) {
	trim := TrimAll()
	assert.True(t, trim.Start)
	assert.True(t, trim.End)
	assert.True(t, trim.Mid != nil && *trim.Mid)

	other := TrimAll()
	*other.Mid = false
	assert.True(t, *trim.Mid, "TrimAll must not share its Mid flag")
}

func TestArgNeed_String(t *testing.T) {
	assert.Equal(t, "MainArg", MainArg.String())
	assert.Equal(t, "Optional", Optional.String())
	assert.Equal(t, "StarArg", StarArg.String())
}

func TestDelimiterKind_String(t *testing.T) {
	assert.Equal(t, "Default", DefaultDelimiter.String())
	assert.Equal(t, "LeftBig", LeftBig.String())
	assert.Equal(t, "RightBig", RightBig.String())
	assert.Equal(t, "DelimiterKind(?)", DelimiterKind(9).String())
}
