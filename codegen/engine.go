package codegen

import (
	"fmt"
	"strings"
)

// Engine is the LaTeX engine named in the generated banner.
type Engine uint8

const (
	Pdflatex Engine = iota
	Latex
	XeLatex
	LuaLatex
)

var engineNames = map[Engine]string{
	Latex:    "latex",
	Pdflatex: "pdflatex",
	XeLatex:  "xelatex",
	LuaLatex: "lualatex",
}

func (e Engine) String() string {
	if name, ok := engineNames[e]; ok {
		return name
	}
	return "unknown"
}

// ParseEngine resolves an engine by name, case-insensitively.
func ParseEngine(name string) (Engine, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for engine, engineName := range engineNames {
		if engineName == name {
			return engine, nil
		}
	}
	return 0, fmt.Errorf("unknown LaTeX engine %q (expected latex, pdflatex, xelatex or lualatex)", name)
}

// UnmarshalText implements encoding.TextUnmarshaler so engines can be read
// from configuration files.
func (e *Engine) UnmarshalText(text []byte) error {
	engine, err := ParseEngine(string(text))
	if err != nil {
		return err
	}
	*e = engine
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (e Engine) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}
