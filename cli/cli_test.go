package cli

import (
	"bytes"
	"encoding/json"
	stdErrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/alecthomas/kong"
)

const minimalSource = "docclass article\nstartdoc\nHello\n"

const minimalLatex = "\\documentclass{article}\n\\begin{document}\nHello\n\n\\end{document}\n"

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var (
		cli            Commands
		stdout, stderr bytes.Buffer
	)
	parser, err := kong.New(&cli,
		kong.Name("vesti"),
		kong.Writers(&stdout, &stderr),
		kong.Bind(&cli.Globals),
		kong.Exit(func(code int) { t.Fatalf("unexpected exit with code %d", code) }),
	)
	assert.NoError(t, err)

	kctx, err := parser.Parse(args)
	assert.NoError(t, err)

	err = kctx.Run()
	return stdout.String(), stderr.String(), err
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	return string(data)
}

func withStdin(t *testing.T, content string) {
	t.Helper()
	prev := stdin
	stdin = strings.NewReader(content)
	t.Cleanup(func() { stdin = prev })
}

func withTerminal(t *testing.T, terminal bool) {
	t.Helper()
	prev := isTerminal
	isTerminal = func() bool { return terminal }
	t.Cleanup(func() { isTerminal = prev })
}

func assertExitCode(t *testing.T, err error, code int) {
	t.Helper()
	var cmdErr *CommandError
	assert.True(t, stdErrors.As(err, &cmdErr), "expected *CommandError, got %v", err)
	assert.Equal(t, code, cmdErr.ExitCode())
}

func TestRunCmd(t *testing.T) {
	t.Run("WritesTexNextToSource", func(t *testing.T) {
		dir := t.TempDir()
		src := writeSource(t, dir, "main.ves", minimalSource)

		stdout, _, err := runCLI(t, "run", "--no-banner", src)
		assert.NoError(t, err)

		assert.Equal(t, minimalLatex, readFile(t, filepath.Join(dir, "main.tex")))
		assert.Contains(t, stdout, "Wrote")
		assert.Contains(t, stdout, "main.tex")
		assert.Contains(t, stdout, "B)")
	})

	t.Run("Banner", func(t *testing.T) {
		dir := t.TempDir()
		src := writeSource(t, dir, "main.ves", minimalSource)

		_, _, err := runCLI(t, "run", "--engine", "xelatex", src)
		assert.NoError(t, err)

		banner := "%\n%  This file was generated by vesti dev\n%  Compile this file using xelatex engine\n"
		assert.Equal(t, banner+minimalLatex, readFile(t, filepath.Join(dir, "main.tex")))
	})

	t.Run("OutputDir", func(t *testing.T) {
		dir := t.TempDir()
		src := writeSource(t, dir, "main.ves", minimalSource)
		out := filepath.Join(dir, "build", "tex")

		_, _, err := runCLI(t, "run", "--no-banner", "--output-dir", out, src)
		assert.NoError(t, err)

		assert.Equal(t, minimalLatex, readFile(t, filepath.Join(out, "main.tex")))
		_, err = os.Stat(filepath.Join(dir, "main.tex"))
		assert.True(t, stdErrors.Is(err, os.ErrNotExist))
	})

	t.Run("ParseErrorFails", func(t *testing.T) {
		dir := t.TempDir()
		src := writeSource(t, dir, "main.ves", "startdoc\nbegenv center\nHello\n")

		_, stderr, err := runCLI(t, "run", src)
		assertExitCode(t, err, 1)

		assert.Contains(t, stderr, "error[E0108]: `begenv` is not closed")
		assert.Contains(t, stderr, "begenv center")
		assert.Contains(t, stderr, "help: add `endenv` to close it")
		assert.Contains(t, stderr, "parse error")
		_, err = os.Stat(filepath.Join(dir, "main.tex"))
		assert.True(t, stdErrors.Is(err, os.ErrNotExist))
	})

	t.Run("JSONErrors", func(t *testing.T) {
		dir := t.TempDir()
		src := writeSource(t, dir, "main.ves", "startdoc\n}")

		_, stderr, err := runCLI(t, "run", "--error-format", "json", src)
		assertExitCode(t, err, 1)

		var got struct {
			Code     string `json:"code"`
			Message  string `json:"message"`
			Position struct {
				Line   int `json:"line"`
				Column int `json:"column"`
			} `json:"position"`
		}
		assert.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(stderr)), &got))
		assert.Equal(t, "E0107", got.Code)
		assert.Equal(t, "`}` is used without its opening part", got.Message)
		assert.Equal(t, 2, got.Position.Line)
		assert.Equal(t, 1, got.Position.Column)
	})

	t.Run("OneFailureKeepsOthers", func(t *testing.T) {
		dir := t.TempDir()
		good := writeSource(t, dir, "good.ves", minimalSource)
		bad := writeSource(t, dir, "bad.ves", "startdoc\nendenv")

		stdout, stderr, err := runCLI(t, "run", "--no-banner", good, bad)
		assertExitCode(t, err, 1)

		assert.Equal(t, minimalLatex, readFile(t, filepath.Join(dir, "good.tex")))
		assert.Contains(t, stdout, "good.tex")
		assert.Contains(t, stderr, "`endenv` is used without its opening part")
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, stderr, err := runCLI(t, "run", filepath.Join(t.TempDir(), "missing.ves"))
		assertExitCode(t, err, 1)
		assert.Contains(t, stderr, "failed to read")
	})

	t.Run("SkipsNonSourceInputs", func(t *testing.T) {
		dir := t.TempDir()
		src := writeSource(t, dir, "main.ves", minimalSource)
		tex := writeSource(t, dir, "notes.tex", "keep me")

		stdout, stderr, err := runCLI(t, "run", "--no-banner", src, tex)
		assert.NoError(t, err)
		assert.Contains(t, stderr, "warning: skipping "+tex+": not a .ves file")
		assert.Equal(t, "keep me", readFile(t, tex))
		assert.Contains(t, stdout, "Wrote "+filepath.Join(dir, "main.tex"))
	})

	t.Run("NoSourceInputs", func(t *testing.T) {
		txt := writeSource(t, t.TempDir(), "notes.txt", minimalSource)

		_, stderr, err := runCLI(t, "run", txt)
		assertExitCode(t, err, 1)
		assert.Contains(t, stderr, "no .ves files to compile")
	})

	t.Run("ConfigFile", func(t *testing.T) {
		dir := t.TempDir()
		src := writeSource(t, dir, "main.ves", minimalSource)
		out := filepath.Join(dir, "out")
		cfg := writeSource(t, dir, "vesti.toml", "engine = \"lualatex\"\noutput_dir = '"+out+"'\n")

		_, _, err := runCLI(t, "--config", cfg, "run", src)
		assert.NoError(t, err)
		assert.Contains(t, readFile(t, filepath.Join(out, "main.tex")), "using lualatex engine")
	})

	t.Run("FlagsOverrideConfig", func(t *testing.T) {
		dir := t.TempDir()
		src := writeSource(t, dir, "main.ves", minimalSource)
		cfg := writeSource(t, dir, "vesti.yaml", "engine: lualatex\nbanner: true\n")

		_, _, err := runCLI(t, "--config", cfg, "run", "--engine", "latex", src)
		assert.NoError(t, err)
		assert.Contains(t, readFile(t, filepath.Join(dir, "main.tex")), "using latex engine")

		_, _, err = runCLI(t, "--config", cfg, "run", "--no-banner", src)
		assert.NoError(t, err)
		assert.Equal(t, minimalLatex, readFile(t, filepath.Join(dir, "main.tex")))
	})

	t.Run("InvalidEngine", func(t *testing.T) {
		src := writeSource(t, t.TempDir(), "main.ves", minimalSource)

		_, _, err := runCLI(t, "run", "--engine", "context", src)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown LaTeX engine")
	})

	t.Run("Telemetry", func(t *testing.T) {
		src := writeSource(t, t.TempDir(), "main.ves", minimalSource)

		_, stderr, err := runCLI(t, "--telemetry", "run", src)
		assert.NoError(t, err)
		assert.Contains(t, stderr, "compile main.ves")
		assert.Contains(t, stderr, "loader.read")
		assert.Contains(t, stderr, "parser.parse")
		assert.Contains(t, stderr, "codegen.generate")
		assert.Contains(t, stderr, "output.write")
	})
}

func TestInitCmd(t *testing.T) {
	t.Run("CreatesDocument", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "paper")

		stdout, _, err := runCLI(t, "init", path)
		assert.NoError(t, err)

		assert.Equal(t, initTemplate, readFile(t, path+".ves"))
		assert.Contains(t, stdout, "Created")
	})

	t.Run("TemplateCompiles", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "main.ves")
		_, _, err := runCLI(t, "init", path)
		assert.NoError(t, err)

		_, _, err = runCLI(t, "run", "--no-banner", path)
		assert.NoError(t, err)
		assert.Contains(t, readFile(t, strings.TrimSuffix(path, ".ves")+".tex"), "Hello, World!")
	})

	t.Run("DefaultName", func(t *testing.T) {
		withTerminal(t, false)
		dir := t.TempDir()
		t.Chdir(dir)

		_, _, err := runCLI(t, "init")
		assert.NoError(t, err)
		assert.Equal(t, initTemplate, readFile(t, filepath.Join(dir, "main.ves")))
	})

	t.Run("RefusesOverwriteWithoutTerminal", func(t *testing.T) {
		withTerminal(t, false)
		path := writeSource(t, t.TempDir(), "main.ves", "keep me")

		_, stderr, err := runCLI(t, "init", path)
		assertExitCode(t, err, 1)
		assert.Contains(t, stderr, "already exists")
		assert.Equal(t, "keep me", readFile(t, path))
	})

	t.Run("Force", func(t *testing.T) {
		withTerminal(t, false)
		path := writeSource(t, t.TempDir(), "main.ves", "replace me")

		_, _, err := runCLI(t, "init", "--force", path)
		assert.NoError(t, err)
		assert.Equal(t, initTemplate, readFile(t, path))
	})
}

func TestCheckCmd(t *testing.T) {
	t.Run("Passes", func(t *testing.T) {
		src := writeSource(t, t.TempDir(), "main.ves", minimalSource)

		stdout, _, err := runCLI(t, "check", src)
		assert.NoError(t, err)
		assert.Contains(t, stdout, "Check passed")
	})

	t.Run("Stdin", func(t *testing.T) {
		withStdin(t, minimalSource)

		stdout, _, err := runCLI(t, "check", "-")
		assert.NoError(t, err)
		assert.Contains(t, stdout, "Check passed")
	})

	t.Run("ImplicitStdin", func(t *testing.T) {
		withStdin(t, "startdoc\nbegenv center\n")

		_, stderr, err := runCLI(t, "check")
		assertExitCode(t, err, 1)
		assert.Contains(t, stderr, "<stdin>:2:1")
		assert.Contains(t, stderr, "begenv center")
	})

	t.Run("WritesNothing", func(t *testing.T) {
		dir := t.TempDir()
		src := writeSource(t, dir, "main.ves", minimalSource)

		_, _, err := runCLI(t, "check", src)
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(dir, "main.tex"))
		assert.True(t, stdErrors.Is(err, os.ErrNotExist))
	})
}

func TestDoctorCmd(t *testing.T) {
	t.Run("Lex", func(t *testing.T) {
		withStdin(t, "docclass article\n")

		stdout, _, err := runCLI(t, "doctor", "lex", "-")
		assert.NoError(t, err)

		want := "docclass   1:1    \"docclass\"\n" +
			"SPACE      1:9    \" \"\n" +
			"TEXT       1:10    \"article\"\n" +
			"NEWLINE    1:17    \"\\n\"\n"
		assert.Equal(t, want, stdout)
	})

	t.Run("LexMath", func(t *testing.T) {
		withStdin(t, "$")

		stdout, _, err := runCLI(t, "doctor", "lex", "--math", "-")
		assert.NoError(t, err)
		assert.Contains(t, stdout, "TEXT_MATH_END")
	})

	t.Run("AST", func(t *testing.T) {
		withStdin(t, "docclass article\n")

		stdout, _, err := runCLI(t, "doctor", "ast", "-")
		assert.NoError(t, err)
		assert.Contains(t, stdout, "DocumentClass")
		assert.Contains(t, stdout, `"article"`)
	})

	t.Run("ASTError", func(t *testing.T) {
		withStdin(t, "startdoc\n}")

		_, stderr, err := runCLI(t, "doctor", "ast", "-")
		assertExitCode(t, err, 1)
		assert.Contains(t, stderr, "E0107")
	})
}
