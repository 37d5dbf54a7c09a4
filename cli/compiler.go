package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/robinvdvleuten/vesti/codegen"
	"github.com/robinvdvleuten/vesti/errors"
	"github.com/robinvdvleuten/vesti/loader"
	"github.com/robinvdvleuten/vesti/output"
	"github.com/robinvdvleuten/vesti/telemetry"
)

const (
	errorFormatText = "text"
	errorFormatJSON = "json"
)

// compiler turns one source file into one .tex file. It is shared by the
// goroutines of a run, so all output goes through mu.
type compiler struct {
	loader      *loader.Loader
	generator   *codegen.Generator
	outputDir   string
	errorFormat string

	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer
	styles *output.Styles
}

// sources keeps the inputs with the vesti extension and warns about the
// rest, since their output path may be the input itself.
func (c *compiler) sources(files []string) []string {
	warn := output.NewStyles(c.stderr)
	kept := make([]string, 0, len(files))
	for _, file := range files {
		if loader.IsSource(file) {
			kept = append(kept, file)
			continue
		}
		_, _ = fmt.Fprintf(c.stderr, "%s skipping %s: not a %s file\n", warn.Warning("warning:"), file, loader.Extension)
	}
	return kept
}

// compile reports whether path was compiled and written. Failures are
// printed before it returns.
func (c *compiler) compile(ctx context.Context, path string) bool {
	timer := telemetry.FromContext(ctx).Start(fmt.Sprintf("compile %s", filepath.Base(path)))
	defer timer.End()
	ctx = telemetry.WithRootTimer(ctx, timer)

	doc, err := c.loader.Load(ctx, path)
	if err != nil {
		var source []byte
		if doc != nil {
			source = doc.Source
		}
		c.report(source, err)
		return false
	}

	var buf bytes.Buffer
	if err := c.generator.Generate(ctx, doc.Latex, &buf); err != nil {
		c.report(nil, err)
		return false
	}

	out := loader.OutputPath(path, c.outputDir)
	if err := c.write(ctx, out, buf.Bytes()); err != nil {
		c.report(nil, err)
		return false
	}

	c.mu.Lock()
	printSuccess(c.stdout, fmt.Sprintf("%s %s (%s)",
		c.styles.Success("Wrote"), c.styles.FilePath(out), humanize.Bytes(uint64(buf.Len()))))
	c.mu.Unlock()
	return true
}

func (c *compiler) write(ctx context.Context, path string, data []byte) error {
	timer := telemetry.StartTimer(ctx, "output.write")
	defer timer.End()

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (c *compiler) report(source []byte, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	reportError(c.stderr, c.errorFormat, source, err)
}

// reportError prints err in the requested format. Text output ends with a
// one-line summary; JSON output is one object per line.
func reportError(w io.Writer, format string, source []byte, err error) {
	if format == errorFormatJSON {
		_, _ = fmt.Fprintln(w, errors.NewJSONFormatter().Format(err))
		return
	}

	if _, ok := errors.AsDiagnostic(err); !ok {
		printError(w, err.Error())
		return
	}

	_, _ = fmt.Fprintln(w, NewErrorRenderer(source, WithStyles(output.NewStyles(w))).Render(err))
	_, _ = fmt.Fprintln(w)
	printError(w, "parse error")
}
