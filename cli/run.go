package cli

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"sync/atomic"
	"syscall"

	"github.com/alecthomas/kong"
	"golang.org/x/sync/errgroup"

	"github.com/robinvdvleuten/vesti/codegen"
	"github.com/robinvdvleuten/vesti/loader"
	"github.com/robinvdvleuten/vesti/output"
	"github.com/robinvdvleuten/vesti/watch"
)

type RunCmd struct {
	Files       []string `help:"Vesti input files." arg:""`
	Continuous  bool     `help:"Keep running and recompile files when they change." short:"c"`
	Engine      string   `help:"LaTeX engine named in the banner (latex, pdflatex, xelatex, lualatex)."`
	NoBanner    bool     `help:"Leave out the generated-file banner."`
	OutputDir   string   `help:"Directory for the generated .tex files." type:"path"`
	ErrorFormat string   `help:"Error output format." enum:"text,json" default:"text"`
}

func (cmd *RunCmd) Run(ctx *kong.Context, globals *Globals) error {
	cfg, err := globals.LoadConfig()
	if err != nil {
		return err
	}

	engine, err := cfg.EngineValue()
	if err != nil {
		return err
	}
	if cmd.Engine != "" {
		if engine, err = codegen.ParseEngine(cmd.Engine); err != nil {
			return err
		}
	}

	outputDir := cfg.OutputDir
	if cmd.OutputDir != "" {
		outputDir = cmd.OutputDir
	}

	c := &compiler{
		loader: loader.New(),
		generator: codegen.New(
			codegen.WithEngine(engine),
			codegen.WithBanner(cfg.BannerEnabled() && !cmd.NoBanner),
			codegen.WithVersion(buildVersion()),
		),
		outputDir:   outputDir,
		errorFormat: cmd.ErrorFormat,
		stdout:      ctx.Stdout,
		stderr:      ctx.Stderr,
		styles:      output.NewStyles(ctx.Stdout),
	}

	files := c.sources(cmd.Files)
	if len(files) == 0 {
		printError(ctx.Stderr, "no "+loader.Extension+" files to compile")
		return NewCommandError(1)
	}

	runCtx, reportTelemetry := globals.startTelemetry(context.Background(), ctx.Stderr)
	defer reportTelemetry()

	failed := c.compileAll(runCtx, files)

	if !cmd.Continuous {
		if failed > 0 {
			return NewCommandError(1)
		}
		return nil
	}

	debounce, err := cfg.Debounce()
	if err != nil {
		return err
	}

	watchCtx, stop := signal.NotifyContext(runCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(files, debounce, func(ctx context.Context, path string) {
		c.compile(ctx, path)
	})
	if err != nil {
		return err
	}

	printInfof(ctx.Stdout, "Watching %d file(s), press Ctrl+C to stop", len(files))
	w.Run(watchCtx)
	printInfof(ctx.Stdout, "bye!")

	return nil
}

// compileAll compiles files concurrently and returns how many failed.
func (c *compiler) compileAll(ctx context.Context, files []string) int {
	var failed atomic.Int32

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, file := range files {
		g.Go(func() error {
			if !c.compile(ctx, file) {
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	return int(failed.Load())
}

func buildVersion() string {
	if Version == "" {
		return "dev"
	}
	return Version
}
