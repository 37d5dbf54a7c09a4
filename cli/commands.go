package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/robinvdvleuten/vesti/config"
	"github.com/robinvdvleuten/vesti/output"
	"github.com/robinvdvleuten/vesti/telemetry"
)

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool   `help:"Show timing telemetry for operations."`
	Config    string `help:"Project file to use instead of vesti.toml or vesti.yaml in the working directory." type:"path"`
}

type Commands struct {
	Globals

	Run    RunCmd    `cmd:"" help:"Compile vesti files to LaTeX."`
	Init   InitCmd   `cmd:"" help:"Create a new vesti document."`
	Check  CheckCmd  `cmd:"" help:"Parse a vesti file and report errors without writing output."`
	Doctor DoctorCmd `cmd:"" help:"Doctor utilities for debugging vesti files."`
}

// LoadConfig reads the --config file, or looks for a project file in the
// working directory.
func (g *Globals) LoadConfig() (*config.Config, error) {
	if g.Config != "" {
		return config.Load(g.Config)
	}
	return config.Find(".")
}

// startTelemetry attaches a timing collector to ctx when --telemetry is
// set. The returned func writes the report and is safe to call more than
// once.
func (g *Globals) startTelemetry(ctx context.Context, w io.Writer) (context.Context, func()) {
	if !g.Telemetry {
		return ctx, func() {}
	}

	collector := telemetry.NewTimingCollector()
	ctx = telemetry.WithCollector(ctx, collector)

	reported := false
	return ctx, func() {
		if reported {
			return
		}
		reported = true
		_, _ = fmt.Fprintln(w)
		collector.Report(w, output.NewStyles(w))
	}
}
