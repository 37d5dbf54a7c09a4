package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/vesti/loader"
	"github.com/robinvdvleuten/vesti/telemetry"
)

type CheckCmd struct {
	File        FileOrStdin `help:"Vesti input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	ErrorFormat string      `help:"Error output format." enum:"text,json" default:"text"`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx, reportTelemetry := globals.startTelemetry(context.Background(), ctx.Stderr)
	defer reportTelemetry()

	checkTimer := telemetry.FromContext(runCtx).Start(fmt.Sprintf("check %s", cmd.File.DisplayName()))
	runCtx = telemetry.WithRootTimer(runCtx, checkTimer)

	doc, err := cmd.File.LoadDocument(runCtx, loader.New())
	checkTimer.End()
	if err != nil {
		var source []byte
		if doc != nil {
			source = doc.Source
		}
		reportError(ctx.Stderr, cmd.ErrorFormat, source, err)
		return NewCommandError(1)
	}

	printSuccess(ctx.Stdout, "Check passed")

	return nil
}
