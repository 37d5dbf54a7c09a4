package cli

import (
	stdErrors "errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/vesti/loader"
)

const initTemplate = `% This file is generated by vesti
docclass article

startdoc

Hello, World!
`

type InitCmd struct {
	Name  string `help:"Name of the new document; the .ves extension is added when missing." arg:"" optional:""`
	Force bool   `help:"Overwrite an existing document without asking."`
}

func (cmd *InitCmd) Run(ctx *kong.Context, globals *Globals) error {
	name := cmd.Name
	if name == "" {
		var err error
		if name, err = promptInput("Document name", "main"); err != nil {
			return err
		}
	}

	path := name
	if !strings.HasSuffix(path, loader.Extension) {
		path += loader.Extension
	}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if !cmd.Force {
			overwrite, err := promptYesNo(fmt.Sprintf("%s already exists. Overwrite it?", path))
			if err != nil {
				return err
			}
			if !overwrite {
				printError(ctx.Stderr, fmt.Sprintf("%s already exists", path))
				return NewCommandError(1)
			}
		}
	case !stdErrors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(initTemplate), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Created %s", pathStyle.Render(path)))
	printInfof(ctx.Stdout, "Compile it with: vesti run %s", path)

	return nil
}
