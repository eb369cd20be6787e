package cli

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/shieldai/inventory/export"
)

type ExportCmd struct {
	File   string `help:"Batch report filename." arg:"" type:"existingfile"`
	Format string `help:"Output format." enum:"json,markdown,sqlite" default:"json"`
	Output string `help:"Output path (defaults to stdout; required for sqlite)." short:"o" type:"path"`
	Force  bool   `help:"Overwrite the output file without asking." short:"f"`
}

func (cmd *ExportCmd) Run(ctx *kong.Context, globals *Globals) error {
	result, reportTelemetry, err := parseReport(ctx, globals, cmd.File)
	if err != nil {
		return err
	}
	defer reportTelemetry()

	if cmd.Output != "" && !cmd.Force {
		if _, err := os.Stat(cmd.Output); err == nil {
			overwrite, err := promptYesNo(fmt.Sprintf("Overwrite %s?", cmd.Output))
			if err != nil {
				return err
			}
			if !overwrite {
				printInfof(ctx.Stdout, "export cancelled")
				return nil
			}
		}
	}

	switch cmd.Format {
	case "sqlite":
		if cmd.Output == "" {
			return fmt.Errorf("sqlite export requires --output")
		}
		if err := export.SQLite(cmd.Output, result); err != nil {
			return err
		}

	default:
		w := ctx.Stdout
		if cmd.Output != "" {
			f, err := os.Create(cmd.Output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", cmd.Output, err)
			}
			defer f.Close()
			w = f
		}
		if cmd.Format == "markdown" {
			err = export.Markdown(w, result)
		} else {
			err = export.JSON(w, result)
		}
		if err != nil {
			return err
		}
	}

	if cmd.Output != "" {
		printSuccess(ctx.Stdout, fmt.Sprintf("Exported %s to %s",
			pathStyle.Render(cmd.File), pathStyle.Render(cmd.Output)))
	}
	return nil
}
