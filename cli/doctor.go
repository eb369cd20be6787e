package cli

import (
	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"
)

type DoctorCmd struct {
	File string `help:"Batch report filename." arg:"" type:"existingfile"`
}

// Run dumps the reconstructed tree and all issues in Go syntax, for
// debugging reports that classify unexpectedly.
func (cmd *DoctorCmd) Run(ctx *kong.Context, globals *Globals) error {
	result, reportTelemetry, err := parseReport(ctx, globals, cmd.File)
	if err != nil {
		return err
	}
	defer reportTelemetry()

	repr.New(ctx.Stdout).Println(result)
	return nil
}
