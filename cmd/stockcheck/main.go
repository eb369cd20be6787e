package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/shieldai/inventory/cli"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was
	// built against. It's set via ldflags when building.
	CommitSHA = ""
)

var root struct {
	Version kong.VersionFlag `help:"Show version information"`
	cli.Commands
}

func main() {
	ctx := kong.Parse(&root,
		kong.Vars{
			"version": buildVersion(),
		},
		kong.Name("stockcheck"),
		kong.Description("Reconstructs and audits per-batch stock ledgers from 1C warehouse reports."),
		kong.UsageOnError(),
		kong.Bind(&root.Globals),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func buildVersion() string {
	if Version == "" {
		return "devel"
	}
	version := Version
	if CommitSHA != "" {
		version += fmt.Sprintf(" (%s)", CommitSHA)
	}
	return version
}
