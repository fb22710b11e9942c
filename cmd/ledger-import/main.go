package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/ledger-import/cli"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""

	commands struct {
		Version kong.VersionFlag `help:"Show version information"`
		cli.Commands
	}
)

func main() {
	vars := cli.Vars()
	vars["version"] = buildVersion()

	ctx := kong.Parse(&commands,
		vars,
		kong.Name("ledger-import"),
		kong.Description("Merge bank exports into a plain-text double-entry ledger."),
		kong.UsageOnError(),
		kong.Bind(&commands.Globals),
	)

	result := cli.ResultOf(ctx.Run())
	if result.Err != nil {
		fmt.Fprintf(os.Stderr, "ledger-import: error: %s\n", result.Err)
	}
	os.Exit(result.ExitCode)
}

func buildVersion() string {
	if Version == "" {
		Version = "dev"
	}
	if CommitSHA == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, CommitSHA)
}
