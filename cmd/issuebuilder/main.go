package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/issuebuilder/cmd/issuebuilder/commands"
	"git.home.luguber.info/inful/issuebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/issuebuilder/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("issuebuilder"),
		kong.Description("Static site generator for comic and periodical archives."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	if err := parser.Run(&commands.Global{}, cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
