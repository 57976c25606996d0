package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/issuebuilder/internal/config"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition and global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"issuebuilder.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Build the static site"`
	Scan    ScanCmd    `cmd:"" help:"List issues, page counts and titles without writing anything"`
	Init    InitCmd    `cmd:"" help:"Write an example configuration and the default theme"`
	Preview PreviewCmd `cmd:"" help:"Build, serve and rebuild the site on changes"`
}

// AfterApply runs after flag parsing and installs a bootstrap logger until
// the configuration is loaded.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// loadConfig reads the configuration named by --config and switches the
// default logger to the configured level and format.
func loadConfig(root *CLI) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(root.Config)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(cfg.Logging.NewLogger(os.Stderr, root.Verbose))
	return cfg, nil
}
