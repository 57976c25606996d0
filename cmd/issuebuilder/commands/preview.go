package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/issuebuilder/internal/logfields"
	"git.home.luguber.info/inful/issuebuilder/internal/preview"
	"git.home.luguber.info/inful/issuebuilder/internal/workspace"
)

// PreviewCmd implements the 'preview' command.
type PreviewCmd struct {
	Port   int    `name:"port" help:"HTTP port (overrides preview.port)"`
	Output string `short:"o" name:"output" help:"Output directory (defaults to a temporary directory)"`
}

func (p *PreviewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	port := cfg.Preview.Port
	if p.Port != 0 {
		port = p.Port
	}
	rescan, err := cfg.Preview.Rescan()
	if err != nil {
		return err
	}

	ws := workspace.NewManager("")
	if p.Output != "" {
		ws = workspace.NewPersistentManager(p.Output)
	}
	if err := ws.Create(); err != nil {
		return err
	}
	defer func() {
		if err := ws.Cleanup(); err != nil {
			slog.Warn("Failed to cleanup workspace", logfields.Error(err))
		}
	}()
	fmt.Println("Preview output directory:", ws.GetPath())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return preview.NewServer(cfg, preview.Options{
		Port:   port,
		Output: ws.GetPath(),
		Rescan: rescan,
	}).Run(ctx)
}
