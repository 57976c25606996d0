package commands

import (
	"fmt"

	"git.home.luguber.info/inful/issuebuilder/internal/config"
	"git.home.luguber.info/inful/issuebuilder/internal/templates"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force       bool   `help:"Overwrite existing configuration and theme files"`
	NoTemplates bool   `name:"no-templates" help:"Only write the configuration file"`
	Templates   string `name:"templates" help:"Directory for the theme files" default:"templates"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	fmt.Printf("Writing configuration to %s\n", root.Config)
	if err := config.Init(root.Config, i.Force); err != nil {
		return err
	}
	if i.NoTemplates {
		return nil
	}

	written, err := templates.Scaffold(i.Templates, i.Force)
	if err != nil {
		return err
	}
	for _, f := range written {
		fmt.Printf("Wrote %s\n", f)
	}
	return nil
}
