package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"git.home.luguber.info/inful/issuebuilder/internal/catalog"
)

// ScanCmd implements the 'scan' command.
type ScanCmd struct{}

func (s *ScanCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	issues, err := catalog.Scan(cfg.Paths.Issues, cfg.Images.OptimizedFormat.Extension())
	if err != nil {
		return err
	}
	return printIssues(os.Stdout, issues)
}

func printIssues(w io.Writer, issues []catalog.Issue) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ISSUE\tPAGES\tTITLE")
	pages := 0
	for _, is := range issues {
		pages += len(is.Pages)
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\n", is.ID, len(is.Pages), is.Title.Display)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d issues, %d pages\n", len(issues), pages)
	return err
}
