package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mannschaft/internal/shared"
	"github.com/desertthunder/mannschaft/internal/ui"
	"github.com/urfave/cli/v3"
)

const browseLogPath = "./tmp/mannschaft-tui.log"

// Browse launches the interactive team folder browser.
func (r *Runner) Browse(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.Args().First()
	if dir == "" {
		dir = r.config.Output.Dir
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(browseLogPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, r.config.Log.Level)
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, dir, r.engine)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
