package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/mannschaft/internal/shared"
	"github.com/desertthunder/mannschaft/internal/tabular"
	"github.com/desertthunder/mannschaft/internal/tasks"
	"github.com/desertthunder/mannschaft/internal/ui"
	"github.com/urfave/cli/v3"
)

// Init writes header-only team and player tables.
func (r *Runner) Init(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.String("dir")
	paths, err := tabular.CreateTemplates(dir, r.separator(), cmd.Bool("force"))
	for _, path := range paths {
		r.writePlain("✓ created %s\n", path)
	}
	if err != nil {
		return fmt.Errorf("%w (use --force to overwrite)", err)
	}
	return nil
}

// Import reconciles the team and player tables and writes the team files.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	opts := tasks.ImportOpts{
		TeamsCSV:   cmd.String("teams"),
		PlayersCSV: cmd.String("players"),
		OutputDir:  cmd.String("out"),
		DryRun:     cmd.Bool("dry-run"),
	}
	asJSON := cmd.Bool("json")

	r.logger.Info("starting import", "teams", opts.TeamsCSV, "players", opts.PlayersCSV, "dry_run", opts.DryRun)

	var report *tasks.BatchReport
	var err error
	if asJSON {
		report, err = r.engine.Import(ctx, nil, opts)
	} else {
		progressCh, wait := r.progress()
		report, err = r.engine.Import(ctx, progressCh, opts)
		wait()
	}
	if err != nil {
		return err
	}

	if asJSON {
		return r.writeJSON(report, cmd.Bool("pretty"))
	}
	if opts.DryRun {
		r.writePlainHeader("Dry run: no files written")
	}
	return r.writePlainln("%s", ui.RenderReport(report))
}

// ConfigInit writes the default configuration file, or with --from-current
// the configuration loaded for this run.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if cmd.Bool("from-current") {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: config file at %s", shared.ErrFileExists, path)
		}
		if err := shared.SaveConfig(path, r.config); err != nil {
			return err
		}
	} else if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	r.logger.Info("wrote config", "path", path)
	return r.writePlain("✓ created %s\n", path)
}

func (r *Runner) separator() rune {
	if sep := []rune(r.config.Import.Separator); len(sep) > 0 {
		return sep[0]
	}
	return ';'
}
