package main

import (
	"context"
	"time"

	"github.com/desertthunder/mannschaft/internal/ui"
	"github.com/urfave/cli/v3"
)

// FolderList prints the team files of a folder.
func (r *Runner) FolderList(ctx context.Context, cmd *cli.Command) error {
	dir, err := firstArg(cmd, "team folder")
	if err != nil {
		return err
	}

	folder, err := r.engine.Reader().ReadFolder(dir)
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", ui.RenderFolder(folder))
}

// FolderCorrect rewrites every team file of a folder into the output directory.
func (r *Runner) FolderCorrect(ctx context.Context, cmd *cli.Command) error {
	dir, err := firstArg(cmd, "team folder")
	if err != nil {
		return err
	}

	r.logger.Info("correcting team files", "dir", dir, "out", r.config.Output.Dir)
	if cmd.Bool("json") {
		report, err := r.engine.Correct(ctx, nil, dir)
		if err != nil {
			return err
		}
		return r.writeJSON(report, cmd.Bool("pretty"))
	}

	progressCh, wait := r.progress()
	report, err := r.engine.Correct(ctx, progressCh, dir)
	wait()
	if err != nil {
		return err
	}
	return r.writePlainln("%s", ui.RenderReport(report))
}

// FolderExport converts a folder of team files back into CSV tables.
func (r *Runner) FolderExport(ctx context.Context, cmd *cli.Command) error {
	dir, err := firstArg(cmd, "team folder")
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		result, err := r.engine.ExportAll(ctx, nil, dir, time.Now())
		if err != nil {
			return err
		}
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	progressCh, wait := r.progress()
	result, err := r.engine.ExportAll(ctx, progressCh, dir, time.Now())
	wait()
	if err != nil {
		return err
	}
	return r.writePlainln("%s", ui.RenderExport(result))
}
