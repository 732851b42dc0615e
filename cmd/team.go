package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/mannschaft/internal/models"
	"github.com/desertthunder/mannschaft/internal/shared"
	"github.com/desertthunder/mannschaft/internal/ui"
	"github.com/urfave/cli/v3"
)

// TeamNew writes a placeholder-only team file.
func (r *Runner) TeamNew(ctx context.Context, cmd *cli.Command) error {
	meta := models.TeamMetadata{
		Name:          cmd.String("name"),
		ClubName:      cmd.String("club"),
		ClubShortName: cmd.String("club-short"),
		League:        cmd.String("league"),
		LeagueClass:   cmd.String("class"),
		District:      cmd.String("district"),
		Captain:       cmd.String("captain"),
		Supervisor:    cmd.String("supervisor"),
		ClubNumber:    cmd.String("club-number"),
		LeagueNumber:  cmd.String("league-number"),
	}

	path, err := r.engine.NewTeam(ctx, meta, int(cmd.Int("players")))
	if err != nil {
		return err
	}
	return r.writePlain("✓ created %s\n", path)
}

// TeamRename rewrites a team file under a new name.
func (r *Runner) TeamRename(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 2 {
		return fmt.Errorf("%w: team file and new name", shared.ErrMissingArgument)
	}
	src, name := cmd.Args().Get(0), cmd.Args().Get(1)

	path, err := r.engine.Rewrite(ctx, src, name)
	if err != nil {
		return err
	}
	return r.writePlain("✓ %s → %s\n", src, path)
}

// TeamShow prints one team file.
func (r *Runner) TeamShow(ctx context.Context, cmd *cli.Command) error {
	path, err := firstArg(cmd, "team file")
	if err != nil {
		return err
	}

	team, err := r.engine.Reader().ReadTeamFile(path)
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", ui.RenderTeam(team))
}

// TeamExport writes the players of one team file as CSV.
func (r *Runner) TeamExport(ctx context.Context, cmd *cli.Command) error {
	path, err := firstArg(cmd, "team file")
	if err != nil {
		return err
	}

	out, err := r.engine.ExportTeam(ctx, path)
	if err != nil {
		return err
	}
	return r.writePlain("✓ exported %s\n", out)
}

func firstArg(cmd *cli.Command, what string) (string, error) {
	if cmd.Args().Len() < 1 {
		return "", fmt.Errorf("%w: %s", shared.ErrMissingArgument, what)
	}
	return cmd.Args().First(), nil
}
