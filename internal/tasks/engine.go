package tasks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/mannschaft/internal/dates"
	"github.com/desertthunder/mannschaft/internal/formatter"
	"github.com/desertthunder/mannschaft/internal/models"
	"github.com/desertthunder/mannschaft/internal/shared"
	"github.com/desertthunder/mannschaft/internal/tabular"
)

// Manifest file names written next to the output.
const (
	ImportManifest  = "import_manifest.json"
	CorrectManifest = "correct_manifest.json"
)

// ExportTimeLayout is the timestamp suffix of [Engine.ExportAll] files.
const ExportTimeLayout = "2006-01-02-15-04"

// DefaultTeamSize is used by [Engine.NewTeam] when no valid size is given.
const DefaultTeamSize = 10

// Engine runs the import, correction and export workflows for one configuration.
type Engine struct {
	cfg        *shared.Config
	logger     *log.Logger
	normalizer *dates.Normalizer
	now        func() time.Time
}

// NewEngine creates an [Engine]. A nil config selects [shared.DefaultConfig];
// a nil logger discards output.
func NewEngine(cfg *shared.Config, logger *log.Logger) *Engine {
	if cfg == nil {
		cfg = shared.DefaultConfig()
	}
	if logger == nil {
		logger = shared.DiscardLogger()
	}
	return &Engine{
		cfg:        cfg,
		logger:     logger,
		normalizer: dates.NewNormalizer(nil),
		now:        time.Now,
	}
}

// Config returns the engine configuration.
func (e *Engine) Config() *shared.Config { return e.cfg }

// Reader returns a team file reader using the configured charset.
func (e *Engine) Reader() *formatter.Reader {
	return &formatter.Reader{
		Charset:    e.cfg.Output.ReadEncoding,
		Normalizer: e.normalizer,
		Logger:     e.logger,
	}
}

// Writer returns a team file writer for dir, or the configured output directory when dir is empty.
func (e *Engine) Writer(dir string) (*formatter.Writer, error) {
	opts, err := formatter.EncodeOptionsFrom(e.cfg.Output)
	if err != nil {
		return nil, err
	}
	return formatter.NewWriter(e.outputDir(dir), opts, e.logger), nil
}

func (e *Engine) outputDir(dir string) string {
	if dir == "" {
		return e.cfg.Output.Dir
	}
	return dir
}

func (e *Engine) separator() rune {
	return []rune(e.cfg.Import.Separator)[0]
}

func (e *Engine) schema() tabular.PlayerSchema {
	return tabular.PlayerSchema{Legacy: e.cfg.Import.LegacyPlayerColumns}
}

// ImportOpts overrides the configured paths of [Engine.Import].
type ImportOpts struct {
	TeamsCSV   string
	PlayersCSV string
	OutputDir  string
	DryRun     bool // reconcile and report without writing files
}

// Import reads the team and player tables, reconciles them and writes one team
// file per team plus an import manifest.
//
// Teams that end up with the same file name are written in order, so the last one wins.
func (e *Engine) Import(ctx context.Context, progress chan<- ProgressUpdate, opts ImportOpts) (*BatchReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := newReport("import", e.now())
	teamsPath := firstNonEmpty(opts.TeamsCSV, e.cfg.Import.TeamsCSV)
	playersPath := firstNonEmpty(opts.PlayersCSV, e.cfg.Import.PlayersCSV)

	params, err := ParamsFrom(e.cfg.Import)
	if err != nil {
		return nil, err
	}

	sendProgress(progress, readInputUpdate(teamsPath))
	teams, teamErrs, err := tabular.ReadTeamsFile(teamsPath, e.separator())
	if err != nil {
		return nil, err
	}
	for _, rowErr := range teamErrs {
		e.logger.Warn("team row quarantined", "file", teamsPath, "line", rowErr.Line, "reason", rowErr.Reason)
	}

	sendProgress(progress, readInputUpdate(playersPath))
	players, playerErrs, err := tabular.ReadPlayersFile(playersPath, e.separator(), e.schema())
	if err != nil {
		return nil, err
	}

	sendProgress(progress, reconcileUpdate(len(players), len(teams)))
	result := e.Reconcile(players, teams, params)
	report.Rows = result.Rows
	for _, rowErr := range playerErrs {
		e.logger.Warn("player row quarantined", "file", playersPath, "line", rowErr.Line, "reason", rowErr.Reason)
		report.Rows = append(report.Rows, RowOutcome{Index: rowErr.Index, Status: StatusMalformed, Reason: rowErr.Error()})
	}

	if opts.DryRun {
		return report, nil
	}

	w, err := e.Writer(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := e.writeTeams(ctx, progress, w, result.Teams(), report); err != nil {
		return report, err
	}

	if err := formatter.WriteManifest(report, filepath.Join(w.Dir, ImportManifest)); err != nil {
		return report, err
	}
	return report, nil
}

func (e *Engine) writeTeams(ctx context.Context, progress chan<- ProgressUpdate, w *formatter.Writer, teams []*models.Team, report *BatchReport) error {
	written := make(map[string]string, len(teams))
	for i, team := range teams {
		if err := ctx.Err(); err != nil {
			return err
		}

		file := formatter.FileName(team.FileID)
		if previous, ok := written[file]; ok {
			e.logger.Warn("duplicate team file in batch, last write wins", "file", file, "previous", previous, "team", team.FileID)
		}

		path, err := w.WriteTeam(team.FileID, team)
		if errors.Is(err, shared.ErrInvalidRecord) {
			e.logger.Warn("skipping team with invalid player", "team", team.FileID, "err", err)
			sendProgress(progress, writeFailedUpdate(i+1, len(teams), team.FileID, err))
			report.SkippedFiles = append(report.SkippedFiles, formatter.SkippedFile{Path: file, Reason: err.Error()})
			continue
		}
		if err != nil {
			sendProgress(progress, writeFailedUpdate(i+1, len(teams), team.FileID, err))
			return err
		}
		written[file] = team.FileID

		sendProgress(progress, writeFileUpdate(i+1, len(teams), path))
		report.Files = append(report.Files, path)
	}
	return nil
}

// Rewrite reads one team file and writes it normalized into the output
// directory. A non-empty newName renames the team.
func (e *Engine) Rewrite(ctx context.Context, src, newName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	team, err := e.Reader().ReadTeamFile(src)
	if err != nil {
		return "", err
	}
	if newName != "" {
		team.Rename(formatter.SanitizeName(newName))
	}

	w, err := e.Writer("")
	if err != nil {
		return "", err
	}
	return w.WriteTeam(team.FileID, team)
}

// Correct reads every team file in dir and writes it back sorted, sanitized
// and re-encoded into the output directory. Unreadable files and teams with a
// nameless player are reported and skipped.
func (e *Engine) Correct(ctx context.Context, progress chan<- ProgressUpdate, dir string) (*BatchReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := newReport("correct", e.now())
	folder, err := e.Reader().ReadFolder(dir)
	if err != nil {
		return nil, err
	}
	report.SkippedFiles = folder.Skipped
	sendProgress(progress, readFolderUpdate(dir, len(folder.Teams), len(folder.Skipped)))

	w, err := e.Writer("")
	if err != nil {
		return nil, err
	}
	if err := e.writeTeams(ctx, progress, w, folder.Teams, report); err != nil {
		return report, err
	}

	if err := formatter.WriteManifest(report, filepath.Join(w.Dir, CorrectManifest)); err != nil {
		return report, err
	}
	return report, nil
}

// ExportTeam writes the real players of one team file as "<id>.csv" into the output directory.
func (e *Engine) ExportTeam(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	team, err := e.Reader().ReadTeamFile(path)
	if err != nil {
		return "", err
	}

	rows := tabular.PlayerRowsFrom([]*models.Team{team})
	out := filepath.Join(e.cfg.Output.Dir, team.FileID+".csv")
	if err := e.writeCSV(out, func(w io.Writer) error {
		return tabular.WritePlayers(w, e.separator(), e.schema(), rows)
	}); err != nil {
		return "", err
	}
	return out, nil
}

// ExportResult lists the files written by [Engine.ExportAll].
type ExportResult struct {
	PlayersFile  string
	TeamsFile    string
	Teams        int
	Players      int
	SkippedFiles []formatter.SkippedFile
}

// ExportAll converts every team file in dir back into one player table and
// one team table, named with the minute of now.
func (e *Engine) ExportAll(ctx context.Context, progress chan<- ProgressUpdate, dir string, now time.Time) (*ExportResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	folder, err := e.Reader().ReadFolder(dir)
	if err != nil {
		return nil, err
	}
	sendProgress(progress, readFolderUpdate(dir, len(folder.Teams), len(folder.Skipped)))

	stamp := now.Format(ExportTimeLayout)
	result := &ExportResult{
		PlayersFile:  filepath.Join(e.cfg.Output.Dir, "Spieler_"+stamp+".csv"),
		TeamsFile:    filepath.Join(e.cfg.Output.Dir, "Mannschaften_"+stamp+".csv"),
		Teams:        len(folder.Teams),
		SkippedFiles: folder.Skipped,
	}

	playerRows := tabular.PlayerRowsFrom(folder.Teams)
	result.Players = len(playerRows)
	if err := e.writeCSV(result.PlayersFile, func(w io.Writer) error {
		return tabular.WritePlayers(w, e.separator(), e.schema(), playerRows)
	}); err != nil {
		return nil, err
	}
	sendProgress(progress, exportRowsUpdate(result.PlayersFile, len(playerRows)))

	teamRows := tabular.TeamRowsFrom(folder.Teams)
	if err := e.writeCSV(result.TeamsFile, func(w io.Writer) error {
		return tabular.WriteTeams(w, e.separator(), teamRows)
	}); err != nil {
		return nil, err
	}
	sendProgress(progress, exportRowsUpdate(result.TeamsFile, len(teamRows)))

	return result, nil
}

// NewTeam writes a team file that only holds count placeholders. A count
// below one falls back to [DefaultTeamSize] with a warning.
func (e *Engine) NewTeam(ctx context.Context, meta models.TeamMetadata, count int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if count < 1 {
		e.logger.Warn("number of players must be greater than 0, using default", "count", count, "default", DefaultTeamSize)
		count = DefaultTeamSize
	}

	players := make([]*models.Player, 0, count)
	for i := 1; i <= count; i++ {
		players = append(players, models.NewPlaceholder(i))
	}

	meta.Name = formatter.SanitizeName(meta.Name)
	if meta.Name == "" {
		return "", fmt.Errorf("%w: team name", shared.ErrMissingArgument)
	}
	meta.DeclaredPlayers = count

	w, err := e.Writer("")
	if err != nil {
		return "", err
	}
	return w.WriteTeam(meta.Name, models.NewTeam(meta.Name, models.NewTeamMetadata(meta), players))
}

// writeCSV renders a table with write and stores it in the configured CSV charset.
func (e *Engine) writeCSV(path string, write func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}

	data, err := formatter.EncodeText(buf.String(), e.cfg.Output.CSVEncoding)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
