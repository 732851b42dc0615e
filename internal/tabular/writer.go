package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/desertthunder/mannschaft/internal/models"
	"github.com/desertthunder/mannschaft/internal/shared"
)

// BirthDateLayout is used for birth dates in exported player rows.
const BirthDateLayout = "02.01.2006"

// Template file names created by [CreateTemplates].
const (
	TeamsFile   = "Mannschaften.csv"
	PlayersFile = "Spieler.csv"
)

// WriteTeams writes a header and one line per row.
func WriteTeams(w io.Writer, sep rune, rows []TeamRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.values())
	}
	return writeTable(w, sep, TeamColumns, records)
}

// WritePlayers writes a header in the column names of schema and one line per row.
func WritePlayers(w io.Writer, sep rune, schema PlayerSchema, rows []PlayerRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.values())
	}
	return writeTable(w, sep, schema.Columns(), records)
}

func writeTable(w io.Writer, sep rune, header []string, records [][]string) error {
	writer := csv.NewWriter(w)
	writer.Comma = sep

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}
	return nil
}

// TeamRowsFrom converts team metadata back into team rows.
func TeamRowsFrom(teams []*models.Team) []TeamRow {
	rows := make([]TeamRow, 0, len(teams))
	for i, t := range teams {
		m := t.Metadata
		rows = append(rows, TeamRow{
			Index:        i,
			Club:         m.ClubName,
			Team:         teamName(t),
			District:     m.District,
			League:       m.League,
			LeagueClass:  m.LeagueClass,
			Captain:      m.Captain,
			Supervisor:   m.Supervisor,
			ClubNumber:   m.ClubNumber,
			LeagueNumber: m.LeagueNumber,
			ClubShort:    m.ClubShortName,
		})
	}
	return rows
}

// PlayerRowsFrom converts the real players of teams into player rows. Placeholders are skipped.
func PlayerRowsFrom(teams []*models.Team) []PlayerRow {
	var rows []PlayerRow
	for _, t := range teams {
		for _, p := range t.Players() {
			if p.IsPlaceholder() {
				continue
			}

			var birth string
			if p.HasBirthDate() {
				birth = p.BirthDate().Format(BirthDateLayout)
			}

			rows = append(rows, PlayerRow{
				Index:       len(rows),
				GivenName:   p.GivenName(),
				Surname:     p.Surname(),
				BirthDate:   birth,
				AgeClass:    p.AgeClass(),
				License:     p.License(),
				Club:        p.Club(),
				Team:        teamName(t),
				DisplayClub: p.DisplayClubOverride(),
			})
		}
	}
	return rows
}

func teamName(t *models.Team) string {
	if t.Metadata.Name != "" {
		return t.Metadata.Name
	}
	return t.FileID
}

// CreateTemplates writes header-only team and player files into dir.
//
// Without force, an existing template fails with [shared.ErrFileExists] and nothing is written.
func CreateTemplates(dir string, sep rune, force bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	teamsPath := filepath.Join(dir, TeamsFile)
	playersPath := filepath.Join(dir, PlayersFile)

	if !force {
		var existing []error
		for _, path := range []string{teamsPath, playersPath} {
			if _, err := os.Stat(path); err == nil {
				existing = append(existing, fmt.Errorf("%w: %s", shared.ErrFileExists, path))
			}
		}
		if len(existing) > 0 {
			return nil, errors.Join(existing...)
		}
	}

	if err := writeTemplate(teamsPath, sep, TeamColumns); err != nil {
		return nil, err
	}
	if err := writeTemplate(playersPath, sep, PlayerSchema{}.Columns()); err != nil {
		return nil, err
	}
	return []string{teamsPath, playersPath}, nil
}

func writeTemplate(path string, sep rune, header []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := writeTable(f, sep, header, nil); err != nil {
		return err
	}
	return f.Close()
}
