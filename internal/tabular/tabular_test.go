package tabular

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/mannschaft/internal/models"
	"github.com/desertthunder/mannschaft/internal/shared"
	th "github.com/desertthunder/mannschaft/internal/testing"
)

func TestReadTeams(t *testing.T) {
	t.Run("fixture", func(t *testing.T) {
		rows, rowErrs, err := ReadTeams(strings.NewReader(th.TeamsCSV), ';')
		if err != nil {
			t.Fatalf("ReadTeams failed: %v", err)
		}
		if len(rowErrs) != 0 {
			t.Errorf("expected no row errors, got %v", rowErrs)
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}

		r := rows[1]
		if r.Index != 1 || r.Club != "SV Example" || r.Team != "U18m" || r.ClubShort != "SVE" || r.Location != "Examplestadt" {
			t.Errorf("unexpected row: %+v", r)
		}
	})

	t.Run("BOM and short rows", func(t *testing.T) {
		input := "\ufeffVerein;Mannschaft;Liga\nSV A;1\n"
		rows, _, err := ReadTeams(strings.NewReader(input), ';')
		if err != nil {
			t.Fatalf("ReadTeams failed: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("expected 1 row, got %d", len(rows))
		}
		if rows[0].Club != "SV A" || rows[0].Team != "1" || rows[0].League != "" {
			t.Errorf("unexpected row: %+v", rows[0])
		}
	})

	t.Run("values are kept verbatim", func(t *testing.T) {
		rows, _, err := ReadTeams(strings.NewReader("Verein;Mannschaft\n SV A ;1\n"), ';')
		if err != nil {
			t.Fatalf("ReadTeams failed: %v", err)
		}
		if rows[0].Club != " SV A " {
			t.Errorf("expected untrimmed club, got %q", rows[0].Club)
		}
	})

	t.Run("over-long rows are quarantined", func(t *testing.T) {
		input := "Verein;Mannschaft\nSV A;1\nSV B;2;extra\nSV C;3\n"
		rows, rowErrs, err := ReadTeams(strings.NewReader(input), ';')
		if err != nil {
			t.Fatalf("ReadTeams failed: %v", err)
		}
		if len(rows) != 2 {
			t.Errorf("expected 2 rows, got %d", len(rows))
		}
		if len(rowErrs) != 1 {
			t.Fatalf("expected 1 row error, got %d", len(rowErrs))
		}
		if rowErrs[0].Index != 1 || rowErrs[0].Line != 3 {
			t.Errorf("unexpected row error: %+v", rowErrs[0])
		}
		if rows[1].Index != 2 {
			t.Errorf("expected source index 2 for SV C, got %d", rows[1].Index)
		}
	})

	t.Run("schema errors", func(t *testing.T) {
		tests := []struct {
			name  string
			input string
		}{
			{"empty", ""},
			{"missing team column", "Verein;Liga\nSV A;X\n"},
			{"wrong separator", "Verein,Mannschaft\nSV A,1\n"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, _, err := ReadTeams(strings.NewReader(tt.input), ';')
				if !errors.Is(err, shared.ErrSchema) {
					t.Errorf("expected ErrSchema, got %v", err)
				}
			})
		}
	})
}

func TestReadPlayers(t *testing.T) {
	t.Run("canonical schema", func(t *testing.T) {
		rows, _, err := ReadPlayers(strings.NewReader(th.PlayersCSV), ';', PlayerSchema{})
		if err != nil {
			t.Fatalf("ReadPlayers failed: %v", err)
		}
		if len(rows) != 5 {
			t.Fatalf("expected 5 rows, got %d", len(rows))
		}
		if rows[1].Surname != "Alt" || rows[1].DisplayClub != "TSV Nachbar" {
			t.Errorf("unexpected row: %+v", rows[1])
		}
	})

	t.Run("legacy schema requires the flag", func(t *testing.T) {
		input := "Vorname;Nachname;Geburtsdatum;Verein;Mannschaft;Verein_angezeigt\nAnna;Schmidt;;SV A;1;TSV B\n"

		if _, _, err := ReadPlayers(strings.NewReader(input), ';', PlayerSchema{}); !errors.Is(err, shared.ErrSchema) {
			t.Errorf("expected ErrSchema without legacy flag, got %v", err)
		}

		rows, _, err := ReadPlayers(strings.NewReader(input), ';', PlayerSchema{Legacy: true})
		if err != nil {
			t.Fatalf("ReadPlayers failed: %v", err)
		}
		if rows[0].Surname != "Schmidt" || rows[0].DisplayClub != "TSV B" {
			t.Errorf("unexpected row: %+v", rows[0])
		}
	})
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	teams, players := th.WriteFixtures(t, dir)

	if _, _, err := ReadTeamsFile(teams, ';'); err != nil {
		t.Errorf("ReadTeamsFile failed: %v", err)
	}
	if _, _, err := ReadPlayersFile(players, ';', PlayerSchema{}); err != nil {
		t.Errorf("ReadPlayersFile failed: %v", err)
	}

	_, _, err := ReadTeamsFile(filepath.Join(dir, "missing.csv"), ';')
	if !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestWrite(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		rows, _, err := ReadPlayers(strings.NewReader(th.PlayersCSV), ';', PlayerSchema{})
		if err != nil {
			t.Fatalf("ReadPlayers failed: %v", err)
		}

		var buf bytes.Buffer
		if err := WritePlayers(&buf, ';', PlayerSchema{}, rows); err != nil {
			t.Fatalf("WritePlayers failed: %v", err)
		}
		if buf.String() != th.PlayersCSV {
			t.Errorf("round trip mismatch:\n%s", buf.String())
		}
	})

	t.Run("write errors", func(t *testing.T) {
		if err := WriteTeams(&th.FWriter{}, ';', []TeamRow{{Club: "SV A"}}); err == nil {
			t.Error("expected error from failing writer")
		}
	})

	t.Run("rows from teams", func(t *testing.T) {
		meta := models.NewTeamMetadata(models.TeamMetadata{Name: "SV A 1", League: "Liga", ClubName: "SV A", ClubShortName: "SVA"})
		team := models.NewTeam("SV A 1", meta, []*models.Player{
			models.NewPlayer(models.PlayerFields{
				Surname:   "Schmidt",
				GivenName: "Anna",
				BirthDate: time.Date(1999, 6, 1, 0, 0, 0, 0, time.UTC),
				Club:      "SV A",
			}),
			models.NewPlayer(models.PlayerFields{Surname: "Alt", GivenName: "Bernd"}),
			models.NewPlaceholder(1),
		})

		teamRows := TeamRowsFrom([]*models.Team{team})
		if len(teamRows) != 1 || teamRows[0].Team != "SV A 1" || teamRows[0].ClubShort != "SVA" {
			t.Errorf("unexpected team rows: %+v", teamRows)
		}

		playerRows := PlayerRowsFrom([]*models.Team{team})
		if len(playerRows) != 2 {
			t.Fatalf("expected placeholders to be skipped, got %d rows", len(playerRows))
		}
		if playerRows[0].BirthDate != "01.06.1999" {
			t.Errorf("expected 01.06.1999, got %q", playerRows[0].BirthDate)
		}
		if playerRows[1].BirthDate != "" || playerRows[1].Index != 1 {
			t.Errorf("unexpected row: %+v", playerRows[1])
		}
	})
}

func TestCreateTemplates(t *testing.T) {
	dir := t.TempDir()

	paths, err := CreateTemplates(dir, ';', false)
	if err != nil {
		t.Fatalf("CreateTemplates failed: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 paths, got %v", paths)
	}

	content := th.MustReadFile(t, filepath.Join(dir, TeamsFile))
	if content != strings.Join(TeamColumns, ";")+"\n" {
		t.Errorf("unexpected team template: %q", content)
	}
	th.AssertFileExists(t, filepath.Join(dir, PlayersFile))

	if _, err := CreateTemplates(dir, ';', false); !errors.Is(err, shared.ErrFileExists) {
		t.Errorf("expected ErrFileExists, got %v", err)
	}
	if _, err := CreateTemplates(dir, ';', true); err != nil {
		t.Errorf("CreateTemplates with force failed: %v", err)
	}
}
