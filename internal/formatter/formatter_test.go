package formatter

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/mannschaft/internal/models"
	"github.com/desertthunder/mannschaft/internal/shared"
	th "github.com/desertthunder/mannschaft/internal/testing"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleTeam() *models.Team {
	meta := models.NewTeamMetadata(models.TeamMetadata{
		Name:            "SV Example 1. Mannschaft",
		LeagueClass:     "Herren",
		League:          "Landesliga",
		District:        "Nord",
		Captain:         "Max",
		Supervisor:      "Eva",
		ClubNumber:      "1234",
		LeagueNumber:    "LV-1",
		DeclaredPlayers: models.UnsetPlayerCount,
	})
	return models.NewTeam("SV Example 1. Mannschaft", meta, []*models.Player{
		models.NewPlayer(models.PlayerFields{
			Surname:   "Schmidt",
			GivenName: "Anna",
			BirthDate: date(1999, time.June, 1),
			License:   "P-100",
			Club:      "SV Example",
		}),
		models.NewPlaceholder(1),
		models.NewPlayer(models.PlayerFields{
			Surname:     "Alt",
			GivenName:   "Bernd",
			BirthDate:   date(2005, time.June, 1),
			Club:        "SV Example",
			DisplayClub: "TSV Nachbar",
		}),
	})
}

func lfOptions() EncodeOptions {
	opts := DefaultEncodeOptions()
	opts.LineEnding = "\n"
	opts.Charset = CharsetUTF8
	return opts
}

const sampleText = `[Allgemein]
Name=SV Example 1 Mannschaft
Spielklasse=Herren
Liga=Landesliga
Bezirk=Nord
Spielführer=Max
Betreuer 1=Eva
Vereins-Nr=1234
LV-Nr=LV-1
Anzahl Spieler=3
[Spieler 0]
Name=Alt
Vorname=Bernd
Letztes Spiel=
Platz-Ziffer=
Spielernr.=
Geb.-Jahr=06/2005
Altersklasse=
Pass-Nr.=
Rangliste=
Verein=TSV Nachbar
[Spieler 1]
Name=Schmidt
Vorname=Anna
Letztes Spiel=
Platz-Ziffer=
Spielernr.=
Geb.-Jahr=01/06/1999
Altersklasse=
Pass-Nr.=P-100
Rangliste=
Verein=SV Example
[Spieler 2]
Name=Name 1
Vorname=Vorname 1
Letztes Spiel=
Platz-Ziffer=
Spielernr.=
Geb.-Jahr=
Altersklasse=
Pass-Nr.=
Rangliste=
Verein=
`

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"SV Example 1. Mannschaft", "SV Example 1 Mannschaft"},
		{"  A:B/C?D<E>F|G\"H*I  ", "A_B_C_D_E_F_G_H_I"},
		{"Too   many\t spaces", "Too many spaces"},
		{"U18m SV Example", "U18m SV Example"},
		{"...", ""},
		{"SV . Example", "SV Example"},
		{"Nord .  Süd", "Nord Süd"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SanitizeName(tt.in); got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if got := SanitizeName(SanitizeName(tt.in)); got != tt.want {
				t.Errorf("SanitizeName is not idempotent for %q: %q", tt.in, got)
			}
		})
	}
}

func TestFormatBirthDate(t *testing.T) {
	tests := []struct {
		name   string
		date   time.Time
		layout string
		want   string
	}{
		{"recent", date(2005, time.June, 1), "", "06/2005"},
		{"old", date(1999, time.June, 1), "", "01/06/1999"},
		{"cutoff", date(2000, time.January, 1), "", "01/2000"},
		{"recent ignores layout", date(2010, time.March, 15), "02.01.2006", "03/2010"},
		{"custom layout", date(1980, time.March, 15), "02.01.2006", "15.03.1980"},
		{"missing", time.Time{}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatBirthDate(tt.date, tt.layout); got != tt.want {
				t.Errorf("FormatBirthDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeTeam(t *testing.T) {
	t.Run("layout", func(t *testing.T) {
		team := sampleTeam()
		data, err := EncodeTeam(team, lfOptions())
		if err != nil {
			t.Fatalf("EncodeTeam failed: %v", err)
		}
		if string(data) != sampleText {
			t.Errorf("unexpected output:\n%s", data)
		}

		if got := team.Players()[0].Surname(); got != "Schmidt" {
			t.Errorf("EncodeTeam reordered the team, first player is %s", got)
		}
	})

	t.Run("insertion order without sorting", func(t *testing.T) {
		opts := lfOptions()
		opts.Policy = models.OrderPolicy{}
		data, err := EncodeTeam(sampleTeam(), opts)
		if err != nil {
			t.Fatalf("EncodeTeam failed: %v", err)
		}
		lines := th.Lines(string(data))
		if lines[11] != "Name=Schmidt" || lines[22] != "Name=Name 1" {
			t.Errorf("expected stored order, got %q and %q", lines[11], lines[22])
		}
	})

	t.Run("CRLF and windows-1252", func(t *testing.T) {
		data, err := EncodeTeam(sampleTeam(), DefaultEncodeOptions())
		if err != nil {
			t.Fatalf("EncodeTeam failed: %v", err)
		}
		if !bytes.Contains(data, []byte("Spielf\xfchrer=Max\r\n")) {
			t.Errorf("expected windows-1252 ü and CRLF, got %q", data[:80])
		}
	})

	t.Run("invalid player", func(t *testing.T) {
		team := models.NewTeam("x", nil, []*models.Player{models.NewPlayer(models.PlayerFields{Surname: "Alt"})})
		_, err := EncodeTeam(team, lfOptions())
		if !errors.Is(err, shared.ErrInvalidRecord) {
			t.Errorf("expected ErrInvalidRecord, got %v", err)
		}
	})

	t.Run("options from config", func(t *testing.T) {
		cfg := shared.DefaultConfig().Output
		cfg.LineEnding = "lf"
		cfg.PlaceholderOrder = "insertion"

		opts, err := EncodeOptionsFrom(cfg)
		if err != nil {
			t.Fatalf("EncodeOptionsFrom failed: %v", err)
		}
		if opts.LineEnding != "\n" || opts.Policy.PlaceholderOrder != models.PlaceholdersInsertion || opts.Charset != CharsetWindows1252 {
			t.Errorf("unexpected options: %+v", opts)
		}

		cfg.Encoding = "ebcdic"
		if _, err := EncodeOptionsFrom(cfg); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestDecodeTeam(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for _, opts := range []EncodeOptions{lfOptions(), DefaultEncodeOptions()} {
			first, err := EncodeTeam(sampleTeam(), opts)
			if err != nil {
				t.Fatalf("EncodeTeam failed: %v", err)
			}

			team, err := DecodeTeam("SV Example 1 Mannschaft.ini", first, nil)
			if err != nil {
				t.Fatalf("DecodeTeam failed: %v", err)
			}

			second, err := EncodeTeam(team, opts)
			if err != nil {
				t.Fatalf("EncodeTeam failed: %v", err)
			}
			if !bytes.Equal(first, second) {
				t.Errorf("round trip mismatch (charset %s):\n%s\n---\n%s", opts.Charset, first, second)
			}
		}
	})

	t.Run("round trip with spaced period in name", func(t *testing.T) {
		team := sampleTeam()
		team.Rename("SV . Example")

		first, err := EncodeTeam(team, lfOptions())
		if err != nil {
			t.Fatalf("EncodeTeam failed: %v", err)
		}
		if !strings.Contains(string(first), "Name=SV Example\n") {
			t.Errorf("expected single-spaced name, got:\n%s", first)
		}

		decoded, err := DecodeTeam("SV Example.ini", first, nil)
		if err != nil {
			t.Fatalf("DecodeTeam failed: %v", err)
		}
		second, err := EncodeTeam(decoded, lfOptions())
		if err != nil {
			t.Fatalf("EncodeTeam failed: %v", err)
		}
		if !bytes.Equal(first, second) {
			t.Errorf("round trip mismatch:\n%s\n---\n%s", first, second)
		}
	})

	t.Run("line breaks inside values", func(t *testing.T) {
		team := models.NewTeam("Breaks", nil, []*models.Player{
			models.NewPlayer(models.PlayerFields{Surname: "Mül\nler", GivenName: "Ute", Club: "SV\r\nExample"}),
			models.NewPlayer(models.PlayerFields{Surname: "Zed", GivenName: "Bob"}),
		})

		data, err := EncodeTeam(team, lfOptions())
		if err != nil {
			t.Fatalf("EncodeTeam failed: %v", err)
		}
		if lines := th.Lines(string(data)); len(lines) != 10+2*11 {
			t.Fatalf("expected %d lines, got %d:\n%s", 10+2*11, len(lines), data)
		}

		decoded, err := DecodeTeam("Breaks.ini", data, nil)
		if err != nil {
			t.Fatalf("DecodeTeam failed: %v", err)
		}
		players := decoded.Players()
		if len(players) != 2 {
			t.Fatalf("expected 2 players, got %d", len(players))
		}
		if players[0].Surname() != "Mül ler" || players[0].Club() != "SV Example" {
			t.Errorf("unexpected first player %q club %q", players[0], players[0].Club())
		}
		if players[1].Surname() != "Zed" || players[1].GivenName() != "Bob" || !players[1].Valid() {
			t.Errorf("following player shifted: %q", players[1])
		}
	})

	t.Run("fields", func(t *testing.T) {
		team, err := DecodeTeam("dir/Some Team.ini", []byte(sampleText), nil)
		if err != nil {
			t.Fatalf("DecodeTeam failed: %v", err)
		}
		if team.FileID != "Some Team" {
			t.Errorf("expected file id from stem, got %q", team.FileID)
		}
		if team.Metadata.Name != "SV Example 1 Mannschaft" || team.Metadata.DeclaredPlayers != 3 {
			t.Errorf("unexpected metadata: %+v", team.Metadata)
		}
		if team.Len() != 3 || team.Placeholders() != 1 {
			t.Fatalf("expected 3 players with 1 placeholder, got %d/%d", team.Len(), team.Placeholders())
		}

		alt := team.Players()[0]
		if !alt.BirthDate().Equal(date(2005, time.June, 1)) || alt.Club() != "TSV Nachbar" {
			t.Errorf("unexpected player: %v club=%s", alt, alt.Club())
		}
	})

	t.Run("tolerant parsing", func(t *testing.T) {
		lines := th.Lines(sampleText)
		lines[8] = "LV-Nr"                       // no "=" yields an empty value
		lines[9] = "Anzahl Spieler="             // empty count stays unset
		lines[16] = "Geb.-Jahr=31/02/1999"       // bad date is dropped, player kept
		lines[20] = "Verein=A=B"                 // value is everything after the first "="
		lines = append(lines[:len(lines)-4], "") // partial last block

		team, err := DecodeTeam("t.ini", []byte(strings.Join(lines, "\n")), nil)
		if err != nil {
			t.Fatalf("DecodeTeam failed: %v", err)
		}
		if team.Metadata.LeagueNumber != "" || team.Metadata.DeclaredPlayers != models.UnsetPlayerCount {
			t.Errorf("unexpected metadata: %+v", team.Metadata)
		}
		if team.Len() != 2 {
			t.Fatalf("expected partial block to be dropped, got %d players", team.Len())
		}
		alt := team.Players()[0]
		if alt.HasBirthDate() || alt.Club() != "A=B" {
			t.Errorf("unexpected player: %v club=%s", alt, alt.Club())
		}
	})

	t.Run("errors", func(t *testing.T) {
		lines := th.Lines(sampleText)
		badCount := append([]string{}, lines...)
		badCount[9] = "Anzahl Spieler=zehn"

		tests := []struct {
			name    string
			file    string
			content string
			want    error
		}{
			{"incomplete file", "t.ini", strings.Join(lines[:5], "\n"), shared.ErrIncompleteFile},
			{"empty file", "t.ini", "", shared.ErrIncompleteFile},
			{"wrong extension", "t.txt", sampleText, shared.ErrFormat},
			{"bad player count", "t.ini", strings.Join(badCount, "\n"), shared.ErrFormat},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := DecodeTeam(tt.file, []byte(tt.content), nil)
				if !errors.Is(err, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, err)
				}
			})
		}
	})
}

func TestCharset(t *testing.T) {
	t.Run("unsupported runes are replaced", func(t *testing.T) {
		data, err := EncodeText("Łukasz €", CharsetLatin1)
		if err != nil {
			t.Fatalf("EncodeText failed: %v", err)
		}
		if len(data) != 8 || data[0] == 'L' {
			t.Errorf("unexpected encoding: %q", data)
		}
	})

	t.Run("auto decoding", func(t *testing.T) {
		for _, input := range [][]byte{[]byte("Müller"), {'M', 0xfc, 'l', 'l', 'e', 'r'}, []byte("\ufeffMüller")} {
			got, err := DecodeText(input, CharsetAuto)
			if err != nil {
				t.Fatalf("DecodeText failed: %v", err)
			}
			if got != "Müller" {
				t.Errorf("DecodeText(%q) = %q", input, got)
			}
		}
	})

	t.Run("unknown charset", func(t *testing.T) {
		if _, err := DecodeText([]byte("x"), "koi8"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w := NewWriter(dir, lfOptions(), shared.DiscardLogger())

	path, err := w.WriteTeam("SV Example 1. Mannschaft.ini", sampleTeam())
	if err != nil {
		t.Fatalf("WriteTeam failed: %v", err)
	}
	if filepath.Base(path) != "SV Example 1 Mannschaft.ini" {
		t.Errorf("unexpected file name %s", path)
	}
	if th.MustReadFile(t, path) != sampleText {
		t.Errorf("unexpected file content")
	}

	team, err := ReadTeamFile(path)
	if err != nil {
		t.Fatalf("ReadTeamFile failed: %v", err)
	}
	if team.FileID != "SV Example 1 Mannschaft" {
		t.Errorf("unexpected file id %q", team.FileID)
	}

	if _, err := w.WriteTeam("SV Example 1 Mannschaft", team); err != nil {
		t.Errorf("overwriting failed: %v", err)
	}

	if _, err := w.WriteTeam("...", team); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}

	if _, err := ReadTeamFile(filepath.Join(dir, "missing.ini")); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReadFolder(t *testing.T) {
	dir := t.TempDir()
	th.MustWriteFile(t, filepath.Join(dir, "b.ini"), sampleText)
	th.MustWriteFile(t, filepath.Join(dir, "a.ini"), sampleText)
	th.MustWriteFile(t, filepath.Join(dir, "short.ini"), "[Allgemein]\nName=x\n")
	th.MustWriteFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	if err := os.Mkdir(filepath.Join(dir, "sub.ini"), 0755); err != nil {
		t.Fatal(err)
	}

	r := NewReader(CharsetAuto, shared.DiscardLogger())
	folder, err := r.ReadFolder(dir)
	if err != nil {
		t.Fatalf("ReadFolder failed: %v", err)
	}
	if len(folder.Teams) != 2 || folder.Teams[0].FileID != "a" || folder.Teams[1].FileID != "b" {
		t.Errorf("unexpected teams: %v", folder.Teams)
	}
	if len(folder.Skipped) != 1 || filepath.Base(folder.Skipped[0].Path) != "short.ini" {
		t.Errorf("unexpected skipped files: %+v", folder.Skipped)
	}

	if _, err := ReadFolder(filepath.Join(dir, "missing")); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestWriteManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "manifest.json")
	report := map[string]any{"run_id": "abc", "files": []string{"a.ini"}}

	if err := WriteManifest(report, path); err != nil {
		t.Fatalf("WriteManifest failed: %v", err)
	}

	content := th.MustReadFile(t, path)
	if !strings.Contains(content, `"run_id": "abc"`) || !strings.Contains(content, `"a.ini"`) {
		t.Errorf("unexpected manifest: %s", content)
	}
}
