// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TeamsCSV is a team table with one senior and one youth team for "SV Example".
const TeamsCSV = `Verein;Mannschaft;Bezirk;Ort;Liga;Spielklasse;Spielführer;Betreuer;Vereinsnummer;LV-Nummer;Land;Verein Kurz
SV Example;1. Mannschaft;Nord;Examplestadt;Landesliga;Herren;Max Muster;Eva Muster;1234;LV-1;DE;SVE
SV Example;U18m;Nord;Examplestadt;Jugendliga;U18;Tim Klein;Eva Muster;1234;LV-2;DE;SVE
`

// PlayersCSV matches [TeamsCSV]. The last two rows have no team and a broken date.
const PlayersCSV = `Vorname;Name;Geburtsdatum;Geschlecht;Altersklasse;Passnummer;Verein;Mannschaft;Verein_angehörig
Anna;Schmidt;01.06.1999;w;Damen;P-100;SV Example;1. Mannschaft;
Bernd;Alt;20. Januar 1975;m;Senioren;P-101;SV Example;1. Mannschaft;TSV Nachbar
Clara;Jung;15.03.2007;w;U18;P-102;SV Example;U18m;
Dieter;Ohne;01.01.1990;m;Herren;P-103;SV Example;3. Mannschaft;
Erik;Kaputt;31.02.1990;m;Herren;P-104;SV Example;1. Mannschaft;
`

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// WriteFixtures writes [TeamsCSV] and [PlayersCSV] into dir and returns their paths.
func WriteFixtures(t *testing.T, dir string) (teams, players string) {
	t.Helper()
	teams = MustWriteFile(t, filepath.Join(dir, "Mannschaften.csv"), TeamsCSV)
	players = MustWriteFile(t, filepath.Join(dir, "Spieler.csv"), PlayersCSV)
	return teams, players
}

func MustWriteFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// Lines splits s on "\n" after removing carriage returns.
func Lines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
