// package formatter reads and writes team files: the positional ".ini"-like
// roster format of the club-management application.
//
// A team file is one [Allgemein] section with nine keys followed by one
// [Spieler N] section of ten keys per player. Keys are fixed and positional;
// readers ignore the key names and take each value after the first "=".
package formatter

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/mannschaft/internal/dates"
	"github.com/desertthunder/mannschaft/internal/models"
	"github.com/desertthunder/mannschaft/internal/shared"
)

const (
	// Extension is the team file suffix.
	Extension = ".ini"

	// DefaultDateLayout is used for birth dates before 2000.
	DefaultDateLayout = "02/01/2006"
	// RecentDateLayout is always used for birth dates from 2000 on.
	RecentDateLayout = "01/2006"

	generalSection = "[Allgemein]"
	generalLines   = 10 // header + 9 keys
	playerLines    = 11 // header + 10 keys
)

var generalKeys = []string{
	"Name", "Spielklasse", "Liga", "Bezirk", "Spielführer",
	"Betreuer 1", "Vereins-Nr", "LV-Nr", "Anzahl Spieler",
}

var playerKeys = []string{
	"Name", "Vorname", "Letztes Spiel", "Platz-Ziffer", "Spielernr.",
	"Geb.-Jahr", "Altersklasse", "Pass-Nr.", "Rangliste", "Verein",
}

var recentCutoff = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

var (
	forbiddenChars = regexp.MustCompile(`[:/?<>|"*]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
	lineBreaks     = regexp.MustCompile(`[\r\n]+`)
)

// SanitizeName makes name usable as a team name and file stem: forbidden path
// characters become "_", periods are removed and whitespace runs collapse to one space.
func SanitizeName(name string) string {
	s := forbiddenChars.ReplaceAllString(name, "_")
	s = strings.ReplaceAll(s, ".", "")
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(s, " "))
}

// FormatBirthDate renders t for the Geb.-Jahr key. Dates from 2000 on only
// carry month and year; the zero time renders empty.
func FormatBirthDate(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	if !t.Before(recentCutoff) {
		return t.Format(RecentDateLayout)
	}
	if layout == "" {
		layout = DefaultDateLayout
	}
	return t.Format(layout)
}

// EncodeOptions controls [EncodeTeam].
type EncodeOptions struct {
	Policy     models.OrderPolicy
	DateLayout string // Go layout for dates before 2000
	LineEnding string // "\n" or "\r\n"
	Charset    string
}

// DefaultEncodeOptions sorts by surname with placeholders last and writes
// windows-1252 with CRLF line endings.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Policy:     models.OrderPolicy{Sort: true, PlaceholdersLast: true},
		DateLayout: DefaultDateLayout,
		LineEnding: "\r\n",
		Charset:    CharsetWindows1252,
	}
}

// EncodeOptionsFrom builds [EncodeOptions] from the output configuration.
func EncodeOptionsFrom(cfg shared.OutputConfig) (EncodeOptions, error) {
	order, err := models.ParsePlaceholderOrder(cfg.PlaceholderOrder)
	if err != nil {
		return EncodeOptions{}, fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
	}
	if _, err := lookup(cfg.Encoding); err != nil {
		return EncodeOptions{}, err
	}

	opts := EncodeOptions{
		Policy: models.OrderPolicy{
			Sort:             cfg.Sort,
			PlaceholdersLast: cfg.PlaceholdersLast,
			PlaceholderOrder: order,
		},
		DateLayout: cfg.DateLayout,
		LineEnding: "\r\n",
		Charset:    cfg.Encoding,
	}
	if cfg.LineEnding == "lf" {
		opts.LineEnding = "\n"
	}
	return opts, nil
}

// EncodeTeam renders team as a team file in opts.Charset.
//
// Players are written in the order given by opts.Policy; the team itself is
// left untouched. A player without surname or given name fails with
// [shared.ErrInvalidRecord].
func EncodeTeam(team *models.Team, opts EncodeOptions) ([]byte, error) {
	text, err := encodeText(team, opts)
	if err != nil {
		return nil, err
	}
	return EncodeText(text, opts.Charset)
}

func encodeText(team *models.Team, opts EncodeOptions) (string, error) {
	m := team.Metadata
	players := team.Ordered(opts.Policy)

	lines := make([]string, 0, generalLines+playerLines*len(players))
	lines = append(lines, generalSection)
	lines = appendKeys(lines, generalKeys, []string{
		SanitizeName(m.Name),
		m.LeagueClass,
		m.League,
		m.District,
		m.Captain,
		m.Supervisor,
		m.ClubNumber,
		m.LeagueNumber,
		strconv.Itoa(team.DeclaredPlayers()),
	})

	for i, p := range players {
		if !p.Valid() {
			return "", fmt.Errorf("%w: player %d of %s has no surname or given name", shared.ErrInvalidRecord, i, team.FileID)
		}

		lines = append(lines, fmt.Sprintf("[Spieler %d]", i))
		lines = appendKeys(lines, playerKeys, []string{
			p.Surname(),
			p.GivenName(),
			p.LastMatch(),
			p.SlotNumber(),
			p.PlayerNumber(),
			FormatBirthDate(p.BirthDate(), opts.DateLayout),
			p.AgeClass(),
			p.License(),
			p.Ranking(),
			p.DisplayClub(),
		})
	}

	eol := opts.LineEnding
	if eol == "" {
		eol = "\n"
	}
	return strings.Join(lines, eol) + eol, nil
}

// appendKeys writes one "key=value" line per key. Line breaks inside a value
// would shift every following position, so they become a single space.
func appendKeys(lines, keys, values []string) []string {
	for i, key := range keys {
		lines = append(lines, key+"="+lineBreaks.ReplaceAllString(values[i], " "))
	}
	return lines
}

// Reader decodes team files.
type Reader struct {
	Charset    string // CharsetAuto when empty
	Normalizer *dates.Normalizer
	Logger     *log.Logger
}

// NewReader creates a [Reader] with the German month table.
func NewReader(charset string, logger *log.Logger) *Reader {
	return &Reader{Charset: charset, Normalizer: dates.NewNormalizer(nil), Logger: logger}
}

func (r *Reader) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}

func (r *Reader) normalizer() *dates.Normalizer {
	if r.Normalizer == nil {
		return dates.NewNormalizer(nil)
	}
	return r.Normalizer
}

// DecodeTeam decodes data with the default [Reader] and the given normalizer.
func DecodeTeam(name string, data []byte, n *dates.Normalizer) (*models.Team, error) {
	r := &Reader{Charset: CharsetAuto, Normalizer: n}
	return r.DecodeTeam(name, data)
}

// ReadTeamFile reads the team file at path with the default [Reader].
func ReadTeamFile(path string) (*models.Team, error) {
	return (&Reader{Charset: CharsetAuto}).ReadTeamFile(path)
}

// ReadTeamFile reads and decodes the team file at path.
func (r *Reader) ReadTeamFile(path string) (*models.Team, error) {
	if filepath.Ext(path) != Extension {
		return nil, fmt.Errorf("%w: %s is not a %s file", shared.ErrFormat, path, Extension)
	}

	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return r.DecodeTeam(path, data)
}

// DecodeTeam parses data as the team file called name. The file stem of
// name becomes the team's file id, whatever the Name key says.
//
// Parsing is positional: line 0 is the section header, lines 1-9 the general
// keys, then blocks of 11 lines per player. A trailing partial block is dropped.
// Fewer than 11 lines fail with [shared.ErrIncompleteFile].
func (r *Reader) DecodeTeam(name string, data []byte) (*models.Team, error) {
	if filepath.Ext(name) != Extension {
		return nil, fmt.Errorf("%w: %s is not a %s file", shared.ErrFormat, name, Extension)
	}

	charset := r.Charset
	if charset == "" {
		charset = CharsetAuto
	}
	text, err := DecodeText(data, charset)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrFormat, name, err)
	}

	lines := splitLines(text)
	if len(lines) < generalLines+1 {
		return nil, fmt.Errorf("%w: %s has %d lines", shared.ErrIncompleteFile, name, len(lines))
	}

	general := values(lines[1:generalLines])
	declared := models.UnsetPlayerCount
	if count := strings.TrimSpace(general[8]); count != "" {
		declared, err = strconv.Atoi(count)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: Anzahl Spieler %q is not a number", shared.ErrFormat, name, count)
		}
	}

	meta := models.NewTeamMetadata(models.TeamMetadata{
		Name:            general[0],
		LeagueClass:     general[1],
		League:          general[2],
		District:        general[3],
		Captain:         general[4],
		Supervisor:      general[5],
		ClubNumber:      general[6],
		LeagueNumber:    general[7],
		DeclaredPlayers: declared,
	})

	base := filepath.Base(name)
	id := strings.TrimSuffix(base, filepath.Ext(base))
	logger := shared.WithLogger(r.logger(), "file", base)

	var players []*models.Player
	start := generalLines
	for ; start+playerLines <= len(lines); start += playerLines {
		v := values(lines[start+1 : start+playerLines])

		birth, err := r.normalizer().Parse(v[5], dates.Auto)
		if err != nil {
			logger.Warn("could not parse birth date, leaving it unset", "player", v[0]+" "+v[1], "value", v[5], "err", err)
		}

		players = append(players, models.NewPlayer(models.PlayerFields{
			Surname:      v[0],
			GivenName:    v[1],
			LastMatch:    v[2],
			SlotNumber:   v[3],
			PlayerNumber: v[4],
			BirthDate:    birth,
			AgeClass:     v[6],
			License:      v[7],
			Ranking:      v[8],
			Club:         v[9],
		}))
	}
	if start < len(lines) {
		logger.Debug("dropping partial player block", "lines", len(lines)-start)
	}

	return models.NewTeam(id, meta, players), nil
}

// splitLines splits on LF or CRLF; a final line terminator does not start a new line.
func splitLines(text string) []string {
	text = strings.TrimSuffix(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// values returns the text after the first "=" of each line, or "" when there is none.
func values(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if _, v, ok := strings.Cut(line, "="); ok {
			out[i] = v
		}
	}
	return out
}
