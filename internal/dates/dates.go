// Package dates normalizes the date strings found in club spreadsheets and team files.
//
// Three spellings are recognised:
//
//   - numeric: "20/01/2023", "20.01.23", "01-2023" (separator auto-detected)
//   - iso: "2023-01-20", "2023-01"
//   - worded: "20. Januar 23", "3. März 2004"
//
// Month names are looked up in a [Locale] owned by a [Normalizer]; there is no
// process-wide locale. The zero [time.Time] stands for "no date".
package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/desertthunder/mannschaft/internal/shared"
)

// Mode selects the spelling a date string is parsed as.
type Mode int

const (
	Numeric Mode = iota
	ISO
	Worded
	Auto
)

func (m Mode) String() string {
	switch m {
	case Numeric:
		return "numeric"
	case ISO:
		return "iso"
	case Worded:
		return "worded"
	case Auto:
		return "auto"
	default:
		return ""
	}
}

// ParseMode maps a configuration value to a [Mode].
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "numeric":
		return Numeric, nil
	case "iso":
		return ISO, nil
	case "worded", "word":
		return Worded, nil
	case "auto", "":
		return Auto, nil
	default:
		return Auto, fmt.Errorf("%w: unknown date mode %q", shared.ErrInvalidArgument, s)
	}
}

// Locale maps lower-cased month names to month numbers.
type Locale map[string]time.Month

// German is the month table used by the club spreadsheets.
//
// "maerz" and "marz" cover files that went through umlaut stripping.
var German = Locale{
	"januar": time.January, "jänner": time.January, "februar": time.February,
	"märz": time.March, "maerz": time.March, "marz": time.March,
	"april": time.April, "mai": time.May, "juni": time.June, "juli": time.July,
	"august": time.August, "september": time.September, "oktober": time.October,
	"november": time.November, "dezember": time.December,
}

// Normalizer parses date strings against a month-name table.
type Normalizer struct {
	locale Locale
}

// NewNormalizer creates a [Normalizer]; a nil locale selects [German].
func NewNormalizer(locale Locale) *Normalizer {
	if locale == nil {
		locale = German
	}
	return &Normalizer{locale: locale}
}

// Parse parses text with the default German normalizer.
func Parse(text string, mode Mode) (time.Time, error) {
	return NewNormalizer(nil).Parse(text, mode)
}

// Parse converts text to a date. Blank text yields the zero time and no error;
// anything else that matches no known spelling fails with [shared.ErrFormat].
func (n *Normalizer) Parse(text string, mode Mode) (time.Time, error) {
	if strings.TrimSpace(text) == "" {
		return time.Time{}, nil
	}

	switch mode {
	case ISO:
		return parseISO(text)
	case Worded:
		return n.parseWorded(text)
	case Auto:
		return n.parseAuto(text)
	default:
		return parseNumeric(text)
	}
}

func (n *Normalizer) parseAuto(text string) (time.Time, error) {
	s := strings.TrimSpace(text)
	if strings.IndexFunc(s, unicode.IsLetter) >= 0 {
		return n.parseWorded(s)
	}
	if len(s) > 4 && s[4] == '-' && isDigits(s[:4]) {
		return parseISO(s)
	}
	return parseNumeric(s)
}

func parseNumeric(text string) (time.Time, error) {
	s := strings.ReplaceAll(strings.TrimSpace(text), " ", "")
	for _, sep := range []string{"/", ".", "-"} {
		var layout string
		parts := strings.Split(s, sep)
		switch len(parts) - 1 {
		case 1:
			layout = "1" + sep + yearLayout(parts[1])
		case 2:
			layout = "2" + sep + "1" + sep + yearLayout(parts[2])
		default:
			continue
		}
		return parseLayout(layout, s, text)
	}
	return time.Time{}, formatErr(text, "unknown format")
}

func parseISO(text string) (time.Time, error) {
	s := strings.TrimSpace(text)
	switch strings.Count(s, "-") {
	case 1:
		return parseLayout("2006-1", s, text)
	case 2:
		return parseLayout("2006-1-2", s, text)
	default:
		return time.Time{}, formatErr(text, "not an ISO date")
	}
}

func (n *Normalizer) parseWorded(text string) (time.Time, error) {
	fields := strings.Fields(strings.ReplaceAll(text, ".", " "))
	if len(fields) != 3 {
		return time.Time{}, formatErr(text, "expected day, month name and year")
	}

	day, err := strconv.Atoi(fields[0])
	if err != nil {
		return time.Time{}, formatErr(text, "invalid day")
	}

	month, ok := n.locale[strings.ToLower(fields[1])]
	if !ok {
		return time.Time{}, formatErr(text, "unknown month "+fields[1])
	}

	var year int
	switch y := fields[2]; {
	case len(y) == 2 && isDigits(y):
		t, err := time.Parse("06", y)
		if err != nil {
			return time.Time{}, formatErr(text, "invalid year")
		}
		year = t.Year()
	case len(y) == 4 && isDigits(y):
		year, _ = strconv.Atoi(y)
	default:
		return time.Time{}, formatErr(text, "invalid year")
	}

	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || d.Month() != month {
		return time.Time{}, formatErr(text, "day out of range")
	}
	return d, nil
}

func parseLayout(layout, value, original string) (time.Time, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, formatErr(original, err.Error())
	}
	return t, nil
}

func yearLayout(part string) string {
	if len(part) == 2 {
		return "06"
	}
	return "2006"
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func formatErr(text, reason string) error {
	return fmt.Errorf("%w: could not parse date %q: %s", shared.ErrFormat, text, reason)
}
