package dates

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/mannschaft/internal/shared"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParse(t *testing.T) {
	tc := []struct {
		name  string
		input string
		mode  Mode
		want  time.Time
	}{
		{name: "slash full", input: "20/01/2023", mode: Numeric, want: day(2023, time.January, 20)},
		{name: "slash short year", input: "20/01/23", mode: Numeric, want: day(2023, time.January, 20)},
		{name: "slash month year", input: "06/2005", mode: Numeric, want: day(2005, time.June, 1)},
		{name: "slash month short year", input: "06/99", mode: Numeric, want: day(1999, time.June, 1)},
		{name: "dotted full", input: "01.06.1999", mode: Numeric, want: day(1999, time.June, 1)},
		{name: "dotted single digits", input: "1.6.1999", mode: Numeric, want: day(1999, time.June, 1)},
		{name: "dotted month year", input: "06.2005", mode: Numeric, want: day(2005, time.June, 1)},
		{name: "dashed full", input: "01-06-1999", mode: Numeric, want: day(1999, time.June, 1)},
		{name: "dashed month year", input: "06-05", mode: Numeric, want: day(2005, time.June, 1)},
		{name: "inner spaces removed", input: " 01 / 06 / 1999 ", mode: Numeric, want: day(1999, time.June, 1)},
		{name: "pivot 68 is 2068", input: "01/01/68", mode: Numeric, want: day(2068, time.January, 1)},
		{name: "pivot 69 is 1969", input: "01/01/69", mode: Numeric, want: day(1969, time.January, 1)},
		{name: "iso full", input: "2023-01-20", mode: ISO, want: day(2023, time.January, 20)},
		{name: "iso month", input: "2023-01", mode: ISO, want: day(2023, time.January, 1)},
		{name: "worded short year", input: "20. Januar 23", mode: Worded, want: day(2023, time.January, 20)},
		{name: "worded long year", input: "3. Oktober 1990", mode: Worded, want: day(1990, time.October, 3)},
		{name: "worded maerz", input: "3. März 2004", mode: Worded, want: day(2004, time.March, 3)},
		{name: "worded stripped umlaut", input: "3. Marz 2004", mode: Worded, want: day(2004, time.March, 3)},
		{name: "worded case insensitive", input: "7. dezember 01", mode: Worded, want: day(2001, time.December, 7)},
		{name: "auto worded", input: "20. Januar 2023", mode: Auto, want: day(2023, time.January, 20)},
		{name: "auto iso", input: "2023-01-20", mode: Auto, want: day(2023, time.January, 20)},
		{name: "auto numeric", input: "20.01.2023", mode: Auto, want: day(2023, time.January, 20)},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input, tt.mode)
			if err != nil {
				t.Fatalf("Parse(%q, %v) error = %v", tt.input, tt.mode, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q, %v) = %v, want %v", tt.input, tt.mode, got, tt.want)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	for _, mode := range []Mode{Numeric, ISO, Worded, Auto} {
		for _, input := range []string{"", "   "} {
			got, err := Parse(input, mode)
			if err != nil {
				t.Errorf("Parse(%q, %v) error = %v, want nil", input, mode, err)
			}
			if !got.IsZero() {
				t.Errorf("Parse(%q, %v) = %v, want zero time", input, mode, got)
			}
		}
	}
}

func TestParseErrors(t *testing.T) {
	tc := []struct {
		name  string
		input string
		mode  Mode
	}{
		{name: "impossible day", input: "31/02/2020", mode: Numeric},
		{name: "no separator", input: "20012023", mode: Numeric},
		{name: "too many separators", input: "1/2/3/4", mode: Numeric},
		{name: "month out of range", input: "13/2020", mode: Numeric},
		{name: "iso without dash", input: "20230120", mode: ISO},
		{name: "iso three dashes", input: "2023-01-20-1", mode: ISO},
		{name: "worded unknown month", input: "20. Janvier 2023", mode: Worded},
		{name: "worded missing year", input: "20. Januar", mode: Worded},
		{name: "worded three digit year", input: "20. Januar 123", mode: Worded},
		{name: "worded impossible day", input: "30. Februar 2020", mode: Worded},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input, tt.mode)
			if !errors.Is(err, shared.ErrFormat) {
				t.Fatalf("Parse(%q) error = %v, want ErrFormat", tt.input, err)
			}
			if !strings.Contains(err.Error(), tt.input) {
				t.Errorf("error %q should contain the offending text", err)
			}
		})
	}
}

func TestNormalizerLocale(t *testing.T) {
	n := NewNormalizer(Locale{"january": time.January})

	got, err := n.Parse("20. January 2023", Worded)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !got.Equal(day(2023, time.January, 20)) {
		t.Errorf("Parse() = %v", got)
	}

	if _, err := n.Parse("20. Januar 2023", Worded); !errors.Is(err, shared.ErrFormat) {
		t.Errorf("custom locale should not know German months, got %v", err)
	}
}

func TestParseMode(t *testing.T) {
	tc := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{input: "numeric", want: Numeric},
		{input: "ISO", want: ISO},
		{input: "worded", want: Worded},
		{input: "", want: Auto},
		{input: "roman", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !tt.wantErr && got.String() == "" {
				t.Errorf("mode %v has no name", got)
			}
		})
	}
}
