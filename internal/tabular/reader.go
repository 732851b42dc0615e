package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/desertthunder/mannschaft/internal/shared"
)

const bom = "\ufeff"

// table is a header-checked CSV file.
type table struct {
	columns map[string]int
	rows    []tableRow
	errs    []RowError
}

type tableRow struct {
	index  int
	fields []string
}

func (r tableRow) get(columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return r.fields[i]
}

func readTable(r io.Reader, sep rune, required []string) (*table, error) {
	cr := csv.NewReader(r)
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: file is empty", shared.ErrSchema)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	t := &table{columns: make(map[string]int, len(header))}
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, bom)
		}
		t.columns[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := t.columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", shared.ErrSchema, strings.Join(missing, ", "))
	}

	for index := 0; ; index++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		var perr *csv.ParseError
		if errors.As(err, &perr) {
			t.errs = append(t.errs, RowError{Index: index, Line: perr.StartLine, Reason: perr.Err.Error()})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", index, err)
		}

		if len(record) > len(header) {
			line, _ := cr.FieldPos(0)
			t.errs = append(t.errs, RowError{
				Index:  index,
				Line:   line,
				Reason: fmt.Sprintf("%d fields, header has %d", len(record), len(header)),
			})
			continue
		}

		t.rows = append(t.rows, tableRow{index: index, fields: record})
	}

	return t, nil
}

// ReadTeams reads team rows. Rows longer than the header are returned as [RowError].
func ReadTeams(r io.Reader, sep rune) ([]TeamRow, []RowError, error) {
	t, err := readTable(r, sep, teamRequired)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]TeamRow, 0, len(t.rows))
	for _, row := range t.rows {
		get := func(name string) string { return row.get(t.columns, name) }
		rows = append(rows, TeamRow{
			Index:        row.index,
			Club:         get(ColClub),
			Team:         get(ColTeam),
			District:     get(ColDistrict),
			Location:     get(ColLocation),
			League:       get(ColLeague),
			LeagueClass:  get(ColLeagueClass),
			Captain:      get(ColCaptain),
			Supervisor:   get(ColSupervisor),
			ClubNumber:   get(ColClubNumber),
			LeagueNumber: get(ColLeagueNumber),
			Country:      get(ColCountry),
			ClubShort:    get(ColClubShort),
		})
	}
	return rows, t.errs, nil
}

// ReadPlayers reads player rows using the column names of schema.
func ReadPlayers(r io.Reader, sep rune, schema PlayerSchema) ([]PlayerRow, []RowError, error) {
	t, err := readTable(r, sep, schema.required())
	if err != nil {
		return nil, nil, err
	}

	rows := make([]PlayerRow, 0, len(t.rows))
	for _, row := range t.rows {
		get := func(name string) string { return row.get(t.columns, name) }
		rows = append(rows, PlayerRow{
			Index:       row.index,
			GivenName:   get(ColGivenName),
			Surname:     get(schema.surname()),
			BirthDate:   get(ColBirthDate),
			Gender:      get(ColGender),
			AgeClass:    get(ColAgeClass),
			License:     get(ColLicense),
			Club:        get(ColClub),
			Team:        get(ColTeam),
			DisplayClub: get(schema.displayClub()),
		})
	}
	return rows, t.errs, nil
}

// ReadTeamsFile opens path and reads it with [ReadTeams].
func ReadTeamsFile(path string, sep rune) ([]TeamRow, []RowError, error) {
	f, err := open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rows, rowErrs, err := ReadTeams(f, sep)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, rowErrs, nil
}

// ReadPlayersFile opens path and reads it with [ReadPlayers].
func ReadPlayersFile(path string, sep rune, schema PlayerSchema) ([]PlayerRow, []RowError, error) {
	f, err := open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rows, rowErrs, err := ReadPlayers(f, sep, schema)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, rowErrs, nil
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", shared.ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}
