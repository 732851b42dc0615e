package tabular

import "strconv"

// Team file columns.
const (
	ColClub         = "Verein"
	ColTeam         = "Mannschaft"
	ColDistrict     = "Bezirk"
	ColLocation     = "Ort"
	ColLeague       = "Liga"
	ColLeagueClass  = "Spielklasse"
	ColCaptain      = "Spielführer"
	ColSupervisor   = "Betreuer"
	ColClubNumber   = "Vereinsnummer"
	ColLeagueNumber = "LV-Nummer"
	ColCountry      = "Land"
	ColClubShort    = "Verein Kurz"
)

// Player file columns.
const (
	ColGivenName   = "Vorname"
	ColSurname     = "Name"
	ColBirthDate   = "Geburtsdatum"
	ColGender      = "Geschlecht"
	ColAgeClass    = "Altersklasse"
	ColLicense     = "Passnummer"
	ColDisplayClub = "Verein_angehörig"

	LegacyColSurname     = "Nachname"
	LegacyColDisplayClub = "Verein_angezeigt"
)

// TeamColumns is the header of the team file, in order.
var TeamColumns = []string{
	ColClub, ColTeam, ColDistrict, ColLocation, ColLeague, ColLeagueClass,
	ColCaptain, ColSupervisor, ColClubNumber, ColLeagueNumber, ColCountry, ColClubShort,
}

var teamRequired = []string{ColClub, ColTeam}

// PlayerSchema selects the player file column names.
type PlayerSchema struct {
	Legacy bool
}

// Columns returns the player header, in order.
func (s PlayerSchema) Columns() []string {
	return []string{
		ColGivenName, s.surname(), ColBirthDate, ColGender, ColAgeClass,
		ColLicense, ColClub, ColTeam, s.displayClub(),
	}
}

func (s PlayerSchema) required() []string {
	return []string{ColGivenName, s.surname(), ColClub, ColTeam}
}

func (s PlayerSchema) surname() string {
	if s.Legacy {
		return LegacyColSurname
	}
	return ColSurname
}

func (s PlayerSchema) displayClub() string {
	if s.Legacy {
		return LegacyColDisplayClub
	}
	return ColDisplayClub
}

// TeamRow is one line of the team file.
type TeamRow struct {
	Index        int // 0-based data row, header excluded
	Club         string
	Team         string
	District     string
	Location     string
	League       string
	LeagueClass  string
	Captain      string
	Supervisor   string
	ClubNumber   string
	LeagueNumber string
	Country      string
	ClubShort    string
}

func (r TeamRow) values() []string {
	return []string{
		r.Club, r.Team, r.District, r.Location, r.League, r.LeagueClass,
		r.Captain, r.Supervisor, r.ClubNumber, r.LeagueNumber, r.Country, r.ClubShort,
	}
}

// PlayerRow is one line of the player file.
type PlayerRow struct {
	Index       int // 0-based data row, header excluded
	GivenName   string
	Surname     string
	BirthDate   string
	Gender      string
	AgeClass    string
	License     string
	Club        string
	Team        string
	DisplayClub string
}

func (r PlayerRow) values() []string {
	return []string{
		r.GivenName, r.Surname, r.BirthDate, r.Gender, r.AgeClass,
		r.License, r.Club, r.Team, r.DisplayClub,
	}
}

// RowError describes a row that was quarantined while reading.
type RowError struct {
	Index  int // 0-based data row
	Line   int // 1-based line in the file
	Reason string
}

func (e RowError) Error() string {
	return "line " + strconv.Itoa(e.Line) + ": " + e.Reason
}
