package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	placeholderSurname   = regexp.MustCompile(`^Name (\d+)$`)
	placeholderGivenName = regexp.MustCompile(`^Vorname \d+$`)
)

// PlayerFields carries the raw values a [Player] is built from.
type PlayerFields struct {
	Surname      string
	GivenName    string
	LastMatch    string
	SlotNumber   string
	PlayerNumber string
	BirthDate    time.Time // zero when unknown
	AgeClass     string
	License      string
	Ranking      string
	Club         string
	DisplayClub  string // overrides Club in team files when set
}

// Player is one roster entry. All fields are fixed at construction except the birth date.
type Player struct {
	surname      string
	givenName    string
	lastMatch    string
	slotNumber   string
	playerNumber string
	birthDate    time.Time
	ageClass     string
	license      string
	ranking      string
	club         string
	displayClub  string
}

// NewPlayer creates a [Player], trimming every text field.
func NewPlayer(f PlayerFields) *Player {
	return &Player{
		surname:      strings.TrimSpace(f.Surname),
		givenName:    strings.TrimSpace(f.GivenName),
		lastMatch:    strings.TrimSpace(f.LastMatch),
		slotNumber:   strings.TrimSpace(f.SlotNumber),
		playerNumber: strings.TrimSpace(f.PlayerNumber),
		birthDate:    f.BirthDate,
		ageClass:     strings.TrimSpace(f.AgeClass),
		license:      strings.TrimSpace(f.License),
		ranking:      strings.TrimSpace(f.Ranking),
		club:         strings.TrimSpace(f.Club),
		displayClub:  strings.TrimSpace(f.DisplayClub),
	}
}

// NewPlaceholder creates the synthetic filler player with ordinal n ("Name n", "Vorname n").
func NewPlaceholder(n int) *Player {
	return NewPlayer(PlayerFields{
		Surname:   fmt.Sprintf("Name %d", n),
		GivenName: fmt.Sprintf("Vorname %d", n),
	})
}

func (p *Player) Surname() string      { return p.surname }
func (p *Player) GivenName() string    { return p.givenName }
func (p *Player) LastMatch() string    { return p.lastMatch }
func (p *Player) SlotNumber() string   { return p.slotNumber }
func (p *Player) PlayerNumber() string { return p.playerNumber }
func (p *Player) BirthDate() time.Time { return p.birthDate }
func (p *Player) AgeClass() string     { return p.ageClass }
func (p *Player) License() string      { return p.license }
func (p *Player) Ranking() string      { return p.ranking }
func (p *Player) Club() string         { return p.club }
func (p *Player) DisplayClubOverride() string {
	return p.displayClub
}

// HasBirthDate reports whether a birth date is known.
func (p *Player) HasBirthDate() bool { return !p.birthDate.IsZero() }

// SetBirthDate replaces the birth date; the zero time clears it.
func (p *Player) SetBirthDate(t time.Time) { p.birthDate = t }

// DisplayClub is the club name written to team files.
func (p *Player) DisplayClub() string {
	if p.displayClub != "" {
		return p.displayClub
	}
	return p.club
}

// Valid reports whether surname and given name are both set.
func (p *Player) Valid() bool {
	return p.surname != "" && p.givenName != ""
}

// ValidStrong additionally requires a birth date and a license number.
func (p *Player) ValidStrong() bool {
	return p.Valid() && p.HasBirthDate() && p.license != ""
}

// ValidAll additionally requires slot number, player number and ranking.
func (p *Player) ValidAll() bool {
	return p.ValidStrong() && p.slotNumber != "" && p.playerNumber != "" && p.ranking != ""
}

// IsPlaceholder reports whether p follows the synthetic "Name n"/"Vorname n" pattern.
func (p *Player) IsPlaceholder() bool {
	return placeholderSurname.MatchString(p.surname) && placeholderGivenName.MatchString(p.givenName)
}

// PlaceholderNumber returns the ordinal of a placeholder, or false for real players.
func (p *Player) PlaceholderNumber() (int, bool) {
	if !p.IsPlaceholder() {
		return 0, false
	}
	n, err := strconv.Atoi(placeholderSurname.FindStringSubmatch(p.surname)[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Fields returns a copy of the player's values, suitable for building a modified player.
func (p *Player) Fields() PlayerFields {
	return PlayerFields{
		Surname:      p.surname,
		GivenName:    p.givenName,
		LastMatch:    p.lastMatch,
		SlotNumber:   p.slotNumber,
		PlayerNumber: p.playerNumber,
		BirthDate:    p.birthDate,
		AgeClass:     p.ageClass,
		License:      p.license,
		Ranking:      p.ranking,
		Club:         p.club,
		DisplayClub:  p.displayClub,
	}
}

func (p *Player) String() string {
	if !p.HasBirthDate() {
		return fmt.Sprintf("%s %s", p.surname, p.givenName)
	}
	return fmt.Sprintf("%s %s %s", p.surname, p.givenName, p.birthDate.Format("02/01/2006"))
}
