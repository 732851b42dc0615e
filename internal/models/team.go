package models

import (
	"fmt"
	"slices"
	"strings"
)

// UnsetPlayerCount marks a declared player count that reconciliation has not computed yet.
const UnsetPlayerCount = -1

// TeamMetadata holds the general block of a team file.
type TeamMetadata struct {
	Name            string
	LeagueClass     string // Spielklasse
	League          string // Liga
	District        string // Bezirk
	Captain         string // Spielführer
	Supervisor      string // Betreuer 1
	ClubNumber      string // Vereins-Nr
	LeagueNumber    string // LV-Nr
	DeclaredPlayers int    // Anzahl Spieler, UnsetPlayerCount when unknown
	ClubName        string
	ClubShortName   string
}

// NewTeamMetadata returns a copy of m with every text field trimmed.
func NewTeamMetadata(m TeamMetadata) *TeamMetadata {
	return &TeamMetadata{
		Name:            strings.TrimSpace(m.Name),
		LeagueClass:     strings.TrimSpace(m.LeagueClass),
		League:          strings.TrimSpace(m.League),
		District:        strings.TrimSpace(m.District),
		Captain:         strings.TrimSpace(m.Captain),
		Supervisor:      strings.TrimSpace(m.Supervisor),
		ClubNumber:      strings.TrimSpace(m.ClubNumber),
		LeagueNumber:    strings.TrimSpace(m.LeagueNumber),
		DeclaredPlayers: m.DeclaredPlayers,
		ClubName:        strings.TrimSpace(m.ClubName),
		ClubShortName:   strings.TrimSpace(m.ClubShortName),
	}
}

// PlaceholderOrder decides how placeholders are ordered when they are moved to the end.
type PlaceholderOrder int

const (
	PlaceholdersByName PlaceholderOrder = iota
	PlaceholdersInsertion
)

// ParsePlaceholderOrder maps "name" or "insertion" to a [PlaceholderOrder].
func ParsePlaceholderOrder(s string) (PlaceholderOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name", "":
		return PlaceholdersByName, nil
	case "insertion":
		return PlaceholdersInsertion, nil
	default:
		return PlaceholdersByName, fmt.Errorf("unknown placeholder order %q", s)
	}
}

// OrderPolicy controls [Team.Ordered].
type OrderPolicy struct {
	Sort             bool
	PlaceholdersLast bool // only applies when Sort is set
	PlaceholderOrder PlaceholderOrder
	Compare          func(a, b *Player) int // nil selects BySurname
}

// BySurname compares surnames byte-wise, case-sensitive.
func BySurname(a, b *Player) int {
	return strings.Compare(a.Surname(), b.Surname())
}

// Team is a roster: a file identifier, its metadata and its players in order.
type Team struct {
	FileID   string
	Metadata *TeamMetadata
	players  []*Player
}

// NewTeam creates a [Team]. A nil metadata is replaced by an empty one.
func NewTeam(fileID string, meta *TeamMetadata, players []*Player) *Team {
	if meta == nil {
		meta = &TeamMetadata{DeclaredPlayers: UnsetPlayerCount}
	}
	return &Team{FileID: fileID, Metadata: meta, players: slices.Clone(players)}
}

// Players returns a copy of the stored player list.
func (t *Team) Players() []*Player {
	return slices.Clone(t.players)
}

// Len returns the number of players, placeholders included.
func (t *Team) Len() int { return len(t.players) }

// Placeholders counts the synthetic players.
func (t *Team) Placeholders() int {
	n := 0
	for _, p := range t.players {
		if p.IsPlaceholder() {
			n++
		}
	}
	return n
}

// Commit replaces the stored player list.
func (t *Team) Commit(players []*Player) {
	t.players = slices.Clone(players)
}

// Rename changes the file identifier and the metadata name together.
func (t *Team) Rename(id string) {
	t.FileID = id
	t.Metadata.Name = id
}

// DeclaredPlayers returns the metadata count, or the list length when unset.
func (t *Team) DeclaredPlayers() int {
	if t.Metadata.DeclaredPlayers < 0 {
		return len(t.players)
	}
	return t.Metadata.DeclaredPlayers
}

// Ordered returns the players in the order described by policy. The team is not modified.
//
// With PlaceholdersLast, real players are sorted and placeholders follow, either
// sorted by surname or in their stored order.
func (t *Team) Ordered(policy OrderPolicy) []*Player {
	out := slices.Clone(t.players)
	if !policy.Sort {
		return out
	}

	cmp := policy.Compare
	if cmp == nil {
		cmp = BySurname
	}

	if !policy.PlaceholdersLast {
		slices.SortStableFunc(out, cmp)
		return out
	}

	var regular, fillers []*Player
	for _, p := range out {
		if p.IsPlaceholder() {
			fillers = append(fillers, p)
		} else {
			regular = append(regular, p)
		}
	}

	slices.SortStableFunc(regular, cmp)
	if policy.PlaceholderOrder == PlaceholdersByName {
		slices.SortStableFunc(fillers, BySurname)
	}
	return append(regular, fillers...)
}

func (t *Team) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d players)\n", t.FileID, len(t.players))
	for _, p := range t.players {
		fmt.Fprintf(&b, "\t%s\n", p)
	}
	return b.String()
}

// Club groups the teams built for one club.
type Club struct {
	name      string
	shortName string
	location  string
	address   string
	teams     []*Team
}

// ClubInfo carries the optional descriptive fields of a [Club].
type ClubInfo struct {
	ShortName string
	Location  string
	Address   string
}

// NewClub creates a [Club]; the team list is fixed from here on.
func NewClub(name string, info ClubInfo, teams []*Team) *Club {
	return &Club{
		name:      name,
		shortName: info.ShortName,
		location:  info.Location,
		address:   info.Address,
		teams:     slices.Clone(teams),
	}
}

func (c *Club) Name() string      { return c.name }
func (c *Club) ShortName() string { return c.shortName }
func (c *Club) Location() string  { return c.location }
func (c *Club) Address() string   { return c.address }

// Teams returns a copy of the club's team list.
func (c *Club) Teams() []*Team { return slices.Clone(c.teams) }
