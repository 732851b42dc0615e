package ui

import (
	"fmt"

	"github.com/desertthunder/mannschaft/internal/models"
)

// teamItem implements list.Item for teams
type teamItem struct {
	team *models.Team
}

func (i teamItem) FilterValue() string { return i.team.FileID }
func (i teamItem) Title() string       { return i.team.FileID }
func (i teamItem) Description() string {
	regular := i.team.Len() - i.team.Placeholders()
	desc := fmt.Sprintf("%d players, %d placeholders", regular, i.team.Placeholders())
	if league := i.team.Metadata.League; league != "" {
		desc += " • " + league
	}
	return desc
}

// playerItem implements list.Item for players
type playerItem struct {
	player *models.Player
}

func (i playerItem) FilterValue() string { return i.player.Surname() }
func (i playerItem) Title() string {
	return fmt.Sprintf("%s, %s", i.player.Surname(), i.player.GivenName())
}
func (i playerItem) Description() string {
	if i.player.IsPlaceholder() {
		return "placeholder"
	}
	birth := "no birth date"
	if i.player.HasBirthDate() {
		birth = i.player.BirthDate().Format("02.01.2006")
	}
	return fmt.Sprintf("%s • %s • %s", birth, i.player.DisplayClub(), i.player.License())
}
