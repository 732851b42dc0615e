package tasks

import (
	"strings"

	"github.com/desertthunder/mannschaft/internal/dates"
	"github.com/desertthunder/mannschaft/internal/models"
	"github.com/desertthunder/mannschaft/internal/shared"
	"github.com/desertthunder/mannschaft/internal/tabular"
)

// Params configures [Engine.Reconcile].
type Params struct {
	MinPlayers      int
	MinPlaceholders int
	YouthPrefixes   []string   // team names starting with one of these are named team first
	DateMode        dates.Mode // how player birth dates are parsed
}

// DefaultParams pads to 10 players without extra placeholders.
func DefaultParams() Params {
	return Params{
		MinPlayers:    10,
		YouthPrefixes: []string{"U18", "U14"},
		DateMode:      dates.Auto,
	}
}

// ParamsFrom builds [Params] from the import configuration.
func ParamsFrom(cfg shared.ImportConfig) (Params, error) {
	mode, err := dates.ParseMode(cfg.PlayerDateMode)
	if err != nil {
		return Params{}, err
	}
	return Params{
		MinPlayers:      cfg.MinPlayers,
		MinPlaceholders: cfg.MinPlaceholders,
		YouthPrefixes:   cfg.YouthPrefixes,
		DateMode:        mode,
	}, nil
}

// Result is the output of [Engine.Reconcile].
type Result struct {
	Clubs []*models.Club
	Rows  []RowOutcome
}

// Teams returns the teams of all clubs in encounter order.
func (r *Result) Teams() []*models.Team {
	var teams []*models.Team
	for _, c := range r.Clubs {
		teams = append(teams, c.Teams()...)
	}
	return teams
}

// TeamFileID names a team file. Youth teams are named "{team} {club}",
// every other team "{club} {team}".
func TeamFileID(club, team string, youthPrefixes []string) string {
	club, team = strings.TrimSpace(club), strings.TrimSpace(team)
	for _, prefix := range youthPrefixes {
		if prefix != "" && strings.HasPrefix(team, prefix) {
			return team + " " + club
		}
	}
	return club + " " + team
}

type teamKey struct {
	club, team string
}

type pendingTeam struct {
	row     tabular.TeamRow
	players []*models.Player
}

// Reconcile joins player rows to team rows on (club, team) and builds one
// [models.Club] per club, in encounter order.
//
// The first team row with the same club and team wins. A team exists as soon as
// one player row matches it, even if that player is then dropped. Rows are never
// modified; running twice on the same input yields the same result.
func (e *Engine) Reconcile(players []tabular.PlayerRow, teams []tabular.TeamRow, params Params) *Result {
	result := &Result{Rows: make([]RowOutcome, 0, len(players))}

	var clubOrder []string
	clubTeams := make(map[string][]teamKey)
	pending := make(map[teamKey]*pendingTeam)

	for _, prow := range players {
		outcome := RowOutcome{Index: prow.Index, Club: prow.Club, Team: prow.Team}

		match := -1
		for j, trow := range teams {
			if trow.Club == prow.Club && trow.Team == prow.Team {
				match = j
				break
			}
		}
		if match < 0 {
			e.logger.Warn("player row has no matching team", "row", prow.Index, "club", prow.Club, "team", prow.Team)
			outcome.Status = StatusNoTeam
			result.Rows = append(result.Rows, outcome)
			continue
		}

		key := teamKey{club: prow.Club, team: prow.Team}
		pt, ok := pending[key]
		if !ok {
			pt = &pendingTeam{row: teams[match]}
			pending[key] = pt
			if _, seen := clubTeams[key.club]; !seen {
				clubOrder = append(clubOrder, key.club)
			}
			clubTeams[key.club] = append(clubTeams[key.club], key)
		}

		player, status, reason := e.buildPlayer(prow, params.DateMode)
		if status != StatusAccepted {
			e.logger.Warn("player row dropped", "row", prow.Index, "team", prow.Team, "status", status, "reason", reason)
			outcome.Status, outcome.Reason = status, reason
			result.Rows = append(result.Rows, outcome)
			continue
		}

		pt.players = append(pt.players, player)
		outcome.Status = StatusAccepted
		result.Rows = append(result.Rows, outcome)
	}

	for _, club := range clubOrder {
		keys := clubTeams[club]
		built := make([]*models.Team, 0, len(keys))
		for _, key := range keys {
			built = append(built, finishTeam(pending[key], params))
		}

		first := pending[keys[0]].row
		result.Clubs = append(result.Clubs, models.NewClub(club, models.ClubInfo{
			ShortName: first.ClubShort,
			Location:  first.Location,
		}, built))
	}
	return result
}

func (e *Engine) buildPlayer(row tabular.PlayerRow, mode dates.Mode) (*models.Player, RowStatus, string) {
	birth, err := e.normalizer.Parse(row.BirthDate, mode)
	if err != nil {
		return nil, StatusBadDate, err.Error()
	}

	p := models.NewPlayer(models.PlayerFields{
		Surname:     row.Surname,
		GivenName:   row.GivenName,
		BirthDate:   birth,
		AgeClass:    row.AgeClass,
		License:     row.License,
		Club:        row.Club,
		DisplayClub: row.DisplayClub,
	})
	if !p.Valid() {
		return nil, StatusInvalid, "surname and given name are required"
	}
	return p, StatusAccepted, ""
}

// finishTeam pads the roster with placeholders and names the team.
func finishTeam(pt *pendingTeam, params Params) *models.Team {
	players := pt.players[:len(pt.players):len(pt.players)]
	count := len(players)

	added := 0
	for i := 1; i <= params.MinPlayers-count; i++ {
		players = append(players, models.NewPlaceholder(i))
		added++
	}
	for i := added + 1; i <= params.MinPlaceholders; i++ {
		players = append(players, models.NewPlaceholder(i))
	}

	row := pt.row
	id := TeamFileID(row.Club, row.Team, params.YouthPrefixes)
	meta := models.NewTeamMetadata(models.TeamMetadata{
		Name:            id,
		LeagueClass:     row.LeagueClass,
		League:          row.League,
		District:        row.District,
		Captain:         row.Captain,
		Supervisor:      row.Supervisor,
		ClubNumber:      row.ClubNumber,
		LeagueNumber:    row.LeagueNumber,
		DeclaredPlayers: max(count, params.MinPlayers),
		ClubName:        row.Club,
		ClubShortName:   row.ClubShort,
	})
	return models.NewTeam(id, meta, players)
}
