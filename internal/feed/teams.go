package feed

import (
	"encoding/json"

	"github.com/preston-bernstein/sports-page-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-page-service/internal/domain/teams"
)

type rosterEntry struct {
	Team teamRecord `json:"team"`
}

// AdaptTeams maps the first sport/league roster of the payload, in feed order.
// Entries without a team id are skipped.
func AdaptTeams(_ leagues.League, raw Teams) []teams.Team {
	if len(raw.Sports) == 0 || len(raw.Sports[0].Leagues) == 0 {
		return []teams.Team{}
	}
	entries := raw.Sports[0].Leagues[0].Teams
	out := make([]teams.Team, 0, len(entries))
	for _, entry := range entries {
		var e rosterEntry
		_ = json.Unmarshal(entry, &e)
		if e.Team.ID == "" {
			continue
		}
		out = append(out, teams.Team{
			ID:           e.Team.ID.String(),
			Abbreviation: e.Team.Abbreviation.String(),
			ShortName:    e.Team.ShortDisplayName.String(),
			LogoRef:      logoRef(e.Team),
		})
	}
	return out
}
