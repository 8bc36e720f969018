package feed

import (
	"encoding/json"
	"strings"

	"github.com/preston-bernstein/sports-page-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-page-service/internal/domain/standings"
)

const lastTenStat = "Last Ten Games"

type groupRecord struct {
	Name         flexString `json:"name"`
	Abbreviation flexString `json:"abbreviation"`
	Standings    struct {
		Entries []json.RawMessage `json:"entries"`
	} `json:"standings"`
}

type entryRecord struct {
	Team  teamRecord   `json:"team"`
	Stats []statRecord `json:"stats"`
}

type statRecord struct {
	Name         flexString `json:"name"`
	Type         flexString `json:"type"`
	Value        flexFloat  `json:"value"`
	DisplayValue flexString `json:"displayValue"`
}

// statLookup indexes an entry's stats by name. The first stat with a name wins.
type statLookup map[string]statRecord

func newStatLookup(stats []statRecord) statLookup {
	out := make(statLookup, len(stats))
	for _, s := range stats {
		name := s.Name.String()
		if name == "" {
			continue
		}
		if _, dup := out[name]; !dup {
			out[name] = s
		}
	}
	return out
}

// text returns the display value of the first named stat present, falling back to the raw value.
func (l statLookup) text(names ...string) (string, bool) {
	for _, n := range names {
		s, ok := l[n]
		if !ok {
			continue
		}
		if s.DisplayValue != "" {
			return s.DisplayValue.String(), true
		}
		if s.Value.valid {
			return formatFloat(s.Value.value), true
		}
	}
	return "", false
}

func (l statLookup) integer(names ...string) (int, bool) {
	for _, n := range names {
		s, ok := l[n]
		if !ok {
			continue
		}
		if v, ok := parseInt(strings.TrimPrefix(s.DisplayValue.String(), "+")); ok {
			return v, true
		}
		if s.Value.valid {
			return int(s.Value.value), true
		}
	}
	return 0, false
}

func (l statLookup) optionalInt(names ...string) *int {
	v, ok := l.integer(names...)
	if !ok {
		return nil
	}
	return &v
}

func (l statLookup) optionalText(names ...string) *string {
	v, ok := l.text(names...)
	if !ok {
		return nil
	}
	return &v
}

// AdaptStandings maps each conference or division to a Group with unranked rows.
// Only the optional fields the league's sport displays are populated.
func AdaptStandings(league leagues.League, raw Standings) []standings.Group {
	out := make([]standings.Group, 0, len(raw.Children))
	for _, child := range raw.Children {
		var g groupRecord
		_ = json.Unmarshal(child, &g)
		name := g.Name.String()
		if name == "" {
			name = g.Abbreviation.String()
		}
		rows := make([]standings.Row, 0, len(g.Standings.Entries))
		for _, entry := range g.Standings.Entries {
			rows = append(rows, mapEntry(league.Sport, entry))
		}
		out = append(out, standings.Group{Name: name, Rows: rows})
	}
	return out
}

func mapEntry(sport leagues.Sport, raw json.RawMessage) standings.Row {
	var e entryRecord
	_ = json.Unmarshal(raw, &e)
	stats := newStatLookup(e.Stats)

	row := standings.Row{
		TeamID:       e.Team.ID.String(),
		Abbreviation: e.Team.Abbreviation.String(),
		ShortName:    e.Team.ShortDisplayName.String(),
		LogoRef:      logoRef(e.Team),
		Sport:        sport,
	}
	row.Wins, _ = stats.integer("wins")
	row.Losses, _ = stats.integer("losses")
	row.WinPct, _ = stats.text("winPercent")

	uses := func(key string) bool { return standings.Uses(sport, key) }
	if uses(standings.KeyTies) {
		row.Ties = stats.optionalInt("ties")
	}
	if uses(standings.KeyDraws) {
		row.Draws = stats.optionalInt("draws", "ties")
	}
	if uses(standings.KeyGamesBehind) {
		row.GamesBehind = stats.optionalText("gamesBehind")
	}
	if uses(standings.KeyStreak) {
		row.Streak = stats.optionalText("streak")
	}
	if uses(standings.KeyLastTen) {
		if v, ok := stats.text(lastTenStat); ok {
			v, _, _ = strings.Cut(v, ",")
			v = strings.TrimSpace(v)
			row.LastTen = &v
		}
	}
	if uses(standings.KeyOTLosses) {
		row.OTLosses = stats.optionalInt("OTLosses", "otLosses")
	}
	if uses(standings.KeyPoints) {
		row.Points = stats.optionalInt("points")
	}
	if uses(standings.KeyPointsFor) || uses(standings.KeyGoalsFor) {
		row.PointsFor = stats.optionalInt("pointsFor")
	}
	if uses(standings.KeyPointsAgainst) || uses(standings.KeyGoalsAgainst) {
		row.PointsAgainst = stats.optionalInt("pointsAgainst")
	}
	if uses(standings.KeyPointDifferential) {
		row.PointDifferential = stats.optionalText("pointDifferential", "differential")
	}
	return row
}

func logoRef(t teamRecord) string {
	for _, l := range t.Logos {
		if l.Href != "" {
			return l.Href.String()
		}
	}
	return t.Logo.String()
}
