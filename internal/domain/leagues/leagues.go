package leagues

import "strings"

// Sport tags the period structure and standings layout a league uses.
type Sport string

const (
	SportBasketball Sport = "basketball"
	SportFootball   Sport = "football"
	SportBaseball   Sport = "baseball"
	SportHockey     Sport = "hockey"
	SportSoccer     Sport = "soccer"
)

// League is a supported competition. Values are defined once in the registry below.
type League struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	FeedPath          string `json:"feedPath"`
	Sport             Sport  `json:"sport"`
	ExtendedRangeDays int    `json:"extendedRangeDays"`
	LogoRef           string `json:"logoRef,omitempty"`
}

// Extended reports whether the league is fetched and bucketed by calendar day over a wide window.
func (l League) Extended() bool {
	return l.ExtendedRangeDays > 0
}

// WindowDays is how many days either side of today the scoreboard is fetched for.
func (l League) WindowDays() int {
	if l.Extended() {
		return l.ExtendedRangeDays
	}
	return 1
}

var registry = [...]League{
	{ID: "nba", Name: "NBA", FeedPath: "basketball/nba", Sport: SportBasketball, LogoRef: "https://a.espncdn.com/i/teamlogos/leagues/500/nba.png"},
	{ID: "nfl", Name: "NFL", FeedPath: "football/nfl", Sport: SportFootball, LogoRef: "https://a.espncdn.com/i/teamlogos/leagues/500/nfl.png"},
	{ID: "mlb", Name: "MLB", FeedPath: "baseball/mlb", Sport: SportBaseball, LogoRef: "https://a.espncdn.com/i/teamlogos/leagues/500/mlb.png"},
	{ID: "nhl", Name: "NHL", FeedPath: "hockey/nhl", Sport: SportHockey, LogoRef: "https://a.espncdn.com/i/teamlogos/leagues/500/nhl.png"},
	{ID: "epl", Name: "EPL", FeedPath: "soccer/eng.1", Sport: SportSoccer, ExtendedRangeDays: 7},
}

// All returns every supported league in display order.
func All() []League {
	out := make([]League, len(registry))
	copy(out, registry[:])
	return out
}

// IDs returns the ids of every supported league in display order.
func IDs() []string {
	out := make([]string, 0, len(registry))
	for _, l := range registry {
		out = append(out, l.ID)
	}
	return out
}

// Lookup finds a league by id, ignoring case and surrounding whitespace.
func Lookup(id string) (League, bool) {
	id = normalizeID(id)
	for _, l := range registry {
		if l.ID == id {
			return l, true
		}
	}
	return League{}, false
}

// Known reports whether id names a supported league.
func Known(id string) bool {
	_, ok := Lookup(id)
	return ok
}

// Filter resolves ids to leagues in the given order, dropping unknown ids and repeats.
func Filter(ids []string) []League {
	out := make([]League, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		l, ok := Lookup(id)
		if !ok {
			continue
		}
		if _, dup := seen[l.ID]; dup {
			continue
		}
		seen[l.ID] = struct{}{}
		out = append(out, l)
	}
	return out
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
