package games

import "time"

// Status is the lifecycle state of a game.
type Status string

const (
	StatusNotStarted Status = "notStarted"
	StatusLive       Status = "live"
	StatusCompleted  Status = "completed"
)

// HomeAway marks which side of the matchup a team entry is on.
type HomeAway string

const (
	Home HomeAway = "home"
	Away HomeAway = "away"
)

// maxDisplayLeaders caps how many leader categories are shown per game.
const maxDisplayLeaders = 3

// TeamEntry is one team's participation in a game.
type TeamEntry struct {
	TeamID       string     `json:"teamId"`
	Abbreviation string     `json:"abbreviation"`
	DisplayName  string     `json:"displayName"`
	ShortName    string     `json:"shortName"`
	Score        *int       `json:"score,omitempty"`
	Winner       *bool      `json:"winner,omitempty"`
	HomeAway     HomeAway   `json:"homeAway"`
	Record       string     `json:"record,omitempty"`
	PeriodScores []*float64 `json:"periodScores"`
}

// IsWinner reports a known win; an absent flag is not a win.
func (e TeamEntry) IsWinner() bool {
	return e.Winner != nil && *e.Winner
}

// Odds holds the betting line for a game as supplied by the feed.
type Odds struct {
	Details       string   `json:"details,omitempty"`
	OverUnder     *float64 `json:"overUnder,omitempty"`
	Spread        *float64 `json:"spread,omitempty"`
	OverOdds      *float64 `json:"overOdds,omitempty"`
	UnderOdds     *float64 `json:"underOdds,omitempty"`
	AwayMoneyline *int     `json:"awayMoneyline,omitempty"`
	HomeMoneyline *int     `json:"homeMoneyline,omitempty"`
	Provider      string   `json:"provider,omitempty"`
}

// Performer is the top individual in a leader category.
type Performer struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Leader is a statistical category with its top performer, when one is known.
type Leader struct {
	Category string     `json:"category"`
	Top      *Performer `json:"top,omitempty"`
}

// Game is a normalized game. It is built once per refresh and never mutated afterwards.
type Game struct {
	ID           string      `json:"id"`
	Name         string      `json:"name,omitempty"`
	ScheduledAt  time.Time   `json:"scheduledAt"`
	Status       Status      `json:"status"`
	StatusDetail string      `json:"statusDetail,omitempty"`
	Venue        string      `json:"venue,omitempty"`
	Teams        []TeamEntry `json:"teams"`
	Odds         *Odds       `json:"odds,omitempty"`
	Headline     string      `json:"headline,omitempty"`
	Leaders      []Leader    `json:"leaders,omitempty"`
}

// Entry returns the team entry on the given side.
func (g Game) Entry(side HomeAway) (TeamEntry, bool) {
	for _, e := range g.Teams {
		if e.HomeAway == side {
			return e, true
		}
	}
	return TeamEntry{}, false
}

// Matchup returns the home and away entries. ok is false when either side is missing,
// in which case callers skip score and heading rendering for the game.
func (g Game) Matchup() (home TeamEntry, away TeamEntry, ok bool) {
	home, hasHome := g.Entry(Home)
	away, hasAway := g.Entry(Away)
	if !hasHome || !hasAway {
		return TeamEntry{}, TeamEntry{}, false
	}
	return home, away, true
}

// TeamIDs lists the ids of every participating team in feed order.
func (g Game) TeamIDs() []string {
	ids := make([]string, 0, len(g.Teams))
	for _, e := range g.Teams {
		if e.TeamID != "" {
			ids = append(ids, e.TeamID)
		}
	}
	return ids
}

// DisplayLeaders returns at most the first three leader categories.
func (g Game) DisplayLeaders() []Leader {
	if len(g.Leaders) <= maxDisplayLeaders {
		return g.Leaders
	}
	return g.Leaders[:maxDisplayLeaders]
}

// PeriodCount is the larger number of period scores recorded for either side.
func (g Game) PeriodCount() int {
	n := 0
	for _, e := range g.Teams {
		if len(e.PeriodScores) > n {
			n = len(e.PeriodScores)
		}
	}
	return n
}

func (g Game) IsLive() bool       { return g.Status == StatusLive }
func (g Game) IsCompleted() bool  { return g.Status == StatusCompleted }
func (g Game) IsNotStarted() bool { return g.Status == StatusNotStarted }
