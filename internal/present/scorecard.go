package present

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/preston-bernstein/sports-page-service/internal/domain/games"
	"github.com/preston-bernstein/sports-page-service/internal/domain/leagues"
)

const (
	statusFinal    = "FINAL"
	placeholder    = "—"
	missingPeriod  = "-"
	kickoffLayout  = "3:04 PM"
	cardDateLayout = "Jan 2"
)

// ScoreCard is the display model for one game.
type ScoreCard struct {
	GameID   string       `json:"gameId"`
	Favorite bool         `json:"favorite"`
	Live     bool         `json:"live"`
	Date     string       `json:"date"`
	Status   string       `json:"status"`
	Rows     [2]CardRow   `json:"rows"`
	OddsLine string       `json:"oddsLine,omitempty"`
	Venue    string       `json:"venue,omitempty"`
	Headline string       `json:"headline,omitempty"`
	BoxScore *BoxScore    `json:"boxScore,omitempty"`
	Leaders  []LeaderLine `json:"leaders,omitempty"`
}

// CardRow is one team's line on a card, away first.
type CardRow struct {
	TeamID       string `json:"teamId"`
	Abbreviation string `json:"abbreviation"`
	ShortName    string `json:"shortName"`
	Record       string `json:"record,omitempty"`
	Moneyline    string `json:"moneyline,omitempty"`
	Score        string `json:"score"`
	Winner       bool   `json:"winner"`
}

// BoxScore holds per-period scores, away row first.
type BoxScore struct {
	Labels []string    `json:"labels"`
	Rows   [2][]string `json:"rows"`
	Totals [2]string   `json:"totals"`
}

// LeaderLine is a rendered statistical leader.
type LeaderLine struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Value    string `json:"value"`
}

// BuildScoreCard renders a game in loc. ok is false when the game lacks a home or away
// team, in which case the game is not shown.
func BuildScoreCard(g games.Game, sport leagues.Sport, favorite bool, loc *time.Location) (ScoreCard, bool) {
	home, away, ok := g.Matchup()
	if !ok {
		return ScoreCard{}, false
	}
	if loc == nil {
		loc = time.Local
	}

	card := ScoreCard{
		GameID:   g.ID,
		Favorite: favorite,
		Live:     g.IsLive(),
		Date:     g.ScheduledAt.In(loc).Format(cardDateLayout),
		Status:   statusText(g, loc),
		Headline: g.Headline,
	}
	if favorite {
		card.Venue = g.Venue
	}

	var moneyline [2]string
	if g.IsNotStarted() {
		card.OddsLine, _ = FormatLine(g.Odds)
		moneyline, _ = FormatMoneyline(g.Odds)
	}
	for i, e := range [2]games.TeamEntry{away, home} {
		card.Rows[i] = CardRow{
			TeamID:       e.TeamID,
			Abbreviation: e.Abbreviation,
			ShortName:    e.ShortName,
			Record:       e.Record,
			Moneyline:    moneyline[i],
			Score:        scoreText(g, e),
			Winner:       e.IsWinner(),
		}
	}

	if favorite && (g.IsLive() || g.IsCompleted()) && g.PeriodCount() > 0 {
		card.BoxScore = buildBoxScore(sport, away, home, g.PeriodCount())
	}
	if favorite && g.IsCompleted() {
		card.Leaders = leaderLines(g.DisplayLeaders())
	}
	return card, true
}

func statusText(g games.Game, loc *time.Location) string {
	switch {
	case g.IsCompleted():
		return statusFinal
	case g.IsLive():
		return g.StatusDetail
	}
	return g.ScheduledAt.In(loc).Format(kickoffLayout)
}

func scoreText(g games.Game, e games.TeamEntry) string {
	if g.IsNotStarted() || e.Score == nil {
		return placeholder
	}
	return strconv.Itoa(*e.Score)
}

func buildBoxScore(sport leagues.Sport, away, home games.TeamEntry, periods int) *BoxScore {
	box := &BoxScore{Labels: PeriodLabels(sport, periods)}
	for i, e := range [2]games.TeamEntry{away, home} {
		cells := make([]string, periods)
		for p := range cells {
			cells[p] = missingPeriod
			if p < len(e.PeriodScores) && e.PeriodScores[p] != nil {
				cells[p] = formatNumber(*e.PeriodScores[p])
			}
		}
		box.Rows[i] = cells
		if e.Score != nil {
			box.Totals[i] = strconv.Itoa(*e.Score)
		}
	}
	return box
}

func leaderLines(leaders []games.Leader) []LeaderLine {
	out := make([]LeaderLine, 0, len(leaders))
	for _, l := range leaders {
		if l.Top == nil {
			continue
		}
		out = append(out, LeaderLine{
			Category: SplitCamel(l.Category),
			Name:     l.Top.Name,
			Value:    l.Top.Value,
		})
	}
	return out
}

// SplitCamel inserts a space before each upper-case letter, so "passingYards" becomes "passing Yards".
func SplitCamel(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
