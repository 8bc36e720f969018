package present

import (
	"reflect"
	"testing"
	"time"

	"github.com/preston-bernstein/sports-page-service/internal/domain/games"
	"github.com/preston-bernstein/sports-page-service/internal/domain/leagues"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestPeriodLabels(t *testing.T) {
	cases := []struct {
		sport leagues.Sport
		count int
		want  []string
	}{
		{leagues.SportHockey, 5, []string{"P1", "P2", "P3", "OT", "OT2"}},
		{leagues.SportBasketball, 6, []string{"Q1", "Q2", "Q3", "Q4", "OT", "OT2"}},
		{leagues.SportFootball, 6, []string{"Q1", "Q2", "Q3", "Q4", "OT", "OT"}},
		{leagues.SportSoccer, 2, []string{"1H", "2H"}},
		{leagues.SportSoccer, 4, []string{"1H", "2H", "2H", "2H"}},
		{leagues.SportBaseball, 3, []string{"1", "2", "3"}},
		{leagues.SportHockey, 0, []string{}},
		{leagues.SportHockey, -1, []string{}},
	}
	for _, tc := range cases {
		got := PeriodLabels(tc.sport, tc.count)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s/%d: expected %v, got %v", tc.sport, tc.count, tc.want, got)
		}
	}
}

func TestFormatMoneyline(t *testing.T) {
	got, ok := FormatMoneyline(&games.Odds{AwayMoneyline: intPtr(150), HomeMoneyline: intPtr(-200)})
	if !ok || got != [2]string{"+150", "-200"} {
		t.Fatalf("unexpected moneyline %v ok=%v", got, ok)
	}

	if _, ok := FormatMoneyline(&games.Odds{}); ok {
		t.Fatalf("expected absent moneyline for empty odds")
	}
	if _, ok := FormatMoneyline(nil); ok {
		t.Fatalf("expected absent moneyline for nil odds")
	}

	got, ok = FormatMoneyline(&games.Odds{HomeMoneyline: intPtr(110)})
	if !ok || got != [2]string{"", "+110"} {
		t.Fatalf("expected empty away slot, got %v", got)
	}
}

func TestFormatLine(t *testing.T) {
	cases := []struct {
		odds *games.Odds
		want string
		ok   bool
	}{
		{&games.Odds{Details: "LAL -3.5", OverUnder: floatPtr(220.5)}, "LAL -3.5  ·  O/U 220.5", true},
		{&games.Odds{Details: "EVEN"}, "EVEN", true},
		{&games.Odds{OverUnder: floatPtr(47)}, "O/U 47", true},
		{&games.Odds{OverUnder: floatPtr(0)}, "", false},
		{&games.Odds{}, "", false},
		{nil, "", false},
	}
	for _, tc := range cases {
		got, ok := FormatLine(tc.odds)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("expected %q/%v, got %q/%v", tc.want, tc.ok, got, ok)
		}
	}
}

func TestSplitCamel(t *testing.T) {
	cases := map[string]string{
		"passingYards":  "passing Yards",
		"points":        "points",
		"RushingYards":  "Rushing Yards",
		"":              "",
		"goalsAgainstX": "goals Against X",
	}
	for in, want := range cases {
		if got := SplitCamel(in); got != want {
			t.Fatalf("%q: expected %q, got %q", in, want, got)
		}
	}
}

func cardGame(status games.Status) games.Game {
	return games.Game{
		ID:           "401",
		ScheduledAt:  time.Date(2024, 10, 13, 23, 30, 0, 0, time.UTC),
		Status:       status,
		StatusDetail: "3rd 12:04",
		Venue:        "Crypto.com Arena",
		Teams: []games.TeamEntry{
			{TeamID: "13", Abbreviation: "LAL", HomeAway: games.Home, Score: intPtr(101), PeriodScores: []*float64{floatPtr(25), floatPtr(30), floatPtr(20), floatPtr(26)}},
			{TeamID: "2", Abbreviation: "BOS", HomeAway: games.Away, Score: intPtr(99), PeriodScores: []*float64{floatPtr(20), floatPtr(30), nil}},
		},
		Odds: &games.Odds{Details: "LAL -2", OverUnder: floatPtr(221), AwayMoneyline: intPtr(120), HomeMoneyline: intPtr(-140)},
		Leaders: []games.Leader{
			{Category: "points", Top: &games.Performer{Name: "A. Davis", Value: "31"}},
			{Category: "rebounds"},
			{Category: "assistsPerGame", Top: &games.Performer{Name: "L. James", Value: "11"}},
			{Category: "steals", Top: &games.Performer{Name: "X", Value: "4"}},
		},
	}
}

func TestBuildScoreCardSkipsIncompleteMatchup(t *testing.T) {
	g := cardGame(games.StatusLive)
	g.Teams = g.Teams[:1]
	if _, ok := BuildScoreCard(g, leagues.SportBasketball, true, time.UTC); ok {
		t.Fatalf("expected card to be skipped")
	}
}

func TestBuildScoreCardNotStartedShowsOdds(t *testing.T) {
	card, ok := BuildScoreCard(cardGame(games.StatusNotStarted), leagues.SportBasketball, false, time.UTC)
	if !ok {
		t.Fatalf("expected card")
	}
	if card.OddsLine != "LAL -2  ·  O/U 221" {
		t.Fatalf("unexpected odds line %q", card.OddsLine)
	}
	if card.Rows[0].Abbreviation != "BOS" || card.Rows[0].Moneyline != "+120" || card.Rows[1].Moneyline != "-140" {
		t.Fatalf("expected away row first with moneylines, got %+v", card.Rows)
	}
	if card.Rows[0].Score != placeholder {
		t.Fatalf("expected placeholder score before start, got %s", card.Rows[0].Score)
	}
	if card.Status != "11:30 PM" {
		t.Fatalf("expected kickoff time, got %s", card.Status)
	}
	if card.Venue != "" || card.BoxScore != nil {
		t.Fatalf("expected no venue or box score for non-favorite")
	}
}

func TestBuildScoreCardLiveFavoriteShowsBoxScore(t *testing.T) {
	card, _ := BuildScoreCard(cardGame(games.StatusLive), leagues.SportBasketball, true, time.UTC)
	if card.OddsLine != "" || card.Rows[0].Moneyline != "" {
		t.Fatalf("expected no odds once started")
	}
	if card.Status != "3rd 12:04" || !card.Live {
		t.Fatalf("expected live detail, got %s", card.Status)
	}
	if card.BoxScore == nil {
		t.Fatalf("expected box score")
	}
	if !reflect.DeepEqual(card.BoxScore.Labels, []string{"Q1", "Q2", "Q3", "Q4"}) {
		t.Fatalf("unexpected labels %v", card.BoxScore.Labels)
	}
	if !reflect.DeepEqual(card.BoxScore.Rows[0], []string{"20", "30", "-", "-"}) {
		t.Fatalf("unexpected away periods %v", card.BoxScore.Rows[0])
	}
	if card.BoxScore.Totals != [2]string{"99", "101"} {
		t.Fatalf("unexpected totals %v", card.BoxScore.Totals)
	}
	if card.Leaders != nil {
		t.Fatalf("expected no leaders while live")
	}
}

func TestBuildScoreCardCompletedFavoriteShowsLeaders(t *testing.T) {
	card, _ := BuildScoreCard(cardGame(games.StatusCompleted), leagues.SportBasketball, true, time.UTC)
	if card.Status != statusFinal {
		t.Fatalf("expected FINAL, got %s", card.Status)
	}
	want := []LeaderLine{
		{Category: "points", Name: "A. Davis", Value: "31"},
		{Category: "assists Per Game", Name: "L. James", Value: "11"},
	}
	if !reflect.DeepEqual(card.Leaders, want) {
		t.Fatalf("unexpected leaders %+v", card.Leaders)
	}
	if card.Venue != "Crypto.com Arena" {
		t.Fatalf("expected venue for favorite")
	}
}

func TestBuildScoreCardCompletedOtherHidesExtras(t *testing.T) {
	card, _ := BuildScoreCard(cardGame(games.StatusCompleted), leagues.SportBasketball, false, time.UTC)
	if card.BoxScore != nil || card.Leaders != nil {
		t.Fatalf("expected no box score or leaders for non-favorite")
	}
	if card.Rows[1].Score != "101" {
		t.Fatalf("expected home score, got %s", card.Rows[1].Score)
	}
}
