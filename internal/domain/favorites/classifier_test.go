package favorites

import (
	"testing"

	"github.com/preston-bernstein/sports-page-service/internal/domain/games"
)

func game(id string, teamIDs ...string) games.Game {
	g := games.Game{ID: id}
	sides := []games.HomeAway{games.Away, games.Home}
	for i, tid := range teamIDs {
		g.Teams = append(g.Teams, games.TeamEntry{TeamID: tid, HomeAway: sides[i%2]})
	}
	return g
}

func TestSplitIsBipartition(t *testing.T) {
	gs := []games.Game{
		game("g1", "1", "2"),
		game("g2", "3", "4"),
		game("g3", "5", "1"),
		game("g4"),
	}
	set := NewSet(NewKey("nba", "1"), NewKey("nhl", "3"))

	p := Split(gs, "nba", set)

	if len(p.Favorites)+len(p.Others) != len(gs) {
		t.Fatalf("expected every game in exactly one side, got %d+%d", len(p.Favorites), len(p.Others))
	}
	seen := map[string]int{}
	for _, g := range append(append([]games.Game{}, p.Favorites...), p.Others...) {
		seen[g.ID]++
	}
	for _, g := range gs {
		if seen[g.ID] != 1 {
			t.Fatalf("game %s appeared %d times", g.ID, seen[g.ID])
		}
	}
	if len(p.Favorites) != 2 || p.Favorites[0].ID != "g1" || p.Favorites[1].ID != "g3" {
		t.Fatalf("unexpected favorites %+v", p.Favorites)
	}
	if p.Others[0].ID != "g2" || p.Others[1].ID != "g4" {
		t.Fatalf("expected others in input order, got %+v", p.Others)
	}
}

func TestSplitKeysAreLeagueScoped(t *testing.T) {
	gs := []games.Game{game("g1", "3", "4")}
	p := Split(gs, "nba", NewSet(NewKey("nhl", "3")))
	if len(p.Favorites) != 0 {
		t.Fatalf("expected nhl favorite not to match nba game")
	}
}

func TestSplitEmptySet(t *testing.T) {
	p := Split([]games.Game{game("g1", "1", "2")}, "nba", Set{})
	if len(p.Favorites) != 0 || len(p.Others) != 1 {
		t.Fatalf("expected all games in others, got %+v", p)
	}
	if p.Favorites == nil {
		t.Fatalf("expected non-nil favorites slice")
	}
}
