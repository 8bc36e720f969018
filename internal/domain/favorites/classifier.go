package favorites

import "github.com/preston-bernstein/sports-page-service/internal/domain/games"

// Partition splits a league's games. Every input game is in exactly one side.
type Partition struct {
	Favorites []games.Game
	Others    []games.Game
}

// Split puts a game in Favorites when any of its teams is favorited in the league.
// Both sides keep input order.
func Split(gs []games.Game, leagueID string, set Set) Partition {
	p := Partition{
		Favorites: make([]games.Game, 0),
		Others:    make([]games.Game, 0, len(gs)),
	}
	for _, g := range gs {
		if IsFavorite(g, leagueID, set) {
			p.Favorites = append(p.Favorites, g)
			continue
		}
		p.Others = append(p.Others, g)
	}
	return p
}

// IsFavorite reports whether any team in the game is in the set for the league.
func IsFavorite(g games.Game, leagueID string, set Set) bool {
	if set.Len() == 0 {
		return false
	}
	for _, id := range g.TeamIDs() {
		if set.Has(leagueID, id) {
			return true
		}
	}
	return false
}
