package ranking

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/preston-bernstein/sports-page-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-page-service/internal/domain/standings"
)

// Rank returns a sorted copy of rows. Equal rows keep their input order.
//
// Hockey rows compare by points when both rows carry points. Everything else compares by
// win percentage, then wins, both descending.
func Rank(rows []standings.Row, sport leagues.Sport) []standings.Row {
	out := make([]standings.Row, len(rows))
	copy(out, rows)
	cmp := compareDefault
	if sport == leagues.SportHockey {
		cmp = compareHockey
	}
	sort.SliceStable(out, func(i, j int) bool {
		return cmp(out[i], out[j]) < 0
	})
	return out
}

// RankGroups ranks the rows of every group, leaving group order alone.
func RankGroups(groups []standings.Group, sport leagues.Sport) []standings.Group {
	out := make([]standings.Group, len(groups))
	for i, g := range groups {
		out[i] = standings.Group{Name: g.Name, Rows: Rank(g.Rows, sport)}
	}
	return out
}

func compareHockey(a, b standings.Row) int {
	if a.Points != nil && b.Points != nil {
		return descending(float64(*a.Points), float64(*b.Points))
	}
	return compareDefault(a, b)
}

func compareDefault(a, b standings.Row) int {
	if c := descending(winPct(a), winPct(b)); c != 0 {
		return c
	}
	return descending(float64(a.Wins), float64(b.Wins))
}

func descending(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}

// winPct treats a missing or unparseable percentage as zero.
func winPct(r standings.Row) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.WinPct), 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return v
}
