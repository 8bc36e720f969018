package present

import (
	"strconv"

	"github.com/preston-bernstein/sports-page-service/internal/domain/leagues"
)

// PeriodLabels returns column headers for count periods of a sport.
// Non-positive counts yield an empty slice.
func PeriodLabels(sport leagues.Sport, count int) []string {
	if count <= 0 {
		return []string{}
	}
	out := make([]string, count)
	for i := range out {
		out[i] = periodLabel(sport, i+1)
	}
	return out
}

func periodLabel(sport leagues.Sport, n int) string {
	switch sport {
	case leagues.SportHockey:
		return regulationOrOvertime("P", 3, n, true)
	case leagues.SportBasketball:
		return regulationOrOvertime("Q", 4, n, true)
	case leagues.SportFootball:
		return regulationOrOvertime("Q", 4, n, false)
	case leagues.SportSoccer:
		if n == 1 {
			return "1H"
		}
		return "2H"
	}
	return strconv.Itoa(n)
}

func regulationOrOvertime(prefix string, regulation, n int, numbered bool) string {
	if n <= regulation {
		return prefix + strconv.Itoa(n)
	}
	extra := n - regulation
	if extra == 1 || !numbered {
		return "OT"
	}
	return "OT" + strconv.Itoa(extra)
}
