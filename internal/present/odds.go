package present

import (
	"strconv"
	"strings"

	"github.com/preston-bernstein/sports-page-service/internal/domain/games"
)

const lineSeparator = "  ·  "

// FormatLine renders the spread details and over/under as one line.
// ok is false when there is nothing to show.
func FormatLine(o *games.Odds) (string, bool) {
	if o == nil {
		return "", false
	}
	parts := make([]string, 0, 2)
	if d := strings.TrimSpace(o.Details); d != "" {
		parts = append(parts, d)
	}
	if o.OverUnder != nil && *o.OverUnder != 0 {
		parts = append(parts, "O/U "+formatNumber(*o.OverUnder))
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, lineSeparator), true
}

// FormatMoneyline renders [away, home] moneylines with explicit signs.
// A missing side is an empty string; ok is false when both are missing.
func FormatMoneyline(o *games.Odds) ([2]string, bool) {
	var out [2]string
	if o == nil || (o.AwayMoneyline == nil && o.HomeMoneyline == nil) {
		return out, false
	}
	if o.AwayMoneyline != nil {
		out[0] = signed(*o.AwayMoneyline)
	}
	if o.HomeMoneyline != nil {
		out[1] = signed(*o.HomeMoneyline)
	}
	return out, true
}

func signed(v int) string {
	if v > 0 {
		return "+" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
