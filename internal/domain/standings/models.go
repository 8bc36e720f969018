package standings

import (
	"strconv"

	"github.com/preston-bernstein/sports-page-service/internal/domain/leagues"
)

// Field keys name the optional standings values a sport can display.
const (
	KeyWins              = "w"
	KeyLosses            = "l"
	KeyTies              = "t"
	KeyDraws             = "d"
	KeyWinPct            = "pct"
	KeyGamesBehind       = "gb"
	KeyLastTen           = "l10"
	KeyStreak            = "streak"
	KeyOTLosses          = "otl"
	KeyPoints            = "pts"
	KeyPointsFor         = "pf"
	KeyPointsAgainst     = "pa"
	KeyGoalsFor          = "gf"
	KeyGoalsAgainst      = "ga"
	KeyPointDifferential = "gd"
)

// Row is one team's standings line. Optional fields stay nil unless the row's sport uses them.
type Row struct {
	TeamID            string        `json:"teamId"`
	Abbreviation      string        `json:"abbreviation"`
	ShortName         string        `json:"shortName"`
	LogoRef           string        `json:"logoRef,omitempty"`
	Sport             leagues.Sport `json:"sport"`
	Wins              int           `json:"wins"`
	Losses            int           `json:"losses"`
	WinPct            string        `json:"winPct,omitempty"`
	Ties              *int          `json:"ties,omitempty"`
	Draws             *int          `json:"draws,omitempty"`
	GamesBehind       *string       `json:"gamesBehind,omitempty"`
	Streak            *string       `json:"streak,omitempty"`
	LastTen           *string       `json:"lastTen,omitempty"`
	OTLosses          *int          `json:"otLosses,omitempty"`
	Points            *int          `json:"points,omitempty"`
	PointsFor         *int          `json:"pointsFor,omitempty"`
	PointsAgainst     *int          `json:"pointsAgainst,omitempty"`
	PointDifferential *string       `json:"pointDifferential,omitempty"`
}

// Group is a conference or division and its rows.
type Group struct {
	Name string `json:"name"`
	Rows []Row  `json:"rows"`
}

// Column pairs a table header with the row field it shows.
type Column struct {
	Header string `json:"header"`
	Key    string `json:"key"`
}

var columnsBySport = map[leagues.Sport][]Column{
	leagues.SportBasketball: {{"W", KeyWins}, {"L", KeyLosses}, {"PCT", KeyWinPct}, {"GB", KeyGamesBehind}, {"L10", KeyLastTen}, {"STRK", KeyStreak}},
	leagues.SportBaseball:   {{"W", KeyWins}, {"L", KeyLosses}, {"PCT", KeyWinPct}, {"GB", KeyGamesBehind}, {"L10", KeyLastTen}, {"STRK", KeyStreak}},
	leagues.SportFootball:   {{"W", KeyWins}, {"L", KeyLosses}, {"T", KeyTies}, {"PCT", KeyWinPct}, {"PF", KeyPointsFor}, {"PA", KeyPointsAgainst}},
	leagues.SportHockey:     {{"W", KeyWins}, {"L", KeyLosses}, {"OTL", KeyOTLosses}, {"PTS", KeyPoints}, {"L10", KeyLastTen}, {"STRK", KeyStreak}},
	leagues.SportSoccer:     {{"W", KeyWins}, {"L", KeyLosses}, {"D", KeyDraws}, {"PTS", KeyPoints}, {"GF", KeyGoalsFor}, {"GA", KeyGoalsAgainst}, {"GD", KeyPointDifferential}},
}

var defaultColumns = []Column{{"W", KeyWins}, {"L", KeyLosses}}

// Columns returns the table layout for a sport.
func Columns(sport leagues.Sport) []Column {
	cols, ok := columnsBySport[sport]
	if !ok {
		cols = defaultColumns
	}
	out := make([]Column, len(cols))
	copy(out, cols)
	return out
}

// Uses reports whether a sport displays the given field key.
func Uses(sport leagues.Sport, key string) bool {
	for _, c := range Columns(sport) {
		if c.Key == key {
			return true
		}
	}
	return false
}

// Cell returns the display text for a column key; ok is false when the value is absent.
func (r Row) Cell(key string) (string, bool) {
	switch key {
	case KeyWins:
		return strconv.Itoa(r.Wins), true
	case KeyLosses:
		return strconv.Itoa(r.Losses), true
	case KeyWinPct:
		return r.WinPct, r.WinPct != ""
	case KeyTies:
		return intCell(r.Ties)
	case KeyDraws:
		return intCell(r.Draws)
	case KeyGamesBehind:
		return stringCell(r.GamesBehind)
	case KeyLastTen:
		return stringCell(r.LastTen)
	case KeyStreak:
		return stringCell(r.Streak)
	case KeyOTLosses:
		return intCell(r.OTLosses)
	case KeyPoints:
		return intCell(r.Points)
	case KeyPointsFor, KeyGoalsFor:
		return intCell(r.PointsFor)
	case KeyPointsAgainst, KeyGoalsAgainst:
		return intCell(r.PointsAgainst)
	case KeyPointDifferential:
		return stringCell(r.PointDifferential)
	}
	return "", false
}

func intCell(v *int) (string, bool) {
	if v == nil {
		return "", false
	}
	return strconv.Itoa(*v), true
}

func stringCell(v *string) (string, bool) {
	if v == nil {
		return "", false
	}
	return *v, true
}
