package bucket

import (
	"sort"
	"strings"
	"time"

	"github.com/preston-bernstein/sports-page-service/internal/domain/games"
	"github.com/preston-bernstein/sports-page-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-page-service/internal/timeutil"
)

const (
	LabelYesterday = "YESTERDAY"
	LabelToday     = "TODAY"
	LabelTomorrow  = "TOMORROW"
)

const dayLabelLayout = "Mon, Jan 2"

// Bucket is a labelled group of games for one display day. Games keep feed order.
type Bucket struct {
	Label string       `json:"label"`
	Date  time.Time    `json:"date"`
	Games []games.Game `json:"games"`
}

// Group assigns every game to exactly one bucket, evaluating calendar days in now's location.
//
// Standard leagues always get YESTERDAY, TODAY and TOMORROW in that order. Games dated before
// yesterday land in YESTERDAY and games after tomorrow land in TOMORROW. Extended-range leagues
// get one bucket per calendar day that has games.
func Group(gs []games.Game, league leagues.League, now time.Time) []Bucket {
	if league.Extended() {
		return groupByDay(gs, now)
	}
	return groupStandard(gs, now)
}

func groupStandard(gs []games.Game, now time.Time) []Bucket {
	loc := now.Location()
	today := timeutil.StartOfDay(now, loc)
	out := []Bucket{
		{Label: LabelYesterday, Date: today.AddDate(0, 0, -1), Games: make([]games.Game, 0)},
		{Label: LabelToday, Date: today, Games: make([]games.Game, 0)},
		{Label: LabelTomorrow, Date: today.AddDate(0, 0, 1), Games: make([]games.Game, 0)},
	}
	for _, g := range gs {
		day := timeutil.StartOfDay(g.ScheduledAt, loc)
		idx := 2
		switch {
		case day.Before(today):
			idx = 0
		case day.Equal(today):
			idx = 1
		}
		out[idx].Games = append(out[idx].Games, g)
	}
	return out
}

func groupByDay(gs []games.Game, now time.Time) []Bucket {
	loc := now.Location()
	today := timeutil.StartOfDay(now, loc)
	out := make([]Bucket, 0)
	index := make(map[string]int)
	for _, g := range gs {
		day := timeutil.StartOfDay(g.ScheduledAt, loc)
		key := timeutil.FormatDate(day)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, Bucket{Label: dayLabel(day, today), Date: day, Games: make([]games.Game, 0, 1)})
		}
		out[i].Games = append(out[i].Games, g)
	}
	sort.SliceStable(out, func(i, j int) bool {
		fi, fj := out[i].Games[0].ScheduledAt, out[j].Games[0].ScheduledAt
		if !fi.Equal(fj) {
			return fi.Before(fj)
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func dayLabel(day, today time.Time) string {
	if day.Equal(today) {
		return LabelToday
	}
	return strings.ToUpper(day.Format(dayLabelLayout))
}
