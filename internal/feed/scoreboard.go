package feed

import (
	"encoding/json"
	"strings"

	"github.com/preston-bernstein/sports-page-service/internal/domain/games"
	"github.com/preston-bernstein/sports-page-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-page-service/internal/timeutil"
)

const stateLive = "in"

type eventRecord struct {
	ID           flexString          `json:"id"`
	Name         flexString          `json:"name"`
	Date         flexString          `json:"date"`
	Status       statusRecord        `json:"status"`
	Competitions []competitionRecord `json:"competitions"`
}

type competitionRecord struct {
	Date        flexString          `json:"date"`
	Status      statusRecord        `json:"status"`
	Venue       venueRecord         `json:"venue"`
	Competitors []competitorRecord  `json:"competitors"`
	Odds        []*oddsRecord       `json:"odds"`
	Headlines   []headlineRecord    `json:"headlines"`
	Notes       []noteRecord        `json:"notes"`
	Leaders     []leaderCategoryRaw `json:"leaders"`
}

type statusRecord struct {
	Type struct {
		State       flexString `json:"state"`
		Completed   flexBool   `json:"completed"`
		ShortDetail flexString `json:"shortDetail"`
		Detail      flexString `json:"detail"`
	} `json:"type"`
}

type venueRecord struct {
	FullName flexString `json:"fullName"`
}

type competitorRecord struct {
	HomeAway flexString `json:"homeAway"`
	Score    flexString `json:"score"`
	Winner   flexBool   `json:"winner"`
	Team     teamRecord `json:"team"`
	Records  []struct {
		Summary flexString `json:"summary"`
	} `json:"records"`
	Linescores []struct {
		Value flexFloat `json:"value"`
	} `json:"linescores"`
}

type teamRecord struct {
	ID               flexString `json:"id"`
	Abbreviation     flexString `json:"abbreviation"`
	DisplayName      flexString `json:"displayName"`
	ShortDisplayName flexString `json:"shortDisplayName"`
	Logo             flexString `json:"logo"`
	Logos            []struct {
		Href flexString `json:"href"`
	} `json:"logos"`
}

type oddsRecord struct {
	Details      flexString `json:"details"`
	OverUnder    flexFloat  `json:"overUnder"`
	Spread       flexFloat  `json:"spread"`
	OverOdds     flexFloat  `json:"overOdds"`
	UnderOdds    flexFloat  `json:"underOdds"`
	AwayTeamOdds struct {
		MoneyLine flexFloat `json:"moneyLine"`
	} `json:"awayTeamOdds"`
	HomeTeamOdds struct {
		MoneyLine flexFloat `json:"moneyLine"`
	} `json:"homeTeamOdds"`
	Provider struct {
		Name flexString `json:"name"`
	} `json:"provider"`
}

type headlineRecord struct {
	ShortLinkText flexString `json:"shortLinkText"`
	Description   flexString `json:"description"`
}

type noteRecord struct {
	Headline flexString `json:"headline"`
}

type leaderCategoryRaw struct {
	Name    flexString `json:"name"`
	Leaders []struct {
		DisplayValue flexString `json:"displayValue"`
		Athlete      struct {
			ShortName   flexString `json:"shortName"`
			DisplayName flexString `json:"displayName"`
		} `json:"athlete"`
	} `json:"leaders"`
}

// AdaptScoreboard maps every event of a scoreboard to a Game, in feed order.
// It never fails; missing or malformed fields take neutral defaults.
func AdaptScoreboard(_ leagues.League, raw Scoreboard) []games.Game {
	out := make([]games.Game, 0, len(raw.Events))
	for _, ev := range raw.Events {
		out = append(out, mapEvent(ev))
	}
	return out
}

func mapEvent(raw json.RawMessage) games.Game {
	var ev eventRecord
	// Type mismatches leave the remaining fields populated; use whatever decoded.
	_ = json.Unmarshal(raw, &ev)

	var comp competitionRecord
	if len(ev.Competitions) > 0 {
		comp = ev.Competitions[0]
	}
	status := comp.Status
	if status.Type.State == "" && !status.Type.Completed.valid {
		status = ev.Status
	}

	scheduled, ok := timeutil.ParseFeedInstant(ev.Date.String())
	if !ok {
		scheduled, _ = timeutil.ParseFeedInstant(comp.Date.String())
	}

	return games.Game{
		ID:           ev.ID.String(),
		Name:         ev.Name.String(),
		ScheduledAt:  scheduled,
		Status:       mapStatus(status),
		StatusDetail: status.Type.ShortDetail.String(),
		Venue:        comp.Venue.FullName.String(),
		Teams:        mapCompetitors(comp.Competitors),
		Odds:         mapOdds(comp.Odds),
		Headline:     headline(comp),
		Leaders:      mapLeaders(comp.Leaders),
	}
}

func mapStatus(s statusRecord) games.Status {
	if s.Type.Completed.value {
		return games.StatusCompleted
	}
	if strings.EqualFold(s.Type.State.String(), stateLive) {
		return games.StatusLive
	}
	return games.StatusNotStarted
}

func mapCompetitors(records []competitorRecord) []games.TeamEntry {
	out := make([]games.TeamEntry, 0, len(records))
	for _, c := range records {
		entry := games.TeamEntry{
			TeamID:       c.Team.ID.String(),
			Abbreviation: c.Team.Abbreviation.String(),
			DisplayName:  c.Team.DisplayName.String(),
			ShortName:    c.Team.ShortDisplayName.String(),
			Winner:       c.Winner.ptr(),
			HomeAway:     games.HomeAway(strings.ToLower(c.HomeAway.String())),
			PeriodScores: make([]*float64, 0, len(c.Linescores)),
		}
		if score, ok := parseInt(c.Score.String()); ok {
			entry.Score = &score
		}
		if len(c.Records) > 0 {
			entry.Record = c.Records[0].Summary.String()
		}
		for _, ls := range c.Linescores {
			entry.PeriodScores = append(entry.PeriodScores, ls.Value.ptr())
		}
		out = append(out, entry)
	}
	return out
}

func mapOdds(records []*oddsRecord) *games.Odds {
	if len(records) == 0 || records[0] == nil {
		return nil
	}
	o := records[0]
	return &games.Odds{
		Details:       o.Details.String(),
		OverUnder:     o.OverUnder.ptr(),
		Spread:        o.Spread.ptr(),
		OverOdds:      o.OverOdds.ptr(),
		UnderOdds:     o.UnderOdds.ptr(),
		AwayMoneyline: o.AwayTeamOdds.MoneyLine.intPtr(),
		HomeMoneyline: o.HomeTeamOdds.MoneyLine.intPtr(),
		Provider:      o.Provider.Name.String(),
	}
}

func headline(c competitionRecord) string {
	if len(c.Headlines) > 0 {
		h := c.Headlines[0]
		if h.ShortLinkText != "" {
			return h.ShortLinkText.String()
		}
		if h.Description != "" {
			return h.Description.String()
		}
	}
	if len(c.Notes) > 0 {
		return c.Notes[0].Headline.String()
	}
	return ""
}

func mapLeaders(categories []leaderCategoryRaw) []games.Leader {
	if len(categories) == 0 {
		return nil
	}
	out := make([]games.Leader, 0, len(categories))
	for _, cat := range categories {
		leader := games.Leader{Category: cat.Name.String()}
		if len(cat.Leaders) > 0 {
			top := cat.Leaders[0]
			name := top.Athlete.ShortName.String()
			if name == "" {
				name = top.Athlete.DisplayName.String()
			}
			leader.Top = &games.Performer{Name: name, Value: top.DisplayValue.String()}
		}
		out = append(out, leader)
	}
	return out
}
