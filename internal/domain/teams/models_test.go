package teams

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestLabelFallsBack(t *testing.T) {
	cases := []struct {
		team Team
		want string
	}{
		{Team{ID: "1", Abbreviation: "BOS", ShortName: "Celtics"}, "Celtics"},
		{Team{ID: "1", Abbreviation: "BOS"}, "BOS"},
		{Team{ID: "1"}, "1"},
	}
	for _, tc := range cases {
		if got := tc.team.Label(); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestTeamOmitsEmptyLogo(t *testing.T) {
	data, err := json.Marshal(Team{ID: "1", Abbreviation: "ARS", ShortName: "Arsenal"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(data), "logoRef") {
		t.Fatalf("expected logoRef omitted, got %s", data)
	}
}
