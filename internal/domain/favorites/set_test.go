package favorites

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestParseKey(t *testing.T) {
	cases := []struct {
		raw     string
		want    Key
		wantErr bool
	}{
		{"nba:13", "nba:13", false},
		{" NHL : 21 ", "nhl:21", false},
		{"nba", "", true},
		{":13", "", true},
		{"nba:", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ParseKey(tc.raw)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidKey) {
				t.Fatalf("%q: expected ErrInvalidKey, got %v", tc.raw, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("%q: expected %q, got %q err=%v", tc.raw, tc.want, got, err)
		}
	}
}

func TestKeyParts(t *testing.T) {
	k := NewKey("epl", "359")
	if k.League() != "epl" || k.Team() != "359" {
		t.Fatalf("unexpected parts %s %s", k.League(), k.Team())
	}
}

func TestSetCollapsesDuplicates(t *testing.T) {
	s := NewSet("nba:1", "nba:1", "nhl:2")
	if s.Len() != 2 {
		t.Fatalf("expected 2 keys, got %d", s.Len())
	}
	s.Add("nba:1")
	if s.Len() != 2 {
		t.Fatalf("expected add of existing key to be a no-op")
	}
}

func TestSetToggle(t *testing.T) {
	var s Set
	if on := s.Toggle("nba:1"); !on || !s.Contains("nba:1") {
		t.Fatalf("expected toggle to insert")
	}
	if on := s.Toggle("nba:1"); on || s.Contains("nba:1") {
		t.Fatalf("expected toggle to remove")
	}
}

func TestSetForLeague(t *testing.T) {
	s := NewSet("nba:13", "nba:2", "nhl:2")
	if got := s.ForLeague("nba"); !reflect.DeepEqual(got, []string{"13", "2"}) {
		t.Fatalf("unexpected nba favorites %v", got)
	}
	if got := s.ForLeague("mlb"); len(got) != 0 {
		t.Fatalf("expected none for mlb, got %v", got)
	}
}

func TestSetCloneIsIndependent(t *testing.T) {
	s := NewSet("nba:1")
	c := s.Clone()
	c.Add("nba:2")
	if s.Contains("nba:2") {
		t.Fatalf("expected clone mutation not to leak")
	}
}

func TestSetJSONRoundTripDropsMalformed(t *testing.T) {
	var s Set
	if err := json.Unmarshal([]byte(`["nhl:2","bogus","nba:1","nba:1"]`), &s); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `["nba:1","nhl:2"]` {
		t.Fatalf("unexpected encoding %s", data)
	}
}
