package favorites

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

const keySeparator = ":"

// ErrInvalidKey is returned when a favorite key is not "<league>:<team>".
var ErrInvalidKey = errors.New("invalid favorite key")

// Key identifies a favorited team within a league, formatted "<leagueId>:<teamId>".
type Key string

// NewKey builds the key for a team in a league.
func NewKey(leagueID, teamID string) Key {
	return Key(leagueID + keySeparator + teamID)
}

// ParseKey validates and splits a raw key.
func ParseKey(raw string) (Key, error) {
	league, team, ok := strings.Cut(strings.TrimSpace(raw), keySeparator)
	league = strings.ToLower(strings.TrimSpace(league))
	team = strings.TrimSpace(team)
	if !ok || league == "" || team == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, raw)
	}
	return NewKey(league, team), nil
}

// League returns the league id part of the key.
func (k Key) League() string {
	league, _, _ := strings.Cut(string(k), keySeparator)
	return league
}

// Team returns the team id part of the key.
func (k Key) Team() string {
	_, team, _ := strings.Cut(string(k), keySeparator)
	return team
}

// Set is a collection of favorite keys with membership semantics only.
// The zero value is empty and ready to use. A Set is not safe for concurrent mutation.
type Set struct {
	keys map[Key]struct{}
}

// NewSet builds a set from keys; duplicates collapse.
func NewSet(keys ...Key) Set {
	s := Set{keys: make(map[Key]struct{}, len(keys))}
	for _, k := range keys {
		s.keys[k] = struct{}{}
	}
	return s
}

// ParseSet builds a set from raw strings, skipping malformed entries.
func ParseSet(raw []string) Set {
	s := NewSet()
	for _, r := range raw {
		if k, err := ParseKey(r); err == nil {
			s.Add(k)
		}
	}
	return s
}

// Add inserts the key.
func (s *Set) Add(k Key) {
	if s.keys == nil {
		s.keys = make(map[Key]struct{})
	}
	s.keys[k] = struct{}{}
}

// Remove deletes the key if present.
func (s *Set) Remove(k Key) {
	delete(s.keys, k)
}

// Toggle inserts the key if absent and removes it otherwise. It returns true when the key is now present.
func (s *Set) Toggle(k Key) bool {
	if s.Contains(k) {
		s.Remove(k)
		return false
	}
	s.Add(k)
	return true
}

// Contains reports membership.
func (s Set) Contains(k Key) bool {
	_, ok := s.keys[k]
	return ok
}

// Has reports whether the team in the league is a favorite.
func (s Set) Has(leagueID, teamID string) bool {
	return s.Contains(NewKey(leagueID, teamID))
}

// Len returns the number of keys.
func (s Set) Len() int {
	return len(s.keys)
}

// Keys returns the keys in sorted order.
func (s Set) Keys() []Key {
	out := make([]Key, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings returns the keys as sorted strings, the persisted form.
func (s Set) Strings() []string {
	keys := s.Keys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}

// ForLeague returns the favorited team ids of one league, sorted.
func (s Set) ForLeague(leagueID string) []string {
	out := make([]string, 0)
	for k := range s.keys {
		if k.League() == leagueID {
			out = append(out, k.Team())
		}
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	out := Set{keys: make(map[Key]struct{}, len(s.keys))}
	for k := range s.keys {
		out.keys[k] = struct{}{}
	}
	return out
}

// MarshalJSON encodes the set as a sorted string array.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

// UnmarshalJSON decodes a string array, dropping malformed keys.
func (s *Set) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseSet(raw)
	return nil
}
