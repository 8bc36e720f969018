package feed

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// Scoreboard is a raw scoreboard payload. Events stay undecoded until mapped so one
// malformed event cannot spoil the rest.
type Scoreboard struct {
	Events []json.RawMessage `json:"events"`
}

// Standings is a raw standings payload: one child per conference or division.
type Standings struct {
	Children []json.RawMessage `json:"children"`
}

// Teams is a raw roster payload.
type Teams struct {
	Sports []struct {
		Leagues []struct {
			Teams []json.RawMessage `json:"teams"`
		} `json:"leagues"`
	} `json:"sports"`
}

// Merge concatenates scoreboards in order.
func Merge(boards ...Scoreboard) Scoreboard {
	var out Scoreboard
	for _, b := range boards {
		out.Events = append(out.Events, b.Events...)
	}
	return out
}

// DecodeScoreboard parses a scoreboard body. Fields of the wrong JSON type are skipped, not fatal.
func DecodeScoreboard(data []byte) (Scoreboard, error) {
	var out Scoreboard
	return out, decodeLenient(data, &out)
}

// DecodeStandings parses a standings body. Fields of the wrong JSON type are skipped, not fatal.
func DecodeStandings(data []byte) (Standings, error) {
	var out Standings
	return out, decodeLenient(data, &out)
}

// DecodeTeams parses a roster body. Fields of the wrong JSON type are skipped, not fatal.
func DecodeTeams(data []byte) (Teams, error) {
	var out Teams
	return out, decodeLenient(data, &out)
}

// decodeLenient only fails on syntax errors. encoding/json keeps decoding past type
// mismatches, so the partially filled value is still usable.
func decodeLenient(data []byte, dest any) error {
	err := json.Unmarshal(data, dest)
	var typeErr *json.UnmarshalTypeError
	if err != nil && !errors.As(err, &typeErr) {
		return err
	}
	return nil
}

// flexString accepts a JSON string, number or bool. Anything else decodes as "".
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		*s = ""
		return nil
	}
	switch v := raw.(type) {
	case string:
		*s = flexString(strings.TrimSpace(v))
	case float64:
		*s = flexString(formatFloat(v))
	case bool:
		*s = flexString(strconv.FormatBool(v))
	default:
		*s = ""
	}
	return nil
}

func (s flexString) String() string { return string(s) }

// flexFloat accepts a JSON number or a numeric string such as "+150".
type flexFloat struct {
	value float64
	valid bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	*f = flexFloat{}
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	switch v := raw.(type) {
	case float64:
		*f = flexFloat{value: v, valid: true}
	case string:
		if parsed, ok := parseNumber(v); ok {
			*f = flexFloat{value: parsed, valid: true}
		}
	}
	return nil
}

func (f flexFloat) ptr() *float64 {
	if !f.valid {
		return nil
	}
	v := f.value
	return &v
}

func (f flexFloat) intPtr() *int {
	if !f.valid {
		return nil
	}
	v := int(f.value)
	return &v
}

// flexBool accepts a JSON bool or "true"/"false".
type flexBool struct {
	value bool
	valid bool
}

func (f *flexBool) UnmarshalJSON(b []byte) error {
	*f = flexBool{}
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	switch v := raw.(type) {
	case bool:
		*f = flexBool{value: v, valid: true}
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			*f = flexBool{value: parsed, valid: true}
		}
	}
	return nil
}

func (f flexBool) ptr() *bool {
	if !f.valid {
		return nil
	}
	v := f.value
	return &v
}

func parseNumber(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseInt(raw string) (int, bool) {
	v, ok := parseNumber(raw)
	if !ok {
		return 0, false
	}
	return int(v), true
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
