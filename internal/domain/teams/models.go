package teams

// Team is a roster entry for a league. IDs are opaque and unique within a league.
type Team struct {
	ID           string `json:"id"`
	Abbreviation string `json:"abbreviation"`
	ShortName    string `json:"shortName"`
	LogoRef      string `json:"logoRef,omitempty"`
}

// Label returns the best short label for the team.
func (t Team) Label() string {
	if t.ShortName != "" {
		return t.ShortName
	}
	if t.Abbreviation != "" {
		return t.Abbreviation
	}
	return t.ID
}
