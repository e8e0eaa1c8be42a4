package teams

// Team is the normalized team metadata shape shared by schedule and roster views.
// Kept in its own package so games and players can reference it without cycles.
type Team struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	TeamName      string `json:"teamName"`
	ShortName     string `json:"shortName,omitempty"`
	Abbreviation  string `json:"abbreviation,omitempty"`
	LeagueName    string `json:"leagueName"`
	DivisionName  string `json:"divisionName,omitempty"`
	ParentOrgID   int    `json:"parentOrgId,omitempty"`
	ParentOrgName string `json:"parentOrgName,omitempty"`
	FranchiseName string `json:"franchiseName,omitempty"`
	VenueName     string `json:"venueName,omitempty"`
	SportID       int    `json:"sportId,omitempty"`
}

// DisplayName prefers the full name and falls back to the club name.
func (t Team) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.TeamName
}

// RosterEntry is one player on a team's roster.
type RosterEntry struct {
	PlayerID     int    `json:"playerId"`
	FullName     string `json:"fullName"`
	Position     string `json:"position"`
	PositionType string `json:"positionType,omitempty"`
	JerseyNumber string `json:"jerseyNumber,omitempty"`
	TeamID       int    `json:"teamId"`
}

// IsPitcher reports whether the entry's primary position is pitcher.
func (r RosterEntry) IsPitcher() bool {
	return r.Position == "P" || r.PositionType == "Pitcher"
}
