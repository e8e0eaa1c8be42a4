package mlbstats

type idName struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type person struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
}

type scheduleResponse struct {
	Dates []scheduleDate `json:"dates"`
}

type scheduleDate struct {
	Date  string         `json:"date"`
	Games []scheduleGame `json:"games"`
}

type scheduleGame struct {
	GamePk       int    `json:"gamePk"`
	GameDate     string `json:"gameDate"`
	OfficialDate string `json:"officialDate"`
	Status       struct {
		AbstractGameState string `json:"abstractGameState"`
		DetailedState     string `json:"detailedState"`
	} `json:"status"`
	Teams struct {
		Home scheduleSide `json:"home"`
		Away scheduleSide `json:"away"`
	} `json:"teams"`
	Venue        idName `json:"venue"`
	DoubleHeader string `json:"doubleHeader"`
	GameNumber   int    `json:"gameNumber"`
}

type scheduleSide struct {
	Team            idName  `json:"team"`
	Score           *int    `json:"score"`
	ProbablePitcher *person `json:"probablePitcher"`
}

type teamsResponse struct {
	Teams []teamPayload `json:"teams"`
}

type teamPayload struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	TeamName      string `json:"teamName"`
	ShortName     string `json:"shortName"`
	Abbreviation  string `json:"abbreviation"`
	League        idName `json:"league"`
	Division      idName `json:"division"`
	Venue         idName `json:"venue"`
	Sport         idName `json:"sport"`
	ParentOrgID   int    `json:"parentOrgId"`
	ParentOrgName string `json:"parentOrgName"`
	FranchiseName string `json:"franchiseName"`
}

type rosterResponse struct {
	Roster []rosterPayload `json:"roster"`
}

type rosterPayload struct {
	Person       person `json:"person"`
	JerseyNumber string `json:"jerseyNumber"`
	Position     struct {
		Abbreviation string `json:"abbreviation"`
		Type         string `json:"type"`
	} `json:"position"`
	ParentTeamID int `json:"parentTeamId"`
}

type statsResponse struct {
	Stats []statsGroup `json:"stats"`
}

type statsGroup struct {
	Group struct {
		DisplayName string `json:"displayName"`
	} `json:"group"`
	Splits []statSplit `json:"splits"`
}

type statSplit struct {
	Date     string `json:"date"`
	IsHome   bool   `json:"isHome"`
	Opponent idName `json:"opponent"`
	Game     struct {
		GamePk int `json:"gamePk"`
	} `json:"game"`
	// Decoded with UseNumber so values stay json.Number or string.
	Stat map[string]any `json:"stat"`
}
