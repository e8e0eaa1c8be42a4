package games

// AbstractState is the coarse lifecycle stage reported upstream.
type AbstractState string

const (
	StatePreview AbstractState = "Preview"
	StateLive    AbstractState = "Live"
	StateFinal   AbstractState = "Final"
)

// TeamRef identifies one side's club inside a scheduled game.
type TeamRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Side carries a team's participation in a game.
type Side struct {
	Team            TeamRef `json:"team"`
	ProbablePitcher string  `json:"probablePitcher,omitempty"`
	Score           *int    `json:"score,omitempty"`
}

// Game is the canonical scheduled game shape.
type Game struct {
	GamePk        int           `json:"gamePk"`
	GameDate      string        `json:"gameDate"`
	OfficialDate  string        `json:"officialDate,omitempty"`
	AbstractState AbstractState `json:"abstractState"`
	DetailedState string        `json:"detailedState,omitempty"`
	Home          Side          `json:"home"`
	Away          Side          `json:"away"`
	VenueName     string        `json:"venueName,omitempty"`
	DoubleHeader  string        `json:"doubleHeader,omitempty"`
	GameNumber    int           `json:"gameNumber,omitempty"`
}

// Involves reports whether the team plays on either side of the game.
func (g Game) Involves(teamID int) bool {
	return g.Home.Team.ID == teamID || g.Away.Team.ID == teamID
}

// IsHome reports whether the team is the home side.
func (g Game) IsHome(teamID int) bool {
	return g.Home.Team.ID == teamID
}

// Opponent returns the side facing teamID.
func (g Game) Opponent(teamID int) Side {
	if g.IsHome(teamID) {
		return g.Away
	}
	return g.Home
}

// Score captures runs for each side.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Bases lists occupied bases.
type Bases struct {
	First  bool `json:"first"`
	Second bool `json:"second"`
	Third  bool `json:"third"`
}

// Empty reports "none on".
func (b Bases) Empty() bool {
	return !b.First && !b.Second && !b.Third
}

// Occupied lists the occupied bases in order.
func (b Bases) Occupied() []string {
	out := make([]string, 0, 3)
	if b.First {
		out = append(out, "first")
	}
	if b.Second {
		out = append(out, "second")
	}
	if b.Third {
		out = append(out, "third")
	}
	return out
}

// Decisions holds pitchers credited after a game.
type Decisions struct {
	Winner string `json:"winner,omitempty"`
	Loser  string `json:"loser,omitempty"`
	Save   string `json:"save,omitempty"`
}

// UnknownPlayer is reported when no source yields a pitcher or batter name.
const UnknownPlayer = "unknown"

// LiveState is the presentation subset of a live feed.
type LiveState struct {
	GamePk     int       `json:"gamePk"`
	Score      Score     `json:"score"`
	Inning     int       `json:"inning"`
	InningHalf string    `json:"inningHalf"`
	Outs       int       `json:"outs"`
	Bases      Bases     `json:"bases"`
	Pitcher    string    `json:"pitcher"`
	Batter     string    `json:"batter"`
	Decisions  Decisions `json:"decisions"`
}
