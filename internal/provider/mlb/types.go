package mlb

// Sentinel used wherever the upstream omits a value the UI still renders.
const TBD = "TBD"

// Terminal detailed states. Games in one of these states are complete and
// safe to aggregate.
var terminalStates = map[string]bool{
	"Final":           true,
	"Game Over":       true,
	"Completed Early": true,
}

// IsTerminalStatus reports whether a schedule status marks a finished game.
func IsTerminalStatus(status string) bool {
	return terminalStates[status]
}

// --------------------------------------------------------------------------
// Schedule
// --------------------------------------------------------------------------

// ScheduleGame is one flattened entry from the schedule endpoint.
type ScheduleGame struct {
	GamePk       int    `json:"game_id"`
	GameType     string `json:"game_type"`
	Status       string `json:"status"`
	GameDatetime string `json:"game_datetime"`
	HomeID       int    `json:"home_id"`
	HomeName     string `json:"home_name"`
	AwayID       int    `json:"away_id"`
	AwayName     string `json:"away_name"`
	VenueName    string `json:"venue_name"`
	HomeScore    *int   `json:"home_score,omitempty"`
	AwayScore    *int   `json:"away_score,omitempty"`
}

// scheduleResponse is the raw wire shape of /api/v1/schedule.
type scheduleResponse struct {
	Dates []struct {
		Date  string `json:"date"`
		Games []struct {
			GamePk   int    `json:"gamePk"`
			GameType string `json:"gameType"`
			GameDate string `json:"gameDate"`
			Status   struct {
				DetailedState string `json:"detailedState"`
			} `json:"status"`
			Teams struct {
				Away scheduleSide `json:"away"`
				Home scheduleSide `json:"home"`
			} `json:"teams"`
			Venue struct {
				Name string `json:"name"`
			} `json:"venue"`
		} `json:"games"`
	} `json:"dates"`
}

type scheduleSide struct {
	Team struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
	Score *int `json:"score"`
}

// --------------------------------------------------------------------------
// Game feed document
// --------------------------------------------------------------------------

// GameDocument is the full live-feed representation of one game. Immutable
// once fetched; shared read-only through the memo cache.
type GameDocument struct {
	GameData GameData `json:"gameData"`
	LiveData LiveData `json:"liveData"`
}

type GameData struct {
	Game struct {
		Pk   int    `json:"pk"`
		Type string `json:"type"`
	} `json:"game"`
	Datetime GameDatetime `json:"datetime"`
	Status   struct {
		AbstractGameState string `json:"abstractGameState"`
		DetailedState     string `json:"detailedState"`
	} `json:"status"`
	Teams struct {
		Away TeamInfo `json:"away"`
		Home TeamInfo `json:"home"`
	} `json:"teams"`
	Venue struct {
		Name string `json:"name"`
	} `json:"venue"`
	ProbablePitchers ProbablePitchers      `json:"probablePitchers"`
	Players          map[string]PlayerBio  `json:"players"`
}

type GameDatetime struct {
	DateTime     string `json:"dateTime"`
	OriginalDate string `json:"originalDate"`
	OfficialDate string `json:"officialDate"`
}

// Best returns the most specific game date available.
func (d GameDatetime) Best() string {
	if d.OfficialDate != "" {
		return d.OfficialDate
	}
	return d.DateTime
}

type TeamInfo struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	LeagueRecord struct {
		Wins   int `json:"wins"`
		Losses int `json:"losses"`
	} `json:"leagueRecord"`
}

type ProbablePitchers struct {
	Away *PitcherRef `json:"away"`
	Home *PitcherRef `json:"home"`
}

type PitcherRef struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
}

// PlayerBio is one entry of the gameData players map, keyed "ID<personId>".
type PlayerBio struct {
	ID        int    `json:"id"`
	FullName  string `json:"fullName"`
	PitchHand struct {
		Code string `json:"code"`
	} `json:"pitchHand"`
	BatSide struct {
		Code string `json:"code"`
	} `json:"batSide"`
	PrimaryPosition struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"primaryPosition"`
}

type LiveData struct {
	Linescore Linescore `json:"linescore"`
	Boxscore  Boxscore  `json:"boxscore"`
}

type Linescore struct {
	Innings []Inning `json:"innings"`
	Teams   struct {
		Away InningSide `json:"away"`
		Home InningSide `json:"home"`
	} `json:"teams"`
}

// Inning holds both sides of one inning. Runs are nil when the side has not
// batted (or the feed is truncated), which is distinct from zero runs.
type Inning struct {
	Num  int        `json:"num"`
	Away InningSide `json:"away"`
	Home InningSide `json:"home"`
}

type InningSide struct {
	Runs *int `json:"runs"`
	Hits *int `json:"hits"`
}

type Boxscore struct {
	Teams struct {
		Away BoxscoreTeam `json:"away"`
		Home BoxscoreTeam `json:"home"`
	} `json:"teams"`
}

type BoxscoreTeam struct {
	Team struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
	Players      map[string]BoxscorePlayer `json:"players"`
	BattingOrder []int                     `json:"battingOrder"`
}

// BoxscorePlayer is one boxscore entry, keyed "ID<personId>".
type BoxscorePlayer struct {
	Person struct {
		ID       int    `json:"id"`
		FullName string `json:"fullName"`
	} `json:"person"`
	Position struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"position"`
	SeasonStats struct {
		Batting struct {
			Avg string `json:"avg"`
		} `json:"batting"`
	} `json:"seasonStats"`
	Stats struct {
		Batting  StatLine `json:"batting"`
		Pitching StatLine `json:"pitching"`
	} `json:"stats"`
}

// --------------------------------------------------------------------------
// Player lookup and stat blobs
// --------------------------------------------------------------------------

// PlayerRecord is one result from the people search endpoint.
type PlayerRecord struct {
	ID              int    `json:"id"`
	FullName        string `json:"fullName"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	PrimaryPosition struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"primaryPosition"`
	CurrentTeam struct {
		ID int `json:"id"`
	} `json:"currentTeam"`
}

// StatLine is a loose stat blob. Upstream stat fields vary by group and type,
// so these stay schemaless with typed accessors.
type StatLine map[string]interface{}

// Str returns a stat as a display string, or fallback when absent.
func (s StatLine) Str(key, fallback string) string {
	v, ok := s[key]
	if !ok || v == nil {
		return fallback
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return itoa(int(t))
		}
		return ftoa(t)
	default:
		return fallback
	}
}

// Num returns a stat as a float, ok=false when absent or non-numeric.
func (s StatLine) Num(key string) (float64, bool) {
	v, ok := s[key]
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		return parseFloat(t)
	default:
		return 0, false
	}
}

// Int returns a stat as an int, zero when absent.
func (s StatLine) Int(key string) int {
	f, ok := s.Num(key)
	if !ok {
		return 0
	}
	return int(f)
}

// PersonStats is a person record hydrated with grouped stat splits.
type PersonStats struct {
	ID              int    `json:"id"`
	FullName        string `json:"fullName"`
	BirthDate       string `json:"birthDate"`
	CurrentAge      int    `json:"currentAge"`
	PrimaryPosition struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"primaryPosition"`
	BatSide struct {
		Code string `json:"code"`
	} `json:"batSide"`
	PitchHand struct {
		Code string `json:"code"`
	} `json:"pitchHand"`
	CurrentTeam struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"currentTeam"`
	Stats []StatGroupBlock `json:"stats"`
}

type StatGroupBlock struct {
	Group struct {
		DisplayName string `json:"displayName"`
	} `json:"group"`
	Type struct {
		DisplayName string `json:"displayName"`
	} `json:"type"`
	Splits []StatSplit `json:"splits"`
}

type StatSplit struct {
	Season string   `json:"season"`
	Stat   StatLine `json:"stat"`
}

// GroupSplit returns the first split of the named stat group, nil when the
// group carries no splits.
func (p *PersonStats) GroupSplit(group string) StatLine {
	for _, block := range p.Stats {
		if block.Group.DisplayName == group && len(block.Splits) > 0 {
			return block.Splits[0].Stat
		}
	}
	return nil
}

// --------------------------------------------------------------------------
// Head-to-head
// --------------------------------------------------------------------------

// H2HStats is one batter's career line against one specific pitcher.
// A zero PA value with NoHistory=true means the matchup has never occurred,
// which callers must distinguish from a fetch failure (an error return).
type H2HStats struct {
	PlateAppearances int    `json:"PA"`
	AtBats           int    `json:"AB"`
	Hits             int    `json:"hits"`
	Doubles          int    `json:"doubles"`
	Triples          int    `json:"triples"`
	HomeRuns         int    `json:"home_runs"`
	Walks            int    `json:"walks"`
	Strikeouts       int    `json:"strikeouts"`
	Avg              string `json:"avg"`
	Ops              string `json:"ops"`
	NoHistory        bool   `json:"no_history,omitempty"`
}

// --------------------------------------------------------------------------
// Standings
// --------------------------------------------------------------------------

// DivisionStandings is one division's team records.
type DivisionStandings struct {
	Division struct {
		ID int `json:"id"`
	} `json:"division"`
	TeamRecords []TeamRecord `json:"teamRecords"`
}

type TeamRecord struct {
	Team struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
	Wins              int    `json:"wins"`
	Losses            int    `json:"losses"`
	WinningPercentage string `json:"winningPercentage"`
	GamesBack         string `json:"gamesBack"`
	DivisionRank      string `json:"divisionRank"`
}

type standingsResponse struct {
	Records []DivisionStandings `json:"records"`
}
