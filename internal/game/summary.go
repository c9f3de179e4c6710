package game

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"

	"github.com/dugout-labs/dugout-data/internal/provider/mlb"
)

// f5Innings is the number of innings in the first-five wagering market.
const f5Innings = 5

// TeamSummary is the derived, per-request summary of a team's recent games.
// Every percentage is 0.0 when its underlying sample is empty.
type TeamSummary struct {
	GamesAnalyzed   int          `json:"games_analyzed"`
	NRFI            float64      `json:"nrfi"`
	GameNRFI        float64      `json:"game_nrfi_percentage"`
	WinPercentageF5 float64      `json:"win_percentage_f5"`
	Over1_5F5       float64      `json:"over1_5F5"`
	Over2_5F5       float64      `json:"over2_5F5"`
	Results         []GameResult `json:"results"`
	Error           string       `json:"error,omitempty"`
}

// GameResult is one game's detail record in a TeamSummary.
type GameResult struct {
	GamePk     int         `json:"game_id"`
	GameDate   string      `json:"game_date"`
	AwayTeam   SideResult  `json:"away_team"`
	HomeTeam   SideResult  `json:"home_team"`
	FinalScore *FinalScore `json:"final_score,omitempty"`

	sortKey string
}

// SideResult is one team's side of a GameResult.
type SideResult struct {
	ID              int         `json:"id"`
	Name            string      `json:"name"`
	Runs            []RunCell   `json:"runs"`
	ProbablePitcher PitcherSlot `json:"probable_pitcher"`
	TotalRuns       int         `json:"total_runs"`
}

// PitcherSlot is the probable pitcher attached to one side of a result.
type PitcherSlot struct {
	ID   interface{} `json:"id"`
	Name string      `json:"name"`
	Hand string      `json:"hand"`
}

// FinalScore is the full-game score from the linescore team totals,
// independent of the F5 market.
type FinalScore struct {
	Away RunCell `json:"away"`
	Home RunCell `json:"home"`
}

// RunCell is a per-inning run count that serializes as a number, or as the
// string "N/A" when the inning reported no count.
type RunCell struct {
	Runs *int
}

// MarshalJSON renders the cell as its run count or "N/A".
func (c RunCell) MarshalJSON() ([]byte, error) {
	if c.Runs == nil {
		return json.Marshal("N/A")
	}
	return json.Marshal(*c.Runs)
}

// UnmarshalJSON accepts either a number or the "N/A" sentinel.
func (c *RunCell) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		c.Runs = nil
		return nil
	}
	c.Runs = &n
	return nil
}

// Summarize folds a batch of game documents into a TeamSummary for teamID.
//
// A document is skipped entirely (not counted in games_analyzed) when it has
// no innings or identifies neither team. Within a counted game, each derived
// metric applies its own sample filter: NRFI requires both first-inning run
// counts, the F5 over markets require at least one reported inning for the
// team's side, and the F5 moneyline requires at least one reported inning on
// both sides. A game missing from a sample still appears in the results list
// with "N/A" filling the unreported inning slots.
func Summarize(docs []*mlb.GameDocument, teamID int) TeamSummary {
	var (
		teamNRFIHits int // first inning, this team scoreless
		gameNRFIHits int // first inning, both teams scoreless
		nrfiSample   int

		teamRunsF5 []int // one entry per game with >=1 reported team inning

		wins          int
		winSample     int
		gamesAnalyzed int

		results []GameResult
	)

	for _, doc := range docs {
		if doc == nil {
			continue
		}
		innings := doc.LiveData.Linescore.Innings
		homeID := doc.GameData.Teams.Home.ID
		awayID := doc.GameData.Teams.Away.ID
		if len(innings) == 0 || (homeID == 0 && awayID == 0) {
			continue
		}
		gamesAnalyzed++

		isHome := homeID == teamID

		// First-inning NRFI booleans, only when both sides reported.
		first := innings[0]
		if first.Home.Runs != nil && first.Away.Runs != nil {
			nrfiSample++
			teamRuns := *first.Away.Runs
			if isHome {
				teamRuns = *first.Home.Runs
			}
			if teamRuns == 0 {
				teamNRFIHits++
			}
			if *first.Home.Runs == 0 && *first.Away.Runs == 0 {
				gameNRFIHits++
			}
		}

		f5 := innings
		if len(f5) > f5Innings {
			f5 = f5[:f5Innings]
		}

		homeCells := make([]RunCell, 0, len(f5))
		awayCells := make([]RunCell, 0, len(f5))
		homeTotal, awayTotal := 0, 0
		homeReported, awayReported := false, false
		for _, inning := range f5 {
			homeCells = append(homeCells, RunCell{Runs: inning.Home.Runs})
			awayCells = append(awayCells, RunCell{Runs: inning.Away.Runs})
			if inning.Home.Runs != nil {
				homeTotal += *inning.Home.Runs
				homeReported = true
			}
			if inning.Away.Runs != nil {
				awayTotal += *inning.Away.Runs
				awayReported = true
			}
		}

		// Over markets: sample requires at least one reported inning for
		// the side being analyzed.
		teamReported, teamTotal := awayReported, awayTotal
		if isHome {
			teamReported, teamTotal = homeReported, homeTotal
		}
		if teamReported {
			teamRunsF5 = append(teamRunsF5, teamTotal)
		}

		// F5 moneyline: both sides must have reported. Ties count in the
		// denominator but toward neither side.
		if homeReported && awayReported {
			winSample++
			if isHome && homeTotal > awayTotal {
				wins++
			} else if !isHome && awayID == teamID && awayTotal > homeTotal {
				wins++
			}
		}

		results = append(results, GameResult{
			GamePk:   doc.GameData.Game.Pk,
			GameDate: originalDate(doc),
			AwayTeam: SideResult{
				ID:              awayID,
				Name:            mlb.TeamName(awayID, doc.GameData.Teams.Away.Name),
				Runs:            awayCells,
				ProbablePitcher: pitcherSlot(doc, doc.GameData.ProbablePitchers.Away),
				TotalRuns:       awayTotal,
			},
			HomeTeam: SideResult{
				ID:              homeID,
				Name:            mlb.TeamName(homeID, doc.GameData.Teams.Home.Name),
				Runs:            homeCells,
				ProbablePitcher: pitcherSlot(doc, doc.GameData.ProbablePitchers.Home),
				TotalRuns:       homeTotal,
			},
			FinalScore: &FinalScore{
				Away: RunCell{Runs: doc.LiveData.Linescore.Teams.Away.Runs},
				Home: RunCell{Runs: doc.LiveData.Linescore.Teams.Home.Runs},
			},
			sortKey: sortDate(doc),
		})
	}

	// Most recent first, independent of fetch order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].sortKey > results[j].sortKey
	})
	if results == nil {
		results = []GameResult{}
	}

	over15 := 0
	over25 := 0
	for _, runs := range teamRunsF5 {
		if float64(runs) >= 1.5 {
			over15++
		}
		if float64(runs) >= 2.5 {
			over25++
		}
	}

	return TeamSummary{
		GamesAnalyzed:   gamesAnalyzed,
		NRFI:            Percentage(teamNRFIHits, nrfiSample),
		GameNRFI:        Percentage(gameNRFIHits, nrfiSample),
		WinPercentageF5: Percentage(wins, winSample),
		Over1_5F5:       Percentage(over15, len(teamRunsF5)),
		Over2_5F5:       Percentage(over25, len(teamRunsF5)),
		Results:         results,
	}
}

// Percentage returns qualifying/sample as a percentage rounded to two
// decimals; an empty sample yields 0.0, never a division error.
func Percentage(qualifying, sample int) float64 {
	if sample == 0 {
		return 0.0
	}
	return math.Round(float64(qualifying)/float64(sample)*100*100) / 100
}

// pitcherSlot builds the probable-pitcher record for one side, resolving
// handedness through the document's players map.
func pitcherSlot(doc *mlb.GameDocument, ref *mlb.PitcherRef) PitcherSlot {
	if ref == nil || ref.ID == 0 {
		return PitcherSlot{ID: mlb.TBD, Name: mlb.TBD, Hand: mlb.TBD}
	}
	return PitcherSlot{
		ID:   ref.ID,
		Name: nonEmpty(ref.FullName, mlb.TBD),
		Hand: PitcherHand(doc, ref.ID),
	}
}

// PitcherHand resolves a pitcher's throwing hand from the gameData players
// map, defaulting to TBD.
func PitcherHand(doc *mlb.GameDocument, pitcherID int) string {
	bio, ok := doc.GameData.Players[playerKey(pitcherID)]
	if !ok || bio.PitchHand.Code == "" {
		return mlb.TBD
	}
	return bio.PitchHand.Code
}

func playerKey(id int) string {
	return "ID" + strconv.Itoa(id)
}

func originalDate(doc *mlb.GameDocument) string {
	if doc.GameData.Datetime.OriginalDate != "" {
		return doc.GameData.Datetime.OriginalDate
	}
	return doc.GameData.Datetime.Best()
}

// sortDate prefers the full timestamp so doubleheaders order correctly.
func sortDate(doc *mlb.GameDocument) string {
	if doc.GameData.Datetime.DateTime != "" {
		return doc.GameData.Datetime.DateTime
	}
	return doc.GameData.Datetime.Best()
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
