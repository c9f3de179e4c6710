package player

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// GameLine is one game's stat line for a player. It serializes as a pitching
// or batting shape depending on the role it was extracted for.
type GameLine struct {
	GamePk   int
	GameDate string

	// Batting
	Hits            int
	Runs            int
	RBIs            int
	HomeRuns        int
	Walks           int
	AtBats          int
	Strikeouts      int
	Avg             float64
	OpponentPitcher string

	// Pitching
	InningsPitched  string
	HitsAllowed     int
	HomeRunsAllowed int
	WalksAllowed    int
	RunsAllowed     int

	OpponentTeam string

	pitching bool
}

type pitchingLineJSON struct {
	GamePk          int    `json:"game_id"`
	GameDate        string `json:"game_date"`
	InningsPitched  string `json:"innings_pitched"`
	HitsAllowed     int    `json:"hits_allowed"`
	HomeRunsAllowed int    `json:"home_runs_allowed"`
	WalksAllowed    int    `json:"walks_allowed"`
	Strikeouts      int    `json:"strikeouts"`
	Runs            int    `json:"runs"`
	OpponentTeam    string `json:"opponent_team"`
}

type battingLineJSON struct {
	GamePk          int     `json:"game_id"`
	GameDate        string  `json:"game_date"`
	Hits            int     `json:"hits"`
	Runs            int     `json:"runs"`
	RBIs            int     `json:"rbis"`
	HomeRuns        int     `json:"home_runs"`
	Walks           int     `json:"walks"`
	AtBats          int     `json:"at_bats"`
	Avg             float64 `json:"avg"`
	Strikeouts      int     `json:"strikeouts"`
	OpponentTeam    string  `json:"opponent_team"`
	OpponentPitcher string  `json:"opponent_pitcher"`
}

// MarshalJSON emits the role-specific shape.
func (l GameLine) MarshalJSON() ([]byte, error) {
	if l.pitching {
		return json.Marshal(pitchingLineJSON{
			GamePk:          l.GamePk,
			GameDate:        l.GameDate,
			InningsPitched:  l.InningsPitched,
			HitsAllowed:     l.HitsAllowed,
			HomeRunsAllowed: l.HomeRunsAllowed,
			WalksAllowed:    l.WalksAllowed,
			Strikeouts:      l.Strikeouts,
			Runs:            l.RunsAllowed,
			OpponentTeam:    l.OpponentTeam,
		})
	}
	return json.Marshal(battingLineJSON{
		GamePk:          l.GamePk,
		GameDate:        l.GameDate,
		Hits:            l.Hits,
		Runs:            l.Runs,
		RBIs:            l.RBIs,
		HomeRuns:        l.HomeRuns,
		Walks:           l.Walks,
		AtBats:          l.AtBats,
		Avg:             l.Avg,
		Strikeouts:      l.Strikeouts,
		OpponentTeam:    l.OpponentTeam,
		OpponentPitcher: l.OpponentPitcher,
	})
}

// Betting is a set of market name -> hit percentage entries. Two-way players
// carry a block per role. Error is set instead when there is no sample to
// compute markets from.
type Betting struct {
	Hitting  Markets `json:"hitting,omitempty"`
	Pitching Markets `json:"pitching,omitempty"`
	Error    string  `json:"error,omitempty"`
	Single   Markets `json:"-"`
}

// MarshalJSON collapses a single-role Betting to its bare market map.
func (b Betting) MarshalJSON() ([]byte, error) {
	if b.Single != nil {
		return json.Marshal(b.Single)
	}
	type alias Betting
	return json.Marshal(alias(b))
}

// Markets maps a market key like "over_1_5_hits" to the percentage of recent
// games that cleared it.
type Markets map[string]float64

// BettingStats builds a player's recent log with betting market percentages
// attached. Two-way players get both hitting and pitching blocks.
func (s *Service) BettingStats(ctx context.Context, playerID, numGames int) RecentStats {
	data := s.Recent(ctx, playerID, numGames)
	if data.Error != "" {
		return data
	}

	person, err := s.source.PersonWithStats(ctx, playerID, fmt.Sprintf("%d", s.now().Year()))
	if err != nil || person == nil {
		data.Error = fmt.Sprintf("could not look up player ID %d for betting stats", playerID)
		return data
	}

	position := person.PrimaryPosition.Abbreviation
	isPitcher := position == "P"
	isTwoWay := position == "TWP"

	switch {
	case isTwoWay:
		data.PlayerType = "TWP"
	case isPitcher:
		data.PlayerType = "Pitcher"
	default:
		data.PlayerType = "Batter"
	}

	if len(data.Recent) == 0 {
		data.BettingData = &Betting{Error: "No games found"}
		return data
	}

	switch {
	case isTwoWay:
		data.BettingData = &Betting{
			Hitting:  batterMarkets(data.Recent),
			Pitching: pitcherMarkets(data.Recent),
		}
	case isPitcher:
		data.BettingData = &Betting{Single: pitcherMarkets(data.Recent)}
	default:
		data.BettingData = &Betting{Single: batterMarkets(data.Recent)}
	}
	return data
}

// pitcherMarkets computes the pitcher threshold markets over a recent log.
func pitcherMarkets(lines []GameLine) Markets {
	total := len(lines)
	if total == 0 {
		return Markets{}
	}
	m := Markets{}

	for _, threshold := range []float64{4.5, 5.5, 6.5} {
		over := 0
		for _, l := range lines {
			if ip, err := strconv.ParseFloat(l.InningsPitched, 64); err == nil && ip > threshold {
				over++
			}
		}
		m[marketKey(threshold, "innings_pitched")] = percent(over, total)
	}

	for _, threshold := range []float64{3.5, 4.5, 5.5, 6.5, 7.5, 8.5, 9.5} {
		over := 0
		for _, l := range lines {
			if float64(l.HitsAllowed) > threshold {
				over++
			}
		}
		m[marketKey(threshold, "hits_allowed")] = percent(over, total)
	}

	for _, threshold := range []float64{1.5, 2.5, 3.5, 4.5, 5.5} {
		over := 0
		for _, l := range lines {
			if float64(l.RunsAllowed) > threshold {
				over++
			}
		}
		m[marketKey(threshold, "runs_allowed")] = percent(over, total)
	}

	for _, threshold := range []float64{3.5, 4.5, 5.5, 6.5, 7.5, 8.5} {
		over := 0
		for _, l := range lines {
			if float64(l.Strikeouts) > threshold {
				over++
			}
		}
		m[marketKey(threshold, "strikeouts")] = percent(over, total)
	}

	return m
}

// batterMarkets computes the batter threshold markets over a recent log.
func batterMarkets(lines []GameLine) Markets {
	total := len(lines)
	if total == 0 {
		return Markets{}
	}
	m := Markets{}

	for _, threshold := range []float64{0.5, 1.5, 2.5} {
		over := 0
		for _, l := range lines {
			if float64(l.Hits) > threshold {
				over++
			}
		}
		m[marketKey(threshold, "hits")] = percent(over, total)
	}

	// Without doubles/triples in the log, total bases reduce to singles at
	// one base plus home runs at four.
	for _, threshold := range []float64{1.5, 2.5, 3.5} {
		over := 0
		for _, l := range lines {
			totalBases := l.Hits + 3*l.HomeRuns
			if float64(totalBases) > threshold {
				over++
			}
		}
		m[marketKey(threshold, "total_bases")] = percent(over, total)
	}

	over := 0
	for _, l := range lines {
		if float64(l.HomeRuns) > 0.5 {
			over++
		}
	}
	m[marketKey(0.5, "home_runs")] = percent(over, total)

	for _, threshold := range []float64{0.5, 1.5, 2.5} {
		over := 0
		for _, l := range lines {
			if float64(l.RBIs) > threshold {
				over++
			}
		}
		m[marketKey(threshold, "rbis")] = percent(over, total)
	}

	for _, threshold := range []float64{1.5, 2.5, 3.5, 4.5} {
		over := 0
		for _, l := range lines {
			if float64(l.Hits+l.Runs+l.RBIs) > threshold {
				over++
			}
		}
		m[marketKey(threshold, "hits_runs_rbis")] = percent(over, total)
	}

	return m
}

func marketKey(threshold float64, suffix string) string {
	t := strings.ReplaceAll(strconv.FormatFloat(threshold, 'f', 1, 64), ".", "_")
	return fmt.Sprintf("over_%s_%s", t, suffix)
}

func percent(over, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return math.Round(float64(over)/float64(total)*100*100) / 100
}
