package scoring

import (
	"encoding/json"
	"fmt"
)

type cricketHandler struct{}

func (cricketHandler) Code() Code { return CodeCricket }

func (cricketHandler) NewState() State { return &CricketState{} }

func (cricketHandler) DecodeState(raw []byte) (State, error) {
	st := &CricketState{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, st); err != nil {
			return nil, fmt.Errorf("decode cricket state: %w", err)
		}
	}
	return st, nil
}

type CricketState struct {
	HomeRuns    int   `json:"home_runs"`
	AwayRuns    int   `json:"away_runs"`
	HomeWickets int   `json:"home_wickets"`
	AwayWickets int   `json:"away_wickets"`
	HomeBatters []int `json:"home_batters,omitempty"`
	AwayBatters []int `json:"away_batters,omitempty"`
	Extras      int   `json:"extras"`
}

func (s *CricketState) Apply(a Action) State {
	next := *s
	switch a.Name {
	case ActionAddRun:
		if a.Points == 0 {
			return s
		}
		if a.Side == SideAway {
			next.AwayRuns += a.Points
		} else {
			next.HomeRuns += a.Points
		}
	case ActionWicket:
		if a.Side == SideAway {
			next.AwayWickets++
			next.AwayBatters = removeBatter(s.AwayBatters, a.PlayerID)
		} else {
			next.HomeWickets++
			next.HomeBatters = removeBatter(s.HomeBatters, a.PlayerID)
		}
	default:
		return s
	}
	return &next
}

// Headline mirrors each side's run total.
func (s *CricketState) Headline() (Headline, bool) {
	return Headline{Home: float64(s.HomeRuns), Away: float64(s.AwayRuns)}, true
}

// Period shows the combined wicket tally once a wicket has fallen.
func (s *CricketState) Period() (string, bool) {
	if s.HomeWickets+s.AwayWickets == 0 {
		return "", false
	}
	return fmt.Sprintf("%d/%d wickets", s.HomeWickets, s.AwayWickets), true
}

// Display returns the (runs, wickets) pair shown for one side.
func (s *CricketState) Display(side Side) (runs, wickets int) {
	if side == SideAway {
		return s.AwayRuns, s.AwayWickets
	}
	return s.HomeRuns, s.HomeWickets
}

func removeBatter(batters []int, playerID *int) []int {
	if playerID == nil || len(batters) == 0 {
		return batters
	}
	out := make([]int, 0, len(batters))
	removed := false
	for _, id := range batters {
		if !removed && id == *playerID {
			removed = true
			continue
		}
		out = append(out, id)
	}
	return out
}
