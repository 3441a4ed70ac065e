package scoring

import (
	"encoding/json"
	"fmt"
)

type footballHandler struct{}

func (footballHandler) Code() Code { return CodeFootball }

func (footballHandler) NewState() State { return &FootballState{} }

func (footballHandler) DecodeState(raw []byte) (State, error) {
	st := &FootballState{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, st); err != nil {
			return nil, fmt.Errorf("decode football state: %w", err)
		}
	}
	return st, nil
}

type FootballState struct {
	HomeGoals       int `json:"home_goals"`
	AwayGoals       int `json:"away_goals"`
	HomeYellowCards int `json:"home_yellow_cards"`
	AwayYellowCards int `json:"away_yellow_cards"`
	HomeRedCards    int `json:"home_red_cards"`
	AwayRedCards    int `json:"away_red_cards"`
	HomeFouls       int `json:"home_fouls"`
	AwayFouls       int `json:"away_fouls"`
}

func (s *FootballState) Apply(a Action) State {
	next := *s
	switch a.Name {
	case ActionGoal:
		if a.Side == SideAway {
			next.AwayGoals++
		} else {
			next.HomeGoals++
		}
	case ActionYellowCard:
		if a.Side == SideAway {
			next.AwayYellowCards++
		} else {
			next.HomeYellowCards++
		}
	case ActionRedCard:
		if a.Side == SideAway {
			next.AwayRedCards++
		} else {
			next.HomeRedCards++
		}
	case ActionFoul:
		if a.Side == SideAway {
			next.AwayFouls++
		} else {
			next.HomeFouls++
		}
	default:
		return s
	}
	return &next
}

// Headline mirrors goals; cards and fouls never touch it.
func (s *FootballState) Headline() (Headline, bool) {
	return Headline{Home: float64(s.HomeGoals), Away: float64(s.AwayGoals)}, true
}

func (s *FootballState) Period() (string, bool) {
	return "", false
}
