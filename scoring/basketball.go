package scoring

import (
	"encoding/json"
	"fmt"
)

// Basketball point types tracked per side alongside the raw point total.
const (
	PointTypeFieldGoal    = "field_goal"
	PointTypeFreeThrow    = "free_throw"
	PointTypeThreePointer = "three_pointer"
)

const defaultTimeouts = 3 // per side

type basketballHandler struct{}

func (basketballHandler) Code() Code { return CodeBasketball }

func (basketballHandler) NewState() State {
	return &BasketballState{
		HomeTimeouts: defaultTimeouts,
		AwayTimeouts: defaultTimeouts,
		Quarter:      1,
	}
}

func (h basketballHandler) DecodeState(raw []byte) (State, error) {
	st := h.NewState().(*BasketballState)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, st); err != nil {
			return nil, fmt.Errorf("decode basketball state: %w", err)
		}
	}
	return st, nil
}

type BasketballState struct {
	HomePoints        int `json:"home_points"`
	AwayPoints        int `json:"away_points"`
	HomeFouls         int `json:"home_fouls"`
	AwayFouls         int `json:"away_fouls"`
	HomeTimeouts      int `json:"home_timeouts"`
	AwayTimeouts      int `json:"away_timeouts"`
	Quarter           int `json:"quarter"`
	HomeFieldGoals    int `json:"home_field_goals"`
	AwayFieldGoals    int `json:"away_field_goals"`
	HomeFreeThrows    int `json:"home_free_throws"`
	AwayFreeThrows    int `json:"away_free_throws"`
	HomeThreePointers int `json:"home_three_pointers"`
	AwayThreePointers int `json:"away_three_pointers"`
}

func (s *BasketballState) Apply(a Action) State {
	next := *s
	switch a.Name {
	case ActionPoint:
		if a.Points == 0 {
			return s
		}
		pointType, _ := stringExtra(a.Extra, "point_type")
		next.addPoints(a.Side, a.Points, pointType)
	case ActionFoul:
		if a.Side == SideAway {
			next.AwayFouls++
		} else {
			next.HomeFouls++
		}
	case ActionTimeout:
		// Floor at zero; burning a timeout you don't have is not an error.
		if a.Side == SideAway {
			if next.AwayTimeouts > 0 {
				next.AwayTimeouts--
			}
		} else {
			if next.HomeTimeouts > 0 {
				next.HomeTimeouts--
			}
		}
	default:
		return s
	}
	return &next
}

func (s *BasketballState) addPoints(side Side, points int, pointType string) {
	if side == SideAway {
		s.AwayPoints += points
	} else {
		s.HomePoints += points
	}
	switch pointType {
	case PointTypeFreeThrow:
		if side == SideAway {
			s.AwayFreeThrows++
		} else {
			s.HomeFreeThrows++
		}
	case PointTypeThreePointer:
		if side == SideAway {
			s.AwayThreePointers++
		} else {
			s.HomeThreePointers++
		}
	default:
		// Unknown point types count as field goals.
		if side == SideAway {
			s.AwayFieldGoals++
		} else {
			s.HomeFieldGoals++
		}
	}
}

func (s *BasketballState) Headline() (Headline, bool) {
	return Headline{Home: float64(s.HomePoints), Away: float64(s.AwayPoints)}, true
}

// Period mirrors the tracked quarter.
func (s *BasketballState) Period() (string, bool) {
	if s.Quarter <= 0 {
		return "", false
	}
	return fmt.Sprintf("Q%d", s.Quarter), true
}
