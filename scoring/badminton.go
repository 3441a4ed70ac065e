package scoring

import (
	"encoding/json"
	"fmt"
)

const (
	badmintonSetTarget     = 21
	badmintonHardCap       = 30
	badmintonFinalSet      = 3
	badmintonWinningMargin = 2
)

type badmintonHandler struct{}

func (badmintonHandler) Code() Code { return CodeBadminton }

func (badmintonHandler) NewState() State {
	return &BadmintonState{
		CurrentSet: 1,
		Sets:       map[string]*SetScore{},
	}
}

func (h badmintonHandler) DecodeState(raw []byte) (State, error) {
	st := h.NewState().(*BadmintonState)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, st); err != nil {
			return nil, fmt.Errorf("decode badminton state: %w", err)
		}
	}
	if st.Sets == nil {
		st.Sets = map[string]*SetScore{}
	}
	return st, nil
}

type BadmintonState struct {
	HomeSets          int                  `json:"home_sets_won"`
	AwaySets          int                  `json:"away_sets_won"`
	CurrentSet        int                  `json:"current_set"`
	Sets              map[string]*SetScore `json:"set_scores"`
	HomeServiceErrors int                  `json:"home_service_errors"`
	AwayServiceErrors int                  `json:"away_service_errors"`
}

func (s *BadmintonState) Apply(a Action) State {
	switch a.Name {
	case ActionSetPoint:
		next := *s
		next.Sets = cloneSets(s.Sets)

		setNum := next.CurrentSet
		if n, ok := intExtra(a.Extra, "set_num"); ok {
			setNum = n
		}
		key := setKey(setNum)
		sc := next.Sets[key]
		if sc == nil {
			sc = &SetScore{}
			next.Sets[key] = sc
		}

		var scored, other int
		if a.Side == SideAway {
			sc.Away++
			scored, other = sc.Away, sc.Home
		} else {
			sc.Home++
			scored, other = sc.Home, sc.Away
		}

		// First to 21 with a two-point lead, or the hard cap at 30 points
		// regardless of margin.
		won := scored >= badmintonSetTarget && scored-other >= badmintonWinningMargin
		if !won && scored >= badmintonHardCap {
			won = true
		}
		if won {
			if a.Side == SideAway {
				next.AwaySets++
			} else {
				next.HomeSets++
			}
			if setNum < badmintonFinalSet {
				next.CurrentSet = setNum + 1
			}
		}
		return &next

	case ActionServiceError:
		next := *s
		next.Sets = cloneSets(s.Sets)
		if a.Side == SideAway {
			next.AwayServiceErrors++
		} else {
			next.HomeServiceErrors++
		}
		return &next
	}
	return s
}

// Headline mirrors sets won by each side.
func (s *BadmintonState) Headline() (Headline, bool) {
	return Headline{Home: float64(s.HomeSets), Away: float64(s.AwaySets)}, true
}

func (s *BadmintonState) Period() (string, bool) {
	if s.CurrentSet <= 0 {
		return "", false
	}
	return fmt.Sprintf("Set %d", s.CurrentSet), true
}
