package scoring

import (
	"encoding/json"
	"fmt"
)

const (
	volleyballSetTarget      = 25
	volleyballFinalSetTarget = 15
	volleyballFinalSet       = 5
	volleyballWinningMargin  = 2
)

type volleyballHandler struct{}

func (volleyballHandler) Code() Code { return CodeVolleyball }

func (volleyballHandler) NewState() State {
	return &VolleyballState{
		CurrentSet: 1,
		Sets:       map[string]*SetScore{},
	}
}

func (h volleyballHandler) DecodeState(raw []byte) (State, error) {
	st := h.NewState().(*VolleyballState)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, st); err != nil {
			return nil, fmt.Errorf("decode volleyball state: %w", err)
		}
	}
	if st.Sets == nil {
		st.Sets = map[string]*SetScore{}
	}
	return st, nil
}

type VolleyballState struct {
	HomeSets          int                  `json:"home_sets_won"`
	AwaySets          int                  `json:"away_sets_won"`
	CurrentSet        int                  `json:"current_set"`
	Sets              map[string]*SetScore `json:"set_scores"` // keyed "set_1", "set_2", ...
	HomeServiceErrors int                  `json:"home_service_errors"`
	AwayServiceErrors int                  `json:"away_service_errors"`
}

func (s *VolleyballState) Apply(a Action) State {
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

		// First to 25 with a two-point lead takes the set; a deciding 5th
		// set plays to 15.
		target := volleyballSetTarget
		if setNum == volleyballFinalSet {
			target = volleyballFinalSetTarget
		}
		if scored >= target && scored-other >= volleyballWinningMargin {
			if a.Side == SideAway {
				next.AwaySets++
			} else {
				next.HomeSets++
			}
			if setNum < volleyballFinalSet {
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
func (s *VolleyballState) Headline() (Headline, bool) {
	return Headline{Home: float64(s.HomeSets), Away: float64(s.AwaySets)}, true
}

func (s *VolleyballState) Period() (string, bool) {
	if s.CurrentSet <= 0 {
		return "", false
	}
	return fmt.Sprintf("Set %d", s.CurrentSet), true
}

func setKey(n int) string {
	return fmt.Sprintf("set_%d", n)
}

func cloneSets(sets map[string]*SetScore) map[string]*SetScore {
	out := make(map[string]*SetScore, len(sets))
	for k, v := range sets {
		c := *v
		out[k] = &c
	}
	return out
}
