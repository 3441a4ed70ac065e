// Package scoring holds the per-sport live-scoring state machines. Handlers
// are pure: folding an action into a state returns a new state and performs
// no I/O; persistence and match-status transitions belong to the caller.
package scoring

// Side identifies which side of a match an action belongs to.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Action tags understood by the handlers. Anything else is a no-op on the
// sport payload.
const (
	ActionAddRun       = "add_run"
	ActionWicket       = "wicket"
	ActionGoal         = "goal"
	ActionYellowCard   = "yellow_card"
	ActionRedCard      = "red_card"
	ActionFoul         = "foul"
	ActionPoint        = "point"
	ActionTimeout      = "timeout"
	ActionMove         = "move"
	ActionCheckmate    = "checkmate"
	ActionResign       = "resign"
	ActionDraw         = "draw"
	ActionSetPoint     = "set_point"
	ActionServiceError = "service_error"
)

// Action is a named scoring event supplied by a caller.
type Action struct {
	Name     string
	Side     Side
	Points   int
	PlayerID *int
	Extra    map[string]interface{} // sport-specific parameters, e.g. point_type, set_num
}

// Headline is the sport-agnostic (home, away) pair shown as "the score".
type Headline struct {
	Home float64
	Away float64
}

// State is one match's sport-specific score payload.
type State interface {
	// Apply folds one action into the state and returns the updated state.
	// The receiver is left untouched; unrecognized actions return it as is.
	Apply(a Action) State

	// Headline derives the sport-agnostic score from the state. ok is false
	// while the state cannot produce one (an unfinished chess game).
	Headline() (h Headline, ok bool)

	// Period reports the current phase label ("Set 2", "Q1", "3/1 wickets").
	// ok is false when no label applies.
	Period() (string, bool)
}

// Handler owns the scoring rules for one sport code.
type Handler interface {
	Code() Code

	// NewState returns the sport's default initial state.
	NewState() State

	// DecodeState restores a state from its JSON payload. Empty input
	// yields the default state.
	DecodeState(raw []byte) (State, error)
}

// SetScore is one set's point tally in a set-based sport.
type SetScore struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// intExtra reads an integer out of an action's extra data, tolerating the
// float64 that JSON decoding produces.
func intExtra(extra map[string]interface{}, key string) (int, bool) {
	if extra == nil {
		return 0, false
	}
	switch v := extra[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

// stringExtra reads a string out of an action's extra data.
func stringExtra(extra map[string]interface{}, key string) (string, bool) {
	if extra == nil {
		return "", false
	}
	v, ok := extra[key].(string)
	return v, ok
}
