package scoring

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Chess game results.
const (
	ResultWhiteWin = "white_win"
	ResultBlackWin = "black_win"
	ResultDraw     = "draw"
)

const defaultClockSeconds = 1800 // 30 minutes a side

type chessHandler struct{}

func (chessHandler) Code() Code { return CodeChess }

func (chessHandler) NewState() State {
	return &ChessState{
		TimeRemainingWhite: defaultClockSeconds,
		TimeRemainingBlack: defaultClockSeconds,
		GameStatus:         "ongoing",
	}
}

func (h chessHandler) DecodeState(raw []byte) (State, error) {
	st := h.NewState().(*ChessState)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, st); err != nil {
			return nil, fmt.Errorf("decode chess state: %w", err)
		}
	}
	return st, nil
}

type ChessState struct {
	// Moves is a single shared counter: it does not branch on which side
	// moved. A deliberate simplification carried over as is.
	Moves              int    `json:"moves"`
	TimeRemainingWhite int    `json:"time_remaining_white"`
	TimeRemainingBlack int    `json:"time_remaining_black"`
	Result             string `json:"result,omitempty"` // white_win | black_win | draw
	GameStatus         string `json:"game_status"`
}

func (s *ChessState) Apply(a Action) State {
	next := *s
	switch a.Name {
	case ActionMove:
		next.Moves++
	case ActionCheckmate, ActionResign:
		// The side named in the action is the winner. "home" and anything
		// containing "white" map to white.
		if sideIsWhite(a.Side) {
			next.Result = ResultWhiteWin
		} else {
			next.Result = ResultBlackWin
		}
		next.GameStatus = next.Result
	case ActionDraw:
		next.Result = ResultDraw
		next.GameStatus = ResultDraw
	default:
		return s
	}
	return &next
}

// Headline is undefined until a result is recorded, then 1-0, 0-1 or
// half a point each.
func (s *ChessState) Headline() (Headline, bool) {
	switch s.Result {
	case ResultWhiteWin:
		return Headline{Home: 1, Away: 0}, true
	case ResultBlackWin:
		return Headline{Home: 0, Away: 1}, true
	case ResultDraw:
		return Headline{Home: 0.5, Away: 0.5}, true
	}
	return Headline{}, false
}

func (s *ChessState) Period() (string, bool) {
	return "", false
}

func sideIsWhite(side Side) bool {
	if side == SideHome {
		return true
	}
	return strings.Contains(strings.ToLower(string(side)), "white")
}
