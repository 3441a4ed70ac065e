package scoring

import "strings"

// Code names a sport with a dedicated scoring handler. The set is closed:
// adding a sport means adding a handler variant here.
type Code string

const (
	CodeCricket    Code = "CRICKET"
	CodeFootball   Code = "FOOTBALL"
	CodeBasketball Code = "BASKETBALL"
	CodeChess      Code = "CHESS"
	CodeVolleyball Code = "VOLLEYBALL"
	CodeBadminton  Code = "BADMINTON"
)

// codes fixes the resolution order for ResolveCode.
var codes = []Code{
	CodeCricket,
	CodeFootball,
	CodeBasketball,
	CodeChess,
	CodeVolleyball,
	CodeBadminton,
}

var handlers = map[Code]Handler{
	CodeCricket:    cricketHandler{},
	CodeFootball:   footballHandler{},
	CodeBasketball: basketballHandler{},
	CodeChess:      chessHandler{},
	CodeVolleyball: volleyballHandler{},
	CodeBadminton:  badmintonHandler{},
}

// ForCode returns the handler registered for an exact sport code.
func ForCode(code Code) (Handler, bool) {
	h, ok := handlers[code]
	return h, ok
}

// ResolveCode maps a sport display name to a code by case-insensitive
// substring containment in either direction ("Beach Volleyball" matches
// VOLLEYBALL). Best effort only — names that embed another sport's code can
// resolve wrong, which is why sports rows should carry an explicit code.
func ResolveCode(name string) (Code, bool) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if upper == "" {
		return "", false
	}
	for _, code := range codes {
		if strings.Contains(upper, string(code)) || strings.Contains(string(code), upper) {
			return code, true
		}
	}
	return "", false
}

// ForSport picks a handler for a sport row: the explicit code wins, the
// display name is the fallback. No handler means the caller degrades to
// generic direct score writes.
func ForSport(code *string, name string) (Handler, bool) {
	if code != nil && *code != "" {
		return ForCode(Code(strings.ToUpper(strings.TrimSpace(*code))))
	}
	resolved, ok := ResolveCode(name)
	if !ok {
		return nil, false
	}
	return ForCode(resolved)
}
