package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForCodeCoversEverySport(t *testing.T) {
	for _, code := range codes {
		handler, ok := ForCode(code)
		require.True(t, ok, "missing handler for %s", code)
		assert.Equal(t, code, handler.Code())
		assert.NotNil(t, handler.NewState())
	}
}

func TestForCodeUnknown(t *testing.T) {
	_, ok := ForCode(Code("CURLING"))
	assert.False(t, ok)
}

func TestResolveCodeBySubstring(t *testing.T) {
	cases := map[string]Code{
		"Cricket":          CodeCricket,
		"cricket (T20)":    CodeCricket,
		"Football":         CodeFootball,
		"Beach Volleyball": CodeVolleyball,
		"chess":            CodeChess,
		"BADMINTON":        CodeBadminton,
		"basket":           CodeBasketball, // prefix of BASKETBALL
	}
	for name, want := range cases {
		code, ok := ResolveCode(name)
		require.True(t, ok, "name %q", name)
		assert.Equal(t, want, code, "name %q", name)
	}
}

func TestResolveCodeUnknownName(t *testing.T) {
	for _, name := range []string{"", "   ", "Handball", "Water Polo"} {
		_, ok := ResolveCode(name)
		assert.False(t, ok, "name %q", name)
	}
}

func TestForSportExplicitCodeWins(t *testing.T) {
	code := "CHESS"
	handler, ok := ForSport(&code, "Football")
	require.True(t, ok)
	assert.Equal(t, CodeChess, handler.Code())
}

func TestForSportCodeIsCaseInsensitive(t *testing.T) {
	code := "volleyball"
	handler, ok := ForSport(&code, "")
	require.True(t, ok)
	assert.Equal(t, CodeVolleyball, handler.Code())
}

func TestForSportFallsBackToName(t *testing.T) {
	handler, ok := ForSport(nil, "University Badminton League")
	require.True(t, ok)
	assert.Equal(t, CodeBadminton, handler.Code())
}

func TestForSportNoMatch(t *testing.T) {
	_, ok := ForSport(nil, "Table Tennis")
	assert.False(t, ok)
}
