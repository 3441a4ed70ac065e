package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadmintonSetWonAtTwentyOne(t *testing.T) {
	state := badmintonHandler{}.NewState()
	state = playSetPoints(state, SideHome, 21)

	badminton := state.(*BadmintonState)
	assert.Equal(t, 1, badminton.HomeSets)
	assert.Equal(t, 2, badminton.CurrentSet)

	headline, ok := state.Headline()
	require.True(t, ok)
	assert.Equal(t, 1.0, headline.Home)
}

func TestBadmintonTwoPointMarginBelowCap(t *testing.T) {
	state := badmintonHandler{}.NewState()
	state = playSetPoints(state, SideHome, 20)
	state = playSetPoints(state, SideAway, 20)
	state = playSetPoints(state, SideHome, 1) // 21-20, not enough

	badminton := state.(*BadmintonState)
	assert.Zero(t, badminton.HomeSets)

	state = playSetPoints(state, SideHome, 1) // 22-20 closes it
	badminton = state.(*BadmintonState)
	assert.Equal(t, 1, badminton.HomeSets)
}

func TestBadmintonHardCapAtThirty(t *testing.T) {
	state := badmintonHandler{}.NewState()
	// Trade points to 29-29, then one more takes it 30-29 despite the margin.
	for i := 0; i < 29; i++ {
		state = state.Apply(Action{Name: ActionSetPoint, Side: SideHome})
		state = state.Apply(Action{Name: ActionSetPoint, Side: SideAway})
	}
	badminton := state.(*BadmintonState)
	require.Zero(t, badminton.HomeSets)
	require.Zero(t, badminton.AwaySets)

	state = state.Apply(Action{Name: ActionSetPoint, Side: SideAway})
	badminton = state.(*BadmintonState)
	assert.Equal(t, 1, badminton.AwaySets)
	assert.Equal(t, 30, badminton.Sets["set_1"].Away)
}

func TestBadmintonThirdSetIsLast(t *testing.T) {
	state := badmintonHandler{}.NewState()
	for i := 0; i < 21; i++ {
		state = state.Apply(Action{
			Name:  ActionSetPoint,
			Side:  SideHome,
			Extra: map[string]interface{}{"set_num": badmintonFinalSet},
		})
	}
	badminton := state.(*BadmintonState)
	assert.Equal(t, 1, badminton.HomeSets)
	assert.Equal(t, 1, badminton.CurrentSet)
}

func TestBadmintonDecodeRestoresSets(t *testing.T) {
	raw := []byte(`{"home_sets_won": 1, "current_set": 2, "set_scores": {"set_1": {"home": 21, "away": 15}}}`)
	state, err := badmintonHandler{}.DecodeState(raw)
	require.NoError(t, err)

	badminton := state.(*BadmintonState)
	assert.Equal(t, 1, badminton.HomeSets)
	require.NotNil(t, badminton.Sets["set_1"])
	assert.Equal(t, 21, badminton.Sets["set_1"].Home)

	period, ok := state.Period()
	require.True(t, ok)
	assert.Equal(t, "Set 2", period)
}
