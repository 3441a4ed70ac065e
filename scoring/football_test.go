package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFootballGoalsDriveHeadline(t *testing.T) {
	state := footballHandler{}.NewState()

	state = state.Apply(Action{Name: ActionGoal, Side: SideHome})
	state = state.Apply(Action{Name: ActionGoal, Side: SideAway})
	state = state.Apply(Action{Name: ActionGoal, Side: SideAway})

	headline, ok := state.Headline()
	require.True(t, ok)
	assert.Equal(t, 1.0, headline.Home)
	assert.Equal(t, 2.0, headline.Away)
}

func TestFootballCardsAndFoulsDoNotTouchHeadline(t *testing.T) {
	state := footballHandler{}.NewState()

	state = state.Apply(Action{Name: ActionYellowCard, Side: SideHome})
	state = state.Apply(Action{Name: ActionRedCard, Side: SideAway})
	state = state.Apply(Action{Name: ActionFoul, Side: SideHome})

	headline, ok := state.Headline()
	require.True(t, ok)
	assert.Zero(t, headline.Home)
	assert.Zero(t, headline.Away)

	football := state.(*FootballState)
	assert.Equal(t, 1, football.HomeYellowCards)
	assert.Equal(t, 1, football.AwayRedCards)
	assert.Equal(t, 1, football.HomeFouls)
}

func TestFootballNoPeriod(t *testing.T) {
	state := footballHandler{}.NewState()
	_, ok := state.Period()
	assert.False(t, ok)
}

func TestFootballDefaultSideIsHome(t *testing.T) {
	state := footballHandler{}.NewState().Apply(Action{Name: ActionGoal})
	football := state.(*FootballState)
	assert.Equal(t, 1, football.HomeGoals)
	assert.Zero(t, football.AwayGoals)
}
