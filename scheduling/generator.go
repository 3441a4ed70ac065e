package scheduling

import (
	"context"
	"time"
)

type Format string

const (
	FormatRoundRobin Format = "round_robin"
	FormatKnockout   Format = "knockout"
)

type ParticipantKind string

const (
	KindTeam   ParticipantKind = "team"
	KindPlayer ParticipantKind = "player"
)

// Participant is one side of a draw: a team or an individual player,
// identified by its storage id. Immutable once drawn.
type Participant struct {
	ID   int
	Kind ParticipantKind
}

// Defaults applied by Spec.withDefaults when the caller leaves them zero.
const (
	DefaultMatchesPerDay = 4
	DefaultDayStart      = 9 * time.Hour
	DefaultMatchDuration = 90 * time.Minute
)

// Spec is a single draw request. Participants keep their input order; that
// order decides pairing enumeration and therefore match numbering.
type Spec struct {
	Format       Format
	SportID      int
	ScheduleID   int
	Participants []Participant
	StartDate    time.Time

	MatchesPerDay int
	DayStart      time.Duration // clock offset from midnight, e.g. 9h for 09:00
	MatchDuration time.Duration
}

func (s Spec) withDefaults() Spec {
	if s.MatchesPerDay <= 0 {
		s.MatchesPerDay = DefaultMatchesPerDay
	}
	if s.DayStart <= 0 {
		s.DayStart = DefaultDayStart
	}
	if s.MatchDuration <= 0 {
		s.MatchDuration = DefaultMatchDuration
	}
	return s
}

// MatchDraft is the generator output: one pairing with its slot. Created
// once, immutable; downstream code assigns the durable id.
type MatchDraft struct {
	Number      string // "M001" for round-robin, "Semi-Final-5" for knockout
	Round       int
	RoundName   string // empty for round-robin
	ScheduledAt time.Time
	Home        Participant
	Away        Participant
	SportID     int
	ScheduleID  int
}

type Generator interface {
	// Generate produces the full time-ordered draw for the spec. Fewer than
	// two participants yields an empty draw, not an error.
	Generate(ctx context.Context, spec Spec) ([]*MatchDraft, error)

	Name() string
}

// ForFormat returns the generator for a tournament format.
func ForFormat(f Format) (Generator, bool) {
	switch f {
	case FormatRoundRobin:
		return NewRoundRobinGenerator(), true
	case FormatKnockout:
		return NewKnockoutGenerator(), true
	}
	return nil, false
}
