package scheduling

import (
	"context"
	"fmt"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() Generator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) Name() string {
	return "RoundRobin"
}

// Generate pairs every participant against every other exactly once:
// n*(n-1)/2 matches for n participants. Pairing order is the natural
// enumeration of input indexes (i outer, j inner, i < j) — a contract, not
// an implementation detail, since it fixes match numbering and slots.
func (g *RoundRobinGenerator) Generate(ctx context.Context, spec Spec) ([]*MatchDraft, error) {
	spec = spec.withDefaults()
	participants := spec.Participants
	if len(participants) < 2 {
		return []*MatchDraft{}, nil
	}

	slots := newSlotAllocator(spec)
	drafts := make([]*MatchDraft, 0, len(participants)*(len(participants)-1)/2)
	number := 1

	for i := 0; i < len(participants); i++ {
		for j := i + 1; j < len(participants); j++ {
			drafts = append(drafts, &MatchDraft{
				Number:      fmt.Sprintf("M%03d", number),
				Round:       1,
				ScheduledAt: slots.Next(),
				Home:        participants[i],
				Away:        participants[j],
				SportID:     spec.SportID,
				ScheduleID:  spec.ScheduleID,
			})
			number++
		}
	}

	return drafts, nil
}
