package scheduling

import (
	"context"
	"fmt"
	"math"
)

// roundName labels a round by how many pairings it holds. Last three rounds
// get the fixed names; earlier rounds count up from 1.
func roundName(pairings, round int) string {
	switch pairings {
	case 1:
		return "Final"
	case 2:
		return "Semi-Final"
	case 4:
		return "Quarter-Final"
	}
	return fmt.Sprintf("Round %d", round)
}

// ByeCount reports how many byes an n-participant knockout carries relative
// to the next power-of-two bracket: 2^ceil(log2(n)) - n.
func ByeCount(n int) int {
	if n < 2 {
		return 0
	}
	full := 1 << uint(math.Ceil(math.Log2(float64(n))))
	return full - n
}

type KnockoutGenerator struct{}

func NewKnockoutGenerator() Generator {
	return &KnockoutGenerator{}
}

func (g *KnockoutGenerator) Name() string {
	return "Knockout"
}

// Generate lays out a single-elimination draw. Participants are not
// reshuffled for seeding: each round pairs current[2k] vs current[2k+1] in
// input order, and an unpaired trailing participant is a bye — it advances
// with no match recorded.
//
// Winners are not knowable at draw time, so the home side of every pairing
// advances as a placeholder. This is a known limitation: later rounds must
// be re-seeded by an external result-reporting step once matches are played.
func (g *KnockoutGenerator) Generate(ctx context.Context, spec Spec) ([]*MatchDraft, error) {
	spec = spec.withDefaults()
	if len(spec.Participants) < 2 {
		return []*MatchDraft{}, nil
	}

	slots := newSlotAllocator(spec)
	current := append([]Participant(nil), spec.Participants...)
	drafts := make([]*MatchDraft, 0, len(current)-1)
	number := 1
	round := 0

	for len(current) > 1 {
		round++
		name := roundName(len(current)/2, round)
		next := make([]Participant, 0, (len(current)+1)/2)

		for i := 0; i < len(current); i += 2 {
			if i+1 >= len(current) {
				// Trailing bye: advance without a match.
				next = append(next, current[i])
				continue
			}

			drafts = append(drafts, &MatchDraft{
				Number:      fmt.Sprintf("%s-%d", name, number),
				Round:       round,
				RoundName:   name,
				ScheduledAt: slots.Next(),
				Home:        current[i],
				Away:        current[i+1],
				SportID:     spec.SportID,
				ScheduleID:  spec.ScheduleID,
			})
			number++

			// Placeholder winner; see the doc comment above.
			next = append(next, current[i])
		}

		current = next
	}

	return drafts, nil
}
