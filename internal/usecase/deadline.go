package usecase

import (
	"time"

	"github.com/pickemhq/pickem-pool/internal/domain/game"
)

// DefaultDeadlineOffset applies to slots without an explicit override.
const DefaultDeadlineOffset = 5 * time.Minute

// DeadlineGate decides whether a pick may still be written for a game. The
// deadline is the kickoff time minus a per-slot offset; submissions are
// accepted strictly before the deadline.
type DeadlineGate struct {
	offsets       map[game.Slot]time.Duration
	defaultOffset time.Duration
}

func NewDeadlineGate(offsets map[game.Slot]time.Duration, defaultOffset time.Duration) *DeadlineGate {
	if defaultOffset <= 0 {
		defaultOffset = DefaultDeadlineOffset
	}
	own := make(map[game.Slot]time.Duration, len(offsets))
	for slot, offset := range offsets {
		if offset <= 0 {
			continue
		}
		own[slot] = offset
	}
	return &DeadlineGate{offsets: own, defaultOffset: defaultOffset}
}

// Deadline returns the submission deadline for g. The second return is false
// when the kickoff time is unknown, in which case the gate is closed.
func (dg *DeadlineGate) Deadline(g game.Game) (time.Time, bool) {
	if g.KickoffAt.IsZero() {
		return time.Time{}, false
	}
	offset, ok := dg.offsets[g.Slot]
	if !ok {
		offset = dg.defaultOffset
	}
	return g.KickoffAt.Add(-offset), true
}

// CanSubmit reports whether a pick for g is still accepted at now. A
// submission exactly at the deadline is rejected.
func (dg *DeadlineGate) CanSubmit(g game.Game, now time.Time) bool {
	deadline, ok := dg.Deadline(g)
	if !ok {
		return false
	}
	return now.Before(deadline)
}
