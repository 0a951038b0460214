package usecase

import (
	"testing"
	"time"

	"github.com/pickemhq/pickem-pool/internal/domain/game"
)

func TestDeadlineGateCanSubmit(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, time.September, 13, 20, 15, 0, 0, time.UTC)
	gate := NewDeadlineGate(map[game.Slot]time.Duration{
		game.SlotSundayNight: 15 * time.Minute,
	}, 5*time.Minute)

	g := game.Game{ID: "g1", KickoffAt: kickoff, Slot: game.SlotSundayNight}

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"well before deadline", kickoff.Add(-60 * time.Minute), true},
		{"one minute before deadline", time.Date(2026, time.September, 13, 19, 59, 0, 0, time.UTC), true},
		{"exactly at deadline", kickoff.Add(-15 * time.Minute), false},
		{"after deadline before kickoff", time.Date(2026, time.September, 13, 20, 1, 0, 0, time.UTC), false},
		{"after kickoff", kickoff.Add(time.Hour), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := gate.CanSubmit(g, tc.now); got != tc.want {
				t.Fatalf("CanSubmit at %s = %v, want %v", tc.now.Format(time.RFC3339), got, tc.want)
			}
		})
	}
}

func TestDeadlineGateDefaultOffset(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, time.September, 13, 13, 0, 0, 0, time.UTC)
	gate := NewDeadlineGate(nil, 5*time.Minute)
	g := game.Game{ID: "g1", KickoffAt: kickoff, Slot: game.SlotEarly}

	deadline, ok := gate.Deadline(g)
	if !ok {
		t.Fatalf("Deadline returned not ok for known kickoff")
	}
	if want := kickoff.Add(-5 * time.Minute); !deadline.Equal(want) {
		t.Fatalf("Deadline = %s, want %s", deadline, want)
	}
}

func TestDeadlineGateUnknownKickoff(t *testing.T) {
	t.Parallel()

	gate := NewDeadlineGate(nil, 5*time.Minute)
	g := game.Game{ID: "g1", Slot: game.SlotMonday}

	if _, ok := gate.Deadline(g); ok {
		t.Fatalf("Deadline should be unknown when kickoff is unset")
	}
	if gate.CanSubmit(g, time.Now()) {
		t.Fatalf("gate must be closed when kickoff is unset")
	}
}
