package service

import (
	"testing"

	"github.com/WiktorStarczewski/miden-arena/internal/arena"
)

func TestSetTeamStoresSlotsAndStartsCombat(t *testing.T) {
	m := newBothJoinedMatch()
	repo := newMockRepo(1, m)

	got, err := SetTeam(repo, 1, "alice", [3]uint8{0, 1, 2}, testTimeout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Phase != arena.PhaseBothJoined {
		t.Fatalf("combat must not start before both teams are in, got %v", got.Phase)
	}
	if !got.TeamSubmitted(arena.SideA) || got.TeamSubmitted(arena.SideB) {
		t.Fatalf("unexpected submission mask %08b", got.TeamsSubmitted)
	}
	if len(got.Slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(got.Slots))
	}

	got, err = SetTeam(repo, 1, "bob", [3]uint8{3, 4, 5}, testTimeout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Phase != arena.PhaseCombat {
		t.Fatalf("expected combat phase, got %v", got.Phase)
	}
	if len(got.Slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(got.Slots))
	}
	if got.Round != 0 {
		t.Fatalf("combat starts at round 0, got %d", got.Round)
	}
	if got.Deadline.IsZero() {
		t.Fatalf("expected a combat deadline to be set")
	}

	// Slots must carry freshly initialized state.
	slot := got.SlotFor(arena.SideA, 0)
	if slot == nil {
		t.Fatalf("champion 0 missing from side A")
	}
	state, err := slot.State()
	if err != nil {
		t.Fatalf("unpack slot state: %v", err)
	}
	if state.CurrentHP != 80 || state.MaxHP != 80 || state.KO {
		t.Fatalf("unexpected initial state: %+v", state)
	}
}

func TestSetTeamRejectsWrongPhase(t *testing.T) {
	for _, phase := range []arena.Phase{arena.PhaseWaiting, arena.PhaseOneJoined, arena.PhaseCombat, arena.PhaseResolved} {
		m := newBothJoinedMatch()
		m.Phase = phase
		repo := newMockRepo(1, m)
		if _, err := SetTeam(repo, 1, "alice", [3]uint8{0, 1, 2}, testTimeout); err != ErrNotInTeamPhase {
			t.Fatalf("phase %v: expected ErrNotInTeamPhase, got %v", phase, err)
		}
	}
}

func TestSetTeamRejectsOutsider(t *testing.T) {
	repo := newMockRepo(1, newBothJoinedMatch())
	if _, err := SetTeam(repo, 1, "carol", [3]uint8{0, 1, 2}, testTimeout); err != ErrNotPlayer {
		t.Fatalf("expected ErrNotPlayer, got %v", err)
	}
}

func TestSetTeamRejectsResubmission(t *testing.T) {
	repo := newMockRepo(1, newBothJoinedMatch())
	if _, err := SetTeam(repo, 1, "alice", [3]uint8{0, 1, 2}, testTimeout); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := SetTeam(repo, 1, "alice", [3]uint8{5, 6, 7}, testTimeout); err != ErrTeamAlreadySubmitted {
		t.Fatalf("expected ErrTeamAlreadySubmitted, got %v", err)
	}
}

func TestSetTeamRejectsUnknownChampion(t *testing.T) {
	repo := newMockRepo(1, newBothJoinedMatch())
	if _, err := SetTeam(repo, 1, "alice", [3]uint8{0, 1, 8}, testTimeout); err != ErrInvalidChampionID {
		t.Fatalf("expected ErrInvalidChampionID, got %v", err)
	}
}

func TestSetTeamRejectsDuplicates(t *testing.T) {
	repo := newMockRepo(1, newBothJoinedMatch())
	if _, err := SetTeam(repo, 1, "alice", [3]uint8{2, 2, 3}, testTimeout); err != ErrDuplicateChampion {
		t.Fatalf("expected ErrDuplicateChampion, got %v", err)
	}
}

func TestSetTeamRejectsOverlapWithOpponent(t *testing.T) {
	repo := newMockRepo(1, newBothJoinedMatch())
	if _, err := SetTeam(repo, 1, "alice", [3]uint8{0, 1, 2}, testTimeout); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := SetTeam(repo, 1, "bob", [3]uint8{2, 3, 4}, testTimeout); err != ErrChampionOverlap {
		t.Fatalf("expected ErrChampionOverlap, got %v", err)
	}
	// A disjoint team is still accepted afterwards.
	if _, err := SetTeam(repo, 1, "bob", [3]uint8{3, 4, 5}, testTimeout); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
