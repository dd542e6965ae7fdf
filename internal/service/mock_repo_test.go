package service

import (
	"testing"
	"time"

	"github.com/WiktorStarczewski/miden-arena/internal/arena"
)

const (
	testStake   = uint64(10)
	testTimeout = time.Minute
)

type mockMatchRepo struct {
	matches      map[uint]*arena.Match
	statsCalled  bool
	statsStalled string
}

func newMockRepo(id uint, m *arena.Match) *mockMatchRepo {
	return &mockMatchRepo{matches: map[uint]*arena.Match{id: m}}
}

func (r *mockMatchRepo) GetMatchByID(id uint) (*arena.Match, error) {
	if m, ok := r.matches[id]; ok {
		return m, nil
	}
	return nil, ErrMatchNotFound
}

func (r *mockMatchRepo) UpdateMatch(m *arena.Match) error { return nil }

func (r *mockMatchRepo) UpdateStatsOnMatchEnd(m *arena.Match, stalledAccount string) error {
	r.statsCalled = true
	r.statsStalled = stalledAccount
	return nil
}

// newBothJoinedMatch builds a match with both players seated and staked.
func newBothJoinedMatch() *arena.Match {
	return &arena.Match{
		Phase:    arena.PhaseBothJoined,
		PlayerA:  "alice",
		PlayerB:  "bob",
		StakeA:   testStake,
		StakeB:   testStake,
		Escrow:   testStake * 2,
		Deadline: time.Now().Add(testTimeout),
	}
}

// newCombatMatch builds a match through real team submission so slots carry
// properly packed state: alice fields 0,1,2 and bob fields 3,4,5.
func newCombatMatch(t *testing.T) (*mockMatchRepo, *arena.Match) {
	t.Helper()
	m := newBothJoinedMatch()
	repo := newMockRepo(1, m)
	if _, err := SetTeam(repo, 1, "alice", [3]uint8{0, 1, 2}, testTimeout); err != nil {
		t.Fatalf("alice team: %v", err)
	}
	if _, err := SetTeam(repo, 1, "bob", [3]uint8{3, 4, 5}, testTimeout); err != nil {
		t.Fatalf("bob team: %v", err)
	}
	if m.Phase != arena.PhaseCombat {
		t.Fatalf("expected combat phase, got %v", m.Phase)
	}
	return repo, m
}
