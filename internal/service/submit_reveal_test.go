package service

import (
	"testing"

	"github.com/WiktorStarczewski/miden-arena/internal/arena"
	"github.com/WiktorStarczewski/miden-arena/internal/codec"
	"github.com/WiktorStarczewski/miden-arena/internal/commit"
	"github.com/WiktorStarczewski/miden-arena/internal/engine"
)

// commitMove submits the commitment for a move and returns the encoded move
// value for the later reveal.
func commitMove(t *testing.T, repo MatchRepo, account string, championID, abilityIndex uint8, n1, n2 uint64) uint64 {
	t.Helper()
	move := codec.EncodeMove(engine.Action{ChampionID: championID, AbilityIndex: abilityIndex})
	if _, err := SubmitCommit(repo, 1, account, commit.Digest(move, n1, n2)); err != nil {
		t.Fatalf("commit for %s: %v", account, err)
	}
	return move
}

func TestSubmitRevealResolvesRoundWhenBothAreIn(t *testing.T) {
	repo, m := newCombatMatch(t)
	moveA := commitMove(t, repo, "alice", 0, 0, 11, 12) // Inferno, Eruption
	moveB := commitMove(t, repo, "bob", 3, 0, 21, 22)   // Torrent, Tidal Wave

	got, resolved, err := SubmitReveal(repo, 1, "alice", moveA, 11, 12, testTimeout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved {
		t.Fatalf("round must not resolve after a single reveal")
	}
	if got.MoveA != moveA {
		t.Fatalf("expected stored move %d, got %d", moveA, got.MoveA)
	}

	got, resolved, err = SubmitReveal(repo, 1, "bob", moveB, 21, 22, testTimeout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resolved {
		t.Fatalf("expected the round to resolve")
	}
	if got.Round != 1 {
		t.Fatalf("expected round 1 after resolution, got %d", got.Round)
	}
	if got.CommitA != "" || got.CommitB != "" || got.MoveA != 0 || got.MoveB != 0 {
		t.Fatalf("round slots must be cleared for the next round")
	}
	if got.LastRoundSummary == "" || got.LastRoundEvents == "" {
		t.Fatalf("expected a round summary and event log")
	}
	if got.Phase != arena.PhaseCombat {
		t.Fatalf("match must continue, got phase %v", got.Phase)
	}

	// Inferno strikes first (speed 16 vs 10): 35x(20+20)x67/2000 = 46,
	// less Torrent's 12 defense leaves 34. Tidal Wave answers for 47.
	stateB, err := m.SlotFor(arena.SideB, 3).State()
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if stateB.CurrentHP != 76 {
		t.Fatalf("expected Torrent at 76 HP, got %d", stateB.CurrentHP)
	}
	stateA, err := m.SlotFor(arena.SideA, 0).State()
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if stateA.CurrentHP != 33 {
		t.Fatalf("expected Inferno at 33 HP, got %d", stateA.CurrentHP)
	}
}

func TestSubmitRevealRejectsWithoutCommit(t *testing.T) {
	repo, _ := newCombatMatch(t)
	if _, _, err := SubmitReveal(repo, 1, "alice", 1, 11, 12, testTimeout); err != ErrNoCommitment {
		t.Fatalf("expected ErrNoCommitment, got %v", err)
	}
}

func TestSubmitRevealRejectsDoubleReveal(t *testing.T) {
	repo, _ := newCombatMatch(t)
	move := commitMove(t, repo, "alice", 0, 0, 11, 12)
	if _, _, err := SubmitReveal(repo, 1, "alice", move, 11, 12, testTimeout); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := SubmitReveal(repo, 1, "alice", move, 11, 12, testTimeout); err != ErrAlreadyRevealed {
		t.Fatalf("expected ErrAlreadyRevealed, got %v", err)
	}
}

func TestSubmitRevealRejectsMismatchedOpening(t *testing.T) {
	repo, m := newCombatMatch(t)
	move := commitMove(t, repo, "alice", 0, 0, 11, 12)
	if _, _, err := SubmitReveal(repo, 1, "alice", move, 11, 13, testTimeout); err != ErrCommitmentMismatch {
		t.Fatalf("wrong nonce: expected ErrCommitmentMismatch, got %v", err)
	}
	if _, _, err := SubmitReveal(repo, 1, "alice", move+1, 11, 12, testTimeout); err != ErrCommitmentMismatch {
		t.Fatalf("wrong move: expected ErrCommitmentMismatch, got %v", err)
	}
	// A failed opening must leave the reveal slot empty for a retry.
	if m.MoveA != 0 {
		t.Fatalf("expected no stored move after mismatches, got %d", m.MoveA)
	}
	if _, _, err := SubmitReveal(repo, 1, "alice", move, 11, 12, testTimeout); err != nil {
		t.Fatalf("correct opening after mismatches: %v", err)
	}
}

func TestSubmitRevealRejectsOutOfRangeMove(t *testing.T) {
	repo, _ := newCombatMatch(t)
	// A commitment over an illegal value verifies but must not decode.
	for _, bad := range []uint64{0, 17, 255} {
		m, _ := repo.GetMatchByID(1)
		m.ClearRound()
		if _, err := SubmitCommit(repo, 1, "alice", commit.Digest(bad, 11, 12)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, _, err := SubmitReveal(repo, 1, "alice", bad, 11, 12, testTimeout); err != codec.ErrMoveOutOfRange {
			t.Fatalf("move %d: expected ErrMoveOutOfRange, got %v", bad, err)
		}
	}
}

func TestSubmitRevealRejectsForeignChampion(t *testing.T) {
	repo, _ := newCombatMatch(t)
	// Torrent (3) fights for bob, not alice.
	move := commitMove(t, repo, "alice", 3, 0, 11, 12)
	if _, _, err := SubmitReveal(repo, 1, "alice", move, 11, 12, testTimeout); err != ErrChampionNotOnTeam {
		t.Fatalf("expected ErrChampionNotOnTeam, got %v", err)
	}
}

func TestSubmitRevealRejectsKnockedOutChampion(t *testing.T) {
	repo, m := newCombatMatch(t)
	slot := m.SlotFor(arena.SideA, 0)
	state, err := slot.State()
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	state.CurrentHP = 0
	state.KO = true
	if err := slot.SetState(state); err != nil {
		t.Fatalf("pack: %v", err)
	}

	move := commitMove(t, repo, "alice", 0, 0, 11, 12)
	if _, _, err := SubmitReveal(repo, 1, "alice", move, 11, 12, testTimeout); err != ErrChampionKnockedOut {
		t.Fatalf("expected ErrChampionKnockedOut, got %v", err)
	}
}

func TestMatchResolvesWhenTeamIsWipedOut(t *testing.T) {
	repo, m := newCombatMatch(t)

	// Leave bob only Torrent, hanging on at 1 HP.
	for _, id := range []uint8{4, 5} {
		slot := m.SlotFor(arena.SideB, id)
		state, err := slot.State()
		if err != nil {
			t.Fatalf("unpack: %v", err)
		}
		state.CurrentHP = 0
		state.KO = true
		if err := slot.SetState(state); err != nil {
			t.Fatalf("pack: %v", err)
		}
	}
	slot := m.SlotFor(arena.SideB, 3)
	state, err := slot.State()
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	state.CurrentHP = 1
	if err := slot.SetState(state); err != nil {
		t.Fatalf("pack: %v", err)
	}

	moveA := commitMove(t, repo, "alice", 0, 0, 11, 12)
	moveB := commitMove(t, repo, "bob", 3, 0, 21, 22)
	if _, _, err := SubmitReveal(repo, 1, "bob", moveB, 21, 22, testTimeout); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, resolved, err := SubmitReveal(repo, 1, "alice", moveA, 11, 12, testTimeout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resolved {
		t.Fatalf("expected the match to resolve")
	}
	if got.Phase != arena.PhaseResolved {
		t.Fatalf("expected resolved phase, got %v", got.Phase)
	}
	if got.Winner != arena.OutcomePlayerA {
		t.Fatalf("expected player A to win, got %v", got.Winner)
	}
	if len(got.Payouts) != 1 {
		t.Fatalf("expected one payout note, got %d", len(got.Payouts))
	}
	note := got.Payouts[0]
	if note.Recipient != "alice" || note.Amount != testStake*2 || note.NoteID != got.Round {
		t.Fatalf("unexpected payout note: %+v", note)
	}
	if got.Escrow != 0 {
		t.Fatalf("expected drained escrow, got %d", got.Escrow)
	}
	if !repo.statsCalled || !got.StatsCounted {
		t.Fatalf("expected stats to be recorded exactly once")
	}
	if !got.Deadline.IsZero() {
		t.Fatalf("resolved match must not keep a deadline")
	}
}
