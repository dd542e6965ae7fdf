package service

import (
	"errors"
	"time"

	"github.com/WiktorStarczewski/miden-arena/internal/arena"
	"github.com/WiktorStarczewski/miden-arena/internal/codec"
	"github.com/WiktorStarczewski/miden-arena/internal/commit"
)

var (
	ErrNoCommitment       = errors.New("must commit before revealing")
	ErrAlreadyRevealed    = errors.New("already revealed this round")
	ErrCommitmentMismatch = errors.New("commitment mismatch")
	ErrChampionNotOnTeam  = errors.New("champion not on player's team")
	ErrChampionKnockedOut = errors.New("cannot act with KO'd champion")
)

// SubmitReveal opens a player's commitment. The revealed move must hash to
// the stored commitment and name a living champion on the caller's team.
// When the second reveal lands the round resolves immediately; the boolean
// result reports whether that happened.
func SubmitReveal(repo MatchRepo, matchID uint, account string, move, nonce1, nonce2 uint64, actionTimeout time.Duration) (*arena.Match, bool, error) {
	m, err := repo.GetMatchByID(matchID)
	if err != nil || m == nil {
		return nil, false, ErrMatchNotFound
	}
	if m.Phase != arena.PhaseCombat {
		return nil, false, ErrNotInCombat
	}
	side, ok := m.SideOf(account)
	if !ok {
		return nil, false, ErrNotPlayer
	}
	if m.Commitment(side) == "" {
		return nil, false, ErrNoCommitment
	}
	if m.Move(side) != 0 {
		return nil, false, ErrAlreadyRevealed
	}
	if !commit.Verify(m.Commitment(side), move, nonce1, nonce2) {
		return nil, false, ErrCommitmentMismatch
	}

	action, err := codec.DecodeMove(move)
	if err != nil {
		return nil, false, err
	}
	slot := m.SlotFor(side, action.ChampionID)
	if slot == nil {
		return nil, false, ErrChampionNotOnTeam
	}
	state, err := slot.State()
	if err != nil {
		return nil, false, err
	}
	if state.KO {
		return nil, false, ErrChampionKnockedOut
	}

	// Nonces are verified and discarded; only the move value is stored.
	m.SetMove(side, move)

	resolved := false
	if m.MoveA != 0 && m.MoveB != 0 {
		if err := resolveRound(repo, m, actionTimeout); err != nil {
			return nil, false, err
		}
		resolved = true
	}

	if err := repo.UpdateMatch(m); err != nil {
		return nil, resolved, err
	}
	return m, resolved, nil
}
