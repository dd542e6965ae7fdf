package service

import (
	"errors"

	"github.com/WiktorStarczewski/miden-arena/internal/arena"
	"github.com/WiktorStarczewski/miden-arena/internal/commit"
)

var (
	ErrNotInCombat       = errors.New("must be in combat state")
	ErrAlreadyCommitted  = errors.New("already committed this round")
	ErrInvalidCommitment = errors.New("commitment must be 64 hex characters")
)

// SubmitCommit stores a player's move commitment for the current round.
// The commitment stays hidden from the opponent until both reveals land.
func SubmitCommit(repo MatchRepo, matchID uint, account, commitment string) (*arena.Match, error) {
	m, err := repo.GetMatchByID(matchID)
	if err != nil || m == nil {
		return nil, ErrMatchNotFound
	}
	if m.Phase != arena.PhaseCombat {
		return nil, ErrNotInCombat
	}
	side, ok := m.SideOf(account)
	if !ok {
		return nil, ErrNotPlayer
	}
	if m.Commitment(side) != "" {
		return nil, ErrAlreadyCommitted
	}

	normalized, ok := commit.Normalize(commitment)
	if !ok {
		return nil, ErrInvalidCommitment
	}
	m.SetCommitment(side, normalized)

	if err := repo.UpdateMatch(m); err != nil {
		return nil, err
	}
	return m, nil
}
