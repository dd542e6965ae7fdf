package service

import (
	"errors"
	"time"

	"github.com/WiktorStarczewski/miden-arena/internal/arena"
)

// MatchRepo is the minimal repository interface required by the match
// lifecycle operations. Using a small interface simplifies testing.
type MatchRepo interface {
	GetMatchByID(id uint) (*arena.Match, error)
	UpdateMatch(m *arena.Match) error
	UpdateStatsOnMatchEnd(m *arena.Match, stalledAccount string) error
}

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrIncorrectStake = errors.New("incorrect stake amount")
	ErrSelfPlay       = errors.New("cannot play yourself")
	ErrMatchFull      = errors.New("game already full")
	ErrNotPlayer      = errors.New("not a player in this game")
)

// Join seats the caller in the match and escrows their stake. The first
// joiner becomes player A, the second becomes player B and moves the match
// into team selection. The stake must equal the configured amount exactly.
func Join(repo MatchRepo, matchID uint, account string, stake, requiredStake uint64, timeout time.Duration) (*arena.Match, error) {
	m, err := repo.GetMatchByID(matchID)
	if err != nil || m == nil {
		return nil, ErrMatchNotFound
	}
	if stake != requiredStake {
		return nil, ErrIncorrectStake
	}

	switch m.Phase {
	case arena.PhaseWaiting:
		m.PlayerA = account
		m.StakeA = stake
		m.Phase = arena.PhaseOneJoined
		m.Message = "Waiting for an opponent."
	case arena.PhaseOneJoined:
		if m.PlayerA == account {
			return nil, ErrSelfPlay
		}
		m.PlayerB = account
		m.StakeB = stake
		m.Phase = arena.PhaseBothJoined
		m.Message = "Both players joined. Submit your teams."
	default:
		return nil, ErrMatchFull
	}

	ReceiveAsset(m, stake)
	m.Deadline = time.Now().Add(timeout)

	if err := repo.UpdateMatch(m); err != nil {
		return nil, err
	}
	return m, nil
}
