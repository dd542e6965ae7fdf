package service

import (
	"errors"
	"time"

	"github.com/WiktorStarczewski/miden-arena/internal/arena"
	"github.com/WiktorStarczewski/miden-arena/internal/constants"
	"github.com/WiktorStarczewski/miden-arena/internal/logging"
	"github.com/WiktorStarczewski/miden-arena/internal/payout"
)

var (
	ErrMatchNotActive      = errors.New("game not active")
	ErrTimeoutNotReached   = errors.New("timeout not reached")
	ErrOnlyPlayerAMayClaim = errors.New("only player A can claim in state 1")
)

// ClaimTimeout settles an abandoned match on a player's request. Before an
// opponent joins only player A may claim their refund back; afterwards
// either player can. During combat the stakes go to whichever player got
// further through the current round, or back to both on equal progress.
func ClaimTimeout(repo MatchRepo, matchID uint, claimant string) (*arena.Match, error) {
	m, err := repo.GetMatchByID(matchID)
	if err != nil || m == nil {
		return nil, ErrMatchNotFound
	}
	if !m.Phase.Active() {
		return nil, ErrMatchNotActive
	}
	if !time.Now().After(m.Deadline) {
		return nil, ErrTimeoutNotReached
	}

	if m.Phase == arena.PhaseOneJoined {
		if claimant != m.PlayerA {
			return nil, ErrOnlyPlayerAMayClaim
		}
	} else if !m.IsPlayer(claimant) {
		return nil, ErrNotPlayer
	}

	settleTimeout(repo, m)
	if err := repo.UpdateMatch(m); err != nil {
		return nil, err
	}
	return m, nil
}

// HandleTimedOutMatch settles a single expired match found by the sweeper.
// A match already settled by a racing claim is left alone.
func HandleTimedOutMatch(repo MatchRepo, m *arena.Match) error {
	if !m.Phase.Active() || !time.Now().After(m.Deadline) {
		return nil
	}
	settleTimeout(repo, m)
	return repo.UpdateMatch(m)
}

// settleTimeout resolves the match in place for whatever phase the timeout
// interrupted. Combat timeouts decide a winner by round progress before the
// payout notes are written; earlier phases just refund whoever staked.
func settleTimeout(repo MatchRepo, m *arena.Match) {
	claimedPhase := m.Phase
	stalled := ""
	if claimedPhase == arena.PhaseCombat {
		aProgress := m.RoundProgress(arena.SideA)
		bProgress := m.RoundProgress(arena.SideB)
		switch {
		case aProgress > bProgress:
			m.Winner = arena.OutcomePlayerA
			stalled = m.PlayerB
			m.Message = "Match forfeited: player B stopped responding."
		case bProgress > aProgress:
			m.Winner = arena.OutcomePlayerB
			stalled = m.PlayerA
			m.Message = "Match forfeited: player A stopped responding."
		default:
			m.Winner = arena.OutcomeDraw
			m.Message = "Match timed out with equal progress. Stakes refunded."
		}
	} else if claimedPhase == arena.PhaseOneJoined {
		m.Message = "Match expired before an opponent joined. Stake refunded."
	} else {
		m.Message = "Match expired during team selection. Stakes refunded."
	}

	m.Phase = arena.PhaseResolved
	m.Deadline = time.Time{}

	writePayouts(m, payout.TimeoutNotes(claimedPhase, m.Winner, m.PlayerA, m.PlayerB, m.StakeA, m.StakeB))

	// Matches abandoned before combat never count toward player records.
	if claimedPhase == arena.PhaseCombat && !m.StatsCounted {
		_ = repo.UpdateStatsOnMatchEnd(m, stalled)
		m.StatsCounted = true
	}

	logging.Info("match settled by timeout", logging.Fields{
		constants.LogFieldMatchID: m.ID,
		constants.LogFieldPhase:   claimedPhase.String(),
		constants.LogFieldWinner:  m.Winner.String(),
	})
}
