package service

import (
	"errors"
	"time"

	"github.com/WiktorStarczewski/miden-arena/internal/arena"
	"github.com/WiktorStarczewski/miden-arena/internal/engine"
)

var (
	ErrNotInTeamPhase       = errors.New("must be in both_joined state")
	ErrTeamAlreadySubmitted = errors.New("team already submitted")
	ErrInvalidChampionID    = errors.New("invalid champion ID")
	ErrDuplicateChampion    = errors.New("duplicate champion")
	ErrChampionOverlap      = errors.New("champion overlap")
)

// SetTeam records a player's three champions and initializes their combat
// state. Champions must exist, be distinct, and not appear on the
// opponent's team. When the second team lands the match enters combat.
func SetTeam(repo MatchRepo, matchID uint, account string, championIDs [engine.TeamSize]uint8, timeout time.Duration) (*arena.Match, error) {
	m, err := repo.GetMatchByID(matchID)
	if err != nil || m == nil {
		return nil, ErrMatchNotFound
	}
	if m.Phase != arena.PhaseBothJoined {
		return nil, ErrNotInTeamPhase
	}
	side, ok := m.SideOf(account)
	if !ok {
		return nil, ErrNotPlayer
	}
	if m.TeamSubmitted(side) {
		return nil, ErrTeamAlreadySubmitted
	}

	for _, id := range championIDs {
		if _, ok := engine.ChampionByID(id); !ok {
			return nil, ErrInvalidChampionID
		}
	}
	if championIDs[0] == championIDs[1] || championIDs[0] == championIDs[2] || championIDs[1] == championIDs[2] {
		return nil, ErrDuplicateChampion
	}

	// No champion may fight on both sides.
	opponent := side ^ 1
	if m.TeamSubmitted(opponent) {
		for _, slot := range m.TeamFor(opponent) {
			for _, id := range championIDs {
				if slot.ChampionID == id {
					return nil, ErrChampionOverlap
				}
			}
		}
	}

	for idx, id := range championIDs {
		state, _ := engine.NewChampionState(id)
		slot := arena.ChampionSlot{Side: side, Index: uint8(idx), ChampionID: id}
		if err := slot.SetState(state); err != nil {
			return nil, err
		}
		m.Slots = append(m.Slots, slot)
	}
	m.TeamsSubmitted |= 1 << side

	if m.TeamSubmitted(arena.SideA) && m.TeamSubmitted(arena.SideB) {
		m.Phase = arena.PhaseCombat
		m.Deadline = time.Now().Add(timeout)
		m.Message = "Both teams are in. Commit your moves."
	} else {
		m.Message = "A team was submitted. Waiting for the opponent's."
	}

	if err := repo.UpdateMatch(m); err != nil {
		return nil, err
	}
	return m, nil
}
