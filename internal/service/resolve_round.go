package service

import (
	"fmt"
	"time"

	"github.com/WiktorStarczewski/miden-arena/internal/arena"
	"github.com/WiktorStarczewski/miden-arena/internal/codec"
	"github.com/WiktorStarczewski/miden-arena/internal/constants"
	"github.com/WiktorStarczewski/miden-arena/internal/engine"
	"github.com/WiktorStarczewski/miden-arena/internal/logging"
	"github.com/WiktorStarczewski/miden-arena/internal/payout"
)

// resolveRound runs one combat round from the two revealed moves and writes
// the outcome back onto the match. If a team is wiped out the match resolves
// and payout notes are written; otherwise the next round opens. The caller
// persists the match.
func resolveRound(repo MatchRepo, m *arena.Match, actionTimeout time.Duration) error {
	actionA, err := codec.DecodeMove(m.MoveA)
	if err != nil {
		return err
	}
	actionB, err := codec.DecodeMove(m.MoveB)
	if err != nil {
		return err
	}

	slotA := m.SlotFor(arena.SideA, actionA.ChampionID)
	slotB := m.SlotFor(arena.SideB, actionB.ChampionID)
	if slotA == nil || slotB == nil {
		return ErrChampionNotOnTeam
	}
	stateA, err := slotA.State()
	if err != nil {
		return err
	}
	stateB, err := slotB.State()
	if err != nil {
		return err
	}

	newA, newB, events := engine.ResolveTurn(stateA, stateB, actionA, actionB)
	if err := slotA.SetState(newA); err != nil {
		return err
	}
	if err := slotB.SetState(newB); err != nil {
		return err
	}

	m.LastRoundSummary = arena.SummarizeEvents(events)
	if encoded, err := arena.EncodeEvents(events); err == nil {
		m.LastRoundEvents = encoded
	}

	aOut, err := teamEliminated(m, arena.SideA)
	if err != nil {
		return err
	}
	bOut, err := teamEliminated(m, arena.SideB)
	if err != nil {
		return err
	}

	if !aOut && !bOut {
		m.Round++
		m.ClearRound()
		m.Deadline = time.Now().Add(actionTimeout)
		m.Message = fmt.Sprintf("Round resolved. Round %d: commit your moves.", m.Round)
		return nil
	}

	switch {
	case aOut && bOut:
		m.Winner = arena.OutcomeDraw
		m.Message = "Both teams were wiped out. The match is a draw."
	case bOut:
		m.Winner = arena.OutcomePlayerA
		m.Message = "Player A wins the match."
	default:
		m.Winner = arena.OutcomePlayerB
		m.Message = "Player B wins the match."
	}
	m.Phase = arena.PhaseResolved
	m.Deadline = time.Time{}

	writePayouts(m, payout.ResolutionNotes(m.Winner, m.PlayerA, m.PlayerB, m.StakeA, m.StakeB, m.Round))

	if !m.StatsCounted {
		_ = repo.UpdateStatsOnMatchEnd(m, "")
		m.StatsCounted = true
	}
	return nil
}

// teamEliminated reports whether all three of the side's champions are KO'd.
func teamEliminated(m *arena.Match, side uint8) (bool, error) {
	slots := m.TeamFor(side)
	if len(slots) != engine.TeamSize {
		return false, ErrChampionNotOnTeam
	}
	var team [engine.TeamSize]engine.ChampionState
	for i, slot := range slots {
		state, err := slot.State()
		if err != nil {
			return false, err
		}
		team[i] = state
	}
	return engine.TeamEliminated(team), nil
}

// writePayouts appends settlement notes and debits the escrow. Note totals
// derive from the same stakes the escrow was credited with, so a shortfall
// means corrupted state.
func writePayouts(m *arena.Match, notes []arena.PayoutNote) {
	total := payout.Total(notes)
	if total > m.Escrow {
		panic("service: payout notes exceed escrowed stakes")
	}
	m.Escrow -= total
	m.Payouts = append(m.Payouts, notes...)
	for _, n := range notes {
		logging.Info("payout note written", logging.Fields{
			constants.LogFieldMatchID: m.ID,
			constants.LogFieldNoteID:  n.NoteID,
			constants.LogFieldAccount: n.Recipient,
			constants.LogFieldAmount:  n.Amount,
		})
	}
}
