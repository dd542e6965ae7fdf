// Package payout builds the transfer instructions written when a match
// settles. Note identifiers must be unique within a match: combat
// resolutions use the round number, timeout claims use a high band offset
// by the phase they interrupted, so the two triggers can never collide.
package payout

import (
	"github.com/WiktorStarczewski/miden-arena/internal/arena"
)

// TimeoutBand is the base of the timeout note-id range. Round numbers stay
// far below it for any realistic match length.
const TimeoutBand uint64 = 1_000_000

// ResolutionNotes builds the notes for a match that resolved in combat at
// the given round. The winner takes both stakes; a draw refunds each player
// under distinct ids (round and round+1).
func ResolutionNotes(winner arena.Outcome, playerA, playerB string, stakeA, stakeB, round uint64) []arena.PayoutNote {
	pot := stakeA + stakeB
	switch winner {
	case arena.OutcomePlayerA:
		return []arena.PayoutNote{{NoteID: round, Recipient: playerA, Amount: pot}}
	case arena.OutcomePlayerB:
		return []arena.PayoutNote{{NoteID: round, Recipient: playerB, Amount: pot}}
	case arena.OutcomeDraw:
		return []arena.PayoutNote{
			{NoteID: round, Recipient: playerA, Amount: stakeA},
			{NoteID: round + 1, Recipient: playerB, Amount: stakeB},
		}
	}
	panic("payout: resolution without a decided winner")
}

// TimeoutNotes builds the notes for a timeout claim made while the match
// was in the given phase. Before combat the stakes paid so far are
// refunded; during combat the winner argument decides pot or refunds.
func TimeoutNotes(phase arena.Phase, winner arena.Outcome, playerA, playerB string, stakeA, stakeB uint64) []arena.PayoutNote {
	base := TimeoutBand + uint64(phase)
	switch phase {
	case arena.PhaseOneJoined:
		return []arena.PayoutNote{{NoteID: base, Recipient: playerA, Amount: stakeA}}
	case arena.PhaseBothJoined:
		return []arena.PayoutNote{
			{NoteID: base, Recipient: playerA, Amount: stakeA},
			{NoteID: base + 1, Recipient: playerB, Amount: stakeB},
		}
	case arena.PhaseCombat:
		pot := stakeA + stakeB
		switch winner {
		case arena.OutcomePlayerA:
			return []arena.PayoutNote{{NoteID: base, Recipient: playerA, Amount: pot}}
		case arena.OutcomePlayerB:
			return []arena.PayoutNote{{NoteID: base, Recipient: playerB, Amount: pot}}
		case arena.OutcomeDraw:
			return []arena.PayoutNote{
				{NoteID: base, Recipient: playerA, Amount: stakeA},
				{NoteID: base + 1, Recipient: playerB, Amount: stakeB},
			}
		}
		panic("payout: combat timeout without a decided winner")
	}
	panic("payout: timeout claim in a non-claimable phase")
}

// Total sums the amounts across notes; settlement asserts it equals the
// escrowed stakes so value is conserved.
func Total(notes []arena.PayoutNote) uint64 {
	var sum uint64
	for _, n := range notes {
		sum += n.Amount
	}
	return sum
}
