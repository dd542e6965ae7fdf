package arena

// Phase is a match's position in its lifecycle. The numeric values are
// load-bearing: timeout payout identifiers embed them, so they must not be
// renumbered.
type Phase uint8

const (
	PhaseWaiting    Phase = 0 // created, nobody joined
	PhaseOneJoined  Phase = 1 // player A joined and staked
	PhaseBothJoined Phase = 2 // both staked, waiting for teams
	PhaseCombat     Phase = 3 // commit-reveal rounds running
	PhaseResolved   Phase = 4 // terminal
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseOneJoined:
		return "player_a_joined"
	case PhaseBothJoined:
		return "both_joined"
	case PhaseCombat:
		return "combat"
	case PhaseResolved:
		return "resolved"
	}
	return "unknown"
}

// Active reports whether the match can still time out: a player has joined
// and the match has not resolved.
func (p Phase) Active() bool {
	return p >= PhaseOneJoined && p <= PhaseCombat
}

// Outcome records who won a resolved match.
type Outcome uint8

const (
	OutcomeUndecided Outcome = 0
	OutcomePlayerA   Outcome = 1
	OutcomePlayerB   Outcome = 2
	OutcomeDraw      Outcome = 3
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUndecided:
		return "undecided"
	case OutcomePlayerA:
		return "player_a"
	case OutcomePlayerB:
		return "player_b"
	case OutcomeDraw:
		return "draw"
	}
	return "unknown"
}

// Player sides within a match. Side values index champion slots.
const (
	SideA uint8 = 0
	SideB uint8 = 1
)
