package arena

import (
	"time"

	"gorm.io/gorm"

	"github.com/WiktorStarczewski/miden-arena/internal/codec"
	"github.com/WiktorStarczewski/miden-arena/internal/engine"
)

// Match is the authoritative record of one two-player arena match. It owns
// all mutable per-match state; champion combat state lives in the attached
// ChampionSlot rows and settled transfers in PayoutNote rows.
type Match struct {
	gorm.Model
	JoinCode string `json:"join_code" gorm:"unique"`
	Private  bool   `json:"private"`
	Phase    Phase  `json:"phase"`
	Round    uint64 `json:"round"`

	// Player identities are opaque account strings assigned at session
	// creation. Empty means the seat is not taken yet.
	PlayerA string `json:"player_a"`
	PlayerB string `json:"player_b"`
	StakeA  uint64 `json:"stake_a"`
	StakeB  uint64 `json:"stake_b"`

	// Escrow tracks assets received and not yet paid out. Stakes credit it,
	// payout notes debit it; it must be zero once all notes are written.
	Escrow uint64 `json:"-"`

	// Bitfield: bit 0 set when player A's team is in, bit 1 for player B.
	TeamsSubmitted uint8 `json:"-"`

	// Commitments are lowercase hex digests; empty means not committed this
	// round. Moves are the revealed wire values; zero means not revealed.
	// Kept out of JSON so an opponent cannot read them mid-round.
	CommitA string `json:"-" gorm:"size:64"`
	CommitB string `json:"-" gorm:"size:64"`
	MoveA   uint64 `json:"-"`
	MoveB   uint64 `json:"-"`

	// Deadline is when the match becomes claimable by timeout. Reset on
	// every phase entry and round advance.
	Deadline time.Time `json:"deadline"`

	Winner  Outcome `json:"winner"`
	Message string  `json:"message"`

	// Human-readable log of the last resolved round plus the raw event
	// list as JSON, for clients that render the fight.
	LastRoundSummary string `json:"last_round_summary"`
	LastRoundEvents  string `json:"last_round_events" gorm:"type:text"`

	Slots   []ChampionSlot `json:"slots"`
	Payouts []PayoutNote   `json:"payouts"`

	StatsCounted bool `json:"-"`
}

// ChampionSlot persists one champion's packed combat state. Six rows per
// match once both teams are in: sides 0 and 1, indexes 0–2 in submission
// order.
type ChampionSlot struct {
	gorm.Model
	MatchID    uint   `json:"-" gorm:"uniqueIndex:idx_champion_slot_position"`
	Side       uint8  `json:"side" gorm:"uniqueIndex:idx_champion_slot_position"`
	Index      uint8  `json:"index" gorm:"uniqueIndex:idx_champion_slot_position;column:slot_index"`
	ChampionID uint8  `json:"champion_id"`
	Packed     []byte `json:"-" gorm:"column:packed;type:blob"`
}

func (ChampionSlot) TableName() string { return "champion_slots" }

// State unpacks the slot's combat state.
func (s *ChampionSlot) State() (engine.ChampionState, error) {
	return codec.UnmarshalState(s.Packed, s.ChampionID)
}

// SetState packs and stores the combat state.
func (s *ChampionSlot) SetState(state engine.ChampionState) error {
	data, err := codec.MarshalState(&state)
	if err != nil {
		return err
	}
	s.Packed = data
	return nil
}

// PayoutNote is one settled transfer instruction: credit Recipient with
// Amount. NoteID is unique within a match — round numbers for combat
// resolutions, a high band for timeout claims — so equal-value transfers
// never collide.
type PayoutNote struct {
	gorm.Model
	MatchID   uint   `json:"-" gorm:"uniqueIndex:idx_payout_note_id"`
	NoteID    uint64 `json:"note_id" gorm:"uniqueIndex:idx_payout_note_id"`
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}

func (PayoutNote) TableName() string { return "payout_notes" }

// PlayerProfile stores a player's aggregate record across matches.
type PlayerProfile struct {
	gorm.Model
	Account       string `json:"account" gorm:"uniqueIndex"`
	DisplayName   string `json:"display_name"`
	MatchesPlayed int    `json:"matches_played"`
	Wins          int    `json:"wins"`
	Draws         int    `json:"draws"`
	Timeouts      int    `json:"timeouts"`
}

func (PlayerProfile) TableName() string { return "player_profiles" }

// SideOf returns which side the account plays, if any.
func (m *Match) SideOf(account string) (uint8, bool) {
	switch {
	case account != "" && account == m.PlayerA:
		return SideA, true
	case account != "" && account == m.PlayerB:
		return SideB, true
	}
	return 0, false
}

// IsPlayer reports whether the account is one of the two players.
func (m *Match) IsPlayer(account string) bool {
	_, ok := m.SideOf(account)
	return ok
}

// PlayerOn returns the account occupying the given side.
func (m *Match) PlayerOn(side uint8) string {
	if side == SideA {
		return m.PlayerA
	}
	return m.PlayerB
}

// TeamSubmitted reports whether the side's team is in.
func (m *Match) TeamSubmitted(side uint8) bool {
	return m.TeamsSubmitted&(1<<side) != 0
}

// TeamFor returns the side's champion slots in submission order. Empty
// until the side's team is submitted.
func (m *Match) TeamFor(side uint8) []*ChampionSlot {
	team := make([]*ChampionSlot, 0, engine.TeamSize)
	for idx := uint8(0); idx < engine.TeamSize; idx++ {
		for i := range m.Slots {
			if m.Slots[i].Side == side && m.Slots[i].Index == idx {
				team = append(team, &m.Slots[i])
			}
		}
	}
	return team
}

// SlotFor finds the side's slot holding the given champion.
func (m *Match) SlotFor(side uint8, championID uint8) *ChampionSlot {
	for i := range m.Slots {
		if m.Slots[i].Side == side && m.Slots[i].ChampionID == championID {
			return &m.Slots[i]
		}
	}
	return nil
}

// Commitment returns the side's stored commitment for this round.
func (m *Match) Commitment(side uint8) string {
	if side == SideA {
		return m.CommitA
	}
	return m.CommitB
}

// SetCommitment stores the side's commitment.
func (m *Match) SetCommitment(side uint8, c string) {
	if side == SideA {
		m.CommitA = c
	} else {
		m.CommitB = c
	}
}

// Move returns the side's revealed move, zero if not revealed.
func (m *Match) Move(side uint8) uint64 {
	if side == SideA {
		return m.MoveA
	}
	return m.MoveB
}

// SetMove stores the side's revealed move.
func (m *Match) SetMove(side uint8, v uint64) {
	if side == SideA {
		m.MoveA = v
	} else {
		m.MoveB = v
	}
}

// RoundProgress scores how far the side has come in the current round:
// 2 revealed, 1 committed, 0 neither. Timeout resolution compares these.
func (m *Match) RoundProgress(side uint8) int {
	switch {
	case m.Move(side) != 0:
		return 2
	case m.Commitment(side) != "":
		return 1
	}
	return 0
}

// ClearRound empties both commit and reveal slots for the next round.
func (m *Match) ClearRound() {
	m.CommitA, m.CommitB = "", ""
	m.MoveA, m.MoveB = 0, 0
}
