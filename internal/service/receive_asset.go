package service

import "github.com/WiktorStarczewski/miden-arena/internal/arena"

// ReceiveAsset credits a delivered stake to the match escrow. This is
// bookkeeping only: the value transfer itself happens upstream, and the
// escrow balance exists so payout notes can never exceed what the match
// actually holds.
func ReceiveAsset(m *arena.Match, amount uint64) {
	m.Escrow += amount
}
