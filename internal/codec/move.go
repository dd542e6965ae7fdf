package codec

import (
	"errors"

	"github.com/WiktorStarczewski/miden-arena/internal/engine"
)

// Moves encode as champion_id × 2 + ability_index + 1, giving the range
// [1, 16] for the 8-champion catalog. Zero is reserved so an empty reveal
// slot can never be mistaken for a move.
const (
	MinMove = 1
	MaxMove = engine.ChampionCount * engine.AbilitiesPerChampion
)

var ErrMoveOutOfRange = errors.New("move out of range")

// EncodeMove maps an action to its wire value.
func EncodeMove(a engine.Action) uint64 {
	return uint64(a.ChampionID)*2 + uint64(a.AbilityIndex) + 1
}

// DecodeMove maps a wire value back to an action, rejecting values outside
// [MinMove, MaxMove].
func DecodeMove(v uint64) (engine.Action, error) {
	if v < MinMove || v > MaxMove {
		return engine.Action{}, ErrMoveOutOfRange
	}
	return engine.Action{
		ChampionID:   uint8((v - 1) / 2),
		AbilityIndex: uint8((v - 1) % 2),
	}, nil
}
