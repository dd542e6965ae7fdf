// Package codec packs champion combat state into bounded 64-bit words and
// encodes player moves. The word layout mirrors the settlement layer's
// storage format, where every value must stay below the Goldilocks prime
// 2^64 − 2^32 + 1.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/WiktorStarczewski/miden-arena/internal/engine"
)

// fieldBound is the Goldilocks prime. Packed words at or above it cannot be
// represented by the settlement layer, so packing fails rather than truncate.
const fieldBound uint64 = 0xFFFF_FFFF_0000_0001

// StateWords is the number of 64-bit words one packed champion occupies.
const StateWords = 4

// StateBytes is the serialized size of a packed champion state.
const StateBytes = StateWords * 8

// packedSlots is how many buff slots survive packing. Slots beyond the
// fourth are dropped by the layout, so steady-state buff counts must stay
// within it; the catalog's short durations guarantee that.
const packedSlots = 4

var (
	ErrWordOverflow    = errors.New("packed word exceeds field bound")
	ErrBuffWidth       = errors.New("buff value or duration exceeds packed width")
	ErrInvalidStatBits = errors.New("invalid stat bits in packed state")
	ErrStateSize       = errors.New("packed state has wrong size")
)

// PackState encodes a champion state into 4 words:
//
//	word0: current_hp (high 32) | max_hp (low 32)
//	word1: is_ko flag (bit 32) | damage-dealt telemetry (low 32)
//	word2: buff slots 0–3 at 16 bits each, slot 0 in the most significant bits
//	word3: reserved, zero
//
// The champion id and the buff count are not packed: the id is recovered
// from the team record on unpack and the count is recomputed from the
// active slots. Packing fails if a word would reach the field bound or a
// buff exceeds its 6-bit value / 4-bit duration field.
func PackState(s *engine.ChampionState) ([StateWords]uint64, error) {
	var words [StateWords]uint64

	words[0] = uint64(s.CurrentHP)<<32 | uint64(s.MaxHP)
	if s.KO {
		words[1] = 1 << 32
	}
	words[1] |= uint64(s.DamageDealt)

	for i := 0; i < packedSlots; i++ {
		bits, err := packBuff(&s.Buffs[i])
		if err != nil {
			return words, fmt.Errorf("slot %d: %w", i, err)
		}
		words[2] |= uint64(bits) << ((3 - i) * 16)
	}

	for i, w := range words {
		if w >= fieldBound {
			return words, fmt.Errorf("word %d: %w", i, ErrWordOverflow)
		}
	}
	return words, nil
}

// UnpackState rebuilds a champion state from its packed words. The champion
// id comes from the caller's team lookup; the buff count is recomputed by
// counting active slots.
func UnpackState(words [StateWords]uint64, championID uint8) (engine.ChampionState, error) {
	for i, w := range words {
		if w >= fieldBound {
			return engine.ChampionState{}, fmt.Errorf("word %d: %w", i, ErrWordOverflow)
		}
	}

	s := engine.ChampionState{
		ID:          championID,
		CurrentHP:   uint32(words[0] >> 32),
		MaxHP:       uint32(words[0]),
		KO:          (words[1]>>32)&1 == 1,
		DamageDealt: uint32(words[1]),
	}

	for i := 0; i < packedSlots; i++ {
		bits := uint16(words[2] >> ((3 - i) * 16))
		slot, err := unpackBuff(bits)
		if err != nil {
			return engine.ChampionState{}, fmt.Errorf("slot %d: %w", i, err)
		}
		s.Buffs[i] = slot
		if slot.Active {
			s.BuffCount++
		}
	}
	return s, nil
}

// Buff slot bit layout, most significant first:
// stat(2) | is_debuff(1) | value(6) | turns(4) | active(1) | reserved(2).
func packBuff(b *engine.BuffSlot) (uint16, error) {
	if !b.Active {
		return 0, nil
	}
	if b.Value > 63 || b.Turns > 15 {
		return 0, ErrBuffWidth
	}
	bits := uint16(b.Stat)<<14 | uint16(b.Value)<<7 | uint16(b.Turns)<<3 | 1<<2
	if b.Debuff {
		bits |= 1 << 13
	}
	return bits, nil
}

func unpackBuff(bits uint16) (engine.BuffSlot, error) {
	if (bits>>2)&1 == 0 {
		return engine.BuffSlot{}, nil
	}
	statBits := bits >> 14 & 0x03
	if statBits > uint16(engine.StatAttack) {
		return engine.BuffSlot{}, ErrInvalidStatBits
	}
	return engine.BuffSlot{
		Stat:   engine.Stat(statBits),
		Debuff: bits>>13&1 == 1,
		Value:  uint32(bits >> 7 & 0x3F),
		Turns:  uint32(bits >> 3 & 0x0F),
		Active: true,
	}, nil
}

// MarshalState packs and serializes a champion state as 32 big-endian bytes,
// the form stored in champion slot rows.
func MarshalState(s *engine.ChampionState) ([]byte, error) {
	words, err := PackState(s)
	if err != nil {
		return nil, err
	}
	out := make([]byte, StateBytes)
	for i, w := range words {
		binary.BigEndian.PutUint64(out[i*8:], w)
	}
	return out, nil
}

// UnmarshalState reverses MarshalState.
func UnmarshalState(data []byte, championID uint8) (engine.ChampionState, error) {
	if len(data) != StateBytes {
		return engine.ChampionState{}, fmt.Errorf("%w: got %d bytes", ErrStateSize, len(data))
	}
	var words [StateWords]uint64
	for i := range words {
		words[i] = binary.BigEndian.Uint64(data[i*8:])
	}
	return UnpackState(words, championID)
}
