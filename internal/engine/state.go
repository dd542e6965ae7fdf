package engine

// MaxBuffSlots is the number of buff slots each combatant carries. Slots are
// unordered; insertion takes the first inactive slot.
const MaxBuffSlots = 8

// BuffSlot is one active stat modifier on a combatant. Value and Turns are
// width-limited by the packed representation (see the codec package): value
// fits in 6 bits, turns in 4.
type BuffSlot struct {
	Stat   Stat
	Value  uint32
	Turns  uint32
	Debuff bool
	Active bool
}

// ChampionState is the mutable per-match state of one champion. It is
// created at team submission, mutated only by ResolveTurn, and meaningless
// after the match resolves.
//
// BuffCount is a derived cache of the active slots and KO follows from
// CurrentHP reaching zero; neither is authoritative on its own.
type ChampionState struct {
	ID          uint8
	CurrentHP   uint32
	MaxHP       uint32
	Buffs       [MaxBuffSlots]BuffSlot
	BuffCount   uint8
	BurnTurns   uint32
	KO          bool
	DamageDealt uint32
}

// NewChampionState initializes combat state from the catalog entry for id.
// The second return is false when the id is out of catalog range.
func NewChampionState(id uint8) (ChampionState, bool) {
	c, ok := ChampionByID(id)
	if !ok {
		return ChampionState{}, false
	}
	return ChampionState{
		ID:        id,
		CurrentHP: c.HP,
		MaxHP:     c.HP,
	}, true
}

// SumBuffs totals the values of active non-debuff slots for the given stat.
func SumBuffs(s *ChampionState, stat Stat) uint32 {
	var total uint32
	for i := range s.Buffs {
		if s.Buffs[i].Active && s.Buffs[i].Stat == stat && !s.Buffs[i].Debuff {
			total += s.Buffs[i].Value
		}
	}
	return total
}

// SumDebuffs totals the values of active debuff slots for the given stat.
func SumDebuffs(s *ChampionState, stat Stat) uint32 {
	var total uint32
	for i := range s.Buffs {
		if s.Buffs[i].Active && s.Buffs[i].Stat == stat && s.Buffs[i].Debuff {
			total += s.Buffs[i].Value
		}
	}
	return total
}

// insertBuff places the slot into the first inactive position. Running out
// of slots means the catalog allows more concurrent modifiers than the state
// can hold, which is a data bug and fatal.
func (s *ChampionState) insertBuff(slot BuffSlot) {
	for i := range s.Buffs {
		if !s.Buffs[i].Active {
			s.Buffs[i] = slot
			s.Buffs[i].Active = true
			s.BuffCount++
			return
		}
	}
	panic("engine: buff slots exhausted")
}

// applyDamage subtracts damage from CurrentHP, saturating at zero, and
// marks the KO flag when HP reaches zero. KO is permanent.
func (s *ChampionState) applyDamage(damage uint32) {
	if damage >= s.CurrentHP {
		s.CurrentHP = 0
		s.KO = true
		return
	}
	s.CurrentHP -= damage
}

// tickBuffs decrements every active slot's remaining turns, deactivating
// slots that reach zero. Runs once per round for both combatants, including
// on buffs applied this round.
func (s *ChampionState) tickBuffs() {
	for i := range s.Buffs {
		if !s.Buffs[i].Active {
			continue
		}
		s.Buffs[i].Turns--
		if s.Buffs[i].Turns == 0 {
			s.Buffs[i].Active = false
			if s.BuffCount > 0 {
				s.BuffCount--
			}
		}
	}
}

// TeamEliminated reports whether every champion on the team is knocked out.
func TeamEliminated(team [TeamSize]ChampionState) bool {
	for i := range team {
		if !team[i].KO {
			return false
		}
	}
	return true
}
