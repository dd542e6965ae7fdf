package engine

// ResolveDamage computes the damage one use of a damaging ability inflicts,
// returning the damage and the elemental multiplier (×100) that applied.
//
// Attack debuffs on the attacker reduce effective attack (saturating at
// zero); defense buffs on the defender raise effective defense. The raw
// figure is power × (20 + effective attack) × multiplier / 2000 in 64-bit
// integer arithmetic, floored by the division. A hit never deals less than
// 1 damage, however high the defense.
func ResolveDamage(attacker, defender *Champion, defenderState *ChampionState, ability *Ability, attackerState *ChampionState) (uint32, uint32) {
	effAtk := attacker.Attack
	if debuffs := SumDebuffs(attackerState, StatAttack); debuffs >= effAtk {
		effAtk = 0
	} else {
		effAtk -= debuffs
	}

	multX100 := ElementMultiplierX100(attacker.Element, defender.Element)
	effDef := defender.Defense + SumBuffs(defenderState, StatDefense)

	raw := uint32(uint64(ability.Power) * (20 + uint64(effAtk)) * uint64(multX100) / 2000)

	damage := uint32(1)
	if raw > effDef {
		damage = raw - effDef
	}
	return damage, multX100
}

// ResolveHeal returns the HP after healing, clamped to the maximum.
func ResolveHeal(s *ChampionState, amount uint32) uint32 {
	if s.CurrentHP+amount > s.MaxHP {
		return s.MaxHP
	}
	return s.CurrentHP + amount
}

// BurnDamage is the per-round burn tick: a tenth of max HP, minimum 1.
func BurnDamage(s *ChampionState) uint32 {
	if d := s.MaxHP / 10; d > 1 {
		return d
	}
	return 1
}
