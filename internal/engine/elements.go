package engine

// beats returns the element this element has the advantage over. The cycle
// is Fire → Earth → Wind → Water → Fire.
func (e Element) beats() Element {
	switch e {
	case Fire:
		return Earth
	case Earth:
		return Wind
	case Wind:
		return Water
	case Water:
		return Fire
	}
	return e
}

// ElementMultiplierX100 returns the elemental damage multiplier scaled by
// 100 (150 advantage, 67 disadvantage, 100 same or neutral), keeping the
// damage formula in integer arithmetic.
func ElementMultiplierX100(attacker, defender Element) uint32 {
	if attacker == defender {
		return 100
	}
	if attacker.beats() == defender {
		return 150
	}
	if defender.beats() == attacker {
		return 67
	}
	return 100
}
