package engine

import "math"

// Action is one player's decoded move for a round: which champion acts and
// which of its two abilities it uses.
type Action struct {
	ChampionID   uint8
	AbilityIndex uint8
}

// MaxTurnEvents bounds the events a single round can emit. The worst case
// (two burn-applying attacks plus two burn ticks, each with a KO) stays
// well under this.
const MaxTurnEvents = 16

// Turn event kinds, as persisted in round logs.
const (
	EventAttack      = "attack"
	EventHeal        = "heal"
	EventBuff        = "buff"
	EventDebuff      = "debuff"
	EventBurnApplied = "burn_applied"
	EventBurnTick    = "burn_tick"
	EventKO          = "ko"
)

// TurnEvent records one observable effect during turn resolution. Source is
// the acting or affected champion depending on Kind; Target is set for
// attacks, debuffs and burn application.
type TurnEvent struct {
	Kind     string `json:"kind"`
	Source   uint8  `json:"source"`
	Target   uint8  `json:"target"`
	Amount   uint32 `json:"amount,omitempty"`
	MultX100 uint32 `json:"mult_x100,omitempty"`
	Stat     string `json:"stat,omitempty"`
	Duration uint32 `json:"duration,omitempty"`
	NewHP    uint32 `json:"new_hp,omitempty"`
}

// ResolveTurn resolves one combat round between the two acting champions
// and returns their updated states plus the events that occurred, in order.
//
/// The function is pure: identical inputs always produce identical outputs,
// with no randomness anywhere. The faster champion (base speed plus active
// speed buffs) acts first; an exact speed tie is broken in favor of the
// lower champion id. If the first action knocks out the other champion, the
// second action is skipped. Burn then ticks on a, then b, and finally every
// active buff on both sides loses one turn of duration.
//
// Both combatants must be alive on entry and the actions must reference
// them; violating either is a bug in the caller and panics.
func ResolveTurn(a, b ChampionState, actionA, actionB Action) (ChampionState, ChampionState, []TurnEvent) {
	if a.KO || b.KO {
		panic("engine: resolve turn with knocked-out combatant")
	}
	if actionA.ChampionID != a.ID || actionB.ChampionID != b.ID {
		panic("engine: action does not reference its combatant")
	}
	if actionA.AbilityIndex >= AbilitiesPerChampion || actionB.AbilityIndex >= AbilitiesPerChampion {
		panic("engine: ability index out of range")
	}

	champA := mustChampion(a.ID)
	champB := mustChampion(b.ID)
	abilityA := &champA.Abilities[actionA.AbilityIndex]
	abilityB := &champB.Abilities[actionB.AbilityIndex]

	events := make([]TurnEvent, 0, MaxTurnEvents)

	speedA := champA.Speed + SumBuffs(&a, StatSpeed)
	speedB := champB.Speed + SumBuffs(&b, StatSpeed)
	aFirst := speedA > speedB || (speedA == speedB && champA.ID < champB.ID)

	if aFirst {
		executeAction(&champA, &a, abilityA, &champB, &b, &events)
		if !b.KO {
			executeAction(&champB, &b, abilityB, &champA, &a, &events)
		}
	} else {
		executeAction(&champB, &b, abilityB, &champA, &a, &events)
		if !a.KO {
			executeAction(&champA, &a, abilityA, &champB, &b, &events)
		}
	}

	tickBurn(&a, &events)
	tickBurn(&b, &events)

	a.tickBuffs()
	b.tickBuffs()

	return a, b, events
}

func executeAction(actorChamp *Champion, actor *ChampionState, ability *Ability, targetChamp *Champion, target *ChampionState, events *[]TurnEvent) {
	switch ability.Kind {
	case AbilityDamage, AbilityDamageOverTime:
		damage, multX100 := ResolveDamage(actorChamp, targetChamp, target, ability, actor)
		target.applyDamage(damage)
		if damage > math.MaxUint32-actor.DamageDealt {
			actor.DamageDealt = math.MaxUint32
		} else {
			actor.DamageDealt += damage
		}
		*events = append(*events, TurnEvent{
			Kind:     EventAttack,
			Source:   actorChamp.ID,
			Target:   targetChamp.ID,
			Amount:   damage,
			MultX100: multX100,
		})
		if target.KO {
			*events = append(*events, TurnEvent{Kind: EventKO, Source: targetChamp.ID})
			return
		}
		if ability.AppliesBurn && ability.Duration > 0 {
			target.BurnTurns = ability.Duration
			*events = append(*events, TurnEvent{
				Kind:     EventBurnApplied,
				Source:   actorChamp.ID,
				Target:   targetChamp.ID,
				Duration: ability.Duration,
			})
		}

	case AbilityHeal:
		oldHP := actor.CurrentHP
		newHP := ResolveHeal(actor, ability.HealAmount)
		actor.CurrentHP = newHP
		*events = append(*events, TurnEvent{
			Kind:   EventHeal,
			Source: actorChamp.ID,
			Target: actorChamp.ID,
			Amount: newHP - oldHP,
			NewHP:  newHP,
		})

	case AbilityBuff, AbilityDebuff:
		if ability.StatValue == 0 || ability.Duration == 0 {
			return
		}
		slot := BuffSlot{
			Stat:   ability.Stat,
			Value:  ability.StatValue,
			Turns:  ability.Duration,
			Debuff: ability.Kind == AbilityDebuff,
			Active: true,
		}
		if slot.Debuff {
			target.insertBuff(slot)
			*events = append(*events, TurnEvent{
				Kind:     EventDebuff,
				Source:   actorChamp.ID,
				Target:   targetChamp.ID,
				Amount:   ability.StatValue,
				Stat:     ability.Stat.String(),
				Duration: ability.Duration,
			})
		} else {
			actor.insertBuff(slot)
			*events = append(*events, TurnEvent{
				Kind:     EventBuff,
				Source:   actorChamp.ID,
				Target:   actorChamp.ID,
				Amount:   ability.StatValue,
				Stat:     ability.Stat.String(),
				Duration: ability.Duration,
			})
		}
	}
}

// tickBurn applies one burn tick if the champion is burning and still
// standing, decrementing the remaining burn duration.
func tickBurn(s *ChampionState, events *[]TurnEvent) {
	if s.BurnTurns == 0 || s.KO {
		return
	}
	damage := BurnDamage(s)
	s.applyDamage(damage)
	s.BurnTurns--
	*events = append(*events, TurnEvent{
		Kind:   EventBurnTick,
		Source: s.ID,
		Target: s.ID,
		Amount: damage,
	})
	if s.KO {
		*events = append(*events, TurnEvent{Kind: EventKO, Source: s.ID})
	}
}
