package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func firstEvent(events []TurnEvent, kind string) (TurnEvent, bool) {
	for _, e := range events {
		if e.Kind == kind {
			return e, true
		}
	}
	return TurnEvent{}, false
}

func countEvents(events []TurnEvent, kind string) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestFasterChampionActsFirst(t *testing.T) {
	gale := freshState(t, 4)    // SPD 18
	boulder := freshState(t, 1) // SPD 5

	_, _, events := ResolveTurn(gale, boulder,
		Action{ChampionID: 4, AbilityIndex: 0},
		Action{ChampionID: 1, AbilityIndex: 0})

	attack, ok := firstEvent(events, EventAttack)
	require.True(t, ok)
	require.Equal(t, uint8(4), attack.Source)
}

func TestSpeedTieBrokenByLowerChampionID(t *testing.T) {
	storm := freshState(t, 7) // SPD 15
	ember := freshState(t, 2) // SPD 14, +1 from a buff makes it a tie
	ember.insertBuff(BuffSlot{Stat: StatSpeed, Value: 1, Turns: 3})

	_, _, events := ResolveTurn(storm, ember,
		Action{ChampionID: 7, AbilityIndex: 0},
		Action{ChampionID: 2, AbilityIndex: 0})

	attack, ok := firstEvent(events, EventAttack)
	require.True(t, ok)
	require.Equal(t, uint8(2), attack.Source, "lower id must win an exact speed tie")
}

func TestKOSkipsSecondAction(t *testing.T) {
	storm := freshState(t, 7)
	boulder := freshState(t, 1)
	boulder.CurrentHP = 1

	_, newBoulder, events := ResolveTurn(storm, boulder,
		Action{ChampionID: 7, AbilityIndex: 0},
		Action{ChampionID: 1, AbilityIndex: 0})

	require.True(t, newBoulder.KO)
	require.Zero(t, newBoulder.CurrentHP)
	require.Equal(t, 1, countEvents(events, EventAttack), "KO'd champion must not act")
	require.Equal(t, 1, countEvents(events, EventKO))
}

func TestHealAfterTakingDamage(t *testing.T) {
	torrent := freshState(t, 3) // SPD 10
	torrent.CurrentHP = 50
	ember := freshState(t, 2) // SPD 14, acts first

	// Ember's fireball deals 18 to Torrent (50→32), then Torrent heals 25.
	newTorrent, _, events := ResolveTurn(torrent, ember,
		Action{ChampionID: 3, AbilityIndex: 1},
		Action{ChampionID: 2, AbilityIndex: 0})

	require.Equal(t, uint32(57), newTorrent.CurrentHP)
	heal, ok := firstEvent(events, EventHeal)
	require.True(t, ok)
	require.Equal(t, uint32(25), heal.Amount)
	require.Equal(t, uint32(57), heal.NewHP)
}

func TestBuffRaisesDefenseSameRound(t *testing.T) {
	ember := freshState(t, 2)   // SPD 14, buffs first
	torrent := freshState(t, 3) // SPD 10

	// Flame Shield (+5 DEF) lands before Tidal Wave: 52 raw − (8+5) = 39.
	newEmber, _, events := ResolveTurn(ember, torrent,
		Action{ChampionID: 2, AbilityIndex: 1},
		Action{ChampionID: 3, AbilityIndex: 0})

	require.Equal(t, uint32(51), newEmber.CurrentHP)

	_, ok := firstEvent(events, EventBuff)
	require.True(t, ok)

	// Applied with 2 turns, ticked once at round end.
	require.Equal(t, uint8(1), newEmber.BuffCount)
	require.True(t, newEmber.Buffs[0].Active)
	require.Equal(t, StatDefense, newEmber.Buffs[0].Stat)
	require.Equal(t, uint32(5), newEmber.Buffs[0].Value)
	require.Equal(t, uint32(1), newEmber.Buffs[0].Turns)
}

func TestDebuffLandsOnOpponent(t *testing.T) {
	tide := freshState(t, 5)    // SPD 9
	inferno := freshState(t, 0) // SPD 16, acts first

	// Eruption deals 46−14=32 to Tide, then Mist (−4 ATK) lands on Inferno.
	newTide, newInferno, events := ResolveTurn(tide, inferno,
		Action{ChampionID: 5, AbilityIndex: 1},
		Action{ChampionID: 0, AbilityIndex: 0})

	require.Equal(t, uint32(68), newTide.CurrentHP)

	debuff, ok := firstEvent(events, EventDebuff)
	require.True(t, ok)
	require.Equal(t, uint8(0), debuff.Target)

	require.True(t, newInferno.Buffs[0].Active)
	require.True(t, newInferno.Buffs[0].Debuff)
	require.Equal(t, StatAttack, newInferno.Buffs[0].Stat)
	require.Equal(t, uint32(4), newInferno.Buffs[0].Value)
	require.Equal(t, uint32(1), newInferno.Buffs[0].Turns)
}

func TestScorchAppliesBurnAndTicks(t *testing.T) {
	inferno := freshState(t, 0) // SPD 16, acts first
	boulder := freshState(t, 1) // SPD 5

	// Scorch: 60 raw − 16 = 44 (140→96), burn for 2 rounds.
	// Rock Slam back: 31 − 5 = 26 (80→54).
	// Burn tick on Boulder at round end: 14 (96→82).
	newInferno, newBoulder, events := ResolveTurn(inferno, boulder,
		Action{ChampionID: 0, AbilityIndex: 1},
		Action{ChampionID: 1, AbilityIndex: 0})

	require.Equal(t, uint32(54), newInferno.CurrentHP)
	require.Equal(t, uint32(82), newBoulder.CurrentHP)
	require.Equal(t, uint32(1), newBoulder.BurnTurns)

	applied, ok := firstEvent(events, EventBurnApplied)
	require.True(t, ok)
	require.Equal(t, uint8(1), applied.Target)
	require.Equal(t, uint32(2), applied.Duration)

	tick, ok := firstEvent(events, EventBurnTick)
	require.True(t, ok)
	require.Equal(t, uint8(1), tick.Source)
	require.Equal(t, uint32(14), tick.Amount)
}

func TestBurnExpiresAfterItsDuration(t *testing.T) {
	boulder := freshState(t, 1) // SPD 5
	boulder.BurnTurns = 2
	quake := freshState(t, 6) // SPD 7

	// Both champions only self-buff, so burn is the sole damage source.
	fortify := Action{ChampionID: 1, AbilityIndex: 1}
	stoneWall := Action{ChampionID: 6, AbilityIndex: 1}

	boulder, quake, events := ResolveTurn(boulder, quake, fortify, stoneWall)
	require.Equal(t, uint32(126), boulder.CurrentHP)
	require.Equal(t, uint32(1), boulder.BurnTurns)
	require.Equal(t, 1, countEvents(events, EventBurnTick))

	boulder, quake, events = ResolveTurn(boulder, quake, fortify, stoneWall)
	require.Equal(t, uint32(112), boulder.CurrentHP)
	require.Zero(t, boulder.BurnTurns)
	require.Equal(t, 1, countEvents(events, EventBurnTick))

	boulder, _, events = ResolveTurn(boulder, quake, fortify, stoneWall)
	require.Equal(t, uint32(112), boulder.CurrentHP)
	require.Zero(t, countEvents(events, EventBurnTick))
}

func TestBurnTickCanKO(t *testing.T) {
	boulder := freshState(t, 1)
	boulder.BurnTurns = 1
	boulder.CurrentHP = 10 // burn tick is 14
	quake := freshState(t, 6)

	newBoulder, _, events := ResolveTurn(boulder, quake,
		Action{ChampionID: 1, AbilityIndex: 1},
		Action{ChampionID: 6, AbilityIndex: 1})

	require.True(t, newBoulder.KO)
	require.Zero(t, newBoulder.CurrentHP)
	require.Equal(t, 1, countEvents(events, EventBurnTick))
	require.Equal(t, 1, countEvents(events, EventKO))
}

func TestResolveTurnIsDeterministic(t *testing.T) {
	inferno := freshState(t, 0)
	boulder := freshState(t, 1)
	actionA := Action{ChampionID: 0, AbilityIndex: 1}
	actionB := Action{ChampionID: 1, AbilityIndex: 0}

	a1, b1, e1 := ResolveTurn(inferno, boulder, actionA, actionB)
	a2, b2, e2 := ResolveTurn(inferno, boulder, actionA, actionB)

	require.Equal(t, a1, a2)
	require.Equal(t, b1, b2)
	require.Equal(t, e1, e2)
}

func TestResolveTurnPanicsOnKOCombatant(t *testing.T) {
	a := freshState(t, 0)
	a.KO = true
	b := freshState(t, 1)
	require.Panics(t, func() {
		ResolveTurn(a, b, Action{ChampionID: 0}, Action{ChampionID: 1})
	})
}

func TestResolveTurnPanicsOnForeignAction(t *testing.T) {
	a := freshState(t, 0)
	b := freshState(t, 1)
	require.Panics(t, func() {
		ResolveTurn(a, b, Action{ChampionID: 3}, Action{ChampionID: 1})
	})
	require.Panics(t, func() {
		ResolveTurn(a, b, Action{ChampionID: 0, AbilityIndex: 2}, Action{ChampionID: 1})
	})
}

func TestDamageOnlyDuelRunsToKO(t *testing.T) {
	storm := freshState(t, 7)
	quake := freshState(t, 6)

	rounds := 0
	prevStorm, prevQuake := storm.CurrentHP, quake.CurrentHP
	for !storm.KO && !quake.KO {
		rounds++
		require.LessOrEqual(t, rounds, 50, "duel did not terminate")

		var events []TurnEvent
		storm, quake, events = ResolveTurn(storm, quake,
			Action{ChampionID: 7, AbilityIndex: 0},
			Action{ChampionID: 6, AbilityIndex: 0})

		require.LessOrEqual(t, len(events), MaxTurnEvents)
		require.LessOrEqual(t, storm.CurrentHP, prevStorm, "HP must not rise in a damage-only duel")
		require.LessOrEqual(t, quake.CurrentHP, prevQuake)
		prevStorm, prevQuake = storm.CurrentHP, quake.CurrentHP
	}

	require.Greater(t, rounds, 1)
	require.True(t, storm.KO != quake.KO, "exactly one side should fall in this matchup")
}

// Plays a full 3v3 with a mix of abilities, swapping in the next champion
// after each KO, and checks the battle reaches elimination.
func TestFullBattleToElimination(t *testing.T) {
	teamA := [TeamSize]ChampionState{freshState(t, 7), freshState(t, 2), freshState(t, 3)}
	teamB := [TeamSize]ChampionState{freshState(t, 1), freshState(t, 5), freshState(t, 4)}

	idxA, idxB := 0, 0
	rounds := 0
	for rounds < 100 {
		rounds++

		abilityA := uint8(0)
		if rounds == 1 && teamA[idxA].ID == 7 {
			abilityA = 1 // Dodge
		}
		abilityB := uint8(0)
		if rounds == 1 && teamB[idxB].ID == 1 {
			abilityB = 1 // Fortify
		} else if teamB[idxB].ID == 5 && rounds%3 == 0 {
			abilityB = 1 // Mist
		}

		var events []TurnEvent
		teamA[idxA], teamB[idxB], events = ResolveTurn(teamA[idxA], teamB[idxB],
			Action{ChampionID: teamA[idxA].ID, AbilityIndex: abilityA},
			Action{ChampionID: teamB[idxB].ID, AbilityIndex: abilityB})

		require.NotEmpty(t, events, "round %d produced no events", rounds)
		require.LessOrEqual(t, len(events), MaxTurnEvents)
		require.LessOrEqual(t, teamA[idxA].CurrentHP, teamA[idxA].MaxHP)
		require.LessOrEqual(t, teamB[idxB].CurrentHP, teamB[idxB].MaxHP)

		if teamA[idxA].KO && idxA+1 < TeamSize {
			idxA++
		}
		if teamB[idxB].KO && idxB+1 < TeamSize {
			idxB++
		}
		if TeamEliminated(teamA) || TeamEliminated(teamB) {
			break
		}
	}

	aOut, bOut := TeamEliminated(teamA), TeamEliminated(teamB)
	require.True(t, aOut || bOut, "battle did not end within 100 rounds")
	if aOut && !bOut {
		survivors := 0
		for i := range teamB {
			if !teamB[i].KO {
				survivors++
			}
		}
		require.Greater(t, survivors, 0)
	}

	var totalDamage uint32
	for i := range teamA {
		totalDamage += teamA[i].DamageDealt + teamB[i].DamageDealt
	}
	require.Greater(t, totalDamage, uint32(0))
}
