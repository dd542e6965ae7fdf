package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalogAllChampionsLoad(t *testing.T) {
	for id := uint8(0); id < ChampionCount; id++ {
		c, ok := ChampionByID(id)
		require.True(t, ok)
		require.Equal(t, id, c.ID)
		require.NotEmpty(t, c.Name)
		require.Greater(t, c.HP, uint32(0))
	}
}

func TestCatalogOutOfRange(t *testing.T) {
	_, ok := ChampionByID(ChampionCount)
	require.False(t, ok)
	_, ok = ChampionByID(255)
	require.False(t, ok)
}

func TestInfernoStats(t *testing.T) {
	c, ok := ChampionByID(0)
	require.True(t, ok)
	require.Equal(t, "Inferno", c.Name)
	require.Equal(t, Fire, c.Element)
	require.Equal(t, uint32(80), c.HP)
	require.Equal(t, uint32(20), c.Attack)
	require.Equal(t, uint32(5), c.Defense)
	require.Equal(t, uint32(16), c.Speed)
}

func TestScorchAppliesBurn(t *testing.T) {
	c, _ := ChampionByID(0)
	scorch := c.Abilities[1]
	require.Equal(t, AbilityDamageOverTime, scorch.Kind)
	require.Equal(t, uint32(20), scorch.Power)
	require.True(t, scorch.AppliesBurn)
	require.Equal(t, uint32(2), scorch.Duration)
}

// Buff values and durations must fit the 6-bit and 4-bit fields of the
// packed state layout. Catalog entries that exceed them would corrupt
// silently on pack, so reject them here.
func TestCatalogRespectsPackedWidths(t *testing.T) {
	for _, c := range Champions() {
		for _, ab := range c.Abilities {
			require.LessOrEqualf(t, ab.StatValue, uint32(63), "%s/%s stat value exceeds 6 bits", c.Name, ab.Name)
			require.LessOrEqualf(t, ab.Duration, uint32(15), "%s/%s duration exceeds 4 bits", c.Name, ab.Name)
		}
	}
}

func TestEveryChampionHasTwoNamedAbilities(t *testing.T) {
	for _, c := range Champions() {
		require.Len(t, c.Abilities, AbilitiesPerChampion)
		for _, ab := range c.Abilities {
			require.NotEmpty(t, ab.Name)
			switch ab.Kind {
			case AbilityDamage, AbilityDamageOverTime:
				require.Greaterf(t, ab.Power, uint32(0), "%s/%s has no power", c.Name, ab.Name)
			case AbilityHeal:
				require.Greaterf(t, ab.HealAmount, uint32(0), "%s/%s heals nothing", c.Name, ab.Name)
			case AbilityBuff, AbilityDebuff:
				require.Greaterf(t, ab.StatValue, uint32(0), "%s/%s modifies nothing", c.Name, ab.Name)
				require.Greaterf(t, ab.Duration, uint32(0), "%s/%s has no duration", c.Name, ab.Name)
			}
		}
	}
}

func TestChampionsReturnsCopy(t *testing.T) {
	list := Champions()
	list[0].HP = 1
	c, _ := ChampionByID(0)
	require.Equal(t, uint32(80), c.HP)
}
