package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestElementMultiplierAllPairs(t *testing.T) {
	cases := []struct {
		attacker, defender Element
		want               uint32
	}{
		// Same element.
		{Fire, Fire, 100},
		{Water, Water, 100},
		{Earth, Earth, 100},
		{Wind, Wind, 100},
		// Advantage cycle Fire → Earth → Wind → Water → Fire.
		{Fire, Earth, 150},
		{Earth, Wind, 150},
		{Wind, Water, 150},
		{Water, Fire, 150},
		// Reverse of the cycle resists.
		{Earth, Fire, 67},
		{Wind, Earth, 67},
		{Water, Wind, 67},
		{Fire, Water, 67},
		// Non-adjacent pairs are neutral.
		{Fire, Wind, 100},
		{Wind, Fire, 100},
		{Water, Earth, 100},
		{Earth, Water, 100},
	}
	for _, tc := range cases {
		got := ElementMultiplierX100(tc.attacker, tc.defender)
		require.Equalf(t, tc.want, got, "%s vs %s", tc.attacker, tc.defender)
	}
}
