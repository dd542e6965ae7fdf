package engine

// Element is a champion's elemental alignment.
type Element uint8

const (
	Fire Element = iota
	Water
	Earth
	Wind
)

func (e Element) String() string {
	switch e {
	case Fire:
		return "fire"
	case Water:
		return "water"
	case Earth:
		return "earth"
	case Wind:
		return "wind"
	}
	return "unknown"
}

// AbilityKind distinguishes how an ability resolves.
type AbilityKind uint8

const (
	AbilityDamage AbilityKind = iota
	AbilityDamageOverTime
	AbilityHeal
	AbilityBuff
	AbilityDebuff
)

func (k AbilityKind) String() string {
	switch k {
	case AbilityDamage:
		return "damage"
	case AbilityDamageOverTime:
		return "damage_over_time"
	case AbilityHeal:
		return "heal"
	case AbilityBuff:
		return "buff"
	case AbilityDebuff:
		return "debuff"
	}
	return "unknown"
}

// Stat identifies the stat a buff or debuff modifies. The numeric values
// are part of the packed state layout and must not be reordered.
type Stat uint8

const (
	StatDefense Stat = iota
	StatSpeed
	StatAttack
)

func (s Stat) String() string {
	switch s {
	case StatDefense:
		return "defense"
	case StatSpeed:
		return "speed"
	case StatAttack:
		return "attack"
	}
	return "unknown"
}

// Ability is one of a champion's two moves. All fields are static catalog
// data; which fields matter depends on Kind.
type Ability struct {
	Name        string
	Kind        AbilityKind
	Power       uint32
	Stat        Stat
	StatValue   uint32
	Duration    uint32
	HealAmount  uint32
	AppliesBurn bool
}

// Champion is an immutable catalog entry. Mutable per-match data lives in
// ChampionState.
type Champion struct {
	ID        uint8
	Name      string
	Element   Element
	HP        uint32
	Attack    uint32
	Defense   uint32
	Speed     uint32
	Abilities [2]Ability
}

const (
	// ChampionCount is the size of the catalog; valid ids are [0, ChampionCount).
	ChampionCount = 8
	// AbilitiesPerChampion fixes the move encoding: two abilities per champion.
	AbilitiesPerChampion = 2
	// TeamSize is the number of champions each player fields.
	TeamSize = 3
)

// catalog index equals champion id.
var catalog = [ChampionCount]Champion{
	{
		ID: 0, Name: "Inferno", Element: Fire, HP: 80, Attack: 20, Defense: 5, Speed: 16,
		Abilities: [2]Ability{
			{Name: "Eruption", Kind: AbilityDamage, Power: 35},
			{Name: "Scorch", Kind: AbilityDamageOverTime, Power: 20, Duration: 2, AppliesBurn: true},
		},
	},
	{
		ID: 1, Name: "Boulder", Element: Earth, HP: 140, Attack: 14, Defense: 16, Speed: 5,
		Abilities: [2]Ability{
			{Name: "Rock Slam", Kind: AbilityDamage, Power: 28},
			{Name: "Fortify", Kind: AbilityBuff, Stat: StatDefense, StatValue: 6, Duration: 2},
		},
	},
	{
		ID: 2, Name: "Ember", Element: Fire, HP: 90, Attack: 16, Defense: 8, Speed: 14,
		Abilities: [2]Ability{
			{Name: "Fireball", Kind: AbilityDamage, Power: 25},
			{Name: "Flame Shield", Kind: AbilityBuff, Stat: StatDefense, StatValue: 5, Duration: 2},
		},
	},
	{
		ID: 3, Name: "Torrent", Element: Water, HP: 110, Attack: 12, Defense: 12, Speed: 10,
		Abilities: [2]Ability{
			{Name: "Tidal Wave", Kind: AbilityDamage, Power: 22},
			{Name: "Heal", Kind: AbilityHeal, HealAmount: 25},
		},
	},
	{
		ID: 4, Name: "Gale", Element: Wind, HP: 75, Attack: 15, Defense: 6, Speed: 18,
		Abilities: [2]Ability{
			{Name: "Wind Blade", Kind: AbilityDamage, Power: 24},
			{Name: "Tailwind", Kind: AbilityBuff, Stat: StatSpeed, StatValue: 5, Duration: 2},
		},
	},
	{
		ID: 5, Name: "Tide", Element: Water, HP: 100, Attack: 11, Defense: 14, Speed: 9,
		Abilities: [2]Ability{
			{Name: "Water Jet", Kind: AbilityDamage, Power: 20},
			{Name: "Mist", Kind: AbilityDebuff, Stat: StatAttack, StatValue: 4, Duration: 2},
		},
	},
	{
		ID: 6, Name: "Quake", Element: Earth, HP: 130, Attack: 13, Defense: 15, Speed: 7,
		Abilities: [2]Ability{
			{Name: "Earthquake", Kind: AbilityDamage, Power: 26},
			{Name: "Stone Wall", Kind: AbilityBuff, Stat: StatDefense, StatValue: 8, Duration: 1},
		},
	},
	{
		ID: 7, Name: "Storm", Element: Wind, HP: 85, Attack: 17, Defense: 7, Speed: 15,
		Abilities: [2]Ability{
			{Name: "Lightning", Kind: AbilityDamage, Power: 30},
			{Name: "Dodge", Kind: AbilityBuff, Stat: StatSpeed, StatValue: 6, Duration: 2},
		},
	},
}

// ChampionByID looks up a catalog entry. The second return is false when the
// id is out of range.
func ChampionByID(id uint8) (Champion, bool) {
	if id >= ChampionCount {
		return Champion{}, false
	}
	return catalog[id], true
}

// mustChampion is for callers that have already validated the id; an unknown
// id at this point is a corrupted-state bug, not an input error.
func mustChampion(id uint8) Champion {
	c, ok := ChampionByID(id)
	if !ok {
		panic("engine: unknown champion id")
	}
	return c
}

// Champions returns the full catalog in id order.
func Champions() []Champion {
	out := make([]Champion, ChampionCount)
	copy(out, catalog[:])
	return out
}
