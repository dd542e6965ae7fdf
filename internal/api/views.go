package api

import (
	"errors"

	"github.com/WiktorStarczewski/miden-arena/internal/arena"
	"github.com/WiktorStarczewski/miden-arena/internal/codec"
	"github.com/WiktorStarczewski/miden-arena/internal/engine"
)

var errNotAnObject = errors.New("match did not marshal to a JSON object")

// The view layer shapes API responses. Commitments, revealed moves and the
// packed slot blobs are tag-hidden on the models; the views add the derived
// fields clients actually render: decoded champion state, progress booleans
// and display names for enums.

type buffView struct {
	Stat   string `json:"stat"`
	Value  uint32 `json:"value"`
	Turns  uint32 `json:"turns"`
	Debuff bool   `json:"debuff"`
}

type championView struct {
	Side       uint8      `json:"side"`
	Index      uint8      `json:"index"`
	ChampionID uint8      `json:"champion_id"`
	Name       string     `json:"name"`
	Element    string     `json:"element"`
	CurrentHP  uint32     `json:"current_hp"`
	MaxHP      uint32     `json:"max_hp"`
	KO         bool       `json:"ko"`
	BurnTurns  uint32     `json:"burn_turns"`
	Buffs      []buffView `json:"buffs"`
}

func championViews(m *arena.Match) ([]championView, error) {
	views := make([]championView, 0, len(m.Slots))
	for i := range m.Slots {
		s := &m.Slots[i]
		state, err := s.State()
		if err != nil {
			return nil, err
		}
		v := championView{
			Side:       s.Side,
			Index:      s.Index,
			ChampionID: s.ChampionID,
			CurrentHP:  state.CurrentHP,
			MaxHP:      state.MaxHP,
			KO:         state.KO,
			BurnTurns:  state.BurnTurns,
			Buffs:      []buffView{},
		}
		if c, ok := engine.ChampionByID(s.ChampionID); ok {
			v.Name = c.Name
			v.Element = c.Element.String()
		}
		for _, b := range state.Buffs {
			if !b.Active {
				continue
			}
			v.Buffs = append(v.Buffs, buffView{
				Stat:   b.Stat.String(),
				Value:  b.Value,
				Turns:  b.Turns,
				Debuff: b.Debuff,
			})
		}
		views = append(views, v)
	}
	return views, nil
}

// matchView produces the full match payload for reads and watch pushes.
func matchView(m *arena.Match) (map[string]interface{}, error) {
	out, err := marshalNormalized(m)
	if err != nil {
		return nil, err
	}
	obj, ok := out.(map[string]interface{})
	if !ok {
		return nil, errNotAnObject
	}

	obj["phase_name"] = m.Phase.String()
	obj["winner_name"] = m.Winner.String()
	obj["committed_a"] = m.CommitA != ""
	obj["committed_b"] = m.CommitB != ""
	obj["revealed_a"] = m.MoveA != 0
	obj["revealed_b"] = m.MoveB != 0

	champions, err := championViews(m)
	if err != nil {
		return nil, err
	}
	delete(obj, "slots")
	obj["champions"] = champions

	// Replace the stored JSON string with the decoded array so clients do
	// not have to parse twice.
	if events, err := arena.DecodeEvents(m.LastRoundEvents); err == nil {
		obj["last_round_events"] = events
	}

	return obj, nil
}

type abilityView struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Move        uint64 `json:"move"`
	Power       uint32 `json:"power,omitempty"`
	Stat        string `json:"stat,omitempty"`
	StatValue   uint32 `json:"stat_value,omitempty"`
	Duration    uint32 `json:"duration,omitempty"`
	HealAmount  uint32 `json:"heal_amount,omitempty"`
	AppliesBurn bool   `json:"applies_burn,omitempty"`
}

type catalogEntryView struct {
	ID        uint8         `json:"id"`
	Name      string        `json:"name"`
	Element   string        `json:"element"`
	HP        uint32        `json:"hp"`
	Attack    uint32        `json:"attack"`
	Defense   uint32        `json:"defense"`
	Speed     uint32        `json:"speed"`
	Abilities []abilityView `json:"abilities"`
}

// catalogViews renders the champion catalog with the wire value each ability
// reveals as, so clients never hard-code the move encoding.
func catalogViews() []catalogEntryView {
	champions := engine.Champions()
	out := make([]catalogEntryView, 0, len(champions))
	for _, c := range champions {
		entry := catalogEntryView{
			ID:      c.ID,
			Name:    c.Name,
			Element: c.Element.String(),
			HP:      c.HP,
			Attack:  c.Attack,
			Defense: c.Defense,
			Speed:   c.Speed,
		}
		for idx, a := range c.Abilities {
			av := abilityView{
				Name:        a.Name,
				Kind:        a.Kind.String(),
				Move:        codec.EncodeMove(engine.Action{ChampionID: c.ID, AbilityIndex: uint8(idx)}),
				Power:       a.Power,
				Duration:    a.Duration,
				HealAmount:  a.HealAmount,
				AppliesBurn: a.AppliesBurn,
			}
			if a.Kind == engine.AbilityBuff || a.Kind == engine.AbilityDebuff {
				av.Stat = a.Stat.String()
				av.StatValue = a.StatValue
			}
			entry.Abilities = append(entry.Abilities, av)
		}
		out = append(out, entry)
	}
	return out
}
