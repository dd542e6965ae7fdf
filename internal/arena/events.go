package arena

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/WiktorStarczewski/miden-arena/internal/engine"
)

// EncodeEvents serializes a round's turn events for the match record.
func EncodeEvents(events []engine.TurnEvent) (string, error) {
	if len(events) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(events)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeEvents reverses EncodeEvents.
func DecodeEvents(s string) ([]engine.TurnEvent, error) {
	if s == "" {
		return nil, nil
	}
	var events []engine.TurnEvent
	if err := json.Unmarshal([]byte(s), &events); err != nil {
		return nil, err
	}
	return events, nil
}

func championName(id uint8) string {
	if c, ok := engine.ChampionByID(id); ok {
		return c.Name
	}
	return fmt.Sprintf("champion %d", id)
}

// SummarizeEvents renders a round's events as a short human-readable log,
// one line per event.
func SummarizeEvents(events []engine.TurnEvent) string {
	lines := make([]string, 0, len(events))
	for _, e := range events {
		switch e.Kind {
		case engine.EventAttack:
			line := fmt.Sprintf("%s hits %s for %d", championName(e.Source), championName(e.Target), e.Amount)
			switch {
			case e.MultX100 > 100:
				line += " (super effective)"
			case e.MultX100 < 100:
				line += " (resisted)"
			}
			lines = append(lines, line)
		case engine.EventHeal:
			lines = append(lines, fmt.Sprintf("%s heals %d HP (%d left)", championName(e.Source), e.Amount, e.NewHP))
		case engine.EventBuff:
			lines = append(lines, fmt.Sprintf("%s gains +%d %s for %d rounds", championName(e.Source), e.Amount, e.Stat, e.Duration))
		case engine.EventDebuff:
			lines = append(lines, fmt.Sprintf("%s drops %s's %s by %d for %d rounds", championName(e.Source), championName(e.Target), e.Stat, e.Amount, e.Duration))
		case engine.EventBurnApplied:
			lines = append(lines, fmt.Sprintf("%s is burning for %d rounds", championName(e.Target), e.Duration))
		case engine.EventBurnTick:
			lines = append(lines, fmt.Sprintf("%s takes %d burn damage", championName(e.Source), e.Amount))
		case engine.EventKO:
			lines = append(lines, fmt.Sprintf("%s is knocked out", championName(e.Source)))
		}
	}
	return strings.Join(lines, "\n")
}
