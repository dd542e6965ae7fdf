package api

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

const joinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const joinCodeLength = 8

var joinCodeRegex = regexp.MustCompile(fmt.Sprintf("^[A-Z0-9]{%d}$", joinCodeLength))

// generateJoinCode creates a short alphanumeric code for joining matches.
// Codes are identifiers, not secrets; the database's unique constraint
// catches the rare collision.
func generateJoinCode() string {
	var sb strings.Builder
	sb.Grow(joinCodeLength)
	for i := 0; i < joinCodeLength; i++ {
		sb.WriteByte(joinCodeAlphabet[rand.Intn(len(joinCodeAlphabet))])
	}
	return sb.String()
}

func normalizeJoinCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// The arena models tag every named field snake_case, but the embedded
// gorm.Model contributes untagged CamelCase keys. Responses rename those
// so clients see one key style.
var modelKeyRenames = map[string]string{
	"ID":        "id",
	"CreatedAt": "created_at",
	"UpdatedAt": "updated_at",
	"DeletedAt": "deleted_at",
}

func normalizeModelKeys(node interface{}) interface{} {
	switch n := node.(type) {
	case map[string]interface{}:
		for key, child := range n {
			n[key] = normalizeModelKeys(child)
		}
		for camel, snake := range modelKeyRenames {
			if child, ok := n[camel]; ok {
				n[snake] = child
				delete(n, camel)
			}
		}
		return n
	case []interface{}:
		for i, child := range n {
			n[i] = normalizeModelKeys(child)
		}
		return n
	default:
		return node
	}
}

// marshalNormalized round-trips a value through JSON and normalizes the
// gorm model keys, producing the generic structure API responses and the
// match view build on.
func marshalNormalized(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	return normalizeModelKeys(decoded), nil
}
