package types

import (
	"encoding/json"
	"sort"
	"strings"
)

// Substitutions maps a template token name to its replacement value
type Substitutions map[string]string

// Merge returns a new table holding s overlaid by each of others in order.
// Later tables win on key collisions.
func (s Substitutions) Merge(others ...Substitutions) Substitutions {
	merged := make(Substitutions, len(s))
	for k, v := range s {
		merged[k] = v
	}
	for _, other := range others {
		for k, v := range other {
			merged[k] = v
		}
	}
	return merged
}

// Keys returns the token names in sorted order
func (s Substitutions) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Token returns the literal placeholder for key, ${KEY}
func Token(key string) string {
	return "${" + key + "}"
}

// Apply replaces every ${KEY} placeholder in content with its value, keys
// taken in sorted order. Placeholders with no entry are left as they are.
func (s Substitutions) Apply(content string) string {
	for _, key := range s.Keys() {
		content = strings.ReplaceAll(content, Token(key), s[key])
	}
	return content
}

// SubstitutionsFromJSON converts decoded key-file values into a table.
// Strings are kept verbatim, null becomes empty, anything else is
// rendered as compact JSON.
func SubstitutionsFromJSON(values map[string]interface{}) Substitutions {
	table := make(Substitutions, len(values))
	for k, v := range values {
		switch val := v.(type) {
		case nil:
			table[k] = ""
		case string:
			table[k] = val
		default:
			encoded, err := json.Marshal(val)
			if err != nil {
				continue
			}
			table[k] = string(encoded)
		}
	}
	return table
}
