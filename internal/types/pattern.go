package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PatternUntimed is the baseline ordering pattern. Prompts built for it omit
// the time_allocation field from the expected response shape.
const PatternUntimed = "untimed"

// PatternKey identifies an ordering/timing pattern. It is a tagged sum of a
// single pattern name and an ordered compound of names; matching is exact on
// both shape and element order, so Compound("a","b") never equals
// Compound("b","a") or Single("a").
type PatternKey struct {
	single   string
	compound []string
}

// SinglePattern returns a key for one pattern name.
func SinglePattern(name string) PatternKey {
	return PatternKey{single: name}
}

// CompoundPattern returns a key for an ordered combination of pattern names.
func CompoundPattern(parts ...string) PatternKey {
	c := make([]string, len(parts))
	copy(c, parts)
	return PatternKey{compound: c}
}

// IsZero reports whether the key holds no pattern at all.
func (k PatternKey) IsZero() bool {
	return k.single == "" && len(k.compound) == 0
}

// IsCompound reports whether the key is an ordered combination.
func (k PatternKey) IsCompound() bool {
	return len(k.compound) > 0
}

// Names returns every pattern name the key references, in order.
func (k PatternKey) Names() []string {
	if k.IsCompound() {
		return append([]string(nil), k.compound...)
	}
	if k.single == "" {
		return nil
	}
	return []string{k.single}
}

// Equal reports exact equality: same shape, same names, same order.
func (k PatternKey) Equal(other PatternKey) bool {
	if k.IsCompound() != other.IsCompound() {
		return false
	}
	if !k.IsCompound() {
		return k.single == other.single
	}
	if len(k.compound) != len(other.compound) {
		return false
	}
	for i := range k.compound {
		if k.compound[i] != other.compound[i] {
			return false
		}
	}
	return true
}

// Untimed reports whether the key is, or includes, the untimed baseline.
func (k PatternKey) Untimed() bool {
	if k.IsZero() {
		return true
	}
	for _, n := range k.Names() {
		if n == PatternUntimed {
			return true
		}
	}
	return false
}

// String renders the key for result payloads and logs: a bare name for a
// single pattern, names joined with " + " for a compound.
func (k PatternKey) String() string {
	if k.IsCompound() {
		return strings.Join(k.compound, " + ")
	}
	return k.single
}

// MarshalJSON emits the wire shape templates use: a string for a single
// pattern, an array of strings for a compound.
func (k PatternKey) MarshalJSON() ([]byte, error) {
	if k.IsCompound() {
		return json.Marshal(k.compound)
	}
	return json.Marshal(k.single)
}

// UnmarshalJSON accepts either a string or an ordered array of strings.
func (k *PatternKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*k = SinglePattern(s)
		return nil
	}
	var parts []string
	if err := json.Unmarshal(data, &parts); err == nil {
		*k = CompoundPattern(parts...)
		return nil
	}
	return fmt.Errorf("ordering_pattern must be a string or an array of strings: %s", data)
}

// canonicalPattern resolves legacy aliases to their canonical names.
func canonicalPattern(name string) string {
	name = strings.TrimSpace(name)
	if name == "three-three-three" {
		return "3-3-3"
	}
	return name
}

// NormalizePattern collapses the caller's timing and orderingPattern fields
// into one matching key. Either field alone yields a single key; both
// together yield the ordered compound [orderingPattern, timing]. The legacy
// "three-three-three" alias is canonicalized on every path. With neither
// field present, the untimed baseline applies.
func NormalizePattern(timing, orderingPattern string) PatternKey {
	timing = canonicalPattern(timing)
	orderingPattern = canonicalPattern(orderingPattern)
	switch {
	case orderingPattern != "" && timing != "":
		return CompoundPattern(orderingPattern, timing)
	case orderingPattern != "":
		return SinglePattern(orderingPattern)
	case timing != "":
		return SinglePattern(timing)
	default:
		return SinglePattern(PatternUntimed)
	}
}
