package types

import (
	"encoding/json"
	"testing"
)

func TestNormalizePattern(t *testing.T) {
	tests := []struct {
		name            string
		timing          string
		orderingPattern string
		want            PatternKey
	}{
		{"both fields", "timebox", "alternating", CompoundPattern("alternating", "timebox")},
		{"ordering only", "", "batching", SinglePattern("batching")},
		{"timing only", "timebox", "", SinglePattern("timebox")},
		{"neither", "", "", SinglePattern("untimed")},
		{"legacy alias single", "", "three-three-three", SinglePattern("3-3-3")},
		{"legacy alias in compound", "three-three-three", "batching", CompoundPattern("batching", "3-3-3")},
		{"whitespace trimmed", " timebox ", "", SinglePattern("timebox")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePattern(tt.timing, tt.orderingPattern)
			if !got.Equal(tt.want) {
				t.Errorf("NormalizePattern(%q, %q) = %v, want %v",
					tt.timing, tt.orderingPattern, got, tt.want)
			}
		})
	}
}

func TestPatternKeyEqualIsShapeAndOrderSensitive(t *testing.T) {
	if SinglePattern("timebox").Equal(CompoundPattern("timebox")) {
		t.Error("single and compound with the same name must not be equal")
	}
	if CompoundPattern("a", "b").Equal(CompoundPattern("b", "a")) {
		t.Error("compound equality must be order-sensitive")
	}
	if !CompoundPattern("a", "b").Equal(CompoundPattern("a", "b")) {
		t.Error("identical compounds must be equal")
	}
	if CompoundPattern("a", "b").Equal(CompoundPattern("a")) {
		t.Error("compounds of different lengths must not be equal")
	}
}

func TestPatternKeyUntimed(t *testing.T) {
	if !SinglePattern("untimed").Untimed() {
		t.Error("single untimed should be untimed")
	}
	if !CompoundPattern("batching", "untimed").Untimed() {
		t.Error("compound containing untimed should be untimed")
	}
	if SinglePattern("timebox").Untimed() {
		t.Error("timebox is a timed pattern")
	}
	if (PatternKey{}).Untimed() != true {
		t.Error("zero key defaults to untimed")
	}
}

func TestPatternKeyJSONShapes(t *testing.T) {
	var k PatternKey
	if err := json.Unmarshal([]byte(`"timebox"`), &k); err != nil {
		t.Fatalf("string unmarshal failed: %v", err)
	}
	if !k.Equal(SinglePattern("timebox")) {
		t.Errorf("got %v, want single timebox", k)
	}

	if err := json.Unmarshal([]byte(`["alternating","timebox"]`), &k); err != nil {
		t.Fatalf("array unmarshal failed: %v", err)
	}
	if !k.Equal(CompoundPattern("alternating", "timebox")) {
		t.Errorf("got %v, want compound [alternating timebox]", k)
	}

	if err := json.Unmarshal([]byte(`42`), &k); err == nil {
		t.Error("numeric ordering_pattern should be rejected")
	}

	out, err := json.Marshal(CompoundPattern("a", "b"))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `["a","b"]` {
		t.Errorf("compound marshals to %s, want [\"a\",\"b\"]", out)
	}
}

func TestPatternKeyString(t *testing.T) {
	if got := SinglePattern("timebox").String(); got != "timebox" {
		t.Errorf("String() = %q", got)
	}
	if got := CompoundPattern("batching", "timebox").String(); got != "batching + timebox" {
		t.Errorf("String() = %q", got)
	}
}
