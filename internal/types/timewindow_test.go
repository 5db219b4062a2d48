package types

import "testing"

func TestParseTimeWindow(t *testing.T) {
	tests := []struct {
		in         string
		start, end string
		ok         bool
	}{
		{"9:00am - 10:30am", "9:00am", "10:30am", true},
		{"work block 1:00pm-2:15pm today", "1:00pm", "2:15pm", true},
		{"11:45AM - 12:15PM", "11:45AM", "12:15PM", true},
		{"no times here", "", "", false},
		{"9:00 - 10:00", "", "", false},
	}
	for _, tt := range tests {
		start, end, ok := ParseTimeWindow(tt.in)
		if ok != tt.ok || start != tt.start || end != tt.end {
			t.Errorf("ParseTimeWindow(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.in, start, end, ok, tt.start, tt.end, tt.ok)
		}
	}
}

func TestInlineTimeConstraint(t *testing.T) {
	start, end, ok := InlineTimeConstraint("7:00am - 7:30am: morning run")
	if !ok || start != "7:00am" || end != "7:30am" {
		t.Errorf("got (%q, %q, %v)", start, end, ok)
	}

	// The window must lead the text and end with a colon to count as a
	// constraint; a mention later in the text does not.
	if _, _, ok := InlineTimeConstraint("run around 7:00am - 7:30am: ish"); ok {
		t.Error("mid-text window should not match the inline form")
	}
	if _, _, ok := InlineTimeConstraint("7:00am - 7:30am without colon"); ok {
		t.Error("window without trailing colon should not match")
	}
}
