package types

import "regexp"

// timeWindowRe matches a "H:MM(am|pm) - H:MM(am|pm)" window anywhere in a
// string, as produced in time_allocation values and inline task text.
var timeWindowRe = regexp.MustCompile(`(?i)(\d{1,2}:\d{2}\s*(?:am|pm))\s*-\s*(\d{1,2}:\d{2}\s*(?:am|pm))`)

// inlineConstraintRe matches a time window at the very start of a task's own
// text, terminated by a colon, e.g. "7:00am - 7:30am: morning run".
var inlineConstraintRe = regexp.MustCompile(`(?i)^\s*(\d{1,2}:\d{2}(?:am|pm))\s*-\s*(\d{1,2}:\d{2}(?:am|pm)):`)

// ParseTimeWindow extracts the first start/end time pair from s.
func ParseTimeWindow(s string) (start, end string, ok bool) {
	m := timeWindowRe.FindStringSubmatch(s)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// InlineTimeConstraint extracts an explicit time window leading the task
// text, the "7:00am - 7:30am: run" convention users type directly.
func InlineTimeConstraint(text string) (start, end string, ok bool) {
	m := inlineConstraintRe.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
