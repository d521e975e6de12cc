// Package dateparse resolves human due-date expressions into the
// YYYY-MM-DD form the rest of the system stores. It understands a small
// set of relative phrases in English and Turkish and passes through
// already well-formed dates.
package dateparse

import (
	"strings"
	"time"
)

// Layout is the canonical stored date form.
const Layout = "2006-01-02"

// DefaultOffset is applied when the expression is empty or unrecognized.
const DefaultOffset = 7 * 24 * time.Hour

// Resolve converts expr into a YYYY-MM-DD string relative to now.
// Recognized phrases: "today"/"bugün", "tomorrow"/"yarın",
// "next week"/"gelecek hafta", "this weekend"/"bu hafta sonu".
// A valid YYYY-MM-DD passes through unchanged; anything else defaults
// to one week from now.
func Resolve(now time.Time, expr string) string {
	switch strings.ToLower(strings.TrimSpace(expr)) {
	case "today", "bugün":
		return now.Format(Layout)
	case "tomorrow", "yarın":
		return now.AddDate(0, 0, 1).Format(Layout)
	case "next week", "gelecek hafta":
		return now.AddDate(0, 0, 7).Format(Layout)
	case "this weekend", "bu hafta sonu":
		daysUntilSaturday := (int(time.Saturday) - int(now.Weekday()) + 7) % 7
		return now.AddDate(0, 0, daysUntilSaturday).Format(Layout)
	}

	if _, err := time.Parse(Layout, expr); err == nil {
		return expr
	}
	return now.Add(DefaultOffset).Format(Layout)
}
