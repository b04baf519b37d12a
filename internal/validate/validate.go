// Package validate holds the pure form helpers shared by every screen.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"taskvvts-cli/internal/model"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

var (
	reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// Deadline inputs come from a datetime-local style field: date and minutes, no seconds.
	reDeadlineInput = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})[ T](\d{2}:\d{2})$`)
)

// IsEmail reports whether s has exactly one @, no whitespace and a dot after the @.
func IsEmail(s string) bool {
	return reEmail.MatchString(s)
}

// Field is a named form value checked by Required.
type Field struct {
	Name  string
	Value string
}

// Required returns the first field whose value is blank.
func Required(fields ...Field) (Field, bool) {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return f, false
		}
	}
	return Field{}, true
}

// DeadlineFromInput converts "YYYY-MM-DDTHH:MM" into the API timestamp by
// appending ":00" seconds.
func DeadlineFromInput(s string) (model.LocalTime, error) {
	m := reDeadlineInput.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return model.LocalTime{}, fmt.Errorf("invalid deadline %q (expected YYYY-MM-DDTHH:MM)", s)
	}
	return model.ParseLocalTime(m[1] + "T" + m[2] + ":00")
}

// DeadlineToInput is the inverse of DeadlineFromInput (seconds are dropped).
func DeadlineToInput(t model.LocalTime) string {
	if t.IsZero() {
		return ""
	}
	return t.Time.Format("2006-01-02T15:04")
}

// FormatDateTime renders a timestamp as "<date> <time>" in the locale's
// conventional order.
func FormatDateTime(t time.Time, locale string) string {
	if t.IsZero() {
		return ""
	}
	switch normalizeLocale(locale) {
	case "pt", "fr":
		return t.Format("02/01/2006 15:04:05")
	case "de":
		return t.Format("2.1.2006, 15:04:05")
	default:
		return t.Format("1/2/2006 3:04:05 PM")
	}
}

func normalizeLocale(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexAny(locale, "-_"); i > 0 {
		locale = locale[:i]
	}
	return locale
}

// HumanizeMinutes renders a minute count ("1 hour 30 minutes" style, coarse).
func HumanizeMinutes(n int64) string {
	if n <= 0 {
		return "0 minutes"
	}
	if n < 60 {
		return english.Plural(int(n), "minute", "minutes")
	}
	h, m := n/60, n%60
	out := english.Plural(int(h), "hour", "hours")
	if m > 0 {
		out += " " + english.Plural(int(m), "minute", "minutes")
	}
	return out
}

// Relative renders t relative to now ("3 days from now", "2 hours ago").
func Relative(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t)
}
