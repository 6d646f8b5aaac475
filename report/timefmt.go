package report

import (
	"strings"
	"time"
)

// NormalizeTimeDisplay converts legacy "[08:00 ~ 12:30]" presentation into
// compact "08:00~12:30".
func NormalizeTimeDisplay(s string) string {
	s = strings.ReplaceAll(s, " ~ ", "~")
	s = strings.ReplaceAll(s, "[", "")
	return strings.ReplaceAll(s, "]", "")
}

// ClockDisplay converts "HH-MM" clock token used in storage file names into
// "HH:MM". Anything else is returned unchanged.
func ClockDisplay(s string) string {
	if len(s) == 5 && s[2] == '-' && isDigits(s[:2]) && isDigits(s[3:]) {
		return s[:2] + ":" + s[3:]
	}
	return s
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FormatTimeRange renders first and last seen clock tokens. Equal or single
// token is shown alone, nothing is returned when both are absent.
func FormatTimeRange(first, last string) string {
	first, last = ClockDisplay(strings.TrimSpace(first)), ClockDisplay(strings.TrimSpace(last))
	switch {
	case first != "" && last != "" && first != last:
		return first + "~" + last
	case first != "":
		return first
	default:
		return last
	}
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04",
}

// FormatISOTime renders ISO 8601 timestamp as "MM-DD hh:mm" using calendar
// fields of the timestamp itself, no zone conversion is done. Values without
// time part or which could not be parsed are returned verbatim.
func FormatISOTime(s string) string {
	if !strings.Contains(s, "T") {
		return s
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("01-02 15:04")
		}
	}
	return s
}
