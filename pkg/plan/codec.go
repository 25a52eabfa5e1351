package plan

import (
	"strings"
	"time"
)

const milestoneDelimiter = "|"

// EncodeMilestone packs a month key and sub-goal title into one string,
// "YYYY-MM|title". The title is not escaped.
func EncodeMilestone(month, title string) string {
	return month + milestoneDelimiter + title
}

// DecodeMilestone splits raw at its first delimiter. When there is none, or
// the text before it is not a "YYYY-MM" key, the record is treated as legacy:
// ok is false and title is raw unchanged.
func DecodeMilestone(raw string) (month, title string, ok bool) {
	month, title, ok = strings.Cut(raw, milestoneDelimiter)
	if !ok || !ValidMonthKey(month) {
		return "", raw, false
	}
	return month, title, true
}

// ValidMonthKey reports whether key is a well-formed "YYYY-MM" month key.
func ValidMonthKey(key string) bool {
	if len(key) != len("2006-01") {
		return false
	}
	_, err := time.Parse("2006-01", key)
	return err == nil
}
