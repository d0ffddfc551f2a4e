package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

var (
	slugStripRegexp    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapseRegexp = regexp.MustCompile(`[\s_-]+`)
	clockRegexp        = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
	hhmmRegexp         = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// dateParser accepts the calendar date forms the create-event form and API clients send.
var dateParser = &now.Config{
	TimeLocation: time.UTC,
	TimeFormats: []string{
		"2006-01-02",
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006/01/02",
		"01/02/2006",
		"1/2/2006",
		"2006-1-2",
		"January 2, 2006",
		"January 2 2006",
		"Jan 2, 2006",
		"Jan 2 2006",
		"Monday, January 2, 2006",
		"Mon, Jan 2, 2006",
		"2 January 2006",
		"2 Jan 2006",
	},
}

// timeLayouts are the time-of-day forms accepted. Input is upper-cased before
// parsing so "pm" matches "PM".
var timeLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3:04:05 PM",
	"3 PM",
	"3PM",
}

// GenerateSlug derives the URL-safe slug for an event title.
func GenerateSlug(title string) string {
	s := strings.TrimSpace(strings.ToLower(title))
	s = slugStripRegexp.ReplaceAllString(s, "")
	s = slugCollapseRegexp.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NormalizeDate parses a calendar date and returns it as YYYY-MM-DD.
func NormalizeDate(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty date", ErrInvalidDate)
	}
	t, err := dateParser.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidDate, input)
	}
	return t.Format("2006-01-02"), nil
}

// NormalizeTime returns the time of day as 24-hour HH:MM. Input that is not
// recognisable as a time is returned trimmed and left for validation to reject.
func NormalizeTime(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}
	upper := strings.ToUpper(trimmed)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, upper); err == nil {
			return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
		}
	}
	if m := clockRegexp.FindStringSubmatch(trimmed); m != nil {
		hour, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("%02d:%s", hour, m[2])
	}
	return trimmed
}

// IsClockTime reports whether s is a valid 24-hour HH:MM value.
func IsClockTime(s string) bool {
	return hhmmRegexp.MatchString(s)
}
