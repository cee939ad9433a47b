package templates

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/osteele/liquid"
)

// dateLayouts are the timestamp shapes filters accept, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// registerFilters installs the campaign filter set on an engine. Filters are
// pure and total: bad input degrades to an empty string, never an error.
func registerFilters(engine *liquid.Engine) {
	engine.RegisterFilter("format_date", filterFormatDate)
	engine.RegisterFilter("initials", filterInitials)
	engine.RegisterFilter("truncate_words", filterTruncateWords)
	engine.RegisterFilter("pluralize", filterPluralize)
	engine.RegisterFilter("mask_email", filterMaskEmail)
	engine.RegisterFilter("age", filterAge)
	engine.RegisterFilter("safe_text", filterSafeText)
	engine.RegisterFilter("nl2br", filterNl2br)
}

func filterFormatDate(value any, format func(string) string) string {
	t, ok := parseDate(value)
	if !ok {
		return ""
	}
	switch format("") {
	case "short":
		return t.Format("Jan 2")
	case "long":
		return t.Format("Monday, January 2, 2006")
	case "relative":
		return relativeDay(t, time.Now())
	default:
		return t.Format("January 2, 2006")
	}
}

func filterInitials(value any) string {
	return Initials(stringOf(value))
}

func filterTruncateWords(value any, count func(int) int) string {
	text := stringOf(value)
	if text == "" {
		return ""
	}
	limit := count(20)
	words := strings.Fields(text)
	if len(words) <= limit {
		return text
	}
	return strings.Join(words[:limit], " ") + "..."
}

func filterPluralize(value any, singular string, plural func(string) string) string {
	if n, ok := intOf(value); ok && n == 1 {
		return singular
	}
	return plural(singular + "s")
}

func filterMaskEmail(value any) any {
	email, ok := value.(string)
	if !ok {
		return value
	}
	return MaskEmail(email)
}

func filterAge(value any) any {
	t, ok := parseDate(value)
	if !ok {
		return ""
	}
	return yearsBetween(t, time.Now())
}

func filterSafeText(value any) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#039;",
	)
	return replacer.Replace(stringOf(value))
}

func filterNl2br(value any) string {
	return strings.ReplaceAll(stringOf(value), "\n", "<br>")
}

// Initials reduces a full name to at most two uppercase initials, one per
// whitespace-separated part.
func Initials(name string) string {
	var initials []rune
	for _, part := range strings.Fields(name) {
		runes := []rune(part)
		initials = append(initials, unicode.ToUpper(runes[0]))
		if len(initials) == 2 {
			break
		}
	}
	return string(initials)
}

// MaskEmail hides the local part of an address: "jane@example.com" becomes
// "j***@example.com". The domain stays intact so recipients can judge
// legitimacy. Input without an "@" passes through unchanged.
func MaskEmail(email string) string {
	if !strings.Contains(email, "@") {
		return email
	}
	local, domain, _ := strings.Cut(email, "@")
	if local == "" {
		return "***@" + domain
	}
	first := []rune(local)[0]
	return string(first) + "***@" + domain
}

// AgeFromBirthdate computes whole years from a birthdate string to today.
// Unparseable input yields 0.
func AgeFromBirthdate(birthdate string) int {
	t, ok := parseDate(birthdate)
	if !ok {
		return 0
	}
	return yearsBetween(t, time.Now())
}

func parseDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case *time.Time:
		if v != nil {
			return *v, true
		}
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// relativeDay expresses t as a whole-day distance from now. Both sides are
// normalized to local midnight first, so any two clock times on the same
// calendar day compare as "today".
func relativeDay(t, now time.Time) string {
	t = t.In(now.Location())
	days := int(math.Round(midnight(t).Sub(midnight(now)).Hours() / 24))
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 1:
		return fmt.Sprintf("in %d days", days)
	default:
		return fmt.Sprintf("%d days ago", -days)
	}
}

func midnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// yearsBetween is calendar age: the year difference, minus one when the
// anniversary hasn't arrived yet this year.
func yearsBetween(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}

func stringOf(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func intOf(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		return int(v), v == math.Trunc(v)
	}
	return 0, false
}
