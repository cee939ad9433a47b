package templates

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/osteele/liquid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderString(t *testing.T, src string, bindings liquid.Bindings) string {
	t.Helper()
	out, err := newEngine().ParseAndRenderString(src, bindings)
	require.NoError(t, err)
	return out
}

func TestFormatDateFilter(t *testing.T) {
	t.Run("default format", func(t *testing.T) {
		out := renderString(t, `{{ date | format_date }}`, liquid.Bindings{"date": "2025-06-15T12:00:00Z"})
		assert.Equal(t, "June 15, 2025", out)
	})

	t.Run("short format", func(t *testing.T) {
		out := renderString(t, `{{ date | format_date: "short" }}`, liquid.Bindings{"date": "2025-06-15T12:00:00Z"})
		assert.Equal(t, "Jun 15", out)
	})

	t.Run("long format", func(t *testing.T) {
		out := renderString(t, `{{ date | format_date: "long" }}`, liquid.Bindings{"date": "2025-06-15T12:00:00Z"})
		assert.Equal(t, "Sunday, June 15, 2025", out)
	})

	t.Run("relative format", func(t *testing.T) {
		now := time.Now()
		cases := map[string]time.Time{
			"today":      now,
			"tomorrow":   now.Add(24 * time.Hour),
			"yesterday":  now.Add(-24 * time.Hour),
			"in 2 days":  now.Add(48 * time.Hour),
			"3 days ago": now.Add(-72 * time.Hour),
		}
		for want, date := range cases {
			out := renderString(t, `{{ date | format_date: "relative" }}`, liquid.Bindings{"date": date})
			assert.Equal(t, want, out)
		}
	})

	t.Run("empty and invalid dates degrade to empty", func(t *testing.T) {
		assert.Empty(t, renderString(t, `{{ date | format_date }}`, liquid.Bindings{"date": ""}))
		assert.Empty(t, renderString(t, `{{ date | format_date }}`, liquid.Bindings{"date": "not-a-date"}))
		assert.Empty(t, renderString(t, `{{ missing | format_date }}`, liquid.Bindings{}))
	})
}

func TestRelativeDayMidnightNormalization(t *testing.T) {
	// Same calendar day must read "today" no matter how close to midnight
	// either side sits.
	now := time.Date(2025, 3, 10, 0, 15, 0, 0, time.UTC)

	assert.Equal(t, "today", relativeDay(time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC), now))
	assert.Equal(t, "tomorrow", relativeDay(time.Date(2025, 3, 11, 0, 5, 0, 0, time.UTC), now))
	assert.Equal(t, "yesterday", relativeDay(time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC), now))
	assert.Equal(t, "in 5 days", relativeDay(time.Date(2025, 3, 15, 1, 0, 0, 0, time.UTC), now))
	assert.Equal(t, "10 days ago", relativeDay(time.Date(2025, 2, 28, 12, 0, 0, 0, time.UTC), now))
}

func TestInitialsFilter(t *testing.T) {
	t.Run("two-part name", func(t *testing.T) {
		out := renderString(t, `{{ name | initials }}`, liquid.Bindings{"name": "John Doe"})
		assert.Equal(t, "JD", out)
	})

	t.Run("limits to two characters", func(t *testing.T) {
		out := renderString(t, `{{ name | initials }}`, liquid.Bindings{"name": "John Michael Doe"})
		assert.Equal(t, "JM", out)
	})

	t.Run("single name", func(t *testing.T) {
		out := renderString(t, `{{ name | initials }}`, liquid.Bindings{"name": "John"})
		assert.Equal(t, "J", out)
	})

	t.Run("lowercase input uppercased", func(t *testing.T) {
		assert.Equal(t, "JD", Initials("john doe"))
	})

	t.Run("empty name", func(t *testing.T) {
		assert.Empty(t, renderString(t, `{{ name | initials }}`, liquid.Bindings{"name": ""}))
		assert.Empty(t, Initials("   "))
	})
}

func TestTruncateWordsFilter(t *testing.T) {
	t.Run("truncates to given count", func(t *testing.T) {
		out := renderString(t, `{{ text | truncate_words: 3 }}`, liquid.Bindings{"text": "one two three four five"})
		assert.Equal(t, "one two three...", out)
	})

	t.Run("under limit passes through", func(t *testing.T) {
		out := renderString(t, `{{ text | truncate_words: 5 }}`, liquid.Bindings{"text": "short text"})
		assert.Equal(t, "short text", out)
	})

	t.Run("defaults to 20 words", func(t *testing.T) {
		words := make([]string, 25)
		for i := range words {
			words[i] = "word" + strconv.Itoa(i)
		}
		out := renderString(t, `{{ text | truncate_words }}`, liquid.Bindings{"text": strings.Join(words, " ")})
		assert.Len(t, strings.Fields(out), 20)
		assert.True(t, strings.HasSuffix(out, "..."))
	})

	t.Run("collapses whitespace runs when truncating", func(t *testing.T) {
		out := renderString(t, `{{ text | truncate_words: 2 }}`, liquid.Bindings{"text": "a  b\n c"})
		assert.Equal(t, "a b...", out)
	})
}

func TestPluralizeFilter(t *testing.T) {
	t.Run("singular at exactly one", func(t *testing.T) {
		out := renderString(t, `{{ n | pluralize: "person", "people" }}`, liquid.Bindings{"n": 1})
		assert.Equal(t, "person", out)
	})

	t.Run("plural above one", func(t *testing.T) {
		out := renderString(t, `{{ n | pluralize: "person", "people" }}`, liquid.Bindings{"n": 5})
		assert.Equal(t, "people", out)
	})

	t.Run("plural at zero", func(t *testing.T) {
		out := renderString(t, `{{ n | pluralize: "match", "matches" }}`, liquid.Bindings{"n": 0})
		assert.Equal(t, "matches", out)
	})

	t.Run("auto-pluralizes with s", func(t *testing.T) {
		out := renderString(t, `{{ n | pluralize: "cat" }}`, liquid.Bindings{"n": 3})
		assert.Equal(t, "cats", out)
	})
}

func TestMaskEmailFilter(t *testing.T) {
	t.Run("masks local part", func(t *testing.T) {
		out := renderString(t, `{{ email | mask_email }}`, liquid.Bindings{"email": "john@example.com"})
		assert.Equal(t, "j***@example.com", out)
	})

	t.Run("single-character local part", func(t *testing.T) {
		out := renderString(t, `{{ email | mask_email }}`, liquid.Bindings{"email": "a@example.com"})
		assert.Equal(t, "a***@example.com", out)
	})

	t.Run("non-email passes through", func(t *testing.T) {
		out := renderString(t, `{{ email | mask_email }}`, liquid.Bindings{"email": "not-an-email"})
		assert.Equal(t, "not-an-email", out)
	})

	t.Run("domain survives verbatim", func(t *testing.T) {
		assert.Equal(t, "j***@mail.co.uk", MaskEmail("jane.doe@mail.co.uk"))
	})
}

func TestAgeFilter(t *testing.T) {
	t.Run("whole years from birthdate", func(t *testing.T) {
		birth := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
		want := strconv.Itoa(yearsBetween(birth, time.Now()))
		out := renderString(t, `{{ dob | age }}`, liquid.Bindings{"dob": "2001-01-01"})
		assert.Equal(t, want, out)
	})

	t.Run("birthday not yet reached this year", func(t *testing.T) {
		birth := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 29, yearsBetween(birth, time.Date(2020, 6, 14, 0, 0, 0, 0, time.UTC)))
		assert.Equal(t, 30, yearsBetween(birth, time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("empty birthdate degrades to empty", func(t *testing.T) {
		assert.Empty(t, renderString(t, `{{ dob | age }}`, liquid.Bindings{"dob": ""}))
	})
}

func TestNl2brFilter(t *testing.T) {
	out := renderString(t, `{{ text | nl2br }}`, liquid.Bindings{"text": "line1\nline2\nline3"})
	assert.Equal(t, "line1<br>line2<br>line3", out)
}

func TestSafeTextFilter(t *testing.T) {
	out := renderString(t, `{{ text | safe_text }}`, liquid.Bindings{"text": `<b>"Tom & Jerry's"</b>`})
	assert.Equal(t, "&lt;b&gt;&quot;Tom &amp; Jerry&#039;s&quot;&lt;/b&gt;", out)
}
