package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthWindowFromTag(t *testing.T) {
	window := MonthWindowFromTag("2026-02")
	assert.Equal(t, "2026-02", window.Tag)
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), window.Next)
	assert.Equal(t, 28, window.Days())

	leap := MonthWindowFromTag("2028-02")
	assert.Equal(t, 29, leap.Days())

	december := MonthWindowFromTag("2026-12")
	assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), december.Next)
}

func TestMonthWindowFromTag_FallsBackToCurrentMonth(t *testing.T) {
	now := time.Now().UTC()
	expected := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	for _, tag := range []string{"", "03-2026", "garbage"} {
		window := MonthWindowFromTag(tag)
		assert.Equal(t, expected, window.Start, "tag %q", tag)
	}
}
