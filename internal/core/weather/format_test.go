package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDateLabel(t *testing.T) {
	assert.Equal(t, "Monday, January 5", FormatDateLabel("2026-01-05"))
	assert.Equal(t, "Sunday, August 23", FormatDateLabel("2026-08-23"))
}

func TestFormatTimestampLabel(t *testing.T) {
	assert.Equal(t, "January 5, 14:30", FormatTimestampLabel("2026-01-05T14:30"))
	assert.Equal(t, "August 23, 09:05", FormatTimestampLabel("2026-08-23T09:05"))
}

func TestFormatHourLabel(t *testing.T) {
	assert.Equal(t, "14:30", FormatHourLabel("2026-01-05T14:30"))
	assert.Equal(t, "00:00", FormatHourLabel("2026-01-05T00:00"))
}

// Unparseable strings pass through unchanged instead of failing the fetch.
func TestFormat_PassThroughOnParseFailure(t *testing.T) {
	tests := []string{"", "not-a-date", "05/01/2026", "2026-13-45"}
	for _, raw := range tests {
		assert.Equal(t, raw, FormatDateLabel(raw))
		assert.Equal(t, raw, FormatTimestampLabel(raw))
		assert.Equal(t, raw, FormatHourLabel(raw))
	}
}
