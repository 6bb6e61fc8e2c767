package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
		want time.Time
	}{
		{"RFC3339 with offset", "2025-06-01T12:30:00+02:00", true, time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)},
		{"RFC3339 zulu", "2025-06-01T12:30:00Z", true, time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)},
		{"Naive ISO", "2025-06-01T12:30:00", true, time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)},
		{"Space separated", "2025-06-01 12:30:00", true, time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)},
		{"Naive with microseconds", "2025-06-01T12:30:00.123456", true, time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)},
		{"Date only", "2025-06-01", true, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"Padded", "  2025-06-01T12:30:00Z ", true, time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)},
		{"Empty", "", false, time.Time{}},
		{"Garbage", "not-a-date", false, time.Time{}},
		{"Unix seconds unsupported", "1717243800", false, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
			}
		})
	}
}

func TestValidSubmissionType(t *testing.T) {
	assert.True(t, ValidSubmissionType(SubmissionObservation))
	assert.True(t, ValidSubmissionType(SubmissionCorrection))
	assert.True(t, ValidSubmissionType(SubmissionSuggestion))
	assert.False(t, ValidSubmissionType("complaint"))
	assert.False(t, ValidSubmissionType(""))
}
