package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBytesToGiB(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  float64
	}{
		{name: "zero", bytes: 0, want: 0.0},
		{name: "one gibibyte", bytes: 1073741824, want: 1.0},
		{name: "five gibibytes", bytes: 5368709120, want: 5.0},
		{name: "half gibibyte", bytes: 536870912, want: 0.5},
		{name: "decimal gigabyte is not a gibibyte", bytes: 1000000000, want: 1000000000.0 / 1073741824.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BytesToGiB(tt.bytes))
		})
	}
}

func TestUsageReading_GiB(t *testing.T) {
	r := UsageReading{PolicyID: 3, ASICBytes: 3 * BytesPerGiB}
	assert.Equal(t, 3.0, r.GiB())
}

func TestMonthLabel(t *testing.T) {
	ts := time.Date(2025, time.July, 14, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "July 2025", MonthLabel(ts))
}

func TestNotificationMessage_Content(t *testing.T) {
	tests := []struct {
		name  string
		now   time.Time
		usage float64
		want  string
	}{
		{
			name:  "rounds to two decimals",
			now:   time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
			usage: 2.345,
			want:  "Your monthly usage for July 2025 is 2.35 GiB",
		},
		{
			name:  "zero usage",
			now:   time.Date(2024, time.December, 31, 23, 59, 0, 0, time.UTC),
			usage: 0,
			want:  "Your monthly usage for December 2024 is 0.00 GiB",
		},
		{
			name:  "large usage",
			now:   time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC),
			usage: 1536.5,
			want:  "Your monthly usage for February 2026 is 1536.50 GiB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := NewNotificationMessage(tt.now, tt.usage)
			assert.Equal(t, tt.want, msg.Content())
		})
	}
}
