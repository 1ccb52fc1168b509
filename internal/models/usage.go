package models

import (
	"fmt"
	"time"
)

// BytesPerGiB is the binary gibibyte, 2^30 bytes.
const BytesPerGiB = 1 << 30

type UsageReading struct {
	PolicyID    int       `json:"policy_id" yaml:"policy_id"`
	ASICBytes   int64     `json:"asic_bytes" yaml:"asic_bytes"`
	CollectedAt time.Time `json:"collected_at" yaml:"collected_at"`
}

// GiB returns the ASIC byte counter in gibibytes.
func (r UsageReading) GiB() float64 {
	return BytesToGiB(r.ASICBytes)
}

func BytesToGiB(b int64) float64 {
	return float64(b) / BytesPerGiB
}

type NotificationMessage struct {
	MonthLabel string
	UsageGiB   float64
}

// NewNotificationMessage labels usage with the month of now, not the billing
// period the counter covers.
func NewNotificationMessage(now time.Time, usageGiB float64) NotificationMessage {
	return NotificationMessage{
		MonthLabel: MonthLabel(now),
		UsageGiB:   usageGiB,
	}
}

func (m NotificationMessage) Content() string {
	return fmt.Sprintf("Your monthly usage for %s is %.2f GiB", m.MonthLabel, m.UsageGiB)
}

// MonthLabel formats t as full month name and year, e.g. "July 2025".
func MonthLabel(t time.Time) string {
	return t.Format("January 2006")
}
