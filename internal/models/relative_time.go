package models

import (
	"fmt"
	"math"
	"time"
)

// RelativeTime renders t relative to now the way the dashboard lists updates.
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "—"
	}

	minutes := int(math.Round(now.Sub(t).Minutes()))
	if minutes < 1 {
		return "Just now"
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm ago", minutes)
	}

	hours := int(math.Round(float64(minutes) / 60))
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}

	days := int(math.Round(float64(hours) / 24))
	if days < 7 {
		return fmt.Sprintf("%dd ago", days)
	}

	weeks := int(math.Round(float64(days) / 7))
	if weeks < 4 {
		return fmt.Sprintf("%dw ago", weeks)
	}

	return t.Format("Jan 2")
}
