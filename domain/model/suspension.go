package model

import (
	"math"
	"strings"
	"time"
)

// Distinguished suspension reasons. Any other reason is an intentional suspension.
const (
	ReasonBandwidthExceeded = "Bandwidth Limit Exceeded"
	ReasonUnknown           = "Unknown"
)

// SuspensionRecord is the suspension metadata of an account, fetched fresh every run.
type SuspensionRecord struct {
	User               string    `json:"user"`
	Owner              string    `json:"owner"`
	Reason             string    `json:"reason"`
	SuspendedAt        time.Time `json:"suspended_at"` // zero if the API timestamp was missing or invalid
	SuspendedSinceDays int       `json:"suspended_since_days"`
}

// IsBandwidth reports whether the suspension was caused by the bandwidth limit.
func (s SuspensionRecord) IsBandwidth() bool {
	return strings.Contains(s.Reason, ReasonBandwidthExceeded)
}

// IsUnexplained reports whether the suspension reason is "Unknown".
func (s SuspensionRecord) IsUnexplained() bool {
	return s.Reason == ReasonUnknown
}

// SuspendedDays returns the whole days elapsed between at and now, rounded to
// the nearest day. A zero or future timestamp yields 0.
func SuspendedDays(at, now time.Time) int {
	if at.IsZero() || !now.After(at) {
		return 0
	}
	return int(math.Round(now.Sub(at).Hours() / 24))
}
