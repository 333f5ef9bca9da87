package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Duration validation errors
var (
	ErrNegativeDuration = errors.New("duration cannot be negative")
	ErrInvertedInterval = errors.New("end time must be after start time")
)

// Duration is a non-negative span of time expressed in fractional minutes.
// It is the unit every aggregation in the application works with.
type Duration float64

// NewDuration creates a Duration from a number of minutes.
// Returns an error if minutes is negative.
func NewDuration(minutes float64) (Duration, error) {
	if minutes < 0 {
		return 0, ErrNegativeDuration
	}
	return Duration(minutes), nil
}

// DurationBetween derives a Duration from a (start, end) pair.
// Returns an error if end is not after start.
func DurationBetween(start, end time.Time) (Duration, error) {
	if !end.After(start) {
		return 0, ErrInvertedInterval
	}
	return Duration(end.Sub(start).Minutes()), nil
}

// Minutes returns the duration as fractional minutes.
func (d Duration) Minutes() float64 {
	return float64(d)
}

// Add returns the sum of two durations.
func (d Duration) Add(other Duration) Duration {
	return d + other
}

// Sub returns the difference of two durations.
// Returns an error if the result would be negative.
func (d Duration) Sub(other Duration) (Duration, error) {
	if other > d {
		return 0, ErrNegativeDuration
	}
	return d - other, nil
}

// String renders the duration in a compact human form, e.g. "1h30min".
// Fractional minutes are rounded to the nearest whole minute.
func (d Duration) String() string {
	total := int(math.Round(float64(d)))
	hours := total / 60
	minutes := total % 60

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh%dmin", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dmin", minutes)
	}
}
