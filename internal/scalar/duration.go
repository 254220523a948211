package scalar

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Duration is an amount of time that can also be unbounded.
type Duration struct {
	d         time.Duration
	unbounded bool
}

// Unbounded is the sentinel meaning "no limit".
var Unbounded = Duration{unbounded: true}

// NewDuration wraps a finite time.Duration.
func NewDuration(d time.Duration) Duration {
	return Duration{d: d}
}

// IsUnbounded reports whether the duration is the unbounded sentinel.
func (d Duration) IsUnbounded() bool { return d.unbounded }

// Std returns the finite duration, or math.MaxInt64 nanoseconds if unbounded.
func (d Duration) Std() time.Duration {
	if d.unbounded {
		return time.Duration(math.MaxInt64)
	}
	return d.d
}

// Milliseconds returns the duration in milliseconds; unbounded maps to
// math.MaxInt64.
func (d Duration) Milliseconds() int64 {
	if d.unbounded {
		return math.MaxInt64
	}
	return d.d.Milliseconds()
}

func (d Duration) String() string {
	if d.unbounded {
		return "unbounded"
	}
	return d.d.String()
}

// ParseDuration accepts Go duration text ("35m", "64s", "1h30m") and the
// sentinels "unbounded" and "max".
func ParseDuration(s string) (Duration, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unbounded", "max":
		return Unbounded, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return Duration{}, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if d < 0 {
		return Duration{}, fmt.Errorf("invalid duration %q: must not be negative", s)
	}
	return Duration{d: d}, nil
}
