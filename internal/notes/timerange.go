package notes

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// TimeRange bounds createdAt. A zero bound is open.
type TimeRange struct {
	Since time.Time
	Until time.Time
}

// ParseTimeExpr accepts relative ages ("90m", "2h", "3d", "2w", "1mo")
// counted back from now, or any absolute date dateparse understands.
func ParseTimeExpr(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time expression")
	}

	suffixes := []struct {
		suffix string
		apply  func(int) time.Time
	}{
		{"mo", func(n int) time.Time { return now.AddDate(0, -n, 0) }},
		{"w", func(n int) time.Time { return now.AddDate(0, 0, -7*n) }},
		{"d", func(n int) time.Time { return now.AddDate(0, 0, -n) }},
	}
	for _, sfx := range suffixes {
		num, ok := strings.CutSuffix(s, sfx.suffix)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(num); err == nil && n >= 0 {
			return sfx.apply(n), nil
		}
		break
	}

	// Go durations keep 'm' as minutes.
	if d, err := time.ParseDuration(s); err == nil {
		return now.Add(-d), nil
	}
	t, err := dateparse.ParseLocal(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time expression: %q", s)
	}
	return t, nil
}

// ParseRange parses since/until (empty allowed) and swaps them if reversed.
func ParseRange(since, until string, now time.Time) (TimeRange, error) {
	var r TimeRange
	var err error
	if since != "" {
		if r.Since, err = ParseTimeExpr(since, now); err != nil {
			return TimeRange{}, fmt.Errorf("invalid --since: %w", err)
		}
	}
	if until != "" {
		if r.Until, err = ParseTimeExpr(until, now); err != nil {
			return TimeRange{}, fmt.Errorf("invalid --until: %w", err)
		}
	}
	if !r.Since.IsZero() && !r.Until.IsZero() && r.Since.After(r.Until) {
		r.Since, r.Until = r.Until, r.Since
	}
	return r, nil
}

func (r TimeRange) IsZero() bool { return r.Since.IsZero() && r.Until.IsZero() }

// Contains reports whether t falls in [Since, Until].
func (r TimeRange) Contains(t time.Time) bool {
	if !r.Since.IsZero() && t.Before(r.Since) {
		return false
	}
	if !r.Until.IsZero() && t.After(r.Until) {
		return false
	}
	return true
}

// Between keeps notes created within r, in collection order.
func Between(c Collection, r TimeRange) Collection {
	if r.IsZero() {
		return c
	}
	out := make(Collection, 0, len(c))
	for _, n := range c {
		if r.Contains(n.CreatedAt) {
			out = append(out, n)
		}
	}
	return out
}
