package services

import "time"

// uniqueStrings returns the input with duplicates removed, preserving order.
func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// today returns the current calendar date in UTC, with no time-of-day component.
func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}
