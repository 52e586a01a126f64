package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// SplitList splits a comma separated option value and trims whitespace around every item.
// Empty items are kept so callers can report them.
func SplitList(val string) []string {
	parts := strings.Split(val, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// ParseIntList parses a comma separated list of integers, e.g. "4,2,2".
func ParseIntList(val string) ([]int, error) {
	parts := SplitList(val)
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("problem parsing value '%s': not an integer", p)
		}
		out = append(out, n)
	}
	return out, nil
}
