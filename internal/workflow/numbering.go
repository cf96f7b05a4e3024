package workflow

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatRequestNumber renders YYYY/NNNNNN. Sequences past 999999 keep all their digits.
func FormatRequestNumber(year int, seq int64) string {
	return fmt.Sprintf("%d/%06d", year, seq)
}

// ParseRequestNumber splits a request number back into its year and sequence.
func ParseRequestNumber(number string) (year int, seq int64, err error) {
	parts := strings.Split(number, "/")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) < 6 {
		return 0, 0, fmt.Errorf("malformed request number %q", number)
	}
	if year, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, fmt.Errorf("malformed request year %q: %w", parts[0], err)
	}
	if seq, err = strconv.ParseInt(parts[1], 10, 64); err != nil || seq < 1 {
		return 0, 0, fmt.Errorf("malformed request sequence %q", parts[1])
	}
	return year, seq, nil
}
