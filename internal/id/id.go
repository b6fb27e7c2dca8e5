// Package id formats and parses journal entry references.
package id

import (
	"fmt"
	"strconv"
	"strings"
)

const prefix = "JE"

// FormatReference returns an entry reference like "JE-2025-01-001".
func FormatReference(year, month, seq int) string {
	return fmt.Sprintf("%s-%04d-%02d-%03d", prefix, year, month, seq)
}

// ParseReference parses "JE-2025-01-001" into year, month, seq.
func ParseReference(ref string) (year, month, seq int, err error) {
	parts := strings.SplitN(ref, "-", 4)
	if len(parts) != 4 || parts[0] != prefix {
		return 0, 0, 0, fmt.Errorf("invalid reference format: %q", ref)
	}

	year, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in reference %q: %w", ref, err)
	}

	month, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid month in reference %q: %w", ref, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("month out of range in reference %q", ref)
	}

	seq, err = strconv.Atoi(parts[3])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in reference %q: %w", ref, err)
	}

	return year, month, seq, nil
}

// IsGenerated reports whether a reference follows the generated format.
func IsGenerated(ref string) bool {
	_, _, _, err := ParseReference(ref)
	return err == nil
}

// NextSeq returns one past the highest generated sequence found in refs
// for the given month. Non-generated references are ignored.
func NextSeq(refs []string, year, month int) int {
	maxSeq := 0
	for _, ref := range refs {
		y, m, seq, err := ParseReference(ref)
		if err != nil || y != year || m != month {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1
}
