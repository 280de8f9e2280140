// Package numbering formats and parses year-scoped document numbers of the
// form PREFIX-YEAR-NNNNNN.
package numbering

import (
	"fmt"
	"strconv"
	"strings"
)

// SeqWidth is the zero padding of the sequence part.
const SeqWidth = 6

// Format renders a number, e.g. Format("FT", 2025, 7) == "FT-2025-000007".
func Format(prefix string, year, seq int) string {
	return fmt.Sprintf("%s-%d-%0*d", prefix, year, SeqWidth, seq)
}

// Parse extracts the sequence from number when it matches prefix and year.
// ok is false for malformed numbers, which callers treat as absent.
func Parse(number, prefix string, year int) (seq int, ok bool) {
	head := fmt.Sprintf("%s-%d-", prefix, year)
	if !strings.HasPrefix(number, head) {
		return 0, false
	}
	tail := number[len(head):]
	if tail == "" {
		return 0, false
	}
	for _, r := range tail {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	seq, err := strconv.Atoi(tail)
	if err != nil || seq <= 0 {
		return 0, false
	}
	return seq, true
}

// Highest returns the largest valid sequence among existing numbers, or 0.
func Highest(existing []string, prefix string, year int) int {
	highest := 0
	for _, n := range existing {
		if seq, ok := Parse(n, prefix, year); ok && seq > highest {
			highest = seq
		}
	}
	return highest
}

// Next computes the sequence to assign: one past the highest of the valid
// existing numbers and the last issued counter value. Gaps are never filled.
func Next(existing []string, prefix string, year, lastIssued int) int {
	highest := Highest(existing, prefix, year)
	if lastIssued > highest {
		highest = lastIssued
	}
	return highest + 1
}
