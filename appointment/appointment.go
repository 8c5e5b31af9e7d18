// Package appointment resolves a patient's numbered choice against the
// offered appointment slots.
package appointment

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidSelection = errors.New("invalid appointment selection")

// DefaultSlots are the bookable times offered to every patient, in menu order.
var DefaultSlots = []string{
	"10:00 AM Monday",
	"11:30 AM Tuesday",
	"2:00 PM Wednesday",
}

// Select parses input as a 1-based index into slots.
func Select(input string, slots []string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return "", fmt.Errorf("%w: %q is not a number", ErrInvalidSelection, input)
	}
	if n < 1 || n > len(slots) {
		return "", fmt.Errorf("%w: %d is outside 1..%d", ErrInvalidSelection, n, len(slots))
	}
	return slots[n-1], nil
}

// Menu renders slots as numbered lines.
func Menu(slots []string) string {
	var sb strings.Builder
	for i, s := range slots {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%d) %s", i+1, s))
	}
	return sb.String()
}
