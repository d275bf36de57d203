// Package lifecycle models the fixed forward-only fulfillment sequence an
// order passes through and the single automatic transition the shop runs.
package lifecycle

import "fmt"

const (
	StatusPreparing      = "preparing"
	StatusReady          = "ready"
	StatusOutForDelivery = "out-for-delivery"
	StatusCompleted      = "completed"
)

// sequence maps each status to its position. Transitions move exactly one
// position forward, so the observed history of any order is always a prefix
// of the full sequence.
var sequence = map[string]int{
	StatusPreparing:      0,
	StatusReady:          1,
	StatusOutForDelivery: 2,
	StatusCompleted:      3,
}

func ValidStatus(status string) bool {
	_, ok := sequence[status]
	return ok
}

// Advance validates a transition from one status to another. Regressions,
// repeats, skips, and unknown statuses are all rejected.
func Advance(from, to string) error {
	fromPos, ok := sequence[from]
	if !ok {
		return fmt.Errorf("lifecycle: unknown status %q", from)
	}
	toPos, ok := sequence[to]
	if !ok {
		return fmt.Errorf("lifecycle: unknown status %q", to)
	}
	if toPos != fromPos+1 {
		return fmt.Errorf("lifecycle: cannot move from %q to %q", from, to)
	}
	return nil
}

// Next returns the status that follows the given one, or "" at the end.
func Next(status string) string {
	pos, ok := sequence[status]
	if !ok {
		return ""
	}
	for s, p := range sequence {
		if p == pos+1 {
			return s
		}
	}
	return ""
}

// Terminal reports whether no further transitions are possible.
func Terminal(status string) bool {
	return status == StatusCompleted
}
