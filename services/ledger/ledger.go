package ledger

import (
	"fmt"
	"time"

	"venue-booking/models/event"
)

// The ledger is the ordered list of payments embedded in an event. It is
// append-only: entries are added at the end, removed by position and never
// mutated in place. The derived total is authoritative for the event deposit
// whenever at least one entry exists.

// Add validates and appends an entry, returning the new ledger and the
// recomputed total. The input slice is not modified.
func Add(entries []event.Payment, entry event.Payment) ([]event.Payment, float64, error) {
	if entry.Amount <= 0 {
		return entries, Total(entries), fmt.Errorf("payment amount must be a positive number")
	}
	if entry.PaidOn.IsZero() {
		return entries, Total(entries), fmt.Errorf("payment date is required")
	}

	entry.Position = len(entries)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	out := make([]event.Payment, 0, len(entries)+1)
	out = append(out, entries...)
	out = append(out, entry)
	return out, Total(out), nil
}

// Remove deletes the entry at index and recomputes positions and the total.
// An out-of-range index is a guarded no-op: entry indexes are sourced from the
// ledger itself, so a stale index must not take the session down.
func Remove(entries []event.Payment, index int) ([]event.Payment, float64) {
	if index < 0 || index >= len(entries) {
		return entries, Total(entries)
	}

	out := make([]event.Payment, 0, len(entries)-1)
	out = append(out, entries[:index]...)
	out = append(out, entries[index+1:]...)
	for i := range out {
		out[i].Position = i
	}
	return out, Total(out)
}

// Total sums the entry amounts.
func Total(entries []event.Payment) float64 {
	var sum float64
	for _, e := range entries {
		sum += e.Amount
	}
	return sum
}
