package ledger

import (
	"testing"
	"time"

	"venue-booking/models/event"

	"github.com/stretchr/testify/assert"
)

func entry(amount float64) event.Payment {
	return event.Payment{
		Amount: amount,
		PaidOn: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestAdd_AppendsAndTotals(t *testing.T) {
	entries, total, err := Add(nil, entry(100000))
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 100000.0, total)

	entries, total, err = Add(entries, entry(50000))
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, 150000.0, total)
	assert.Equal(t, 0, entries[0].Position)
	assert.Equal(t, 1, entries[1].Position)
}

func TestAdd_RejectsNonPositiveAmount(t *testing.T) {
	existing, _, err := Add(nil, entry(100))
	assert.NoError(t, err)

	entries, total, err := Add(existing, entry(0))
	assert.Error(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 100.0, total)

	entries, total, err = Add(existing, entry(-50))
	assert.Error(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 100.0, total)
}

func TestAdd_RejectsMissingDate(t *testing.T) {
	_, _, err := Add(nil, event.Payment{Amount: 100})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "date")
}

func TestAdd_DoesNotMutateInput(t *testing.T) {
	existing, _, _ := Add(nil, entry(100))
	_, _, _ = Add(existing, entry(200))
	assert.Len(t, existing, 1)
}

func TestRemove_ReindexesAndTotals(t *testing.T) {
	entries, _, _ := Add(nil, entry(100000))
	entries, _, _ = Add(entries, entry(50000))

	entries, total := Remove(entries, 0)
	assert.Len(t, entries, 1)
	assert.Equal(t, 50000.0, total)
	assert.Equal(t, 0, entries[0].Position)
	assert.Equal(t, 50000.0, entries[0].Amount)
}

func TestRemove_OutOfRangeIsNoOp(t *testing.T) {
	entries, _, _ := Add(nil, entry(100))

	out, total := Remove(entries, 5)
	assert.Len(t, out, 1)
	assert.Equal(t, 100.0, total)

	out, total = Remove(entries, -1)
	assert.Len(t, out, 1)
	assert.Equal(t, 100.0, total)
}

func TestRemove_LastEntryLeavesEmptyLedger(t *testing.T) {
	entries, _, _ := Add(nil, entry(100))
	out, total := Remove(entries, 0)
	assert.Empty(t, out)
	assert.Equal(t, 0.0, total)
}

func TestTotal(t *testing.T) {
	assert.Equal(t, 0.0, Total(nil))

	entries, _, _ := Add(nil, entry(10.5))
	entries, _, _ = Add(entries, entry(20.25))
	assert.Equal(t, 30.75, Total(entries))
}
