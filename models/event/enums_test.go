package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	assert.Equal(t, StatusPending, DeriveStatus(0, 50000))
	assert.Equal(t, StatusPending, DeriveStatus(-10, 50000))
	assert.Equal(t, StatusPartiallyPaid, DeriveStatus(100000, 50000))
	assert.Equal(t, StatusPaidInFull, DeriveStatus(150000, 0))
	assert.Equal(t, StatusPaidInFull, DeriveStatus(150000, -1))
}

func TestEventStatus_IsValid(t *testing.T) {
	for _, s := range GetAllEventStatuses() {
		assert.True(t, s.IsValid())
	}
	assert.False(t, EventStatus("archived").IsValid())
	assert.False(t, EventStatus("").IsValid())
}

func TestEventStatus_Lifecycle(t *testing.T) {
	assert.True(t, StatusPaidInFull.IsSettled())
	assert.True(t, StatusCancelled.IsSettled())
	assert.False(t, StatusPartiallyPaid.IsSettled())

	assert.True(t, StatusPending.CanAcceptPayments())
	assert.True(t, StatusPaidInFull.CanAcceptPayments())
	assert.False(t, StatusCancelled.CanAcceptPayments())
}
