package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilPublisherIsSafe(t *testing.T) {
	var p *Publisher

	assert.NoError(t, p.Publish(RouteBookingCreated, map[string]string{"k": "v"}))
	assert.NotPanics(t, func() {
		p.PublishBooking(RouteBookingUpdated, BookingMessage{EventID: 1})
	})
	assert.NotPanics(t, p.Close)
}
