package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{OrderStatusPending, OrderStatusAccepted, true},
		{OrderStatusPending, OrderStatusDeclined, true},
		{OrderStatusPending, OrderStatusPending, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusAccepted, OrderStatusPending, false},
		{OrderStatusAccepted, OrderStatusAccepted, false},
		{OrderStatusAccepted, OrderStatusDeclined, false},
		{OrderStatusDeclined, OrderStatusDeclined, false},
		{OrderStatusDeclined, OrderStatusAccepted, false},
		{OrderStatusDelivered, OrderStatusAccepted, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransition(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestParseOrderStatus(t *testing.T) {
	for _, valid := range []string{"pending", "accepted", "declined", "delivered"} {
		status, err := ParseOrderStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, OrderStatus(valid), status)
	}

	_, err := ParseOrderStatus("shipped")
	assert.Error(t, err)

	_, err = ParseOrderStatus("")
	assert.Error(t, err)
}
