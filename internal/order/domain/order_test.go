package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderStatus(t *testing.T) {
	cases := []struct {
		input string
		want  OrderStatus
		ok    bool
	}{
		{"PENDING", OrderStatusPending, true},
		{"pending", OrderStatusPending, true},
		{"Shipped", OrderStatusShipped, true},
		{"confirmed", OrderStatusConfirmed, true},
		{"PROCESSING", OrderStatusProcessing, true},
		{"delivered", OrderStatusDelivered, true},
		{"CaNcElLeD", OrderStatusCancelled, true},
		{"REFUNDED", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseOrderStatus(tc.input)
		assert.Equal(t, tc.ok, ok, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}
