package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{StatusPending, StatusShipped, StatusDelivered, StatusCompleted} {
		require.True(t, s.Valid(), s)
	}
	require.False(t, OrderStatus("Cancelled").Valid())
	require.False(t, OrderStatus("").Valid())
	require.False(t, OrderStatus("pending").Valid())
}

func TestOrderStatusTransitions(t *testing.T) {
	require.True(t, StatusPending.CanTransitionTo(StatusShipped))
	require.True(t, StatusShipped.CanTransitionTo(StatusDelivered))
	require.True(t, StatusDelivered.CanTransitionTo(StatusCompleted))

	// no skipping ahead
	require.False(t, StatusPending.CanTransitionTo(StatusDelivered))
	require.False(t, StatusPending.CanTransitionTo(StatusCompleted))

	// no going back
	require.False(t, StatusShipped.CanTransitionTo(StatusPending))
	require.False(t, StatusDelivered.CanTransitionTo(StatusShipped))

	// terminal
	for _, next := range []OrderStatus{StatusPending, StatusShipped, StatusDelivered, StatusCompleted} {
		require.False(t, StatusCompleted.CanTransitionTo(next))
	}
}
