package statemachine

import (
	"errors"
	"testing"

	"quickbite-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHappyPathTransitions(t *testing.T) {
	chain := []models.OrderStatus{
		models.StatusPlaced,
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusReady,
		models.StatusPickedUp,
		models.StatusOutForDelivery,
		models.StatusDelivered,
	}
	for i := 0; i < len(chain)-1; i++ {
		assert.NoError(t, CanTransition(chain[i], chain[i+1]),
			"%s -> %s should be legal", chain[i], chain[i+1])
	}
}

func TestCancellationWindow(t *testing.T) {
	assert.True(t, CanCancel(models.StatusPlaced))
	assert.True(t, CanCancel(models.StatusConfirmed))

	for _, s := range []models.OrderStatus{
		models.StatusPreparing,
		models.StatusReady,
		models.StatusPickedUp,
		models.StatusOutForDelivery,
		models.StatusDelivered,
		models.StatusCancelled,
	} {
		assert.False(t, CanCancel(s), "cancel from %s should be rejected", s)
	}
}

func TestNoSkippingStates(t *testing.T) {
	err := CanTransition(models.StatusPlaced, models.StatusDelivered)
	require.Error(t, err)

	var terr *TransitionError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, models.StatusPlaced, terr.From)
	assert.Equal(t, models.StatusDelivered, terr.To)
}

func TestNoBackwardTransitions(t *testing.T) {
	assert.Error(t, CanTransition(models.StatusPreparing, models.StatusConfirmed))
	assert.Error(t, CanTransition(models.StatusDelivered, models.StatusOutForDelivery))
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, IsTerminal(models.StatusDelivered))
	assert.True(t, IsTerminal(models.StatusCancelled))
	assert.False(t, IsTerminal(models.StatusPlaced))
	assert.False(t, IsTerminal(models.StatusOutForDelivery))

	assert.Error(t, CanTransition(models.StatusDelivered, models.StatusPlaced))
	assert.Error(t, CanTransition(models.StatusCancelled, models.StatusPlaced))
	assert.Empty(t, ValidNext(models.StatusDelivered))
	assert.Empty(t, ValidNext(models.StatusCancelled))
}

func TestValidStatus(t *testing.T) {
	for _, s := range []models.OrderStatus{
		models.StatusPlaced, models.StatusConfirmed, models.StatusPreparing,
		models.StatusReady, models.StatusPickedUp, models.StatusOutForDelivery,
		models.StatusDelivered, models.StatusCancelled,
	} {
		assert.True(t, ValidStatus(s))
	}
	assert.False(t, ValidStatus("shipped"))
	assert.False(t, ValidStatus(""))
}
