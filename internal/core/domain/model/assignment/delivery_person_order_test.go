package assignment_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeliveryPersonOrder(t *testing.T) {
	t.Run("creates valid record", func(t *testing.T) {
		rec, err := assignment.NewDeliveryPersonOrder(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"ORD-10045", 34900, "pending", assignment.PaymentMethodCOD,
		)

		require.NoError(t, err)
		require.NoError(t, rec.Validate())
		assert.Equal(t, "ORD-10045", rec.GeneratedOrderID())
		assert.Equal(t, int64(34900), rec.DeliveryAmount())
		assert.Equal(t, assignment.PaymentMethodCOD, rec.PaymentMethod())
		assert.WithinDuration(t, time.Now().UTC(), rec.CreatedAt(), time.Minute)
	})

	t.Run("rejects invalid inputs", func(t *testing.T) {
		valid := kernel.NewUUID()

		_, err := assignment.NewDeliveryPersonOrder(
			kernel.UUID{}, valid, valid, "ORD-1", 100, "paid", assignment.PaymentMethodOnline)
		require.Error(t, err)

		_, err = assignment.NewDeliveryPersonOrder(
			kernel.NewUUID(), valid, valid, "", 100, "paid", assignment.PaymentMethodOnline)
		require.Error(t, err)

		_, err = assignment.NewDeliveryPersonOrder(
			kernel.NewUUID(), valid, valid, "ORD-1", -5, "paid", assignment.PaymentMethodOnline)
		require.Error(t, err)

		_, err = assignment.NewDeliveryPersonOrder(
			kernel.NewUUID(), valid, valid, "ORD-1", 100, "paid", "cheque")
		require.Error(t, err)
	})
}

func TestRestoreDeliveryPersonOrder(t *testing.T) {
	createdAt := time.Now().UTC().Add(-2 * time.Hour)

	rec, err := assignment.RestoreDeliveryPersonOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"ORD-7", 1500, "paid", assignment.PaymentMethodOnline, createdAt,
	)

	require.NoError(t, err)
	assert.Equal(t, createdAt, rec.CreatedAt())
}

func TestDeliveryPersonOrder_Validate(t *testing.T) {
	var rec assignment.DeliveryPersonOrder
	require.ErrorIs(t, rec.Validate(), assignment.ErrDeliveryPersonOrderIsNotConstructed)

	var nilRec *assignment.DeliveryPersonOrder
	require.ErrorIs(t, nilRec.Validate(), assignment.ErrDeliveryPersonOrderIsNotConstructed)
}
