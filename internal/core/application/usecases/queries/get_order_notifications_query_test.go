package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderNotificationsQuery_Valid(t *testing.T) {
	orderID := kernel.NewUUID()

	query, err := queries.NewGetOrderNotificationsQuery(orderID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, orderID, query.OrderID())
}

func TestNewGetOrderNotificationsQuery_InvalidOrderID(t *testing.T) {
	_, err := queries.NewGetOrderNotificationsQuery(kernel.UUID{})

	require.Error(t, err)
}

func TestGetOrderNotificationsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrderNotificationsQuery{}

	err := query.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrderNotificationsQueryIsNotConstructed)
}
