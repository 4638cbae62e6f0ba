package memstore

import (
	"context"
	"testing"

	"github.com/Kariqs/kartdaily-api/models"
	"github.com/Kariqs/kartdaily-api/store"
	"github.com/Kariqs/kartdaily-api/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return New() })
}

func TestFindByID_ReturnsCopy(t *testing.T) {
	db := New()
	ctx := context.Background()
	order := &models.Order{UserID: "u1", OrderItems: []models.OrderItem{{Name: "a", Quantity: 1}}}
	require.NoError(t, db.Orders().Create(ctx, order))

	found, err := db.Orders().FindByID(ctx, order.ID)
	require.NoError(t, err)
	found.OrderItems[0].Name = "changed"
	found.IsPaid = true

	again, err := db.Orders().FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", again.OrderItems[0].Name)
	assert.False(t, again.IsPaid)
}
