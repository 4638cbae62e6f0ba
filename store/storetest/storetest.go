// Package storetest is a conformance suite run by every store backend's tests.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/Kariqs/kartdaily-api/models"
	"github.com/Kariqs/kartdaily-api/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run executes the suite. newStore must return an empty, migrated store.
func Run(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("UserCreateAndFind", func(t *testing.T) { testUserCreateAndFind(t, newStore(t)) })
	t.Run("UserDuplicateEmail", func(t *testing.T) { testUserDuplicateEmail(t, newStore(t)) })
	t.Run("UserUpdateDelete", func(t *testing.T) { testUserUpdateDelete(t, newStore(t)) })
	t.Run("ProductFindAndTop", func(t *testing.T) { testProductFindAndTop(t, newStore(t)) })
	t.Run("ProductReviewsRoundTrip", func(t *testing.T) { testProductReviewsRoundTrip(t, newStore(t)) })
	t.Run("OrderLifecycle", func(t *testing.T) { testOrderLifecycle(t, newStore(t)) })
	t.Run("OrderOwnerProjection", func(t *testing.T) { testOrderOwnerProjection(t, newStore(t)) })
	t.Run("OrderDeleteByUser", func(t *testing.T) { testOrderDeleteByUser(t, newStore(t)) })
}

func createUser(t *testing.T, s store.Store, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, Password: "hash"}
	require.NoError(t, s.Users().Create(context.Background(), user))
	require.NotEmpty(t, user.ID)
	return user
}

func sampleOrder(userID string) *models.Order {
	return &models.Order{
		UserID: userID,
		OrderItems: []models.OrderItem{
			{ProductID: "p1", Name: "Airpods", Price: 89.99, Quantity: 2, Image: "/images/airpods.jpg"},
		},
		ShippingAddress: models.ShippingAddress{Address: "1 MG Road", City: "Pune", PostalCode: "411001", Country: "India"},
		PaymentMethod:   "Razorpay",
		ItemsPrice:      179.98,
		TaxPrice:        27,
		ShippingPrice:   0,
		TotalPrice:      206.98,
	}
}

func testUserCreateAndFind(t *testing.T, s store.Store) {
	ctx := context.Background()
	user := createUser(t, s, "Jane", "jane@example.com")

	found, err := s.Users().FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", found.Name)
	assert.Equal(t, "hash", found.Password)

	byEmail, err := s.Users().FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = s.Users().FindByID(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Users().FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testUserDuplicateEmail(t *testing.T, s store.Store) {
	createUser(t, s, "Jane", "jane@example.com")

	err := s.Users().Create(context.Background(), &models.User{Name: "Other", Email: "jane@example.com"})
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func testUserUpdateDelete(t *testing.T, s store.Store) {
	ctx := context.Background()
	user := createUser(t, s, "Jane", "jane@example.com")
	createUser(t, s, "John", "john@example.com")

	user.Name = "Jane Doe"
	user.IsAdmin = true
	require.NoError(t, s.Users().Update(ctx, user))

	found, err := s.Users().FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", found.Name)
	assert.True(t, found.IsAdmin)

	all, err := s.Users().FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, s.Users().Delete(ctx, user.ID))
	_, err = s.Users().FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.Users().Delete(ctx, user.ID), store.ErrNotFound)
}

func testProductFindAndTop(t *testing.T, s store.Store) {
	ctx := context.Background()
	for _, p := range []models.Product{
		{Name: "Airpods Wireless", Rating: 4.5},
		{Name: "iPhone 11 Pro", Rating: 4.0},
		{Name: "Cannon EOS 80D", Rating: 3.0},
		{Name: "Sony Playstation 4", Rating: 5.0},
	} {
		product := p
		require.NoError(t, s.Products().Create(ctx, &product))
		require.NotEmpty(t, product.ID)
	}

	page, total, err := s.Products().Find(ctx, "", 3, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, page, 3)

	page, total, err = s.Products().Find(ctx, "", 3, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, page, 1)

	matched, total, err := s.Products().Find(ctx, "PHONE", 3, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, matched, 1)
	assert.Equal(t, "iPhone 11 Pro", matched[0].Name)

	top, err := s.Products().Top(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "Sony Playstation 4", top[0].Name)
	assert.Equal(t, "Airpods Wireless", top[1].Name)
	assert.Equal(t, "iPhone 11 Pro", top[2].Name)
}

func testProductReviewsRoundTrip(t *testing.T, s store.Store) {
	ctx := context.Background()
	product := &models.Product{Name: "Logitech G-Series", Price: 49.99}
	require.NoError(t, s.Products().Create(ctx, product))

	product.Reviews = append(product.Reviews, models.Review{Name: "Jane", Rating: 4, Comment: "good", UserID: "u1", CreatedAt: time.Now()})
	product.NumReviews = 1
	product.Rating = 4
	require.NoError(t, s.Products().Update(ctx, product))

	found, err := s.Products().FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, found.Reviews, 1)
	assert.Equal(t, "u1", found.Reviews[0].UserID)
	assert.Equal(t, 4.0, found.Rating)

	require.NoError(t, s.Products().Delete(ctx, product.ID))
	_, err = s.Products().FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testOrderLifecycle(t *testing.T, s store.Store) {
	ctx := context.Background()
	user := createUser(t, s, "Jane", "jane@example.com")

	order := sampleOrder(user.ID)
	require.NoError(t, s.Orders().Create(ctx, order))
	require.NotEmpty(t, order.ID)

	found, err := s.Orders().FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCreated, found.Status())
	assert.Equal(t, 206.98, found.TotalPrice)
	require.Len(t, found.OrderItems, 1)
	assert.Equal(t, 2, found.OrderItems[0].Quantity)
	assert.Equal(t, "Pune", found.ShippingAddress.City)
	assert.Nil(t, found.PaymentResult)

	paidAt := time.Now().UTC().Truncate(time.Second)
	found.IsPaid = true
	found.PaidAt = &paidAt
	found.PaymentResult = &models.PaymentResult{PaymentID: "pay_1", OrderID: "order_1", Signature: "sig"}
	require.NoError(t, s.Orders().Update(ctx, found))

	paid, err := s.Orders().FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	require.NotNil(t, paid.PaidAt)
	assert.WithinDuration(t, paidAt, *paid.PaidAt, time.Second)
	require.NotNil(t, paid.PaymentResult)
	assert.Equal(t, "pay_1", paid.PaymentResult.PaymentID)
	assert.Equal(t, models.OrderPaid, paid.Status())

	_, err = s.Orders().FindByID(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.Orders().Update(ctx, &models.Order{ID: "missing"}), store.ErrNotFound)
}

func testOrderOwnerProjection(t *testing.T, s store.Store) {
	ctx := context.Background()
	jane := createUser(t, s, "Jane", "jane@example.com")
	john := createUser(t, s, "John", "john@example.com")
	require.NoError(t, s.Orders().Create(ctx, sampleOrder(jane.ID)))
	require.NoError(t, s.Orders().Create(ctx, sampleOrder(john.ID)))

	all, err := s.Orders().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, order := range all {
		require.NotNil(t, order.Owner)
		assert.Equal(t, order.UserID, order.Owner.ID)
		assert.NotEmpty(t, order.Owner.Name)
		assert.Empty(t, order.Owner.Email)
	}

	one, err := s.Orders().FindByID(ctx, all[0].ID)
	require.NoError(t, err)
	require.NotNil(t, one.Owner)
	assert.NotEmpty(t, one.Owner.Email)

	mine, err := s.Orders().FindByUser(ctx, jane.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, jane.ID, mine[0].UserID)
}

func testOrderDeleteByUser(t *testing.T, s store.Store) {
	ctx := context.Background()
	jane := createUser(t, s, "Jane", "jane@example.com")
	john := createUser(t, s, "John", "john@example.com")
	require.NoError(t, s.Orders().Create(ctx, sampleOrder(jane.ID)))
	require.NoError(t, s.Orders().Create(ctx, sampleOrder(jane.ID)))
	require.NoError(t, s.Orders().Create(ctx, sampleOrder(john.ID)))

	deleted, err := s.Orders().DeleteByUser(ctx, jane.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	mine, err := s.Orders().FindByUser(ctx, jane.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)

	others, err := s.Orders().FindByUser(ctx, john.ID)
	require.NoError(t, err)
	assert.Len(t, others, 1)
}
