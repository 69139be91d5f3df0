package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisheksonias/agrigo-backend/internal/modules/product"
)

func setup(t *testing.T) (Service, *mockRepository) {
	t.Helper()
	repo := newMockRepository()
	return NewService(repo), repo
}

// newProduct registers a product with the given stock in the mock store.
func newProduct(repo *mockRepository, stock int) uuid.UUID {
	id := uuid.New()
	repo.stocks[id] = stock
	return id
}

func createOrder(t *testing.T, svc Service, lines ...ItemInput) *Order {
	t.Helper()
	o, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerName:     "Ramesh Traders",
		CustomerCity:     "Deesa",
		DeliveryLocation: "Palanpur",
		Items:            lines,
	})
	require.NoError(t, err)
	return o
}

func TestCreateOrder(t *testing.T) {
	svc, repo := setup(t)
	pid := newProduct(repo, 50)

	t.Run("Success", func(t *testing.T) {
		o := createOrder(t, svc, ItemInput{
			ProductID: pid.String(), ProductName: "NPK Fertilizer", Quantity: 5, Unit: "bag", Price: 450,
		})
		assert.Equal(t, StatusUnconfirmed, o.Status)
		require.Len(t, o.Items, 1)
		assert.Equal(t, 0, o.Items[0].DispatchedQuantity)
		assert.Equal(t, float64(2250), o.Total())
	})

	t.Run("Fail on empty items", func(t *testing.T) {
		_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{CustomerName: "X"})
		assert.Error(t, err)
	})

	t.Run("Fail on zero quantity", func(t *testing.T) {
		_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
			CustomerName: "X",
			Items:        []ItemInput{{ProductID: pid.String(), Quantity: 0}},
		})
		assert.Error(t, err)
	})

	t.Run("Fail on missing customer name", func(t *testing.T) {
		_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
			Items: []ItemInput{{ProductID: pid.String(), Quantity: 1}},
		})
		assert.Error(t, err)
	})
}

func TestConfirm(t *testing.T) {
	t.Run("Debits stock and confirms", func(t *testing.T) {
		svc, repo := setup(t)
		pid := newProduct(repo, 10)
		o := createOrder(t, svc, ItemInput{ProductID: pid.String(), ProductName: "Urea", Quantity: 10, Price: 300})

		confirmed, err := svc.Confirm(context.Background(), o.ID.String())
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, confirmed.Status)
		assert.Equal(t, 0, repo.stocks[pid])

		require.Len(t, repo.ledger, 1)
		assert.Equal(t, product.ChangeOrderConfirmation, repo.ledger[0].ChangeType)
		assert.Equal(t, -10, repo.ledger[0].Change)
		assert.Equal(t, o.ID, repo.ledger[0].OrderID)
	})

	t.Run("Insufficient stock rejects whole operation", func(t *testing.T) {
		// Scenario A: stock drained to zero, a second order must fail
		// and leave stock untouched.
		svc, repo := setup(t)
		pid := newProduct(repo, 10)
		first := createOrder(t, svc, ItemInput{ProductID: pid.String(), ProductName: "Urea", Quantity: 10, Price: 300})
		_, err := svc.Confirm(context.Background(), first.ID.String())
		require.NoError(t, err)
		require.Equal(t, 0, repo.stocks[pid])

		second := createOrder(t, svc, ItemInput{ProductID: pid.String(), ProductName: "Urea", Quantity: 1, Price: 300})
		_, err = svc.Confirm(context.Background(), second.ID.String())
		require.Error(t, err)

		var stockErr *InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		require.Len(t, stockErr.Lines, 1)
		assert.Equal(t, "Urea", stockErr.Lines[0].ProductName)
		assert.Equal(t, 1, stockErr.Lines[0].Requested)
		assert.Equal(t, 0, stockErr.Lines[0].Available)

		assert.Equal(t, 0, repo.stocks[pid])
		assert.Equal(t, StatusUnconfirmed, repo.orders[second.ID].Status)
	})

	t.Run("Names every failing product", func(t *testing.T) {
		svc, repo := setup(t)
		p1 := newProduct(repo, 2)
		p2 := newProduct(repo, 100)
		p3 := newProduct(repo, 0)
		o := createOrder(t, svc,
			ItemInput{ProductID: p1.String(), ProductName: "Bio Granules", Quantity: 5, Price: 100},
			ItemInput{ProductID: p2.String(), ProductName: "Seed Mix", Quantity: 10, Price: 50},
			ItemInput{ProductID: p3.String(), ProductName: "Neem Powder", Quantity: 1, Price: 80},
		)

		_, err := svc.Confirm(context.Background(), o.ID.String())
		var stockErr *InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		require.Len(t, stockErr.Lines, 2)
		assert.Contains(t, err.Error(), "Bio Granules")
		assert.Contains(t, err.Error(), "Neem Powder")
		assert.NotContains(t, err.Error(), "Seed Mix")

		// No partial effect.
		assert.Equal(t, 2, repo.stocks[p1])
		assert.Equal(t, 100, repo.stocks[p2])
		assert.Empty(t, repo.ledger)
	})

	t.Run("Fail on already confirmed", func(t *testing.T) {
		svc, repo := setup(t)
		pid := newProduct(repo, 10)
		o := createOrder(t, svc, ItemInput{ProductID: pid.String(), ProductName: "Urea", Quantity: 1, Price: 300})
		_, err := svc.Confirm(context.Background(), o.ID.String())
		require.NoError(t, err)

		_, err = svc.Confirm(context.Background(), o.ID.String())
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestPartialDispatch(t *testing.T) {
	svc, repo := setup(t)
	pid := newProduct(repo, 10)
	o := createOrder(t, svc, ItemInput{ProductID: pid.String(), ProductName: "Urea", Quantity: 10, Price: 300})
	_, err := svc.Confirm(context.Background(), o.ID.String())
	require.NoError(t, err)

	t.Run("Scenario B", func(t *testing.T) {
		got, err := svc.Dispatch(context.Background(), o.ID.String(), DispatchRequest{
			Transport: "Gujarat Freight",
			Lines:     []DispatchLine{{ProductID: pid.String(), Quantity: 4}},
		})
		require.NoError(t, err)
		assert.Equal(t, StatusPartialDispatch, got.Status)
		assert.Equal(t, 4, got.Items[0].DispatchedQuantity)
		require.Len(t, got.DispatchEvents, 1)
		assert.Equal(t, 4, got.DispatchEvents[0].Quantity)
		assert.Equal(t, []string{"Gujarat Freight"}, got.DeliveredBy)
		// Dispatch never touches stock.
		assert.Equal(t, 0, repo.stocks[pid])
	})

	t.Run("Overlapping dispatches accumulate", func(t *testing.T) {
		got, err := svc.Dispatch(context.Background(), o.ID.String(), DispatchRequest{
			Transport: "Gujarat Freight",
			Lines:     []DispatchLine{{ProductID: pid.String(), Quantity: 3}},
		})
		require.NoError(t, err)
		assert.Equal(t, 7, got.Items[0].DispatchedQuantity)
		assert.Len(t, got.DispatchEvents, 2)
		assert.Equal(t, []string{"Gujarat Freight"}, got.DeliveredBy)
	})

	t.Run("Over-dispatch names product and maximum", func(t *testing.T) {
		_, err := svc.Dispatch(context.Background(), o.ID.String(), DispatchRequest{
			Lines: []DispatchLine{{ProductID: pid.String(), Quantity: 4}},
		})
		var overErr *OverDispatchError
		require.ErrorAs(t, err, &overErr)
		assert.Equal(t, "Urea", overErr.ProductName)
		assert.Equal(t, 4, overErr.Requested)
		assert.Equal(t, 3, overErr.Max)
		// Rejected line has no effect.
		assert.Equal(t, 7, repo.orders[o.ID].Items[0].DispatchedQuantity)
	})

	t.Run("Zero quantity lines are dropped silently", func(t *testing.T) {
		before := repo.orders[o.ID].Items[0].DispatchedQuantity
		events := len(repo.orders[o.ID].DispatchEvents)
		got, err := svc.Dispatch(context.Background(), o.ID.String(), DispatchRequest{
			Lines: []DispatchLine{{ProductID: pid.String(), Quantity: 0}},
		})
		require.NoError(t, err)
		assert.Equal(t, before, got.Items[0].DispatchedQuantity)
		assert.Len(t, got.DispatchEvents, events)
		assert.Equal(t, 0, repo.stocks[pid])
	})

	t.Run("Unknown product line rejected", func(t *testing.T) {
		_, err := svc.Dispatch(context.Background(), o.ID.String(), DispatchRequest{
			Lines: []DispatchLine{{ProductID: uuid.New().String(), Quantity: 1}},
		})
		assert.Error(t, err)
	})

	t.Run("Fail on unconfirmed order", func(t *testing.T) {
		fresh := createOrder(t, svc, ItemInput{ProductID: pid.String(), ProductName: "Urea", Quantity: 1, Price: 300})
		_, err := svc.Dispatch(context.Background(), fresh.ID.String(), DispatchRequest{
			Lines: []DispatchLine{{ProductID: pid.String(), Quantity: 1}},
		})
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestFullDispatch(t *testing.T) {
	// Scenario C: partial dispatch of 4, then full dispatch completes
	// everything outstanding.
	svc, repo := setup(t)
	pid := newProduct(repo, 10)
	o := createOrder(t, svc, ItemInput{ProductID: pid.String(), ProductName: "Urea", Quantity: 10, Price: 300})
	_, err := svc.Confirm(context.Background(), o.ID.String())
	require.NoError(t, err)
	_, err = svc.Dispatch(context.Background(), o.ID.String(), DispatchRequest{
		Transport: "Gujarat Freight",
		Lines:     []DispatchLine{{ProductID: pid.String(), Quantity: 4}},
	})
	require.NoError(t, err)

	got, err := svc.DispatchAll(context.Background(), o.ID.String(), FullDispatchRequest{Transport: "Sharma Logistics"})
	require.NoError(t, err)
	assert.Equal(t, StatusFullDispatch, got.Status)
	assert.Equal(t, 10, got.Items[0].DispatchedQuantity)
	require.Len(t, got.DispatchEvents, 2)
	assert.Equal(t, 6, got.DispatchEvents[1].Quantity)
	assert.ElementsMatch(t, []string{"Gujarat Freight", "Sharma Logistics"}, got.DeliveredBy)
	assert.Equal(t, 0, repo.stocks[pid])
}

func TestReverseDispatch(t *testing.T) {
	t.Run("Scenario D restores stock and resets progress", func(t *testing.T) {
		svc, repo := setup(t)
		pid := newProduct(repo, 10)
		o := createOrder(t, svc, ItemInput{ProductID: pid.String(), ProductName: "Urea", Quantity: 10, Price: 300})
		_, err := svc.Confirm(context.Background(), o.ID.String())
		require.NoError(t, err)
		_, err = svc.DispatchAll(context.Background(), o.ID.String(), FullDispatchRequest{})
		require.NoError(t, err)
		require.Equal(t, 0, repo.stocks[pid])

		got, err := svc.ReverseDispatch(context.Background(), o.ID.String())
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, got.Status)
		assert.Equal(t, 0, got.Items[0].DispatchedQuantity)
		assert.Empty(t, got.DispatchEvents)
		assert.Equal(t, 10, repo.stocks[pid])

		// Reversal always writes a ledger entry.
		last := repo.ledger[len(repo.ledger)-1]
		assert.Equal(t, product.ChangeDispatchReversal, last.ChangeType)
		assert.Equal(t, 0, last.PreviousStock)
		assert.Equal(t, 10, last.Change)
		assert.Equal(t, o.ID, last.OrderID)
	})

	t.Run("Partial dispatch reversal credits only dispatched amount", func(t *testing.T) {
		svc, repo := setup(t)
		pid := newProduct(repo, 10)
		o := createOrder(t, svc, ItemInput{ProductID: pid.String(), ProductName: "Urea", Quantity: 10, Price: 300})
		_, err := svc.Confirm(context.Background(), o.ID.String())
		require.NoError(t, err)
		_, err = svc.Dispatch(context.Background(), o.ID.String(), DispatchRequest{
			Lines: []DispatchLine{{ProductID: pid.String(), Quantity: 4}},
		})
		require.NoError(t, err)

		got, err := svc.ReverseDispatch(context.Background(), o.ID.String())
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, got.Status)
		assert.Equal(t, 4, repo.stocks[pid])
		assert.Equal(t, 0, got.Items[0].DispatchedQuantity)
	})

	t.Run("Scenario E invalid state leaves everything unchanged", func(t *testing.T) {
		svc, repo := setup(t)
		pid := newProduct(repo, 10)
		o := createOrder(t, svc, ItemInput{ProductID: pid.String(), ProductName: "Urea", Quantity: 10, Price: 300})

		_, err := svc.ReverseDispatch(context.Background(), o.ID.String())
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Equal(t, StatusUnconfirmed, repo.orders[o.ID].Status)
		assert.Equal(t, 10, repo.stocks[pid])
		assert.Empty(t, repo.ledger)
	})
}

func TestRoundTrip(t *testing.T) {
	// Confirm, full dispatch, then reverse must restore every product's
	// stock to its pre-confirm value and zero all dispatched quantities.
	svc, repo := setup(t)
	p1 := newProduct(repo, 25)
	p2 := newProduct(repo, 8)
	o := createOrder(t, svc,
		ItemInput{ProductID: p1.String(), ProductName: "NPK Fertilizer", Quantity: 20, Price: 450},
		ItemInput{ProductID: p2.String(), ProductName: "Seed Mix", Quantity: 8, Price: 120},
	)

	_, err := svc.Confirm(context.Background(), o.ID.String())
	require.NoError(t, err)
	require.Equal(t, 5, repo.stocks[p1])
	require.Equal(t, 0, repo.stocks[p2])

	_, err = svc.DispatchAll(context.Background(), o.ID.String(), FullDispatchRequest{})
	require.NoError(t, err)

	got, err := svc.ReverseDispatch(context.Background(), o.ID.String())
	require.NoError(t, err)

	assert.Equal(t, 25, repo.stocks[p1])
	assert.Equal(t, 8, repo.stocks[p2])
	for _, item := range got.Items {
		assert.Equal(t, 0, item.DispatchedQuantity)
	}

	// Stock never went negative at any ledger point.
	for _, entry := range repo.ledger {
		assert.GreaterOrEqual(t, entry.NewStock, 0)
	}
}

func TestDeliverAndCancel(t *testing.T) {
	svc, repo := setup(t)
	pid := newProduct(repo, 10)

	t.Run("Deliver requires full dispatch", func(t *testing.T) {
		o := createOrder(t, svc, ItemInput{ProductID: pid.String(), ProductName: "Urea", Quantity: 2, Price: 300})
		_, err := svc.Deliver(context.Background(), o.ID.String())
		assert.ErrorIs(t, err, ErrInvalidState)

		_, err = svc.Confirm(context.Background(), o.ID.String())
		require.NoError(t, err)
		_, err = svc.DispatchAll(context.Background(), o.ID.String(), FullDispatchRequest{})
		require.NoError(t, err)

		got, err := svc.Deliver(context.Background(), o.ID.String())
		require.NoError(t, err)
		assert.Equal(t, StatusDelivered, got.Status)
	})

	t.Run("Cancel allowed pre-dispatch only", func(t *testing.T) {
		o := createOrder(t, svc, ItemInput{ProductID: pid.String(), ProductName: "Urea", Quantity: 2, Price: 300})
		got, err := svc.Cancel(context.Background(), o.ID.String())
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, got.Status)

		o2 := createOrder(t, svc, ItemInput{ProductID: pid.String(), ProductName: "Urea", Quantity: 2, Price: 300})
		_, err = svc.Confirm(context.Background(), o2.ID.String())
		require.NoError(t, err)
		_, err = svc.Dispatch(context.Background(), o2.ID.String(), DispatchRequest{
			Lines: []DispatchLine{{ProductID: pid.String(), Quantity: 1}},
		})
		require.NoError(t, err)
		_, err = svc.Cancel(context.Background(), o2.ID.String())
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Equal(t, StatusPartialDispatch, repo.orders[o2.ID].Status)
	})
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusUnconfirmed, StatusConfirmed, true},
		{StatusUnconfirmed, StatusFullDispatch, false},
		{StatusConfirmed, StatusPartialDispatch, true},
		{StatusConfirmed, StatusFullDispatch, true},
		{StatusPartialDispatch, StatusPartialDispatch, true},
		{StatusPartialDispatch, StatusConfirmed, true},
		{StatusFullDispatch, StatusConfirmed, true},
		{StatusFullDispatch, StatusDelivered, true},
		{StatusDelivered, StatusConfirmed, false},
		{StatusCancelled, StatusConfirmed, false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}
