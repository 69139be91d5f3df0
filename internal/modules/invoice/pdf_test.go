package invoice

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisheksonias/agrigo-backend/internal/modules/order"
)

func TestRender(t *testing.T) {
	company := CompanyInfo{
		Name:    "Chandan Agrigo",
		Address: "Deesa, Gujarat",
		Phone:   "+91 98765 43210",
		Email:   "sales@chandanagrigo.in",
	}
	o := &order.Order{
		ID:               uuid.New(),
		CustomerName:     "Ramesh Traders",
		CustomerCity:     "Palanpur",
		DeliveryLocation: "Palanpur",
		Status:           order.StatusFullDispatch,
		Items: []*order.Item{
			{ID: uuid.New(), ProductID: uuid.New(), ProductName: "NPK Fertilizer", Quantity: 10, Unit: "bag", Price: 450},
			{ID: uuid.New(), ProductID: uuid.New(), ProductName: "Neem Powder", Quantity: 5, Unit: "kg", Price: 120},
		},
		CreatedAt: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
	}

	data, err := Render(company, o)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestShortID(t *testing.T) {
	o := &order.Order{ID: uuid.MustParse("3f2a9b1c-0000-4000-8000-000000000000")}
	assert.Equal(t, "ORD-3F2A9B1C", shortID(o))
}
