package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"

	httpdelivery "blinds-orders/internal/delivery/http"
	"blinds-orders/internal/models"
)

func fakeOrder(f *gofakeit.Faker, n int) models.Order {
	email := f.Email()
	o := models.Order{
		ID:            f.UUID(),
		OrderNumber:   "DDI-" + f.DigitN(3),
		Status:        models.Status(f.RandomString([]string{"pending", "in-progress", "ready", "completed"})),
		CustomerName:  f.Name(),
		CustomerEmail: &email,
		Width:         f.Float64Range(12, 120),
		Height:        f.Float64Range(12, 120),
		Quantity:      f.IntRange(1, 6),
		CreatedAt:     time.Now().UTC(),
		CreatedBy:     f.Email(),
	}
	if n%2 == 0 {
		base := models.BaseSize(f.RandomString([]string{"35mm", "50mm"}))
		o.OrderType = models.OrderTypeWooden
		o.BaseSize = &base
	} else {
		fabric := f.LetterN(6)
		o.OrderType = models.OrderTypeNormal
		o.FabricCode = &fabric
	}
	return o
}

func Test_GetAllOrders_Many(t *testing.T) {
	f := gofakeit.New(42)
	var orders []models.Order
	for i := 0; i < 20; i++ {
		orders = append(orders, fakeOrder(f, i))
	}

	s := &svcStub{
		list: func(context.Context) []models.Order { return orders },
	}
	r := httpdelivery.NewHandler(s).InitRoutes()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 20)
	require.Equal(t, orders[0].ID, resp.Data[0].ID)
	require.Equal(t, orders[3].CustomerName, resp.Data[3].CustomerName)
}

func Test_GetOrderById_Found(t *testing.T) {
	f := gofakeit.New(7)
	o := fakeOrder(f, 0)

	s := &svcStub{
		get: func(_ context.Context, id string) (models.Order, error) {
			require.Equal(t, o.ID, id)
			return o, nil
		},
	}
	r := httpdelivery.NewHandler(s).InitRoutes()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders/"+o.ID, nil))

	require.Equal(t, http.StatusOK, w.Code)
	var got models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, o.OrderNumber, got.OrderNumber)
	require.Equal(t, *o.BaseSize, *got.BaseSize)
}

func Test_GetOrderById_NotFound(t *testing.T) {
	r := httpdelivery.NewHandler(&svcStub{}).InitRoutes()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders/missing", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func Test_ProductionQueue_Many(t *testing.T) {
	f := gofakeit.New(3)
	var queue []models.Order
	for i := 0; i < 15; i++ {
		o := fakeOrder(f, i)
		o.Status = models.StatusInProgress
		queue = append(queue, o)
	}
	s := &svcStub{queue: func(context.Context) []models.Order { return queue }}
	r := httpdelivery.NewHandler(s).InitRoutes()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/production/orders", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 15)
	for _, o := range resp.Data {
		require.NotEqual(t, models.StatusCompleted, o.Status)
	}
}
