package usecase_test

import (
	"context"
	"testing"

	"scm/internal/domain/location"
	"scm/internal/domain/model"
	"scm/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSearchShipments(t *testing.T) {
	orders := sampleOrders()

	assert.Len(t, usecase.SearchShipments(orders, "  "), 4)
	assert.Equal(t, []string{"ORD-3"}, ids(usecase.SearchShipments(orders, "agus")))
	assert.Equal(t, []string{"ORD-2"}, ids(usecase.SearchShipments(orders, "BANDUNG")))
	// 注文IDでも探せる
	assert.Equal(t, []string{"ORD-4"}, ids(usecase.SearchShipments(orders, "ord-4")))
}

func TestBuildMarkers(t *testing.T) {
	fixed := model.Coordinate{Lat: 1, Lng: 2}
	orders := []model.Order{
		{ID: "ORD-1", Location: "Jakarta Selatan"},
		{ID: "ORD-2", Location: "Atlantis"},
		{ID: "ORD-3", Location: "Atlantis", Coordinates: &fixed},
	}

	markers := usecase.BuildMarkers(orders)
	if assert.Len(t, markers, 2) {
		assert.Equal(t, "ORD-1", markers[0].OrderID)
		assert.Equal(t, -6.208763, markers[0].Coordinates.Lat)
		assert.Equal(t, "ORD-3", markers[1].OrderID)
		assert.Equal(t, fixed, markers[1].Coordinates)
	}
}

func TestFocusFor(t *testing.T) {
	assert.Equal(t, location.DefaultCenter, usecase.FocusFor(model.Order{Location: "Atlantis"}))
	assert.Equal(t, -8.409518, usecase.FocusFor(model.Order{Location: "Denpasar, Bali"}).Lat)
}

func TestShipmentUsecase_List(t *testing.T) {
	orderRepo := new(OrderRepoMock)
	orderRepo.On("Load", mock.Anything).Return(sampleOrders())

	out := usecase.NewShipmentUsecase(orderRepo).List(context.Background(), "sari")

	if assert.Len(t, out.Shipments, 1) {
		assert.Equal(t, "ORD-2", out.Shipments[0].ID)
		assert.Equal(t, -6.914744, out.Shipments[0].Focus.Lat)
	}
	// ピンは検索に関係なく全件
	assert.Len(t, out.Markers, 4)
	assert.Equal(t, location.DefaultCenter, out.Center)
}
