package usecase_test

import (
	"context"
	"strings"
	"testing"

	"scm/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Repository mocks
// =====================

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) Load(ctx context.Context) []model.CartItem {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.CartItem)
	return items
}

func (m *CartRepoMock) Save(ctx context.Context, items []model.CartItem) bool {
	args := m.Called(ctx, items)
	return args.Bool(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Load(ctx context.Context) []model.Order {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]model.Order)
	return orders
}

func (m *OrderRepoMock) Save(ctx context.Context, orders []model.Order) bool {
	args := m.Called(ctx, orders)
	return args.Bool(0)
}

type StorageMock struct{ mock.Mock }

func (m *StorageMock) GetItem(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *StorageMock) SetItem(ctx context.Context, key string, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// =====================
// Helpers
// =====================

var mouse = model.Product{ID: 1, Name: "Mouse", PriceDisplay: "Rp 150.000", Images: []string{"13.jpeg"}}
var keyboard = model.Product{ID: 3, Name: "Keyboard", PriceDisplay: "Rp 750.000"}

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }
