package localstore

import (
	"context"
	"log/slog"

	"scm/internal/domain/model"
	"scm/internal/repository"
)

type CartStore struct {
	acc *Accessor[model.CartItem]
}

// DI
func NewCartStore(storage repository.Storage, log *slog.Logger) *CartStore {
	return &CartStore{acc: NewAccessor[model.CartItem](storage, repository.KeyCart, log)}
}

func (s *CartStore) Load(ctx context.Context) []model.CartItem {
	return s.acc.Read(ctx)
}

func (s *CartStore) Save(ctx context.Context, items []model.CartItem) bool {
	return s.acc.Write(ctx, items)
}

type OrderStore struct {
	acc *Accessor[model.Order]
}

func NewOrderStore(storage repository.Storage, log *slog.Logger) *OrderStore {
	return &OrderStore{acc: NewAccessor[model.Order](storage, repository.KeyOrders, log)}
}

func (s *OrderStore) Load(ctx context.Context) []model.Order {
	return s.acc.Read(ctx)
}

func (s *OrderStore) Save(ctx context.Context, orders []model.Order) bool {
	return s.acc.Write(ctx, orders)
}

var (
	_ repository.CartRepository  = (*CartStore)(nil)
	_ repository.OrderRepository = (*OrderStore)(nil)
)
