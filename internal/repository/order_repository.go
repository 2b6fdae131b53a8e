package repository

import (
	"context"

	"scm/internal/domain/model"
)

type OrderRepository interface {
	Load(ctx context.Context) []model.Order
	Save(ctx context.Context, orders []model.Order) (saved bool)
}
