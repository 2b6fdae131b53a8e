package repository

import (
	"context"

	"scm/internal/domain/model"
)

// カートドキュメントの読み書き。
// 読み込みは壊れていても空を返す。
// 書き込みのエラーは返さず、保存できたかどうかだけを返す。
type CartRepository interface {
	Load(ctx context.Context) []model.CartItem
	Save(ctx context.Context, items []model.CartItem) (saved bool)
}
