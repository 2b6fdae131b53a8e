package usecase

import (
	"context"
	"sync"

	"scm/internal/domain/model"
	repo "scm/internal/repository"
)

// CartManager はメモリ上のカートとカートドキュメントを同期させる。
// 変更系の操作は毎回ドキュメント全体を保存する。
type CartManager struct {
	mu    sync.Mutex
	repo  repo.CartRepository
	items []model.CartItem
}

func NewCartManager(cartRepo repo.CartRepository) *CartManager {
	return &CartManager{repo: cartRepo, items: []model.CartItem{}}
}

// CartView は /cart のレスポンス。
type CartView struct {
	Items        []model.CartItem `json:"items"`
	Count        int              `json:"count"`
	Subtotal     int64            `json:"subtotal"`
	SubtotalText string           `json:"subtotal_text"`
}

// Reload は保存済みのカートで上書きする（マージしない）。
func (m *CartManager) Reload(ctx context.Context) []model.CartItem {
	items := m.repo.Load(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = items
	return model.CloneItems(m.items)
}

func (m *CartManager) Items() []model.CartItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return model.CloneItems(m.items)
}

func (m *CartManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// AddOrIncrement は同一商品なら数量加算（上限999）、無ければ追加。
func (m *CartManager) AddOrIncrement(ctx context.Context, p model.Product, qty int64) []model.CartItem {
	return m.mutate(ctx, func(items []model.CartItem) []model.CartItem {
		for i := range items {
			if items[i].ID == p.ID {
				items[i].Quantity = model.AddQuantity(items[i].Quantity, qty)
				return items
			}
		}
		return append(items, model.NewCartItem(p, qty))
	})
}

// SetQuantity は1未満を1に丸める（拒否はしない）。
func (m *CartManager) SetQuantity(ctx context.Context, id int64, qty int64) []model.CartItem {
	if qty < 1 {
		qty = 1
	}
	return m.mutate(ctx, func(items []model.CartItem) []model.CartItem {
		for i := range items {
			if items[i].ID == id {
				items[i].Quantity = qty
			}
		}
		return items
	})
}

// 無いIDは何もしない
func (m *CartManager) Remove(ctx context.Context, id int64) []model.CartItem {
	return m.mutate(ctx, func(items []model.CartItem) []model.CartItem {
		next := make([]model.CartItem, 0, len(items))
		for _, it := range items {
			if it.ID != id {
				next = append(next, it)
			}
		}
		return next
	})
}

func (m *CartManager) Clear(ctx context.Context) {
	m.mutate(ctx, func([]model.CartItem) []model.CartItem {
		return []model.CartItem{}
	})
}

// Subtotal は単価×数量の合計（副作用なし）。
func (m *CartManager) Subtotal() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return model.SumItems(m.items)
}

func (m *CartManager) View() CartView {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := model.SumItems(m.items)
	return CartView{
		Items:        model.CloneItems(m.items),
		Count:        len(m.items),
		Subtotal:     total,
		SubtotalText: model.FormatRupiah(total),
	}
}

// Watch は他の origin がカートを書き換えたら Reload する。
func (m *CartManager) Watch(n repo.ChangeNotifier, origin string) (unsubscribe func()) {
	ctx := context.Background()
	return n.Subscribe(func(ev repo.ChangeEvent) {
		if ev.Key != repo.KeyCart || ev.Origin == origin {
			return
		}
		m.Reload(ctx)
	})
}

func (m *CartManager) mutate(ctx context.Context, fn func(items []model.CartItem) []model.CartItem) []model.CartItem {
	m.mu.Lock()
	next := fn(model.CloneItems(m.items))
	m.items = next
	snapshot := model.CloneItems(next)
	m.mu.Unlock()

	m.repo.Save(ctx, snapshot)
	return model.CloneItems(snapshot)
}
