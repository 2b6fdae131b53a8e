package localstore

import (
	"log/slog"

	"scm/internal/infra/storage"
	"scm/internal/repository"
)

// Factory はスコープ付きの Cart/Order ストアを作る。
type Factory struct {
	storage  repository.Storage
	notifier repository.ChangeNotifier // nil なら変更通知なし
	log      *slog.Logger
}

// s が ChangeNotifier も実装していれば通知も使う
func NewFactory(s repository.Storage, log *slog.Logger) *Factory {
	n, _ := s.(repository.ChangeNotifier)
	return &Factory{storage: s, notifier: n, log: log}
}

func (f *Factory) Carts(scope string) repository.CartRepository {
	return NewCartStore(storage.NewScoped(f.storage, scope), f.log)
}

func (f *Factory) Orders(scope string) repository.OrderRepository {
	return NewOrderStore(storage.NewScoped(f.storage, scope), f.log)
}

func (f *Factory) Notifier(scope string) (repository.ChangeNotifier, bool) {
	if f.notifier == nil {
		return nil, false
	}
	return storage.ScopeNotifier(f.notifier, scope), true
}

var (
	_ repository.ScopedRepos     = (*Factory)(nil)
	_ repository.ScopedNotifiers = (*Factory)(nil)
)
