package storage

import (
	"context"
	"strings"

	"scm/internal/repository"
)

// ユーザーごとにキー空間を分ける（"<scope>:<key>"）。
type ScopedStorage struct {
	inner  repository.Storage
	prefix string
}

// scope が空なら素通し
func NewScoped(inner repository.Storage, scope string) *ScopedStorage {
	prefix := ""
	if scope != "" {
		prefix = scope + ":"
	}
	return &ScopedStorage{inner: inner, prefix: prefix}
}

func (s *ScopedStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	return s.inner.GetItem(ctx, s.prefix+key)
}

func (s *ScopedStorage) SetItem(ctx context.Context, key string, value string) error {
	return s.inner.SetItem(ctx, s.prefix+key, value)
}

type scopedNotifier struct {
	inner  repository.ChangeNotifier
	prefix string
}

// ScopeNotifier は scope 内の変更だけを、prefix を外したキーで通知する。
func ScopeNotifier(inner repository.ChangeNotifier, scope string) repository.ChangeNotifier {
	prefix := ""
	if scope != "" {
		prefix = scope + ":"
	}
	return &scopedNotifier{inner: inner, prefix: prefix}
}

func (n *scopedNotifier) Subscribe(fn func(ev repository.ChangeEvent)) func() {
	return n.inner.Subscribe(func(ev repository.ChangeEvent) {
		if n.prefix == "" {
			fn(ev)
			return
		}
		if !strings.HasPrefix(ev.Key, n.prefix) {
			return
		}
		ev.Key = strings.TrimPrefix(ev.Key, n.prefix)
		fn(ev)
	})
}
