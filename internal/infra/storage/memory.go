package storage

import (
	"context"
	"sync"

	"scm/internal/repository"
)

// プロセス内のKVストア（開発・テスト用）。
// 同じインスタンスを共有するセッション間で変更通知が届く。
type MemoryStorage struct {
	mu     sync.RWMutex
	items  map[string]string
	subs   map[int]func(ev repository.ChangeEvent)
	nextID int
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		items: map[string]string{},
		subs:  map[int]func(ev repository.ChangeEvent){},
	}
}

func (s *MemoryStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[key]
	return v, ok, nil
}

func (s *MemoryStorage) SetItem(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	s.items[key] = value
	subs := make([]func(ev repository.ChangeEvent), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	//ロック外で通知
	ev := repository.ChangeEvent{Key: key, Origin: repository.OriginFrom(ctx)}
	for _, fn := range subs {
		fn(ev)
	}
	return nil
}

func (s *MemoryStorage) Subscribe(fn func(ev repository.ChangeEvent)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

var (
	_ repository.Storage        = (*MemoryStorage)(nil)
	_ repository.ChangeNotifier = (*MemoryStorage)(nil)
)
