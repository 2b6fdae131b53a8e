package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"scm/internal/repository"

	"github.com/redis/go-redis/v9"
)

// 保存キー: scm:doc:{key}
const keyDocument = "scm:doc:%s"

// 既定の変更通知チャンネル
const DefaultChannel = "scm:storage"

func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 2 * time.Second,
		ReadTimeout: 2 * time.Second,
	})
}

// Redis上のKVストア。書き込みごとに変更イベントを PUBLISH する。
type RedisStorage struct {
	rdb     *redis.Client
	channel string
	log     *slog.Logger

	mu     sync.Mutex
	subs   map[int]func(ev repository.ChangeEvent)
	nextID int
	pubsub *redis.PubSub
	done   chan struct{}
}

func NewRedisStorage(rdb *redis.Client, channel string, log *slog.Logger) *RedisStorage {
	if channel == "" {
		channel = DefaultChannel
	}
	if log == nil {
		log = slog.Default()
	}
	return &RedisStorage{
		rdb:     rdb,
		channel: channel,
		log:     log,
		subs:    map[int]func(ev repository.ChangeEvent){},
	}
}

func (s *RedisStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, fmt.Sprintf(keyDocument, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", repository.ErrStorageUnavailable, err)
	}
	return v, true, nil
}

func (s *RedisStorage) SetItem(ctx context.Context, key string, value string) error {
	ev, err := json.Marshal(repository.ChangeEvent{Key: key, Origin: repository.OriginFrom(ctx)})
	if err != nil {
		return err
	}

	//保存と通知をまとめて送る
	_, err = s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, fmt.Sprintf(keyDocument, key), value, 0)
		p.Publish(ctx, s.channel, ev)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrStorageUnavailable, err)
	}
	return nil
}

// Subscribe は初回呼び出しでチャンネル購読を開始する。
func (s *RedisStorage) Subscribe(fn func(ev repository.ChangeEvent)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	if s.pubsub == nil {
		s.startLocked()
	}
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

func (s *RedisStorage) startLocked() {
	ctx := context.Background()
	ps := s.rdb.Subscribe(ctx, s.channel)
	//購読確定まで待つ
	if _, err := ps.Receive(ctx); err != nil {
		s.log.Warn("redis subscribe failed", "channel", s.channel, "error", err)
	}
	s.pubsub = ps
	s.done = make(chan struct{})

	go s.listen(ps.Channel(), s.done)
}

func (s *RedisStorage) listen(ch <-chan *redis.Message, done chan struct{}) {
	defer close(done)
	for msg := range ch {
		var ev repository.ChangeEvent
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			s.log.Warn("invalid change event", "payload", msg.Payload, "error", err)
			continue
		}

		s.mu.Lock()
		subs := make([]func(ev repository.ChangeEvent), 0, len(s.subs))
		for _, fn := range s.subs {
			subs = append(subs, fn)
		}
		s.mu.Unlock()

		for _, fn := range subs {
			fn(ev)
		}
	}
}

// Close は購読を止める（クライアントは閉じない）。
func (s *RedisStorage) Close() error {
	s.mu.Lock()
	ps, done := s.pubsub, s.done
	s.pubsub, s.done = nil, nil
	s.mu.Unlock()

	if ps == nil {
		return nil
	}
	err := ps.Close()
	<-done
	return err
}

var (
	_ repository.Storage        = (*RedisStorage)(nil)
	_ repository.ChangeNotifier = (*RedisStorage)(nil)
)
