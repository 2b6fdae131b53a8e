// Package localstore はKVストレージ上の型付きドキュメント読み書き。
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"scm/internal/repository"
)

var ErrMalformed = errors.New("malformed document")

// デコード結果。失敗は Err に入り、Items は空。
type DecodeResult[T any] struct {
	Items []T
	Err   error
}

func (r DecodeResult[T]) OK() bool {
	return r.Err == nil
}

// Decode は JSON 配列を厳密にデコードする。
// 空文字は「未保存」として空の成功扱い。
func Decode[T any](raw string) DecodeResult[T] {
	if raw == "" {
		return DecodeResult[T]{Items: []T{}}
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return DecodeResult[T]{Items: []T{}, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}
	//"null" は配列ではない
	if items == nil {
		return DecodeResult[T]{Items: []T{}, Err: fmt.Errorf("%w: not an array", ErrMalformed)}
	}
	return DecodeResult[T]{Items: items}
}

// Accessor は Storage の上で T の配列を読み書きする。
type Accessor[T any] struct {
	storage repository.Storage
	key     string
	log     *slog.Logger
}

func NewAccessor[T any](storage repository.Storage, key string, log *slog.Logger) *Accessor[T] {
	if log == nil {
		log = slog.Default()
	}
	return &Accessor[T]{storage: storage, key: key, log: log}
}

func (a *Accessor[T]) Key() string {
	return a.key
}

// Read はキーが無い・壊れている・読めない場合すべて空を返す。
func (a *Accessor[T]) Read(ctx context.Context) []T {
	raw, ok, err := a.storage.GetItem(ctx, a.key)
	if err != nil {
		a.log.WarnContext(ctx, "storage read failed", "key", a.key, "error", err)
		return []T{}
	}
	if !ok {
		return []T{}
	}

	res := Decode[T](raw)
	if !res.OK() {
		a.log.WarnContext(ctx, "stored document discarded", "key", a.key, "error", res.Err)
	}
	return res.Items
}

// Write はベストエフォート。失敗はログに残して握りつぶし、false を返す。
func (a *Accessor[T]) Write(ctx context.Context, items []T) bool {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		a.log.WarnContext(ctx, "encode document failed", "key", a.key, "error", err)
		return false
	}
	if err := a.storage.SetItem(ctx, a.key, string(b)); err != nil {
		a.log.WarnContext(ctx, "storage write failed", "key", a.key, "error", err)
		return false
	}
	return true
}
