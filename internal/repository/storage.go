package repository

import (
	"context"
	"errors"
)

// 固定のドキュメントキー
const (
	KeyCart   = "scm_cart"
	KeyOrders = "scm_orders"
)

// ストレージが使えない（接続失敗・容量超過など）
var ErrStorageUnavailable = errors.New("storage unavailable")

// キーごとに文字列ドキュメントを丸ごと保存するKVストアの約束。
// 書き込みは常にドキュメント全体の置き換え（後勝ち）。
type Storage interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key string, value string) error
}

// 他のセッションがキーを書き換えたときの通知。
type ChangeEvent struct {
	Key    string `json:"key"`
	Origin string `json:"origin"`
}

// 変更通知を購読する約束。unsubscribe を呼ぶと解除。
type ChangeNotifier interface {
	Subscribe(fn func(ev ChangeEvent)) (unsubscribe func())
}

type originKey struct{}

// WithOrigin は書き込み元（タブ/セッション）IDを ctx に入れる。
func WithOrigin(ctx context.Context, origin string) context.Context {
	return context.WithValue(ctx, originKey{}, origin)
}

// OriginFrom は ctx の書き込み元IDを返す（無ければ空）。
func OriginFrom(ctx context.Context) string {
	v, _ := ctx.Value(originKey{}).(string)
	return v
}

// スコープ（ユーザー）ごとのリポジトリを作る約束。
type ScopedRepos interface {
	Carts(scope string) CartRepository
	Orders(scope string) OrderRepository
}

// スコープ内の変更通知を返す約束。通知できないストレージなら false。
type ScopedNotifiers interface {
	Notifier(scope string) (ChangeNotifier, bool)
}
