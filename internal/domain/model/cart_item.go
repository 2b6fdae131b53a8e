package model

// カートの明細
// 追加時点の価格（表示用テキストと整数額）を必ず保存。
type CartItem struct {
	ID               int64  `json:"id"`
	Name             string `json:"nama"`
	UnitPriceDisplay string `json:"hargaText"`
	UnitPriceAmount  int64  `json:"hargaInt"`
	Quantity         int64  `json:"qty"`
	ImageRef         string `json:"gambar,omitempty"`
}

// 数量の上限
const MaxItemQuantity int64 = 999

// ClampQuantity は数量を 1..MaxItemQuantity に収める。
func ClampQuantity(qty int64) int64 {
	if qty < 1 {
		return 1
	}
	if qty > MaxItemQuantity {
		return MaxItemQuantity
	}
	return qty
}

// AddQuantity は cur に inc を足して 1..MaxItemQuantity に収める（桁あふれしない）。
func AddQuantity(cur, inc int64) int64 {
	if inc > MaxItemQuantity {
		inc = MaxItemQuantity
	}
	return ClampQuantity(ClampQuantity(cur) + inc)
}

// 小計（単価×数量）
func (it CartItem) LineTotal() int64 {
	return it.UnitPriceAmount * it.Quantity
}

// SumItems は明細の合計額。
func SumItems(items []CartItem) int64 {
	var total int64 = 0
	for _, it := range items {
		total += it.LineTotal()
	}
	return total
}

// CloneItems は明細のディープコピー（注文スナップショット用）。
func CloneItems(items []CartItem) []CartItem {
	out := make([]CartItem, len(items))
	copy(out, items)
	return out
}
