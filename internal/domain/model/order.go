package model

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipped   OrderStatus = "Dikirim"
	OrderStatusReceived  OrderStatus = "Diterima"
	OrderStatusCancelled OrderStatus = "Dibatalkan"
)

// 有効なステータスか
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusReceived, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderStatuses は表示順のステータス一覧。
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusShipped,
	OrderStatusReceived,
	OrderStatusCancelled,
}

type PaymentMethod string

const (
	PaymentCOD     PaymentMethod = "COD"
	PaymentEWallet PaymentMethod = "E-Wallet"
	PaymentQRIS    PaymentMethod = "QRIS"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCOD, PaymentEWallet, PaymentQRIS:
		return true
	}
	return false
}

// 注文日の形式（yyyy-mm-dd）
const DateLayout = "2006-01-02"

// チェックアウトで一度だけ作られる注文。
// Items はカートのスナップショットで、以後カート操作の影響を受けない。
type Order struct {
	ID                  string        `json:"id"`
	BuyerName           string        `json:"namaPembeli"`
	Date                string        `json:"tanggal"`
	TotalDisplay        string        `json:"totalText"`
	TotalAmount         int64         `json:"totalInt"`
	Contact             string        `json:"kontak"`
	Location            string        `json:"lokasi"`
	Status              OrderStatus   `json:"status"`
	PaymentMethod       PaymentMethod `json:"metodePembayaran,omitempty"`
	ManualPaymentAmount *int64        `json:"nominalPembayaran,omitempty"`
	Items               []CartItem    `json:"items"`
	Coordinates         *Coordinate   `json:"koordinat,omitempty"`
}
