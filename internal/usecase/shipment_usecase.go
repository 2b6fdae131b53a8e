package usecase

import (
	"context"
	"strings"

	"scm/internal/domain/location"
	"scm/internal/domain/model"
	repo "scm/internal/repository"
)

// SearchShipments は購入者名・配送先・注文IDの部分一致。空なら全件。
func SearchShipments(orders []model.Order, q string) []model.Order {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return append([]model.Order{}, orders...)
	}

	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if strings.Contains(strings.ToLower(o.BuyerName), q) ||
			strings.Contains(strings.ToLower(o.Location), q) ||
			strings.Contains(strings.ToLower(o.ID), q) {
			out = append(out, o)
		}
	}
	return out
}

// 注文の座標（保存済み → 配送先から推定）
func CoordinatesFor(o model.Order) (model.Coordinate, bool) {
	if o.Coordinates != nil {
		return *o.Coordinates, true
	}
	return location.Resolve(o.Location)
}

// FocusFor は地図でフォーカスする座標。分からなければ中心。
func FocusFor(o model.Order) model.Coordinate {
	if o.Coordinates != nil {
		return *o.Coordinates
	}
	return location.ResolveOrDefault(o.Location)
}

// 地図のピン
type Marker struct {
	OrderID     string            `json:"order_id"`
	BuyerName   string            `json:"buyer_name"`
	Location    string            `json:"location"`
	Status      model.OrderStatus `json:"status"`
	Coordinates model.Coordinate  `json:"coordinates"`
	Items       []model.CartItem  `json:"items,omitempty"`
}

// BuildMarkers は座標が分かる注文だけピンにする。
func BuildMarkers(orders []model.Order) []Marker {
	out := make([]Marker, 0, len(orders))
	for _, o := range orders {
		c, ok := CoordinatesFor(o)
		if !ok {
			continue
		}
		out = append(out, Marker{
			OrderID:     o.ID,
			BuyerName:   o.BuyerName,
			Location:    o.Location,
			Status:      o.Status,
			Coordinates: c,
			Items:       model.CloneItems(o.Items),
		})
	}
	return out
}

type ShipmentRow struct {
	model.Order
	Focus model.Coordinate `json:"focus"`
}

type ShipmentOutput struct {
	Shipments []ShipmentRow    `json:"shipments"`
	Markers   []Marker         `json:"markers"`
	Center    model.Coordinate `json:"center"`
}

type ShipmentUsecase struct {
	orders repo.OrderRepository
}

func NewShipmentUsecase(orders repo.OrderRepository) *ShipmentUsecase {
	return &ShipmentUsecase{orders: orders}
}

// List の markers は検索に関係なく全注文分。
func (u *ShipmentUsecase) List(ctx context.Context, q string) ShipmentOutput {
	orders := u.orders.Load(ctx)

	found := SearchShipments(orders, q)
	rows := make([]ShipmentRow, 0, len(found))
	for _, o := range found {
		rows = append(rows, ShipmentRow{Order: o, Focus: FocusFor(o)})
	}

	return ShipmentOutput{
		Shipments: rows,
		Markers:   BuildMarkers(orders),
		Center:    location.DefaultCenter,
	}
}
