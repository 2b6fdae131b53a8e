package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"scm/internal/domain/model"
	repo "scm/internal/repository"
)

// 全ステータス
const StatusAll = "All"

// 注文一覧の絞り込み条件
type ReportFilter struct {
	Text   string // 購入者名 or 配送先（部分一致・大文字小文字無視）
	From   string // yyyy-mm-dd（含む）
	To     string // yyyy-mm-dd（含む）
	Status string // "All" or 空で全件
}

// FilterOrders は条件に合う注文を日付の新しい順で返す。
func FilterOrders(orders []model.Order, f ReportFilter) []model.Order {
	text := strings.ToLower(strings.TrimSpace(f.Text))
	status := strings.TrimSpace(f.Status)

	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if text != "" &&
			!strings.Contains(strings.ToLower(o.BuyerName), text) &&
			!strings.Contains(strings.ToLower(o.Location), text) {
			continue
		}
		if status != "" && status != StatusAll && string(o.Status) != status {
			continue
		}
		//yyyy-mm-dd は文字列比較で日付順になる
		if f.From != "" && o.Date < f.From {
			continue
		}
		if f.To != "" && o.Date > f.To {
			continue
		}
		out = append(out, o)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

type Aggregate struct {
	Count       int    `json:"count"`
	TotalAmount int64  `json:"total_amount"`
	TotalText   string `json:"total_text"`
}

func AggregateOrders(orders []model.Order) Aggregate {
	var total int64 = 0
	for _, o := range orders {
		total += o.TotalAmount
	}
	return Aggregate{
		Count:       len(orders),
		TotalAmount: total,
		TotalText:   model.FormatRupiah(total),
	}
}

type StatusCount struct {
	Status model.OrderStatus `json:"status"`
	Count  int               `json:"count"`
}

// CountByStatus は既知ステータスを固定順で、未知のものは末尾に出す。
func CountByStatus(orders []model.Order) []StatusCount {
	counts := map[model.OrderStatus]int{}
	var unknown []model.OrderStatus
	for _, o := range orders {
		if _, seen := counts[o.Status]; !seen && !o.Status.Valid() {
			unknown = append(unknown, o.Status)
		}
		counts[o.Status]++
	}

	out := make([]StatusCount, 0, len(model.OrderStatuses)+len(unknown))
	for _, s := range model.OrderStatuses {
		out = append(out, StatusCount{Status: s, Count: counts[s]})
	}
	for _, s := range unknown {
		out = append(out, StatusCount{Status: s, Count: counts[s]})
	}
	return out
}

// 編集できる項目（nil は変更しない）
type OrderPatch struct {
	BuyerName *string
	Contact   *string
	Location  *string
	Date      *string
	Status    *model.OrderStatus
}

// ApplyUpdate は一致する注文に patch を当てる。無ければそのまま。
func ApplyUpdate(orders []model.Order, id string, p OrderPatch) ([]model.Order, bool) {
	out := make([]model.Order, len(orders))
	copy(out, orders)

	for i := range out {
		if out[i].ID != id {
			continue
		}
		if p.BuyerName != nil {
			out[i].BuyerName = *p.BuyerName
		}
		if p.Contact != nil {
			out[i].Contact = *p.Contact
		}
		if p.Location != nil {
			out[i].Location = *p.Location
		}
		if p.Date != nil {
			out[i].Date = *p.Date
		}
		if p.Status != nil {
			out[i].Status = *p.Status
		}
		return out, true
	}
	return out, false
}

// DeleteOrder は一致する注文を除く。無ければそのまま。
func DeleteOrder(orders []model.Order, id string) ([]model.Order, bool) {
	out := make([]model.Order, 0, len(orders))
	found := false
	for _, o := range orders {
		if o.ID == id {
			found = true
			continue
		}
		out = append(out, o)
	}
	return out, found
}

// CSVの列順
var ExportHeader = []string{"ID", "Buyer Name", "Date", "Total", "Contact", "Location", "Status", "Items"}

// ExportDelimited は1行目ヘッダー、以降1注文1行で書き出す。
func ExportDelimited(w io.Writer, orders []model.Order, delimiter rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = delimiter

	if err := cw.Write(ExportHeader); err != nil {
		return err
	}
	for _, o := range orders {
		row := []string{
			o.ID,
			o.BuyerName,
			o.Date,
			strconv.FormatInt(o.TotalAmount, 10),
			o.Contact,
			o.Location,
			string(o.Status),
			itemsSummary(o.Items),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// "Mouse × 2; Keyboard × 1"
func itemsSummary(items []model.CartItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s × %d", it.Name, it.Quantity))
	}
	return strings.Join(parts, "; ")
}

// ReportUsecase は注文ドキュメントの読み取り・編集・削除。
type ReportUsecase struct {
	orders repo.OrderRepository
}

func NewReportUsecase(orders repo.OrderRepository) *ReportUsecase {
	return &ReportUsecase{orders: orders}
}

type ReportOutput struct {
	Orders  []model.Order `json:"orders"`
	Summary Aggregate     `json:"summary"`
}

type SummaryOutput struct {
	Aggregate
	ByStatus []StatusCount `json:"by_status"`
}

func (u *ReportUsecase) List(ctx context.Context, f ReportFilter) (ReportOutput, error) {
	if err := validateDateParam(f.From, "from"); err != nil {
		return ReportOutput{}, err
	}
	if err := validateDateParam(f.To, "to"); err != nil {
		return ReportOutput{}, err
	}

	filtered := FilterOrders(u.orders.Load(ctx), f)
	return ReportOutput{Orders: filtered, Summary: AggregateOrders(filtered)}, nil
}

func (u *ReportUsecase) Summary(ctx context.Context) SummaryOutput {
	orders := u.orders.Load(ctx)
	return SummaryOutput{
		Aggregate: AggregateOrders(orders),
		ByStatus:  CountByStatus(orders),
	}
}

// Update は対象が無ければ何もしない（false）。
func (u *ReportUsecase) Update(ctx context.Context, id string, p OrderPatch) (bool, error) {
	if p.Status != nil && !p.Status.Valid() {
		return false, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	if p.Date != nil {
		if err := validateDateParam(*p.Date, "date"); err != nil || *p.Date == "" {
			return false, NewHTTPError(http.StatusBadRequest, "invalid date")
		}
	}

	next, found := ApplyUpdate(u.orders.Load(ctx), id, p)
	if !found {
		return false, nil
	}
	if !u.orders.Save(ctx, next) {
		return true, errOrdersNotSaved()
	}
	return true, nil
}

// Delete は対象が無ければ何もしない（false）。
func (u *ReportUsecase) Delete(ctx context.Context, id string) (bool, error) {
	next, found := DeleteOrder(u.orders.Load(ctx), id)
	if !found {
		return false, nil
	}
	if !u.orders.Save(ctx, next) {
		return true, errOrdersNotSaved()
	}
	return true, nil
}

func errOrdersNotSaved() error {
	return WrapHTTPError(http.StatusServiceUnavailable, repo.ErrStorageUnavailable, "orders could not be saved")
}

func (u *ReportUsecase) Export(ctx context.Context, w io.Writer, f ReportFilter, delimiter rune) error {
	out, err := u.List(ctx, f)
	if err != nil {
		return err
	}
	if err := ExportDelimited(w, out.Orders, delimiter); err != nil {
		return WrapHTTPError(http.StatusBadRequest, err, "export failed")
	}
	return nil
}

func validateDateParam(v string, name string) error {
	if v == "" {
		return nil
	}
	if _, err := time.Parse(model.DateLayout, v); err != nil {
		return NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return nil
}
