package usecase

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"scm/internal/domain/model"
	repo "scm/internal/repository"
)

// 購入者入力
type CheckoutForm struct {
	BuyerName           string
	Contact             string
	Location            string
	PaymentMethod       model.PaymentMethod // 空は COD 扱い
	ManualPaymentAmount *int64
}

// 空の支払い方法は COD
func (f CheckoutForm) Method() model.PaymentMethod {
	m := model.PaymentMethod(strings.TrimSpace(string(f.PaymentMethod)))
	if m == "" {
		return model.PaymentCOD
	}
	return m
}

type CheckoutUsecase struct {
	orders repo.OrderRepository
	clock  Clock
}

// DI
func NewCheckoutUsecase(orders repo.OrderRepository, clock Clock) *CheckoutUsecase {
	if clock == nil {
		clock = RealClock()
	}
	return &CheckoutUsecase{orders: orders, clock: clock}
}

// Start はチェックアウト開始のガード（空カートは拒否）。
func (u *CheckoutUsecase) Start(items []model.CartItem) error {
	if len(items) == 0 {
		return WrapHTTPError(http.StatusBadRequest, ErrEmptyCart, "cart empty")
	}
	return nil
}

// Validate は入力とカートを検証する。
func (u *CheckoutUsecase) Validate(form CheckoutForm, items []model.CartItem) error {
	if len(items) == 0 {
		return WrapHTTPError(http.StatusBadRequest, ErrEmptyCart, "cart empty")
	}

	//必須チェック
	if strings.TrimSpace(form.BuyerName) == "" {
		return WrapHTTPError(http.StatusBadRequest, ErrMissingField, "buyer name is required")
	}
	if strings.TrimSpace(form.Contact) == "" {
		return WrapHTTPError(http.StatusBadRequest, ErrMissingField, "contact is required")
	}
	if strings.TrimSpace(form.Location) == "" {
		return WrapHTTPError(http.StatusBadRequest, ErrMissingField, "location is required")
	}

	method := form.Method()
	if !method.Valid() {
		return WrapHTTPError(http.StatusBadRequest, ErrInvalidPaymentMethod, "invalid payment method")
	}

	// COD以外は合計以上の入金額が必要
	if method != model.PaymentCOD {
		subtotal := model.SumItems(items)
		if form.ManualPaymentAmount == nil || *form.ManualPaymentAmount <= 0 {
			return WrapHTTPError(http.StatusBadRequest, ErrInsufficientPayment, "payment amount is required")
		}
		if *form.ManualPaymentAmount < subtotal {
			return WrapHTTPError(http.StatusBadRequest, ErrInsufficientPayment, "payment amount is less than total")
		}
	}

	return nil
}

// Submit は注文を作って注文一覧に追加し、その後カートを空にする。
// 追加 → クリアの順番は変えないこと（途中で落ちても注文は残る）。
// 注文が保存できなければカートには触らず 503 を返す。
func (u *CheckoutUsecase) Submit(ctx context.Context, form CheckoutForm, cart *CartManager) (model.Order, error) {
	items := cart.Items()
	if err := u.Validate(form, items); err != nil {
		return model.Order{}, err
	}

	orders := u.orders.Load(ctx)
	order := u.buildOrder(form, items, orders)

	if !u.orders.Save(ctx, append(orders, order)) {
		return model.Order{}, WrapHTTPError(http.StatusServiceUnavailable, repo.ErrStorageUnavailable, "order could not be saved")
	}

	cart.Clear(ctx)

	return order, nil
}

// nextOrderID は "ORD-<millis>"。既存と重なれば1ずつ進める。
func nextOrderID(now time.Time, existing []model.Order) string {
	used := make(map[string]struct{}, len(existing))
	for _, o := range existing {
		used[o.ID] = struct{}{}
	}

	millis := now.UnixMilli()
	for {
		id := "ORD-" + strconv.FormatInt(millis, 10)
		if _, dup := used[id]; !dup {
			return id
		}
		millis++
	}
}

func (u *CheckoutUsecase) buildOrder(form CheckoutForm, items []model.CartItem, existing []model.Order) model.Order {
	now := u.clock.Now()
	total := model.SumItems(items)
	method := form.Method()

	order := model.Order{
		ID:            nextOrderID(now, existing),
		BuyerName:     strings.TrimSpace(form.BuyerName),
		Date:          now.Format(model.DateLayout),
		TotalDisplay:  model.FormatRupiah(total),
		TotalAmount:   total,
		Contact:       strings.TrimSpace(form.Contact),
		Location:      strings.TrimSpace(form.Location),
		Status:        model.OrderStatusPending,
		PaymentMethod: method,
		Items:         model.CloneItems(items),
	}
	if method != model.PaymentCOD && form.ManualPaymentAmount != nil {
		amount := *form.ManualPaymentAmount
		order.ManualPaymentAmount = &amount
	}
	return order
}

// チェックアウト画面の状態
type CheckoutState string

const (
	CheckoutIdle       CheckoutState = "idle"
	CheckoutCollecting CheckoutState = "collecting"
)

// CheckoutSession は Idle ⇄ Collecting の状態遷移を持つ。
type CheckoutSession struct {
	uc    *CheckoutUsecase
	cart  *CartManager
	state CheckoutState
	form  CheckoutForm
}

func NewCheckoutSession(uc *CheckoutUsecase, cart *CartManager) *CheckoutSession {
	return &CheckoutSession{uc: uc, cart: cart, state: CheckoutIdle}
}

func (s *CheckoutSession) State() CheckoutState {
	return s.state
}

// Form は入力途中のフォーム。
func (s *CheckoutSession) Form() CheckoutForm {
	return s.form
}

// Idle → Collecting（空カートなら Idle のまま）
func (s *CheckoutSession) Start() error {
	if err := s.uc.Start(s.cart.Items()); err != nil {
		return err
	}
	s.state = CheckoutCollecting
	return nil
}

// 入力は破棄して Idle へ
func (s *CheckoutSession) Cancel() {
	s.form = CheckoutForm{}
	s.state = CheckoutIdle
}

// 検証エラーのときは Collecting のまま入力を保持する。
func (s *CheckoutSession) Submit(ctx context.Context, form CheckoutForm) (model.Order, error) {
	if s.state != CheckoutCollecting {
		return model.Order{}, WrapHTTPError(http.StatusConflict, ErrNotCollecting, "checkout not started")
	}

	s.form = form
	order, err := s.uc.Submit(ctx, form, s.cart)
	if err != nil {
		return model.Order{}, err
	}

	s.form = CheckoutForm{}
	s.state = CheckoutIdle
	return order, nil
}
