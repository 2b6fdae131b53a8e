package handler

import (
	"net/http"
	"sync"
	"time"

	"scm/internal/config"
	"scm/internal/domain/model"
	"scm/internal/middleware"
	"scm/internal/repository"
	"scm/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 入力中のまま放置されたセッションはこの時間で捨てる
const checkoutSessionTTL = 30 * time.Minute

// /checkout のHTTP。
// 入力中の状態はスコープ+タブごとに保持する。
type CheckoutHandler struct {
	repos repository.ScopedRepos
	clock usecase.Clock

	mu       sync.Mutex
	sessions map[string]*checkoutEntry
}

type checkoutEntry struct {
	session   *usecase.CheckoutSession
	cart      *usecase.CartManager
	startedAt time.Time
	unwatch   func()
}

func (e *checkoutEntry) close() {
	if e.unwatch != nil {
		e.unwatch()
	}
}

// DI
func NewCheckoutHandler(repos repository.ScopedRepos, clock usecase.Clock) *CheckoutHandler {
	if clock == nil {
		clock = usecase.RealClock()
	}
	return &CheckoutHandler{
		repos:    repos,
		clock:    clock,
		sessions: map[string]*checkoutEntry{},
	}
}

type CheckoutRequest struct {
	BuyerName     string `json:"buyer_name"`
	Contact       string `json:"contact"`
	Location      string `json:"location"`
	PaymentMethod string `json:"payment_method"` // 空は COD
	PaymentAmount *int64 `json:"payment_amount"`
}

type CheckoutStateResponse struct {
	State usecase.CheckoutState `json:"state"`
	Cart  usecase.CartView      `json:"cart"`
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/checkout")
	g.Use(middleware.RequireTabID())
	g.Use(middleware.TabOrigin())
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.state)
	g.POST("/start", h.start)
	g.POST("", h.submit)
	g.DELETE("", h.cancel)
}

func sessionKey(scope, origin string) string {
	return scope + "|" + origin
}

func (h *CheckoutHandler) newEntry(c echo.Context, scope string) *checkoutEntry {
	cart := usecase.NewCartManager(h.repos.Carts(scope))
	cart.Reload(c.Request().Context())

	uc := usecase.NewCheckoutUsecase(h.repos.Orders(scope), h.clock)
	return &checkoutEntry{
		session:   usecase.NewCheckoutSession(uc, cart),
		cart:      cart,
		startedAt: h.clock.Now(),
	}
}

// watch は別タブのカート変更を入力中のセッションへ反映させる。
func (h *CheckoutHandler) watch(entry *checkoutEntry, scope, origin string) {
	notifiers, ok := h.repos.(repository.ScopedNotifiers)
	if !ok {
		return
	}
	if n, ok := notifiers.Notifier(scope); ok {
		entry.unwatch = entry.cart.Watch(n, origin)
	}
}

// put は key のセッションを差し替え、期限切れのものを捨てる。h.mu を持って呼ぶ。
func (h *CheckoutHandler) put(key string, entry *checkoutEntry) {
	now := h.clock.Now()
	for k, e := range h.sessions {
		if k == key || now.Sub(e.startedAt) > checkoutSessionTTL {
			e.close()
			delete(h.sessions, k)
		}
	}
	h.sessions[key] = entry
}

// lookup は key のセッションを返す。期限切れなら捨てて false。
func (h *CheckoutHandler) lookup(key string) (*checkoutEntry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry, found := h.sessions[key]
	if !found {
		return nil, false
	}
	if h.clock.Now().Sub(entry.startedAt) > checkoutSessionTTL {
		entry.close()
		delete(h.sessions, key)
		return nil, false
	}
	return entry, true
}

func (h *CheckoutHandler) drop(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if entry, found := h.sessions[key]; found {
		entry.close()
		delete(h.sessions, key)
	}
}

func (h *CheckoutHandler) start(c echo.Context) error {
	scope, ok := getScopeFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	origin := middleware.OriginFrom(c)
	entry := h.newEntry(c, scope)
	if err := entry.session.Start(); err != nil {
		return writeError(c, err)
	}
	h.watch(entry, scope, origin)

	h.mu.Lock()
	h.put(sessionKey(scope, origin), entry)
	h.mu.Unlock()

	return c.JSON(http.StatusOK, CheckoutStateResponse{
		State: entry.session.State(),
		Cart:  entry.cart.View(),
	})
}

// state は入力中のセッションの状態とカートを返す。無ければ Idle。
func (h *CheckoutHandler) state(c echo.Context) error {
	scope, ok := getScopeFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	entry, found := h.lookup(sessionKey(scope, middleware.OriginFrom(c)))
	if !found {
		entry = h.newEntry(c, scope)
	}

	return c.JSON(http.StatusOK, CheckoutStateResponse{
		State: entry.session.State(),
		Cart:  entry.cart.View(),
	})
}

func (h *CheckoutHandler) submit(c echo.Context) error {
	scope, ok := getScopeFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	key := sessionKey(scope, middleware.OriginFrom(c))
	entry, found := h.lookup(key)
	if !found {
		//未開始のセッション（Submit が 409 を返す）
		entry = h.newEntry(c, scope)
	}

	//通知の無いストレージでも保存済みのカートで確定する
	entry.cart.Reload(c.Request().Context())

	order, err := entry.session.Submit(c.Request().Context(), usecase.CheckoutForm{
		BuyerName:           req.BuyerName,
		Contact:             req.Contact,
		Location:            req.Location,
		PaymentMethod:       model.PaymentMethod(req.PaymentMethod),
		ManualPaymentAmount: req.PaymentAmount,
	})
	if err != nil {
		return writeError(c, err)
	}

	h.drop(key)

	return c.JSON(http.StatusCreated, order)
}

func (h *CheckoutHandler) cancel(c echo.Context) error {
	scope, ok := getScopeFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	key := sessionKey(scope, middleware.OriginFrom(c))
	if entry, found := h.lookup(key); found {
		entry.session.Cancel()
	}
	h.drop(key)

	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
