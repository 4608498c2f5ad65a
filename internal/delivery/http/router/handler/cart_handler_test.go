package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/validator"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCartUsecase keeps carts in memory keyed by scope.
type fakeCartUsecase struct {
	carts map[string]*entity.Cart
}

func newFakeCartUsecase() *fakeCartUsecase {
	return &fakeCartUsecase{carts: map[string]*entity.Cart{}}
}

func (f *fakeCartUsecase) cart(scope string) *entity.Cart {
	if cart, ok := f.carts[scope]; ok {
		return cart
	}

	cart := &entity.Cart{}
	f.carts[scope] = cart

	return cart
}

func (f *fakeCartUsecase) GetCart(_ context.Context, scope string) (*entity.Cart, error) {
	return f.cart(scope), nil
}

func (f *fakeCartUsecase) AddItem(_ context.Context, scope string, input *usecase.AddCartItemInput) (*entity.Cart, error) {
	cart := f.cart(scope)
	cart.Add(entity.CartItem{ProductID: input.ProductID, Title: "Mug", UnitPrice: 10, Quantity: input.Quantity})

	return cart, nil
}

func (f *fakeCartUsecase) UpdateItemQuantity(_ context.Context, scope string, productID uuid.UUID, quantity int) (*entity.Cart, error) {
	cart := f.cart(scope)
	cart.UpdateQuantity(productID, quantity)

	return cart, nil
}

func (f *fakeCartUsecase) RemoveItem(_ context.Context, scope string, productID uuid.UUID) (*entity.Cart, error) {
	cart := f.cart(scope)
	cart.Remove(productID)

	return cart, nil
}

func (f *fakeCartUsecase) ClearCart(_ context.Context, scope string) error {
	f.cart(scope).Clear()

	return nil
}

func (f *fakeCartUsecase) MergeCarts(_ context.Context, fromScope, toScope string) (*entity.Cart, error) {
	target := f.cart(toScope)
	for _, item := range f.cart(fromScope).Items {
		target.Add(item)
	}
	delete(f.carts, fromScope)

	return target, nil
}

func newTestCartHandler(uc usecase.CartUsecase) *CartHandler {
	cfg := &config.Config{Redis: &config.RedisConfig{CartTTL: 30 * 24 * time.Hour}}

	return NewCartHandler(uc, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newCartContext(method, target, body string, cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestCartHandler_Get_AnonymousWithoutCookieIsEmpty(t *testing.T) {
	h := newTestCartHandler(newFakeCartUsecase())

	c, rec := newCartContext(http.MethodGet, "/cart", "")
	require.NoError(t, h.Get(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"items":[]`)

	// Browsing an empty cart never issues a guest cart cookie.
	assert.Empty(t, rec.Result().Cookies())
}

func TestCartHandler_AddItem_IssuesGuestCartCookie(t *testing.T) {
	uc := newFakeCartUsecase()
	h := newTestCartHandler(uc)

	productID := uuid.New()
	c, rec := newCartContext(http.MethodPost, "/cart/items", `{"productId":"`+productID.String()+`","quantity":2}`)
	require.NoError(t, h.AddItem(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var cartCookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "cartId" {
			cartCookie = ck
		}
	}
	require.NotNil(t, cartCookie)
	assert.True(t, strings.HasPrefix(cartCookie.Value, "guest_"))

	// The cart landed under the issued guest scope.
	cart, ok := uc.carts[cartCookie.Value]
	require.True(t, ok)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCartHandler_AddItem_UsesSessionScopeWhenSignedIn(t *testing.T) {
	uc := newFakeCartUsecase()
	h := newTestCartHandler(uc)

	userID := uuid.New()
	productID := uuid.New()
	c, rec := newCartContext(http.MethodPost, "/cart/items", `{"productId":"`+productID.String()+`","quantity":1}`)
	deliverycontext.SetClaims(c, &service.Claims{UserID: userID, Role: entity.RoleUser})

	require.NoError(t, h.AddItem(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Result().Cookies(), "a signed-in user needs no guest cart cookie")

	_, ok := uc.carts[userID.String()]
	assert.True(t, ok)
}

func TestCartHandler_Get_ReusesGuestCookieScope(t *testing.T) {
	uc := newFakeCartUsecase()
	h := newTestCartHandler(uc)

	scope := "guest_" + uuid.NewString()
	productID := uuid.New()
	uc.cart(scope).Add(entity.CartItem{ProductID: productID, UnitPrice: 5, Quantity: 3})

	c, rec := newCartContext(http.MethodGet, "/cart", "", &http.Cookie{Name: "cartId", Value: scope})
	require.NoError(t, h.Get(c))

	var body struct {
		Data cartView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data.Items, 1)
	assert.Equal(t, 3, body.Data.Items[0].Quantity)
	assert.Equal(t, 15.0, body.Data.Total)
}
