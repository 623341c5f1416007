package mocks

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/swaglabs-qa/storefront-e2e/internal/fixtures"
	"github.com/swaglabs-qa/storefront-e2e/internal/models"
)

// Endpoint patterns of the storefront backend
const (
	AuthEndpoint       = "**/auth/**"
	ProductsEndpoint   = "**/api/products**"
	CartEndpoint       = "**/api/cart**"
	CheckoutEndpoint   = "**/api/checkout**"
	UserEndpoint       = "**/api/user**"
	CartAddEndpoint    = "**/api/cart/add"
	CartRemoveEndpoint = "**/api/cart/remove"
)

// Aliases registered by the Helper configurators
const (
	AliasAuthSuccess             = "authSuccess"
	AliasAuthInvalid             = "authInvalid"
	AliasAuthLocked              = "authLocked"
	AliasAuthServerError         = "authServerError"
	AliasAuthSlow                = "authSlow"
	AliasProductsSuccess         = "productsSuccess"
	AliasProductsEmpty           = "productsEmpty"
	AliasProductsServerError     = "productsServerError"
	AliasProductsCustom          = "productsCustom"
	AliasProductsSlow            = "productsSlow"
	AliasAddToCartSuccess        = "addToCartSuccess"
	AliasAddToCartOutOfStock     = "addToCartOutOfStock"
	AliasAddToCartServerError    = "addToCartServerError"
	AliasGetCartEmpty            = "getCartEmpty"
	AliasGetCartWithItems        = "getCartWithItems"
	AliasRemoveFromCartSuccess   = "removeFromCartSuccess"
	AliasCartSlow                = "cartSlow"
	AliasCheckoutSuccess         = "checkoutSuccess"
	AliasCheckoutPaymentError    = "checkoutPaymentError"
	AliasCheckoutValidationError = "checkoutValidationError"
	AliasCheckoutServerError     = "checkoutServerError"
	AliasCheckoutSlow            = "checkoutSlow"
	AliasSlowConnection          = "slowConnection"
	AliasNetworkError            = "networkError"
	AliasIntermittentFailure     = "intermittentFailure"
	AliasTimeout                 = "timeout"
)

const (
	// DefaultSlowDelay is the latency of the slow response variants
	DefaultSlowDelay = 3 * time.Second
	// DefaultFailureRate is the share of failed calls for IntermittentFailure
	DefaultFailureRate = 0.3
)

// AuthMocks configures the authentication endpoint
type AuthMocks interface {
	Success() (*Alias, error)
	InvalidCredentials() (*Alias, error)
	LockedOut() (*Alias, error)
	ServerError() (*Alias, error)
	SlowResponse(delay time.Duration) (*Alias, error)
}

// ProductMocks configures the products endpoint
type ProductMocks interface {
	Success() (*Alias, error)
	EmptyInventory() (*Alias, error)
	ServerError() (*Alias, error)
	CustomProducts(products []models.Product) (*Alias, error)
	SlowResponse(delay time.Duration) (*Alias, error)
}

// CartMocks configures the cart endpoints
type CartMocks interface {
	AddItemSuccess() (*Alias, error)
	AddItemOutOfStock() (*Alias, error)
	AddItemServerError() (*Alias, error)
	GetCartEmpty() (*Alias, error)
	GetCartWithItems() (*Alias, error)
	RemoveItemSuccess() (*Alias, error)
	SlowResponse(delay time.Duration) (*Alias, error)
}

// CheckoutMocks configures the checkout endpoint
type CheckoutMocks interface {
	Success() (*Alias, error)
	PaymentError() (*Alias, error)
	ValidationError() (*Alias, error)
	ServerError() (*Alias, error)
	SlowResponse(delay time.Duration) (*Alias, error)
}

// NetworkConditions degrades traffic
type NetworkConditions interface {
	SlowConnection() (*Alias, error)
	NetworkError(endpoint string) (*Alias, error)
	IntermittentFailure(endpoint string, rate float64) (*Alias, error)
	Timeout(endpoint string) (*Alias, error)
	Latency(pattern string, d time.Duration) (*Alias, error)
}

// Helper registers the storefront's canned scenarios on a Registry
type Helper struct {
	reg    *Registry
	data   *fixtures.Bundle
	random func() float64
	opts   []RegisterOption
}

// HelperOption customizes a Helper
type HelperOption func(*Helper)

// WithRandom replaces the source of randomness used by the network
// simulators. fn must return values in [0, 1).
func WithRandom(fn func() float64) HelperOption {
	return func(h *Helper) { h.random = fn }
}

// WithOverwriteAll makes every configurator replace an existing alias
func WithOverwriteAll() HelperOption {
	return func(h *Helper) { h.opts = append(h.opts, WithOverwrite()) }
}

// NewHelper creates a helper backed by reg and the fixtures in data
func NewHelper(reg *Registry, data *fixtures.Bundle, opts ...HelperOption) *Helper {
	h := &Helper{
		reg:    reg,
		data:   data,
		random: rand.Float64,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Registry returns the underlying registry
func (h *Helper) Registry() *Registry {
	return h.reg
}

// MockAPICall intercepts method calls to endpoint with a fixed reply.
// An empty alias registers an anonymous rule.
func (h *Helper) MockAPICall(method, endpoint string, reply Reply, alias string) (*Alias, error) {
	return h.reg.Register(alias, method, endpoint, Static(reply), h.opts...)
}

func (h *Helper) register(alias, method, pattern string, handler Handler) (*Alias, error) {
	return h.reg.Register(alias, method, pattern, handler, h.opts...)
}

func (h *Helper) fixed(alias, method, pattern string, reply Reply) (*Alias, error) {
	return h.register(alias, method, pattern, Static(reply))
}

func (h *Helper) canned(alias, method, pattern, endpoint, scenario string) (*Alias, error) {
	p, err := h.data.Responses.Response(endpoint, scenario)
	if err != nil {
		return nil, err
	}
	return h.fixed(alias, method, pattern, fromPayload(p))
}

func fromPayload(p fixtures.Payload) Reply {
	return Reply{Status: p.StatusCode, Body: p.Body, Headers: p.Headers}
}

func delayed(r Reply, d time.Duration) Reply {
	if d <= 0 {
		d = DefaultSlowDelay
	}
	r.Delay = d
	return r
}

// Auth returns the authentication configurators
func (h *Helper) Auth() AuthMocks { return authMocks{h} }

// Products returns the products configurators
func (h *Helper) Products() ProductMocks { return productMocks{h} }

// Cart returns the cart configurators
func (h *Helper) Cart() CartMocks { return cartMocks{h} }

// Checkout returns the checkout configurators
func (h *Helper) Checkout() CheckoutMocks { return checkoutMocks{h} }

// Network returns the network simulators
func (h *Helper) Network() NetworkConditions { return networkConditions{h} }

type authMocks struct{ h *Helper }

func (m authMocks) Success() (*Alias, error) {
	return m.h.canned(AliasAuthSuccess, http.MethodPost, AuthEndpoint, "auth", "success")
}

func (m authMocks) InvalidCredentials() (*Alias, error) {
	return m.h.canned(AliasAuthInvalid, http.MethodPost, AuthEndpoint, "auth", "invalidCredentials")
}

func (m authMocks) LockedOut() (*Alias, error) {
	return m.h.canned(AliasAuthLocked, http.MethodPost, AuthEndpoint, "auth", "lockedOut")
}

func (m authMocks) ServerError() (*Alias, error) {
	return m.h.canned(AliasAuthServerError, http.MethodPost, AuthEndpoint, "auth", "serverError")
}

func (m authMocks) SlowResponse(delay time.Duration) (*Alias, error) {
	p, err := m.h.data.Responses.Response("auth", "success")
	if err != nil {
		return nil, err
	}
	return m.h.fixed(AliasAuthSlow, http.MethodPost, AuthEndpoint, delayed(fromPayload(p), delay))
}

type productMocks struct{ h *Helper }

func (m productMocks) catalog() Reply {
	return JSON(http.StatusOK, map[string]any{"products": m.h.data.Products.Products})
}

func (m productMocks) Success() (*Alias, error) {
	return m.h.fixed(AliasProductsSuccess, http.MethodGet, ProductsEndpoint, m.catalog())
}

func (m productMocks) EmptyInventory() (*Alias, error) {
	body, ok := m.h.data.Products.MockScenarios["emptyInventory"]
	if !ok {
		return nil, fmt.Errorf("%w: products has no emptyInventory scenario", fixtures.ErrUnknownFixture)
	}
	return m.h.fixed(AliasProductsEmpty, http.MethodGet, ProductsEndpoint, JSON(http.StatusOK, body))
}

func (m productMocks) ServerError() (*Alias, error) {
	return m.h.canned(AliasProductsServerError, http.MethodGet, ProductsEndpoint, "products", "serverError")
}

func (m productMocks) CustomProducts(products []models.Product) (*Alias, error) {
	if products == nil {
		products = []models.Product{}
	}
	return m.h.fixed(AliasProductsCustom, http.MethodGet, ProductsEndpoint,
		JSON(http.StatusOK, map[string]any{"products": products}))
}

func (m productMocks) SlowResponse(delay time.Duration) (*Alias, error) {
	return m.h.fixed(AliasProductsSlow, http.MethodGet, ProductsEndpoint, delayed(m.catalog(), delay))
}

type cartMocks struct{ h *Helper }

func (m cartMocks) cart(name string) models.Cart {
	return m.h.data.Carts.Carts[name]
}

func (m cartMocks) scenario(name string) (Reply, error) {
	p, ok := m.h.data.Carts.MockScenarios[name]
	if !ok {
		return Reply{}, fmt.Errorf("%w: cart has no %s scenario", fixtures.ErrUnknownFixture, name)
	}
	return fromPayload(p), nil
}

func (m cartMocks) AddItemSuccess() (*Alias, error) {
	return m.h.fixed(AliasAddToCartSuccess, http.MethodPost, CartAddEndpoint, JSON(http.StatusOK, map[string]any{
		"message": "Item added to cart",
		"cart":    m.cart(fixtures.CartSingleItem),
	}))
}

func (m cartMocks) AddItemOutOfStock() (*Alias, error) {
	r, err := m.scenario("outOfStock")
	if err != nil {
		return nil, err
	}
	return m.h.fixed(AliasAddToCartOutOfStock, http.MethodPost, CartAddEndpoint, r)
}

func (m cartMocks) AddItemServerError() (*Alias, error) {
	r, err := m.scenario("serverError")
	if err != nil {
		return nil, err
	}
	return m.h.fixed(AliasAddToCartServerError, http.MethodPost, CartAddEndpoint, r)
}

func (m cartMocks) GetCartEmpty() (*Alias, error) {
	return m.h.fixed(AliasGetCartEmpty, http.MethodGet, CartEndpoint, JSON(http.StatusOK, m.cart(fixtures.CartEmpty)))
}

func (m cartMocks) GetCartWithItems() (*Alias, error) {
	return m.h.fixed(AliasGetCartWithItems, http.MethodGet, CartEndpoint, JSON(http.StatusOK, m.cart(fixtures.CartMultipleItems)))
}

func (m cartMocks) RemoveItemSuccess() (*Alias, error) {
	return m.h.fixed(AliasRemoveFromCartSuccess, http.MethodDelete, CartRemoveEndpoint, JSON(http.StatusOK, map[string]any{
		"message": "Item removed from cart",
		"cart":    m.cart(fixtures.CartEmpty),
	}))
}

func (m cartMocks) SlowResponse(delay time.Duration) (*Alias, error) {
	return m.h.fixed(AliasCartSlow, http.MethodGet, CartEndpoint,
		delayed(JSON(http.StatusOK, m.cart(fixtures.CartSingleItem)), delay))
}

type checkoutMocks struct{ h *Helper }

func (m checkoutMocks) Success() (*Alias, error) {
	return m.h.canned(AliasCheckoutSuccess, http.MethodPost, CheckoutEndpoint, "checkout", "success")
}

func (m checkoutMocks) PaymentError() (*Alias, error) {
	return m.h.canned(AliasCheckoutPaymentError, http.MethodPost, CheckoutEndpoint, "checkout", "paymentError")
}

func (m checkoutMocks) ValidationError() (*Alias, error) {
	return m.h.canned(AliasCheckoutValidationError, http.MethodPost, CheckoutEndpoint, "checkout", "validationError")
}

func (m checkoutMocks) ServerError() (*Alias, error) {
	return m.h.canned(AliasCheckoutServerError, http.MethodPost, CheckoutEndpoint, "checkout", "serverError")
}

func (m checkoutMocks) SlowResponse(delay time.Duration) (*Alias, error) {
	p, err := m.h.data.Responses.Response("checkout", "success")
	if err != nil {
		return nil, err
	}
	return m.h.fixed(AliasCheckoutSlow, http.MethodPost, CheckoutEndpoint, delayed(fromPayload(p), delay))
}

type networkConditions struct{ h *Helper }

func anyURL(endpoint string) string {
	return "**/" + endpoint
}

// SlowConnection delays every request by one to three seconds, then lets it
// through.
func (n networkConditions) SlowConnection() (*Alias, error) {
	return n.h.register(AliasSlowConnection, "", "**", func(Request) Reply {
		delay := time.Second + time.Duration(n.h.random()*float64(2*time.Second))
		return Reply{Passthrough: true, Delay: delay}
	})
}

func (n networkConditions) NetworkError(endpoint string) (*Alias, error) {
	return n.h.fixed(AliasNetworkError, "", anyURL(endpoint), Reply{NetworkError: true})
}

// IntermittentFailure answers 503 for roughly rate of the calls and lets the
// rest through. A rate outside (0, 1] uses DefaultFailureRate.
func (n networkConditions) IntermittentFailure(endpoint string, rate float64) (*Alias, error) {
	if rate <= 0 || rate > 1 {
		rate = DefaultFailureRate
	}
	return n.h.register(AliasIntermittentFailure, "", anyURL(endpoint), func(Request) Reply {
		if n.h.random() < rate {
			return JSON(http.StatusServiceUnavailable, map[string]string{"error": "Service temporarily unavailable"})
		}
		return Reply{Passthrough: true}
	})
}

func (n networkConditions) Timeout(endpoint string) (*Alias, error) {
	return n.h.fixed(AliasTimeout, "", anyURL(endpoint), Reply{NoResponse: true})
}

// Latency delays matching requests by d, then lets them through. The alias is
// generated.
func (n networkConditions) Latency(pattern string, d time.Duration) (*Alias, error) {
	return n.h.fixed("", "", pattern, Reply{Passthrough: true, Delay: d})
}

// SetupCommonMocks registers the success scenario of every endpoint
func (h *Helper) SetupCommonMocks() error {
	return h.setup(
		h.Auth().Success,
		h.Products().Success,
		h.Cart().GetCartEmpty,
		h.Checkout().Success,
	)
}

// SetupErrorScenarios registers the server error scenario of every endpoint
func (h *Helper) SetupErrorScenarios() error {
	return h.setup(
		h.Auth().ServerError,
		h.Products().ServerError,
		h.Cart().AddItemServerError,
		h.Checkout().ServerError,
	)
}

// SetupSlowResponseScenarios registers the slow variant of every endpoint
func (h *Helper) SetupSlowResponseScenarios(delay time.Duration) error {
	slow := func(fn func(time.Duration) (*Alias, error)) func() (*Alias, error) {
		return func() (*Alias, error) { return fn(delay) }
	}
	return h.setup(
		slow(h.Auth().SlowResponse),
		slow(h.Products().SlowResponse),
		slow(h.Cart().SlowResponse),
		slow(h.Checkout().SlowResponse),
	)
}

func (h *Helper) setup(steps ...func() (*Alias, error)) error {
	var errs []error
	for _, step := range steps {
		if _, err := step(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ResetMocks removes every registered rule
func (h *Helper) ResetMocks() error {
	return h.reg.Reset()
}

// WaitForMockCall waits for the next call to alias. A zero timeout waits
// DefaultWaitTimeout.
func (h *Helper) WaitForMockCall(ctx context.Context, alias string, timeout time.Duration) (Request, error) {
	return h.reg.Wait(ctx, alias, timeout)
}

// VerifyMockCall checks that alias received exactly expected calls
func (h *Helper) VerifyMockCall(ctx context.Context, alias string, expected int) error {
	return h.reg.VerifyCalls(ctx, alias, expected)
}

// MockCallData returns the body of the last call to alias
func (h *Helper) MockCallData(alias string) ([]byte, error) {
	return h.reg.CallData(alias)
}
