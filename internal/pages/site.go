package pages

import (
	"context"

	"github.com/swaglabs-qa/storefront-e2e/internal/wait"
)

// Site bundles the page objects of one browser session
type Site struct {
	page

	Login    *LoginPage
	Products *ProductsPage
	Detail   *ProductDetailPage
	Menu     *Menu
	Cart     *CartPage
	Checkout *CheckoutPage
}

// New creates the page objects for a session driven by d
func New(d Driver, opts wait.Options) *Site {
	p := page{d: d, opts: opts}
	return &Site{
		page:     p,
		Login:    &LoginPage{p},
		Products: &ProductsPage{p},
		Detail:   &ProductDetailPage{p},
		Menu:     &Menu{p},
		Cart:     &CartPage{p},
		Checkout: &CheckoutPage{p},
	}
}

// GoBack moves one step back in history
func (s *Site) GoBack(ctx context.Context) error {
	return s.d.Back(ctx)
}

// GoForward moves one step forward in history
func (s *Site) GoForward(ctx context.Context) error {
	return s.d.Forward(ctx)
}

// Reload reloads the current page
func (s *Site) Reload(ctx context.Context) error {
	return s.d.Reload(ctx)
}

// Visit navigates to an arbitrary path
func (s *Site) Visit(ctx context.Context, path string) error {
	return s.visit(ctx, path)
}

// CurrentURL returns the address the browser shows
func (s *Site) CurrentURL(ctx context.Context) (string, error) {
	return s.d.URL(ctx)
}

// ValidateURLContains waits for the current URL to contain fragment
func (s *Site) ValidateURLContains(ctx context.Context, fragment string) error {
	return s.expectURLContains(ctx, fragment)
}
