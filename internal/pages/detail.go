package pages

import (
	"context"

	"github.com/swaglabs-qa/storefront-e2e/internal/models"
	"github.com/swaglabs-qa/storefront-e2e/internal/selectors"
)

// ProductDetailPage shows a single product
type ProductDetailPage struct {
	page
}

// ValidateIsDisplayed waits for the detail view of the named product
func (p *ProductDetailPage) ValidateIsDisplayed(ctx context.Context, name string) error {
	if err := p.expectVisible(ctx, selectors.DetailContainer); err != nil {
		return err
	}
	return p.expectTextEquals(ctx, selectors.DetailName, name)
}

// AddToCart clicks the first add button variant present
func (p *ProductDetailPage) AddToCart(ctx context.Context, productID string) error {
	return p.clickFirst(ctx, selectors.DetailAddToCart(productID))
}

// RemoveFromCart clicks the first remove button variant present
func (p *ProductDetailPage) RemoveFromCart(ctx context.Context, productID string) error {
	return p.clickFirst(ctx, selectors.DetailRemove(productID))
}

// BackToProducts returns to the inventory
func (p *ProductDetailPage) BackToProducts(ctx context.Context) error {
	return p.click(ctx, selectors.BackToProducts)
}

// Price returns the price shown on the detail view
func (p *ProductDetailPage) Price(ctx context.Context) (models.Cents, error) {
	label, err := p.firstText(ctx, selectors.DetailPrice)
	if err != nil {
		return 0, err
	}
	return models.ParseMoney(label)
}
