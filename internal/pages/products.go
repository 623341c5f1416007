package pages

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/swaglabs-qa/storefront-e2e/internal/models"
	"github.com/swaglabs-qa/storefront-e2e/internal/selectors"
	"github.com/swaglabs-qa/storefront-e2e/internal/wait"
)

// ProductsPage is the inventory list
type ProductsPage struct {
	page
}

// Visit opens /inventory.html
func (p *ProductsPage) Visit(ctx context.Context) error {
	return p.visit(ctx, models.StepCatalog.Path())
}

// AddItemToCart clicks the add button of the product with the given id
func (p *ProductsPage) AddItemToCart(ctx context.Context, productID string) error {
	return p.click(ctx, selectors.AddToCartButton(productID))
}

// RemoveItemFromCart clicks the remove button of the product with the given id
func (p *ProductsPage) RemoveItemFromCart(ctx context.Context, productID string) error {
	return p.click(ctx, selectors.RemoveButton(productID))
}

// ClickShoppingCart opens the cart
func (p *ProductsPage) ClickShoppingCart(ctx context.Context) error {
	return p.click(ctx, selectors.ShoppingCartLink)
}

// SortProducts picks opt in the sort dropdown
func (p *ProductsPage) SortProducts(ctx context.Context, opt models.SortOption) error {
	if err := p.d.SelectOption(ctx, selectors.SortDropdown, string(opt)); err != nil {
		return fmt.Errorf("failed to sort by %s: %w", opt.Label(), err)
	}
	return nil
}

// OpenProduct opens the detail page of the named product
func (p *ProductsPage) OpenProduct(ctx context.Context, name string) error {
	return p.click(ctx, selectors.ProductNameLink(name))
}

// ProductNames returns the product names in display order
func (p *ProductsPage) ProductNames(ctx context.Context) ([]string, error) {
	names, err := p.d.Texts(ctx, selectors.ProductNames)
	if err != nil {
		return nil, err
	}
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	return names, nil
}

// ProductPrices returns the product prices in display order
func (p *ProductsPage) ProductPrices(ctx context.Context) ([]models.Cents, error) {
	labels, err := p.d.Texts(ctx, selectors.ProductPrices)
	if err != nil {
		return nil, err
	}
	return parsePrices(labels)
}

// ProductPrice returns the price shown for the named product
func (p *ProductsPage) ProductPrice(ctx context.Context, name string) (models.Cents, error) {
	label, err := p.firstText(ctx, selectors.ProductPrice(name))
	if err != nil {
		return 0, err
	}
	return models.ParseMoney(label)
}

// ValidateProductsPageIsDisplayed waits for the inventory screen
func (p *ProductsPage) ValidateProductsPageIsDisplayed(ctx context.Context) error {
	if err := p.expectVisible(ctx, selectors.ProductsContainer); err != nil {
		return err
	}
	if err := p.expectVisible(ctx, selectors.ProductsList); err != nil {
		return err
	}
	return p.expectTextContains(ctx, selectors.AppLogo, selectors.PageTitleSwagLabs)
}

// ValidateProductsAreDisplayed waits for at least min products. A min below
// one is treated as one.
func (p *ProductsPage) ValidateProductsAreDisplayed(ctx context.Context, min int) error {
	return p.expectAtLeast(ctx, selectors.ProductItems, max(min, 1))
}

// ValidateProductExists waits for a product called name
func (p *ProductsPage) ValidateProductExists(ctx context.Context, name string) error {
	return p.expectVisible(ctx, selectors.ProductNameLink(name))
}

// ValidateCartItemCount checks the cart badge. Zero asserts the badge is
// absent; a negative count is rejected.
func (p *ProductsPage) ValidateCartItemCount(ctx context.Context, n int) error {
	return p.expectBadge(ctx, n)
}

// ValidateAddToCartButtonExists waits for the add button of productID
func (p *ProductsPage) ValidateAddToCartButtonExists(ctx context.Context, productID string) error {
	return p.expectVisible(ctx, selectors.AddToCartButton(productID))
}

// ValidateRemoveButtonExists waits for the remove button of productID
func (p *ProductsPage) ValidateRemoveButtonExists(ctx context.Context, productID string) error {
	return p.expectVisible(ctx, selectors.RemoveButton(productID))
}

// ValidateSortDropdownExists waits for the sort dropdown
func (p *ProductsPage) ValidateSortDropdownExists(ctx context.Context) error {
	return p.expectVisible(ctx, selectors.SortDropdown)
}

// ValidateProductsSortedByName waits for the names to be in order
func (p *ProductsPage) ValidateProductsSortedByName(ctx context.Context, order models.Order) error {
	_, err := wait.Until(ctx, p.opts, "product names", "sorted "+string(order),
		func(ctx context.Context) ([]string, bool, error) {
			names, err := p.ProductNames(ctx)
			if err != nil {
				return nil, false, err
			}
			return names, len(names) > 0 && isSorted(names, order), nil
		})
	return err
}

// ValidateProductsSortedByPrice waits for the prices to be in order
func (p *ProductsPage) ValidateProductsSortedByPrice(ctx context.Context, order models.Order) error {
	_, err := wait.Until(ctx, p.opts, "product prices", "sorted "+string(order),
		func(ctx context.Context) ([]models.Cents, bool, error) {
			prices, err := p.ProductPrices(ctx)
			if err != nil {
				return nil, false, err
			}
			return prices, len(prices) > 0 && isSorted(prices, order), nil
		})
	return err
}

// ValidateSelectedSort checks the label shown next to the sort dropdown
func (p *ProductsPage) ValidateSelectedSort(ctx context.Context, opt models.SortOption) error {
	return p.expectTextEquals(ctx, selectors.ActiveSortOption, opt.Label())
}

// ValidateProductImagesHaveSource checks that every product image has a
// non-empty src.
func (p *ProductsPage) ValidateProductImagesHaveSource(ctx context.Context) error {
	if err := p.expectAtLeast(ctx, selectors.ProductImages, 1); err != nil {
		return err
	}
	n, err := p.d.Count(ctx, selectors.ProductImages)
	if err != nil {
		return err
	}
	for i := 1; i <= n; i++ {
		sel := fmt.Sprintf(":nth-match(%s, %d)", selectors.ProductImages, i)
		src, err := p.d.Attribute(ctx, sel, "src")
		if err != nil {
			return err
		}
		if src == "" {
			return fmt.Errorf("product image %d has no src", i)
		}
	}
	return nil
}

func parsePrices(labels []string) ([]models.Cents, error) {
	prices := make([]models.Cents, 0, len(labels))
	for _, label := range labels {
		c, err := models.ParseMoney(label)
		if err != nil {
			return nil, err
		}
		prices = append(prices, c)
	}
	return prices, nil
}

func isSorted[T cmp.Ordered](values []T, order models.Order) bool {
	if order == models.Descending {
		return slices.IsSortedFunc(values, func(a, b T) int { return cmp.Compare(b, a) })
	}
	return slices.IsSorted(values)
}
