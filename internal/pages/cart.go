package pages

import (
	"context"
	"strconv"
	"strings"

	"github.com/swaglabs-qa/storefront-e2e/internal/models"
	"github.com/swaglabs-qa/storefront-e2e/internal/selectors"
	"github.com/swaglabs-qa/storefront-e2e/internal/wait"
)

// CartPage lists the items in the cart
type CartPage struct {
	page
}

// Visit opens /cart.html
func (c *CartPage) Visit(ctx context.Context) error {
	return c.visit(ctx, models.StepCart.Path())
}

// RemoveItemFromCart removes the named item. The button is looked up by the
// slug of the name, then by the raw name, then by its label.
func (c *CartPage) RemoveItemFromCart(ctx context.Context, name string) error {
	return c.clickFirst(ctx, selectors.CartRemoveButton(name))
}

// ClickCheckout starts checkout from the cart
func (c *CartPage) ClickCheckout(ctx context.Context) error {
	return c.click(ctx, selectors.CheckoutButton)
}

// ClickContinueShopping returns to the inventory
func (c *CartPage) ClickContinueShopping(ctx context.Context) error {
	return c.click(ctx, selectors.ContinueShopping)
}

// ItemNames returns the names of the items in the cart
func (c *CartPage) ItemNames(ctx context.Context) ([]string, error) {
	names, err := c.d.Texts(ctx, selectors.CartItemNames)
	if err != nil {
		return nil, err
	}
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	return names, nil
}

// CartTotal sums the prices of the listed items
func (c *CartPage) CartTotal(ctx context.Context) (models.Cents, error) {
	labels, err := c.d.Texts(ctx, selectors.CartItemPrices)
	if err != nil {
		return 0, err
	}
	prices, err := parsePrices(labels)
	if err != nil {
		return 0, err
	}
	var total models.Cents
	for _, p := range prices {
		total += p
	}
	return total, nil
}

// ValidateCartPageIsDisplayed waits for a cart container. When neither
// container variant renders, the cart URL together with the app logo is
// accepted instead.
func (c *CartPage) ValidateCartPageIsDisplayed(ctx context.Context) error {
	_, err := wait.Until(ctx, c.opts, "cart page", "a cart container or the cart url",
		func(ctx context.Context) (string, bool, error) {
			for _, sel := range selectors.CartContainers {
				visible, err := c.d.IsVisible(ctx, sel)
				if err != nil {
					return "", false, err
				}
				if visible {
					return sel, true, nil
				}
			}
			u, err := c.d.URL(ctx)
			if err != nil || !strings.Contains(u, models.StepCart.Path()) {
				return u, false, err
			}
			logo, err := c.d.Texts(ctx, selectors.AppLogo)
			if err != nil {
				return u, false, err
			}
			return u, strings.Contains(strings.Join(logo, " "), selectors.PageTitleSwagLabs), nil
		})
	return err
}

// ValidateCartIsEmpty waits until no item is listed
func (c *CartPage) ValidateCartIsEmpty(ctx context.Context) error {
	return c.expectAbsent(ctx, selectors.CartItems)
}

// ValidateCartHasItems waits for at least one item
func (c *CartPage) ValidateCartHasItems(ctx context.Context) error {
	return c.expectAtLeast(ctx, selectors.CartItems, 1)
}

// ValidateCartItemExists waits for an item called name
func (c *CartPage) ValidateCartItemExists(ctx context.Context, name string) error {
	return c.expectVisible(ctx, selectors.CartItemByName(name))
}

// ValidateCartItemCount checks the cart badge, absent at zero
func (c *CartPage) ValidateCartItemCount(ctx context.Context, n int) error {
	return c.expectBadge(ctx, n)
}

// ValidateCartItemQuantity checks the quantity of the named item. When the
// item renders no quantity element it only has to be visible.
func (c *CartPage) ValidateCartItemQuantity(ctx context.Context, name string, quantity int) error {
	want := strconv.Itoa(quantity)
	_, err := wait.Until(ctx, c.opts, name+" quantity", want, func(ctx context.Context) (string, bool, error) {
		n, err := c.d.Count(ctx, selectors.CartItemQuantity(name))
		if err != nil {
			return "", false, err
		}
		if n == 0 {
			visible, err := c.d.IsVisible(ctx, selectors.CartItemByName(name))
			return "no quantity element", visible, err
		}
		got, err := c.firstText(ctx, selectors.CartItemQuantity(name))
		return got, err == nil && got == want, err
	})
	return err
}

// ValidateCheckoutButtonExists waits for the checkout button
func (c *CartPage) ValidateCheckoutButtonExists(ctx context.Context) error {
	return c.expectVisible(ctx, selectors.CheckoutButton)
}

// ValidateContinueShoppingButtonExists waits for the continue shopping button
func (c *CartPage) ValidateContinueShoppingButtonExists(ctx context.Context) error {
	return c.expectVisible(ctx, selectors.ContinueShopping)
}

// ValidateRemoveButtonExists waits for any remove button variant of the
// named item to be visible.
func (c *CartPage) ValidateRemoveButtonExists(ctx context.Context, name string) error {
	sel, err := c.resolve(ctx, selectors.CartRemoveButton(name))
	if err != nil {
		return err
	}
	return c.expectVisible(ctx, sel)
}
