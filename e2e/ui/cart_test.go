//go:build e2e

package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swaglabs-qa/storefront-e2e/internal/fixtures"
	"github.com/swaglabs-qa/storefront-e2e/internal/models"
	"github.com/swaglabs-qa/storefront-e2e/internal/pages"
)

// Feature: Shopping cart
//
//	As a shopper
//	I want to add and remove products
//	So that I only buy what I need

func TestCart_BadgeTracksEveryProduct(t *testing.T) {
	// Scenario: The badge counts each add and remove
	//   Given I am signed in
	//   When I add each of the six products
	//   Then the badge should go up by one each time
	//   When I remove them again
	//   Then the badge should go down by one each time
	//   And it should disappear at zero
	h := newHarness(t)
	h.loginAs(t, models.StandardUser)
	ids := fixtures.ProductIDs()

	require.NoError(t, h.Products.ValidateCartItemCount(h.ctx, 0))
	h.addToCart(t, ids...)

	for i, id := range ids {
		require.NoError(t, h.Products.RemoveItemFromCart(h.ctx, id))
		require.NoError(t, h.Products.ValidateCartItemCount(h.ctx, len(ids)-i-1))
		require.NoError(t, h.Products.ValidateAddToCartButtonExists(h.ctx, id))
	}
}

func TestCart_NegativeCountIsRejected(t *testing.T) {
	h := newHarness(t)
	h.loginAs(t, models.StandardUser)

	err := h.Products.ValidateCartItemCount(h.ctx, -1)
	assert.ErrorIs(t, err, pages.ErrNegativeCount)
}

func TestCart_PageManagement(t *testing.T) {
	// Scenario: Managing items on the cart page
	//   Given I have added the backpack and the bike light
	//   When I open the cart
	//   Then both items should be listed with quantity 1
	//   When I remove the bike light
	//   Then only the backpack should remain
	//   When I continue shopping
	//   Then I should be back on the products page
	h := newHarness(t)
	h.loginAs(t, models.StandardUser)
	h.addToCart(t, "sauce-labs-backpack", "sauce-labs-bike-light")

	backpack := fixtures.ProductName("sauce-labs-backpack")
	bikeLight := fixtures.ProductName("sauce-labs-bike-light")

	require.NoError(t, h.Products.ClickShoppingCart(h.ctx))
	require.NoError(t, h.Cart.ValidateCartPageIsDisplayed(h.ctx))
	require.NoError(t, h.Cart.ValidateCartHasItems(h.ctx))
	require.NoError(t, h.Cart.ValidateCartItemCount(h.ctx, 2))
	require.NoError(t, h.Cart.ValidateCartItemExists(h.ctx, backpack))
	require.NoError(t, h.Cart.ValidateCartItemQuantity(h.ctx, backpack, 1))
	require.NoError(t, h.Cart.ValidateRemoveButtonExists(h.ctx, bikeLight))
	require.NoError(t, h.Cart.ValidateCheckoutButtonExists(h.ctx))
	require.NoError(t, h.Cart.ValidateContinueShoppingButtonExists(h.ctx))

	total, err := h.Cart.CartTotal(h.ctx)
	require.NoError(t, err)
	wantBackpack, _ := fixtures.ProductByID("sauce-labs-backpack")
	wantBikeLight, _ := fixtures.ProductByID("sauce-labs-bike-light")
	assert.Equal(t, wantBackpack.Price+wantBikeLight.Price, total)

	require.NoError(t, h.Cart.RemoveItemFromCart(h.ctx, bikeLight))
	require.NoError(t, h.Cart.ValidateCartItemCount(h.ctx, 1))

	names, err := h.Cart.ItemNames(h.ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{backpack}, names)

	require.NoError(t, h.Cart.ClickContinueShopping(h.ctx))
	require.NoError(t, h.Products.ValidateProductsPageIsDisplayed(h.ctx))
	require.NoError(t, h.Products.ValidateCartItemCount(h.ctx, 1))
}

func TestCart_Empty(t *testing.T) {
	// Scenario: Visiting an empty cart
	h := newHarness(t)
	h.loginAs(t, models.StandardUser)

	require.NoError(t, h.Cart.Visit(h.ctx))
	require.NoError(t, h.Cart.ValidateCartPageIsDisplayed(h.ctx))
	require.NoError(t, h.Cart.ValidateCartIsEmpty(h.ctx))
}
