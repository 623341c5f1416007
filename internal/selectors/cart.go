package selectors

// Cart screen
const (
	CartContainer      = ".cart_contents_container"
	CartList           = ".cart_list"
	CartItems          = ".cart_item"
	CartItemNames      = ".inventory_item_name"
	CartItemPrices     = ".inventory_item_price"
	CartItemQuantities = ".cart_quantity"
	CheckoutButton     = `[data-test="checkout"]`
	ContinueShopping   = `[data-test="continue-shopping"]`
)

// CartContainers lists the containers that identify the cart screen
var CartContainers = Candidates{CartContainer, CartList}

// CartItemByName locates the cart row of the named item
func CartItemByName(name string) string {
	return CartItems + ":has(" + textIs(CartItemNames, name) + ")"
}

// CartItemQuantity locates the quantity cell of the named item
func CartItemQuantity(name string) string {
	return CartItemByName(name) + " " + CartItemQuantities
}

// CartRemoveButton lists remove button variants for a cart row, keyed by the
// slug of the display name, then by the raw name, then by button text.
func CartRemoveButton(itemName string) Candidates {
	return Candidates{
		RemoveButton(Slug(itemName)),
		RemoveButton(itemName),
		hasText("button", "Remove"),
	}
}
