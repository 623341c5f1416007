package selectors

// Inventory screen
const (
	ProductsContainer     = ".inventory_container"
	ProductsList          = ".inventory_list"
	ProductItems          = ".inventory_item"
	ProductNames          = ".inventory_item_name"
	ProductPrices         = ".inventory_item_price"
	ProductDescriptions   = ".inventory_item_desc"
	ProductImages         = ".inventory_item_img img"
	AddToCartButtons      = `[data-test*="add-to-cart"]`
	RemoveFromCartButtons = `[data-test*="remove"]`
	SortDropdown          = `[data-test="product-sort-container"]`
	ActiveSortOption      = `[data-test="active-option"]`
)

// AddToCartButton locates the add button of the product with the given id
func AddToCartButton(productID string) string {
	return dataTest("add-to-cart-" + productID)
}

// RemoveButton locates the remove button of the product with the given id
func RemoveButton(productID string) string {
	return dataTest("remove-" + productID)
}

// ProductByName locates the inventory card whose title is name
func ProductByName(name string) string {
	return ProductItems + ":has(" + textIs(ProductNames, name) + ")"
}

// ProductNameLink locates the clickable title of a product
func ProductNameLink(name string) string {
	return textIs(ProductNames, name)
}

// ProductPrice locates the price label on the card of the named product
func ProductPrice(name string) string {
	return ProductByName(name) + " " + ProductPrices
}

// Product detail screen
const (
	DetailContainer   = ".inventory_details"
	DetailName        = ".inventory_details_name"
	DetailPrice       = ".inventory_details_price"
	DetailDescription = ".inventory_details_desc"
	DetailImage       = ".inventory_details_img"
)

// DetailAddToCart lists the add-to-cart button variants seen on the detail
// screen, most specific first.
func DetailAddToCart(productID string) Candidates {
	return Candidates{
		AddToCartButton(productID),
		dataTest("add-to-cart"),
		".btn_primary.btn_inventory",
		hasText("button", "Add to cart"),
	}
}

// DetailRemove lists the remove button variants on the detail screen
func DetailRemove(productID string) Candidates {
	return Candidates{
		RemoveButton(productID),
		dataTest("remove"),
		hasText("button", "Remove"),
	}
}

// Burger menu
const (
	MenuButton      = "#react-burger-menu-btn"
	MenuContainer   = ".bm-menu"
	MenuCloseButton = "#react-burger-cross-btn"
	MenuAllItems    = `[data-test="inventory-sidebar-link"]`
	MenuAbout       = `[data-test="about-sidebar-link"]`
	MenuLogout      = `[data-test="logout-sidebar-link"]`
	MenuReset       = `[data-test="reset-sidebar-link"]`
)

// MenuLogoutLink lists the logout link variants
var MenuLogoutLink = Candidates{MenuLogout, "#logout_sidebar_link"}
