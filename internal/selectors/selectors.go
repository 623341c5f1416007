// Package selectors holds the locator strings for every screen of the store.
//
// Locators use Playwright selector syntax. Entries that depend on an item are
// functions of that item's identifier; none of them check that the item
// exists, a missing element only surfaces when a page object queries it.
package selectors

import (
	"fmt"
	"regexp"
	"strings"
)

// Candidates is an ordered list of locators for one element. The first entry
// that resolves wins and the remaining ones are not consulted.
type Candidates []string

// Shared chrome present on every authenticated screen
const (
	AppLogo            = ".app_logo"
	ShoppingCartLink   = `[data-test="shopping-cart-link"]`
	ShoppingCartBadge  = ".shopping_cart_badge"
	BackToProducts     = `[data-test="back-to-products"]`
	PageTitleSwagLabs  = "Swag Labs"
	ErrorMessage       = `[data-test="error"]`
	ErrorMessageButton = `[data-test="error-button"]`
)

var (
	whitespace = regexp.MustCompile(`\s+`)
	nonWord    = regexp.MustCompile(`[^\w-]`)
)

// Slug derives a data-test suffix from a display name: lower case, runs of
// whitespace become "-", and anything outside [A-Za-z0-9_-] is dropped.
func Slug(name string) string {
	s := strings.ToLower(name)
	s = whitespace.ReplaceAllString(s, "-")
	return nonWord.ReplaceAllString(s, "")
}

func dataTest(value string) string {
	return fmt.Sprintf(`[data-test="%s"]`, value)
}

// hasText narrows base to elements containing text
func hasText(base, text string) string {
	return fmt.Sprintf(`%s:has-text(%q)`, base, text)
}

// textIs narrows base to elements whose whole text equals text
func textIs(base, text string) string {
	return fmt.Sprintf(`%s:text-is(%q)`, base, text)
}
