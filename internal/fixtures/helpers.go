package fixtures

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/swaglabs-qa/storefront-e2e/internal/models"
)

// EnvFixturesDir names the variable that replaces the embedded fixtures
// with a directory of the same files.
const EnvFixturesDir = "FIXTURES_DIR"

var defaultBundle = sync.OnceValues(func() (*Bundle, error) {
	return loadDefault(os.Getenv)
})

func loadDefault(getenv func(string) string) (*Bundle, error) {
	return Open(getenv(EnvFixturesDir)).LoadBundle(context.Background())
}

// Default returns the fixtures of this process: the FIXTURES_DIR directory
// when set, the embedded files otherwise. It is loaded once and panics if
// the files are invalid.
func Default() *Bundle {
	b, err := defaultBundle()
	if err != nil {
		panic(fmt.Sprintf("fixtures are invalid: %v", err))
	}
	return b
}

// ValidUser returns the credentials of a demo account, falling back to the
// standard user for unknown kinds.
func (b *Bundle) ValidUser(kind models.UserKind) models.User {
	users := b.Users.ValidUsers
	if u, ok := users[kind]; ok {
		return u
	}
	return users[models.StandardUser]
}

// InvalidUser returns credentials the store rejects
func (b *Bundle) InvalidUser() models.User {
	return b.Users.InvalidUsers["invalid_user"]
}

// Catalog returns a copy of the products in inventory order
func (b *Bundle) Catalog() []models.Product {
	src := b.Products.Products
	out := make([]models.Product, len(src))
	copy(out, src)
	return out
}

// ProductIDs returns the data-test ids of every catalog item
func (b *Bundle) ProductIDs() []string {
	ids := make([]string, 0, len(b.Products.Products))
	for _, p := range b.Products.Products {
		ids = append(ids, p.ID)
	}
	return ids
}

// ProductNames returns the display names of every catalog item
func (b *Bundle) ProductNames() []string {
	names := make([]string, 0, len(b.Products.Products))
	for _, p := range b.Products.Products {
		names = append(names, p.Name)
	}
	return names
}

// ProductByID looks a catalog item up by its id
func (b *Bundle) ProductByID(id string) (models.Product, bool) {
	for _, p := range b.Products.Products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// ProductName returns the display name for id, or id itself when unknown
func (b *Bundle) ProductName(id string) string {
	if p, ok := b.ProductByID(id); ok {
		return p.Name
	}
	return id
}

// RandomProduct picks one catalog item
func (b *Bundle) RandomProduct() models.Product {
	products := b.Products.Products
	return products[gofakeit.Number(0, len(products)-1)]
}

// CheckoutInfo returns the default customer used by the happy-path specs
func (b *Bundle) CheckoutInfo() models.CheckoutInfo {
	return b.Users.Checkout.CustomerInfo
}

// RandomCheckoutInfo picks a customer from the fixture pools
func (b *Bundle) RandomCheckoutInfo() models.CheckoutInfo {
	pools := b.Users.Checkout.Random
	return models.CheckoutInfo{
		FirstName:  gofakeit.RandomString(pools.FirstNames),
		LastName:   gofakeit.RandomString(pools.LastNames),
		PostalCode: gofakeit.RandomString(pools.PostalCodes),
	}
}

// MockProductFor returns the backpack in the requested scenario. Unknown
// scenarios return the default product.
func (b *Bundle) MockProductFor(scenario string) MockProduct {
	backpack, _ := b.ProductByID("sauce-labs-backpack")
	p := MockProduct{Product: backpack, InStock: true}

	switch scenario {
	case ProductOutOfStock:
		p.InStock = false
	case ProductDiscounted:
		p.OriginalPrice = backpack.Price
		p.Price = models.MustParseMoney("$9.99")
		p.Discount = 67
	}
	return p
}

// MockCart returns the named cart, or the empty cart for unknown names
func (b *Bundle) MockCart(scenario string) models.Cart {
	carts := b.Carts.Carts
	if c, ok := carts[scenario]; ok {
		return c
	}
	return carts[CartEmpty]
}

// MockAPIResponse returns a canned response for endpoint ("auth",
// "products", "cart", "checkout") and scenario.
func (b *Bundle) MockAPIResponse(endpoint, scenario string) (Payload, error) {
	return b.Responses.Response(endpoint, scenario)
}

// ValidUser reads the Default bundle
func ValidUser(kind models.UserKind) models.User {
	return Default().ValidUser(kind)
}

// InvalidUser reads the Default bundle
func InvalidUser() models.User {
	return Default().InvalidUser()
}

// Products reads the Default bundle
func Products() []models.Product {
	return Default().Catalog()
}

// ProductIDs reads the Default bundle
func ProductIDs() []string {
	return Default().ProductIDs()
}

// ProductNames reads the Default bundle
func ProductNames() []string {
	return Default().ProductNames()
}

// ProductByID reads the Default bundle
func ProductByID(id string) (models.Product, bool) {
	return Default().ProductByID(id)
}

// ProductName reads the Default bundle
func ProductName(id string) string {
	return Default().ProductName(id)
}

// RandomProduct reads the Default bundle
func RandomProduct() models.Product {
	return Default().RandomProduct()
}

// CheckoutInfo reads the Default bundle
func CheckoutInfo() models.CheckoutInfo {
	return Default().CheckoutInfo()
}

// RandomCheckoutInfo reads the Default bundle
func RandomCheckoutInfo() models.CheckoutInfo {
	return Default().RandomCheckoutInfo()
}

// MockProductFor reads the Default bundle
func MockProductFor(scenario string) MockProduct {
	return Default().MockProductFor(scenario)
}

// MockCart reads the Default bundle
func MockCart(scenario string) models.Cart {
	return Default().MockCart(scenario)
}

// MockAPIResponse reads the Default bundle
func MockAPIResponse(endpoint, scenario string) (Payload, error) {
	return Default().MockAPIResponse(endpoint, scenario)
}

// FakeCheckoutInfo generates a customer that is not in any pool
func FakeCheckoutInfo() models.CheckoutInfo {
	return models.CheckoutInfo{
		FirstName:  gofakeit.FirstName(),
		LastName:   gofakeit.LastName(),
		PostalCode: gofakeit.Zip(),
	}
}

// RandomEmail returns an address on the example.com domain
func RandomEmail() string {
	return fmt.Sprintf("test%d@example.com", gofakeit.Number(1, 9999999))
}

// RandomString returns n alphanumeric characters
func RandomString(n int) string {
	if n <= 0 {
		return ""
	}
	return gofakeit.Password(true, true, true, false, false, n)
}

// RandomNumber returns an integer in [min, max]
func RandomNumber(min, max int) int {
	if min > max {
		min, max = max, min
	}
	return gofakeit.Number(min, max)
}

// Timestamp returns the current time in RFC 3339, used to tag artifacts
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// MockProduct is a catalog item as the mocked products endpoint returns it
type MockProduct struct {
	models.Product
	InStock       bool         `json:"inStock"`
	OriginalPrice models.Cents `json:"originalPrice,omitempty"`
	Discount      int          `json:"discount,omitempty"`
}

// Mock product scenarios
const (
	ProductDefault    = "default"
	ProductOutOfStock = "outOfStock"
	ProductDiscounted = "discounted"
)

// Mock cart scenarios
const (
	CartEmpty         = "empty"
	CartSingleItem    = "singleItem"
	CartMultipleItems = "multipleItems"
)
