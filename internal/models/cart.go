package models

import "fmt"

// CartLine is one product in a cart payload
type CartLine struct {
	ID       string `yaml:"id" json:"id" validate:"required"`
	Name     string `yaml:"name" json:"name" validate:"required"`
	Price    Cents  `yaml:"price" json:"price" validate:"gt=0"`
	Quantity int    `yaml:"quantity" json:"quantity" validate:"gte=1"`
}

// Cart is a cart payload as the mocked cart endpoints return it
type Cart struct {
	Items    []CartLine `yaml:"items" json:"items" validate:"dive"`
	Subtotal Cents      `yaml:"subtotal" json:"subtotal"`
	Tax      Cents      `yaml:"tax" json:"tax"`
	Total    Cents      `yaml:"total" json:"total"`
}

// ItemCount returns the number of units across all lines
func (c Cart) ItemCount() int {
	n := 0
	for _, line := range c.Items {
		n += line.Quantity
	}
	return n
}

// Verify checks that the line prices add up to the subtotal and that
// subtotal plus tax equals the total.
func (c Cart) Verify() error {
	var sum Cents
	for _, line := range c.Items {
		sum += line.Price * Cents(line.Quantity)
	}
	if sum != c.Subtotal {
		return fmt.Errorf("cart subtotal %s does not match line items %s", c.Subtotal, sum)
	}
	if c.Subtotal+c.Tax != c.Total {
		return fmt.Errorf("cart total %s does not equal subtotal %s + tax %s", c.Total, c.Subtotal, c.Tax)
	}
	return nil
}
