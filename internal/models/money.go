package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Cents is a dollar amount in minor units. Prices shown by the store always
// carry exactly two decimals, so summary arithmetic stays exact.
type Cents int64

// ErrInvalidMoney is returned when a label does not contain a dollar amount
var ErrInvalidMoney = errors.New("invalid money amount")

// ParseMoney extracts the amount following the last "$" in a label such as
// "Item total: $29.99" or "$7.99".
func ParseMoney(label string) (Cents, error) {
	idx := strings.LastIndex(label, "$")
	if idx < 0 {
		return 0, fmt.Errorf("%w: no currency sign in %q", ErrInvalidMoney, label)
	}
	raw := strings.TrimSpace(label[idx+1:])

	whole, frac, found := strings.Cut(raw, ".")
	if !isDigits(whole) || (found && !isDigits(frac)) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMoney, label)
	}
	if !found {
		frac = "00"
	}
	if len(frac) == 1 {
		frac += "0"
	}
	if len(frac) != 2 {
		return 0, fmt.Errorf("%w: %q must have two decimals", ErrInvalidMoney, label)
	}

	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMoney, label)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMoney, label)
	}

	return Cents(dollars*100 + cents), nil
}

// isDigits reports a non-empty run of ASCII digits. Signs are not amounts
// the store shows.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MustParseMoney is ParseMoney for literals known to be valid
func MustParseMoney(label string) Cents {
	c, err := ParseMoney(label)
	if err != nil {
		panic(err)
	}
	return c
}

// String formats the amount the way the store renders it
func (c Cents) String() string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s$%d.%02d", sign, c/100, c%100)
}

// MarshalJSON renders the amount as a decimal number, e.g. 29.99
func (c Cents) MarshalJSON() ([]byte, error) {
	s := c.String()
	s = strings.Replace(s, "$", "", 1)
	return []byte(s), nil
}

// UnmarshalJSON accepts a decimal number or a "$29.99" string
func (c *Cents) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		raw = string(data)
	}
	parsed, err := ParseMoney("$" + strings.TrimPrefix(raw, "$"))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// UnmarshalYAML accepts 29.99, "29.99" or "$29.99"
func (c *Cents) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: expected scalar at line %d", ErrInvalidMoney, value.Line)
	}
	parsed, err := ParseMoney("$" + strings.TrimPrefix(value.Value, "$"))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
