package models

import (
	"errors"
	"fmt"
	"strings"
)

// CheckoutInfo holds the three fields of the first checkout step
type CheckoutInfo struct {
	FirstName  string `yaml:"firstName" json:"firstName"`
	LastName   string `yaml:"lastName" json:"lastName"`
	PostalCode string `yaml:"postalCode" json:"postalCode"`
}

// Checkout form validation messages, in the order the store checks them
const (
	MsgFirstNameRequired  = "Error: First Name is required"
	MsgLastNameRequired   = "Error: Last Name is required"
	MsgPostalCodeRequired = "Error: Postal Code is required"
)

// FirstMissingField returns the first empty field in validation order,
// or an empty string when the form is complete.
func (c CheckoutInfo) FirstMissingField() string {
	switch {
	case c.FirstName == "":
		return "firstName"
	case c.LastName == "":
		return "lastName"
	case c.PostalCode == "":
		return "postalCode"
	}
	return ""
}

// ExpectedError returns the message the store shows for this form,
// empty when the form passes validation.
func (c CheckoutInfo) ExpectedError() string {
	switch c.FirstMissingField() {
	case "firstName":
		return MsgFirstNameRequired
	case "lastName":
		return MsgLastNameRequired
	case "postalCode":
		return MsgPostalCodeRequired
	}
	return ""
}

// CheckoutStep is a screen in the checkout flow
type CheckoutStep string

// Checkout flow screens
const (
	StepCatalog  CheckoutStep = "catalog"
	StepCart     CheckoutStep = "cart"
	StepOne      CheckoutStep = "step-one"
	StepTwo      CheckoutStep = "step-two"
	StepComplete CheckoutStep = "complete"
	StepUnknown  CheckoutStep = "unknown"
)

// ErrInvalidTransition is returned for an edge the checkout flow does not have
var ErrInvalidTransition = errors.New("invalid checkout transition")

var stepPaths = map[CheckoutStep]string{
	StepCatalog:  "/inventory.html",
	StepCart:     "/cart.html",
	StepOne:      "/checkout-step-one.html",
	StepTwo:      "/checkout-step-two.html",
	StepComplete: "/checkout-complete.html",
}

// Path returns the canonical path of the screen
func (s CheckoutStep) Path() string {
	return stepPaths[s]
}

// StepForPath maps a URL to the checkout screen it shows
func StepForPath(url string) CheckoutStep {
	for step, path := range stepPaths {
		if strings.Contains(url, path) {
			return step
		}
	}
	return StepUnknown
}

// Checkout starts the flow from the cart
func (s CheckoutStep) Checkout() (CheckoutStep, error) {
	if s != StepCart {
		return s, fmt.Errorf("%w: checkout from %s", ErrInvalidTransition, s)
	}
	return StepOne, nil
}

// Continue advances from step one to the order review. Info is validated
// first, so an incomplete form keeps the flow on step one.
func (s CheckoutStep) Continue(info CheckoutInfo) (CheckoutStep, error) {
	if s != StepOne {
		return s, fmt.Errorf("%w: continue from %s", ErrInvalidTransition, s)
	}
	if msg := info.ExpectedError(); msg != "" {
		return StepOne, errors.New(msg)
	}
	return StepTwo, nil
}

// Cancel leaves the flow: step one returns to the cart, the review returns
// to the catalog.
func (s CheckoutStep) Cancel() (CheckoutStep, error) {
	switch s {
	case StepOne:
		return StepCart, nil
	case StepTwo:
		return StepCatalog, nil
	}
	return s, fmt.Errorf("%w: cancel from %s", ErrInvalidTransition, s)
}

// Finish places the order
func (s CheckoutStep) Finish() (CheckoutStep, error) {
	if s != StepTwo {
		return s, fmt.Errorf("%w: finish from %s", ErrInvalidTransition, s)
	}
	return StepComplete, nil
}

// BackHome returns from the confirmation screen to the catalog
func (s CheckoutStep) BackHome() (CheckoutStep, error) {
	if s != StepComplete {
		return s, fmt.Errorf("%w: back home from %s", ErrInvalidTransition, s)
	}
	return StepCatalog, nil
}
