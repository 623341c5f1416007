package pages

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/swaglabs-qa/storefront-e2e/internal/models"
	"github.com/swaglabs-qa/storefront-e2e/internal/selectors"
	"github.com/swaglabs-qa/storefront-e2e/internal/wait"
)

// tolerantTimeout is how long the tolerant checkout helpers wait for the
// complete screen
const tolerantTimeout = 15 * time.Second

// Summary is the price breakdown on the order review screen
type Summary struct {
	Subtotal models.Cents
	Tax      models.Cents
	Total    models.Cents
}

// Balanced reports whether subtotal plus tax equals the total
func (s Summary) Balanced() bool {
	return s.Subtotal+s.Tax == s.Total
}

// String renders the summary as item total + tax = total
func (s Summary) String() string {
	return fmt.Sprintf("subtotal %s + tax %s = total %s", s.Subtotal, s.Tax, s.Total)
}

// CheckoutPage covers the three checkout screens
type CheckoutPage struct {
	page
}

// VisitStepOne opens the information form
func (c *CheckoutPage) VisitStepOne(ctx context.Context) error {
	return c.visit(ctx, models.StepOne.Path())
}

// VisitStepTwo opens the order review
func (c *CheckoutPage) VisitStepTwo(ctx context.Context) error {
	return c.visit(ctx, models.StepTwo.Path())
}

// VisitComplete opens the confirmation screen
func (c *CheckoutPage) VisitComplete(ctx context.Context) error {
	return c.visit(ctx, models.StepComplete.Path())
}

// EnterFirstName fills the first name field
func (c *CheckoutPage) EnterFirstName(ctx context.Context, v string) error {
	return c.fill(ctx, selectors.FirstNameInput, v)
}

// EnterLastName fills the last name field
func (c *CheckoutPage) EnterLastName(ctx context.Context, v string) error {
	return c.fill(ctx, selectors.LastNameInput, v)
}

// EnterPostalCode fills the postal code field
func (c *CheckoutPage) EnterPostalCode(ctx context.Context, v string) error {
	return c.fill(ctx, selectors.PostalCodeInput, v)
}

// ClickContinue submits the information form
func (c *CheckoutPage) ClickContinue(ctx context.Context) error {
	return c.click(ctx, selectors.ContinueButton)
}

// ClickCancel leaves the current step. Step one returns to the cart and step
// two to the catalog.
func (c *CheckoutPage) ClickCancel(ctx context.Context) error {
	return c.click(ctx, selectors.CancelButton)
}

// FillCheckoutInformation fills the three fields in order and continues
func (c *CheckoutPage) FillCheckoutInformation(ctx context.Context, info models.CheckoutInfo) error {
	if err := c.EnterFirstName(ctx, info.FirstName); err != nil {
		return err
	}
	if err := c.EnterLastName(ctx, info.LastName); err != nil {
		return err
	}
	if err := c.EnterPostalCode(ctx, info.PostalCode); err != nil {
		return err
	}
	return c.ClickContinue(ctx)
}

// ClickFinish places the order
func (c *CheckoutPage) ClickFinish(ctx context.Context) error {
	return c.click(ctx, selectors.FinishButton)
}

// ClickFinishTolerant finishes the order on storefront variants whose finish
// button drifts. It is a no-op on the complete screen, tries each finish
// button variant in order, and navigates to the complete screen when none
// is present. The buttons are checked once, not polled.
func (c *CheckoutPage) ClickFinishTolerant(ctx context.Context) error {
	done, err := c.d.Count(ctx, selectors.CompleteContainer)
	if err != nil {
		return err
	}
	if done > 0 {
		return nil
	}

	sel, err := c.firstPresent(ctx, selectors.FinishButtons)
	if errors.Is(err, ErrNoCandidate) {
		return c.VisitComplete(ctx)
	}
	if err != nil {
		return err
	}
	return c.click(ctx, sel)
}

// ClickBackHome leaves the confirmation screen for the inventory
func (c *CheckoutPage) ClickBackHome(ctx context.Context) error {
	return c.click(ctx, selectors.BackHomeButton)
}

// CloseErrorMessage dismisses the form error banner
func (c *CheckoutPage) CloseErrorMessage(ctx context.Context) error {
	return c.click(ctx, selectors.CheckoutErrorButton)
}

// CurrentStep maps the current URL to its checkout screen
func (c *CheckoutPage) CurrentStep(ctx context.Context) (models.CheckoutStep, error) {
	u, err := c.d.URL(ctx)
	if err != nil {
		return models.StepUnknown, err
	}
	return models.StepForPath(u), nil
}

// ValidateStep waits until the browser shows step
func (c *CheckoutPage) ValidateStep(ctx context.Context, step models.CheckoutStep) error {
	return wait.Equal(ctx, c.opts, "checkout step", step, c.CurrentStep)
}

// ValidateStepOneIsDisplayed waits for the information form
func (c *CheckoutPage) ValidateStepOneIsDisplayed(ctx context.Context) error {
	for _, sel := range []string{
		selectors.CheckoutInfoContainer,
		selectors.FirstNameInput,
		selectors.LastNameInput,
		selectors.PostalCodeInput,
		selectors.ContinueButton,
	} {
		if err := c.expectVisible(ctx, sel); err != nil {
			return err
		}
	}
	return c.expectURLContains(ctx, models.StepOne.Path())
}

// ValidateErrorMessage waits for the banner to contain want
func (c *CheckoutPage) ValidateErrorMessage(ctx context.Context, want string) error {
	return c.expectTextContains(ctx, selectors.CheckoutErrorMessage, want)
}

// ValidateErrorMessageIsDisplayed waits for the form error banner
func (c *CheckoutPage) ValidateErrorMessageIsDisplayed(ctx context.Context) error {
	return c.expectVisible(ctx, selectors.CheckoutErrorMessage)
}

// ValidateStepTwoIsDisplayed waits for the order review
func (c *CheckoutPage) ValidateStepTwoIsDisplayed(ctx context.Context) error {
	if err := c.expectVisible(ctx, selectors.SummaryContainer); err != nil {
		return err
	}
	if err := c.expectVisible(ctx, selectors.FinishButton); err != nil {
		return err
	}
	return c.expectURLContains(ctx, models.StepTwo.Path())
}

// ValidateOrderSummary waits for at least one item and the three price labels
func (c *CheckoutPage) ValidateOrderSummary(ctx context.Context) error {
	if err := c.expectAtLeast(ctx, selectors.SummaryItems, 1); err != nil {
		return err
	}
	for _, sel := range []string{selectors.SummarySubtotal, selectors.SummaryTax, selectors.SummaryTotal} {
		if err := c.expectVisible(ctx, sel); err != nil {
			return err
		}
	}
	return nil
}

// ValidateCartItemInSummary waits for name in the review list
func (c *CheckoutPage) ValidateCartItemInSummary(ctx context.Context, name string) error {
	return c.expectVisible(ctx, selectors.SummaryItemByName(name))
}

// Summary reads the price breakdown
func (c *CheckoutPage) Summary(ctx context.Context) (Summary, error) {
	var s Summary
	for sel, dst := range map[string]*models.Cents{
		selectors.SummarySubtotal: &s.Subtotal,
		selectors.SummaryTax:      &s.Tax,
		selectors.SummaryTotal:    &s.Total,
	} {
		label, err := c.firstText(ctx, sel)
		if err != nil {
			return Summary{}, err
		}
		if *dst, err = models.ParseMoney(label); err != nil {
			return Summary{}, err
		}
	}
	return s, nil
}

// ValidateTotalCalculation waits until subtotal plus tax equals the total,
// compared in cents
func (c *CheckoutPage) ValidateTotalCalculation(ctx context.Context) error {
	_, err := wait.Until(ctx, c.opts, "order total", "subtotal + tax == total",
		func(ctx context.Context) (Summary, bool, error) {
			s, err := c.Summary(ctx)
			return s, err == nil && s.Balanced(), err
		})
	return err
}

// ValidateCheckoutCompleteIsDisplayed waits for every part of the confirmation screen
func (c *CheckoutPage) ValidateCheckoutCompleteIsDisplayed(ctx context.Context) error {
	for _, sel := range []string{
		selectors.CompleteContainer,
		selectors.CompleteHeader,
		selectors.CompleteText,
		selectors.BackHomeButton,
	} {
		if err := c.expectVisible(ctx, sel); err != nil {
			return err
		}
	}
	return c.expectURLContains(ctx, models.StepComplete.Path())
}

// ValidateCheckoutCompleteTolerant waits longer for the complete screen and
// only checks the header, text and back button when they render.
func (c *CheckoutPage) ValidateCheckoutCompleteTolerant(ctx context.Context) error {
	slow := c.page
	slow.opts = c.opts.WithTimeout(max(c.opts.Timeout, tolerantTimeout))

	if err := slow.expectVisible(ctx, selectors.CompleteContainer); err != nil {
		return err
	}
	if err := slow.expectURLContains(ctx, models.StepComplete.Path()); err != nil {
		return err
	}
	for _, sel := range []string{selectors.CompleteHeader, selectors.CompleteText, selectors.BackHomeButton} {
		n, err := c.d.Count(ctx, sel)
		if err != nil {
			return err
		}
		if n == 0 {
			continue
		}
		if err := c.expectVisible(ctx, sel); err != nil {
			return err
		}
	}
	return nil
}

// ValidateOrderCompletionMessage checks the thank-you header and text
func (c *CheckoutPage) ValidateOrderCompletionMessage(ctx context.Context) error {
	if err := c.expectTextContains(ctx, selectors.CompleteHeader, selectors.CompleteHeaderText); err != nil {
		return err
	}
	return c.expectTextContains(ctx, selectors.CompleteText, selectors.CompleteBodyText)
}

// ValidatePonyExpressImage waits for the confirmation image
func (c *CheckoutPage) ValidatePonyExpressImage(ctx context.Context) error {
	return c.expectVisible(ctx, selectors.PonyExpressImage)
}
