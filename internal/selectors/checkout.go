package selectors

// Checkout step one (your information)
const (
	CheckoutInfoContainer = ".checkout_info_container"
	FirstNameInput        = `[data-test="firstName"]`
	LastNameInput         = `[data-test="lastName"]`
	PostalCodeInput       = `[data-test="postalCode"]`
	ContinueButton        = `[data-test="continue"]`
	CancelButton          = `[data-test="cancel"]`
	CheckoutErrorMessage  = ErrorMessage
	CheckoutErrorButton   = ErrorMessageButton
)

// Checkout step two (overview)
const (
	SummaryContainer = ".checkout_summary_container"
	SummaryItems     = ".cart_item"
	SummaryItemNames = ".inventory_item_name"
	SummarySubtotal  = ".summary_subtotal_label"
	SummaryTax       = ".summary_tax_label"
	SummaryTotal     = ".summary_total_label"
	FinishButton     = `[data-test="finish"]`
)

// Checkout complete
const (
	CompleteContainer = ".checkout_complete_container"
	CompleteHeader    = ".complete-header"
	CompleteText      = ".complete-text"
	BackHomeButton    = BackToProducts
	PonyExpressImage  = ".pony_express"
)

// Texts shown on the confirmation screen
const (
	CompleteHeaderText = "Thank you for your order!"
	CompleteBodyText   = "Your order has been dispatched"
)

// FinishButtons lists finish button variants. Some accounts render the
// overview with different markup, so generic action buttons follow the
// data-test locator.
var FinishButtons = Candidates{
	FinishButton,
	".btn_action.cart_button",
	".btn_action",
	hasText("button", "Finish"),
	`input[type="submit"]`,
}

// SummaryItemByName locates an overview row by item name
func SummaryItemByName(name string) string {
	return textIs(SummaryItemNames, name)
}
