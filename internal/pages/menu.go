package pages

import (
	"context"

	"github.com/swaglabs-qa/storefront-e2e/internal/selectors"
)

// Menu is the burger side menu available on every signed-in screen
type Menu struct {
	page
}

// Open clicks the burger button and waits for the menu to slide in
func (m *Menu) Open(ctx context.Context) error {
	if err := m.click(ctx, selectors.MenuButton); err != nil {
		return err
	}
	return m.ValidateIsOpen(ctx)
}

// Close clicks the cross button and waits for the menu to hide
func (m *Menu) Close(ctx context.Context) error {
	if err := m.click(ctx, selectors.MenuCloseButton); err != nil {
		return err
	}
	return m.ValidateIsClosed(ctx)
}

// Logout signs the user out through the menu
func (m *Menu) Logout(ctx context.Context) error {
	if err := m.Open(ctx); err != nil {
		return err
	}
	return m.clickFirst(ctx, selectors.MenuLogoutLink)
}

// ResetAppState clears the cart through the menu
func (m *Menu) ResetAppState(ctx context.Context) error {
	if err := m.Open(ctx); err != nil {
		return err
	}
	return m.click(ctx, selectors.MenuReset)
}

// AllItems returns to the inventory through the menu
func (m *Menu) AllItems(ctx context.Context) error {
	if err := m.Open(ctx); err != nil {
		return err
	}
	return m.click(ctx, selectors.MenuAllItems)
}

// ValidateIsOpen waits until the menu is visible
func (m *Menu) ValidateIsOpen(ctx context.Context) error {
	return m.expectVisible(ctx, selectors.MenuContainer)
}

// ValidateIsClosed waits until the menu is hidden
func (m *Menu) ValidateIsClosed(ctx context.Context) error {
	return m.expectHidden(ctx, selectors.MenuContainer)
}

// AboutLinkHref returns where the About entry points
func (m *Menu) AboutLinkHref(ctx context.Context) (string, error) {
	return m.d.Attribute(ctx, selectors.MenuAbout, "href")
}
