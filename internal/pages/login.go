package pages

import (
	"context"

	"github.com/swaglabs-qa/storefront-e2e/internal/selectors"
	"github.com/swaglabs-qa/storefront-e2e/internal/wait"
)

// LoginPage is the storefront root
type LoginPage struct {
	page
}

// Visit opens the login screen
func (l *LoginPage) Visit(ctx context.Context) error {
	return l.visit(ctx, "/")
}

// EnterUsername replaces the username field. An empty value leaves the field
// empty so the storefront's own validation fires.
func (l *LoginPage) EnterUsername(ctx context.Context, username string) error {
	return l.fill(ctx, selectors.LoginUsernameInput, username)
}

// EnterPassword replaces the password field
func (l *LoginPage) EnterPassword(ctx context.Context, password string) error {
	return l.fill(ctx, selectors.LoginPasswordInput, password)
}

// ClickLogin submits the form
func (l *LoginPage) ClickLogin(ctx context.Context) error {
	return l.click(ctx, selectors.LoginButton)
}

// Login enters both credentials and submits
func (l *LoginPage) Login(ctx context.Context, username, password string) error {
	if err := l.EnterUsername(ctx, username); err != nil {
		return err
	}
	if err := l.EnterPassword(ctx, password); err != nil {
		return err
	}
	return l.ClickLogin(ctx)
}

// CloseErrorMessage dismisses the error banner
func (l *LoginPage) CloseErrorMessage(ctx context.Context) error {
	return l.click(ctx, selectors.LoginErrorButton)
}

// ErrorMessage returns the current error banner text
func (l *LoginPage) ErrorMessage(ctx context.Context) (string, error) {
	return l.firstText(ctx, selectors.LoginErrorMessage)
}

// ValidateLoginPageIsDisplayed waits for the form and logo
func (l *LoginPage) ValidateLoginPageIsDisplayed(ctx context.Context) error {
	for _, sel := range []string{
		selectors.LoginContainer,
		selectors.LoginLogo,
		selectors.LoginUsernameInput,
		selectors.LoginPasswordInput,
		selectors.LoginButton,
	} {
		if err := l.expectVisible(ctx, sel); err != nil {
			return err
		}
	}
	return nil
}

// ValidateErrorMessage waits for the banner to contain want
func (l *LoginPage) ValidateErrorMessage(ctx context.Context, want string) error {
	return l.expectTextContains(ctx, selectors.LoginErrorMessage, want)
}

// ValidateErrorMessageIsDisplayed waits for the error banner
func (l *LoginPage) ValidateErrorMessageIsDisplayed(ctx context.Context) error {
	return l.expectVisible(ctx, selectors.LoginErrorMessage)
}

// ValidateErrorMessageIsGone waits for the banner to leave the DOM
func (l *LoginPage) ValidateErrorMessageIsGone(ctx context.Context) error {
	return l.expectAbsent(ctx, selectors.LoginErrorMessage)
}

// ValidateLoginCredentialsAreDisplayed waits for the demo credentials panel
func (l *LoginPage) ValidateLoginCredentialsAreDisplayed(ctx context.Context) error {
	if err := l.expectVisible(ctx, selectors.LoginCredentials); err != nil {
		return err
	}
	return l.expectVisible(ctx, selectors.LoginPassword)
}

// ValidatePageTitle checks the document title
func (l *LoginPage) ValidatePageTitle(ctx context.Context) error {
	return wait.Equal(ctx, l.opts, "page title", selectors.PageTitleSwagLabs, l.d.Title)
}

// ValidatePageURL waits for the current URL to contain fragment, usually the
// storefront host.
func (l *LoginPage) ValidatePageURL(ctx context.Context, fragment string) error {
	return l.expectURLContains(ctx, fragment)
}
