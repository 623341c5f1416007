package selectors

// Login screen
const (
	LoginUsernameInput = `[data-test="username"]`
	LoginPasswordInput = `[data-test="password"]`
	LoginButton        = `[data-test="login-button"]`
	LoginErrorMessage  = ErrorMessage
	LoginErrorButton   = ErrorMessageButton
	LoginContainer     = ".login_container"
	LoginLogo          = ".login_logo"
	LoginCredentials   = ".login_credentials"
	LoginPassword      = ".login_password"
)
