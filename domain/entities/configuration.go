package entities

// Configuration holds the URLs, credentials and element locators the page objects use.
// It is built once at startup and must not be mutated afterwards.
type Configuration struct {
	BaseURL       string
	LoginURL      string
	SubmissionURL string
	AccountURL    string
	SearchURL     string

	Username string
	Password string

	Form    FormLocators
	Account AccountLocators
	Search  SearchLocators
	Login   LoginLocators
}

// FormLocators are the locators of the account creation form
type FormLocators struct {
	FirstName       Locator
	LastName        Locator
	Email           Locator
	Password        Locator
	ConfirmPassword Locator
	StrengthLabel   Locator
	SuccessMessage  Locator
	SubmitButton    Locator
}

// AccountLocators are the locators of the account page
type AccountLocators struct {
	WelcomeMessage Locator
}

// SearchLocators are the locators of the product search page
type SearchLocators struct {
	Input        Locator
	Submit       Locator
	ResultTitles Locator
}

// LoginLocators are the locators of the login page.
// ErrorMessage is nil when the error message check is not configured.
type LoginLocators struct {
	Username     Locator
	Password     Locator
	Submit       Locator
	ErrorMessage *Locator
}

// HasCredentials reports whether both USERNAME and PASSWORD were provided
func (c *Configuration) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}
