package interfaces

import "qa_automation/domain/entities"

// Element is a handle to an element found in the current page
type Element interface {
	// Click clicks the element
	Click() error

	// Clear clears the value of an input element
	Clear() error

	// SendKeys types text into the element
	SendKeys(text string) error

	// Text returns the rendered text of the element
	Text() (string, error)

	// IsDisplayed reports whether the element is visible
	IsDisplayed() (bool, error)

	// IsEnabled reports whether the element is enabled
	IsEnabled() (bool, error)

	// ScrollIntoView scrolls the page until the element is in the viewport
	ScrollIntoView() error

	// UploadFile sets a local file path on a file input
	UploadFile(path string) error
}

// Driver defines the browser session the page actions run against.
// None of its methods wait for elements; waiting is done by the caller.
type Driver interface {
	// Get navigates to a URL
	Get(url string) error

	// Refresh reloads the current page
	Refresh() error

	// Back goes back in history
	Back() error

	// Forward goes forward in history
	Forward() error

	// CurrentURL returns the current page URL
	CurrentURL() (string, error)

	// Title returns the current page title
	Title() (string, error)

	// FindElements returns the elements currently matching the locator, nil if none
	FindElements(locator entities.Locator) ([]Element, error)

	// AcceptAlert accepts the open alert or confirm dialog
	AcceptAlert() error

	// WindowHandles returns the handles of all open windows and tabs
	WindowHandles() ([]string, error)

	// SwitchWindow makes the window with the given handle current
	SwitchWindow(handle string) error

	// Screenshot takes a PNG screenshot of the current page
	Screenshot() ([]byte, error)

	// Quit ends the browser session
	Quit() error
}
