package interfaces

import (
	"context"

	"qa_automation/domain/entities"
)

// Visibility is the result of a visibility check: the visible element, or NotVisible
type Visibility struct {
	Element Element
}

// NotVisible is returned when an element did not become visible in time
var NotVisible = Visibility{}

// Visible reports whether the check found a visible element
func (v Visibility) Visible() bool {
	return v.Element != nil
}

// PageActions defines the wait-based interaction primitives page objects are built on
type PageActions interface {
	// Open navigates to a URL
	Open(ctx context.Context, url string) error

	// Refresh reloads the current page
	Refresh(ctx context.Context) error

	// GoBack goes back in history
	GoBack(ctx context.Context) error

	// GoForward goes forward in history
	GoForward(ctx context.Context) error

	// CurrentURL returns the current page URL
	CurrentURL(ctx context.Context) (string, error)

	// Title returns the current page title
	Title(ctx context.Context) (string, error)

	// Find waits for an element to be present
	Find(ctx context.Context, locator entities.Locator) (Element, error)

	// FindAll waits for at least one element to be present and returns all matches
	FindAll(ctx context.Context, locator entities.Locator) ([]Element, error)

	// Click waits for an element to be clickable and clicks it
	Click(ctx context.Context, locator entities.Locator) error

	// SendKeys clears an input and types text into it
	SendKeys(ctx context.Context, locator entities.Locator, text string) error

	// GetText returns the text of an element
	GetText(ctx context.Context, locator entities.Locator) (string, error)

	// GetTexts returns the texts of all matching elements in document order
	GetTexts(ctx context.Context, locator entities.Locator) ([]string, error)

	// IsVisible waits for an element to be visible; it never fails
	IsVisible(ctx context.Context, locator entities.Locator) Visibility

	// ScrollToElement scrolls an element into view
	ScrollToElement(ctx context.Context, locator entities.Locator) error

	// UploadFile sets a local file path on a file input
	UploadFile(ctx context.Context, locator entities.Locator, path string) error

	// HandleWindowAlert accepts the open alert
	HandleWindowAlert(ctx context.Context) error

	// SwitchToWindow switches to the first window whose title matches exactly
	SwitchToWindow(ctx context.Context, title string) (bool, error)

	// Close ends the browser session
	Close() error
}
