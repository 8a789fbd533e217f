package pages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"qa_automation/domain/entities"
	"qa_automation/domain/interfaces"
)

const (
	DefaultTimeout      = 10 * time.Second
	DefaultPollInterval = 500 * time.Millisecond
)

// BaseActions implements interfaces.PageActions on top of a driver session.
// Every element interaction polls the driver until its condition holds or the
// timeout elapses. The driver is borrowed: BaseActions only quits it on Close.
type BaseActions struct {
	driver   interfaces.Driver
	timeout  time.Duration
	interval time.Duration
	logger   logrus.FieldLogger
}

var _ interfaces.PageActions = (*BaseActions)(nil)

// Option configures BaseActions
type Option func(*BaseActions)

// WithTimeout sets the explicit wait timeout
func WithTimeout(d time.Duration) Option {
	return func(b *BaseActions) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// WithPollInterval sets how often conditions are re-evaluated
func WithPollInterval(d time.Duration) Option {
	return func(b *BaseActions) {
		if d > 0 {
			b.interval = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger logrus.FieldLogger) Option {
	return func(b *BaseActions) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBaseActions creates page actions over the driver
func NewBaseActions(driver interfaces.Driver, opts ...Option) *BaseActions {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	b := &BaseActions{
		driver:   driver,
		timeout:  DefaultTimeout,
		interval: DefaultPollInterval,
		logger:   discard,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Timeout returns the explicit wait timeout
func (b *BaseActions) Timeout() time.Duration {
	return b.timeout
}

// Driver returns the underlying driver session
func (b *BaseActions) Driver() interfaces.Driver {
	return b.driver
}

// Open navigates to a URL
func (b *BaseActions) Open(ctx context.Context, url string) error {
	b.logger.Infof("Navigating to: %s", url)
	if err := b.driver.Get(url); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}

// Refresh reloads the current page
func (b *BaseActions) Refresh(ctx context.Context) error {
	return b.driver.Refresh()
}

// GoBack goes back in history
func (b *BaseActions) GoBack(ctx context.Context) error {
	return b.driver.Back()
}

// GoForward goes forward in history
func (b *BaseActions) GoForward(ctx context.Context) error {
	return b.driver.Forward()
}

// CurrentURL returns the current page URL
func (b *BaseActions) CurrentURL(ctx context.Context) (string, error) {
	return b.driver.CurrentURL()
}

// Title returns the current page title
func (b *BaseActions) Title(ctx context.Context) (string, error) {
	return b.driver.Title()
}

// Find waits for the element to be present
func (b *BaseActions) Find(ctx context.Context, locator entities.Locator) (interfaces.Element, error) {
	el, err := b.waitFirst(ctx, locator, nil)
	if err != nil {
		return nil, b.waitError(ctx, locator, "presence", err)
	}
	return el, nil
}

// FindAll waits until at least one element matches and returns all of them in document order
func (b *BaseActions) FindAll(ctx context.Context, locator entities.Locator) ([]interfaces.Element, error) {
	elements, err := poll(ctx, b.timeout, b.interval, func() ([]interfaces.Element, bool, error) {
		elements, err := b.driver.FindElements(locator)
		if err != nil {
			return nil, false, err
		}
		return elements, len(elements) > 0, nil
	})
	if err != nil {
		return nil, b.waitError(ctx, locator, "presence of all elements", err)
	}
	return elements, nil
}

// Click waits for the element to be displayed and enabled, then clicks it.
// A click the browser rejects, for example on an element covered by an
// overlay, is retried until the timeout and then reported as not clickable.
func (b *BaseActions) Click(ctx context.Context, locator entities.Locator) error {
	b.logger.Debugf("Clicking on: %s", locator)

	_, err := poll(ctx, b.timeout, b.interval, func() (interfaces.Element, bool, error) {
		el, ok, err := b.first(locator, clickable)
		if err != nil || !ok {
			return nil, false, err
		}
		if err := el.Click(); err != nil {
			return nil, false, fmt.Errorf("failed to click %s: %w", locator, err)
		}
		return el, true, nil
	})
	if err != nil {
		werr := b.waitError(ctx, locator, "clickability", err)
		var timeout *entities.TimeoutError
		if errors.As(werr, &timeout) {
			return &entities.NotClickableError{Locator: locator, Err: timeout}
		}
		return werr
	}
	return nil
}

// SendKeys clears the input and types text into it
func (b *BaseActions) SendKeys(ctx context.Context, locator entities.Locator, text string) error {
	b.logger.Debugf("Typing text into: %s", locator)

	el, err := b.Find(ctx, locator)
	if err != nil {
		return err
	}
	if err := el.Clear(); err != nil {
		return fmt.Errorf("failed to clear %s: %w", locator, err)
	}
	if err := el.SendKeys(text); err != nil {
		return fmt.Errorf("failed to type into %s: %w", locator, err)
	}
	return nil
}

// GetText returns the rendered text of the element, "" if it has none
func (b *BaseActions) GetText(ctx context.Context, locator entities.Locator) (string, error) {
	el, err := b.Find(ctx, locator)
	if err != nil {
		return "", err
	}
	text, err := el.Text()
	if err != nil {
		return "", fmt.Errorf("failed to read text of %s: %w", locator, err)
	}
	return text, nil
}

// GetTexts returns the texts of all matching elements in document order
func (b *BaseActions) GetTexts(ctx context.Context, locator entities.Locator) ([]string, error) {
	elements, err := b.FindAll(ctx, locator)
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(elements))
	for i, el := range elements {
		text, err := el.Text()
		if err != nil {
			return nil, fmt.Errorf("failed to read text of %s[%d]: %w", locator, i, err)
		}
		texts = append(texts, text)
	}
	return texts, nil
}

// IsVisible waits for the element to be visible. A wait that ends without a
// visible element yields NotVisible, never an error.
func (b *BaseActions) IsVisible(ctx context.Context, locator entities.Locator) interfaces.Visibility {
	el, err := b.waitFirst(ctx, locator, displayed)
	if err != nil {
		b.logger.Debugf("Element not visible: %s", locator)
		return interfaces.NotVisible
	}
	return interfaces.Visibility{Element: el}
}

// ScrollToElement scrolls the element into view
func (b *BaseActions) ScrollToElement(ctx context.Context, locator entities.Locator) error {
	el, err := b.Find(ctx, locator)
	if err != nil {
		return err
	}
	if err := el.ScrollIntoView(); err != nil {
		return fmt.Errorf("failed to scroll to %s: %w", locator, err)
	}
	return nil
}

// UploadFile hands a local file path to a file input, no file picker is involved
func (b *BaseActions) UploadFile(ctx context.Context, locator entities.Locator, path string) error {
	el, err := b.Find(ctx, locator)
	if err != nil {
		return err
	}
	if err := el.UploadFile(path); err != nil {
		return fmt.Errorf("failed to upload %s to %s: %w", path, locator, err)
	}
	return nil
}

// HandleWindowAlert accepts the open alert or confirm dialog
func (b *BaseActions) HandleWindowAlert(ctx context.Context) error {
	if err := b.driver.AcceptAlert(); err != nil {
		return fmt.Errorf("failed to accept alert: %w", err)
	}
	return nil
}

// SwitchToWindow switches through the open windows and stops at the first one
// whose title equals title. When none matches it stays on the last window
// examined and reports false.
func (b *BaseActions) SwitchToWindow(ctx context.Context, title string) (bool, error) {
	handles, err := b.driver.WindowHandles()
	if err != nil {
		return false, fmt.Errorf("failed to list windows: %w", err)
	}

	for _, handle := range handles {
		if err := b.driver.SwitchWindow(handle); err != nil {
			return false, fmt.Errorf("failed to switch to window %s: %w", handle, err)
		}
		current, err := b.driver.Title()
		if err != nil {
			return false, fmt.Errorf("failed to read title of window %s: %w", handle, err)
		}
		if current == title {
			return true, nil
		}
	}

	b.logger.Warnf("No window titled %q among %d windows", title, len(handles))
	return false, nil
}

// Close ends the driver session
func (b *BaseActions) Close() error {
	return b.driver.Quit()
}

func displayed(el interfaces.Element) (bool, error) {
	return el.IsDisplayed()
}

func clickable(el interfaces.Element) (bool, error) {
	ok, err := el.IsDisplayed()
	if err != nil || !ok {
		return false, err
	}
	return el.IsEnabled()
}

// waitFirst waits for the first element matching locator to satisfy cond (presence if nil)
func (b *BaseActions) waitFirst(ctx context.Context, locator entities.Locator, cond func(interfaces.Element) (bool, error)) (interfaces.Element, error) {
	return poll(ctx, b.timeout, b.interval, func() (interfaces.Element, bool, error) {
		return b.first(locator, cond)
	})
}

// first checks cond once against the first element matching locator
func (b *BaseActions) first(locator entities.Locator, cond func(interfaces.Element) (bool, error)) (interfaces.Element, bool, error) {
	elements, err := b.driver.FindElements(locator)
	if err != nil {
		return nil, false, err
	}
	if len(elements) == 0 {
		return nil, false, nil
	}
	el := elements[0]
	if cond == nil {
		return el, true, nil
	}
	ok, err := cond(el)
	if err != nil {
		return nil, false, err
	}
	return el, ok, nil
}

func (b *BaseActions) waitError(ctx context.Context, locator entities.Locator, condition string, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("waiting for %s of %s: %w", condition, locator, ctx.Err())
	}

	var last error
	var expired *expiredError
	if errors.As(err, &expired) {
		last = expired.last
	}

	b.logger.WithField("locator", locator.String()).Warnf("Timed out after %s waiting for %s", b.timeout, condition)
	return &entities.TimeoutError{
		Locator:   locator,
		Condition: condition,
		Timeout:   b.timeout,
		Last:      last,
	}
}
