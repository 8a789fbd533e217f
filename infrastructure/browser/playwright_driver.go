package browser

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"qa_automation/domain/entities"
	"qa_automation/domain/interfaces"
	"qa_automation/infrastructure/config"
)

// PlaywrightDriver is a Playwright browser session. Every page opened in the
// browser context is tracked as a window handle. Dialogs are accepted as soon
// as they open; AcceptAlert reports whether the current page had one.
type PlaywrightDriver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	logger  logrus.FieldLogger
	timeout *float64

	pagesMutex sync.Mutex
	pages      []trackedPage
	current    string
	nextID     int
}

type trackedPage struct {
	handle string
	page   playwright.Page
	// dialogs accepted on the page since it was last navigated or checked
	dialogs int
}

var _ interfaces.Driver = (*PlaywrightDriver)(nil)

// defaultActionTimeout bounds one element action; retries happen in the page actions
const defaultActionTimeout = time.Second

// NewPlaywrightDriver - launches the configured browser through Playwright
func NewPlaywrightDriver(s config.BrowserSettings, logger logrus.FieldLogger) (*PlaywrightDriver, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browserType := pw.Chromium
	launch := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(s.Headless),
	}
	switch s.Browser {
	case config.BrowserFirefox:
		browserType = pw.Firefox
		if s.FirefoxBinary != "" {
			launch.ExecutablePath = playwright.String(s.FirefoxBinary)
		}
	default:
		launch.Args = []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
			"--no-sandbox",
		}
		if s.ChromeBinary != "" {
			launch.ExecutablePath = playwright.String(s.ChromeBinary)
		}
	}

	browser, err := browserType.Launch(launch)
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  s.WindowWidth,
			Height: s.WindowHeight,
		},
		IgnoreHttpsErrors: playwright.Bool(true),
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}
	if s.PageLoadTimeout > 0 {
		bctx.SetDefaultNavigationTimeout(float64(s.PageLoadTimeout.Milliseconds()))
	}
	timeout := actionTimeout(s.ActionTimeout)
	bctx.SetDefaultTimeout(*timeout)

	d := &PlaywrightDriver{
		pw:      pw,
		browser: browser,
		context: bctx,
		logger:  logger,
		timeout: timeout,
	}
	bctx.OnPage(func(page playwright.Page) {
		d.track(page)
	})

	page, err := bctx.NewPage()
	if err != nil {
		d.Quit()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	handle := d.track(page)

	d.pagesMutex.Lock()
	d.current = handle
	d.pagesMutex.Unlock()

	logger.WithFields(logrus.Fields{
		"browser":  s.Browser,
		"headless": s.Headless,
	}).Info("Playwright session started")
	return d, nil
}

// actionTimeout - the Playwright timeout in milliseconds of a single element action
func actionTimeout(d time.Duration) *float64 {
	if d <= 0 {
		d = defaultActionTimeout
	}
	return playwright.Float(float64(d.Milliseconds()))
}

// track - registers a page as a window handle, once
func (d *PlaywrightDriver) track(page playwright.Page) string {
	d.pagesMutex.Lock()
	defer d.pagesMutex.Unlock()

	for _, p := range d.pages {
		if p.page == page {
			return p.handle
		}
	}

	d.nextID++
	handle := fmt.Sprintf("page-%d", d.nextID)
	d.pages = append(d.pages, trackedPage{handle: handle, page: page})

	page.OnDialog(func(dialog playwright.Dialog) {
		d.logger.Infof("Accepting %s dialog: %s", dialog.Type(), dialog.Message())
		if err := dialog.Accept(); err != nil {
			d.logger.Warnf("Failed to accept dialog: %v", err)
			return
		}
		d.dialogOpened(handle)
	})

	page.OnClose(func(closedPage playwright.Page) {
		d.pagesMutex.Lock()
		defer d.pagesMutex.Unlock()

		for i, p := range d.pages {
			if p.page == closedPage {
				d.pages = append(d.pages[:i], d.pages[i+1:]...)
				if d.current == p.handle && len(d.pages) > 0 {
					d.current = d.pages[0].handle
				}
				break
			}
		}
	})

	return handle
}

// currentPage - returns the page that has focus
func (d *PlaywrightDriver) currentPage() (playwright.Page, error) {
	d.pagesMutex.Lock()
	defer d.pagesMutex.Unlock()

	for _, p := range d.pages {
		if p.handle == d.current {
			return p.page, nil
		}
	}
	return nil, errors.New("no open page")
}

// dialogOpened - counts an accepted dialog against the page
func (d *PlaywrightDriver) dialogOpened(handle string) {
	d.pagesMutex.Lock()
	defer d.pagesMutex.Unlock()

	for i := range d.pages {
		if d.pages[i].handle == handle {
			d.pages[i].dialogs++
			return
		}
	}
}

// takeDialogs - returns and resets the dialog count of the current page
func (d *PlaywrightDriver) takeDialogs() int {
	d.pagesMutex.Lock()
	defer d.pagesMutex.Unlock()

	for i := range d.pages {
		if d.pages[i].handle == d.current {
			n := d.pages[i].dialogs
			d.pages[i].dialogs = 0
			return n
		}
	}
	return 0
}

// Get - navigates to the specified URL. Dialogs of the previous document are forgotten.
func (d *PlaywrightDriver) Get(url string) error {
	page, err := d.currentPage()
	if err != nil {
		return err
	}
	d.takeDialogs()
	_, err = page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
	})
	return err
}

func (d *PlaywrightDriver) Refresh() error {
	page, err := d.currentPage()
	if err != nil {
		return err
	}
	_, err = page.Reload()
	return err
}

func (d *PlaywrightDriver) Back() error {
	page, err := d.currentPage()
	if err != nil {
		return err
	}
	_, err = page.GoBack()
	return err
}

func (d *PlaywrightDriver) Forward() error {
	page, err := d.currentPage()
	if err != nil {
		return err
	}
	_, err = page.GoForward()
	return err
}

func (d *PlaywrightDriver) CurrentURL() (string, error) {
	page, err := d.currentPage()
	if err != nil {
		return "", err
	}
	return page.URL(), nil
}

func (d *PlaywrightDriver) Title() (string, error) {
	page, err := d.currentPage()
	if err != nil {
		return "", err
	}
	return page.Title()
}

// FindElements - resolves the locator once, without waiting
func (d *PlaywrightDriver) FindElements(locator entities.Locator) ([]interfaces.Element, error) {
	selector, err := playwrightSelector(locator)
	if err != nil {
		return nil, err
	}
	page, err := d.currentPage()
	if err != nil {
		return nil, err
	}

	found, err := page.Locator(selector).All()
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}

	elements := make([]interfaces.Element, 0, len(found))
	for _, loc := range found {
		elements = append(elements, &playwrightElement{loc: loc, timeout: d.timeout})
	}
	return elements, nil
}

// AcceptAlert - succeeds when a dialog was accepted on the current page since
// it was loaded or last checked
func (d *PlaywrightDriver) AcceptAlert() error {
	if d.takeDialogs() == 0 {
		return entities.ErrNoAlert
	}
	return nil
}

func (d *PlaywrightDriver) WindowHandles() ([]string, error) {
	d.pagesMutex.Lock()
	defer d.pagesMutex.Unlock()

	handles := make([]string, 0, len(d.pages))
	for _, p := range d.pages {
		handles = append(handles, p.handle)
	}
	return handles, nil
}

// SwitchWindow - brings the page with the handle to front and makes it current
func (d *PlaywrightDriver) SwitchWindow(handle string) error {
	d.pagesMutex.Lock()
	var page playwright.Page
	for _, p := range d.pages {
		if p.handle == handle {
			page = p.page
			d.current = handle
			break
		}
	}
	d.pagesMutex.Unlock()

	if page == nil {
		return fmt.Errorf("no window with handle %s", handle)
	}
	return page.BringToFront()
}

// Screenshot - takes a full page screenshot of the current page
func (d *PlaywrightDriver) Screenshot() ([]byte, error) {
	page, err := d.currentPage()
	if err != nil {
		return nil, err
	}
	return page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	})
}

// Quit - closes the context, the browser and the Playwright driver
func (d *PlaywrightDriver) Quit() error {
	var errs []error
	if d.context != nil {
		if err := d.context.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close context: %w", err))
		}
	}
	if d.browser != nil {
		if err := d.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
		}
	}
	if d.pw != nil {
		if err := d.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
	}
	return errors.Join(errs...)
}

// playwrightElement is one resolved match of a Playwright locator. Every
// action gives up after timeout instead of Playwright's 30s default.
type playwrightElement struct {
	loc     playwright.Locator
	timeout *float64
}

func (e *playwrightElement) Click() error {
	return e.loc.Click(playwright.LocatorClickOptions{Timeout: e.timeout})
}

func (e *playwrightElement) Clear() error {
	return e.loc.Clear(playwright.LocatorClearOptions{Timeout: e.timeout})
}

// SendKeys - types key by key so input listeners fire as they would for a user
func (e *playwrightElement) SendKeys(text string) error {
	return e.loc.PressSequentially(text, playwright.LocatorPressSequentiallyOptions{Timeout: e.timeout})
}

func (e *playwrightElement) Text() (string, error) {
	return e.loc.InnerText(playwright.LocatorInnerTextOptions{Timeout: e.timeout})
}

func (e *playwrightElement) IsDisplayed() (bool, error) { return e.loc.IsVisible() }

func (e *playwrightElement) IsEnabled() (bool, error) {
	return e.loc.IsEnabled(playwright.LocatorIsEnabledOptions{Timeout: e.timeout})
}

func (e *playwrightElement) ScrollIntoView() error {
	return e.loc.ScrollIntoViewIfNeeded(playwright.LocatorScrollIntoViewIfNeededOptions{Timeout: e.timeout})
}

func (e *playwrightElement) UploadFile(path string) error {
	return e.loc.SetInputFiles([]string{path}, playwright.LocatorSetInputFilesOptions{Timeout: e.timeout})
}
