package browser

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"

	"qa_automation/domain/entities"
	"qa_automation/domain/interfaces"
	"qa_automation/infrastructure/config"
)

// SeleniumDriver is a WebDriver session, either against a locally started
// chromedriver/geckodriver or a remote Selenium grid
type SeleniumDriver struct {
	wd      selenium.WebDriver
	service *selenium.Service
	logger  logrus.FieldLogger
}

var _ interfaces.Driver = (*SeleniumDriver)(nil)

var seleniumBy = map[entities.Strategy]string{
	entities.StrategyID:              selenium.ByID,
	entities.StrategyName:            selenium.ByName,
	entities.StrategyXPath:           selenium.ByXPATH,
	entities.StrategyCSS:             selenium.ByCSSSelector,
	entities.StrategyClassName:       selenium.ByClassName,
	entities.StrategyTagName:         selenium.ByTagName,
	entities.StrategyLinkText:        selenium.ByLinkText,
	entities.StrategyPartialLinkText: selenium.ByPartialLinkText,
}

const scrollIntoViewScript = `arguments[0].scrollIntoView({block: 'center', inline: 'nearest'}); return true;`

// findDriver - finds the driver executable: explicit path, then common install paths, then $PATH
func findDriver(name, explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit, nil
		}
		return "", fmt.Errorf("%s not found at %s", name, explicit)
	}

	commonPaths := []string{
		filepath.Join("/usr/local/bin", name),
		filepath.Join("/usr/bin", name),
		filepath.Join("/opt/homebrew/bin", name),
		filepath.Join(os.Getenv("HOME"), "bin", name),
	}
	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("%s not found. Please install it or set its path in the environment", name)
}

// findChromeBinary - finds Chrome/Chromium browser executable path
func findChromeBinary(explicit string) string {
	if explicit != "" {
		return explicit
	}

	chromePaths := []string{
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
	}
	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	for _, name := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

// seleniumCapabilities - builds the browser capabilities for the settings
func seleniumCapabilities(s config.BrowserSettings) selenium.Capabilities {
	caps := selenium.Capabilities{"browserName": s.Browser}

	switch s.Browser {
	case config.BrowserFirefox:
		ffCaps := firefox.Capabilities{
			Args: []string{
				fmt.Sprintf("--width=%d", s.WindowWidth),
				fmt.Sprintf("--height=%d", s.WindowHeight),
			},
			Binary: s.FirefoxBinary,
		}
		if s.Headless {
			ffCaps.Args = append(ffCaps.Args, "-headless")
		}
		caps.AddFirefox(ffCaps)
	default:
		chromeCaps := chrome.Capabilities{
			Args: []string{
				"--disable-blink-features=AutomationControlled",
				"--disable-dev-shm-usage",
				"--no-sandbox",
				fmt.Sprintf("--window-size=%d,%d", s.WindowWidth, s.WindowHeight),
			},
			Path: s.ChromeBinary,
		}
		if s.Headless {
			chromeCaps.Args = append(chromeCaps.Args, "--headless=new")
		}
		caps.AddChrome(chromeCaps)
	}
	return caps
}

// startService - starts chromedriver or geckodriver and returns the URL to connect to
func startService(s config.BrowserSettings, logger logrus.FieldLogger) (*selenium.Service, string, error) {
	if s.Browser == config.BrowserFirefox {
		path, err := findDriver("geckodriver", s.FirefoxDriverPath)
		if err != nil {
			return nil, "", err
		}
		logger.Infof("Using GeckoDriver at: %s", path)

		service, err := selenium.NewGeckoDriverService(path, s.DriverPort)
		if err != nil {
			return nil, "", fmt.Errorf("failed to start geckodriver: %w", err)
		}
		return service, fmt.Sprintf("http://localhost:%d", s.DriverPort), nil
	}

	path, err := findDriver("chromedriver", s.ChromeDriverPath)
	if err != nil {
		return nil, "", err
	}
	logger.Infof("Using ChromeDriver at: %s", path)

	service, err := selenium.NewChromeDriverService(path, s.DriverPort)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start chromedriver: %w", err)
	}
	return service, fmt.Sprintf("http://localhost:%d/wd/hub", s.DriverPort), nil
}

// NewSeleniumDriver - starts a WebDriver session for the configured browser.
// With SELENIUM_URL set it connects to that grid instead of starting a local driver.
func NewSeleniumDriver(s config.BrowserSettings, logger logrus.FieldLogger) (*SeleniumDriver, error) {
	if s.Browser == config.BrowserChrome && s.RemoteURL == "" {
		if bin := findChromeBinary(s.ChromeBinary); bin != "" {
			logger.Infof("Using Chrome binary at: %s", bin)
			s.ChromeBinary = bin
		}
	}

	var service *selenium.Service
	url := s.RemoteURL
	if url == "" {
		var err error
		service, url, err = startService(s, logger)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Infof("Using remote Selenium at: %s", url)
	}

	wd, err := selenium.NewRemote(seleniumCapabilities(s), url)
	if err != nil {
		if service != nil {
			service.Stop()
		}
		if strings.Contains(err.Error(), "cannot find Chrome binary") {
			return nil, fmt.Errorf("failed to create webdriver: Chrome browser not found. Please install Google Chrome or set CHROME_BINARY. Error: %w", err)
		}
		return nil, fmt.Errorf("failed to create webdriver: %w", err)
	}

	d := &SeleniumDriver{wd: wd, service: service, logger: logger}

	if s.ImplicitWait > 0 {
		if err := wd.SetImplicitWaitTimeout(s.ImplicitWait); err != nil {
			d.Quit()
			return nil, fmt.Errorf("failed to set implicit wait: %w", err)
		}
	}
	if s.PageLoadTimeout > 0 {
		if err := wd.SetPageLoadTimeout(s.PageLoadTimeout); err != nil {
			d.Quit()
			return nil, fmt.Errorf("failed to set page load timeout: %w", err)
		}
	}

	logger.WithFields(logrus.Fields{
		"browser":  s.Browser,
		"headless": s.Headless,
	}).Info("Selenium session started")
	return d, nil
}

// byFor - maps a locator strategy to its WebDriver "by" value
func byFor(locator entities.Locator) (string, error) {
	by, ok := seleniumBy[locator.Strategy]
	if !ok {
		return "", &entities.UnsupportedStrategyError{Locator: locator}
	}
	return by, nil
}

// Get - navigates browser to specified URL
func (d *SeleniumDriver) Get(url string) error {
	return d.wd.Get(url)
}

func (d *SeleniumDriver) Refresh() error {
	return d.wd.Refresh()
}

func (d *SeleniumDriver) Back() error {
	return d.wd.Back()
}

func (d *SeleniumDriver) Forward() error {
	return d.wd.Forward()
}

// CurrentURL - returns current page URL
func (d *SeleniumDriver) CurrentURL() (string, error) {
	return d.wd.CurrentURL()
}

// Title - returns current page title
func (d *SeleniumDriver) Title() (string, error) {
	return d.wd.Title()
}

// FindElements - returns the elements currently matching the locator
func (d *SeleniumDriver) FindElements(locator entities.Locator) ([]interfaces.Element, error) {
	by, err := byFor(locator)
	if err != nil {
		return nil, err
	}

	found, err := d.wd.FindElements(by, locator.Value)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}

	elements := make([]interfaces.Element, 0, len(found))
	for _, el := range found {
		elements = append(elements, &seleniumElement{wd: d.wd, el: el})
	}
	return elements, nil
}

// AcceptAlert - accepts the open alert or confirm dialog
func (d *SeleniumDriver) AcceptAlert() error {
	if err := d.wd.AcceptAlert(); err != nil {
		return fmt.Errorf("%w: %v", entities.ErrNoAlert, err)
	}
	return nil
}

func (d *SeleniumDriver) WindowHandles() ([]string, error) {
	return d.wd.WindowHandles()
}

func (d *SeleniumDriver) SwitchWindow(handle string) error {
	return d.wd.SwitchWindow(handle)
}

// Screenshot - takes screenshot of current page
func (d *SeleniumDriver) Screenshot() ([]byte, error) {
	return d.wd.Screenshot()
}

// Quit - closes browser and stops the driver service
func (d *SeleniumDriver) Quit() error {
	var errs []error
	if d.wd != nil {
		if err := d.wd.Quit(); err != nil {
			errs = append(errs, fmt.Errorf("failed to quit webdriver: %w", err))
		}
	}
	if d.service != nil {
		if err := d.service.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop driver service: %w", err))
		}
	}
	return errors.Join(errs...)
}

// seleniumElement is a WebDriver element
type seleniumElement struct {
	wd selenium.WebDriver
	el selenium.WebElement
}

func (e *seleniumElement) Click() error { return e.el.Click() }

func (e *seleniumElement) Clear() error { return e.el.Clear() }

func (e *seleniumElement) SendKeys(text string) error { return e.el.SendKeys(text) }

func (e *seleniumElement) Text() (string, error) { return e.el.Text() }

func (e *seleniumElement) IsDisplayed() (bool, error) { return e.el.IsDisplayed() }

func (e *seleniumElement) IsEnabled() (bool, error) { return e.el.IsEnabled() }

func (e *seleniumElement) ScrollIntoView() error {
	_, err := e.wd.ExecuteScript(scrollIntoViewScript, []interface{}{e.el})
	return err
}

// UploadFile - a file input takes the local path as its typed value
func (e *seleniumElement) UploadFile(path string) error {
	return e.el.SendKeys(path)
}
