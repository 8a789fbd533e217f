// Package suite wires configuration, logging, browsers and API clients together
// for test packages. It is the composition root of the toolkit.
package suite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/sirupsen/logrus"

	"qa_automation/application/pages"
	"qa_automation/domain/entities"
	"qa_automation/domain/interfaces"
	"qa_automation/infrastructure/api"
	"qa_automation/infrastructure/browser"
	"qa_automation/infrastructure/config"
	"qa_automation/infrastructure/datagen"
	"qa_automation/infrastructure/logging"
	"qa_automation/infrastructure/schema"
	"qa_automation/infrastructure/storage"
)

// DriverFactory starts a browser session
type DriverFactory func(s config.BrowserSettings, logger logrus.FieldLogger) (interfaces.Driver, error)

type options struct {
	console     io.Writer
	newDriver   DriverFactory
	dotenvFiles []string
}

// Option configures the suite
type Option func(*options)

// WithConsole sets where console log output goes, os.Stdout by default
func WithConsole(w io.Writer) Option {
	return func(o *options) {
		o.console = w
	}
}

// WithDriverFactory replaces the browser factory
func WithDriverFactory(f DriverFactory) Option {
	return func(o *options) {
		if f != nil {
			o.newDriver = f
		}
	}
}

// WithDotenvFiles sets the dotenv files Bootstrap loads
func WithDotenvFiles(files ...string) Option {
	return func(o *options) {
		o.dotenvFiles = files
	}
}

// Suite holds everything a test needs
type Suite struct {
	Config    *entities.Configuration
	Settings  *config.Settings
	Logger    *logrus.Logger
	Fixtures  *storage.FixtureStore
	Artifacts *storage.FixtureStore
	Data      *datagen.Generator

	newDriver DriverFactory
	logCloser io.Closer
}

func newOptions(opts []Option) *options {
	o := &options{
		console: os.Stdout,
		newDriver: func(s config.BrowserSettings, logger logrus.FieldLogger) (interfaces.Driver, error) {
			return browser.NewDriver(s, logger)
		},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Bootstrap loads the dotenv files into the process environment and builds
// the suite from it. Variables already set in the environment win.
func Bootstrap(ctx context.Context, opts ...Option) (*Suite, error) {
	o := newOptions(opts)

	bootLogger := logrus.New()
	bootLogger.SetOutput(o.console)
	config.LoadDotenv(bootLogger, o.dotenvFiles...)

	return BootstrapWith(ctx, envconfig.OsLookuper(), opts...)
}

// BootstrapWith builds the suite from the given lookuper
func BootstrapWith(ctx context.Context, l envconfig.Lookuper, opts ...Option) (*Suite, error) {
	o := newOptions(opts)

	settings, err := config.LoadSettings(ctx, l)
	if err != nil {
		return nil, err
	}

	logger, logCloser, err := logging.Setup(settings.Log, o.console)
	if err != nil {
		return nil, err
	}

	cfg, err := config.FromLookuper(l)
	if err != nil {
		logger.Errorf("Invalid configuration: %v", err)
		logCloser.Close()
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	fixtures, err := storage.NewFixtureStore(settings.Storage.FixturesDir)
	if err != nil {
		logCloser.Close()
		return nil, err
	}
	artifacts, err := storage.NewFixtureStore(settings.Storage.ArtifactsDir)
	if err != nil {
		logCloser.Close()
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"backend":  settings.Browser.Backend,
		"browser":  settings.Browser.Browser,
		"base_url": cfg.BaseURL,
	}).Info("Test suite initialized")

	return &Suite{
		Config:    cfg,
		Settings:  settings,
		Logger:    logger,
		Fixtures:  fixtures,
		Artifacts: artifacts,
		Data:      datagen.New(0),
		newDriver: o.newDriver,
		logCloser: logCloser,
	}, nil
}

// NewDriver starts a browser session with the configured backend
func (s *Suite) NewDriver() (interfaces.Driver, error) {
	return s.newDriver(s.Settings.Browser, logging.Component(s.Logger, "browser"))
}

// NewActions wraps the driver with the configured wait policy
func (s *Suite) NewActions(driver interfaces.Driver) *pages.BaseActions {
	return pages.NewBaseActions(driver,
		pages.WithTimeout(s.Settings.Wait.Timeout),
		pages.WithPollInterval(s.Settings.Wait.PollInterval),
		pages.WithLogger(logging.Component(s.Logger, "pages")),
	)
}

// UserService creates a users API service against API_BASE_URL
func (s *Suite) UserService() *api.UserService {
	return api.NewDefaultUserService(s.Settings.API, logging.Component(s.Logger, "api"))
}

// SchemaValidator loads the named JSON schema from the fixtures directory
func (s *Suite) SchemaValidator(name string) (*schema.Validator, error) {
	return schema.NewValidator(s.Fixtures, name, logging.Component(s.Logger, "schema"))
}

// Browser starts a browser for the test. The test is skipped when no browser
// can be started. The session is closed when the test ends, after the page is
// captured to the artifacts directory if the test failed.
func (s *Suite) Browser(t testing.TB) *pages.BaseActions {
	t.Helper()

	driver, err := s.NewDriver()
	if err != nil {
		s.Logger.Warnf("Browser not available: %v", err)
		t.Skipf("browser not available: %v", err)
	}

	s.Logger.Infof("Starting test: %s", t.Name())
	actions := s.NewActions(driver)
	t.Cleanup(func() {
		if t.Failed() {
			info, err := s.CaptureFailure(t.Name(), driver)
			if err != nil {
				s.Logger.Warnf("Failed to save failure report: %v", err)
			} else if info.Screenshot != "" {
				t.Logf("screenshot saved to %s", info.Screenshot)
			}
		}
		if err := actions.Close(); err != nil {
			s.Logger.Warnf("Failed to close browser: %v", err)
		}
		s.Logger.Infof("Finished test: %s", t.Name())
	})
	return actions
}

var screenshotName = strings.NewReplacer("/", "_", " ", "_", "\\", "_", ":", "_")

// CaptureScreenshot saves a screenshot of the current page as screenshots/<name>.png
// in the artifacts directory and returns its path
func (s *Suite) CaptureScreenshot(name string, driver interfaces.Driver) (string, error) {
	png, err := driver.Screenshot()
	if err != nil {
		return "", fmt.Errorf("failed to take screenshot: %w", err)
	}

	file := "screenshots/" + screenshotName.Replace(name) + ".png"
	if err := s.Artifacts.SaveBytes(file, png); err != nil {
		return "", err
	}
	return s.Artifacts.Path(file), nil
}

// CaptureFailure records the current page of a failed test: a screenshot and
// failures/<name>.json with the page URL and title. Parts that cannot be read
// are listed in the report instead of failing the capture.
func (s *Suite) CaptureFailure(name string, driver interfaces.Driver) (entities.PageInfo, error) {
	info := entities.PageInfo{Test: name, CapturedAt: time.Now().UTC()}

	var err error
	if info.URL, err = driver.CurrentURL(); err != nil {
		info.Errors = append(info.Errors, "url: "+err.Error())
	}
	if info.Title, err = driver.Title(); err != nil {
		info.Errors = append(info.Errors, "title: "+err.Error())
	}
	if info.Screenshot, err = s.CaptureScreenshot(name, driver); err != nil {
		info.Errors = append(info.Errors, "screenshot: "+err.Error())
	}

	if err := s.Artifacts.SaveJSON("failures/"+screenshotName.Replace(name)+".json", info); err != nil {
		return info, fmt.Errorf("failed to save failure report: %w", err)
	}
	s.Logger.WithFields(logrus.Fields{
		"test": name,
		"url":  info.URL,
	}).Warn("Test failed, page captured")
	return info, nil
}

// RequireCredentials skips the test when USERNAME or PASSWORD is not set
func (s *Suite) RequireCredentials(t testing.TB) {
	t.Helper()
	if !s.Config.HasCredentials() {
		s.Logger.Warn("USERNAME/PASSWORD not configured, skipping")
		t.Skip("USERNAME/PASSWORD not configured")
	}
}

// Close flushes and closes the log file
func (s *Suite) Close() error {
	if s.logCloser == nil {
		return nil
	}
	err := s.logCloser.Close()
	s.logCloser = nil
	if err != nil && !errors.Is(err, os.ErrClosed) {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}
