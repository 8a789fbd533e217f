package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"qa_automation/domain/entities"
)

// Browser backends
const (
	BackendSelenium   = "selenium"
	BackendPlaywright = "playwright"
)

// Browsers
const (
	BrowserChrome  = "chrome"
	BrowserFirefox = "firefox"
)

// Settings are the runtime knobs of the toolkit, decoded from the environment
type Settings struct {
	Browser BrowserSettings
	Wait    WaitSettings
	API     APISettings
	Log     LogSettings
	Storage StorageSettings
}

// BrowserSettings controls how browser sessions are started
type BrowserSettings struct {
	Backend           string        `env:"BROWSER_BACKEND, default=selenium"`
	Browser           string        `env:"BROWSER, default=chrome"`
	Headless          bool          `env:"HEADLESS, default=false"`
	RemoteURL         string        `env:"SELENIUM_URL"`
	DriverPort        int           `env:"DRIVER_PORT, default=9515"`
	ChromeDriverPath  string        `env:"CHROME_DRIVER_PATH"`
	FirefoxDriverPath string        `env:"FIREFOX_DRIVER_PATH"`
	ChromeBinary      string        `env:"CHROME_BINARY"`
	FirefoxBinary     string        `env:"FIREFOX_BINARY"`
	ImplicitWait      time.Duration `env:"IMPLICIT_WAIT, default=2s"`
	PageLoadTimeout   time.Duration `env:"PAGELOAD_TIMEOUT, default=30s"`
	ActionTimeout     time.Duration `env:"ACTION_TIMEOUT, default=1s"`
	WindowWidth       int           `env:"WINDOW_WIDTH, default=1920"`
	WindowHeight      int           `env:"WINDOW_HEIGHT, default=1080"`
}

// WaitSettings is the explicit wait policy of the page actions
type WaitSettings struct {
	Timeout      time.Duration `env:"EXPLICIT_WAIT, default=10s"`
	PollInterval time.Duration `env:"POLL_INTERVAL, default=500ms"`
}

// APISettings configures the API clients
type APISettings struct {
	BaseURL string        `env:"API_BASE_URL, default=https://jsonplaceholder.typicode.com"`
	Timeout time.Duration `env:"API_TIMEOUT, default=30s"`
}

// LogSettings configures console and file logging
type LogSettings struct {
	Level      string `env:"LOG_LEVEL, default=info"`
	Dir        string `env:"LOG_DIR, default=logs"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB, default=10"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS, default=5"`
	JSON       bool   `env:"LOG_JSON, default=false"`
}

// StorageSettings points at the fixture and artifact directories
type StorageSettings struct {
	FixturesDir  string `env:"FIXTURES_DIR, default=fixtures"`
	ArtifactsDir string `env:"ARTIFACTS_DIR, default=artifacts"`
}

// LoadSettings decodes Settings from the lookuper
func LoadSettings(ctx context.Context, l envconfig.Lookuper) (*Settings, error) {
	var s Settings
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &s,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("failed to process settings: %w", err)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) validate() error {
	switch s.Browser.Backend {
	case BackendSelenium, BackendPlaywright:
	default:
		return &entities.ConfigurationError{
			Field:  "BROWSER_BACKEND",
			Reason: fmt.Sprintf("unsupported backend %q", s.Browser.Backend),
		}
	}

	switch s.Browser.Browser {
	case BrowserChrome, BrowserFirefox:
	default:
		return &entities.ConfigurationError{
			Field:  "BROWSER",
			Reason: fmt.Sprintf("unsupported browser %q", s.Browser.Browser),
		}
	}

	if s.Wait.Timeout <= 0 {
		return &entities.ConfigurationError{Field: "EXPLICIT_WAIT", Reason: "must be positive"}
	}
	if s.Wait.PollInterval <= 0 {
		return &entities.ConfigurationError{Field: "POLL_INTERVAL", Reason: "must be positive"}
	}
	return nil
}
