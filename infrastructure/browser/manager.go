package browser

import (
	"github.com/sirupsen/logrus"

	"qa_automation/domain/entities"
	"qa_automation/domain/interfaces"
	"qa_automation/infrastructure/config"
)

// NewDriver starts a browser session with the backend named by BROWSER_BACKEND
func NewDriver(s config.BrowserSettings, logger logrus.FieldLogger) (interfaces.Driver, error) {
	switch s.Backend {
	case config.BackendPlaywright:
		d, err := NewPlaywrightDriver(s, logger)
		if err != nil {
			return nil, err
		}
		return d, nil
	case config.BackendSelenium, "":
		d, err := NewSeleniumDriver(s, logger)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
	return nil, &entities.ConfigurationError{
		Field:  "BROWSER_BACKEND",
		Reason: "unsupported backend " + s.Backend,
	}
}
