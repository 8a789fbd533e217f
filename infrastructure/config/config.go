package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"github.com/sirupsen/logrus"

	"qa_automation/domain/entities"
)

// Environment variable names of the configuration registry
const (
	EnvBaseURL       = "BASE_URL"
	EnvLoginURL      = "LOGIN_URL"
	EnvSubmissionURL = "SUBMISSION_URL"
	EnvAccountURL    = "ACCOUNT_URL"
	EnvSearchURL     = "SEARCH_URL"
	EnvUsername      = "USERNAME"
	EnvPassword      = "PASSWORD"

	EnvFormName                 = "FORM_NAME"
	EnvFormLastName             = "FORM_LAST_NAME"
	EnvFormEmail                = "FORM_EMAIL"
	EnvFormPassword             = "FORM_PASSWORD"
	EnvFormConfirmationPassword = "FORM_CONFIRMATION_PASSWORD"
	EnvPasswordStrengthLabel    = "PASSWORD_STRENGTH_LABEL"
	EnvSuccessMessage           = "SUCCESS_MESSAGE"
	EnvSubmitButton             = "SUBMIT_BUTTON"

	EnvAccountWelcomeMessage = "ACCOUNT_WELCOME_MESSAGE"

	EnvSearchInput        = "SEARCH_INPUT"
	EnvSearchSubmit       = "SEARCH_SUBMIT"
	EnvSearchResultTitles = "SEARCH_RESULT_TITLES"

	EnvUserNameInput     = "USER_NAME_INPUT"
	EnvPasswordInput     = "PASSWORD_INPUT"
	EnvLoginButton       = "LOGIN_BUTTON"
	EnvLoginErrorMessage = "LOGIN_ERROR_MESSAGE"
)

// reader collects every locator error instead of stopping at the first one
type reader struct {
	lookuper envconfig.Lookuper
	errs     []error
}

func (r *reader) value(key string) string {
	v, _ := r.lookuper.Lookup(key)
	return strings.TrimSpace(v)
}

func (r *reader) locator(key string) entities.Locator {
	raw, _ := r.lookuper.Lookup(key)
	loc, err := entities.ParseLocator(raw, key)
	if err != nil {
		r.errs = append(r.errs, err)
	}
	return loc
}

func (r *reader) optionalLocator(key string) *entities.Locator {
	if r.value(key) == "" {
		return nil
	}
	loc := r.locator(key)
	return &loc
}

// FromLookuper builds the configuration registry from an environment-like source.
// Every required locator is parsed immediately; the returned error joins one
// *entities.ConfigurationError per missing or malformed entry.
func FromLookuper(l envconfig.Lookuper) (*entities.Configuration, error) {
	r := &reader{lookuper: l}

	cfg := &entities.Configuration{
		BaseURL:       r.value(EnvBaseURL),
		LoginURL:      r.value(EnvLoginURL),
		SubmissionURL: r.value(EnvSubmissionURL),
		AccountURL:    r.value(EnvAccountURL),
		SearchURL:     r.value(EnvSearchURL),
		Username:      r.value(EnvUsername),
		Password:      r.value(EnvPassword),
		Form: entities.FormLocators{
			FirstName:       r.locator(EnvFormName),
			LastName:        r.locator(EnvFormLastName),
			Email:           r.locator(EnvFormEmail),
			Password:        r.locator(EnvFormPassword),
			ConfirmPassword: r.locator(EnvFormConfirmationPassword),
			StrengthLabel:   r.locator(EnvPasswordStrengthLabel),
			SuccessMessage:  r.locator(EnvSuccessMessage),
			SubmitButton:    r.locator(EnvSubmitButton),
		},
		Account: entities.AccountLocators{
			WelcomeMessage: r.locator(EnvAccountWelcomeMessage),
		},
		Search: entities.SearchLocators{
			Input:        r.locator(EnvSearchInput),
			Submit:       r.locator(EnvSearchSubmit),
			ResultTitles: r.locator(EnvSearchResultTitles),
		},
		Login: entities.LoginLocators{
			Username:     r.locator(EnvUserNameInput),
			Password:     r.locator(EnvPasswordInput),
			Submit:       r.locator(EnvLoginButton),
			ErrorMessage: r.optionalLocator(EnvLoginErrorMessage),
		},
	}

	if cfg.SearchURL == "" {
		cfg.SearchURL = cfg.BaseURL
	}

	if err := errors.Join(r.errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DotenvLookuper parses dotenv formatted text into a lookuper
func DotenvLookuper(contents string) (envconfig.Lookuper, error) {
	values, err := godotenv.Unmarshal(contents)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dotenv contents: %w", err)
	}
	return envconfig.MapLookuper(values), nil
}

// LoadDotenv loads .env files into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotenv(logger logrus.FieldLogger, files ...string) bool {
	if err := godotenv.Load(files...); err != nil {
		logger.Warnf(".env file not found, using environment variables: %v", err)
		return false
	}
	return true
}
