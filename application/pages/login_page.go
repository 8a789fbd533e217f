package pages

import (
	"context"
	"fmt"
	"strings"

	"qa_automation/domain/entities"
	"qa_automation/domain/interfaces"
)

// LoginPage drives the customer login page
type LoginPage struct {
	actions interfaces.PageActions
	config  *entities.Configuration
}

// NewLoginPage creates a login page object
func NewLoginPage(actions interfaces.PageActions, config *entities.Configuration) *LoginPage {
	return &LoginPage{actions: actions, config: config}
}

// OpenLogin navigates to LOGIN_URL
func (p *LoginPage) OpenLogin(ctx context.Context) error {
	return p.actions.Open(ctx, p.config.LoginURL)
}

func (p *LoginPage) FillUsername(ctx context.Context, username string) error {
	return p.actions.SendKeys(ctx, p.config.Login.Username, username)
}

func (p *LoginPage) FillPassword(ctx context.Context, password string) error {
	return p.actions.SendKeys(ctx, p.config.Login.Password, password)
}

func (p *LoginPage) Submit(ctx context.Context) error {
	return p.actions.Click(ctx, p.config.Login.Submit)
}

// Login fills both credentials and submits. It stops at the first failing step.
func (p *LoginPage) Login(ctx context.Context, username, password string) error {
	if err := p.FillUsername(ctx, username); err != nil {
		return err
	}
	if err := p.FillPassword(ctx, password); err != nil {
		return err
	}
	return p.Submit(ctx)
}

// IsRedirectedToAccount reports whether the current URL contains ACCOUNT_URL
// and is no longer the login page
func (p *LoginPage) IsRedirectedToAccount(ctx context.Context) (bool, error) {
	return redirectedTo(ctx, p.actions, p.config.AccountURL, p.config.LoginURL)
}

// IsErrorVisible reports whether the login error message is shown.
// Without a configured error locator it reports false without touching the browser.
func (p *LoginPage) IsErrorVisible(ctx context.Context) bool {
	if p.config.Login.ErrorMessage == nil {
		return false
	}
	return p.actions.IsVisible(ctx, *p.config.Login.ErrorMessage).Visible()
}

// ErrorText returns the login error message, "" when no error locator is configured
func (p *LoginPage) ErrorText(ctx context.Context) (string, error) {
	if p.config.Login.ErrorMessage == nil {
		return "", nil
	}
	return p.actions.GetText(ctx, *p.config.Login.ErrorMessage)
}

// redirectedTo reports whether the current URL contains target and no longer
// contains from. An empty target never matches; from is ignored when empty or
// when target itself contains it.
func redirectedTo(ctx context.Context, actions interfaces.PageActions, target, from string) (bool, error) {
	if target == "" {
		return false, nil
	}
	current, err := actions.CurrentURL(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read current URL: %w", err)
	}
	if !strings.Contains(current, target) {
		return false, nil
	}

	from = strings.TrimRight(from, "/")
	if from != "" && !strings.Contains(target, from) && strings.Contains(current, from) {
		return false, nil
	}
	return true, nil
}
