package pages

import (
	"context"

	"qa_automation/domain/entities"
	"qa_automation/domain/interfaces"
)

// AccountPage reads the customer account page
type AccountPage struct {
	actions interfaces.PageActions
	config  *entities.Configuration
}

func NewAccountPage(actions interfaces.PageActions, config *entities.Configuration) *AccountPage {
	return &AccountPage{actions: actions, config: config}
}

// OpenAccount navigates to ACCOUNT_URL
func (p *AccountPage) OpenAccount(ctx context.Context) error {
	return p.actions.Open(ctx, p.config.AccountURL)
}

func (p *AccountPage) IsWelcomeMessageVisible(ctx context.Context) bool {
	return p.actions.IsVisible(ctx, p.config.Account.WelcomeMessage).Visible()
}

func (p *AccountPage) WelcomeMessageText(ctx context.Context) (string, error) {
	return p.actions.GetText(ctx, p.config.Account.WelcomeMessage)
}
