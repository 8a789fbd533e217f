package pages

import (
	"context"

	"qa_automation/domain/entities"
	"qa_automation/domain/interfaces"
)

// FormSubmissionPage drives the create account form
type FormSubmissionPage struct {
	actions interfaces.PageActions
	config  *entities.Configuration
}

// NewFormSubmissionPage creates a form submission page object
func NewFormSubmissionPage(actions interfaces.PageActions, config *entities.Configuration) *FormSubmissionPage {
	return &FormSubmissionPage{actions: actions, config: config}
}

// OpenSubmission navigates to SUBMISSION_URL
func (p *FormSubmissionPage) OpenSubmission(ctx context.Context) error {
	return p.actions.Open(ctx, p.config.SubmissionURL)
}

func (p *FormSubmissionPage) FillName(ctx context.Context, name string) error {
	return p.actions.SendKeys(ctx, p.config.Form.FirstName, name)
}

func (p *FormSubmissionPage) FillLastName(ctx context.Context, lastName string) error {
	return p.actions.SendKeys(ctx, p.config.Form.LastName, lastName)
}

func (p *FormSubmissionPage) FillEmail(ctx context.Context, email string) error {
	return p.actions.SendKeys(ctx, p.config.Form.Email, email)
}

func (p *FormSubmissionPage) FillPassword(ctx context.Context, password string) error {
	return p.actions.SendKeys(ctx, p.config.Form.Password, password)
}

func (p *FormSubmissionPage) FillConfirmPassword(ctx context.Context, password string) error {
	return p.actions.SendKeys(ctx, p.config.Form.ConfirmPassword, password)
}

// StrengthLabelText returns the password strength meter label
func (p *FormSubmissionPage) StrengthLabelText(ctx context.Context) (string, error) {
	return p.actions.GetText(ctx, p.config.Form.StrengthLabel)
}

func (p *FormSubmissionPage) SubmitForm(ctx context.Context) error {
	return p.actions.Click(ctx, p.config.Form.SubmitButton)
}

// Register fills every field of the form in order and submits it.
// It stops at the first failing step; fields already typed are left as they are.
func (p *FormSubmissionPage) Register(ctx context.Context, r entities.Registration) error {
	steps := []struct {
		locator entities.Locator
		value   string
	}{
		{p.config.Form.FirstName, r.FirstName},
		{p.config.Form.LastName, r.LastName},
		{p.config.Form.Email, r.Email},
		{p.config.Form.Password, r.Password},
		{p.config.Form.ConfirmPassword, r.ConfirmPassword},
	}
	for _, step := range steps {
		if err := p.actions.SendKeys(ctx, step.locator, step.value); err != nil {
			return err
		}
	}
	return p.SubmitForm(ctx)
}

// IsRedirectedToAccountPage reports whether the current URL contains ACCOUNT_URL
// and is no longer the submission form
func (p *FormSubmissionPage) IsRedirectedToAccountPage(ctx context.Context) (bool, error) {
	return redirectedTo(ctx, p.actions, p.config.AccountURL, p.config.SubmissionURL)
}

func (p *FormSubmissionPage) IsSuccessMessageDisplayed(ctx context.Context) bool {
	return p.actions.IsVisible(ctx, p.config.Form.SuccessMessage).Visible()
}
