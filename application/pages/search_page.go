package pages

import (
	"context"

	"qa_automation/domain/entities"
	"qa_automation/domain/interfaces"
)

// SearchProductPage drives the catalog search box and its result list
type SearchProductPage struct {
	actions interfaces.PageActions
	config  *entities.Configuration
}

func NewSearchProductPage(actions interfaces.PageActions, config *entities.Configuration) *SearchProductPage {
	return &SearchProductPage{actions: actions, config: config}
}

// OpenSearch navigates to SEARCH_URL, or BASE_URL when no search URL is set
func (p *SearchProductPage) OpenSearch(ctx context.Context) error {
	url := p.config.SearchURL
	if url == "" {
		url = p.config.BaseURL
	}
	return p.actions.Open(ctx, url)
}

func (p *SearchProductPage) TypeQuery(ctx context.Context, query string) error {
	return p.actions.SendKeys(ctx, p.config.Search.Input, query)
}

func (p *SearchProductPage) SubmitSearch(ctx context.Context) error {
	return p.actions.Click(ctx, p.config.Search.Submit)
}

// Search types the query and submits it
func (p *SearchProductPage) Search(ctx context.Context, query string) error {
	if err := p.TypeQuery(ctx, query); err != nil {
		return err
	}
	return p.SubmitSearch(ctx)
}

func (p *SearchProductPage) ResultsVisible(ctx context.Context) bool {
	return p.actions.IsVisible(ctx, p.config.Search.ResultTitles).Visible()
}

// ResultTitles returns the titles of the listed products in page order
func (p *SearchProductPage) ResultTitles(ctx context.Context) ([]string, error) {
	return p.actions.GetTexts(ctx, p.config.Search.ResultTitles)
}
