package entities

import (
	"fmt"
	"strings"
)

// Strategy is a WebDriver element location strategy
type Strategy string

const (
	StrategyID              Strategy = "id"
	StrategyName            Strategy = "name"
	StrategyXPath           Strategy = "xpath"
	StrategyCSS             Strategy = "css selector"
	StrategyClassName       Strategy = "class name"
	StrategyTagName         Strategy = "tag name"
	StrategyLinkText        Strategy = "link text"
	StrategyPartialLinkText Strategy = "partial link text"
)

// strategyTokens maps the compact tokens used in locator strings to strategies
var strategyTokens = map[string]Strategy{
	"id":    StrategyID,
	"name":  StrategyName,
	"xpath": StrategyXPath,
	"css":   StrategyCSS,
	"class": StrategyClassName,
	"tag":   StrategyTagName,
	"link":  StrategyLinkText,
	"plink": StrategyPartialLinkText,
}

// Token returns the compact token for the strategy, or "" if the strategy is unknown
func (s Strategy) Token() string {
	for token, strategy := range strategyTokens {
		if strategy == s {
			return token
		}
	}
	return ""
}

// Valid reports whether s is one of the known strategies
func (s Strategy) Valid() bool {
	return s.Token() != ""
}

// Locator identifies a UI element by strategy and value
type Locator struct {
	Strategy Strategy `json:"strategy"`
	Value    string   `json:"value"`
}

// String renders the locator in its "<token>,<value>" source form
func (l Locator) String() string {
	return l.Strategy.Token() + "," + l.Value
}

// Validate checks the locator invariants
func (l Locator) Validate() error {
	if !l.Strategy.Valid() {
		return fmt.Errorf("unknown locator strategy %q", string(l.Strategy))
	}
	if l.Value == "" {
		return fmt.Errorf("locator value is empty")
	}
	return nil
}

// ParseLocator converts "css,#id" into Locator{StrategyCSS, "#id"}.
// The string is split on the first comma only, so the value may contain commas.
// field names the configuration entry and is used in error messages.
func ParseLocator(raw, field string) (Locator, error) {
	if field == "" {
		field = "UNKNOWN"
	}
	if strings.TrimSpace(raw) == "" {
		return Locator{}, &ConfigurationError{Field: field, Reason: "locator value is empty or not defined"}
	}

	token, value, ok := strings.Cut(raw, ",")
	if !ok {
		return Locator{}, &ConfigurationError{
			Field:  field,
			Reason: fmt.Sprintf("expected <strategy>,<value>, got %q", raw),
		}
	}

	token = strings.ToLower(strings.TrimSpace(token))
	strategy, known := strategyTokens[token]
	if !known {
		return Locator{}, &ConfigurationError{
			Field:  field,
			Reason: fmt.Sprintf("unrecognized locator strategy key %q", token),
		}
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return Locator{}, &ConfigurationError{Field: field, Reason: "locator value after strategy is empty"}
	}

	return Locator{Strategy: strategy, Value: value}, nil
}
