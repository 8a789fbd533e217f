// Package assertions holds immediate, non-waiting checks against the current page.
// They report through testify so they work with *testing.T and suite.T() alike.
package assertions

import (
	"fmt"
	"strings"

	"github.com/stretchr/testify/assert"

	"qa_automation/domain/entities"
	"qa_automation/domain/interfaces"
)

type tHelper interface {
	Helper()
}

// TextEquals asserts that actual equals expected
func TextEquals(t assert.TestingT, actual, expected string, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if actual == expected {
		return true
	}
	return assert.Fail(t, fmt.Sprintf("expected text %q, got %q", expected, actual), msgAndArgs...)
}

// ElementVisible asserts that the element exists and is displayed
func ElementVisible(t assert.TestingT, driver interfaces.Driver, locator entities.Locator, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	el, err := first(driver, locator)
	if err != nil {
		return assert.Fail(t, err.Error(), msgAndArgs...)
	}
	if el == nil {
		return assert.Fail(t, fmt.Sprintf("element not found: %s", locator), msgAndArgs...)
	}
	displayed, err := el.IsDisplayed()
	if err != nil {
		return assert.Fail(t, fmt.Sprintf("checking visibility of %s: %v", locator, err), msgAndArgs...)
	}
	if !displayed {
		return assert.Fail(t, fmt.Sprintf("element %s is not visible", locator), msgAndArgs...)
	}
	return true
}

// ElementContainsText asserts that the trimmed text of the element contains expected
func ElementContainsText(t assert.TestingT, driver interfaces.Driver, locator entities.Locator, expected string, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	el, err := first(driver, locator)
	if err != nil {
		return assert.Fail(t, err.Error(), msgAndArgs...)
	}
	if el == nil {
		return assert.Fail(t, fmt.Sprintf("element not found: %s", locator), msgAndArgs...)
	}
	text, err := el.Text()
	if err != nil {
		return assert.Fail(t, fmt.Sprintf("reading text of %s: %v", locator, err), msgAndArgs...)
	}
	actual := strings.TrimSpace(text)
	if !strings.Contains(actual, expected) {
		return assert.Fail(t, fmt.Sprintf("%q not found in text of %s: %q", expected, locator, actual), msgAndArgs...)
	}
	return true
}

// ElementNotVisible asserts that the element is hidden. A missing element counts as hidden.
func ElementNotVisible(t assert.TestingT, driver interfaces.Driver, locator entities.Locator, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	el, err := first(driver, locator)
	if err != nil {
		return assert.Fail(t, err.Error(), msgAndArgs...)
	}
	if el == nil {
		return true
	}
	displayed, err := el.IsDisplayed()
	if err != nil {
		return assert.Fail(t, fmt.Sprintf("checking visibility of %s: %v", locator, err), msgAndArgs...)
	}
	if displayed {
		return assert.Fail(t, fmt.Sprintf("element %s should be hidden but is visible", locator), msgAndArgs...)
	}
	return true
}

// ElementExists asserts that at least one element matches the locator
func ElementExists(t assert.TestingT, driver interfaces.Driver, locator entities.Locator, msgAndArgs ...interface{}) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	el, err := first(driver, locator)
	if err != nil {
		return assert.Fail(t, err.Error(), msgAndArgs...)
	}
	if el == nil {
		return assert.Fail(t, fmt.Sprintf("expected element does not exist: %s", locator), msgAndArgs...)
	}
	return true
}

func first(driver interfaces.Driver, locator entities.Locator) (interfaces.Element, error) {
	elements, err := driver.FindElements(locator)
	if err != nil {
		return nil, fmt.Errorf("finding %s: %w", locator, err)
	}
	if len(elements) == 0 {
		return nil, nil
	}
	return elements[0], nil
}
