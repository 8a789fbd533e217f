package assertions

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"qa_automation/domain/entities"
	"qa_automation/domain/interfaces"
)

// recorder captures failures instead of failing the running test
type recorder struct {
	messages []string
}

func (r *recorder) Errorf(format string, args ...interface{}) {
	r.messages = append(r.messages, fmt.Sprintf(format, args...))
}

func (r *recorder) failed() bool { return len(r.messages) > 0 }

type stubElement struct {
	interfaces.Element
	text    string
	visible bool
}

func (e stubElement) Text() (string, error) { return e.text, nil }

func (e stubElement) IsDisplayed() (bool, error) { return e.visible, nil }

type stubDriver struct {
	interfaces.Driver
	elements map[entities.Locator]stubElement
	err      error
}

func (d stubDriver) FindElements(locator entities.Locator) ([]interfaces.Element, error) {
	if d.err != nil {
		return nil, d.err
	}
	el, ok := d.elements[locator]
	if !ok {
		return nil, nil
	}
	return []interfaces.Element{el}, nil
}

var (
	banner  = entities.Locator{Strategy: entities.StrategyCSS, Value: ".page-title span"}
	hidden  = entities.Locator{Strategy: entities.StrategyID, Value: "spinner"}
	missing = entities.Locator{Strategy: entities.StrategyID, Value: "missing"}
)

func newDriver() stubDriver {
	return stubDriver{elements: map[entities.Locator]stubElement{
		banner: {text: "  My Account \n", visible: true},
		hidden: {visible: false},
	}}
}

func TestTextEquals(t *testing.T) {
	r := &recorder{}
	assert.True(t, TextEquals(r, "Strong", "Strong"))
	assert.False(t, r.failed())

	assert.False(t, TextEquals(r, "Weak", "Strong"))
	assert.Contains(t, r.messages[0], `expected text "Strong", got "Weak"`)
}

func TestElementVisible(t *testing.T) {
	d := newDriver()

	r := &recorder{}
	assert.True(t, ElementVisible(r, d, banner))
	assert.False(t, r.failed())

	r = &recorder{}
	assert.False(t, ElementVisible(r, d, hidden))
	assert.Contains(t, r.messages[0], "is not visible")

	r = &recorder{}
	assert.False(t, ElementVisible(r, d, missing))
	assert.Contains(t, r.messages[0], "element not found: id,missing")
}

func TestElementContainsText(t *testing.T) {
	d := newDriver()

	r := &recorder{}
	assert.True(t, ElementContainsText(r, d, banner, "My Account"))
	assert.False(t, r.failed())

	r = &recorder{}
	assert.False(t, ElementContainsText(r, d, banner, "Welcome"))
	assert.Contains(t, r.messages[0], `"Welcome" not found`)
}

func TestElementNotVisible(t *testing.T) {
	d := newDriver()

	r := &recorder{}
	assert.True(t, ElementNotVisible(r, d, hidden))
	assert.True(t, ElementNotVisible(r, d, missing))
	assert.False(t, r.failed())

	assert.False(t, ElementNotVisible(r, d, banner))
	assert.Contains(t, r.messages[0], "should be hidden")
}

func TestElementExists(t *testing.T) {
	d := newDriver()

	r := &recorder{}
	assert.True(t, ElementExists(r, d, hidden))
	assert.False(t, r.failed())

	assert.False(t, ElementExists(r, d, missing))
	assert.Contains(t, r.messages[0], "does not exist")
}

func TestDriverErrorFails(t *testing.T) {
	d := stubDriver{err: errors.New("invalid session id")}

	r := &recorder{}
	assert.False(t, ElementNotVisible(r, d, banner))
	assert.Contains(t, r.messages[0], "invalid session id")
}
