package pages

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qa_automation/domain/entities"
	"qa_automation/domain/interfaces"
)

type fakeElement struct {
	text         string
	value        string
	hidden       bool
	disabled     bool
	enabledAfter int
	enabledCalls int
	clicks       int
	// intercepted is the number of clicks rejected before one goes through, -1 rejects all
	intercepted int
	scrolled    bool
	uploaded    string
}

var errIntercepted = errors.New("element click intercepted: other element would receive the click")

func (e *fakeElement) Click() error {
	e.clicks++
	if e.intercepted < 0 || e.clicks <= e.intercepted {
		return errIntercepted
	}
	return nil
}

func (e *fakeElement) Clear() error { e.value = ""; return nil }

func (e *fakeElement) SendKeys(text string) error { e.value += text; return nil }

func (e *fakeElement) Text() (string, error) { return e.text, nil }

func (e *fakeElement) IsDisplayed() (bool, error) { return !e.hidden, nil }

func (e *fakeElement) IsEnabled() (bool, error) {
	e.enabledCalls++
	if e.disabled {
		return false, nil
	}
	return e.enabledCalls > e.enabledAfter, nil
}

func (e *fakeElement) ScrollIntoView() error { e.scrolled = true; return nil }

func (e *fakeElement) UploadFile(path string) error { e.uploaded = path; return nil }

type fakeWindow struct {
	handle string
	title  string
}

type fakeDriver struct {
	elements    map[entities.Locator][]*fakeElement
	appearAfter map[entities.Locator]int
	findCalls   map[entities.Locator]int
	findErr     error

	url     string
	history []string

	windows []fakeWindow
	current int

	alertOpen bool
	quit      bool
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		elements:    map[entities.Locator][]*fakeElement{},
		appearAfter: map[entities.Locator]int{},
		findCalls:   map[entities.Locator]int{},
		windows:     []fakeWindow{{handle: "w0", title: "Home"}},
	}
}

func (d *fakeDriver) Get(url string) error {
	d.history = append(d.history, url)
	d.url = url
	return nil
}

func (d *fakeDriver) Refresh() error { return nil }

func (d *fakeDriver) Back() error {
	if len(d.history) > 1 {
		d.url = d.history[len(d.history)-2]
	}
	return nil
}

func (d *fakeDriver) Forward() error { return nil }

func (d *fakeDriver) CurrentURL() (string, error) { return d.url, nil }

func (d *fakeDriver) Title() (string, error) { return d.windows[d.current].title, nil }

func (d *fakeDriver) FindElements(locator entities.Locator) ([]interfaces.Element, error) {
	d.findCalls[locator]++
	if d.findErr != nil {
		return nil, d.findErr
	}
	if d.findCalls[locator] <= d.appearAfter[locator] {
		return nil, nil
	}
	var out []interfaces.Element
	for _, el := range d.elements[locator] {
		out = append(out, el)
	}
	return out, nil
}

func (d *fakeDriver) AcceptAlert() error {
	if !d.alertOpen {
		return entities.ErrNoAlert
	}
	d.alertOpen = false
	return nil
}

func (d *fakeDriver) WindowHandles() ([]string, error) {
	handles := make([]string, 0, len(d.windows))
	for _, w := range d.windows {
		handles = append(handles, w.handle)
	}
	return handles, nil
}

func (d *fakeDriver) SwitchWindow(handle string) error {
	for i, w := range d.windows {
		if w.handle == handle {
			d.current = i
			return nil
		}
	}
	return errors.New("no such window")
}

func (d *fakeDriver) Screenshot() ([]byte, error) { return []byte("png"), nil }

func (d *fakeDriver) Quit() error { d.quit = true; return nil }

var (
	firstName = entities.Locator{Strategy: entities.StrategyCSS, Value: "#firstname"}
	submit    = entities.Locator{Strategy: entities.StrategyCSS, Value: "button.submit"}
	missing   = entities.Locator{Strategy: entities.StrategyID, Value: "nope"}
	titles    = entities.Locator{Strategy: entities.StrategyCSS, Value: ".product-item-name a"}
)

const (
	testTimeout  = 200 * time.Millisecond
	testInterval = 10 * time.Millisecond
)

func newActions(d *fakeDriver) *BaseActions {
	return NewBaseActions(d, WithTimeout(testTimeout), WithPollInterval(testInterval))
}

func TestNewBaseActionsDefaults(t *testing.T) {
	d := newFakeDriver()
	b := NewBaseActions(d)
	assert.Same(t, d, b.Driver())
	assert.Equal(t, DefaultTimeout, b.Timeout())
	assert.Equal(t, DefaultPollInterval, b.interval)

	b = NewBaseActions(newFakeDriver(), WithTimeout(0), WithPollInterval(-1))
	assert.Equal(t, DefaultTimeout, b.Timeout())
	assert.Equal(t, DefaultPollInterval, b.interval)
}

func TestFindPresentElement(t *testing.T) {
	d := newFakeDriver()
	el := &fakeElement{text: "hello"}
	d.elements[firstName] = []*fakeElement{el}

	got, err := newActions(d).Find(context.Background(), firstName)
	require.NoError(t, err)
	assert.Same(t, el, got)
}

func TestFindWaitsForElement(t *testing.T) {
	d := newFakeDriver()
	d.elements[firstName] = []*fakeElement{{}}
	d.appearAfter[firstName] = 3

	_, err := newActions(d).Find(context.Background(), firstName)
	require.NoError(t, err)
	assert.Equal(t, 4, d.findCalls[firstName])
}

func TestFindTimesOut(t *testing.T) {
	d := newFakeDriver()

	start := time.Now()
	_, err := newActions(d).Find(context.Background(), missing)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrTimeout))

	var timeout *entities.TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, missing, timeout.Locator)
	assert.Equal(t, testTimeout, timeout.Timeout)
	assert.Nil(t, timeout.Last)

	assert.GreaterOrEqual(t, elapsed, testTimeout-testInterval)
	assert.Less(t, elapsed, testTimeout+150*time.Millisecond)
}

func TestFindKeepsLastDriverError(t *testing.T) {
	d := newFakeDriver()
	d.findErr = errors.New("stale element reference")

	_, err := newActions(d).Find(context.Background(), firstName)
	require.Error(t, err)

	var timeout *entities.TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, d.findErr, timeout.Last)
	assert.True(t, errors.Is(err, d.findErr))
	assert.Greater(t, d.findCalls[firstName], 1)
}

func TestFindStopsOnParentCancel(t *testing.T) {
	d := newFakeDriver()
	b := NewBaseActions(d, WithTimeout(5*time.Second), WithPollInterval(testInterval))

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(30*time.Millisecond, cancel)

	start := time.Now()
	_, err := b.Find(ctx, missing)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, errors.Is(err, entities.ErrTimeout))
	assert.Less(t, time.Since(start), time.Second)
}

func TestFindAll(t *testing.T) {
	d := newFakeDriver()
	d.elements[titles] = []*fakeElement{{text: "Joust Duffle Bag"}, {text: "Push It Messenger Bag"}}

	elements, err := newActions(d).FindAll(context.Background(), titles)
	require.NoError(t, err)
	assert.Len(t, elements, 2)

	_, err = newActions(d).FindAll(context.Background(), missing)
	assert.True(t, errors.Is(err, entities.ErrTimeout))
}

func TestClickWaitsUntilEnabled(t *testing.T) {
	d := newFakeDriver()
	el := &fakeElement{enabledAfter: 2}
	d.elements[submit] = []*fakeElement{el}

	require.NoError(t, newActions(d).Click(context.Background(), submit))
	assert.Equal(t, 1, el.clicks)
	assert.Equal(t, 3, el.enabledCalls)
}

func TestClickNotClickable(t *testing.T) {
	tests := []struct {
		name string
		el   *fakeElement
	}{
		{name: "disabled", el: &fakeElement{disabled: true}},
		{name: "hidden", el: &fakeElement{hidden: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newFakeDriver()
			d.elements[submit] = []*fakeElement{tt.el}

			err := newActions(d).Click(context.Background(), submit)
			require.Error(t, err)
			assert.True(t, errors.Is(err, entities.ErrNotClickable))
			assert.True(t, errors.Is(err, entities.ErrTimeout))
			assert.Contains(t, err.Error(), submit.String())
			assert.Zero(t, tt.el.clicks)

			var notClickable *entities.NotClickableError
			require.ErrorAs(t, err, &notClickable)
			assert.Equal(t, submit, notClickable.Locator)
		})
	}
}

func TestClickRetriesInterceptedClick(t *testing.T) {
	d := newFakeDriver()
	el := &fakeElement{intercepted: 2}
	d.elements[submit] = []*fakeElement{el}

	require.NoError(t, newActions(d).Click(context.Background(), submit))
	assert.Equal(t, 3, el.clicks)
}

func TestClickInterceptedUntilTimeout(t *testing.T) {
	d := newFakeDriver()
	el := &fakeElement{intercepted: -1}
	d.elements[submit] = []*fakeElement{el}

	start := time.Now()
	err := newActions(d).Click(context.Background(), submit)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrNotClickable))
	assert.Less(t, elapsed, testTimeout+150*time.Millisecond)

	var timeout *entities.TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.True(t, errors.Is(timeout.Last, errIntercepted))
	assert.Greater(t, el.clicks, 1)
}

func TestSendKeysReplacesValue(t *testing.T) {
	d := newFakeDriver()
	el := &fakeElement{value: "old"}
	d.elements[firstName] = []*fakeElement{el}

	require.NoError(t, newActions(d).SendKeys(context.Background(), firstName, "Ada"))
	assert.Equal(t, "Ada", el.value)
}

func TestSendKeysMissingElement(t *testing.T) {
	err := newActions(newFakeDriver()).SendKeys(context.Background(), missing, "x")
	assert.True(t, errors.Is(err, entities.ErrTimeout))
}

func TestGetText(t *testing.T) {
	d := newFakeDriver()
	d.elements[firstName] = []*fakeElement{{}}
	d.elements[submit] = []*fakeElement{{text: "Create an Account"}}
	b := newActions(d)

	text, err := b.GetText(context.Background(), firstName)
	require.NoError(t, err)
	assert.Equal(t, "", text)

	text, err = b.GetText(context.Background(), submit)
	require.NoError(t, err)
	assert.Equal(t, "Create an Account", text)
}

func TestGetTextsKeepsOrder(t *testing.T) {
	d := newFakeDriver()
	d.elements[titles] = []*fakeElement{{text: "b"}, {text: "a"}, {text: "c"}}

	texts, err := newActions(d).GetTexts(context.Background(), titles)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, texts)
}

func TestIsVisible(t *testing.T) {
	d := newFakeDriver()
	visible := &fakeElement{}
	d.elements[firstName] = []*fakeElement{visible}
	d.elements[submit] = []*fakeElement{{hidden: true}}
	b := newActions(d)

	v := b.IsVisible(context.Background(), firstName)
	assert.True(t, v.Visible())
	assert.Same(t, visible, v.Element)

	assert.Equal(t, interfaces.NotVisible, b.IsVisible(context.Background(), submit))
	assert.False(t, b.IsVisible(context.Background(), missing).Visible())
}

func TestIsVisibleCanceledContext(t *testing.T) {
	b := NewBaseActions(newFakeDriver(), WithTimeout(5*time.Second), WithPollInterval(testInterval))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	assert.False(t, b.IsVisible(ctx, missing).Visible())
	assert.Less(t, time.Since(start), time.Second)
}

func TestScrollAndUpload(t *testing.T) {
	d := newFakeDriver()
	el := &fakeElement{}
	d.elements[firstName] = []*fakeElement{el}
	b := newActions(d)

	require.NoError(t, b.ScrollToElement(context.Background(), firstName))
	assert.True(t, el.scrolled)

	require.NoError(t, b.UploadFile(context.Background(), firstName, "/tmp/avatar.png"))
	assert.Equal(t, "/tmp/avatar.png", el.uploaded)
}

func TestNavigation(t *testing.T) {
	d := newFakeDriver()
	b := newActions(d)
	ctx := context.Background()

	require.NoError(t, b.Open(ctx, "https://example.test/login"))
	require.NoError(t, b.Open(ctx, "https://example.test/account"))
	require.NoError(t, b.GoBack(ctx))

	url, err := b.CurrentURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/login", url)

	title, err := b.Title(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Home", title)
}

func TestHandleWindowAlert(t *testing.T) {
	d := newFakeDriver()
	b := newActions(d)

	err := b.HandleWindowAlert(context.Background())
	assert.True(t, errors.Is(err, entities.ErrNoAlert))

	d.alertOpen = true
	require.NoError(t, b.HandleWindowAlert(context.Background()))
	assert.False(t, d.alertOpen)
}

func TestSwitchToWindow(t *testing.T) {
	d := newFakeDriver()
	d.windows = []fakeWindow{
		{handle: "w0", title: "Home"},
		{handle: "w1", title: "Customer Login"},
		{handle: "w2", title: "My Account"},
	}
	b := newActions(d)

	ok, err := b.SwitchToWindow(context.Background(), "Customer Login")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, d.current)

	ok, err = b.SwitchToWindow(context.Background(), "Checkout")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, d.current)
}

func TestClose(t *testing.T) {
	d := newFakeDriver()
	require.NoError(t, newActions(d).Close())
	assert.True(t, d.quit)
}
