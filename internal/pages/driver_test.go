package pages

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/swaglabs-qa/storefront-e2e/internal/wait"
)

var testOptions = wait.Options{Timeout: 200 * time.Millisecond, Interval: 5 * time.Millisecond}

type element struct {
	count   int
	visible bool
	texts   []string
	attrs   map[string]string
}

// fakeDriver is an in-memory DOM keyed by selector
type fakeDriver struct {
	mu       sync.Mutex
	base     string
	url      string
	title    string
	elements map[string]*element
	history  []string
	pos      int
	clicks   []string
	fills    map[string]string
	selected map[string]string
	onClick  map[string]func(*fakeDriver)
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		base:     "https://www.saucedemo.com",
		elements: make(map[string]*element),
		fills:    make(map[string]string),
		selected: make(map[string]string),
		onClick:  make(map[string]func(*fakeDriver)),
		pos:      -1,
	}
}

// show renders selector as visible with the given texts
func (f *fakeDriver) show(selector string, texts ...string) *fakeDriver {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := max(len(texts), 1)
	f.elements[selector] = &element{count: n, visible: true, texts: texts}
	return f
}

func (f *fakeDriver) hide(selector string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if el, ok := f.elements[selector]; ok {
		el.visible = false
	}
}

func (f *fakeDriver) remove(selector string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.elements, selector)
}

func (f *fakeDriver) setAttr(selector, name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	el, ok := f.elements[selector]
	if !ok {
		el = &element{count: 1, visible: true}
		f.elements[selector] = el
	}
	if el.attrs == nil {
		el.attrs = make(map[string]string)
	}
	el.attrs[name] = value
}

// later runs fn after d, to simulate asynchronous rendering
func (f *fakeDriver) later(d time.Duration, fn func(*fakeDriver)) {
	time.AfterFunc(d, func() { fn(f) })
}

func (f *fakeDriver) clicked() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.clicks...)
}

func (f *fakeDriver) Navigate(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.url = f.base + path
	f.history = append(f.history[:f.pos+1], f.url)
	f.pos = len(f.history) - 1
	return nil
}

func (f *fakeDriver) URL(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.url, nil
}

func (f *fakeDriver) Title(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.title, nil
}

func (f *fakeDriver) Click(_ context.Context, selector string) error {
	f.mu.Lock()
	el, ok := f.elements[selector]
	if !ok || el.count == 0 {
		f.mu.Unlock()
		return fmt.Errorf("no element matches %s", selector)
	}
	f.clicks = append(f.clicks, selector)
	hook := f.onClick[selector]
	f.mu.Unlock()

	if hook != nil {
		hook(f)
	}
	return nil
}

func (f *fakeDriver) Fill(_ context.Context, selector, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.elements[selector]; !ok {
		return fmt.Errorf("no element matches %s", selector)
	}
	f.fills[selector] = value
	return nil
}

func (f *fakeDriver) SelectOption(_ context.Context, selector, value string) error {
	f.mu.Lock()
	f.selected[selector] = value
	hook := f.onClick[selector]
	f.mu.Unlock()

	if hook != nil {
		hook(f)
	}
	return nil
}

func (f *fakeDriver) Count(_ context.Context, selector string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if el, ok := f.elements[selector]; ok {
		return el.count, nil
	}
	return 0, nil
}

func (f *fakeDriver) IsVisible(_ context.Context, selector string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	el, ok := f.elements[selector]
	return ok && el.visible, nil
}

func (f *fakeDriver) Texts(_ context.Context, selector string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if el, ok := f.elements[selector]; ok {
		return append([]string(nil), el.texts...), nil
	}
	return nil, nil
}

func (f *fakeDriver) Attribute(_ context.Context, selector, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if strings.HasPrefix(selector, ":nth-match(") {
		selector = selector[len(":nth-match("):strings.LastIndex(selector, ",")]
	}
	el, ok := f.elements[selector]
	if !ok {
		return "", fmt.Errorf("no element matches %s", selector)
	}
	return el.attrs[name], nil
}

func (f *fakeDriver) Back(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pos > 0 {
		f.pos--
		f.url = f.history[f.pos]
	}
	return nil
}

func (f *fakeDriver) Forward(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pos < len(f.history)-1 {
		f.pos++
		f.url = f.history[f.pos]
	}
	return nil
}

func (f *fakeDriver) Reload(context.Context) error {
	return nil
}
