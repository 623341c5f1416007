// Package pages holds one page object per storefront screen. Page objects
// keep no state of their own: every action goes through a Driver and every
// validation polls the browser until it holds or times out.
package pages

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/swaglabs-qa/storefront-e2e/internal/selectors"
	"github.com/swaglabs-qa/storefront-e2e/internal/wait"
)

// Page errors
var (
	ErrNoCandidate   = errors.New("no candidate selector matched")
	ErrNegativeCount = errors.New("item count cannot be negative")
)

// Driver is the browser surface page objects need. Paths passed to Navigate
// are resolved against the suite base URL.
type Driver interface {
	Navigate(ctx context.Context, path string) error
	URL(ctx context.Context) (string, error)
	Title(ctx context.Context) (string, error)
	Click(ctx context.Context, selector string) error
	Fill(ctx context.Context, selector, value string) error
	SelectOption(ctx context.Context, selector, value string) error
	Count(ctx context.Context, selector string) (int, error)
	IsVisible(ctx context.Context, selector string) (bool, error)
	Texts(ctx context.Context, selector string) ([]string, error)
	Attribute(ctx context.Context, selector, name string) (string, error)
	Back(ctx context.Context) error
	Forward(ctx context.Context) error
	Reload(ctx context.Context) error
}

// page carries the driver and polling options shared by every page object
type page struct {
	d    Driver
	opts wait.Options
}

func (p page) visit(ctx context.Context, path string) error {
	if err := p.d.Navigate(ctx, path); err != nil {
		return fmt.Errorf("failed to visit %s: %w", path, err)
	}
	return nil
}

func (p page) click(ctx context.Context, selector string) error {
	if err := p.d.Click(ctx, selector); err != nil {
		return fmt.Errorf("failed to click %s: %w", selector, err)
	}
	return nil
}

func (p page) fill(ctx context.Context, selector, value string) error {
	if err := p.d.Fill(ctx, selector, value); err != nil {
		return fmt.Errorf("failed to fill %s: %w", selector, err)
	}
	return nil
}

func (p page) expectVisible(ctx context.Context, selector string) error {
	return wait.True(ctx, p.opts, selector+" to be visible", func(ctx context.Context) (bool, error) {
		return p.d.IsVisible(ctx, selector)
	})
}

func (p page) expectHidden(ctx context.Context, selector string) error {
	return wait.True(ctx, p.opts, selector+" to be hidden", func(ctx context.Context) (bool, error) {
		visible, err := p.d.IsVisible(ctx, selector)
		return !visible, err
	})
}

func (p page) expectAbsent(ctx context.Context, selector string) error {
	return wait.Equal(ctx, p.opts, selector+" match count", 0, func(ctx context.Context) (int, error) {
		return p.d.Count(ctx, selector)
	})
}

func (p page) expectAtLeast(ctx context.Context, selector string, min int) error {
	_, err := wait.Until(ctx, p.opts, selector+" match count", fmt.Sprintf(">= %d", min),
		func(ctx context.Context) (int, bool, error) {
			n, err := p.d.Count(ctx, selector)
			return n, err == nil && n >= min, err
		})
	return err
}

func (p page) expectCount(ctx context.Context, selector string, n int) error {
	return wait.Equal(ctx, p.opts, selector+" match count", n, func(ctx context.Context) (int, error) {
		return p.d.Count(ctx, selector)
	})
}

// expectText waits until the joined text of selector satisfies match
func (p page) expectText(ctx context.Context, selector, expected string, match func(got string) bool) error {
	_, err := wait.Until(ctx, p.opts, selector+" text", expected, func(ctx context.Context) (string, bool, error) {
		texts, err := p.d.Texts(ctx, selector)
		if err != nil {
			return "", false, err
		}
		got := strings.Join(texts, " ")
		return got, len(texts) > 0 && match(got), nil
	})
	return err
}

func (p page) expectTextContains(ctx context.Context, selector, want string) error {
	return p.expectText(ctx, selector, "containing "+strconv.Quote(want), func(got string) bool {
		return strings.Contains(got, want)
	})
}

func (p page) expectTextEquals(ctx context.Context, selector, want string) error {
	return p.expectText(ctx, selector, strconv.Quote(want), func(got string) bool {
		return strings.TrimSpace(got) == want
	})
}

func (p page) expectURLContains(ctx context.Context, fragment string) error {
	_, err := wait.Until(ctx, p.opts, "page url", "containing "+strconv.Quote(fragment),
		func(ctx context.Context) (string, bool, error) {
			u, err := p.d.URL(ctx)
			return u, err == nil && strings.Contains(u, fragment), err
		})
	return err
}

// expectBadge checks the cart badge. Zero means the badge is not rendered.
func (p page) expectBadge(ctx context.Context, n int) error {
	switch {
	case n < 0:
		return fmt.Errorf("%w: %d", ErrNegativeCount, n)
	case n == 0:
		return p.expectAbsent(ctx, selectors.ShoppingCartBadge)
	default:
		return p.expectTextEquals(ctx, selectors.ShoppingCartBadge, strconv.Itoa(n))
	}
}

// resolve returns the first candidate that matches at least one element.
// Candidates are tried in order on every poll.
func (p page) resolve(ctx context.Context, candidates selectors.Candidates) (string, error) {
	return wait.Until(ctx, p.opts, "one of "+strings.Join(candidates, ", "), "a matching selector",
		func(ctx context.Context) (string, bool, error) {
			sel, err := p.firstPresent(ctx, candidates)
			return sel, err == nil, err
		})
}

// firstPresent checks the candidates once, without waiting
func (p page) firstPresent(ctx context.Context, candidates selectors.Candidates) (string, error) {
	for _, sel := range candidates {
		n, err := p.d.Count(ctx, sel)
		if err != nil {
			return "", err
		}
		if n > 0 {
			return sel, nil
		}
	}
	return "", ErrNoCandidate
}

func (p page) clickFirst(ctx context.Context, candidates selectors.Candidates) error {
	sel, err := p.resolve(ctx, candidates)
	if err != nil {
		return err
	}
	return p.click(ctx, sel)
}

func (p page) firstText(ctx context.Context, selector string) (string, error) {
	texts, err := p.d.Texts(ctx, selector)
	if err != nil {
		return "", err
	}
	if len(texts) == 0 {
		return "", fmt.Errorf("no element matches %s", selector)
	}
	return strings.TrimSpace(texts[0]), nil
}
