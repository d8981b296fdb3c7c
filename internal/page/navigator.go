package page

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	a11yerrors "a11ypack/internal/errors"
	"a11ypack/internal/i18n"
	"a11ypack/internal/logger"
)

const (
	defaultNavigationAttempts = 5
	defaultNavigationStep     = 100 * time.Millisecond
)

// AnchorSource reports the anchors currently rendered for lang.
type AnchorSource func(ctx context.Context, lang i18n.Language) (map[string]bool, error)

// Navigator resolves in-page navigation targets against the rendered layout.
// A target missing from the layout fails at once; only a failing AnchorSource
// is retried.
type Navigator struct {
	anchors  AnchorSource
	attempts uint
	step     time.Duration
}

// NavigatorOption configures a Navigator.
type NavigatorOption func(*Navigator)

// WithAttempts sets how many times a failing AnchorSource is called before giving up.
func WithAttempts(n uint) NavigatorOption {
	return func(nav *Navigator) {
		if n > 0 {
			nav.attempts = n
		}
	}
}

// WithStep sets the base delay; the wait before attempt n+1 is n*step.
func WithStep(d time.Duration) NavigatorOption {
	return func(nav *Navigator) {
		nav.step = d
	}
}

// NewNavigator returns a navigator making 5 attempts 100ms, 200ms, ... apart.
func NewNavigator(anchors AnchorSource, opts ...NavigatorOption) *Navigator {
	nav := &Navigator{
		anchors:  anchors,
		attempts: defaultNavigationAttempts,
		step:     defaultNavigationStep,
	}
	for _, opt := range opts {
		opt(nav)
	}
	return nav
}

// LayoutAnchors adapts a Builder into an AnchorSource over the pack page.
func LayoutAnchors(b *Builder) AnchorSource {
	return func(_ context.Context, lang i18n.Language) (map[string]bool, error) {
		layout, err := b.Build(KindPack, lang, Options{})
		if err != nil {
			return nil, err
		}
		return layout.Anchors(), nil
	}
}

// GoTo returns the fragment ("#target") for target. It fails with
// ErrUnknownTarget as soon as the layout does not render target.
func (n *Navigator) GoTo(ctx context.Context, lang i18n.Language, target string) (string, error) {
	target = strings.TrimPrefix(strings.TrimSpace(target), "#")
	if target == "" {
		return "", fmt.Errorf("%w: empty target", a11yerrors.ErrUnknownTarget)
	}

	err := retry.Do(
		func() error {
			anchors, err := n.anchors(ctx, lang)
			if err != nil {
				return err
			}
			if !anchors[target] {
				return retry.Unrecoverable(fmt.Errorf("%w: %q", a11yerrors.ErrUnknownTarget, target))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(n.attempts),
		retry.DelayType(func(attempt uint, _ error, _ *retry.Config) time.Duration {
			return time.Duration(attempt+1) * n.step
		}),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			logger.Get().Debug().Uint("attempt", attempt+1).Str("target", target).Err(err).Msg("Navigation anchors unavailable")
		}),
	)
	if err != nil {
		return "", err
	}
	return "#" + target, nil
}
