// Package browser fetches fully rendered page markup through a headless
// Chrome instance. The share pages are client-rendered, so a plain HTTP GET
// returns an empty shell; a real browser is required.
package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// ErrFetchFailed indicates the page did not load recognizable content within
// the wait budget, or the rendered markup was empty or implausibly short.
var ErrFetchFailed = errors.New("fetch failed")

// contentIndicatorSelector matches elements whose presence signals that the
// conversation area has rendered.
const contentIndicatorSelector = "div[class*='prose'], div[class*='markdown'], main, article"

// minPageChars is the plausibility floor for both the visible body text of a
// suspected error page and the final rendered markup.
const minPageChars = 100

// Fetcher returns the rendered markup for a canonical share URL. Implemented
// by ChromeFetcher for real runs and by stubs in tests.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Options carries the browser configuration that used to be ambient in the
// process: fixed flags, viewport, user agent, and the two wait knobs.
type Options struct {
	UserAgent    string
	WindowWidth  int
	WindowHeight int
	// IndicatorTimeout bounds the wait for content-indicator elements.
	IndicatorTimeout time.Duration
	// SettleDelay is a flat sleep applied after indicators appear, giving
	// client-side rendering time to finish. No polling.
	SettleDelay time.Duration
	// ExecPath overrides the Chrome binary location when set.
	ExecPath string
}

// DefaultOptions mirrors a realistic desktop Chrome session.
func DefaultOptions() Options {
	return Options{
		UserAgent:        "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
		WindowWidth:      1920,
		WindowHeight:     1080,
		IndicatorTimeout: 15 * time.Second,
		SettleDelay:      5 * time.Second,
	}
}

// ChromeFetcher drives one headless Chrome instance per Fetch call. The
// instance is never shared and is torn down on every exit path.
type ChromeFetcher struct {
	opts Options
}

func NewChromeFetcher(opts Options) *ChromeFetcher {
	return &ChromeFetcher{opts: opts}
}

// Fetch navigates to url, waits for content indicators, applies the settle
// delay, and returns the rendered markup.
func (f *ChromeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, f.allocatorOptions()...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer func() {
		// Graceful shutdown first; failures are logged, never propagated.
		if err := chromedp.Cancel(browserCtx); err != nil {
			log.Warn().Err(err).Msg("error closing browser")
		}
		cancelBrowser()
		cancelAlloc()
	}()

	if err := chromedp.Run(browserCtx, chromedp.Navigate(url)); err != nil {
		return "", fmt.Errorf("%w: navigate %s: %v", ErrFetchFailed, url, err)
	}
	log.Debug().Str("url", url).Msg("navigated, waiting for content indicators")

	waitCtx, cancelWait := context.WithTimeout(browserCtx, f.opts.IndicatorTimeout)
	waitErr := chromedp.Run(waitCtx, chromedp.WaitReady(contentIndicatorSelector, chromedp.ByQuery))
	cancelWait()

	if waitErr != nil {
		log.Warn().Err(waitErr).Msg("timeout waiting for content indicators; checking body text")
		var bodyText string
		if err := chromedp.Run(browserCtx, chromedp.Text("body", &bodyText, chromedp.ByQuery)); err == nil {
			if LooksLikeErrorPage(bodyText) {
				return "", fmt.Errorf("%w: page inaccessible or error page. Body: %s", ErrFetchFailed, Snippet(bodyText, 200))
			}
		}
		// Indicators never appeared but the body looks plausible; proceed
		// optimistically with whatever rendered.
	} else if f.opts.SettleDelay > 0 {
		if err := chromedp.Run(browserCtx, chromedp.Sleep(f.opts.SettleDelay)); err != nil {
			return "", fmt.Errorf("%w: settle wait: %v", ErrFetchFailed, err)
		}
	}

	var markup string
	if err := chromedp.Run(browserCtx, chromedp.OuterHTML("html", &markup, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("%w: read page source: %v", ErrFetchFailed, err)
	}
	if len(markup) < minPageChars {
		return "", fmt.Errorf("%w: rendered markup too short (%d chars)", ErrFetchFailed, len(markup))
	}
	log.Debug().Int("chars", len(markup)).Msg("page source retrieved")
	return markup, nil
}

func (f *ChromeFetcher) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-notifications", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("lang", "en-US"),
		chromedp.WindowSize(f.opts.WindowWidth, f.opts.WindowHeight),
		chromedp.UserAgent(f.opts.UserAgent),
	)
	if f.opts.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(f.opts.ExecPath))
	}
	return opts
}

// LooksLikeErrorPage reports whether visible body text reads like an error
// page or is implausibly short to be a rendered conversation.
func LooksLikeErrorPage(bodyText string) bool {
	return strings.Contains(strings.ToLower(bodyText), "error") || len(bodyText) < minPageChars
}

// Snippet truncates s to at most n bytes for diagnostics.
func Snippet(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
