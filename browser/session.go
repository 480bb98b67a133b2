package browser

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// Options configures the browser session.
type Options struct {
	ChromeBin   string
	UserDataDir string
	// Profile selects a profile directory inside UserDataDir, e.g. "Profile 1".
	Profile  string
	Headless bool
	// Settle is how long to wait after navigation for scripts to render
	// before the document is captured.
	Settle time.Duration
	// Timeout bounds a single navigation end to end.
	Timeout time.Duration
}

// Session owns a single browser tab. All stages navigate through the same
// tab sequentially; Session is not safe for concurrent use and none is
// needed.
type Session struct {
	browserCtx   context.Context
	cancelBrowse context.CancelFunc
	cancelAlloc  context.CancelFunc
	settle       time.Duration
	timeout      time.Duration
}

// NewSession starts the browser, opens the tab and clears cookies, matching
// a fresh session regardless of the selected profile's history.
func NewSession(opts Options) (*Session, error) {
	if opts.Settle <= 0 {
		opts.Settle = 2 * time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}

	bin := opts.ChromeBin
	if bin == "" {
		bin = findChromeBinary()
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if bin != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(bin))
	}
	if opts.UserDataDir != "" {
		allocOpts = append(allocOpts,
			chromedp.UserDataDir(opts.UserDataDir),
			chromedp.Flag("profile-directory", opts.Profile),
		)
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocOpts...)

	// Suppress chromedp log noise
	browserCtx, cancelBrowse := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}))

	s := &Session{
		browserCtx:   browserCtx,
		cancelBrowse: cancelBrowse,
		cancelAlloc:  cancelAlloc,
		settle:       opts.Settle,
		timeout:      opts.Timeout,
	}

	ctx, cancel := context.WithTimeout(browserCtx, opts.Timeout)
	defer cancel()

	err := chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		return network.ClearBrowserCookies().Do(ctx)
	}))
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("browser: start session: %w", err)
	}

	return s, nil
}

// Navigate loads the URL in the session tab, waits for the page to settle
// and returns the rendered document.
func (s *Session) Navigate(url string) (*goquery.Document, error) {
	ctx, cancel := context.WithTimeout(s.browserCtx, s.timeout)
	defer cancel()

	var html string
	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(s.settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("browser: navigate %s: %w", url, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("browser: parse %s: %w", url, err)
	}
	return doc, nil
}

// Close shuts the tab and the browser process down.
func (s *Session) Close() {
	s.cancelBrowse()
	s.cancelAlloc()
}

// findChromeBinary locates a Chrome/Chromium binary.
func findChromeBinary() string {
	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
