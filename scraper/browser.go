package scraper

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"polo-scraper/utils"
)

// BrowserFetcher renders pages in a shared headless Chrome and returns the
// resulting DOM, for sources that build their result grid client-side.
type BrowserFetcher struct {
	logger  *utils.Logger
	timeout time.Duration

	browserCtx    context.Context
	cancelAlloc   context.CancelFunc
	cancelBrowser context.CancelFunc

	startOnce sync.Once
	startErr  error
}

// NewBrowserFetcher prepares a headless browser allocator. Chrome itself is
// launched on the first Fetch.
func NewBrowserFetcher(chromeBin string, timeout time.Duration, logger *utils.Logger) *BrowserFetcher {
	bin := findChromeBinary(chromeBin)
	logger.Info("[browser] Using browser binary: %q", bin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent(UserAgent),
	)
	if bin != "" {
		opts = append(opts, chromedp.ExecPath(bin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	return &BrowserFetcher{
		logger:        logger,
		timeout:       timeout,
		browserCtx:    browserCtx,
		cancelAlloc:   cancelAlloc,
		cancelBrowser: cancelBrowser,
	}
}

func (b *BrowserFetcher) start() error {
	b.startOnce.Do(func() {
		// An empty Run launches the browser that every tab below shares.
		if err := chromedp.Run(b.browserCtx); err != nil {
			b.startErr = fmt.Errorf("browser: launch: %w", err)
		}
	})
	return b.startErr
}

func (b *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := b.start(); err != nil {
		return "", err
	}

	tabCtx, cancelTab := chromedp.NewContext(b.browserCtx)
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, b.timeout)
	defer cancelTimeout()

	// Tie the tab to the caller's context as well as the fixed timeout.
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("browser: render %s: %w", url, err)
	}
	return html, nil
}

// Close shuts the browser down.
func (b *BrowserFetcher) Close() error {
	b.cancelBrowser()
	b.cancelAlloc()
	return nil
}

// findChromeBinary locates a Chrome/Chromium binary. An explicit path wins,
// then CHROME_BIN, then well-known names and locations.
func findChromeBinary(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

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
