package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"golang.org/x/net/html"

	"taglens/internal/domain"
)

// renderTimeout covers navigation plus network settle for one page.
const renderTimeout = 30 * time.Second

// Renderer extracts page data through a shared headless browser. The browser
// process is launched lazily on first use and lives until Shutdown; concurrent
// callers share it through independent page targets.
type Renderer struct {
	logger *slog.Logger

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewRenderer creates a renderer. The browser is not launched until the first
// Extract call.
func NewRenderer(logger *slog.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// ensureBrowser launches and connects the shared browser if needed.
func (r *Renderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New().
		Headless(true).
		Set("no-sandbox").
		Set("disable-gpu").
		Set("disable-dev-shm-usage")

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	r.launcher = l
	r.browser = browser
	r.logger.Info("Headless browser launched")

	return browser, nil
}

// Extract navigates to pageURL in a fresh page target, waits for network
// activity to settle, and extracts metadata from the rendered DOM. Any
// navigation, timeout, or evaluation problem surfaces as a render failure;
// there is no retry here.
func (r *Renderer) Extract(ctx context.Context, pageURL string) (*domain.PageData, error) {
	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, fmt.Errorf("render failure: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: ""})
	if err != nil {
		return nil, fmt.Errorf("render failure: %w", err)
	}
	// Release the page target on every exit path
	defer page.Close()

	page = page.Context(ctx).Timeout(renderTimeout)

	var renderedHTML, bodyText string
	err = rod.Try(func() {
		page.MustNavigate(pageURL)
		page.MustWaitLoad()
		// Pages may hydrate tags after load; wait for requests to go idle
		page.MustWaitRequestIdle()()
		renderedHTML = page.MustHTML()
		bodyText = page.MustEval(`() => document.body ? document.body.innerText : ""`).Str()
	})
	if err != nil {
		return nil, fmt.Errorf("render failure: %w", err)
	}

	doc, err := html.Parse(strings.NewReader(renderedHTML))
	if err != nil {
		return nil, fmt.Errorf("render failure: %w", err)
	}

	data := extractFromDocument(doc)
	// Prefer the browser's rendered text over the re-parsed DOM walk
	if text := cleanText(bodyText); text != "" {
		data.Content = truncateRunes(text, maxContentLength)
	}

	r.logger.Debug("Rendered extraction complete",
		"url", pageURL,
		"og_tags", len(data.OpenGraphTags),
		"twitter_tags", len(data.TwitterTags),
		"json_ld", len(data.JSONLD),
	)

	return data, nil
}

// Shutdown closes the shared browser and its launcher. Safe to call when the
// browser was never launched.
func (r *Renderer) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		if err := r.browser.Close(); err != nil {
			r.logger.Warn("Failed to close browser", "error", err)
		}
		r.browser = nil
	}
	if r.launcher != nil {
		r.launcher.Cleanup()
		r.launcher = nil
	}
}
