package chromium

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Config selects how the browser is reached. ControlURL wins over Bin.
type Config struct {
	// Bin is the Chromium executable. Empty falls back to rod's browser lookup.
	Bin string
	// ControlURL is the DevTools websocket of an already running browser.
	ControlURL string
}

// Converter prints HTML to PDF with a headless Chromium it owns (or attaches to).
type Converter struct {
	cfg Config

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// New returns a converter. The browser starts on Check or the first Convert.
func New(cfg Config) *Converter {
	return &Converter{cfg: cfg}
}

// Name identifies the converter.
func (c *Converter) Name() string { return "chromium" }

// Check starts the browser and verifies it answers.
func (c *Converter) Check(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.startLocked(ctx); err != nil {
		return err
	}
	if _, err := c.browser.Context(ctx).Version(); err != nil {
		return fmt.Errorf("chromium version: %w", err)
	}
	return nil
}

// Convert loads html into a fresh page and prints it.
func (c *Converter) Convert(ctx context.Context, html []byte) ([]byte, error) {
	browser, err := c.ensureStarted(ctx)
	if err != nil {
		return nil, err
	}

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer func() { _ = page.Close() }()

	if err := page.SetDocumentContent(string(html)); err != nil {
		return nil, fmt.Errorf("set document content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait page load: %w", err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
		PaperWidth:        inches(8.27),
		PaperHeight:       inches(11.7),
	})
	if err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}
	defer func() { _ = stream.Close() }()

	doc, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read pdf stream: %w", err)
	}
	return doc, nil
}

// Close shuts the browser down and removes the launched process.
func (c *Converter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	if c.browser != nil {
		err = c.browser.Close()
		c.browser = nil
	}
	if c.launcher != nil {
		c.launcher.Kill()
		c.launcher.Cleanup()
		c.launcher = nil
	}
	return err
}

func (c *Converter) ensureStarted(ctx context.Context) (*rod.Browser, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.startLocked(ctx); err != nil {
		return nil, err
	}
	return c.browser, nil
}

func (c *Converter) startLocked(ctx context.Context) error {
	if c.browser != nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	controlURL := c.cfg.ControlURL
	if controlURL == "" {
		bin, err := c.resolveBin()
		if err != nil {
			return err
		}

		l := launcher.New().Bin(bin).Headless(true)
		url, err := l.Launch()
		if err != nil {
			return fmt.Errorf("launch chromium %s: %w", bin, err)
		}
		c.launcher = l
		controlURL = url
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		if c.launcher != nil {
			c.launcher.Kill()
			c.launcher = nil
		}
		return fmt.Errorf("connect to chromium: %w", err)
	}

	c.browser = browser
	return nil
}

func (c *Converter) resolveBin() (string, error) {
	if c.cfg.Bin == "" {
		path, found := launcher.LookPath()
		if !found {
			return "", errors.New("no chromium executable found; set REPORT_CHROMIUM_BIN")
		}
		return path, nil
	}

	if _, err := os.Stat(c.cfg.Bin); err != nil {
		return "", fmt.Errorf("chromium executable %s: %w", c.cfg.Bin, err)
	}
	return c.cfg.Bin, nil
}

func inches(v float64) *float64 { return &v }
