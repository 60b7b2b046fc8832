// Package browser runs the headless Chrome session the DOM-based sources
// are fetched through. One session per process invocation; pages are opened
// with stealth patches because both result sites fingerprint automation.
package browser

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// NavTimeout bounds a single page navigation. The LNB site is heavy and
// routinely takes most of it.
const NavTimeout = 60 * time.Second

type Session struct {
	browser *rod.Browser
	lnch    *launcher.Launcher
}

// Open launches a local headless Chrome and connects to it.
func Open() (*Session, error) {
	l := launcher.New().
		Headless(true).
		Set("disable-blink-features", "AutomationControlled")

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("browser: launch: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("browser: connect: %w", err)
	}

	return &Session{browser: b, lnch: l}, nil
}

func (s *Session) Close() {
	if s == nil {
		return
	}
	if s.browser != nil {
		_ = s.browser.Close()
	}
	if s.lnch != nil {
		s.lnch.Cleanup()
	}
}

// SnapshotHTML navigates to pageURL with stealth applied, waits for load
// plus a settle period (both sites render their result boxes well after
// load), and returns the full DOM as HTML.
func (s *Session) SnapshotHTML(ctx context.Context, pageURL string, settle time.Duration) (string, error) {
	page, err := stealth.Page(s.browser)
	if err != nil {
		return "", fmt.Errorf("browser: create page: %w", err)
	}
	defer page.Close()

	blockNoise(page)

	navCtx, cancel := context.WithTimeout(ctx, NavTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		return "", fmt.Errorf("browser: navigate %s: %w", pageURL, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		log.Printf("[browser] wait load timed out for %s: %v", pageURL, err)
	}

	if settle > 0 {
		select {
		case <-time.After(settle):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	res, err := page.Context(ctx).Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return "", fmt.Errorf("browser: snapshot %s: %w", pageURL, err)
	}
	return res.Value.Str(), nil
}

// Ad/analytics hosts whose requests only slow the navigation down.
var blockedHosts = []string{
	"google-analytics.com",
	"googletagmanager.com",
	"facebook.net",
	"doubleclick.net",
	"amazon-adsystem.com",
	"adnxs.com",
	"maps.googleapis.com",
	"fonts.googleapis.com",
	"fonts.gstatic.com",
}

// blockNoise aborts heavy and tracking requests. Stylesheets stay: some
// selectors on the result pages depend on rendered layout.
func blockNoise(page *rod.Page) {
	router := page.HijackRequests()

	router.MustAdd("*", func(h *rod.Hijack) {
		u := strings.ToLower(h.Request.URL().String())
		for _, host := range blockedHosts {
			if strings.Contains(u, host) {
				h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
				return
			}
		}

		switch h.Request.Type() {
		case proto.NetworkResourceTypeImage,
			proto.NetworkResourceTypeMedia,
			proto.NetworkResourceTypeFont:
			h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
			return
		}

		h.ContinueRequest(&proto.FetchContinueRequest{})
	})

	go router.Run()
}
