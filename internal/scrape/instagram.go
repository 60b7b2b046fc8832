package scrape

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"loteria-engine/internal/domain"
	"loteria-engine/internal/scrape/util"
)

// Fetcher turns a page URL into an HTML snapshot; implemented by the
// browser session.
type Fetcher interface {
	SnapshotHTML(ctx context.Context, pageURL string, settle time.Duration) (string, error)
}

// InstagramSource discovers the newest post images on a public profile
// page. Instagram serves a grid of post thumbnails to anonymous visitors;
// each image's alt text is the post caption, which is where a publisher's
// result banner text lives before OCR even runs.
type InstagramSource struct {
	ProfileURL string
	Browser    Fetcher
	MaxPosts   int
	Settle     time.Duration
}

// Discover snapshots the profile grid and returns up to MaxPosts captures,
// newest first. External ids are derived from the canonicalized media URL
// so the same post is recognized across runs despite CDN URL re-signing.
func (s *InstagramSource) Discover(ctx context.Context) ([]domain.RawCapture, error) {
	html, err := s.Browser.SnapshotHTML(ctx, s.ProfileURL, s.Settle)
	if err != nil {
		return nil, err
	}
	caps, err := extractCaptures(html, s.MaxPosts)
	if err != nil {
		return nil, err
	}
	log.Printf("[instagram] discovered %d post(s) on %s", len(caps), s.ProfileURL)
	return caps, nil
}

func extractCaptures(html string, maxPosts int) ([]domain.RawCapture, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var caps []domain.RawCapture
	seen := make(map[string]bool)

	doc.Find("main img, article img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src, ok := img.Attr("src")
		if !ok || src == "" {
			return true
		}
		// Profile avatars and UI sprites are not post media.
		if !strings.Contains(src, "cdninstagram") && !strings.Contains(src, "fbcdn") {
			return true
		}
		canon := util.CanonicalizeMediaURL(src)
		if seen[canon] {
			return true
		}
		seen[canon] = true

		alt, _ := img.Attr("alt")
		if looksLikeAvatar(alt) {
			return true
		}

		caps = append(caps, domain.RawCapture{
			SourceText: strings.TrimSpace(alt),
			ImageRef:   src,
			ExternalID: "ig-" + util.HashString(canon),
		})
		return len(caps) < maxPosts
	})

	return caps, nil
}

func looksLikeAvatar(alt string) bool {
	lower := strings.ToLower(alt)
	return strings.Contains(lower, "profile picture") ||
		strings.Contains(lower, "foto del perfil")
}
