package util

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// HashString returns a short stable digest, used to derive external ids
// from media URLs.
func HashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:16]
}

// CanonicalizeMediaURL strips the volatile parts of a CDN media URL (signing
// query params, fragments) so the same post image always hashes to the same
// external id across runs.
func CanonicalizeMediaURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
