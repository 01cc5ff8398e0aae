// Package identity derives stable pseudonymous user IDs from a
// request's network origin. The ID is a deduplication convenience for
// anonymous voting, not an authentication mechanism: a forwarded-for
// header is trusted as-is, so it is only as honest as the proxy in
// front of the server.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
)

// FallbackAddr stands in when no origin address can be resolved.
const FallbackAddr = "0.0.0.0"

// Derive maps an origin address to a 16-character lowercase hex ID.
// Deterministic and total over any string input.
func Derive(addr string) string {
	sum := sha256.Sum256([]byte(addr))
	return hex.EncodeToString(sum[:])[:16]
}

// ClientAddr resolves the apparent origin of a request: the
// X-Forwarded-For header value if present, else the peer address with
// the port stripped, else FallbackAddr.
func ClientAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	if r.RemoteAddr != "" {
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			return host
		}
		return r.RemoteAddr
	}
	return FallbackAddr
}

// FromRequest derives the user ID for a request's resolved origin.
func FromRequest(r *http.Request) string {
	return Derive(ClientAddr(r))
}
