package identity

import (
	"fmt"
	"net/http"
	"regexp"
	"testing"
)

var idPattern = regexp.MustCompile(`^[0-9a-f]{16}$`)

func TestDeriveDeterminism(t *testing.T) {
	inputs := []string{"1.2.3.4", "10.0.0.1, 172.16.0.1", "::1", "", "0.0.0.0"}
	for _, input := range inputs {
		first := Derive(input)
		for i := 0; i < 10; i++ {
			if got := Derive(input); got != first {
				t.Fatalf("Derive(%q) unstable: %q then %q", input, first, got)
			}
		}
	}
}

func TestDeriveFormat(t *testing.T) {
	inputs := []string{"1.2.3.4", "2001:db8::1", "", "not-an-address", "0.0.0.0"}
	for _, input := range inputs {
		got := Derive(input)
		if !idPattern.MatchString(got) {
			t.Errorf("Derive(%q) = %q, want 16 lowercase hex chars", input, got)
		}
	}
}

func TestDeriveSeparation(t *testing.T) {
	seen := make(map[string]string)
	for a := 0; a < 16; a++ {
		for b := 0; b < 64; b++ {
			addr := fmt.Sprintf("10.%d.%d.1", a, b)
			id := Derive(addr)
			if prev, ok := seen[id]; ok {
				t.Fatalf("Derive collision: %q and %q both map to %q", prev, addr, id)
			}
			seen[id] = addr
		}
	}
}

func TestClientAddr(t *testing.T) {
	testCases := []struct {
		name       string
		forwarded  string
		remoteAddr string
		expected   string
	}{
		{"forwarded header wins", "1.2.3.4", "9.9.9.9:1234", "1.2.3.4"},
		{"forwarded list passed through", "1.2.3.4, 10.0.0.1", "9.9.9.9:1234", "1.2.3.4, 10.0.0.1"},
		{"peer address with port stripped", "", "5.6.7.8:40312", "5.6.7.8"},
		{"peer address without port kept", "", "5.6.7.8", "5.6.7.8"},
		{"ipv6 peer address", "", "[2001:db8::1]:443", "2001:db8::1"},
		{"no origin falls back", "", "", "0.0.0.0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := &http.Request{Header: http.Header{}, RemoteAddr: tc.remoteAddr}
			if tc.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tc.forwarded)
			}

			if got := ClientAddr(r); got != tc.expected {
				t.Errorf("ClientAddr() = %q; want %q", got, tc.expected)
			}
		})
	}
}

func TestFromRequest(t *testing.T) {
	first := &http.Request{Header: http.Header{}, RemoteAddr: "1.2.3.4:1111"}
	second := &http.Request{Header: http.Header{}, RemoteAddr: "1.2.3.4:2222"}
	other := &http.Request{Header: http.Header{}, RemoteAddr: "5.6.7.8:1111"}

	if FromRequest(first) != FromRequest(second) {
		t.Error("same origin on different ports should derive the same ID")
	}
	if FromRequest(first) == FromRequest(other) {
		t.Error("different origins should derive different IDs")
	}
}
