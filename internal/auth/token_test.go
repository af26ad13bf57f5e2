// ABOUTME: Tests for the X-Api-Token header codec
// ABOUTME: Covers missing/duplicate/malformed decoding and encode round-trips

package auth

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestParseXAPIToken_Present(t *testing.T) {
	h := http.Header{}
	h.Set(HeaderName, "s3cr3t")

	token, err := ParseXAPIToken(h)
	if err != nil {
		t.Fatalf("ParseXAPIToken() error = %v", err)
	}
	if token.raw != "s3cr3t" {
		t.Errorf("expected raw token 's3cr3t', got %q", token.raw)
	}
}

func TestParseXAPIToken_CaseInsensitiveName(t *testing.T) {
	h := http.Header{}
	h.Set("x-api-token", "s3cr3t")

	token, err := ParseXAPIToken(h)
	if err != nil {
		t.Fatalf("ParseXAPIToken() error = %v", err)
	}
	if token.raw != "s3cr3t" {
		t.Errorf("expected raw token 's3cr3t', got %q", token.raw)
	}
}

func TestParseXAPIToken_Missing(t *testing.T) {
	token, err := ParseXAPIToken(http.Header{})
	if !errors.Is(err, ErrHeaderMissing) {
		t.Errorf("expected ErrHeaderMissing, got %v", err)
	}
	if token.raw != "" {
		t.Errorf("expected empty token on error, got %q", token.raw)
	}
}

func TestParseXAPIToken_Duplicate(t *testing.T) {
	h := http.Header{}
	h.Add(HeaderName, "a")
	h.Add(HeaderName, "b")

	_, err := ParseXAPIToken(h)
	if !errors.Is(err, ErrHeaderDuplicate) {
		t.Errorf("expected ErrHeaderDuplicate, got %v", err)
	}
}

func TestParseXAPIToken_Malformed(t *testing.T) {
	for _, value := range []string{"bad\x00token", "bad\ntoken", "bad\x01token"} {
		h := http.Header{}
		h[HeaderName] = []string{value}

		_, err := ParseXAPIToken(h)
		if !errors.Is(err, ErrHeaderMalformed) {
			t.Errorf("value %q: expected ErrHeaderMalformed, got %v", value, err)
		}
	}
}

func TestParseXAPIToken_NoTrimming(t *testing.T) {
	// The codec treats the token as opaque; padding is part of the credential.
	h := http.Header{}
	h[HeaderName] = []string{"  padded  "}

	token, err := ParseXAPIToken(h)
	if err != nil {
		t.Fatalf("ParseXAPIToken() error = %v", err)
	}
	if token.raw != "  padded  " {
		t.Errorf("expected untrimmed token, got %q", token.raw)
	}
}

func TestXAPIToken_EncodeRoundTrip(t *testing.T) {
	for _, raw := range []string{"s3cr3t", "with spaces", "unicode-Ω", strings.Repeat("x", 200)} {
		h := http.Header{}
		if err := NewXAPIToken(raw).SetHeader(h); err != nil {
			t.Fatalf("SetHeader(%q) error = %v", raw, err)
		}

		token, err := ParseXAPIToken(h)
		if err != nil {
			t.Fatalf("ParseXAPIToken() after encode error = %v", err)
		}
		if token.raw != raw {
			t.Errorf("round trip changed token: got %q, want %q", token.raw, raw)
		}
	}
}

func TestXAPIToken_EncodeInvalid(t *testing.T) {
	_, err := NewXAPIToken("control\x00char").EncodeValue()
	if !errors.Is(err, ErrTokenNotEncodable) {
		t.Errorf("expected ErrTokenNotEncodable, got %v", err)
	}

	if err := NewXAPIToken("new\nline").SetHeader(http.Header{}); !errors.Is(err, ErrTokenNotEncodable) {
		t.Errorf("expected ErrTokenNotEncodable from SetHeader, got %v", err)
	}
}

func TestXAPIToken_SetHeaderReplaces(t *testing.T) {
	h := http.Header{}
	h.Add(HeaderName, "old")

	if err := NewXAPIToken("new").SetHeader(h); err != nil {
		t.Fatalf("SetHeader() error = %v", err)
	}

	if got := h.Values(HeaderName); len(got) != 1 || got[0] != "new" {
		t.Errorf("expected single 'new' value, got %v", got)
	}
}

func TestXAPIToken_StringRedacts(t *testing.T) {
	token := NewXAPIToken("super-secret-value")
	if strings.Contains(token.String(), "super-secret-value") {
		t.Errorf("String() leaked the token: %s", token.String())
	}
}
