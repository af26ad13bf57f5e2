// ABOUTME: Wire codec for the X-Api-Token header carrying the admin secret
// ABOUTME: Decodes exactly-one occurrence from request headers, encodes for clients

package auth

import (
	"errors"
	"net/http"

	"golang.org/x/net/http/httpguts"
)

// HeaderName is the canonical name of the admin token header. Matching is
// case-insensitive (net/http canonicalizes header keys on both ends).
const HeaderName = "X-Api-Token"

// Codec errors
var (
	// ErrHeaderMissing means the request carried no X-Api-Token header
	ErrHeaderMissing = errors.New("missing x-api-token header")

	// ErrHeaderDuplicate means the header appeared more than once. Duplicates
	// are rejected outright rather than picking one, so a proxy and the
	// origin can never disagree about which value was authenticated.
	ErrHeaderDuplicate = errors.New("duplicate x-api-token header")

	// ErrHeaderMalformed means the header value contains bytes that are not
	// valid in an HTTP header value
	ErrHeaderMalformed = errors.New("malformed x-api-token header")

	// ErrTokenNotEncodable means a token string cannot be represented as a
	// header value (control characters and the like)
	ErrTokenNotEncodable = errors.New("token is not a valid header value")
)

// XAPIToken wraps the raw token string presented in the X-Api-Token header.
// The codec treats the token as opaque: no trimming, no case folding, no
// content checks beyond header-value validity.
type XAPIToken struct {
	raw string
}

// NewXAPIToken wraps a raw token string for encoding onto a request.
func NewXAPIToken(raw string) XAPIToken {
	return XAPIToken{raw: raw}
}

// ParseXAPIToken extracts the admin token from a set of request headers.
// Exactly one occurrence of the header must be present and its value must be
// valid header-value text; anything else is a decode error.
func ParseXAPIToken(h http.Header) (XAPIToken, error) {
	values := h.Values(HeaderName)
	switch {
	case len(values) == 0:
		return XAPIToken{}, ErrHeaderMissing
	case len(values) > 1:
		return XAPIToken{}, ErrHeaderDuplicate
	}

	if !httpguts.ValidHeaderFieldValue(values[0]) {
		return XAPIToken{}, ErrHeaderMalformed
	}

	return XAPIToken{raw: values[0]}, nil
}

// EncodeValue returns the header value for the token, or
// ErrTokenNotEncodable if the token cannot appear in a header.
func (t XAPIToken) EncodeValue() (string, error) {
	if !httpguts.ValidHeaderFieldValue(t.raw) {
		return "", ErrTokenNotEncodable
	}
	return t.raw, nil
}

// SetHeader encodes the token onto h, replacing any existing occurrence.
func (t XAPIToken) SetHeader(h http.Header) error {
	value, err := t.EncodeValue()
	if err != nil {
		return err
	}
	h.Set(HeaderName, value)
	return nil
}

// String redacts the token value so it cannot leak through logging or
// error formatting.
func (t XAPIToken) String() string {
	return "XAPIToken(redacted)"
}
