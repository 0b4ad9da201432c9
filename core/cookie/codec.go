package cookie

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
)

// MaxCookieSize is the maximum size for a serialized cookie (4KB).
const MaxCookieSize = 4096

// Parse decodes a Cookie request header into a name/value map.
// The first occurrence of a name wins; quoted values are unquoted and
// percent-encoded values are decoded when they decode cleanly.
func Parse(header string) map[string]string {
	cookies := make(map[string]string)
	if header == "" {
		return cookies
	}

	for pair := range strings.SplitSeq(header, ";") {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}

		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, exists := cookies[name]; exists {
			continue
		}

		value = strings.TrimSpace(value)
		if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
			value = value[1 : len(value)-1]
		}
		if decoded, err := url.PathUnescape(value); err == nil {
			value = decoded
		}

		cookies[name] = value
	}

	return cookies
}

// Serialize encodes one Set-Cookie header value.
func Serialize(name, value string, opts Options) (string, error) {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     opts.Path,
		Domain:   opts.Domain,
		MaxAge:   opts.MaxAge,
		Secure:   opts.Secure,
		HttpOnly: opts.HttpOnly,
		SameSite: opts.SameSite,
	}

	if err := c.Valid(); err != nil {
		return "", errors.Join(ErrInvalidCookie, err)
	}

	header := c.String()
	if len(header) > MaxCookieSize {
		return "", ErrCookieTooLarge{Name: name, Size: len(header), Max: MaxCookieSize}
	}

	return header, nil
}
