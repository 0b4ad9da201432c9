package binder

import (
	"mime"
	"strings"
)

// Strategy is the body consumption strategy chosen from a Content-Type.
type Strategy int

const (
	// StrategyNone is used for requests without a Content-Type.
	StrategyNone Strategy = iota
	// StrategyJSON buffers and decodes an application/json body.
	StrategyJSON
	// StrategyForm hands urlencoded and multipart bodies to a Coordinator.
	StrategyForm
	// StrategyRaw buffers any other body as bytes.
	StrategyRaw
)

// String implements fmt.Stringer.
func (s Strategy) String() string {
	switch s {
	case StrategyNone:
		return "none"
	case StrategyJSON:
		return "json"
	case StrategyForm:
		return "form"
	case StrategyRaw:
		return "raw"
	default:
		return "unknown"
	}
}

const (
	mimeJSON       = "application/json"
	mimeURLEncoded = "application/x-www-form-urlencoded"
	mimeMultipart  = "multipart/form-data"
)

// SelectStrategy maps a Content-Type header value to a Strategy.
// Parameters such as charset are ignored; multipart is matched as a substring.
func SelectStrategy(contentType string) Strategy {
	if strings.TrimSpace(contentType) == "" {
		return StrategyNone
	}

	mediaType := mediaTypeOf(contentType)
	switch {
	case mediaType == mimeJSON:
		return StrategyJSON
	case mediaType == mimeURLEncoded:
		return StrategyForm
	case strings.Contains(strings.ToLower(contentType), mimeMultipart):
		return StrategyForm
	default:
		return StrategyRaw
	}
}

func mediaTypeOf(contentType string) string {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		return mt
	}
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
