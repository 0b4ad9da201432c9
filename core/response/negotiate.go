package response

import (
	"mime"
	"strconv"
	"strings"
)

// MediaJSON is the media type that selects JSON encoding of a result.
const MediaJSON = "application/json"

// PreferredMediaType returns the media range of an Accept header with the
// highest quality. Ties go to the earliest entry. Ranges with q=0 are never
// preferred. An empty header yields "".
func PreferredMediaType(accept string) string {
	best := ""
	bestQ := 0.0

	for entry := range strings.SplitSeq(accept, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		mediaType, params, err := mime.ParseMediaType(entry)
		if err != nil {
			continue
		}

		q := 1.0
		if raw, ok := params["q"]; ok {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				q = v
			}
		}

		if q > bestQ {
			best, bestQ = mediaType, q
		}
	}

	return best
}

// WantsJSON reports whether the Accept header prefers JSON.
func WantsJSON(accept string) bool {
	return PreferredMediaType(accept) == MediaJSON
}
