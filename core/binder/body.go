package binder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Body is the consumed request body.
type Body struct {
	Strategy Strategy
	// Payload holds the decoded JSON value for StrategyJSON and the raw
	// bytes for StrategyRaw.
	Payload any
	// Raw holds the undecoded bytes for StrategyJSON and StrategyRaw.
	Raw    []byte
	Fields url.Values
	Files  map[string][]UploadedFile
}

// Read consumes r.Body with the strategy selected from its Content-Type.
// It returns once the body is fully consumed (including every multipart
// file write) or ctx is done.
func Read(ctx context.Context, r *http.Request, limits Limits) (*Body, error) {
	contentType := r.Header.Get("Content-Type")
	body := &Body{
		Strategy: SelectStrategy(contentType),
		Fields:   url.Values{},
		Files:    map[string][]UploadedFile{},
	}

	switch body.Strategy {
	case StrategyNone:
		return body, nil

	case StrategyJSON:
		data, err := readContext(ctx, r.Body, limits.MaxJSONSize)
		if err != nil {
			return nil, err
		}
		var payload any
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
		}
		body.Payload = payload
		body.Raw = data
		return body, nil

	case StrategyForm:
		c := NewCoordinator(limits)
		if err := c.Start(contentType, r.Body); err != nil {
			return nil, err
		}
		form, err := c.Wait(ctx)
		if err != nil {
			return nil, err
		}
		body.Fields = form.Fields
		body.Files = form.Files
		return body, nil

	default:
		data, err := readContext(ctx, r.Body, limits.MaxRawSize)
		if err != nil {
			return nil, err
		}
		body.Payload = data
		body.Raw = data
		return body, nil
	}
}

// readContext reads at most limit bytes from r, giving up when ctx is done.
// The reading goroutine ends when r is closed by the transport.
func readContext(ctx context.Context, r io.Reader, limit int64) ([]byte, error) {
	type result struct {
		data []byte
		err  error
	}

	ch := make(chan result, 1)
	go func() {
		data, err := readLimited(r, limit)
		ch <- result{data, err}
	}()

	select {
	case res := <-ch:
		return res.data, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// readLimited reads r fully, failing with ErrUploadLimitExceeded past limit
// bytes. A non-positive limit reads without bound.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	if limit <= 0 {
		return io.ReadAll(r)
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: body larger than %d bytes", ErrUploadLimitExceeded, limit)
	}
	return data, nil
}
