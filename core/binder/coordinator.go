package binder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

// Form is the decoded content of a urlencoded or multipart body.
type Form struct {
	Fields url.Values
	Files  map[string][]UploadedFile
}

// Coordinator decodes a urlencoded or multipart body and signals readiness
// exactly once, after the decoder and every file write have finished.
//
// A pending counter starts at one for the decoder. Each file part adds one
// for its temp-file writer; each finished writer and the finished decoder
// subtract one. Ready is closed when the counter reaches zero.
type Coordinator struct {
	limits Limits

	started atomic.Bool
	pending atomic.Int64
	ready   chan struct{}

	mu     sync.Mutex
	fields url.Values
	files  map[string][]*UploadedFile
	err    error

	parts   int
	nFields int
	nFiles  int
}

// NewCoordinator creates a coordinator bound by limits.
func NewCoordinator(limits Limits) *Coordinator {
	c := &Coordinator{
		limits: limits,
		ready:  make(chan struct{}),
		fields: url.Values{},
		files:  make(map[string][]*UploadedFile),
	}
	c.pending.Store(1)
	return c
}

// Start validates contentType and begins decoding body in the background.
// Framing errors detectable from the header are returned synchronously.
func (c *Coordinator) Start(contentType string, body io.Reader) error {
	if !c.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		c.finish(fmt.Errorf("%w: content type: %w", ErrMalformedPayload, err))
		return c.failure()
	}

	if mediaType == mimeURLEncoded {
		go c.decodeURLEncoded(body)
		return nil
	}

	if !strings.Contains(mediaType, mimeMultipart) {
		c.finish(fmt.Errorf("%w: unexpected media type %s", ErrMalformedPayload, mediaType))
		return c.failure()
	}

	boundary := params["boundary"]
	if !validateBoundary(boundary) {
		c.finish(fmt.Errorf("%w: invalid multipart boundary", ErrMalformedPayload))
		return c.failure()
	}

	go c.decodeMultipart(multipart.NewReader(body, boundary))
	return nil
}

// Ready is closed once all body work has converged.
func (c *Coordinator) Ready() <-chan struct{} {
	return c.ready
}

// Wait blocks until Ready or ctx is done. On failure every temporary file
// created so far is removed. If ctx ends first, files are removed once the
// background work drains.
func (c *Coordinator) Wait(ctx context.Context) (Form, error) {
	if !c.started.Load() {
		return Form{}, ErrNotStarted
	}

	select {
	case <-c.ready:
	case <-ctx.Done():
		go func() {
			<-c.ready
			_ = RemoveFiles(c.snapshot().Files)
		}()
		return Form{}, ctx.Err()
	}

	form := c.snapshot()
	if err := c.failure(); err != nil {
		_ = RemoveFiles(form.Files)
		return Form{}, err
	}

	return form, nil
}

func (c *Coordinator) snapshot() Form {
	c.mu.Lock()
	defer c.mu.Unlock()

	files := make(map[string][]UploadedFile, len(c.files))
	for name, list := range c.files {
		out := make([]UploadedFile, len(list))
		for i, f := range list {
			out[i] = *f
		}
		files[name] = out
	}

	return Form{Fields: c.fields, Files: files}
}

// done releases one pending operation and closes ready on the last one.
func (c *Coordinator) done() {
	if c.pending.Add(-1) == 0 {
		close(c.ready)
	}
}

func (c *Coordinator) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err == nil {
		c.err = err
	}
}

func (c *Coordinator) failure() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// finish records err and releases the decoder slot without decoding.
func (c *Coordinator) finish(err error) {
	c.fail(err)
	c.done()
}

func (c *Coordinator) decodeURLEncoded(body io.Reader) {
	defer c.done()

	data, err := readLimited(body, c.limits.MaxRawSize)
	if err != nil {
		c.fail(err)
		return
	}

	values, err := url.ParseQuery(string(data))
	if err != nil {
		c.fail(fmt.Errorf("%w: %w", ErrMalformedPayload, err))
		return
	}

	count := 0
	for _, v := range values {
		count += len(v)
	}
	if exceeds(count, c.limits.MaxFields) {
		c.fail(fmt.Errorf("%w: %d fields, max %d", ErrUploadLimitExceeded, count, c.limits.MaxFields))
		return
	}

	c.mu.Lock()
	c.fields = values
	c.mu.Unlock()
}

func (c *Coordinator) decodeMultipart(mr *multipart.Reader) {
	defer c.done()

	for {
		part, err := mr.NextRawPart()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			c.fail(fmt.Errorf("%w: %w", ErrMalformedPayload, err))
			return
		}

		c.parts++
		if exceeds(c.parts, c.limits.MaxParts) {
			c.fail(fmt.Errorf("%w: more than %d parts", ErrUploadLimitExceeded, c.limits.MaxParts))
			return
		}

		if isFilePart(part) {
			c.nFiles++
			if exceeds(c.nFiles, c.limits.MaxFiles) {
				c.fail(fmt.Errorf("%w: more than %d files", ErrUploadLimitExceeded, c.limits.MaxFiles))
				return
			}
			err = c.streamFile(part)
		} else {
			c.nFields++
			if exceeds(c.nFields, c.limits.MaxFields) {
				c.fail(fmt.Errorf("%w: more than %d fields", ErrUploadLimitExceeded, c.limits.MaxFields))
				return
			}
			err = c.readField(part)
		}

		_ = part.Close()
		if err != nil {
			c.fail(err)
			return
		}
		if c.failure() != nil {
			return
		}
	}
}

func (c *Coordinator) readField(part *multipart.Part) error {
	value, err := readLimited(part, c.limits.MaxFieldSize)
	if err != nil {
		return fmt.Errorf("field %q: %w", part.FormName(), err)
	}

	c.mu.Lock()
	c.fields.Add(part.FormName(), string(value))
	c.mu.Unlock()
	return nil
}

// streamFile registers the upload, hands the part to a writer goroutine
// through a pipe and returns once the part has been fully copied.
func (c *Coordinator) streamFile(part *multipart.Part) error {
	tmp, err := os.CreateTemp(c.limits.Dir(), TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("binder: create temp file: %w", err)
	}

	upload := &UploadedFile{
		FieldName: part.FormName(),
		FileName:  sanitizeFilename(part.FileName()),
		Encoding:  headerOr(part, "Content-Transfer-Encoding", "7bit"),
		MimeType:  headerOr(part, "Content-Type", "text/plain"),
		TempPath:  tmp.Name(),
	}

	c.mu.Lock()
	c.files[upload.FieldName] = append(c.files[upload.FieldName], upload)
	c.mu.Unlock()

	pr, pw := io.Pipe()
	c.pending.Add(1)
	go c.writeFile(upload, tmp, pr)

	var src io.Reader = part
	if c.limits.MaxFileSize > 0 {
		src = io.LimitReader(part, c.limits.MaxFileSize+1)
	}

	n, err := io.Copy(pw, src)
	if err == nil && c.limits.MaxFileSize > 0 && n > c.limits.MaxFileSize {
		err = fmt.Errorf("%w: file %q larger than %d bytes", ErrUploadLimitExceeded, upload.FileName, c.limits.MaxFileSize)
	}
	_ = pw.CloseWithError(err)

	return err
}

func (c *Coordinator) writeFile(upload *UploadedFile, tmp *os.File, pr *io.PipeReader) {
	defer c.done()

	n, err := io.Copy(tmp, pr)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}

	c.mu.Lock()
	upload.Size = n
	c.mu.Unlock()

	if err != nil {
		_ = pr.CloseWithError(err)
		c.fail(fmt.Errorf("binder: write %s: %w", upload.TempPath, err))
	}
}

func isFilePart(part *multipart.Part) bool {
	_, params, err := mime.ParseMediaType(part.Header.Get("Content-Disposition"))
	if err != nil {
		return false
	}
	_, ok := params["filename"]
	return ok
}

func headerOr(part *multipart.Part, key, fallback string) string {
	if v := part.Header.Get(key); v != "" {
		return v
	}
	return fallback
}
