package binder_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/yarf/core/binder"
)

type part struct {
	field    string
	filename string
	content  string
}

func multipartBody(t *testing.T, parts ...part) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for _, p := range parts {
		if p.filename != "" {
			fw, err := w.CreateFormFile(p.field, p.filename)
			require.NoError(t, err)
			_, err = io.WriteString(fw, p.content)
			require.NoError(t, err)
			continue
		}
		require.NoError(t, w.WriteField(p.field, p.content))
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func limitsIn(dir string) binder.Limits {
	l := binder.DefaultLimits()
	l.TempDir = dir
	return l
}

func tempFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, binder.TempFilePrefix+"*"))
	require.NoError(t, err)
	return matches
}

func TestSelectStrategy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		contentType string
		want        binder.Strategy
	}{
		{"", binder.StrategyNone},
		{"application/json", binder.StrategyJSON},
		{"application/json; charset=utf-8", binder.StrategyJSON},
		{"application/x-www-form-urlencoded", binder.StrategyForm},
		{"multipart/form-data; boundary=abc", binder.StrategyForm},
		{"Multipart/Form-Data; boundary=abc", binder.StrategyForm},
		{"text/plain", binder.StrategyRaw},
		{"application/octet-stream", binder.StrategyRaw},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, binder.SelectStrategy(tt.contentType))
		})
	}

	assert.Equal(t, "form", binder.StrategyForm.String())
}

func TestRead(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("no content type", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		body, err := binder.Read(ctx, req, binder.DefaultLimits())
		require.NoError(t, err)
		assert.Equal(t, binder.StrategyNone, body.Strategy)
		assert.Nil(t, body.Payload)
		assert.Empty(t, body.Fields)
		assert.Empty(t, body.Files)
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"widget","qty":2}`))
		req.Header.Set("Content-Type", "application/json")

		body, err := binder.Read(ctx, req, binder.DefaultLimits())
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "widget", "qty": float64(2)}, body.Payload)
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`))
		req.Header.Set("Content-Type", "application/json")

		_, err := binder.Read(ctx, req, binder.DefaultLimits())
		assert.ErrorIs(t, err, binder.ErrMalformedPayload)
	})

	t.Run("json over limit", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":"0123456789"}`))
		req.Header.Set("Content-Type", "application/json")

		limits := binder.DefaultLimits()
		limits.MaxJSONSize = 8
		_, err := binder.Read(ctx, req, limits)
		assert.ErrorIs(t, err, binder.ErrUploadLimitExceeded)
	})

	t.Run("raw", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader("plain words"))
		req.Header.Set("Content-Type", "text/plain")

		body, err := binder.Read(ctx, req, binder.DefaultLimits())
		require.NoError(t, err)
		assert.Equal(t, binder.StrategyRaw, body.Strategy)
		assert.Equal(t, []byte("plain words"), body.Payload)
	})

	t.Run("urlencoded", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=big+box&tag=a&tag=b&note=50%25"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		body, err := binder.Read(ctx, req, binder.DefaultLimits())
		require.NoError(t, err)
		assert.Equal(t, "big box", body.Fields.Get("name"))
		assert.Equal(t, []string{"a", "b"}, body.Fields["tag"])
		assert.Equal(t, "50%", body.Fields.Get("note"))
	})

	t.Run("urlencoded field limit", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=1&b=2&c=3"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		limits := binder.DefaultLimits()
		limits.MaxFields = 2
		_, err := binder.Read(ctx, req, limits)
		assert.ErrorIs(t, err, binder.ErrUploadLimitExceeded)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		pr, pw := io.Pipe()
		t.Cleanup(func() { _ = pw.Close() })

		req := httptest.NewRequest(http.MethodPut, "/", pr)
		req.Header.Set("Content-Type", "text/plain")

		cctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()

		_, err := binder.Read(cctx, req, binder.DefaultLimits())
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestRead_Multipart(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	buf, contentType := multipartBody(t,
		part{field: "title", content: "holiday"},
		part{field: "photo", filename: "../../beach.jpg", content: "JPEGDATA"},
	)
	req := httptest.NewRequest(http.MethodPost, "/upload", buf)
	req.Header.Set("Content-Type", contentType)

	body, err := binder.Read(context.Background(), req, limitsIn(dir))
	require.NoError(t, err)

	assert.Equal(t, binder.StrategyForm, body.Strategy)
	assert.Equal(t, "holiday", body.Fields.Get("title"))
	require.Len(t, body.Files, 1)
	require.Len(t, body.Files["photo"], 1)

	f := body.Files["photo"][0]
	assert.Equal(t, "photo", f.FieldName)
	assert.Equal(t, "beach.jpg", f.FileName)
	assert.Equal(t, "application/octet-stream", f.MimeType)
	assert.Equal(t, "7bit", f.Encoding)
	assert.Equal(t, int64(8), f.Size)
	assert.True(t, strings.HasPrefix(filepath.Base(f.TempPath), binder.TempFilePrefix))

	data, err := os.ReadFile(f.TempPath)
	require.NoError(t, err)
	assert.Equal(t, "JPEGDATA", string(data))

	require.NoError(t, f.Remove())
	assert.NoError(t, f.Remove())
	assert.Empty(t, tempFiles(t, dir))
}

func TestCoordinator_ManyParts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	var parts []part
	const files, fields = 12, 7
	for i := range files {
		parts = append(parts, part{
			field:    fmt.Sprintf("file%d", i),
			filename: fmt.Sprintf("f%d.bin", i),
			content:  strings.Repeat(fmt.Sprint(i%10), 64*1024+i),
		})
		if i < fields {
			parts = append(parts, part{field: fmt.Sprintf("field%d", i), content: fmt.Sprint(i)})
		}
	}
	buf, contentType := multipartBody(t, parts...)

	c := binder.NewCoordinator(limitsIn(dir))
	require.NoError(t, c.Start(contentType, buf))

	form, err := c.Wait(context.Background())
	require.NoError(t, err)

	select {
	case <-c.Ready():
	default:
		t.Fatal("ready must be closed after Wait returns")
	}

	assert.Len(t, form.Fields, fields)
	assert.Len(t, form.Files, files)
	for i := range files {
		f := form.Files[fmt.Sprintf("file%d", i)][0]
		assert.Equal(t, int64(64*1024+i), f.Size)
		info, err := os.Stat(f.TempPath)
		require.NoError(t, err)
		assert.Equal(t, f.Size, info.Size())
	}

	_, err = c.Wait(context.Background())
	require.NoError(t, err, "waiting again observes the same ready state")
	assert.ErrorIs(t, c.Start(contentType, strings.NewReader("")), binder.ErrAlreadyStarted)
}

func TestCoordinator_Limits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		parts  []part
		adjust func(*binder.Limits)
	}{
		{
			name:   "too many files",
			parts:  []part{{field: "a", filename: "a.txt", content: "a"}, {field: "b", filename: "b.txt", content: "b"}},
			adjust: func(l *binder.Limits) { l.MaxFiles = 1 },
		},
		{
			name:   "too many fields",
			parts:  []part{{field: "a", content: "1"}, {field: "b", content: "2"}},
			adjust: func(l *binder.Limits) { l.MaxFields = 1 },
		},
		{
			name:   "too many parts",
			parts:  []part{{field: "a", content: "1"}, {field: "b", filename: "b.txt", content: "2"}},
			adjust: func(l *binder.Limits) { l.MaxParts = 1 },
		},
		{
			name:   "file too large",
			parts:  []part{{field: "a", filename: "a.txt", content: strings.Repeat("x", 100)}},
			adjust: func(l *binder.Limits) { l.MaxFileSize = 10 },
		},
		{
			name:   "field too large",
			parts:  []part{{field: "a", content: strings.Repeat("x", 100)}},
			adjust: func(l *binder.Limits) { l.MaxFieldSize = 10 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			limits := limitsIn(dir)
			tt.adjust(&limits)

			buf, contentType := multipartBody(t, tt.parts...)
			c := binder.NewCoordinator(limits)
			require.NoError(t, c.Start(contentType, buf))

			_, err := c.Wait(context.Background())
			assert.ErrorIs(t, err, binder.ErrUploadLimitExceeded)
			assert.Empty(t, tempFiles(t, dir), "temporary files of a failed body are removed")
		})
	}
}

func TestCoordinator_Malformed(t *testing.T) {
	t.Parallel()

	t.Run("missing boundary", func(t *testing.T) {
		t.Parallel()
		c := binder.NewCoordinator(binder.DefaultLimits())
		err := c.Start("multipart/form-data", strings.NewReader(""))
		assert.ErrorIs(t, err, binder.ErrMalformedPayload)

		_, err = c.Wait(context.Background())
		assert.ErrorIs(t, err, binder.ErrMalformedPayload)
	})

	t.Run("truncated body", func(t *testing.T) {
		t.Parallel()
		c := binder.NewCoordinator(limitsIn(t.TempDir()))
		require.NoError(t, c.Start("multipart/form-data; boundary=xyz", strings.NewReader("--xyz\r\nContent-Disposition: form-data; name=\"a\"\r\n\r\nvalue")))

		_, err := c.Wait(context.Background())
		assert.Error(t, err)
	})

	t.Run("not started", func(t *testing.T) {
		t.Parallel()
		c := binder.NewCoordinator(binder.DefaultLimits())
		_, err := c.Wait(context.Background())
		assert.ErrorIs(t, err, binder.ErrNotStarted)
	})
}

func TestRemoveFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, binder.TempFilePrefix+"x")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	err := binder.RemoveFiles(map[string][]binder.UploadedFile{
		"a": {{TempPath: path}, {TempPath: filepath.Join(dir, "missing")}},
	})
	require.NoError(t, err)
	assert.NoFileExists(t, path)
}
