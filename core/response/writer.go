package response

import "net/http"

// Writer wraps an http.ResponseWriter and records the status and size of
// what was written through it.
type Writer struct {
	http.ResponseWriter
	status  int
	bytes   int64
	written bool
}

// Track wraps w. Wrapping a *Writer returns it unchanged.
func Track(w http.ResponseWriter) *Writer {
	if tw, ok := w.(*Writer); ok {
		return tw
	}
	return &Writer{ResponseWriter: w}
}

// WriteHeader implements http.ResponseWriter. Only the first call takes effect.
func (w *Writer) WriteHeader(status int) {
	if w.written {
		return
	}
	w.status = status
	w.written = true
	w.ResponseWriter.WriteHeader(status)
}

// Write implements http.ResponseWriter.
func (w *Writer) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += int64(n)
	return n, err
}

// Written reports whether headers have been sent.
func (w *Writer) Written() bool {
	return w.written
}

// Status returns the status sent, or 0 before headers are sent.
func (w *Writer) Status() int {
	return w.status
}

// Bytes returns the number of body bytes written.
func (w *Writer) Bytes() int64 {
	return w.bytes
}

// Flush implements http.Flusher when the underlying writer does.
func (w *Writer) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap returns the underlying writer for http.ResponseController.
func (w *Writer) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
