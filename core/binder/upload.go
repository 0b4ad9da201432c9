package binder

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// UploadedFile describes one file part of a multipart body. The part content
// lives at TempPath; removing it is up to the handler (or the janitor).
type UploadedFile struct {
	FieldName string
	FileName  string
	Encoding  string
	MimeType  string
	TempPath  string
	Size      int64
}

// Open opens the temporary file for reading.
func (f UploadedFile) Open() (*os.File, error) {
	return os.Open(f.TempPath)
}

// Remove deletes the temporary file. Removing an already missing file is not an error.
func (f UploadedFile) Remove() error {
	if err := os.Remove(f.TempPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// RemoveFiles deletes every temporary file in files and joins the failures.
func RemoveFiles(files map[string][]UploadedFile) error {
	var errs []error
	for _, list := range files {
		for _, f := range list {
			if err := f.Remove(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// sanitizeFilename keeps only the base name of a client-supplied filename.
func sanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		return "unnamed"
	}
	return filename
}

// validateBoundary rejects multipart boundaries that cannot be framed safely.
func validateBoundary(boundary string) bool {
	if boundary == "" || len(boundary) > 70 {
		return false
	}
	return !strings.ContainsAny(boundary, "\x00\r\n")
}
