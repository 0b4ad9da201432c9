package static

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrNotDirectory is returned when the public root is not a directory.
var ErrNotDirectory = errors.New("static: public root is not a directory")

// Public serves regular files found under a root directory. Directories are
// never listed or served.
type Public struct {
	root string
}

// NewPublic creates a Public rooted at dir. The directory must exist.
func NewPublic(dir string) (*Public, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("static: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	return &Public{root: root}, nil
}

// Root returns the absolute public directory.
func (p *Public) Root() string {
	return p.root
}

// Lookup maps a URL path to a regular file under the root.
func (p *Public) Lookup(urlPath string) (string, bool) {
	clean := path.Clean("/" + urlPath)
	if clean == "/" {
		return "", false
	}

	file := filepath.Join(p.root, filepath.FromSlash(clean))
	if !within(p.root, file) {
		return "", false
	}

	info, err := os.Stat(file)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return file, true
}

// Serve writes the file matching r and reports whether it did. Only GET and
// HEAD requests are served.
func (p *Public) Serve(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}

	file, ok := p.Lookup(r.URL.Path)
	if !ok {
		return false
	}

	f, err := os.Open(file)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}

// within reports whether file is root or inside it.
func within(root, file string) bool {
	return file == root || strings.HasPrefix(file, root+string(filepath.Separator))
}
