package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the file that marks a modules directory as a handler module.
const ManifestFile = "controller.yaml"

// Manifest describes a handler module on disk.
type Manifest struct {
	// Controller names the factory registered with the DirLoader.
	Controller string `yaml:"controller"`
	// Description is free text shown by tooling.
	Description string `yaml:"description,omitempty"`
}

// DirLoader walks a modules tree on disk. Each directory under root mirrors a
// URL prefix; a directory containing ManifestFile is a handler module whose
// manifest names one of the factories bound with Bind.
type DirLoader[H any] struct {
	root      string
	factories map[string]H
	valid     func(H) bool
}

// NewDirLoader creates a loader rooted at the modules directory.
func NewDirLoader[H any](root string, valid func(H) bool) *DirLoader[H] {
	return &DirLoader[H]{
		root:      root,
		factories: make(map[string]H),
		valid:     valid,
	}
}

// Bind makes a factory available to manifests under the given name.
// Bind is not safe for concurrent use with Load; call it during startup.
func (l *DirLoader[H]) Bind(name string, h H) {
	l.factories[name] = h
}

// Root returns the modules directory.
func (l *DirLoader[H]) Root() string {
	return l.root
}

// Load implements Loader.
func (l *DirLoader[H]) Load(_ context.Context, logicalPath string) (H, error) {
	var zero H

	clean := Clean(logicalPath)
	if slices.Contains(strings.Split(clean, "/"), "..") {
		return zero, ErrPathNotFound
	}
	dir := filepath.Join(l.root, filepath.FromSlash(clean))

	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zero, ErrPathNotFound
		}
		return zero, err
	}
	if !info.IsDir() {
		return zero, ErrPathNotFound
	}

	manifest, err := readManifest(filepath.Join(dir, ManifestFile))
	if err != nil {
		return zero, err
	}

	h, ok := l.factories[manifest.Controller]
	if !ok || (l.valid != nil && !l.valid(h)) {
		return zero, fmt.Errorf("%w: %s names %q", ErrNotConstructible, logicalPath, manifest.Controller)
	}

	return h, nil
}

// Modules lists the logical paths of every directory holding a manifest.
func (l *DirLoader[H]) Modules() ([]string, error) {
	var paths []string

	err := filepath.WalkDir(l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != ManifestFile {
			return nil
		}

		rel, err := filepath.Rel(l.root, filepath.Dir(p))
		if err != nil {
			return err
		}
		paths = append(paths, Clean(filepath.ToSlash(rel)))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

func readManifest(file string) (Manifest, error) {
	var m Manifest

	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return m, ErrNoModule
		}
		return m, err
	}

	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, errors.Join(ErrInvalidManifest, ErrNotConstructible, err)
	}
	if m.Controller == "" {
		return m, fmt.Errorf("%w: %s has no controller", ErrNotConstructible, file)
	}

	return m, nil
}
