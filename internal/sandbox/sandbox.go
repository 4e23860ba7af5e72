// Package sandbox confines every path the navigation core ever resolves
// to a single root directory.
package sandbox

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned when a path resolves above the sandbox root.
var ErrOutsideRoot = errors.New("path escapes shared root")

// Sandbox validates that resolved paths stay at or below its root.
type Sandbox struct {
	root string
}

// New creates a Sandbox for an absolute root path. The root is cleaned but
// not stat'd here; existence is a startup concern of config validation.
func New(root string) (*Sandbox, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &Sandbox{root: filepath.Clean(abs)}, nil
}

// Root returns the absolute sandbox root.
func (s *Sandbox) Root() string {
	return s.root
}

// IsRoot reports whether path cleans to the sandbox root itself.
func (s *Sandbox) IsRoot(path string) bool {
	return filepath.Clean(path) == s.root
}

// Within reports whether path is the root or below it.
func (s *Sandbox) Within(path string) bool {
	clean := filepath.Clean(path)
	if clean == s.root {
		return true
	}
	return strings.HasPrefix(clean, s.root+string(filepath.Separator))
}

// Resolve cleans path and rejects anything outside the root, including
// NUL bytes and ..-escapes that survive cleaning.
func (s *Sandbox) Resolve(path string) (string, error) {
	if strings.Contains(path, "\x00") {
		return "", ErrOutsideRoot
	}
	clean := filepath.Clean(path)
	if !s.Within(clean) {
		return "", ErrOutsideRoot
	}
	return clean, nil
}

// Parent returns the parent directory of path, clamped at the root so
// back-navigation can never climb out of the sandbox.
func (s *Sandbox) Parent(path string) string {
	clean := filepath.Clean(path)
	if clean == s.root {
		return s.root
	}
	parent := filepath.Dir(clean)
	if !s.Within(parent) {
		return s.root
	}
	return parent
}

// Join joins rel under the root and validates the result.
func (s *Sandbox) Join(rel string) (string, error) {
	return s.Resolve(filepath.Join(s.root, rel))
}
