// Package nav implements the navigation core: bounded tree rendering,
// per-user handle tables, paginated keyboard building, and the callback
// action router that ties them together.
package nav

import (
	"os"
	"path/filepath"
)

// EntryKind distinguishes files from directories.
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDir
)

// DirectoryEntry is one visible item of a directory listing. Derived on
// demand; never cached.
type DirectoryEntry struct {
	Name string
	Path string // absolute
	Kind EntryKind
	Size int64 // bytes, files only
}

// IsDir reports whether the entry is a directory.
func (e DirectoryEntry) IsDir() bool {
	return e.Kind == KindDir
}

// listDir returns the lexicographically sorted entries of dir. Any
// filesystem error (permissions, vanished dir) degrades to an empty
// listing; navigation availability wins over listing completeness.
func listDir(dir string) []DirectoryEntry {
	// os.ReadDir sorts by filename, which is the ordering the renderer
	// and pager both rely on.
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	entries := make([]DirectoryEntry, 0, len(dirents))
	for _, d := range dirents {
		e := DirectoryEntry{
			Name: d.Name(),
			Path: filepath.Join(dir, d.Name()),
		}
		if d.IsDir() {
			e.Kind = KindDir
		} else {
			e.Kind = KindFile
			if info, err := d.Info(); err == nil {
				e.Size = info.Size()
			}
		}
		entries = append(entries, e)
	}
	return entries
}
