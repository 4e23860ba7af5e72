package nav

import (
	"path/filepath"
	"strings"
)

// Tree glyphs, matching the keyboard labels in page.go.
const (
	treeDirMark  = "📂 "
	treeFileMark = "📄 "

	connectorMid  = "┣ "
	connectorLast = "┗ "
	prefixMid     = "┃  "
	prefixLast    = "   "

	// truncationMarker is appended when a render hits a safety cap.
	truncationMarker = "⚠ Showing partial tree (safe mode enabled)"
)

// TreeRenderer produces a depth- and line-capped text rendering of a
// directory tree, chunked to the transport's message size. Deep or huge
// trees are adversarial input here, so both caps abort deterministically.
type TreeRenderer struct {
	maxDepth  int
	maxLines  int
	chunkSize int
}

// NewTreeRenderer returns a renderer with the given caps. chunkSize is the
// transport's message byte limit; chunk boundaries may fall mid-line.
func NewTreeRenderer(maxDepth, maxLines, chunkSize int) *TreeRenderer {
	return &TreeRenderer{maxDepth: maxDepth, maxLines: maxLines, chunkSize: chunkSize}
}

// Render walks root depth-first in sorted order and returns the rendering
// split into transport-sized chunks. It never fails: unreadable
// directories contribute no lines, and hitting the line cap aborts the
// whole walk, appends the truncation marker and reports truncated=true.
func (r *TreeRenderer) Render(root string) (chunks []string, truncated bool) {
	lines := []string{treeDirMark + filepath.Base(root)}
	truncated = !r.walk(root, "", 0, &lines)
	if truncated {
		lines = append(lines, truncationMarker)
	}
	return chunkText(strings.Join(lines, "\n"), r.chunkSize), truncated
}

// walk appends one line per visited entry. It returns false when the line
// cap was hit, which aborts the traversal globally rather than just the
// current branch.
func (r *TreeRenderer) walk(dir, prefix string, depth int, lines *[]string) bool {
	if depth > r.maxDepth {
		return true
	}
	entries := listDir(dir)
	for i, entry := range entries {
		if len(*lines) >= r.maxLines {
			return false
		}

		connector, childPrefix := connectorMid, prefixMid
		if i == len(entries)-1 {
			connector, childPrefix = connectorLast, prefixLast
		}

		if entry.IsDir() {
			*lines = append(*lines, prefix+connector+treeDirMark+entry.Name)
			if !r.walk(entry.Path, prefix+childPrefix, depth+1, lines) {
				return false
			}
		} else {
			*lines = append(*lines, prefix+connector+treeFileMark+entry.Name)
		}
	}
	return true
}

// chunkText splits text into size-byte segments. The final partial
// segment is kept; an empty text yields a single empty chunk.
func chunkText(text string, size int) []string {
	if size < 1 || len(text) <= size {
		return []string{text}
	}
	chunks := make([]string, 0, len(text)/size+1)
	for len(text) > size {
		chunks = append(chunks, text[:size])
		text = text[size:]
	}
	return append(chunks, text)
}
