package nav

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree lays out a small fixture:
//
//	root/
//	  docs/
//	    a.txt
//	  readme.md
func writeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "a.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "readme.md"), []byte("# hi"), 0o644))
	return root
}

func renderLines(t *testing.T, r *TreeRenderer, root string) ([]string, bool) {
	t.Helper()
	chunks, truncated := r.Render(root)
	return strings.Split(strings.Join(chunks, ""), "\n"), truncated
}

func TestTreeRenderer_Render(t *testing.T) {
	root := writeTree(t)
	r := NewTreeRenderer(3, 300, 3500)

	lines, truncated := renderLines(t, r, root)
	assert.False(t, truncated)
	require.Len(t, lines, 4)
	assert.Equal(t, treeDirMark+filepath.Base(root), lines[0])
	assert.Equal(t, "┣ 📂 docs", lines[1])
	assert.Equal(t, "┃  ┗ 📄 a.txt", lines[2])
	assert.Equal(t, "┗ 📄 readme.md", lines[3])
}

func TestTreeRenderer_Deterministic(t *testing.T) {
	root := writeTree(t)
	r := NewTreeRenderer(3, 300, 3500)

	first, _ := r.Render(root)
	second, _ := r.Render(root)
	assert.Equal(t, first, second)
}

func TestTreeRenderer_DepthCap(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "l0", "l1", "l2", "l3")
	require.NoError(t, os.MkdirAll(deep, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(deep, "buried.txt"), nil, 0o644))

	r := NewTreeRenderer(1, 300, 3500)
	lines, truncated := renderLines(t, r, root)

	assert.False(t, truncated)
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "l0")
	assert.Contains(t, joined, "l1")
	assert.NotContains(t, joined, "l2")
	assert.NotContains(t, joined, "buried.txt")
}

func TestTreeRenderer_LineCap(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 50; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, fmt.Sprintf("f%03d.txt", i)), nil, 0o644))
	}

	const maxLines = 10
	r := NewTreeRenderer(3, maxLines, 3500)
	lines, truncated := renderLines(t, r, root)

	assert.True(t, truncated)
	assert.Equal(t, truncationMarker, lines[len(lines)-1])
	assert.LessOrEqual(t, len(lines)-1, maxLines, "lines before the marker stay under the cap")
}

func TestTreeRenderer_LineCapAbortsGlobally(t *testing.T) {
	root := t.TempDir()
	// first subdir holds enough entries to exhaust the cap; the sibling
	// after it must not be rendered at all
	busy := filepath.Join(root, "a-busy")
	require.NoError(t, os.Mkdir(busy, 0o755))
	for i := 0; i < 20; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(busy, fmt.Sprintf("f%02d", i)), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(root, "z-after"), 0o755))

	r := NewTreeRenderer(3, 5, 3500)
	lines, truncated := renderLines(t, r, root)

	assert.True(t, truncated)
	assert.NotContains(t, strings.Join(lines, "\n"), "z-after")
}

func TestTreeRenderer_UnreadableRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone")

	r := NewTreeRenderer(3, 300, 3500)
	lines, truncated := renderLines(t, r, missing)

	assert.False(t, truncated)
	require.Len(t, lines, 1, "unreadable directory renders as empty, not an error")
	assert.Equal(t, treeDirMark+"gone", lines[0])
}

func TestTreeRenderer_Chunking(t *testing.T) {
	root := writeTree(t)

	full, _ := NewTreeRenderer(3, 300, 1<<20).Render(root)
	require.Len(t, full, 1)

	chunked, _ := NewTreeRenderer(3, 300, 10).Render(root)
	assert.Greater(t, len(chunked), 1)
	for _, c := range chunked {
		assert.LessOrEqual(t, len(c), 10)
	}
	// reassembly equals the unchunked rendering
	assert.Equal(t, full[0], strings.Join(chunked, ""))
}

func TestChunkText_Empty(t *testing.T) {
	assert.Equal(t, []string{""}, chunkText("", 10))
}
