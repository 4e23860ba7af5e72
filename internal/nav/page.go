package nav

import (
	"fmt"
	"path/filepath"

	"sharenav/internal/sandbox"
)

// Keyboard labels.
const (
	labelBack = "⬆ Back"
	labelPrev = "⬅ Prev"
	labelNext = "Next ➡"

	dirMark  = "📁 "
	fileMark = "📄 "
)

// PageBuilder turns (directory, page index) into a KeyboardView. Listings
// are recomputed from the live filesystem on every call; two builds of the
// same page may disagree if the directory changed in between, and that is
// accepted rather than corrected.
type PageBuilder struct {
	box      *sandbox.Sandbox
	pageSize int
}

// NewPageBuilder creates a builder paging pageSize entries at a time.
func NewPageBuilder(box *sandbox.Sandbox, pageSize int) *PageBuilder {
	return &PageBuilder{box: box, pageSize: pageSize}
}

// Build lists dir and returns the keyboard for the requested page. Handles
// for every visible entry (and the parent item) are issued into table, so
// the caller must hold the owning session's lock.
//
// A vanished or unreadable dir yields an empty page with only the parent
// item; an out-of-range page index is clamped, tolerating directories that
// shrank between page requests.
func (b *PageBuilder) Build(table *HandleTable, dir string, page int) KeyboardView {
	entries := listDir(dir)

	totalPages := (len(entries)-1)/b.pageSize + 1
	if len(entries) == 0 {
		totalPages = 1
	}
	page = clampPage(page, totalPages)

	start := page * b.pageSize
	end := min(start+b.pageSize, len(entries))

	view := KeyboardView{Page: page, TotalPages: totalPages}

	// Back button everywhere except the root itself.
	if !b.box.IsRoot(dir) {
		parent := b.box.Parent(dir)
		view.Rows = append(view.Rows, []Button{{
			Label: labelBack,
			Data:  DirPayload(table.Issue(parent)),
		}})
	}

	for _, entry := range entries[start:end] {
		handle := table.Issue(entry.Path)
		var btn Button
		if entry.IsDir() {
			btn = Button{
				Label: dirMark + entry.Name + "/",
				Data:  DirPayload(handle),
			}
		} else {
			btn = Button{
				Label: fmt.Sprintf("%s%s (%.2fMB)", fileMark, entry.Name, float64(entry.Size)/(1024*1024)),
				Data:  FilePayload(handle),
			}
		}
		view.Rows = append(view.Rows, []Button{btn})
	}

	// Pagination row, only when there is somewhere to go.
	var nav []Button
	if page > 0 {
		nav = append(nav, Button{Label: labelPrev, Data: PagePayload(dir, page-1)})
	}
	if page < totalPages-1 {
		nav = append(nav, Button{Label: labelNext, Data: PagePayload(dir, page+1)})
	}
	if len(nav) > 0 {
		view.Rows = append(view.Rows, nav)
	}

	return view
}

// Title returns the heading shown above a directory's keyboard, derived
// from the final path segment.
func Title(dir string) string {
	return treeDirMark + filepath.Base(dir)
}

// clampPage keeps page inside [0, totalPages). Silent clamping is the
// policy here; a strict build would reject instead, in this one place.
func clampPage(page, totalPages int) int {
	if page < 0 {
		return 0
	}
	if page > totalPages-1 {
		return totalPages - 1
	}
	return page
}
