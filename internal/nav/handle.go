package nav

import (
	"github.com/google/uuid"
)

// handleLen is the display length of a token. 8 hex-ish uuid chars give 32
// bits of entropy, plenty for the bounded table sizes below while staying
// short enough for the transport's callback payload limit.
const handleLen = 8

// HandleTable maps short opaque tokens to absolute paths for one user.
// Tokens are the indirection that keeps filesystem paths out of callback
// payloads; do not replace them with raw paths.
//
// The table is bounded: once maxHandles bindings exist, issuing a new one
// evicts the oldest. A resolve miss after eviction is indistinguishable
// from a stale token, which callers already treat as not-found.
//
// HandleTable is not safe for concurrent use; its owning Session serializes
// access.
type HandleTable struct {
	entries    map[string]string
	order      []string // tokens in issue order, for FIFO eviction
	maxHandles int
}

// NewHandleTable creates an empty table bounded at maxHandles entries.
// maxHandles < 1 means unbounded.
func NewHandleTable(maxHandles int) *HandleTable {
	return &HandleTable{
		entries:    make(map[string]string),
		maxHandles: maxHandles,
	}
}

// Issue binds a fresh token to path and returns it. A generated token that
// collides with a live binding is discarded and re-drawn, so an existing
// binding is never silently overwritten.
func (t *HandleTable) Issue(path string) string {
	var token string
	for {
		token = uuid.NewString()[:handleLen]
		if _, exists := t.entries[token]; !exists {
			break
		}
	}

	if t.maxHandles > 0 && len(t.entries) >= t.maxHandles {
		oldest := t.order[0]
		t.order = t.order[1:]
		delete(t.entries, oldest)
	}

	t.entries[token] = path
	t.order = append(t.order, token)
	return token
}

// Resolve returns the path bound to token, or ok=false for unknown or
// evicted tokens. The caller still has to check the path against the
// sandbox and the live filesystem; a token only proves the binding existed.
func (t *HandleTable) Resolve(token string) (string, bool) {
	path, ok := t.entries[token]
	return path, ok
}

// Len returns the number of live bindings.
func (t *HandleTable) Len() int {
	return len(t.entries)
}
