package nav

import (
	"sync"

	"github.com/puzpuzpuz/xsync/v4"
)

// Session owns one user's handle table. All access goes through Locked so
// concurrent callbacks from the same user serialize on the session lock
// instead of a global one; unrelated users never contend.
type Session struct {
	UserID int64

	mu      sync.Mutex
	handles *HandleTable
}

// Locked runs fn with exclusive access to the session's handle table.
func (s *Session) Locked(fn func(t *HandleTable)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.handles)
}

// SessionRegistry hands out per-user sessions, creating them lazily on
// first contact. Sessions live for the process lifetime.
type SessionRegistry struct {
	sessions   *xsync.Map[int64, *Session]
	maxHandles int
}

// NewSessionRegistry creates an empty registry whose sessions bound their
// handle tables at maxHandles entries.
func NewSessionRegistry(maxHandles int) *SessionRegistry {
	return &SessionRegistry{
		sessions:   xsync.NewMap[int64, *Session](),
		maxHandles: maxHandles,
	}
}

// Get returns userID's session, creating it if this is first contact.
func (r *SessionRegistry) Get(userID int64) *Session {
	if sess, ok := r.sessions.Load(userID); ok {
		return sess
	}
	fresh := &Session{UserID: userID, handles: NewHandleTable(r.maxHandles)}
	sess, _ := r.sessions.LoadOrStore(userID, fresh)
	return sess
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	return r.sessions.Size()
}
