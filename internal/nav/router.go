package nav

import (
	"errors"
	"os"
	"strconv"

	"sharenav/internal/metrics"
	"sharenav/internal/sandbox"
	"sharenav/internal/util"
)

// OutcomeKind classifies what a routed action asks the transport to do.
type OutcomeKind int

const (
	// OutcomeDenied rejects the caller before anything else runs.
	OutcomeDenied OutcomeKind = iota
	// OutcomeNotFound covers stale handles, vanished targets and
	// malformed payloads alike; the user recovers by navigating again.
	OutcomeNotFound
	// OutcomeListing replaces the displayed content and controls.
	OutcomeListing
	// OutcomePageFlip edits the displayed controls in place.
	OutcomePageFlip
	// OutcomeTransfer authorizes sending one file.
	OutcomeTransfer
	// OutcomeTooLarge rejects a transfer over the size cap.
	OutcomeTooLarge
)

// Outcome is the router's decision for one callback event. Only the
// fields relevant to its Kind are set.
type Outcome struct {
	Kind     OutcomeKind
	UserID   int64        // always set; Denied messages echo it back
	Keyboard KeyboardView // Listing, PageFlip
	Title    string       // Listing
	Path     string       // Transfer: the authorized file
	TooLarge *TooLargeError
}

// ActionRouter decodes callback payloads and dispatches them against the
// live handle tables. It is stateless between events; every event is
// interpreted against current table contents only.
type ActionRouter struct {
	gate      *AuthGate
	box       *sandbox.Sandbox
	pages     *PageBuilder
	transfers *TransferGate
	sessions  *SessionRegistry
	log       util.Logger
}

// NewActionRouter wires the router to its gates and per-user state.
func NewActionRouter(gate *AuthGate, box *sandbox.Sandbox, pages *PageBuilder, transfers *TransferGate, sessions *SessionRegistry) *ActionRouter {
	return &ActionRouter{
		gate:      gate,
		box:       box,
		pages:     pages,
		transfers: transfers,
		sessions:  sessions,
		log:       util.GetLogger("router"),
	}
}

// Sessions exposes the per-user session registry.
func (r *ActionRouter) Sessions() *SessionRegistry {
	return r.sessions
}

// Gate exposes the auth gate for pre-checks on non-callback events.
func (r *ActionRouter) Gate() *AuthGate {
	return r.gate
}

// BuildPage builds a keyboard page for userID under the session lock.
func (r *ActionRouter) BuildPage(userID int64, dir string, page int) KeyboardView {
	var view KeyboardView
	r.sessions.Get(userID).Locked(func(t *HandleTable) {
		view = r.pages.Build(t, dir, page)
	})
	metrics.RecordListing()
	return view
}

// Route interprets one callback event. It never returns an error; every
// failure mode is itself an outcome.
func (r *ActionRouter) Route(userID int64, payload string) Outcome {
	if !r.gate.Allowed(userID) {
		metrics.RecordAuth("denied")
		return Outcome{Kind: OutcomeDenied, UserID: userID}
	}
	metrics.RecordAuth("allowed")

	kind, field1, field2, err := decodePayload(payload)
	if err != nil {
		r.log.Debug().Int64("user", userID).Str("payload", payload).Err(err).Msg("Unroutable payload")
		return Outcome{Kind: OutcomeNotFound, UserID: userID}
	}

	switch kind {
	case ActionPage:
		return r.routePage(userID, field1, field2)
	case ActionDir:
		return r.routeDir(userID, field1)
	default:
		return r.routeFile(userID, field1)
	}
}

// routePage recomputes the keyboard for a path the user is already
// looking at. The path rides in the payload raw, so unlike handles it is
// caller-controlled and gets re-validated against the sandbox.
func (r *ActionRouter) routePage(userID int64, rawPath, rawPage string) Outcome {
	page, err := strconv.Atoi(rawPage)
	if err != nil {
		return Outcome{Kind: OutcomeNotFound, UserID: userID}
	}
	dir, err := r.box.Resolve(rawPath)
	if err != nil {
		r.log.Warn().Int64("user", userID).Str("path", rawPath).Msg("Page payload outside shared root")
		return Outcome{Kind: OutcomeNotFound, UserID: userID}
	}
	return Outcome{
		Kind:     OutcomePageFlip,
		UserID:   userID,
		Keyboard: r.BuildPage(userID, dir, page),
	}
}

func (r *ActionRouter) routeDir(userID int64, handle string) Outcome {
	dir, ok := r.resolveHandle(userID, handle)
	if !ok {
		return Outcome{Kind: OutcomeNotFound, UserID: userID}
	}
	return Outcome{
		Kind:     OutcomeListing,
		UserID:   userID,
		Title:    Title(dir),
		Keyboard: r.BuildPage(userID, dir, 0),
	}
}

func (r *ActionRouter) routeFile(userID int64, handle string) Outcome {
	path, ok := r.resolveHandle(userID, handle)
	if !ok {
		return Outcome{Kind: OutcomeNotFound, UserID: userID}
	}
	if err := r.transfers.Authorize(path); err != nil {
		var tooLarge *TooLargeError
		if errors.As(err, &tooLarge) {
			metrics.RecordTransfer("too_large")
			return Outcome{Kind: OutcomeTooLarge, UserID: userID, TooLarge: tooLarge}
		}
		// stat failed: the file vanished between listing and click
		return Outcome{Kind: OutcomeNotFound, UserID: userID}
	}
	return Outcome{Kind: OutcomeTransfer, UserID: userID, Path: path}
}

// resolveHandle looks a token up in the caller's table and re-checks the
// binding against the sandbox and the live filesystem. A handle only ever
// proves a past listing; the target may be gone by now.
func (r *ActionRouter) resolveHandle(userID int64, handle string) (string, bool) {
	var bound string
	var ok bool
	r.sessions.Get(userID).Locked(func(t *HandleTable) {
		bound, ok = t.Resolve(handle)
	})
	if !ok {
		return "", false
	}
	path, err := r.box.Resolve(bound)
	if err != nil {
		return "", false
	}
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}
