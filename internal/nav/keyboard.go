package nav

import (
	"fmt"
	"strconv"
	"strings"
)

// ActionKind is the first field of a callback payload.
type ActionKind string

const (
	// ActionPage flips the displayed page of an already-shown directory.
	// Its payload carries the raw directory path and target page index.
	ActionPage ActionKind = "PAGE"
	// ActionDir opens the directory a handle resolves to.
	ActionDir ActionKind = "DIR"
	// ActionFile requests transfer of the file a handle resolves to.
	ActionFile ActionKind = "FILE"
)

// payloadSep delimits the three payload fields: KIND|field|field.
const payloadSep = "|"

// Button is one actionable item: a label the user sees and the opaque
// payload the transport echoes back on press.
type Button struct {
	Label string
	Data  string
}

// KeyboardView is an ordered grid of buttons plus pagination metadata,
// independent of any rendering technology. Rows render top to bottom.
type KeyboardView struct {
	Rows       [][]Button
	Page       int
	TotalPages int
}

// Empty reports whether the view has no buttons at all.
func (k KeyboardView) Empty() bool {
	return len(k.Rows) == 0
}

// PagePayload encodes a page-flip action. Unlike DIR/FILE this carries the
// raw path: the directory is already on screen, so nothing is leaked, and
// page payloads stay within the transport limit without indirection.
func PagePayload(dir string, page int) string {
	return strings.Join([]string{string(ActionPage), dir, strconv.Itoa(page)}, payloadSep)
}

// DirPayload encodes opening the directory bound to handle.
func DirPayload(handle string) string {
	return strings.Join([]string{string(ActionDir), handle, "0"}, payloadSep)
}

// FilePayload encodes transferring the file bound to handle.
func FilePayload(handle string) string {
	return strings.Join([]string{string(ActionFile), handle, "0"}, payloadSep)
}

// decodePayload splits a callback payload into its kind and two fields.
// The payload is produced by this package but travels through the
// transport, so treat it as untrusted input.
func decodePayload(payload string) (kind ActionKind, field1, field2 string, err error) {
	parts := strings.SplitN(payload, payloadSep, 3)
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("malformed payload %q", payload)
	}
	switch ActionKind(parts[0]) {
	case ActionPage, ActionDir, ActionFile:
		return ActionKind(parts[0]), parts[1], parts[2], nil
	default:
		return "", "", "", fmt.Errorf("unknown action kind %q", parts[0])
	}
}
