package nav

import (
	"fmt"
	"os"

	"sharenav/config"
)

// TooLargeError denies a transfer whose file exceeds the configured cap.
type TooLargeError struct {
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("file is %d bytes, limit is %d", e.Size, e.Limit)
}

// Alert returns the user-facing denial text.
func (e *TooLargeError) Alert() string {
	return fmt.Sprintf("File exceeds %dMB limit", e.Limit/config.MB)
}

// TransferGate size-checks a resolved file before a transfer is
// authorized. It gates the decision only; moving the bytes belongs to the
// transport.
type TransferGate struct {
	maxBytes int64
}

// NewTransferGate creates a gate capped at maxBytes.
func NewTransferGate(maxBytes int64) *TransferGate {
	return &TransferGate{maxBytes: maxBytes}
}

// Authorize returns nil when path may be transferred, a *TooLargeError
// when it exceeds the cap, or the stat error when the file is gone.
func (g *TransferGate) Authorize(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > g.maxBytes {
		return &TooLargeError{Size: info.Size(), Limit: g.maxBytes}
	}
	return nil
}
