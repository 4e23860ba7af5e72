// Package transport holds in-tree implementations of bot.Transport. The
// chat network itself lives outside this module; Console exists so the
// navigation core can be driven end to end from a terminal.
package transport

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"sharenav/internal/bot"
	"sharenav/internal/nav"
)

// Console is a line-oriented transport for local runs. Inbound events are
// typed as lines ("start", "press <payload>"); outbound messages and
// keyboards are printed with their payloads visible so buttons can be
// "pressed" by copying the payload back in.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsole creates a Console writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) SendText(ctx context.Context, userID int64, text string) error {
	return c.printf("[%d] %s\n", userID, text)
}

func (c *Console) SendTextWithKeyboard(ctx context.Context, userID int64, text string, kb nav.KeyboardView) error {
	if err := c.printf("[%d] %s\n", userID, text); err != nil {
		return err
	}
	return c.printKeyboard(kb)
}

func (c *Console) EditText(ctx context.Context, userID int64, text string, kb nav.KeyboardView) error {
	return c.SendTextWithKeyboard(ctx, userID, text, kb)
}

func (c *Console) EditKeyboard(ctx context.Context, userID int64, kb nav.KeyboardView) error {
	return c.printKeyboard(kb)
}

func (c *Console) SendFile(ctx context.Context, userID int64, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	return c.printf("[%d] <file %s, %d bytes>\n", userID, path, info.Size())
}

func (c *Console) ShowAlert(ctx context.Context, userID int64, text string) error {
	return c.printf("[%d] (alert) %s\n", userID, text)
}

func (c *Console) printKeyboard(kb nav.KeyboardView) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, row := range kb.Rows {
		for _, btn := range row {
			if _, err := fmt.Fprintf(c.out, "  [%s]  %s\n", btn.Label, btn.Data); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(c.out, "  (page %d/%d)\n", kb.Page+1, kb.TotalPages)
	return err
}

func (c *Console) printf(format string, args ...any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintf(c.out, format, args...)
	return err
}

// RunConsole reads events from in and feeds them to b as the given user
// until EOF or ctx is done. Recognized lines:
//
//	start            deliver a start event
//	press <payload>  deliver a button press with a raw payload
//	quit             exit
func RunConsole(ctx context.Context, b *bot.Bot, in io.Reader, userID int64) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
		case line == "quit":
			return nil
		case line == "start":
			b.HandleStart(ctx, userID)
		case strings.HasPrefix(line, "press "):
			b.HandleCallback(ctx, userID, strings.TrimSpace(strings.TrimPrefix(line, "press ")))
		default:
			fmt.Fprintln(os.Stderr, "commands: start | press <payload> | quit")
		}
	}
	return scanner.Err()
}
