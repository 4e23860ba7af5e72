// Package bot binds inbound chat events to the navigation core and relays
// the core's outcomes through the outbound transport.
package bot

import (
	"context"
	"fmt"
	"time"

	"sharenav/config"
	"sharenav/internal/metrics"
	"sharenav/internal/nav"
	"sharenav/internal/sandbox"
	"sharenav/internal/util"
)

// Transport is the chat collaborator the bot talks back through. Message
// delivery, button rendering and callback ordering all live behind it;
// the bot only decides what to show and what to send.
//
// SendFile moves the bytes of one file and blocks until the transfer
// finishes or ctx expires; its error is the asynchronous transfer outcome.
type Transport interface {
	SendText(ctx context.Context, userID int64, text string) error
	SendTextWithKeyboard(ctx context.Context, userID int64, text string, kb nav.KeyboardView) error
	EditText(ctx context.Context, userID int64, text string, kb nav.KeyboardView) error
	EditKeyboard(ctx context.Context, userID int64, kb nav.KeyboardView) error
	SendFile(ctx context.Context, userID int64, path string) error
	ShowAlert(ctx context.Context, userID int64, text string) error
}

// User-facing message texture.
const (
	msgNavigate       = "📁 Navigation: Browse folders below"
	msgUploading      = "Uploading..."
	msgUploadComplete = "Upload complete ✅"
	msgNotFound       = "Not found"
)

// Bot is the event-facing surface of the navigation core. The transport
// drives HandleStart and HandleCallback, one goroutine per inbound event;
// all shared state behind them is the per-session locked handle tables.
type Bot struct {
	cfg       *config.Config
	box       *sandbox.Sandbox
	router    *nav.ActionRouter
	tree      *nav.TreeRenderer
	transport Transport
	log       util.Logger
}

// New wires a Bot from validated config. The transport is injected so the
// core stays independent of any chat network.
func New(cfg *config.Config, transport Transport) (*Bot, error) {
	box, err := sandbox.New(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("sandbox root: %w", err)
	}

	sessions := nav.NewSessionRegistry(cfg.MaxHandles)
	router := nav.NewActionRouter(
		nav.NewAuthGate(cfg),
		box,
		nav.NewPageBuilder(box, cfg.PageSize),
		nav.NewTransferGate(cfg.MaxFileSize),
		sessions,
	)

	return &Bot{
		cfg:       cfg,
		box:       box,
		router:    router,
		tree:      nav.NewTreeRenderer(cfg.MaxTreeDepth, cfg.MaxTreeLines, cfg.MsgChunkSize),
		transport: transport,
		log:       util.GetLogger("bot"),
	}, nil
}

// Router exposes the action router, mainly for tests.
func (b *Bot) Router() *nav.ActionRouter {
	return b.router
}

// HandleStart serves the start command: the chunked tree of the shared
// root followed by the page-0 keyboard.
func (b *Bot) HandleStart(ctx context.Context, userID int64) {
	if !b.router.Gate().Allowed(userID) {
		metrics.RecordAuth("denied")
		b.send(ctx, userID, deniedMessage(userID))
		return
	}
	metrics.RecordAuth("allowed")

	chunks, truncated := b.tree.Render(b.box.Root())
	if truncated {
		metrics.RecordTreeRender("truncated")
	} else {
		metrics.RecordTreeRender("full")
	}
	for _, chunk := range chunks {
		b.send(ctx, userID, chunk)
	}

	kb := b.router.BuildPage(userID, b.box.Root(), 0)
	if err := b.transport.SendTextWithKeyboard(ctx, userID, msgNavigate, kb); err != nil {
		b.log.Error().Err(err).Int64("user", userID).Msg("Failed to send navigation keyboard")
	}
	metrics.SetActiveSessions(b.router.Sessions().Len())
}

// HandleCallback serves one button press. Every failure mode is relayed
// to the user; nothing here is fatal to the process.
func (b *Bot) HandleCallback(ctx context.Context, userID int64, payload string) {
	outcome := b.router.Route(userID, payload)

	switch outcome.Kind {
	case nav.OutcomeDenied:
		b.alert(ctx, userID, deniedMessage(userID))

	case nav.OutcomeNotFound:
		b.alert(ctx, userID, msgNotFound)

	case nav.OutcomePageFlip:
		if err := b.transport.EditKeyboard(ctx, userID, outcome.Keyboard); err != nil {
			b.log.Error().Err(err).Int64("user", userID).Msg("Failed to edit keyboard")
		}

	case nav.OutcomeListing:
		if err := b.transport.EditText(ctx, userID, outcome.Title, outcome.Keyboard); err != nil {
			b.log.Error().Err(err).Int64("user", userID).Msg("Failed to edit listing")
		}

	case nav.OutcomeTooLarge:
		b.alert(ctx, userID, outcome.TooLarge.Alert())

	case nav.OutcomeTransfer:
		b.send(ctx, userID, msgUploading)
		go b.transfer(ctx, userID, outcome.Path)
	}
}

// transfer sends one authorized file and relays the outcome verbatim.
// One attempt, no retry; the deadline is detached from the callback's
// context because transfers outlive it by minutes.
func (b *Bot) transfer(ctx context.Context, userID int64, path string) {
	sendCtx, cancel := context.WithTimeout(
		context.WithoutCancel(ctx),
		time.Duration(b.cfg.TransferTimeout)*time.Second,
	)
	defer cancel()

	if err := b.transport.SendFile(sendCtx, userID, path); err != nil {
		metrics.RecordTransfer("failed")
		b.log.Warn().Err(err).Int64("user", userID).Str("path", path).Msg("Transfer failed")
		b.send(sendCtx, userID, fmt.Sprintf("Upload failed ❌\n%s", err))
		return
	}
	metrics.RecordTransfer("sent")
	b.send(sendCtx, userID, msgUploadComplete)
}

func (b *Bot) send(ctx context.Context, userID int64, text string) {
	if err := b.transport.SendText(ctx, userID, text); err != nil {
		b.log.Error().Err(err).Int64("user", userID).Msg("Failed to send message")
	}
}

func (b *Bot) alert(ctx context.Context, userID int64, text string) {
	if err := b.transport.ShowAlert(ctx, userID, text); err != nil {
		b.log.Error().Err(err).Int64("user", userID).Msg("Failed to show alert")
	}
}

func deniedMessage(userID int64) string {
	return fmt.Sprintf("❌ Access Denied\nYour ID: %d", userID)
}
