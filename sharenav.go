// Package sharenav exposes a sandboxed, chat-driven file navigator: a
// bounded tree renderer, per-user opaque path handles, paginated keyboard
// listings and the authorization and size gates in front of them.
package sharenav

import (
	"sharenav/config"
	"sharenav/internal/bot"
)

// Transport is the outbound chat collaborator; see [bot.Transport].
type Transport = bot.Transport

// New creates a navigation bot for your validated config and transport.
func New(cfg *config.Config, t Transport) (*bot.Bot, error) {
	return bot.New(cfg, t)
}
