package nav

import "sharenav/config"

// AuthGate evaluates the security mode against the caller id before any
// action runs. Denial is a normal outcome carrying the caller's own id so
// access can be requested out-of-band; it never reveals anything about
// the filesystem.
type AuthGate struct {
	open   bool
	admins map[int64]struct{}
}

// NewAuthGate builds the gate from validated startup config.
func NewAuthGate(cfg *config.Config) *AuthGate {
	gate := &AuthGate{open: cfg.SecurityMode == config.ModeOpen}
	if !gate.open {
		gate.admins = make(map[int64]struct{}, len(cfg.AdminIDs))
		for _, id := range cfg.AdminIDs {
			gate.admins[id] = struct{}{}
		}
	}
	return gate
}

// Allowed reports whether userID may use the bot.
func (g *AuthGate) Allowed(userID int64) bool {
	if g.open {
		return true
	}
	_, ok := g.admins[userID]
	return ok
}
