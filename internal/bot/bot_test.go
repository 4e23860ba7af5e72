package bot_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sharenav/config"
	"sharenav/internal/bot"
	"sharenav/internal/mocks"
	"sharenav/internal/nav"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "a.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "readme.md"), []byte("# hi"), 0o644))

	cfg := config.NewDefaultConfig()
	cfg.Token = "test-token"
	cfg.Root = root
	require.NoError(t, cfg.Validate())
	return cfg
}

func newBot(t *testing.T, cfg *config.Config) (*bot.Bot, *mocks.MockTransport) {
	t.Helper()
	tp := &mocks.MockTransport{}
	b, err := bot.New(cfg, tp)
	require.NoError(t, err)
	return b, tp
}

func TestBot_HandleStart(t *testing.T) {
	cfg := testConfig(t)
	b, tp := newBot(t, cfg)

	tp.On("SendText", mock.Anything, int64(1), mock.AnythingOfType("string")).Return(nil)
	tp.On("SendTextWithKeyboard", mock.Anything, int64(1), "📁 Navigation: Browse folders below", mock.AnythingOfType("nav.KeyboardView")).Return(nil)

	b.HandleStart(context.Background(), 1)

	tp.AssertExpectations(t)
	kb := tp.Calls[len(tp.Calls)-1].Arguments.Get(3).(nav.KeyboardView)
	assert.Equal(t, 1, kb.TotalPages)
	require.Len(t, kb.Rows, 2, "docs/ and readme.md, no back button, no pagination row")
}

func TestBot_HandleStart_Denied(t *testing.T) {
	cfg := testConfig(t)
	cfg.SecurityMode = config.ModeRestricted
	cfg.AdminIDs = []int64{42}
	b, tp := newBot(t, cfg)

	tp.On("SendText", mock.Anything, int64(7), "❌ Access Denied\nYour ID: 7").Return(nil)

	b.HandleStart(context.Background(), 7)

	tp.AssertExpectations(t)
	tp.AssertNotCalled(t, "SendTextWithKeyboard", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBot_HandleCallback_Denied(t *testing.T) {
	cfg := testConfig(t)
	cfg.SecurityMode = config.ModeRestricted
	cfg.AdminIDs = []int64{42}
	b, tp := newBot(t, cfg)

	tp.On("ShowAlert", mock.Anything, int64(7), "❌ Access Denied\nYour ID: 7").Return(nil)

	b.HandleCallback(context.Background(), 7, nav.PagePayload(cfg.Root, 0))

	tp.AssertExpectations(t)
}

func TestBot_HandleCallback_NotFound(t *testing.T) {
	cfg := testConfig(t)
	b, tp := newBot(t, cfg)

	tp.On("ShowAlert", mock.Anything, int64(1), "Not found").Return(nil)

	b.HandleCallback(context.Background(), 1, nav.DirPayload("deadbeef"))

	tp.AssertExpectations(t)
}

func TestBot_HandleCallback_PageFlip(t *testing.T) {
	cfg := testConfig(t)
	b, tp := newBot(t, cfg)

	tp.On("EditKeyboard", mock.Anything, int64(1), mock.AnythingOfType("nav.KeyboardView")).Return(nil)

	b.HandleCallback(context.Background(), 1, nav.PagePayload(cfg.Root, 0))

	tp.AssertExpectations(t)
}

func TestBot_HandleCallback_DirListing(t *testing.T) {
	cfg := testConfig(t)
	b, tp := newBot(t, cfg)
	token := issueToken(b, 1, filepath.Join(cfg.Root, "docs"))

	tp.On("EditText", mock.Anything, int64(1), "📂 docs", mock.AnythingOfType("nav.KeyboardView")).Return(nil)

	b.HandleCallback(context.Background(), 1, nav.DirPayload(token))

	tp.AssertExpectations(t)
}

func TestBot_HandleCallback_TransferSuccess(t *testing.T) {
	cfg := testConfig(t)
	b, tp := newBot(t, cfg)
	target := filepath.Join(cfg.Root, "readme.md")
	token := issueToken(b, 1, target)

	done := make(chan struct{})
	tp.On("SendText", mock.Anything, int64(1), "Uploading...").Return(nil)
	tp.On("SendFile", mock.Anything, int64(1), target).Return(nil)
	tp.On("SendText", mock.Anything, int64(1), "Upload complete ✅").Return(nil).Run(func(mock.Arguments) { close(done) })

	b.HandleCallback(context.Background(), 1, nav.FilePayload(token))

	waitFor(t, done)
	tp.AssertExpectations(t)
}

func TestBot_HandleCallback_TransferFailureRelayed(t *testing.T) {
	cfg := testConfig(t)
	b, tp := newBot(t, cfg)
	target := filepath.Join(cfg.Root, "readme.md")
	token := issueToken(b, 1, target)

	done := make(chan struct{})
	tp.On("SendText", mock.Anything, int64(1), "Uploading...").Return(nil)
	tp.On("SendFile", mock.Anything, int64(1), target).Return(errors.New("connection reset"))
	tp.On("SendText", mock.Anything, int64(1), "Upload failed ❌\nconnection reset").Return(nil).Run(func(mock.Arguments) { close(done) })

	b.HandleCallback(context.Background(), 1, nav.FilePayload(token))

	waitFor(t, done)
	tp.AssertExpectations(t)
}

func TestBot_HandleCallback_TooLarge(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxFileSize = 1 * config.MB
	b, tp := newBot(t, cfg)
	big := filepath.Join(cfg.Root, "big.bin")
	require.NoError(t, os.WriteFile(big, make([]byte, 2*config.MB), 0o644))
	token := issueToken(b, 1, big)

	tp.On("ShowAlert", mock.Anything, int64(1), "File exceeds 1MB limit").Return(nil)

	b.HandleCallback(context.Background(), 1, nav.FilePayload(token))

	tp.AssertExpectations(t)
	tp.AssertNotCalled(t, "SendFile", mock.Anything, mock.Anything, mock.Anything)
}

func issueToken(b *bot.Bot, userID int64, path string) string {
	var token string
	b.Router().Sessions().Get(userID).Locked(func(tbl *nav.HandleTable) {
		token = tbl.Issue(path)
	})
	return token
}

func waitFor(t *testing.T, done chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for transfer completion")
	}
}
