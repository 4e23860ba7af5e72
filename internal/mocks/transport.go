package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sharenav/internal/bot"
	"sharenav/internal/nav"
)

// MockTransport implements bot.Transport for testing across packages
type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) SendText(ctx context.Context, userID int64, text string) error {
	args := m.Called(ctx, userID, text)
	return args.Error(0)
}

func (m *MockTransport) SendTextWithKeyboard(ctx context.Context, userID int64, text string, kb nav.KeyboardView) error {
	args := m.Called(ctx, userID, text, kb)
	return args.Error(0)
}

func (m *MockTransport) EditText(ctx context.Context, userID int64, text string, kb nav.KeyboardView) error {
	args := m.Called(ctx, userID, text, kb)
	return args.Error(0)
}

func (m *MockTransport) EditKeyboard(ctx context.Context, userID int64, kb nav.KeyboardView) error {
	args := m.Called(ctx, userID, kb)
	return args.Error(0)
}

func (m *MockTransport) SendFile(ctx context.Context, userID int64, path string) error {
	args := m.Called(ctx, userID, path)
	return args.Error(0)
}

func (m *MockTransport) ShowAlert(ctx context.Context, userID int64, text string) error {
	args := m.Called(ctx, userID, text)
	return args.Error(0)
}

var _ bot.Transport = (*MockTransport)(nil)
