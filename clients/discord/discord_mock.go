package discord

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"firstmessage/clients"
)

// MockDiscordSearchClient implements the clients.DiscordSearchClient interface for testing
type MockDiscordSearchClient struct {
	mock.Mock
}

// SearchGuildMessages mocks searching a guild's messages
func (m *MockDiscordSearchClient) SearchGuildMessages(
	ctx context.Context,
	params clients.DiscordGuildSearchParams,
) (mo.Option[*clients.DiscordSearchMessage], error) {
	args := m.Called(ctx, params)
	return args.Get(0).(mo.Option[*clients.DiscordSearchMessage]), args.Error(1)
}

// SearchDMMessages mocks searching a DM channel's messages
func (m *MockDiscordSearchClient) SearchDMMessages(
	ctx context.Context,
	params clients.DiscordDMSearchParams,
) (mo.Option[*clients.DiscordSearchMessage], error) {
	args := m.Called(ctx, params)
	return args.Get(0).(mo.Option[*clients.DiscordSearchMessage]), args.Error(1)
}
