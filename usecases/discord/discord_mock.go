package discord

import (
	"context"

	"github.com/stretchr/testify/mock"

	"firstmessage/models"
)

// MockDiscordCommandsUseCase is a mock implementation of the DiscordCommandsUseCase
type MockDiscordCommandsUseCase struct {
	mock.Mock
}

func (m *MockDiscordCommandsUseCase) ProcessFirstMessageCommand(
	ctx context.Context,
	invocationID string,
	args models.FirstMessageArgs,
	invocation models.InvocationContext,
) models.CommandResponse {
	called := m.Called(ctx, invocationID, args, invocation)
	return called.Get(0).(models.CommandResponse)
}
