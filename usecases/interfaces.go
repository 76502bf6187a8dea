package usecases

import (
	"context"

	"firstmessage/models"
)

// DiscordCommandsUseCaseInterface defines the interface for Discord command use case operations
type DiscordCommandsUseCaseInterface interface {
	ProcessFirstMessageCommand(
		ctx context.Context,
		invocationID string,
		args models.FirstMessageArgs,
		invocation models.InvocationContext,
	) models.CommandResponse
}
