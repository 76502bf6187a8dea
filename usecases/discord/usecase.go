package discord

import (
	"context"

	"github.com/samber/mo"

	"firstmessage/core/log"
	"firstmessage/models"
	"firstmessage/services"
	"firstmessage/utils"
)

// DiscordCommandsUseCase turns resolved outcomes into Discord command responses
type DiscordCommandsUseCase struct {
	firstMessageService services.FirstMessageService
}

// NewDiscordCommandsUseCase creates a new instance of DiscordCommandsUseCase
func NewDiscordCommandsUseCase(firstMessageService services.FirstMessageService) *DiscordCommandsUseCase {
	return &DiscordCommandsUseCase{
		firstMessageService: firstMessageService,
	}
}

// IsEphemeral reports whether the response to args is only shown to the invoker.
// It is known before resolving so the interaction can be acknowledged up front.
func IsEphemeral(args models.FirstMessageArgs) bool {
	return !args.Send
}

func (u *DiscordCommandsUseCase) ProcessFirstMessageCommand(
	ctx context.Context,
	invocationID string,
	args models.FirstMessageArgs,
	invocation models.InvocationContext,
) models.CommandResponse {
	log.Info("📋 Starting to process /firstmessage",
		"invocation_id", invocationID,
		"channel_id", invocation.ChannelID,
		"target_user", args.TargetUser.OrEmpty(),
		"target_channel", args.TargetChannel.OrEmpty(),
		"send", args.Send)

	outcome := u.firstMessageService.Resolve(ctx, args, invocation)
	response := models.CommandResponse{
		Ephemeral:  IsEphemeral(args),
		LinkButton: mo.None[string](),
	}

	switch outcome.Kind {
	case models.OutcomeLinkText:
		response.Content = outcome.URL
	case models.OutcomeDeepLinkAction:
		response.Content = foundFirstMessageText
		response.LinkButton = mo.Some(outcome.URL)
	case models.OutcomeNotFound:
		response.Content = notFoundText
		if outcome.SearchFailed {
			response.Content = searchFailedText
		}
	case models.OutcomeInvalidCombination:
		response.Content = invalidCombinationText
	default:
		utils.AssertInvariant(false, "unhandled outcome kind "+string(outcome.Kind))
	}

	log.Info("📋 Completed /firstmessage",
		"invocation_id", invocationID,
		"outcome", outcome.Kind,
		"search_failed", outcome.SearchFailed)
	return response
}
