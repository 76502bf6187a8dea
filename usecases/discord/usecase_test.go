package discord

import (
	"context"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"

	"firstmessage/models"
	"firstmessage/services/firstmessage"
)

const (
	testInvocationID = "inv_01ARZ3NDEKTSV4RRFFQ69G5FAV"
	testLink         = "https://discord.com/channels/guild-1/channel-1/msg-1"
)

type discordCommandsUseCaseTestFixture struct {
	useCase             *DiscordCommandsUseCase
	firstMessageService *firstmessage.MockFirstMessageService
	ctx                 context.Context
	invocation          models.InvocationContext
}

func setupDiscordCommandsUseCaseTest(t *testing.T) *discordCommandsUseCaseTestFixture {
	service := new(firstmessage.MockFirstMessageService)
	t.Cleanup(func() { service.AssertExpectations(t) })

	return &discordCommandsUseCaseTestFixture{
		useCase:             NewDiscordCommandsUseCase(service),
		firstMessageService: service,
		ctx:                 context.Background(),
		invocation: models.InvocationContext{
			ChannelID: "channel-1",
			GuildID:   mo.Some("guild-1"),
		},
	}
}

func TestProcessFirstMessageCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     models.FirstMessageArgs
		outcome  models.FirstMessageOutcome
		expected models.CommandResponse
	}{
		{
			name:    "send posts the link as visible text",
			args:    models.FirstMessageArgs{Send: true},
			outcome: models.LinkTextOutcome(testLink),
			expected: models.CommandResponse{
				Content:    testLink,
				Ephemeral:  false,
				LinkButton: mo.None[string](),
			},
		},
		{
			name:    "deep link is an ephemeral confirmation with a jump button",
			args:    models.FirstMessageArgs{},
			outcome: models.DeepLinkActionOutcome(testLink),
			expected: models.CommandResponse{
				Content:    foundFirstMessageText,
				Ephemeral:  true,
				LinkButton: mo.Some(testLink),
			},
		},
		{
			name:    "not found",
			args:    models.FirstMessageArgs{Send: true},
			outcome: models.NotFoundOutcome(false),
			expected: models.CommandResponse{
				Content:    notFoundText,
				Ephemeral:  false,
				LinkButton: mo.None[string](),
			},
		},
		{
			name:    "search failure keeps its own notice",
			args:    models.FirstMessageArgs{},
			outcome: models.NotFoundOutcome(true),
			expected: models.CommandResponse{
				Content:    searchFailedText,
				Ephemeral:  true,
				LinkButton: mo.None[string](),
			},
		},
		{
			name:    "invalid combination",
			args:    models.FirstMessageArgs{TargetChannel: mo.Some("C999")},
			outcome: models.InvalidCombinationOutcome(),
			expected: models.CommandResponse{
				Content:    invalidCombinationText,
				Ephemeral:  true,
				LinkButton: mo.None[string](),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupDiscordCommandsUseCaseTest(t)
			f.firstMessageService.On("Resolve", f.ctx, tt.args, f.invocation).Return(tt.outcome).Once()

			response := f.useCase.ProcessFirstMessageCommand(f.ctx, testInvocationID, tt.args, f.invocation)

			assert.Equal(t, tt.expected, response)
		})
	}
}

func TestProcessFirstMessageCommand_PanicsOnUnknownOutcome(t *testing.T) {
	f := setupDiscordCommandsUseCaseTest(t)
	f.firstMessageService.On("Resolve", f.ctx, models.FirstMessageArgs{}, f.invocation).
		Return(models.FirstMessageOutcome{Kind: "bogus"}).Once()

	assert.Panics(t, func() {
		f.useCase.ProcessFirstMessageCommand(f.ctx, testInvocationID, models.FirstMessageArgs{}, f.invocation)
	})
}

func TestIsEphemeral(t *testing.T) {
	assert.True(t, IsEphemeral(models.FirstMessageArgs{}))
	assert.False(t, IsEphemeral(models.FirstMessageArgs{Send: true}))
}
