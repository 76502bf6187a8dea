package handlers

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/gammazero/workerpool"
	"github.com/samber/mo"

	"firstmessage/core"
	"firstmessage/core/log"
	"firstmessage/middleware"
	"firstmessage/models"
	"firstmessage/usecases"
	discordusecase "firstmessage/usecases/discord"
)

const (
	FirstMessageCommandName = "firstmessage"

	userOptionName    = "user"
	channelOptionName = "channel"
	sendOptionName    = "send"
)

// discordSession is the subset of *discordgo.Session used by DiscordCommandsHandler
type discordSession interface {
	Open() error
	Close() error
	AddHandler(handler interface{}) func()
	ApplicationCommandCreate(
		appID string,
		guildID string,
		cmd *discordgo.ApplicationCommand,
		options ...discordgo.RequestOption,
	) (*discordgo.ApplicationCommand, error)
	ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error
	InteractionRespond(
		interaction *discordgo.Interaction,
		resp *discordgo.InteractionResponse,
		options ...discordgo.RequestOption,
	) error
	InteractionResponseEdit(
		interaction *discordgo.Interaction,
		newresp *discordgo.WebhookEdit,
		options ...discordgo.RequestOption,
	) (*discordgo.Message, error)
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

// FirstMessageCommand describes the /firstmessage application command
func FirstMessageCommand() *discordgo.ApplicationCommand {
	dmPermission := true
	return &discordgo.ApplicationCommand{
		Name:         FirstMessageCommandName,
		Description:  "Jump to the first message in this channel or DM",
		DMPermission: &dmPermission,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        userOptionName,
				Description: "Find the first message sent by this user",
			},
			{
				Type:        discordgo.ApplicationCommandOptionChannel,
				Name:        channelOptionName,
				Description: "Search this channel instead of the current one (not available in DMs)",
				ChannelTypes: []discordgo.ChannelType{
					discordgo.ChannelTypeGuildText,
					discordgo.ChannelTypeGuildNews,
					discordgo.ChannelTypeGuildVoice,
					discordgo.ChannelTypeGuildPublicThread,
					discordgo.ChannelTypeGuildPrivateThread,
					discordgo.ChannelTypeGuildNewsThread,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        sendOptionName,
				Description: "Post the link in the channel instead of only showing it to you",
			},
		},
	}
}

type DiscordCommandsHandler struct {
	session         discordSession
	appID           string
	guildID         string
	useCase         usecases.DiscordCommandsUseCaseInterface
	alertMiddleware *middleware.ErrorAlertMiddleware
	pool            *workerpool.WorkerPool
	registration    *CommandRegistration
}

func NewDiscordCommandsHandler(
	session discordSession,
	appID string,
	guildID string,
	useCase usecases.DiscordCommandsUseCaseInterface,
	alertMiddleware *middleware.ErrorAlertMiddleware,
	maxConcurrentCommands int,
) *DiscordCommandsHandler {
	return &DiscordCommandsHandler{
		session:         session,
		appID:           appID,
		guildID:         guildID,
		useCase:         useCase,
		alertMiddleware: alertMiddleware,
		pool:            workerpool.New(maxConcurrentCommands),
	}
}

// StartBot registers the command and opens the gateway connection
func (h *DiscordCommandsHandler) StartBot() error {
	registration, err := h.RegisterFirstMessageCommand()
	if err != nil {
		return err
	}
	h.registration = registration

	if err := h.session.Open(); err != nil {
		if unregErr := registration.Unregister(true); unregErr != nil {
			log.Error("❌ Failed to unregister command after open failure", "error", unregErr)
		}
		h.registration = nil
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	log.Info("🤖 Discord bot is now running and listening for interactions")
	return nil
}

// StopBot stops accepting interactions, waits for in-flight ones and closes the connection.
// The command stays registered with Discord when keepCommand is true.
func (h *DiscordCommandsHandler) StopBot(keepCommand bool) error {
	var unregErr error
	if h.registration != nil {
		unregErr = h.registration.Unregister(!keepCommand)
		h.registration = nil
	}

	h.pool.StopWait()
	h.alertMiddleware.Wait()

	if err := h.session.Close(); err != nil {
		return fmt.Errorf("failed to close Discord session: %w", err)
	}
	return unregErr
}

// RegisterFirstMessageCommand creates the command with Discord and starts
// routing its interactions to this handler
func (h *DiscordCommandsHandler) RegisterFirstMessageCommand() (*CommandRegistration, error) {
	created, err := h.session.ApplicationCommandCreate(h.appID, h.guildID, FirstMessageCommand())
	if err != nil {
		return nil, fmt.Errorf("failed to create /%s command: %w", FirstMessageCommandName, err)
	}

	removeHandler := h.session.AddHandler(h.handleInteractionCreate)
	log.Info("✅ Registered command", "command", FirstMessageCommandName, "command_id", created.ID)

	return &CommandRegistration{
		session:       h.session,
		appID:         h.appID,
		guildID:       h.guildID,
		commandID:     created.ID,
		removeHandler: removeHandler,
	}, nil
}

func (h *DiscordCommandsHandler) handleInteractionCreate(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	if data.Name != FirstMessageCommandName {
		return
	}

	invocationID := core.NewID("inv")
	log.Info("📨 Received /firstmessage interaction",
		"invocation_id", invocationID,
		"guild_id", i.GuildID,
		"channel_id", i.ChannelID)

	interaction := i.Interaction
	run := h.alertMiddleware.WrapCommandHandler(FirstMessageCommandName, func(ctx context.Context) error {
		return h.processFirstMessageInteraction(ctx, invocationID, interaction)
	})
	h.pool.Submit(func() {
		run(context.Background())
	})
}

func (h *DiscordCommandsHandler) processFirstMessageInteraction(
	ctx context.Context,
	invocationID string,
	interaction *discordgo.Interaction,
) error {
	args := mapFirstMessageArgs(interaction.ApplicationCommandData().Options)
	invocation := h.mapInvocationContext(ctx, interaction)

	var flags discordgo.MessageFlags
	if discordusecase.IsEphemeral(args) {
		flags = discordgo.MessageFlagsEphemeral
	}

	// Searching can outlast the 3s acknowledgement window, so defer first
	err := h.session.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: flags},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to acknowledge interaction %s: %w", invocationID, err)
	}

	response := h.useCase.ProcessFirstMessageCommand(ctx, invocationID, args, invocation)

	edit := &discordgo.WebhookEdit{Content: &response.Content}
	if link, ok := response.LinkButton.Get(); ok {
		components := []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label: discordusecase.JumpButtonLabel,
						Style: discordgo.LinkButton,
						URL:   link,
					},
				},
			},
		}
		edit.Components = &components
	}

	if _, err := h.session.InteractionResponseEdit(interaction, edit, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send response for interaction %s: %w", invocationID, err)
	}
	return nil
}

// mapFirstMessageArgs converts command options to FirstMessageArgs.
// User and channel options arrive as snowflake strings.
func mapFirstMessageArgs(options []*discordgo.ApplicationCommandInteractionDataOption) models.FirstMessageArgs {
	args := models.FirstMessageArgs{
		TargetUser:    mo.None[string](),
		TargetChannel: mo.None[string](),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		switch opt.Name {
		case userOptionName:
			if id, ok := opt.Value.(string); ok && id != "" {
				args.TargetUser = mo.Some(id)
			}
		case channelOptionName:
			if id, ok := opt.Value.(string); ok && id != "" {
				args.TargetChannel = mo.Some(id)
			}
		case sendOptionName:
			if send, ok := opt.Value.(bool); ok {
				args.Send = send
			}
		}
	}

	return args
}

// mapInvocationContext derives the ambient context of an interaction.
// DM detection uses the channel type; when the channel can't be looked up a
// missing guild ID is taken to mean a DM.
func (h *DiscordCommandsHandler) mapInvocationContext(
	ctx context.Context,
	interaction *discordgo.Interaction,
) models.InvocationContext {
	invocation := models.InvocationContext{
		ChannelID:       interaction.ChannelID,
		GuildID:         mo.None[string](),
		IsDirectMessage: interaction.GuildID == "",
	}
	if interaction.GuildID != "" {
		invocation.GuildID = mo.Some(interaction.GuildID)
	}

	channel, err := h.lookupChannel(ctx, interaction.ChannelID)
	if err != nil {
		log.Warn("⚠️ Failed to look up channel type, inferring from guild ID",
			"channel_id", interaction.ChannelID,
			"error", err)
		return invocation
	}

	invocation.IsDirectMessage = isDirectMessageChannel(channel.Type)
	return invocation
}

func (h *DiscordCommandsHandler) lookupChannel(ctx context.Context, channelID string) (*discordgo.Channel, error) {
	if session, ok := h.session.(*discordgo.Session); ok && session.State != nil {
		if channel, err := session.State.Channel(channelID); err == nil {
			return channel, nil
		}
	}
	return h.session.Channel(channelID, discordgo.WithContext(ctx))
}

// isDirectMessageChannel checks if the given channel type is a DM
func isDirectMessageChannel(channelType discordgo.ChannelType) bool {
	return channelType == discordgo.ChannelTypeDM ||
		channelType == discordgo.ChannelTypeGroupDM
}
