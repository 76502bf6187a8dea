package firstmessage

import (
	"context"

	"github.com/samber/mo"

	"firstmessage/clients"
	"firstmessage/core/log"
	"firstmessage/models"
)

type FirstMessageService struct {
	searchClient clients.DiscordSearchClient
	linkBase     string
}

func NewFirstMessageService(searchClient clients.DiscordSearchClient, linkBase string) *FirstMessageService {
	if linkBase == "" {
		linkBase = DefaultDeepLinkBase
	}
	return &FirstMessageService{
		searchClient: searchClient,
		linkBase:     linkBase,
	}
}

// BuildSearchQuery derives the search parameters for an invocation.
// It returns false when a channel target was given inside a DM, which has no
// other channels to target.
func BuildSearchQuery(args models.FirstMessageArgs, invocation models.InvocationContext) (models.SearchQuery, bool) {
	if args.TargetChannel.IsPresent() && invocation.IsDirectMessage {
		return models.SearchQuery{}, false
	}

	query := models.SearchQuery{
		AuthorFilter:  args.TargetUser,
		FromBeginning: args.TargetUser.IsAbsent(),
	}

	if invocation.IsDirectMessage {
		query.Scope = models.SearchScopeDM
		query.ScopeID = invocation.ChannelID
		query.ChannelFilter = mo.None[string]()
		return query, true
	}

	query.Scope = models.SearchScopeGuild
	query.ScopeID = invocation.GuildID.OrEmpty()
	query.ChannelFilter = mo.Some(args.TargetChannel.OrElse(invocation.ChannelID))
	return query, true
}

// Resolve finds the first message for an invocation and decides how it is
// presented. Search failures are logged and reported as not found.
func (s *FirstMessageService) Resolve(
	ctx context.Context,
	args models.FirstMessageArgs,
	invocation models.InvocationContext,
) models.FirstMessageOutcome {
	log.Info("📋 Starting to resolve first message",
		"channel_id", invocation.ChannelID,
		"guild_id", invocation.GuildID.OrEmpty(),
		"dm", invocation.IsDirectMessage)

	query, ok := BuildSearchQuery(args, invocation)
	if !ok {
		log.Info("⚠️ Channel target given in a DM, rejecting", "channel_id", invocation.ChannelID)
		return models.InvalidCombinationOutcome()
	}

	maybeMessage, err := s.search(ctx, query)
	if err != nil {
		log.Error("❌ Failed to search for first message",
			"scope", query.Scope,
			"scope_id", query.ScopeID,
			"error", err)
		return models.NotFoundOutcome(true)
	}

	message, found := maybeMessage.Get()
	if !found || message.ID == "" {
		log.Info("🔍 No first message found", "scope", query.Scope, "scope_id", query.ScopeID)
		return models.NotFoundOutcome(false)
	}

	link := BuildMessageLink(s.linkBase, query, message.ID)
	log.Info("✅ Resolved first message", "message_id", message.ID, "link", link)

	if args.Send {
		return models.LinkTextOutcome(link)
	}
	return models.DeepLinkActionOutcome(link)
}

func (s *FirstMessageService) search(
	ctx context.Context,
	query models.SearchQuery,
) (mo.Option[models.ResolvedMessage], error) {
	var (
		hit mo.Option[*clients.DiscordSearchMessage]
		err error
	)

	switch query.Scope {
	case models.SearchScopeDM:
		hit, err = s.searchClient.SearchDMMessages(ctx, clients.DiscordDMSearchParams{
			ChannelID:     query.ScopeID,
			AuthorID:      query.AuthorFilter,
			FromBeginning: query.FromBeginning,
		})
	default:
		hit, err = s.searchClient.SearchGuildMessages(ctx, clients.DiscordGuildSearchParams{
			GuildID:       query.ScopeID,
			ChannelID:     query.ChannelFilter,
			AuthorID:      query.AuthorFilter,
			FromBeginning: query.FromBeginning,
		})
	}
	if err != nil {
		return mo.None[models.ResolvedMessage](), err
	}

	msg, ok := hit.Get()
	if !ok || msg == nil {
		return mo.None[models.ResolvedMessage](), nil
	}
	return mo.Some(models.ResolvedMessage{
		ID:        msg.ID,
		ChannelID: msg.ChannelID,
		AuthorID:  msg.AuthorID,
		Timestamp: msg.Timestamp,
	}), nil
}
