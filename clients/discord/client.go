package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/mo"

	"firstmessage/clients"
	"firstmessage/core"
	"firstmessage/core/log"
)

var discordAPIBase = strings.TrimSuffix(discordgo.EndpointAPI, "/")

// DiscordSearchClient implements the clients.DiscordSearchClient interface
// on top of a discordgo session, which supplies auth headers and rate limiting
type DiscordSearchClient struct {
	session *discordgo.Session
	// timeout bounds a single search round trip; zero disables it
	timeout time.Duration
}

// NewDiscordSearchClient creates a new Discord message search client
func NewDiscordSearchClient(session *discordgo.Session, timeout time.Duration) clients.DiscordSearchClient {
	return &DiscordSearchClient{
		session: session,
		timeout: timeout,
	}
}

// searchResponse mirrors the search endpoint payload. Each entry in Messages
// is a group whose first element is the hit, followed by context messages.
type searchResponse struct {
	TotalResults int                      `json:"total_results"`
	Messages     *[][]*discordgo.Message `json:"messages"`
}

// SearchGuildMessages returns the oldest guild message matching params
func (c *DiscordSearchClient) SearchGuildMessages(
	ctx context.Context,
	params clients.DiscordGuildSearchParams,
) (mo.Option[*clients.DiscordSearchMessage], error) {
	if params.GuildID == "" {
		return mo.None[*clients.DiscordSearchMessage](), fmt.Errorf("guild ID cannot be empty")
	}

	query := searchQueryValues(params.AuthorID, params.FromBeginning)
	if channelID, ok := params.ChannelID.Get(); ok {
		query.Set("channel_id", channelID)
	}

	endpoint := discordAPIBase + "/guilds/" + params.GuildID + "/messages/search"
	return c.search(ctx, endpoint, query)
}

// SearchDMMessages returns the oldest message in a DM channel matching params
func (c *DiscordSearchClient) SearchDMMessages(
	ctx context.Context,
	params clients.DiscordDMSearchParams,
) (mo.Option[*clients.DiscordSearchMessage], error) {
	if params.ChannelID == "" {
		return mo.None[*clients.DiscordSearchMessage](), fmt.Errorf("channel ID cannot be empty")
	}

	query := searchQueryValues(params.AuthorID, params.FromBeginning)
	endpoint := discordAPIBase + "/channels/" + params.ChannelID + "/messages/search"
	return c.search(ctx, endpoint, query)
}

// searchQueryValues builds the ordering shared by both search flavours:
// ascending by timestamp from offset 0. min_id=0 is only sent when no author
// filter narrows the result set.
func searchQueryValues(authorID mo.Option[string], fromBeginning bool) url.Values {
	query := url.Values{}
	query.Set("sort_by", "timestamp")
	query.Set("sort_order", "asc")
	query.Set("offset", "0")
	if author, ok := authorID.Get(); ok {
		query.Set("author_id", author)
	}
	if fromBeginning {
		query.Set("min_id", "0")
	}
	return query
}

func (c *DiscordSearchClient) search(
	ctx context.Context,
	endpoint string,
	query url.Values,
) (mo.Option[*clients.DiscordSearchMessage], error) {
	none := mo.None[*clients.DiscordSearchMessage]()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	log.Debug("🔍 Searching Discord messages", "endpoint", endpoint, "query", query.Encode())
	body, err := c.session.RequestWithBucketID(
		http.MethodGet,
		endpoint+"?"+query.Encode(),
		nil,
		endpoint,
		discordgo.WithContext(ctx),
	)
	if err != nil {
		var restErr *discordgo.RESTError
		if errors.As(err, &restErr) && restErr.Response != nil &&
			restErr.Response.StatusCode == http.StatusAccepted {
			return none, fmt.Errorf("failed to search messages: %w", core.ErrSearchIndexNotReady)
		}
		return none, fmt.Errorf("failed to search messages: %w", err)
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return none, fmt.Errorf("failed to decode search response: %w: %v", core.ErrMalformedSearchResponse, err)
	}
	if resp.Messages == nil {
		return none, fmt.Errorf("search response has no messages field: %w", core.ErrMalformedSearchResponse)
	}

	groups := *resp.Messages
	if len(groups) == 0 || len(groups[0]) == 0 || groups[0][0] == nil {
		log.Debug("🔍 Search returned no matches", "endpoint", endpoint, "total_results", resp.TotalResults)
		return none, nil
	}

	hit := groups[0][0]
	result := &clients.DiscordSearchMessage{
		ID:        hit.ID,
		ChannelID: hit.ChannelID,
		GuildID:   hit.GuildID,
		Timestamp: hit.Timestamp,
	}
	if hit.Author != nil {
		result.AuthorID = hit.Author.ID
	}

	return mo.Some(result), nil
}
