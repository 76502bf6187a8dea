package clients

import (
	"time"

	"github.com/samber/mo"
)

// DiscordGuildSearchParams holds parameters for searching a guild's messages
type DiscordGuildSearchParams struct {
	GuildID       string
	ChannelID     mo.Option[string]
	AuthorID      mo.Option[string]
	FromBeginning bool
}

// DiscordDMSearchParams holds parameters for searching a DM channel.
// DMs have no sub-channels, so there is no channel filter.
type DiscordDMSearchParams struct {
	ChannelID     string
	AuthorID      mo.Option[string]
	FromBeginning bool
}

// DiscordSearchMessage represents the first hit of a message search
type DiscordSearchMessage struct {
	ID        string
	ChannelID string
	GuildID   string
	AuthorID  string
	Timestamp time.Time
}
