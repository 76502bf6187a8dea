package clients

import (
	"context"

	"github.com/samber/mo"
)

// DiscordSearchClient finds the oldest message matching a query.
// Both operations return mo.None when the query matched nothing and an error
// only for transport failures or responses that could not be interpreted.
type DiscordSearchClient interface {
	SearchGuildMessages(ctx context.Context, params DiscordGuildSearchParams) (mo.Option[*DiscordSearchMessage], error)
	SearchDMMessages(ctx context.Context, params DiscordDMSearchParams) (mo.Option[*DiscordSearchMessage], error)
}
