package firstmessage

import (
	"strings"

	"firstmessage/models"
	"firstmessage/utils"
)

// DefaultDeepLinkBase is where Discord resolves /{guild}/{channel}/{message} paths
const DefaultDeepLinkBase = "https://discord.com/channels"

// BuildMessageLink renders the deep link for messageID under base.
// DM scope addresses /@me/{dmChannel}/{message}; guild scope addresses
// /{guild}/{channel}/{message} using the channel the search was filtered to.
func BuildMessageLink(base string, query models.SearchQuery, messageID string) string {
	utils.AssertInvariant(messageID != "", "message ID cannot be empty")

	var path string
	switch query.Scope {
	case models.SearchScopeDM:
		path = "/@me/" + query.ScopeID + "/" + messageID
	case models.SearchScopeGuild:
		channelID, ok := query.ChannelFilter.Get()
		utils.AssertInvariant(ok, "guild search must carry a channel filter")
		path = "/" + query.ScopeID + "/" + channelID + "/" + messageID
	default:
		utils.AssertInvariant(false, "unknown search scope "+string(query.Scope))
	}

	return strings.TrimSuffix(base, "/") + path
}
