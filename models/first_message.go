package models

import (
	"time"

	"github.com/samber/mo"
)

// FirstMessageArgs holds the parsed options of one /firstmessage invocation.
// Every combination is legal input.
type FirstMessageArgs struct {
	TargetUser    mo.Option[string]
	TargetChannel mo.Option[string]
	Send          bool
}

// InvocationContext is the ambient context a command was invoked in
type InvocationContext struct {
	ChannelID       string
	GuildID         mo.Option[string]
	IsDirectMessage bool
}

type SearchScope string

const (
	SearchScopeGuild SearchScope = "guild"
	SearchScopeDM    SearchScope = "dm"
)

// SearchQuery is the derived set of parameters sent to the search backend.
// FromBeginning is true only when no author filter is set.
type SearchQuery struct {
	Scope         SearchScope
	ScopeID       string
	ChannelFilter mo.Option[string]
	AuthorFilter  mo.Option[string]
	FromBeginning bool
}

// ResolvedMessage is the first hit returned by a search
type ResolvedMessage struct {
	ID        string
	ChannelID string
	AuthorID  string
	Timestamp time.Time
}

type FirstMessageOutcomeKind string

const (
	OutcomeLinkText           FirstMessageOutcomeKind = "link_text"
	OutcomeDeepLinkAction     FirstMessageOutcomeKind = "deep_link_action"
	OutcomeNotFound           FirstMessageOutcomeKind = "not_found"
	OutcomeInvalidCombination FirstMessageOutcomeKind = "invalid_combination"
)

// FirstMessageOutcome is the terminal result of one invocation.
// URL is set only for OutcomeLinkText and OutcomeDeepLinkAction.
// SearchFailed is set only for OutcomeNotFound caused by a transport error.
type FirstMessageOutcome struct {
	Kind         FirstMessageOutcomeKind
	URL          string
	SearchFailed bool
}

func LinkTextOutcome(url string) FirstMessageOutcome {
	return FirstMessageOutcome{Kind: OutcomeLinkText, URL: url}
}

func DeepLinkActionOutcome(url string) FirstMessageOutcome {
	return FirstMessageOutcome{Kind: OutcomeDeepLinkAction, URL: url}
}

func NotFoundOutcome(searchFailed bool) FirstMessageOutcome {
	return FirstMessageOutcome{Kind: OutcomeNotFound, SearchFailed: searchFailed}
}

func InvalidCombinationOutcome() FirstMessageOutcome {
	return FirstMessageOutcome{Kind: OutcomeInvalidCombination}
}

// HasLink returns true if the outcome carries a message URL
func (o FirstMessageOutcome) HasLink() bool {
	return o.Kind == OutcomeLinkText || o.Kind == OutcomeDeepLinkAction
}
