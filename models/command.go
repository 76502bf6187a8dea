package models

import "github.com/samber/mo"

// CommandResponse is what gets rendered back to the invoking user.
// Ephemeral responses are only visible to the invoker.
type CommandResponse struct {
	Content    string
	Ephemeral  bool
	LinkButton mo.Option[string]
}
