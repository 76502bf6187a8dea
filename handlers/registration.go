package handlers

import (
	"fmt"
	"sync"

	"firstmessage/core/log"
)

// CommandRegistration is the handle returned when a command is registered.
// Its owner calls Unregister when the bot shuts down.
type CommandRegistration struct {
	session       discordSession
	appID         string
	guildID       string
	commandID     string
	removeHandler func()
	once          sync.Once
}

func (r *CommandRegistration) CommandID() string {
	return r.commandID
}

// Unregister stops routing interactions to the handler and, when
// deleteCommand is true, deletes the command from Discord. Only the first
// call has any effect.
func (r *CommandRegistration) Unregister(deleteCommand bool) error {
	var err error
	r.once.Do(func() {
		if r.removeHandler != nil {
			r.removeHandler()
		}
		if !deleteCommand {
			log.Info("📋 Keeping command registered with Discord", "command_id", r.commandID)
			return
		}
		if delErr := r.session.ApplicationCommandDelete(r.appID, r.guildID, r.commandID); delErr != nil {
			err = fmt.Errorf("failed to delete command %s: %w", r.commandID, delErr)
			return
		}
		log.Info("✅ Unregistered command", "command_id", r.commandID)
	})
	return err
}
