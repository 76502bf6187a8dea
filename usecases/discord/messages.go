package discord

// JumpButtonLabel labels the link button attached to deep-link responses
const JumpButtonLabel = "Jump to message"

const (
	foundFirstMessageText  = "Found the first message."
	notFoundText           = "Could not find the first message."
	searchFailedText       = "An error occurred while searching for the first message."
	invalidCombinationText = "You can't specify a channel in a DM."
)
