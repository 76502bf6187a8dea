package services

import (
	"context"

	"firstmessage/models"
)

// FirstMessageService resolves /firstmessage invocations into a terminal outcome
type FirstMessageService interface {
	Resolve(
		ctx context.Context,
		args models.FirstMessageArgs,
		invocation models.InvocationContext,
	) models.FirstMessageOutcome
}
