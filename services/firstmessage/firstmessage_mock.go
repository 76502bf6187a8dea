package firstmessage

import (
	"context"

	"github.com/stretchr/testify/mock"

	"firstmessage/models"
)

type MockFirstMessageService struct {
	mock.Mock
}

func (m *MockFirstMessageService) Resolve(
	ctx context.Context,
	args models.FirstMessageArgs,
	invocation models.InvocationContext,
) models.FirstMessageOutcome {
	called := m.Called(ctx, args, invocation)
	return called.Get(0).(models.FirstMessageOutcome)
}
