package assistant

import (
	"context"

	"workspace-assistant/internal/model"
)

// UseCase defines the business logic interface for the assistant domain.
type UseCase interface {
	// Process runs one conversational turn: classify, extract, dispatch,
	// return the response and the updated session state.
	//
	// Precondition: callers must not issue concurrent turns for the same
	// session. Session state round-trips through the caller, so two in-flight
	// turns would race on it outside the engine's control.
	Process(ctx context.Context, sc model.Scope, input ProcessInput) (ProcessOutput, error)
}
