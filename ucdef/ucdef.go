// Package ucdef defines use case definitions that is used across the application.
package ucdef

import "context"

// Use case types.
const (
	TypeUserAction      = "user_action"
	TypeEventSubscriber = "event_subscriber"
)

// UserAction represents a synchronous business operation triggered by user interaction.
// It handles user-initiated requests through HTTP and returns an immediate response.
// These operations are typically exposed via API endpoints and require request
// validation, authorization, and synchronous error handling.
//
// Type parameters:
//   - I: Input data type (request payload)
//   - O: Output data type (response, result of the operation)
//
// Characteristics:
//   - Synchronous execution with immediate response
//   - User is waiting for the result
//   - Requires comprehensive input validation
//   - Errors are returned directly to the user as HTTP response
type UserAction[I, O any] interface {
	// OperationID returns a unique identifier for the use case.
	OperationID() string

	// Execute executes the use case.
	Execute(ctx context.Context, in I) (O, error)
}

// EventSubscriber represents an asynchronous business operation triggered by domain events.
// It reacts to events published by other parts of the system without direct coupling to
// the event publisher.
//
// Type parameters:
//   - E: Event type (domain event structure)
//
// Characteristics:
//   - Asynchronous execution, no immediate response to publisher
//   - Must be idempotent (handle duplicate events gracefully)
//   - Errors trigger retries and alerts, not user-facing responses
type EventSubscriber[E any] interface {
	// OperationID returns a unique identifier for the use case.
	OperationID() string

	// Handle handles the event.
	Handle(ctx context.Context, e E) error
}
