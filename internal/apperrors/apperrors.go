// Package apperrors defines the stable error kinds surfaced to API clients.
// Every failing operation reports exactly one kind in the response envelope so
// the presentation layer can key user-visible messages off it.
package apperrors

// Kind is a stable error tag carried in the `code` field of error responses.
type Kind string

const (
	AuthenticationRequired Kind = "AUTHENTICATION_REQUIRED"
	AuthorizationDenied    Kind = "AUTHORIZATION_DENIED"
	DuplicateUsername      Kind = "DUPLICATE_USERNAME"
	InvalidCredentials     Kind = "INVALID_CREDENTIALS"
	ValidationFailed       Kind = "VALIDATION_FAILED"
	SlotConflict           Kind = "SLOT_CONFLICT"
	NotFound               Kind = "NOT_FOUND"
	InvalidStateTransition Kind = "INVALID_STATE_TRANSITION"
	OwnershipMismatch      Kind = "OWNERSHIP_MISMATCH"
	StoreUnavailable       Kind = "STORE_UNAVAILABLE"
)
