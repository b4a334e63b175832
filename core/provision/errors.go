package provision

import "fmt"

// AuthError means the admin credentials were rejected. Fatal to the run.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// FetchError means listing existing collections failed. Fatal to the run.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to list existing collections: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// SettingsError means the optional auth-settings update failed. Recorded,
// non-fatal.
type SettingsError struct {
	Err error
}

func (e *SettingsError) Error() string {
	return fmt.Sprintf("failed to update auth settings: %v", e.Err)
}

func (e *SettingsError) Unwrap() error { return e.Err }

// CreateError means creating one collection failed. Recorded, non-fatal.
type CreateError struct {
	Collection string
	Err        error
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("failed to create collection %s: %v", e.Collection, e.Err)
}

func (e *CreateError) Unwrap() error { return e.Err }

// UpdateError means updating one existing collection failed. Recorded,
// non-fatal.
type UpdateError struct {
	Collection string
	Err        error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("failed to update collection %s: %v", e.Collection, e.Err)
}

func (e *UpdateError) Unwrap() error { return e.Err }
