package provision

import (
	"fmt"

	"schema-provisioner/core/remote"
)

// SentinelAdmin tags systemic failures (authentication, remote state fetch)
// in the Errors list. Registry validation rejects real collection names
// starting with an underscore, so the sentinel can never collide.
const SentinelAdmin = "_admin"

// Credentials are the admin credentials used for a single run.
type Credentials struct {
	Email    string
	Password string
}

// Options controls a provisioning run.
type Options struct {
	// UpdateExisting updates collections whose name already exists on the
	// server instead of skipping them. Name presence alone decides the
	// skip; field-level drift is not inspected.
	UpdateExisting bool

	// Auth optionally applies OAuth settings to the store's built-in
	// user-auth collection. Failures are recorded but never abort the run.
	Auth *remote.AuthSettings

	// Progress optionally receives human-readable status events at
	// well-defined points. Purely observational.
	Progress Sink
}

// EventKind classifies a progress event.
type EventKind string

const (
	EventCreated EventKind = "created"
	EventSkipped EventKind = "skipped"
	EventFailed  EventKind = "failed"
	EventInfo    EventKind = "info"
)

// Event is a single progress notification.
type Event struct {
	// Kind classifies the event.
	Kind EventKind
	// Text is the human-readable status line.
	Text string
}

// Sink receives progress events. It must not block for long; it never
// affects control flow.
type Sink func(Event)

// ItemError records one failed outcome, either per-collection or systemic
// (tagged with SentinelAdmin).
type ItemError struct {
	// Collection is the collection name, or SentinelAdmin for systemic
	// failures.
	Collection string `json:"collection"`
	// Message describes the failure.
	Message string `json:"message"`
}

// Result is the structured outcome of one provisioning run. Every registry
// name lands in exactly one of Created, Skipped or Errors, unless the run
// aborted before per-collection processing began.
type Result struct {
	// Success is true iff Errors is empty.
	Success bool `json:"success"`
	// Created lists collections created this run, in registry order.
	// Updated collections appear with an " (updated)" suffix.
	Created []string `json:"created"`
	// Skipped lists collections whose name already existed, in registry
	// order.
	Skipped []string `json:"skipped"`
	// Errors lists per-collection and systemic failures, in occurrence
	// order.
	Errors []ItemError `json:"errors"`
	// Summary is a human-readable digest of the counts.
	Summary string `json:"summary"`
}

// newResult returns an empty result with non-nil slices so callers and
// JSON consumers never see null.
func newResult() *Result {
	return &Result{
		Created: []string{},
		Skipped: []string{},
		Errors:  []ItemError{},
	}
}

// finish computes the success flag and summary message.
func (r *Result) finish() *Result {
	r.Success = len(r.Errors) == 0
	r.Summary = fmt.Sprintf("%d created, %d skipped, %d failed",
		len(r.Created), len(r.Skipped), len(r.Errors))
	return r
}

// terminal builds the early-exit result for a systemic failure: no
// per-collection outcomes, a single sentinel-tagged error.
func terminal(err error) *Result {
	r := newResult()
	r.Errors = append(r.Errors, ItemError{Collection: SentinelAdmin, Message: err.Error()})
	return r.finish()
}
