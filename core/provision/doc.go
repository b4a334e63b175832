// Package provision implements the schema reconciliation engine: it diffs a
// declarative collection registry against the live state of a remote
// document store and applies the minimal set of create/update calls.
//
// # Run model
//
// A run walks a fixed sequence: authenticate, fetch the existing collection
// name set, optionally apply auth settings, then reconcile each registry
// entry in order. The per-collection loop is strictly sequential; each
// create/update mutates shared remote state keyed by collection name, and
// the store's behavior under concurrent schema mutation is unspecified.
//
// Authentication and listing failures abort the run immediately and are
// reported under the SentinelAdmin identifier. Everything after that point
// is partial-failure tolerant: one collection's failure is recorded and the
// remaining collections are still attempted. The engine never returns an
// error; every failure mode surfaces through the Result.
//
// Running twice with UpdateExisting false and an unchanged registry is
// idempotent: the second run skips every collection and creates nothing.
// Existence is judged by collection name only, so registry drift on an
// existing collection is invisible unless UpdateExisting is set.
//
// # Observability
//
// Callers may attach a progress Sink to receive tagged status events
// (created/skipped/failed/info). Events are observational only and never
// influence control flow.
package provision
