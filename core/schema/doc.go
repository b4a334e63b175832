// Package schema holds the declarative collection registry and the payload
// builder that turns declarations into the remote store's wire format.
//
// A Registry is pure configuration: an ordered list of Collection values,
// each with typed field declarations and five access-rule slots. Field
// options are a tagged variant keyed by field kind, checked at validation
// time, so a text field can never smuggle relation attributes.
//
// BuildPayload is a pure, deterministic function from a Collection to the
// JSON-shaped payload the store's collection API accepts. All defaults for
// omitted option attributes are applied there, in one place, so the same
// declaration always produces byte-identical wire output.
//
// Registries load from a local JSON file, from an object-storage bucket, or
// fall back to the built-in starter registry.
package schema
