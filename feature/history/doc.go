// Package history persists provisioning run outcomes to the optional MySQL
// database and exposes them over HTTP.
//
// Each completed run is stored as one Run row with its outcome counts,
// duration and summary line. The provisioning core itself stays stateless;
// history is an audit convenience layered on top, and the whole feature is
// skipped when no database is configured.
package history
