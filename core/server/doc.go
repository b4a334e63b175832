// Package server holds the HTTP service configuration.
//
// The serve command handles the actual server startup; this package only
// defines the configuration structure embedded by core/config.
package server
