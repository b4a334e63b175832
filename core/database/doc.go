// Package database handles the optional history database connection.
//
// It provides a wrapper around GORM to properly configure MySQL connections
// based on the application's configuration. The connection backs the
// feature/history run audit log and nothing else; the provisioning core
// itself persists no state.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("History disabled", zap.Error(err))
//	}
package database
