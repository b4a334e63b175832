// Package config provides configuration management for the provisioner.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP service settings (port, API key)
//   - Remote: document-store endpoint and admin credentials
//   - Registry: registry source (default, file, storage)
//   - Storage: S3/MinIO credentials and bucket settings
//   - Database: MySQL connection details for the run history
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Remote.Endpoint)
package config
