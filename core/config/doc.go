// Package config provides configuration management for prsk-lab.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file. Every leaf field declares its default through
// a `default` struct tag, which also registers the key for AutomaticEnv.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, base URL, environment)
//   - Database: MySQL/SQLite connection details
//   - Storage: S3/MinIO credentials and bucket for furniture images
//   - Log: Logging level and format
//   - Session: JWT secret, cookie name and lifetime
//   - OAuth: login provider credentials and admin e-mails
//   - Cache: master data cache TTL
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
