// Package config provides configuration management for the mirror service.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Eprel: EPREL API credentials, rate limiting and retry budget
//   - Database: PostgreSQL connection details
//   - Storage: S3/MinIO credentials and bucket settings for the label archive
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Eprel.PageSize)
package config
