// Package database handles database connections and schema migration.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to
// configure PostgreSQL connections based on the application's configuration.
//
// # Connect
//
// The Connect function establishes a connection to the database, configures a
// small connection pool (the sync path is a single logical writer), and
// verifies the connection with a ping.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
