// Package server holds the HTTP server configuration.
//
// The serve command handles the actual startup; this package only defines the
// configuration structure it runs with.
//
// # Configuration
//
// The Config struct defines the HTTP port and the optional API key that
// protects the read endpoints.
package server
