// Package api exposes the read-only HTTP surface of the catalog mirror:
// a health probe against the upstream API and aggregate mirror statistics.
package api
