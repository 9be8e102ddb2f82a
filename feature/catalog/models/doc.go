// Package models defines the persisted schema of the EPREL mirror and the
// static category registry.
//
// Products are keyed by their EPREL product id; suppliers by their EPREL
// supplier id. Sync jobs and sync progress rows make runs observable and
// resumable. Five categories carry a side table with category-specific
// attributes; the mapping from side-table column to API field is a fixed
// allow list declared here, never derived from payload shape.
package models
