// Package verify measures drift between the local mirror and the upstream
// API by comparing per-category product counts. It answers "is the mirror
// stale" cheaply, without walking any product pages.
package verify
