// Package util provides small shared helpers: human-readable size parsing
// and secret masking for safe log output.
package util
