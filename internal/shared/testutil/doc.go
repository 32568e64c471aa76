// Package testutil provides shared test helpers: an slog handler that
// captures records for assertions, and builders for deployment file
// fixtures.
package testutil
