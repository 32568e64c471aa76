// Package operations orchestrates the batch pipeline as an ordered
// sequence of steps sharing one RunState. Steps are purely sequential:
// each consumes the observation series the previous step produced, the
// first failure aborts the run, and nothing is retried.
package operations
