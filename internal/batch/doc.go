// Package batch drives one fix run over a list of DOMS object identifiers.
//
// The Orchestrator fetches and classifies every record, applies the fixer
// rules, and writes back only the records that changed, gating each write on
// the object being active. Per-record failures become report lines and never
// stop the batch. Fetch and update run on a bounded worker pool; with one
// worker the run is strictly sequential.
//
// A write that fails after the object was marked in progress is not rolled
// back. The object stays in whatever state the last successful call left it.
package batch
