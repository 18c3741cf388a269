// Package main hosts the reklamefix CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once, wires the DOMS client,
// run lock and journal around a batch run, and renders summaries and history
// tables. Report lines for failed objects go to stdout; everything meant for a
// human goes to stderr so the report can be redirected to a file unchanged.
//
// Keep this package lean: new behaviour belongs in the internal packages and
// is surfaced here through commands or flags.
package main
