// Package app wires a build together: it configures logging, loads the
// network and catalog declarations, runs the frame pipeline over the
// resulting plan, writes the outcome and optionally publishes the
// configuration state. It is decoupled from any specific entrypoint.
package app
