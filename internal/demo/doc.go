// Package demo contains small applications built on the engine. The
// scenario harness, the CLI and the TUI drive them by name through the
// registry in apps.go.
package demo
