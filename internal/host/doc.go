// Package host is an in-memory host tree for the engine, built on
// golang.org/x/net/html nodes.
//
// A Document implements engine.HostAdapter. It keeps an event listener
// table keyed by node, so rendered applications can be driven with
// synthetic events (Click, Input, Submit) and inspected as HTML, without
// a browser.
package host
