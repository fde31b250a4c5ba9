// Package testutil holds helpers shared by package tests: an in-memory
// trace recorder, a temporary trace store and a logger that writes through
// testing.T.
package testutil
