// Package meddb provides the MongoDB access layer for MEDIMORPH.
//
// The Access struct owns the shared client and database handles.
// It is returned from Connect(), which also pings the server, and is
// passed by reference to everything that touches the database; there
// is no package-level connection state. Access provides Disconnect()
// for use with defer and Reconnect() for single-threaded
// re-initialization at startup.
//
// Collections are acquired through CollectionDefinition values whose
// finishers create the declared indexes. TypedCollection wraps a
// Collection with decoded results for a single document type.
//
// The AccessTestSuite struct wraps database connect/disconnect for
// tests that actually hit the database. Those tests are guarded by
// '//go:build database' so that a plain 'go test' runs only unit
// tests; use 'go test -tags database' against a live server.
package meddb
