// Package credential owns the bearer token scrivener authenticates with.
//
// A login flow hands the token over by redirecting to a URL carrying a
// "token" query parameter. Store.Token checks the current Location for that
// parameter on every read, writes it through to Storage when present, and
// otherwise serves whatever Storage holds. Storage faults never reach the
// caller: they are logged and the credential reads as absent.
//
// BoltStorage persists the token in a bbolt file under the XDG state
// directory so it survives restarts. MemoryStorage is an in-process
// alternative for tests.
package credential
