// Package session owns the client's authentication state: the live Session
// value, its persisted record, and the startup reconciliation against the
// remote identity endpoint.
//
// Invariants:
// - Exactly one live Session exists per process, owned by the Manager.
// - A token is only held alongside identity fields obtained from a successful
//   identity fetch, or from persisted state trusted until proven invalid.
// - Every failure path resolves to the anonymous Session; nothing in this
//   package surfaces errors to command-level consumers.
// - Mutations are serialized through a single writer and announced to
//   subscribers synchronously after they are applied.
//
// Usage:
//
//	store, _ := session.NewStore(dataDir)
//	mgr := session.NewManager(store, verifier, logger)
//	mgr.Reconcile(ctx)
//	if mgr.Current().Authenticated() { ... }
package session
