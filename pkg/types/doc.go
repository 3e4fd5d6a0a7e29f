// Package types defines the flatshare entity model, the collection names used
// to address the remote document store, the RemoteStore interface, and the
// standard error values shared by the store, mirror, and backend packages.
//
// Entities are plain data. Behavior that spans entities (balances, rotation,
// onboarding bonuses) lives in internal/store; this package only carries
// identity, enumerations, and pure per-entity helpers.
package types
