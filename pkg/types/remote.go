package types

import (
	"context"
	"errors"
)

// Record is the field map stored at one <collection>/<key> node.
type Record = map[string]any

// Tree is the whole remote document: collection name to key to record.
type Tree map[string]map[string]Record

// RemoteStore is the hierarchical document store the mirror talks to. The
// returned errors stand in for success/failure callbacks; no other feature of
// the store is relied on.
type RemoteStore interface {
	// Tree reads the entire document. exists is false when the root is absent.
	Tree(ctx context.Context) (tree Tree, exists bool, err error)

	// SetTree replaces the entire document with tree.
	SetTree(ctx context.Context, tree Tree) error

	// SetChild writes a single record at collection/key, replacing any
	// existing record.
	SetChild(ctx context.Context, collection, key string, rec Record) error

	// RemoveChild deletes collection/key. Removing a missing key succeeds.
	RemoveChild(ctx context.Context, collection, key string) error
}

// Backend lifecycle errors.
var (
	ErrDetached        = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)

// Record and entity errors.
var (
	ErrNotFound          = errors.New("entity not found")
	ErrInvalidID         = errors.New("invalid entity ID")
	ErrInvalidRecord     = errors.New("invalid record")
	ErrUnknownCollection = errors.New("unknown collection")
	ErrInvalidPrice      = errors.New("price must not be negative")
	ErrInvalidAmount     = errors.New("amount must not be negative")
	ErrInvalidName       = errors.New("name must not be empty")
	ErrInvalidDay        = errors.New("unknown weekday")
	ErrInvalidOptions    = errors.New("poll needs at least two distinct options")
)

// Session errors. Operations that act on behalf of the current user or
// household return these when the session does not have one.
var (
	ErrNoSession   = errors.New("no user is logged in")
	ErrNoHousehold = errors.New("current user has no household")
)

// Backend is a RemoteStore with an attach/detach lifecycle. Operations on a
// detached backend return ErrDetached.
type Backend interface {
	RemoteStore

	// Attach opens the store described by config. It returns
	// ErrAlreadyAttached when called twice without Detach.
	Attach(config Config) error

	// Detach releases the store. It is idempotent.
	Detach() error
}
