// Package sqlite implements the remote document store on SQLite. The store is
// a two-level tree, collection to key to record, persisted as one row per
// record. It offers exactly the primitives the mirror needs: read the whole
// tree, replace the whole tree, write one child, delete one child.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// dbFileName is the database file created inside Config.DataDir.
const dbFileName = "flatshare.db"

// Backend implements types.Backend using SQLite.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB

	// now stamps updated_at; tests replace it.
	now func() time.Time
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{now: time.Now}
}

// Attach opens (creating if needed) the database under config.DataDir and
// applies the schema. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	// One writer; the mirror worker is the only caller that writes.
	db.SetMaxOpenConns(1)

	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("applying schema: %w", err)
		}
	}

	b.db = db
	b.config = config
	b.attached = true
	return nil
}

// Detach closes the database. After Detach, all operations return
// ErrDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	return nil
}

// DataDir returns the directory the backend was attached with.
func (b *Backend) DataDir() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.config.DataDir
}

// Tree reads the entire document. exists is false when no record is stored.
// Rows whose body is not a JSON object are skipped.
func (b *Backend) Tree(ctx context.Context) (types.Tree, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, false, types.ErrDetached
	}

	rows, err := b.db.QueryContext(ctx, selectAllNodes)
	if err != nil {
		return nil, false, fmt.Errorf("querying nodes: %w", err)
	}
	defer rows.Close()

	tree := make(types.Tree)
	for rows.Next() {
		var collection, key, body string
		if err := rows.Scan(&collection, &key, &body); err != nil {
			return nil, false, fmt.Errorf("scanning node: %w", err)
		}
		var rec types.Record
		if err := json.Unmarshal([]byte(body), &rec); err != nil || rec == nil {
			continue
		}
		children, ok := tree[collection]
		if !ok {
			children = make(map[string]types.Record)
			tree[collection] = children
		}
		children[key] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterating nodes: %w", err)
	}
	return tree, len(tree) > 0, nil
}

// SetTree replaces the entire document with tree in one transaction.
func (b *Backend) SetTree(ctx context.Context, tree types.Tree) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteAllNodes); err != nil {
		return fmt.Errorf("clearing nodes: %w", err)
	}

	stamp := b.stamp()
	for collection, children := range tree {
		for key, rec := range children {
			body, err := encodeBody(collection, key, rec)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, upsertNode, collection, key, body, stamp); err != nil {
				return fmt.Errorf("writing %s/%s: %w", collection, key, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing tree: %w", err)
	}
	return nil
}

// SetChild writes rec at collection/key, replacing any existing record.
func (b *Backend) SetChild(ctx context.Context, collection, key string, rec types.Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}
	if collection == "" || key == "" {
		return types.ErrInvalidID
	}

	body, err := encodeBody(collection, key, rec)
	if err != nil {
		return err
	}
	if _, err := b.db.ExecContext(ctx, upsertNode, collection, key, body, b.stamp()); err != nil {
		return fmt.Errorf("writing %s/%s: %w", collection, key, err)
	}
	return nil
}

// RemoveChild deletes collection/key. Removing a missing key succeeds.
func (b *Backend) RemoveChild(ctx context.Context, collection, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}
	if collection == "" || key == "" {
		return types.ErrInvalidID
	}

	if _, err := b.db.ExecContext(ctx, deleteNode, collection, key); err != nil {
		return fmt.Errorf("deleting %s/%s: %w", collection, key, err)
	}
	return nil
}

func (b *Backend) stamp() string {
	return b.now().UTC().Format(time.RFC3339Nano)
}

func encodeBody(collection, key string, rec types.Record) (string, error) {
	if rec == nil {
		return "", fmt.Errorf("%s/%s: %w", collection, key, types.ErrInvalidRecord)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("encoding %s/%s: %w", collection, key, err)
	}
	return string(data), nil
}
