package sqlite

// Schema DDL. Every record of the document tree is one row keyed by
// (collection, key); body holds the record's field map as JSON.
const (
	createNodes = `CREATE TABLE IF NOT EXISTS nodes (
    collection TEXT NOT NULL,
    key TEXT NOT NULL,
    body TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    PRIMARY KEY (collection, key)
);`

	idxNodesCollection = `CREATE INDEX IF NOT EXISTS idx_nodes_collection ON nodes(collection);`
)

// schemaDDL lists the statements run on Attach, in order.
var schemaDDL = []string{
	createNodes,
	idxNodesCollection,
}

// Statements used by the RemoteStore primitives.
const (
	selectAllNodes = `SELECT collection, key, body FROM nodes ORDER BY collection, key`

	upsertNode = `INSERT INTO nodes (collection, key, body, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(collection, key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`

	deleteNode     = `DELETE FROM nodes WHERE collection = ? AND key = ?`
	deleteAllNodes = `DELETE FROM nodes`
)
