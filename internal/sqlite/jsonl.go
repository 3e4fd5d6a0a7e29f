package sqlite

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// jsonlExt is the suffix of export files; the stem is the collection name.
const jsonlExt = ".jsonl"

// jsonlLine is one exported record.
type jsonlLine struct {
	Key  string       `json:"key"`
	Body types.Record `json:"body"`
}

// readJSONL reads a JSONL file and returns each non-empty, parseable line as
// a json.RawMessage. Malformed lines are skipped.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Export writes the current tree to dir as one <collection>.jsonl file per
// collection, records sorted by key. Each file is replaced atomically.
func (b *Backend) Export(ctx context.Context, dir string) (int, error) {
	tree, _, err := b.Tree(ctx)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("creating export dir: %w", err)
	}

	total := 0
	for collection, children := range tree {
		keys := make([]string, 0, len(children))
		for k := range children {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		records := make([]json.RawMessage, 0, len(keys))
		for _, k := range keys {
			line, err := json.Marshal(jsonlLine{Key: k, Body: children[k]})
			if err != nil {
				return total, fmt.Errorf("encoding %s/%s: %w", collection, k, err)
			}
			records = append(records, line)
		}
		if err := writeJSONL(filepath.Join(dir, collection+jsonlExt), records); err != nil {
			return total, fmt.Errorf("exporting %s: %w", collection, err)
		}
		total += len(records)
	}
	return total, nil
}

// Import replaces the tree with the contents of every *.jsonl file in dir.
// Lines that are malformed, lack a key, or lack a body are skipped.
func (b *Backend) Import(ctx context.Context, dir string) (int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*"+jsonlExt))
	if err != nil {
		return 0, fmt.Errorf("listing %s: %w", dir, err)
	}

	tree := make(types.Tree)
	total := 0
	for _, path := range paths {
		collection := strings.TrimSuffix(filepath.Base(path), jsonlExt)
		records, err := readJSONL(path)
		if err != nil {
			return 0, err
		}
		for _, raw := range records {
			var line jsonlLine
			if err := json.Unmarshal(raw, &line); err != nil || line.Key == "" || line.Body == nil {
				continue
			}
			children, ok := tree[collection]
			if !ok {
				children = make(map[string]types.Record)
				tree[collection] = children
			}
			children[line.Key] = line.Body
			total++
		}
	}

	if err := b.SetTree(ctx, tree); err != nil {
		return 0, err
	}
	return total, nil
}
