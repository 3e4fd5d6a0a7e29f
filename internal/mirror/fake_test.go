package mirror

import (
	"context"
	"sync"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// call records one primitive invocation on fakeRemote.
type call struct {
	op         string
	collection string
	key        string
}

// fakeRemote is an in-memory RemoteStore that records calls in order.
type fakeRemote struct {
	mu      sync.Mutex
	tree    types.Tree
	calls   []call
	readErr error
	failOps map[string]error
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{tree: make(types.Tree), failOps: make(map[string]error)}
}

func (f *fakeRemote) Tree(ctx context.Context) (types.Tree, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{op: "tree-read"})
	if f.readErr != nil {
		return nil, false, f.readErr
	}
	if len(f.tree) == 0 {
		return types.Tree{}, false, nil
	}
	return f.tree, true, nil
}

func (f *fakeRemote) SetTree(ctx context.Context, tree types.Tree) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{op: "tree"})
	if err := f.failOps["tree"]; err != nil {
		return err
	}
	f.tree = tree
	return nil
}

func (f *fakeRemote) SetChild(ctx context.Context, collection, key string, rec types.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{op: "set", collection: collection, key: key})
	if err := f.failOps["set"]; err != nil {
		return err
	}
	if f.tree[collection] == nil {
		f.tree[collection] = make(map[string]types.Record)
	}
	f.tree[collection][key] = rec
	return nil
}

func (f *fakeRemote) RemoveChild(ctx context.Context, collection, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{op: "remove", collection: collection, key: key})
	if err := f.failOps["remove"]; err != nil {
		return err
	}
	delete(f.tree[collection], key)
	return nil
}

func (f *fakeRemote) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func (f *fakeRemote) count(op string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.op == op {
			n++
		}
	}
	return n
}

// fakeTarget records bootstrap callbacks.
type fakeTarget struct {
	replaced *types.Snapshot
	seeded   int
	seed     types.Snapshot
}

func (t *fakeTarget) Replace(snap types.Snapshot) { t.replaced = &snap }
func (t *fakeTarget) SeedMockData()               { t.seeded++ }
func (t *fakeTarget) Snapshot() types.Snapshot    { return t.seed }
