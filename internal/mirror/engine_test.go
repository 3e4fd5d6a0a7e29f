package mirror

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/flatshare/pkg/logging"
	"github.com/mesh-intelligence/flatshare/pkg/types"
)

func startEngine(t *testing.T, remote types.RemoteStore, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithLogger(logging.Discard())}, opts...)
	e := New(remote, opts...)
	e.Start(context.Background())
	t.Cleanup(func() { e.Close() })
	return e
}

func flush(t *testing.T, e *Engine) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, e.Flush(ctx))
}

func TestEngineAppliesWritesInSubmissionOrder(t *testing.T) {
	remote := newFakeRemote()
	e := startEngine(t, remote)

	e.Upsert(&types.Task{ID: "t1", Title: "Dishes"})
	e.Upsert(&types.ShoppingItem{ID: "s1", Name: "Milk"})
	e.Remove(types.TasksCollection, "t1")
	e.Upsert(&types.Task{ID: "t2", Title: "Trash"})
	flush(t, e)

	assert.Equal(t, []call{
		{op: "set", collection: types.TasksCollection, key: "t1"},
		{op: "set", collection: types.ShoppingCollection, key: "s1"},
		{op: "remove", collection: types.TasksCollection, key: "t1"},
		{op: "set", collection: types.TasksCollection, key: "t2"},
	}, remote.Calls())
}

func TestEngineEncodesAtSubmission(t *testing.T) {
	remote := newFakeRemote()
	e := startEngine(t, remote)

	task := &types.Task{ID: "t1", Title: "Dishes"}
	e.Upsert(task)
	task.Title = "changed after submit"
	flush(t, e)

	assert.Equal(t, "Dishes", remote.tree[types.TasksCollection]["t1"]["title"])
}

func TestEngineFailuresAreCountedNotSurfaced(t *testing.T) {
	remote := newFakeRemote()
	remote.failOps["set"] = errors.New("network down")
	e := startEngine(t, remote, WithRegisterer(prometheus.NewRegistry()))

	e.Upsert(&types.Task{ID: "t1", Title: "Dishes"})
	e.Remove(types.TasksCollection, "t1")
	flush(t, e)

	m := e.Metrics()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failures.WithLabelValues("set")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Writes.WithLabelValues("remove")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.QueueDepth))
}

func TestEngineMetricsShareRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	a := New(newFakeRemote(), WithRegisterer(reg))
	b := New(newFakeRemote(), WithRegisterer(reg))
	assert.Same(t, a.Metrics().Writes, b.Metrics().Writes)
}

func TestEngineCloseDrainsQueue(t *testing.T) {
	remote := newFakeRemote()
	e := New(remote, WithLogger(logging.Discard()))
	e.Start(context.Background())

	for _, id := range []string{"a", "b", "c"} {
		e.Upsert(&types.SmartScene{ID: id, Name: id})
	}
	require.NoError(t, e.Close())
	assert.Equal(t, 3, remote.count("set"))

	e.Upsert(&types.SmartScene{ID: "late", Name: "late"})
	assert.Equal(t, 3, remote.count("set"), "writes after Close are dropped")
	assert.ErrorIs(t, e.Flush(context.Background()), ErrClosed)
	assert.NoError(t, e.Close(), "Close is idempotent")
}

func TestEngineCloseWithoutStart(t *testing.T) {
	e := New(newFakeRemote(), WithLogger(logging.Discard()))
	assert.NoError(t, e.Close())
}

func TestEngineCloseReleasesBlockedSendersWithoutStart(t *testing.T) {
	remote := newFakeRemote()
	reg := prometheus.NewRegistry()
	e := New(remote, WithLogger(logging.Discard()), WithQueueSize(1), WithRegisterer(reg))

	e.Upsert(&types.SmartScene{ID: "a", Name: "a"})
	sent := make(chan struct{})
	go func() {
		defer close(sent)
		e.Upsert(&types.SmartScene{ID: "b", Name: "b"})
	}()

	closed := make(chan error, 1)
	go func() { closed <- e.Close() }()
	select {
	case err := <-closed:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Close blocked behind a full queue")
	}
	select {
	case <-sent:
	case <-time.After(5 * time.Second):
		t.Fatal("blocked Upsert was never released")
	}

	assert.Empty(t, remote.Calls(), "an engine that never started writes nothing")
	assert.Zero(t, testutil.ToFloat64(e.Metrics().QueueDepth))
	assert.GreaterOrEqual(t, testutil.ToFloat64(e.Metrics().Failures.WithLabelValues("set")), 1.0)
}

func TestLoadReportsFalseWithoutUsable(t *testing.T) {
	t.Run("transport error", func(t *testing.T) {
		remote := newFakeRemote()
		remote.readErr = errors.New("offline")
		_, ok := startEngine(t, remote).Load(context.Background())
		assert.False(t, ok)
	})
	t.Run("empty root", func(t *testing.T) {
		_, ok := startEngine(t, newFakeRemote()).Load(context.Background())
		assert.False(t, ok)
	})
	t.Run("no users branch", func(t *testing.T) {
		remote := newFakeRemote()
		remote.tree[types.TasksCollection] = map[string]types.Record{"t1": {"title": "x"}}
		_, ok := startEngine(t, remote).Load(context.Background())
		assert.False(t, ok)
	})
}

func TestLoadSkipsUndecodableRecords(t *testing.T) {
	remote := newFakeRemote()
	remote.tree[types.UsersCollection] = map[string]types.Record{
		"u1": {"email": "anna@x", "name": "Anna"},
		"u2": {"name": "no email"},
	}
	remote.tree[types.PantryCollection] = map[string]types.Record{
		"p1": {"name": "Salt", "status": "unheard-of"},
	}
	e := startEngine(t, remote, WithRegisterer(prometheus.NewRegistry()))

	snap, ok := e.Load(context.Background())
	require.True(t, ok)
	assert.Len(t, snap.Users, 1)
	require.Len(t, snap.Pantry, 1)
	assert.Equal(t, types.PantryStocked, snap.Pantry[0].Status)
	assert.Equal(t, 1.0, testutil.ToFloat64(e.Metrics().Skipped.WithLabelValues(types.UsersCollection)))
}

func TestBootstrapEmptyRemoteSeedsAndPushesOnce(t *testing.T) {
	remote := newFakeRemote()
	e := startEngine(t, remote)
	target := &fakeTarget{seed: types.Snapshot{
		Users: []types.User{{ID: "seed-anna", Email: "anna@x"}},
	}}

	loaded := e.Bootstrap(context.Background(), target)
	flush(t, e)

	assert.False(t, loaded)
	assert.Equal(t, 1, target.seeded)
	assert.Nil(t, target.replaced)
	assert.Equal(t, 1, remote.count("tree"), "exactly one snapshot push")
	assert.Contains(t, remote.tree[types.UsersCollection], "seed-anna")
}

func TestBootstrapTransportFailureFallsBack(t *testing.T) {
	remote := newFakeRemote()
	remote.readErr = errors.New("offline")
	remote.failOps["tree"] = errors.New("still offline")
	e := startEngine(t, remote)
	target := &fakeTarget{}

	assert.False(t, e.Bootstrap(context.Background(), target))
	flush(t, e)
	assert.Equal(t, 1, target.seeded)
	assert.Equal(t, 1, remote.count("tree"))
}

func TestBootstrapReplacesFromRemote(t *testing.T) {
	remote := newFakeRemote()
	remote.tree[types.UsersCollection] = map[string]types.Record{"u1": {"email": "anna@x"}}
	e := startEngine(t, remote)
	target := &fakeTarget{}

	assert.True(t, e.Bootstrap(context.Background(), target))
	flush(t, e)

	require.NotNil(t, target.replaced)
	assert.Len(t, target.replaced.Users, 1)
	assert.Zero(t, target.seeded)
	assert.Zero(t, remote.count("tree"))
}
