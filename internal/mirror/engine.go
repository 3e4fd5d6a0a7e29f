// Package mirror bridges the in-memory entity store and the remote document
// store. Outbound writes are encoded when submitted and applied in order by a
// single background worker; callers never wait for the network. Inbound, the
// engine performs the one-shot bootstrap load that rehydrates the store.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

// ErrClosed is returned by Flush after Close.
var ErrClosed = errors.New("mirror is closed")

type opKind int

const (
	opSet opKind = iota
	opRemove
	opTree
	opFlush
)

func (k opKind) String() string {
	switch k {
	case opSet:
		return "set"
	case opRemove:
		return "remove"
	case opTree:
		return "tree"
	}
	return "flush"
}

// op is one queued remote call. Records are encoded before enqueueing so the
// remote write reflects local state at submission time.
type op struct {
	kind       opKind
	collection string
	key        string
	rec        types.Record
	tree       types.Tree
	flushed    chan struct{}
}

// Target is the local side of a bootstrap.
type Target interface {
	// Replace swaps every local collection for the loaded snapshot.
	Replace(snap types.Snapshot)
	// SeedMockData installs the deterministic first-run dataset locally.
	SeedMockData()
	// Snapshot copies every local collection.
	Snapshot() types.Snapshot
}

// Engine is the sync engine. It is the only component that talks to the
// remote store.
type Engine struct {
	remote    types.RemoteStore
	logger    *slog.Logger
	metrics   *Metrics
	queueSize int

	queue chan op

	mu      sync.RWMutex
	closed  bool
	started bool
	senders sync.WaitGroup // submissions in flight, possibly blocked on a full queue
	done    chan struct{}
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithQueueSize sets the outbound queue capacity. Submissions block while the
// queue is full.
func WithQueueSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.queueSize = n
		}
	}
}

// WithRegisterer registers the engine's metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(e *Engine) { e.metrics = NewMetrics(reg) }
}

// New creates an engine for remote. Call Start before submitting writes.
func New(remote types.RemoteStore, opts ...Option) *Engine {
	e := &Engine{
		remote:    remote,
		logger:    slog.Default(),
		queueSize: types.DefaultQueueSize,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.metrics == nil {
		e.metrics = NewMetrics(nil)
	}
	e.queue = make(chan op, e.queueSize)
	return e
}

// Metrics returns the engine's collectors.
func (e *Engine) Metrics() *Metrics {
	return e.metrics
}

// Start launches the worker. Remote calls use ctx; cancelling it makes
// pending writes fail (and be logged) rather than stopping the worker.
// Start is a no-op after the first call.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started || e.closed {
		return
	}
	e.started = true
	go e.run(ctx)
}

// Close stops accepting writes, drains the queue, and waits for the worker
// to exit. On an engine that was never started, queued writes are dropped
// and logged instead.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	started := e.started
	e.mu.Unlock()

	if !started {
		go e.discard()
	}
	e.senders.Wait()
	close(e.queue)
	<-e.done
	return nil
}

// Upsert queues a write of entity at its collection/key.
func (e *Engine) Upsert(entity any) {
	collection, key, rec, err := Encode(entity)
	if err != nil {
		e.metrics.Failures.WithLabelValues(opSet.String()).Inc()
		e.logger.Warn("mirror encode failed", "type", fmt.Sprintf("%T", entity), "error", err)
		return
	}
	e.enqueue(op{kind: opSet, collection: collection, key: key, rec: rec})
}

// Remove queues a delete of collection/key.
func (e *Engine) Remove(collection, key string) {
	e.enqueue(op{kind: opRemove, collection: collection, key: key})
}

// PushSnapshot queues a bulk replacement of the remote tree with snap.
func (e *Engine) PushSnapshot(snap types.Snapshot) {
	tree, err := EncodeSnapshot(snap)
	if err != nil {
		e.metrics.Failures.WithLabelValues(opTree.String()).Inc()
		e.logger.Warn("mirror snapshot encode failed", "error", err)
		return
	}
	e.enqueue(op{kind: opTree, tree: tree})
}

// Flush blocks until every write submitted before the call has been applied
// or ctx is done.
func (e *Engine) Flush(ctx context.Context) error {
	flushed := make(chan struct{})
	if !e.enqueue(op{kind: opFlush, flushed: flushed}) {
		return ErrClosed
	}
	select {
	case <-flushed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) enqueue(o op) bool {
	e.mu.RLock()
	if e.closed {
		e.mu.RUnlock()
		if o.kind != opFlush {
			e.logger.Warn("mirror closed, dropping write", "op", o.kind.String(), "collection", o.collection, "key", o.key)
		}
		return false
	}
	e.senders.Add(1)
	e.mu.RUnlock()
	defer e.senders.Done()

	e.metrics.QueueDepth.Inc()
	e.queue <- o
	return true
}

func (e *Engine) run(ctx context.Context) {
	defer close(e.done)
	for o := range e.queue {
		e.metrics.QueueDepth.Dec()
		e.apply(ctx, o)
	}
}

// discard empties the queue of an engine closed before Start.
func (e *Engine) discard() {
	defer close(e.done)
	for o := range e.queue {
		e.metrics.QueueDepth.Dec()
		if o.kind == opFlush {
			close(o.flushed)
			continue
		}
		e.metrics.Failures.WithLabelValues(o.kind.String()).Inc()
		e.logger.Warn("mirror never started, dropping write", "op", o.kind.String(), "collection", o.collection, "key", o.key)
	}
}

func (e *Engine) apply(ctx context.Context, o op) {
	var err error
	switch o.kind {
	case opFlush:
		close(o.flushed)
		return
	case opSet:
		err = e.remote.SetChild(ctx, o.collection, o.key, o.rec)
	case opRemove:
		err = e.remote.RemoveChild(ctx, o.collection, o.key)
	case opTree:
		err = e.remote.SetTree(ctx, o.tree)
	}

	label := o.kind.String()
	if err != nil {
		e.metrics.Failures.WithLabelValues(label).Inc()
		e.logger.Warn("mirror write failed", "op", label, "collection", o.collection, "key", o.key, "error", err)
		return
	}
	e.metrics.Writes.WithLabelValues(label).Inc()
	e.logger.Debug("mirror write", "op", label, "collection", o.collection, "key", o.key)
}

// Load reads the whole remote tree and decodes it. It reports false when the
// read fails, the root is absent, or there is no users branch. Records that
// fail to decode are skipped and counted.
func (e *Engine) Load(ctx context.Context) (types.Snapshot, bool) {
	tree, exists, err := e.remote.Tree(ctx)
	if err != nil {
		e.logger.Warn("bootstrap read failed", "error", err)
		return types.Snapshot{}, false
	}
	if !exists {
		e.logger.Info("bootstrap found no remote data")
		return types.Snapshot{}, false
	}
	if _, ok := tree[types.UsersCollection]; !ok {
		e.logger.Info("bootstrap found no users branch")
		return types.Snapshot{}, false
	}

	snap, skipped := DecodeTree(tree)
	for collection, n := range skipped {
		e.metrics.Skipped.WithLabelValues(collection).Add(float64(n))
		e.logger.Warn("bootstrap skipped undecodable records", "collection", collection, "count", n)
	}
	return snap, true
}

// Bootstrap loads the remote tree into target. When nothing usable is loaded
// it seeds target with mock data and queues exactly one snapshot push. It
// reports whether remote data was loaded.
func (e *Engine) Bootstrap(ctx context.Context, target Target) bool {
	snap, ok := e.Load(ctx)
	if ok {
		target.Replace(snap)
		e.logger.Info("bootstrap loaded remote data", "users", len(snap.Users), "households", len(snap.Households))
		return true
	}

	target.SeedMockData()
	e.PushSnapshot(target.Snapshot())
	e.logger.Info("bootstrap seeded mock data")
	return false
}
