package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Lister fetches the full name list
type Lister interface {
	ListNames(ctx context.Context) ([]string, error)
}

// Snapshot is the loader state at one point in time
type Snapshot struct {
	Index   *Index
	Err     error
	Loading bool
	// Refreshing is set while a reload fetches behind a usable index
	Refreshing bool
	Epoch      uint64
}

// Ready reports whether a usable index is available
func (s Snapshot) Ready() bool {
	return !s.Loading && s.Err == nil && s.Index != nil
}

// Loader owns the startup fetch of the catalog and its reload.
// Start discards the current index before fetching; Reload keeps it serving
// until the new one is in.
type Loader struct {
	lister Lister

	mu         sync.RWMutex
	index      *Index
	err        error
	loading    bool
	refreshing bool
	epoch      uint64
	done       chan struct{}
}

// NewLoader creates a loader; nothing is fetched until Load or Start
func NewLoader(lister Lister) *Loader {
	done := make(chan struct{})
	close(done)
	return &Loader{
		lister: lister,
		done:   done,
	}
}

// Load fetches the catalog synchronously and installs the resulting index
func (l *Loader) Load(ctx context.Context) (*Index, error) {
	epoch, done := l.begin()
	return l.run(ctx, epoch, done)
}

// Start fetches the catalog in the background. Calling it again while a
// fetch is running supersedes the earlier fetch.
func (l *Loader) Start(ctx context.Context) {
	epoch, done := l.begin()
	go func() {
		_, _ = l.run(ctx, epoch, done)
	}()
}

// Reload fetches the catalog again in the background. The current index keeps
// serving searches and is swapped out only when the fetch succeeds; a failed
// reload is logged and leaves it in place. Without a usable index Reload
// behaves like Start.
func (l *Loader) Reload(ctx context.Context) {
	l.mu.Lock()
	if l.index == nil {
		l.mu.Unlock()
		l.Start(ctx)
		return
	}
	l.epoch++
	epoch := l.epoch
	l.refreshing = true
	done := make(chan struct{})
	l.done = done
	l.mu.Unlock()

	go l.refresh(ctx, epoch, done)
}

// Wait blocks until the most recently started fetch has settled
func (l *Loader) Wait(ctx context.Context) error {
	l.mu.RLock()
	done := l.done
	l.mu.RUnlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the current state
func (l *Loader) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Snapshot{
		Index:      l.index,
		Err:        l.err,
		Loading:    l.loading,
		Refreshing: l.refreshing,
		Epoch:      l.epoch,
	}
}

func (l *Loader) begin() (uint64, chan struct{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.epoch++
	l.index = nil
	l.err = nil
	l.loading = true
	l.refreshing = false
	l.done = make(chan struct{})
	return l.epoch, l.done
}

func (l *Loader) run(ctx context.Context, epoch uint64, done chan struct{}) (*Index, error) {
	defer close(done)

	start := time.Now()
	slog.Info("Loading catalog", "epoch", epoch)

	names, err := l.lister.ListNames(ctx)

	var idx *Index
	if err == nil {
		idx = NewIndex(names)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if epoch != l.epoch {
		slog.Debug("Discarding superseded catalog load", "epoch", epoch, "current", l.epoch)
		return idx, err
	}
	l.loading = false
	l.index = idx
	l.err = err

	if err != nil {
		slog.Error("Catalog load failed", "epoch", epoch, "err", err)
		return nil, err
	}
	slog.Info("Catalog loaded", "epoch", epoch, "names", idx.Len(), "duration", time.Since(start))
	return idx, nil
}

func (l *Loader) refresh(ctx context.Context, epoch uint64, done chan struct{}) {
	defer close(done)

	start := time.Now()
	slog.Info("Reloading catalog", "epoch", epoch)

	names, err := l.lister.ListNames(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if epoch != l.epoch {
		slog.Debug("Discarding superseded catalog reload", "epoch", epoch, "current", l.epoch)
		return
	}
	l.refreshing = false

	if err != nil {
		slog.Error("Catalog reload failed, keeping current index", "epoch", epoch, "names", l.index.Len(), "err", err)
		return
	}
	l.index = NewIndex(names)
	slog.Info("Catalog reloaded", "epoch", epoch, "names", l.index.Len(), "duration", time.Since(start))
}
