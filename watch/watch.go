// Package watch implements the polled change watcher: a directory is
// snapshotted on a fixed interval, successive snapshots are diffed,
// and one coalesced event per changed path is emitted per tick. An
// fsnotify watcher is layered on top purely to wake the poll loop
// early; the poll-and-diff pass remains the only source of truth, so
// platforms or paths where fsnotify can't attach still work correctly
// at full interval resolution.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/D-Naveenz/rheo-storage/internal/logx"
	"github.com/D-Naveenz/rheo-storage/storageevents"
)

// DefaultInterval is the poll interval used when Config.Interval is
// zero.
const DefaultInterval = 500 * time.Millisecond

// Config configures a Watcher. Decodable from YAML so callers can
// ship watch settings alongside the rest of their configuration.
type Config struct {
	Root      string        `yaml:"root"`
	Interval  time.Duration `yaml:"interval"`
	Recursive bool          `yaml:"recursive"`
	MaxDepth  int           `yaml:"max_depth"` // 0 means unbounded when Recursive
}

func (c *Config) applyDefaults() {
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
}

type snapshotEntry struct {
	isDir   bool
	size    int64
	modTime time.Time
}

// Watcher polls Config.Root on Config.Interval, diffs against the
// previous snapshot, and delivers coalesced change events on Changed.
// A Watcher has a single owner; Start/Stop are not safe to call
// concurrently with themselves.
type Watcher struct {
	cfg Config
	log *logx.Logger

	Changed chan storageevents.Changed

	mu       sync.Mutex
	snapshot map[string]snapshotEntry
	started  bool
	cancel   context.CancelFunc
	done     chan struct{}

	fsEvents *fsnotify.Watcher // nil if unavailable; accelerator only
	wake     chan struct{}
}

// New constructs a Watcher for cfg. The watcher does not poll until
// Start is called.
func New(cfg Config, opts ...Option) *Watcher {
	cfg.applyDefaults()
	w := &Watcher{
		cfg:      cfg,
		log:      logx.Default,
		Changed:  make(chan storageevents.Changed, 64),
		snapshot: make(map[string]snapshotEntry),
		wake:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Option configures a Watcher at construction.
type Option func(*Watcher)

// WithLogger overrides the default logger.
func WithLogger(l *logx.Logger) Option {
	return func(w *Watcher) { w.log = l }
}

// Start begins polling in a background goroutine. Calling Start on an
// already-started Watcher is a no-op.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil
	}
	w.started = true
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})
	w.mu.Unlock()

	w.snapshot = w.takeSnapshot()
	w.tryAttachFsnotify()

	go w.loop(ctx)
	return nil
}

// Stop halts polling and detaches all subscribers: no further values
// are sent on Changed after Stop returns, and the channel is closed.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return
	}
	w.started = false
	cancel := w.cancel
	done := w.done
	w.mu.Unlock()

	cancel()
	<-done

	if w.fsEvents != nil {
		_ = w.fsEvents.Close()
		w.fsEvents = nil
	}
	close(w.Changed)
}

func (w *Watcher) tryAttachFsnotify() {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		w.log.Debugf("watch: fsnotify accelerator unavailable: %v", err)
		return
	}
	if err := fw.Add(w.cfg.Root); err != nil {
		w.log.Debugf("watch: fsnotify could not watch %s: %v", w.cfg.Root, err)
		_ = fw.Close()
		return
	}
	w.fsEvents = fw

	go func() {
		for range fw.Events {
			select {
			case w.wake <- struct{}{}:
			default:
			}
		}
	}()
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.tick()
		case <-w.wake:
			w.tick()
			ticker.Reset(w.cfg.Interval)
		}
	}
}

// tick enumerates the current tree, diffs it against the stored
// snapshot, and emits one coalesced event per changed path before
// replacing the snapshot.
func (w *Watcher) tick() {
	current := w.takeSnapshot()

	for path, next := range current {
		prev, existed := w.snapshot[path]
		switch {
		case !existed:
			w.emit(path, storageevents.Created, nil, entryInfo(path, next))
		case prev != next:
			w.emit(path, storageevents.Modified, entryInfo(path, prev), entryInfo(path, next))
		}
	}
	for path, prev := range w.snapshot {
		if _, stillThere := current[path]; !stillThere {
			w.emit(path, storageevents.Deleted, entryInfo(path, prev), nil)
		}
	}

	w.snapshot = current
}

func entryInfo(path string, e snapshotEntry) *storageevents.Info {
	return &storageevents.Info{Path: path, Size: e.size, IsDir: e.isDir}
}

func (w *Watcher) emit(path string, kind storageevents.ChangeType, oldInfo, newInfo *storageevents.Info) {
	c := storageevents.Changed{Path: path, ChangeType: kind, OldInfo: oldInfo, NewInfo: newInfo}
	select {
	case w.Changed <- c:
	default:
		w.log.Warnf("watch: dropping event for %s, subscriber channel full", path)
	}
}

func (w *Watcher) takeSnapshot() map[string]snapshotEntry {
	out := make(map[string]snapshotEntry)
	w.walk(w.cfg.Root, "", 0, out)
	return out
}

func (w *Watcher) walk(abs, rel string, depth int, out map[string]snapshotEntry) {
	entries, err := os.ReadDir(abs)
	if err != nil {
		return
	}
	for _, entry := range entries {
		childRel := entry.Name()
		if rel != "" {
			childRel = filepath.Join(rel, entry.Name())
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		out[childRel] = snapshotEntry{isDir: info.IsDir(), size: info.Size(), modTime: info.ModTime()}

		if info.IsDir() && w.cfg.Recursive {
			if w.cfg.MaxDepth == 0 || depth+1 < w.cfg.MaxDepth {
				w.walk(filepath.Join(abs, entry.Name()), childRel, depth+1, out)
			}
		}
	}
}
