package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/arttttt/Bealin/internal/projects/domain"
)

// ErrClosed is returned by operations on a closed watcher.
var ErrClosed = errors.New("watcher closed")

const (
	OpCreate = "create"
	OpModify = "modify"
	OpDelete = "delete"
	OpRename = "rename"
)

const subscriberBuffer = 16

// ChangeEvent describes a settled change inside the watched .beads folder.
type ChangeEvent struct {
	ProjectPath string    `json:"projectPath"`
	File        string    `json:"file"`
	Op          string    `json:"op"`
	At          time.Time `json:"at"`
}

type pendingEvent struct {
	op   string
	last time.Time
}

// BeadsWatcher watches the .beads folder of one project at a time and
// fans debounced change events out to subscribers.
type BeadsWatcher struct {
	log      *zap.Logger
	fsw      *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	root    string
	dir     string
	pending map[string]pendingEvent
	subs    map[int]chan ChangeEvent
	nextSub int
	closed  bool

	stopCh chan struct{}
	doneCh chan struct{}
}

// New creates a watcher and starts its event loop. Call Close to release it.
func New(logger *zap.Logger, debounce time.Duration) (*BeadsWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fs watcher: %w", err)
	}

	w := &BeadsWatcher{
		log:      logger.Named("watcher"),
		fsw:      fsw,
		debounce: debounce,
		pending:  make(map[string]pendingEvent),
		subs:     make(map[int]chan ChangeEvent),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// WatchProject points the watcher at root's .beads folder, dropping the
// previous target. Watching the current target again is a no-op.
func (w *BeadsWatcher) WatchProject(ctx context.Context, root string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if root == w.root && w.dir != "" {
		return nil
	}

	w.unwatchLocked()

	dir := filepath.Join(root, domain.BeadsDir)
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.root, w.dir = root, dir
	w.log.Info("watching project", zap.String("path", root))
	return nil
}

// Unwatch stops watching the current target, if any.
func (w *BeadsWatcher) Unwatch() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.unwatchLocked()
}

func (w *BeadsWatcher) unwatchLocked() {
	if w.dir == "" {
		return
	}
	// the OS watch may already be gone if the folder was deleted
	_ = w.fsw.Remove(w.dir)
	w.log.Info("stopped watching project", zap.String("path", w.root))
	w.root, w.dir = "", ""
	clear(w.pending)
}

// Current returns the watched project root, or "".
func (w *BeadsWatcher) Current() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.root
}

// Resync re-adds the OS watch for the current target when it was lost,
// which happens when the .beads folder is deleted and recreated.
func (w *BeadsWatcher) Resync(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if w.dir == "" || slices.Contains(w.fsw.WatchList(), w.dir) {
		return nil
	}
	if err := w.fsw.Add(w.dir); err != nil {
		return fmt.Errorf("rewatch %s: %w", w.dir, err)
	}
	w.log.Info("re-established watch", zap.String("path", w.root))
	return nil
}

// Subscribe registers a listener. Events are dropped for a subscriber whose
// buffer is full. The returned func unsubscribes and closes the channel.
func (w *BeadsWatcher) Subscribe() (<-chan ChangeEvent, func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ch := make(chan ChangeEvent, subscriberBuffer)
	if w.closed {
		close(ch)
		return ch, func() {}
	}

	id := w.nextSub
	w.nextSub++
	w.subs[id] = ch

	return ch, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if c, ok := w.subs[id]; ok {
			delete(w.subs, id)
			close(c)
		}
	}
}

// Close stops the event loop, releases the OS watcher and closes all
// subscriber channels.
func (w *BeadsWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	err := w.fsw.Close()

	w.mu.Lock()
	for id, ch := range w.subs {
		close(ch)
		delete(w.subs, id)
	}
	w.mu.Unlock()
	return err
}

func (w *BeadsWatcher) run() {
	defer close(w.doneCh)

	tick := w.debounce / 3
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error("fs watcher error", zap.Error(err))

		case <-ticker.C:
			w.flush(time.Now())
		}
	}
}

func (w *BeadsWatcher) handleEvent(event fsnotify.Event) {
	var op string
	switch {
	case event.Has(fsnotify.Create):
		op = OpCreate
	case event.Has(fsnotify.Write):
		op = OpModify
	case event.Has(fsnotify.Remove):
		op = OpDelete
	case event.Has(fsnotify.Rename):
		op = OpRename
	default:
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dir == "" {
		return
	}
	if event.Name == w.dir && (op == OpDelete || op == OpRename) {
		w.log.Warn("beads folder went away, waiting for resync", zap.String("path", w.dir))
	}

	now := time.Now()
	if prev, ok := w.pending[event.Name]; ok {
		// keep the first op of the burst so create+write reports create
		prev.last = now
		w.pending[event.Name] = prev
	} else {
		w.pending[event.Name] = pendingEvent{op: op, last: now}
	}

	if w.debounce <= 0 {
		w.flushLocked(now)
	}
}

func (w *BeadsWatcher) flush(now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.flushLocked(now)
}

func (w *BeadsWatcher) flushLocked(now time.Time) {
	for name, p := range w.pending {
		if now.Sub(p.last) < w.debounce {
			continue
		}
		delete(w.pending, name)

		ev := ChangeEvent{ProjectPath: w.root, File: name, Op: p.op, At: p.last}
		w.log.Debug("beads change", zap.String("file", name), zap.String("op", p.op))
		for _, ch := range w.subs {
			select {
			case ch <- ev:
			default:
				w.log.Warn("dropping change event for slow subscriber", zap.String("file", name))
			}
		}
	}
}
