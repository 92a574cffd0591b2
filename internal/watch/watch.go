// Package watch re-triggers fetch runs when the Lutris database changes on
// disk, so newly installed games pick up artwork without re-invoking the
// tool by hand.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettleDelay is how long the database must stay quiet before a
// change notification fires. Lutris writes the db plus its -wal/-journal
// siblings in bursts; debouncing collapses each burst into one trigger.
const DefaultSettleDelay = 2 * time.Second

// Watcher monitors a single database file via its parent directory and
// emits one debounced notification per write burst.
type Watcher struct {
	fs     *fsnotify.Watcher
	base   string // filename of the watched db
	settle time.Duration
	logger *slog.Logger

	changes chan struct{}
}

// New creates a watcher for dbPath. A non-positive settle falls back to
// DefaultSettleDelay. The parent directory is watched rather than the file
// itself so notifications survive SQLite's rename-over-replace writes.
func New(dbPath string, settle time.Duration, logger *slog.Logger) (*Watcher, error) {
	if settle <= 0 {
		settle = DefaultSettleDelay
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	dbPath = filepath.Clean(dbPath)
	if err := fw.Add(filepath.Dir(dbPath)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(dbPath), err)
	}

	return &Watcher{
		fs:      fw,
		base:    filepath.Base(dbPath),
		settle:  settle,
		logger:  logger,
		changes: make(chan struct{}, 1),
	}, nil
}

// Changes returns the notification channel. It carries at most one pending
// notification; bursts arriving while a trigger is unconsumed coalesce.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Start processes filesystem events until ctx is canceled. It always
// returns ctx.Err() on cancellation, or the watcher's own error if the
// event stream breaks first.
func (w *Watcher) Start(ctx context.Context) error {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return fmt.Errorf("watch stream closed")
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("database changed", "op", event.Op.String(), "path", event.Name)
			if timer == nil {
				timer = time.NewTimer(w.settle)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.settle)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case w.changes <- struct{}{}:
			default:
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return fmt.Errorf("watch stream closed")
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// relevant filters directory noise down to writes that touch the database
// or its -wal/-journal siblings.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	return strings.HasPrefix(filepath.Base(event.Name), w.base)
}

// Close releases the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
