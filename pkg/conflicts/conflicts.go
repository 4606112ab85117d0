// Package conflicts watches synced folders for Syncthing conflict copies and
// satisfies alertz.ConflictWatcher.
//
// Syncthing keeps the losing side of a conflict next to the original file as
//
//	<name>.sync-conflict-<YYYYMMDD>-<HHMMSS>-<device>.<ext>
//
// Filesystem events are debounced, the folders are rescanned, and the sorted
// list of conflict copies is handed to the owner goroutine through an
// alertz.Loop before listeners are notified.
package conflicts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/zoobzio/alertz"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// DefaultDebounce is the default quiet period before a rescan.
const DefaultDebounce = 500 * time.Millisecond

var conflictPattern = regexp.MustCompile(`\.sync-conflict-\d{8}-\d{6}(-[A-Z0-9]{7})?(\.[^.]+)?$`)

// skipDirs are Syncthing's own bookkeeping directories.
var skipDirs = map[string]bool{
	".stfolder":   true,
	".stversions": true,
}

// IsConflictFile reports whether the base name of path is a conflict copy.
func IsConflictFile(path string) bool {
	return conflictPattern.MatchString(filepath.Base(path))
}

// Scan walks roots and returns every conflict copy found, sorted.
// Unreadable subdirectories are skipped; an unreadable root is an error.
func Scan(roots ...string) ([]string, error) {
	var found []string
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root {
					return err
				}
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if path != root && skipDirs[d.Name()] {
					return fs.SkipDir
				}
				return nil
			}
			if IsConflictFile(d.Name()) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", root, err)
		}
	}
	sort.Strings(found)
	return found, nil
}

// Watcher tracks conflict copies under a set of folder roots.
type Watcher struct {
	roots    []string
	loop     *alertz.Loop
	debounce time.Duration
	clock    clockz.Clock

	// owned by the loop goroutine
	files    []string
	notifier alertz.Notifier

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a Watcher for roots that delivers updates on loop.
func New(loop *alertz.Loop, roots ...string) *Watcher {
	cleaned := make([]string, len(roots))
	for i, r := range roots {
		cleaned[i] = filepath.Clean(r)
	}
	return &Watcher{
		roots:    cleaned,
		loop:     loop,
		debounce: DefaultDebounce,
		clock:    clockz.RealClock,
		done:     make(chan struct{}),
	}
}

// Debounce sets the quiet period between the last filesystem event and the
// rescan. Must be called before Start().
func (w *Watcher) Debounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Clock sets a custom clock for the debounce timer. Must be called before Start().
func (w *Watcher) Clock(clock clockz.Clock) *Watcher {
	w.clock = clock
	return w
}

// ConflictedFiles returns the conflict copies found by the latest scan.
// It must be called on the loop goroutine.
func (w *Watcher) ConflictedFiles() []string {
	out := make([]string, len(w.files))
	copy(out, w.files)
	return out
}

// OnConflictedFilesChanged registers fn to be called on the loop goroutine
// after every scan.
func (w *Watcher) OnConflictedFilesChanged(fn func()) (unsubscribe func()) {
	return w.notifier.Subscribe(fn)
}

// Start registers the roots with fsnotify, performs the initial scan, waits
// until its result has been delivered on the loop, and then keeps watching
// until ctx is canceled or Close is called.
//
// Start must not be called from the loop goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return fmt.Errorf("conflict watcher: %w", alertz.ErrAlreadyStarted)
	}
	w.started = true
	ctx, w.cancel = context.WithCancel(ctx)
	w.mu.Unlock()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		close(w.done)
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	for _, root := range w.roots {
		if err := addTree(fsw, root); err != nil {
			fsw.Close()
			close(w.done)
			return err
		}
	}

	capitan.Emit(ctx, WatchStarted,
		KeyRoots.Field(len(w.roots)),
		alertz.KeyDebounce.Field(w.debounce),
	)

	files, err := Scan(w.roots...)
	if err != nil {
		fsw.Close()
		close(w.done)
		return err
	}
	if err := w.loop.Do(ctx, func() { w.deliver(files) }); err != nil {
		fsw.Close()
		close(w.done)
		return fmt.Errorf("deliver initial scan: %w", err)
	}

	go w.watch(ctx, fsw)

	return nil
}

// Close stops watching and waits for the background goroutine to exit.
// Calling Close on a Watcher that was never started is a no-op.
func (w *Watcher) Close() {
	w.mu.Lock()
	cancel := w.cancel
	w.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-w.done
}

// deliver runs on the loop goroutine. Every scan is published, including one
// that found the same files, so listeners that subscribed late catch up.
func (w *Watcher) deliver(files []string) {
	if files == nil {
		files = []string{}
	}
	w.files = files
	w.notifier.Notify()
}

// watch debounces filesystem events into rescans.
func (w *Watcher) watch(ctx context.Context, fsw *fsnotify.Watcher) {
	defer close(w.done)
	defer fsw.Close()
	defer capitan.Emit(ctx, WatchStopped)

	var (
		timer   clockz.Timer
		pending bool
	)

	for {
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !skipDirs[info.Name()] {
					if err := addTree(fsw, event.Name); err != nil {
						capitan.Emit(ctx, WatchError,
							alertz.KeyError.Field(err.Error()),
						)
					}
				}
			}
			pending = true

			if timer == nil {
				timer = w.clock.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C():
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			capitan.Emit(ctx, WatchError,
				alertz.KeyError.Field(err.Error()),
			)

		case <-timerC:
			if !pending {
				continue
			}
			pending = false
			if err := w.rescan(ctx); err != nil {
				if errors.Is(err, alertz.ErrLoopStopped) || ctx.Err() != nil {
					return
				}
				capitan.Emit(ctx, ScanFailed,
					alertz.KeyError.Field(err.Error()),
				)
			}
		}
	}
}

func (w *Watcher) rescan(ctx context.Context) error {
	files, err := Scan(w.roots...)
	if err != nil {
		return err
	}
	capitan.Emit(ctx, ScanCompleted,
		KeyFound.Field(len(files)),
	)
	return w.loop.Post(ctx, func() { w.deliver(files) })
}

// addTree watches dir and every directory below it.
func addTree(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && skipDirs[d.Name()] {
			return fs.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

var _ alertz.ConflictWatcher = (*Watcher)(nil)
