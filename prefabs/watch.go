package prefabs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind classifies a changed file by extension.
type ChangeKind int

const (
	ChangeSpec ChangeKind = iota
	ChangeScript
)

// Change is one debounced file event.
type Change struct {
	Path string
	Kind ChangeKind
}

// DefaultDebounce drops repeat events for one file arriving closer together
// than this. Editors often write a file in several steps.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports edits to spec and script files. Each target is either a
// directory, which reports every spec or script file in it, or a single
// file, which is watched through its directory and filtered by path.
type Watcher struct {
	fs      *fsnotify.Watcher
	files   map[string]bool
	dirs    map[string]bool
	changes chan Change
	errs    chan error
	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(targets ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fs:      fw,
		files:   make(map[string]bool),
		dirs:    make(map[string]bool),
		changes: make(chan Change, 16),
		errs:    make(chan error, 1),
		closeCh: make(chan struct{}),
	}

	added := make(map[string]bool)
	for _, target := range targets {
		abs, err := filepath.Abs(target)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("prefabs: watch %s: %w", target, err)
		}
		dir := abs
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			w.dirs[abs] = true
		} else {
			w.files[abs] = true
			dir = filepath.Dir(abs)
		}
		if added[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("prefabs: watch %s: %w", target, err)
		}
		added[dir] = true
	}

	go w.run(DefaultDebounce)
	return w, nil
}

// Changes delivers debounced edits until Close.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Poll drains pending changes without blocking. Watch errors are logged.
func (w *Watcher) Poll() []Change {
	var out []Change
	for {
		select {
		case c, ok := <-w.changes:
			if !ok {
				return out
			}
			out = append(out, c)
		case err, ok := <-w.errs:
			if ok {
				log.Printf("prefabs: watch: %v", err)
			}
		default:
			return out
		}
	}
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) run(debounce time.Duration) {
	defer close(w.changes)
	defer close(w.errs)

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			c, ok := w.classify(event.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if t, ok := last[c.Path]; ok && now.Sub(t) < debounce {
				continue
			}
			last[c.Path] = now
			select {
			case w.changes <- c:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) classify(name string) (Change, bool) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return Change{}, false
	}
	if !w.files[abs] && !w.dirs[filepath.Dir(abs)] {
		return Change{}, false
	}
	switch strings.ToLower(filepath.Ext(abs)) {
	case ".yaml", ".yml":
		return Change{Path: abs, Kind: ChangeSpec}, true
	case ".tengo":
		return Change{Path: abs, Kind: ChangeScript}, true
	}
	return Change{}, false
}
