package profile

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads one profile file whenever it changes on disk, so a
// running game can rebind without restarting. Each successful reload is
// parsed and validated before it is emitted; a broken edit surfaces on
// Errors and the previous bindings stay in effect. Rapid editor write
// bursts are debounced.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string

	// Profiles carries each validated reload. The channel closes when the
	// watcher does.
	Profiles chan *Profile
	// Errors carries filesystem and validation failures.
	Errors chan error

	closeCh chan struct{}
	once    sync.Once
}

// Watch reloads the profile at path on every change. The containing
// directory is watched rather than the file itself, so editors that
// replace the file by rename keep triggering reloads.
func Watch(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		path:     path,
		Profiles: make(chan *Profile, 4),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. The run loop drains and closes Profiles and
// Errors once it observes the signal.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Profiles)
	defer close(w.Errors)

	var last time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !w.matches(event.Name) {
				continue
			}
			now := time.Now()
			if now.Sub(last) < 100*time.Millisecond {
				continue
			}
			last = now

			prof, err := Load(w.path)
			if err != nil {
				w.emitError(err)
				continue
			}
			select {
			case w.Profiles <- prof:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.emitError(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) emitError(err error) {
	select {
	case w.Errors <- err:
	case <-w.closeCh:
	default:
	}
}

func (w *Watcher) matches(changed string) bool {
	if filepath.Base(changed) != filepath.Base(w.path) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(changed))
	return ext == ".yaml" || ext == ".yml"
}
