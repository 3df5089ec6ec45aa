package ui

import (
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// defaultDebounce groups the burst of events a single save produces.
const defaultDebounce = 200 * time.Millisecond

// fileWatcher reports changes to one file. It watches the parent directory so
// that editors which replace the file by rename are still seen.
type fileWatcher struct {
	w       *fsnotify.Watcher
	path    string
	changes chan struct{}
	done    chan struct{}
}

func newFileWatcher(path string, debounce time.Duration, logger *log.Logger) (*fileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}

	fw := &fileWatcher{
		w:       w,
		path:    abs,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go fw.loop(debounce, logger)
	return fw, nil
}

// Changes delivers at most one pending notification at a time.
func (fw *fileWatcher) Changes() <-chan struct{} {
	return fw.changes
}

func (fw *fileWatcher) Close() error {
	err := fw.w.Close()
	<-fw.done
	return err
}

func (fw *fileWatcher) loop(debounce time.Duration, logger *log.Logger) {
	defer close(fw.done)
	defer close(fw.changes)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != fw.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			select {
			case fw.changes <- struct{}{}:
			default:
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			if logger != nil {
				logger.Warn("file watcher error", "path", fw.path, "err", err)
			}
		}
	}
}
