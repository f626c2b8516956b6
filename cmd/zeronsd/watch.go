package main

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/markdingo/zeronsd/log"
)

const hostsChangeOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// hostsWatcher turns file system events for the hosts file into sync requests. The
// directory is watched rather than the file itself so editors which replace the file
// by rename are still seen.
type hostsWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	changed chan struct{} // Capacity of one so bursts of events coalesce
}

func newHostsWatcher(path string) (*hostsWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	path = filepath.Clean(path)
	err = w.Add(filepath.Dir(path))
	if err != nil {
		w.Close()
		return nil, err
	}

	return &hostsWatcher{path: path, watcher: w, changed: make(chan struct{}, 1)}, nil
}

// Changed returns the channel which receives a value after the hosts file changes.
func (t *hostsWatcher) Changed() <-chan struct{} {
	return t.changed
}

// run forwards relevant events until done is closed or the watcher fails.
func (t *hostsWatcher) run(done <-chan struct{}) {
	defer t.watcher.Close()

	for {
		select {
		case <-done:
			return

		case ev, ok := <-t.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != t.path || ev.Op&hostsChangeOps == 0 {
				continue
			}
			log.Debugf("Hosts watcher: %s", ev)
			select {
			case t.changed <- struct{}{}:
			default:
			}

		case err, ok := <-t.watcher.Errors:
			if !ok {
				return
			}
			warning(err, "hosts file watcher")
		}
	}
}
