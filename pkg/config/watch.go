package config

import (
	"github.com/fsnotify/fsnotify"
)

// Watch hot-reloads a config file: on every write or create event, reload and invoke
// onReload with the new Config. Parse errors are reported via onReload's
// error argument rather than aborting the watch, so a typo in the file
// doesn't kill the watcher.
func Watch(path string, onReload func(Config, error)) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := LoadFile(path)
				onReload(cfg, err)
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return w, nil
}
