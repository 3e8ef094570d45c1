package armory

import (
	"io/fs"
	"path/filepath"
	"time"
)

// FileWatcher polls modification times of the YAML files under Dir and
// triggers a callback when one is added, changed or removed.
type FileWatcher struct {
	Dir       string
	Interval  time.Duration
	onChange  func(string) // called with path that changed
	stopCh    chan struct{}
	lastMTime map[string]time.Time
}

// NewFileWatcher creates a watcher for the given directory and interval.
func NewFileWatcher(dir string, interval time.Duration, onChange func(string)) *FileWatcher {
	return &FileWatcher{
		Dir:       dir,
		Interval:  interval,
		onChange:  onChange,
		stopCh:    make(chan struct{}),
		lastMTime: make(map[string]time.Time),
	}
}

// WatchLoader returns a watcher that drops l's cache whenever a record changes.
func WatchLoader(l *Loader, interval time.Duration, onChange func(string)) *FileWatcher {
	return NewFileWatcher(filepath.Join(l.paths.BaseDir, "weapons"), interval, func(path string) {
		l.Invalidate()
		if onChange != nil {
			onChange(path)
		}
	})
}

// Start begins polling in a goroutine.
func (w *FileWatcher) Start() {
	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		w.scanAll(true)
		for {
			select {
			case <-ticker.C:
				w.scanAll(false)
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the watcher.
func (w *FileWatcher) Stop() {
	close(w.stopCh)
}

// scanAll records mtimes; unless priming, it reports every path that is new,
// changed or gone since the last scan.
func (w *FileWatcher) scanAll(prime bool) {
	seen := make(map[string]struct{}, len(w.lastMTime))
	_ = filepath.WalkDir(w.Dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// missing dir or unreadable entry: keep going
			return nil
		}
		if d.IsDir() || filepath.Ext(p) != ".yaml" {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		seen[p] = struct{}{}
		mt := info.ModTime()
		last, ok := w.lastMTime[p]
		w.lastMTime[p] = mt
		if !prime && (!ok || !mt.Equal(last)) {
			w.notify(p)
		}
		return nil
	})
	for p := range w.lastMTime {
		if _, ok := seen[p]; ok {
			continue
		}
		delete(w.lastMTime, p)
		if !prime {
			w.notify(p)
		}
	}
}

func (w *FileWatcher) notify(path string) {
	if w.onChange != nil {
		w.onChange(path)
	}
}
