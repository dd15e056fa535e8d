// Package watcher reports debounced changes of individual files.
package watcher

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches files for changes and triggers callbacks.
// The parent directories are watched rather than the files themselves, so
// files replaced by a rename (as most editors and exporters do) keep being
// reported.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	logger    *slog.Logger
	mu        sync.Mutex
	callbacks map[string]func(string)
	dirs      map[string]int
	debounce  time.Duration
	timers    map[string]*time.Timer
	done      chan struct{}
	closeOnce sync.Once
}

// NewFileWatcher creates a new file watcher. A nil logger discards output.
func NewFileWatcher(debounce time.Duration, logger *slog.Logger) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &FileWatcher{
		watcher:   watcher,
		logger:    logger,
		callbacks: make(map[string]func(string)),
		dirs:      make(map[string]int),
		debounce:  debounce,
		timers:    make(map[string]*time.Timer),
		done:      make(chan struct{}),
	}, nil
}

// Watch starts watching the specified files.
// callback is called with the absolute path when one of them changes.
func (fw *FileWatcher) Watch(files []string, callback func(string)) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}
		if _, exists := fw.callbacks[absPath]; exists {
			fw.callbacks[absPath] = callback
			continue
		}

		dir := filepath.Dir(absPath)
		if fw.dirs[dir] == 0 {
			if err := fw.watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
		}
		fw.dirs[dir]++
		fw.callbacks[absPath] = callback
		fw.logger.Debug("watching file", "path", absPath)
	}

	return nil
}

// Start begins watching for file changes
func (fw *FileWatcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					fw.handleFileChange(filepath.Clean(event.Name))
				}

			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
				fw.logger.Warn("watcher error", "error", err)

			case <-fw.done:
				return
			}
		}
	}()
}

// handleFileChange handles a file change event with debouncing
func (fw *FileWatcher) handleFileChange(filePath string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	callback, exists := fw.callbacks[filePath]
	if !exists {
		return
	}

	if timer, exists := fw.timers[filePath]; exists {
		timer.Stop()
	}

	fw.timers[filePath] = time.AfterFunc(fw.debounce, func() {
		select {
		case <-fw.done:
			return
		default:
		}
		fw.logger.Debug("file changed", "path", filePath)
		callback(filePath)
	})
}

// Remove stops watching a file
func (fw *FileWatcher) Remove(file string) error {
	absPath, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", file, err)
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if _, exists := fw.callbacks[absPath]; !exists {
		return nil
	}
	delete(fw.callbacks, absPath)
	if timer, exists := fw.timers[absPath]; exists {
		timer.Stop()
		delete(fw.timers, absPath)
	}

	dir := filepath.Dir(absPath)
	fw.dirs[dir]--
	if fw.dirs[dir] == 0 {
		delete(fw.dirs, dir)
		return fw.watcher.Remove(dir)
	}
	return nil
}

// Close stops the watcher and cancels pending callbacks
func (fw *FileWatcher) Close() error {
	var err error
	fw.closeOnce.Do(func() {
		close(fw.done)

		fw.mu.Lock()
		for _, timer := range fw.timers {
			timer.Stop()
		}
		fw.mu.Unlock()

		err = fw.watcher.Close()
	})
	return err
}
