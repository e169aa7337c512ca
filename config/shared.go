// ABOUTME: Mutex-guarded live Config for mid-run retuning, plus fsnotify-driven file watching
// ABOUTME: Grounded on the teacher's SharedConfig pattern in ga.go, consulted once per generation

package config

import (
	"fmt"
	"log"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Shared wraps a Config behind an RWMutex so a long-running evolution driver
// can read it once per generation while an operator edits the backing TOML
// file (reloaded by WatchFile) concurrently.
type Shared struct {
	mu  sync.RWMutex
	cfg Config
}

// NewShared returns a Shared initialized to cfg.
func NewShared(cfg Config) *Shared {
	return &Shared{cfg: cfg}
}

// Get returns the current config value.
func (s *Shared) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Update replaces the current config value.
func (s *Shared) Update(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

// WatchFile watches path for writes and reloads it into shared on each one,
// logging (via logger, which may be nil to discard) both successful reloads
// and decode failures — a malformed edit is logged and skipped rather than
// crashing the in-flight run. The returned stop func closes the watcher;
// callers should defer it.
func WatchFile(path string, shared *Shared, logger *log.Logger) (stop func() error, err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: new watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					if logger != nil {
						logger.Printf("config: reload %s failed: %v", path, err)
					}
					continue
				}
				if err := Validate(cfg); err != nil {
					if logger != nil {
						logger.Printf("config: reload %s rejected: %v", path, err)
					}
					continue
				}
				shared.Update(cfg)
				if logger != nil {
					logger.Printf("config: reloaded %s", path)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if logger != nil {
					logger.Printf("config: watch error: %v", err)
				}
			}
		}
	}()

	return watcher.Close, nil
}
