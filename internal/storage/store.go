package storage

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"dreamytimer/internal/core/model"
)

// ErrStoreClosed is returned by Flush after Close.
var ErrStoreClosed = errors.New("settings store closed")

// StoreOptions contains runtime options for Store.
type StoreOptions struct {
	Now     func() time.Time
	Logger  *log.Logger
	OnError func(error)
}

// Store owns the in-memory configuration and persists every change in the
// background. Writes are serialized by one goroutine; when several updates
// land while a write is in flight only the newest document is written next.
type Store struct {
	path    string
	options StoreOptions

	mu             sync.Mutex
	config         model.Configuration
	version        uint64
	pending        *model.Configuration
	pendingVersion uint64
	written        uint64
	waiters        []flushWaiter
	closed         bool

	wake chan struct{}
	done chan struct{}
}

type flushWaiter struct {
	version uint64
	result  chan error
}

// OpenStore loads the document at path and starts the writer. The returned
// store is always usable; a non-nil error means defaults replaced a broken
// document.
func OpenStore(path string, options StoreOptions) (*Store, error) {
	if options.Now == nil {
		options.Now = time.Now
	}
	if options.Logger == nil {
		options.Logger = log.Default()
	}

	config, err := LoadSettings(path, options.Now())
	store := &Store{
		path:    path,
		options: options,
		config:  config,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go store.run()
	return store, err
}

// Path returns the document location.
func (store *Store) Path() string {
	return store.path
}

// Config returns a copy of the current configuration.
func (store *Store) Config() model.Configuration {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.config.Clone()
}

// Update applies mutate to the configuration and schedules a save.
func (store *Store) Update(mutate func(*model.Configuration)) {
	store.mu.Lock()
	defer store.mu.Unlock()
	mutate(&store.config)
	store.scheduleLocked()
}

// RecordWorkSession counts a finished work session for the day of now and
// returns the new total.
func (store *Store) RecordWorkSession(now time.Time) int {
	var total int
	store.Update(func(config *model.Configuration) {
		config.RollOver(now)
		config.TotalSessionsToday++
		total = config.TotalSessionsToday
	})
	return total
}

// Save persists the current configuration and waits for the result.
func (store *Store) Save(ctx context.Context) error {
	store.mu.Lock()
	store.scheduleLocked()
	store.mu.Unlock()
	return store.Flush(ctx)
}

// Flush waits until every update made before the call has been written and
// returns the error of the write that covered it.
func (store *Store) Flush(ctx context.Context) error {
	store.mu.Lock()
	if store.written >= store.version {
		store.mu.Unlock()
		return nil
	}
	if store.closed {
		store.mu.Unlock()
		return ErrStoreClosed
	}
	waiter := flushWaiter{version: store.version, result: make(chan error, 1)}
	store.waiters = append(store.waiters, waiter)
	store.mu.Unlock()

	select {
	case err := <-waiter.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close writes anything pending and stops the writer.
func (store *Store) Close() error {
	store.mu.Lock()
	if store.closed {
		store.mu.Unlock()
		return nil
	}
	store.closed = true
	close(store.wake)
	store.mu.Unlock()

	<-store.done
	return nil
}

func (store *Store) scheduleLocked() {
	store.version++
	if store.closed {
		store.options.Logger.Printf("settings store closed, change kept in memory only")
		return
	}
	pending := store.config.Clone()
	store.pending = &pending
	store.pendingVersion = store.version
	select {
	case store.wake <- struct{}{}:
	default:
	}
}

func (store *Store) run() {
	defer close(store.done)
	for range store.wake {
		store.writePending()
	}
	store.writePending()

	store.mu.Lock()
	for _, waiter := range store.waiters {
		waiter.result <- ErrStoreClosed
	}
	store.waiters = nil
	store.mu.Unlock()
}

func (store *Store) writePending() {
	for {
		store.mu.Lock()
		if store.pending == nil {
			store.mu.Unlock()
			return
		}
		config := *store.pending
		version := store.pendingVersion
		store.pending = nil
		store.mu.Unlock()

		err := SaveSettings(store.path, config)
		if err != nil {
			store.options.Logger.Printf("save settings: %v", err)
			if store.options.OnError != nil {
				store.options.OnError(err)
			}
		}

		store.mu.Lock()
		store.written = version
		remaining := store.waiters[:0]
		for _, waiter := range store.waiters {
			if waiter.version <= version {
				waiter.result <- err
				continue
			}
			remaining = append(remaining, waiter)
		}
		store.waiters = remaining
		store.mu.Unlock()
	}
}
