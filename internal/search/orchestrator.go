package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"nearby/internal/places"
)

var ErrClosed = errors.New("orchestrator closed")

// PlaceFinder queries places for one category near a location.
type PlaceFinder interface {
	FindNearbyPlaces(ctx context.Context, location, category string) ([]places.Place, error)
}

type Options struct {
	// MapSwapDelay separates the start of the zoom treatment from the map
	// source change.
	MapSwapDelay time.Duration
	// RevealDelay runs from the end of the fan-out to the results view. It
	// should exceed the map transition.
	RevealDelay time.Duration
	Logger      *zap.Logger
}

func DefaultOptions() Options {
	return Options{
		MapSwapDelay: 100 * time.Millisecond,
		RevealDelay:  1600 * time.Millisecond,
	}
}

// Orchestrator runs searches against a PlaceFinder. All state lives in a
// Machine guarded by mu; timers and fan-out results re-enter through it with
// their generation, so a superseded search can never overwrite a newer one.
type Orchestrator struct {
	finder PlaceFinder
	opts   Options
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu           sync.Mutex
	machine      *Machine
	searchCancel context.CancelFunc
	timers       map[*time.Timer]struct{}
	closed       bool

	changed chan struct{}
}

func New(finder PlaceFinder, opts Options) *Orchestrator {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Orchestrator{
		finder:  finder,
		opts:    opts,
		logger:  opts.Logger,
		ctx:     ctx,
		cancel:  cancel,
		machine: NewMachine(),
		timers:  make(map[*time.Timer]struct{}),
		changed: make(chan struct{}, 1),
	}
}

// Search starts a search and returns once the view is loading. Results
// arrive asynchronously; watch Changed.
func (o *Orchestrator) Search(query string) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return ErrClosed
	}

	gen, err := o.machine.Start(query)
	if err != nil {
		o.mu.Unlock()
		o.notify()
		return err
	}

	o.stopSearchLocked()
	ctx, cancel := context.WithCancel(o.ctx)
	o.searchCancel = cancel
	location := o.machine.State().Query
	categories := o.machine.Categories()

	o.afterLocked(o.opts.MapSwapDelay, func() bool {
		return o.machine.SwapMap(gen)
	})

	o.wg.Add(1)
	o.mu.Unlock()
	o.notify()

	o.logger.Info("search started", zap.String("query", location), zap.Uint64("generation", gen))
	go o.fanOut(ctx, gen, location, categories)
	return nil
}

type branch struct {
	places []places.Place
	err    error
}

func (o *Orchestrator) fanOut(ctx context.Context, gen uint64, location string, categories []string) {
	defer o.wg.Done()

	settled := make([]branch, len(categories))
	var g errgroup.Group
	for i, category := range categories {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					settled[i] = branch{err: fmt.Errorf("category %s: panic: %v", category, r)}
				}
			}()
			found, err := o.finder.FindNearbyPlaces(ctx, location, category)
			settled[i] = branch{places: found, err: err}
			return nil
		})
	}
	_ = g.Wait()

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	failure := o.collectLocked(gen, categories, settled)
	if !o.machine.Settle(gen, failure) {
		o.mu.Unlock()
		o.logger.Debug("discarding stale search", zap.Uint64("generation", gen))
		return
	}
	if failure != nil {
		o.logger.Error("search failed", zap.Uint64("generation", gen), zap.Error(failure))
	}
	o.afterLocked(o.opts.RevealDelay, func() bool {
		return o.machine.Reveal(gen)
	})
	o.mu.Unlock()
	o.notify()
}

// collectLocked hands each branch to the machine. A failed branch only drops
// its own category; a fault while collecting fails the whole search.
func (o *Orchestrator) collectLocked(gen uint64, categories []string, settled []branch) (failure error) {
	defer func() {
		if r := recover(); r != nil {
			failure = fmt.Errorf("collect results: panic: %v", r)
		}
	}()

	for i, category := range categories {
		if settled[i].err != nil {
			o.logger.Warn("category query failed",
				zap.String("category", category),
				zap.Uint64("generation", gen),
				zap.Error(settled[i].err))
		}
		o.machine.BranchSettled(gen, category, settled[i].places, settled[i].err)
	}
	return nil
}

// afterLocked schedules fn under mu after d. Timers are dropped by
// stopSearchLocked and by Close; a dropped timer that already fired does
// nothing.
func (o *Orchestrator) afterLocked(d time.Duration, fn func() bool) {
	var t *time.Timer
	t = time.AfterFunc(d, func() {
		o.mu.Lock()
		if _, live := o.timers[t]; !live {
			o.mu.Unlock()
			return
		}
		delete(o.timers, t)
		changed := fn()
		o.mu.Unlock()
		if changed {
			o.notify()
		}
	})
	o.timers[t] = struct{}{}
}

func (o *Orchestrator) stopSearchLocked() {
	for t := range o.timers {
		t.Stop()
		delete(o.timers, t)
	}
	if o.searchCancel != nil {
		o.searchCancel()
		o.searchCancel = nil
	}
}

// Back returns to the search view and abandons any search in flight.
func (o *Orchestrator) Back() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.machine.Back()
	o.stopSearchLocked()
	o.mu.Unlock()
	o.notify()
}

func (o *Orchestrator) SelectCategory(category string) error {
	o.mu.Lock()
	err := o.machine.SelectCategory(category)
	o.mu.Unlock()
	if err == nil {
		o.notify()
	}
	return err
}

func (o *Orchestrator) Snapshot() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.machine.State()
}

// Changed is signalled after any state change. Signals coalesce, so readers
// should take a fresh Snapshot on every receive.
func (o *Orchestrator) Changed() <-chan struct{} {
	return o.changed
}

// Done is closed once Close has been called.
func (o *Orchestrator) Done() <-chan struct{} {
	return o.ctx.Done()
}

func (o *Orchestrator) notify() {
	select {
	case o.changed <- struct{}{}:
	default:
	}
}

// Close cancels pending timers and in-flight queries and waits for the
// fan-out to unwind.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	o.stopSearchLocked()
	o.cancel()
	o.mu.Unlock()

	o.wg.Wait()
}
