package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"bookfinder/internal/book"
	"bookfinder/internal/debounce"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultDebounce is the quiet period before a typed query is searched.
const DefaultDebounce = 500 * time.Millisecond

// Searcher runs one catalog search. A non-nil error marks the result as a
// failure that must not be cached.
type Searcher interface {
	Find(ctx context.Context, query string) ([]book.Summary, error)
}

// SearchState is what a search screen renders.
type SearchState struct {
	Query          string
	DebouncedQuery string
	IsLoading      bool
	Results        []book.Summary
	Err            error
}

// SearchSession drives searches from raw input for the lifetime of one screen.
// Only the debounced query is searched, results are cached per query, and a
// response is only shown while its query is still the active one.
type SearchSession struct {
	searcher  Searcher
	logger    *zap.Logger
	debouncer *debounce.Debouncer[string]
	group     singleflight.Group

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	state  SearchState
	cache  map[string][]book.Summary
	subs   map[int]chan SearchState
	nextID int
	closed bool
}

func NewSearchSession(searcher Searcher, delay time.Duration, logger *zap.Logger) *SearchSession {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &SearchSession{
		searcher: searcher,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		state:    SearchState{Results: []book.Summary{}},
		cache:    make(map[string][]book.Summary),
		subs:     make(map[int]chan SearchState),
	}
	s.debouncer = debounce.New("", delay, s.settle)
	return s
}

// SetQuery records raw user input.
func (s *SearchSession) SetQuery(query string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.state.Query = query
	s.publishLocked()
	s.mu.Unlock()

	s.debouncer.Set(query)
}

// State returns the current state.
func (s *SearchSession) State() SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe returns a channel carrying state changes, starting with the
// current state. A slow reader skips intermediate states but always receives
// the latest one. The channel is closed by cancel or Close.
func (s *SearchSession) Subscribe() (<-chan SearchState, func()) {
	ch := make(chan SearchState, 1)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	ch <- s.state

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
}

// Close stops the debouncer, cancels in-flight searches and closes subscriptions.
func (s *SearchSession) Close() {
	s.debouncer.Stop()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

func (s *SearchSession) settle(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.state.DebouncedQuery = key
	s.state.Err = nil

	if strings.TrimSpace(key) == "" {
		s.state.IsLoading = false
		s.state.Results = []book.Summary{}
		s.publishLocked()
		return
	}

	if cached, ok := s.cache[key]; ok {
		s.state.IsLoading = false
		s.state.Results = cached
		s.publishLocked()
		return
	}

	s.state.IsLoading = true
	s.state.Results = []book.Summary{}
	s.publishLocked()

	s.wg.Add(1)
	go s.fetch(key)
}

func (s *SearchSession) fetch(key string) {
	defer s.wg.Done()

	logger := s.logger.With(zap.String("request_id", uuid.NewString()), zap.String("query", key))
	started := time.Now()

	v, err, shared := s.group.Do(key, func() (any, error) {
		return s.run(key)
	})
	logger.Debug("search finished",
		zap.Duration("took", time.Since(started)), zap.Bool("shared", shared), zap.Error(err))

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	var results []book.Summary
	if err == nil {
		results = v.([]book.Summary)
		s.cache[key] = results
	}

	if s.state.DebouncedQuery != key {
		logger.Debug("discarding stale search response", zap.String("active_query", s.state.DebouncedQuery))
		return
	}

	s.state.IsLoading = false
	if err != nil {
		logger.Error("search failed", zap.Error(err))
		s.state.Err = err
		s.state.Results = []book.Summary{}
	} else {
		s.state.Results = results
	}
	s.publishLocked()
}

func (s *SearchSession) run(key string) (results []book.Summary, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("search %q panicked: %v", key, r)
		}
	}()
	results, err = s.searcher.Find(s.ctx, key)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []book.Summary{}
	}
	return results, nil
}

// publishLocked hands the current state to every subscriber, replacing any
// state it has not read yet. Callers hold s.mu.
func (s *SearchSession) publishLocked() {
	snapshot := s.state
	for _, ch := range s.subs {
		select {
		case ch <- snapshot:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
}
