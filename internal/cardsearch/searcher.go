package cardsearch

import (
	"context"
	"sync"
	"time"
)

// Searcher debounces card searches. Keystrokes reset a quiescence timer, and
// every scheduled search is tagged with a generation number at send time;
// results are applied only while their generation is still the latest, so a
// slow response can never overwrite a newer one regardless of arrival order.
type Searcher struct {
	client    *Client
	window    time.Duration
	onResults func([]Card)
	onError   func(error)

	mu     sync.Mutex
	timer  *time.Timer
	gen    uint64
	cancel context.CancelFunc
}

// DefaultWindow is the debounce quiescence period.
const DefaultWindow = 600 * time.Millisecond

func NewSearcher(client *Client, window time.Duration, onResults func([]Card), onError func(error)) *Searcher {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Searcher{client: client, window: window, onResults: onResults, onError: onError}
}

// Query registers a keystroke. A blank query, or a source without an
// endpoint, clears the results immediately and fires no request.
func (s *Searcher) Query(src Source, query string, byID bool) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.stopPendingLocked()

	if query == "" || !src.Searchable() {
		s.mu.Unlock()
		s.onResults([]Card{})
		return
	}

	s.timer = time.AfterFunc(s.window, func() {
		s.fire(gen, src, query, byID)
	})
	s.mu.Unlock()
}

// Close cancels the pending timer and aborts any in-flight request. Results
// arriving afterwards are discarded by the generation guard.
func (s *Searcher) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.stopPendingLocked()
}

func (s *Searcher) fire(gen uint64, src Source, query string, byID bool) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()

	cards, err := s.client.Search(ctx, src, query, byID)
	cancel()

	s.mu.Lock()
	stale := gen != s.gen
	s.mu.Unlock()
	if stale {
		return
	}
	if err != nil {
		// prior results stay on screen; the notice is transient
		s.onError(err)
		return
	}
	s.onResults(cards)
}

func (s *Searcher) stopPendingLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
