package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	"main/utils"
)

// statsRecalculator decouples statistics recomputes from the session
// transitions that trigger them. Requests per user coalesce: while a
// recompute for a user is queued, further triggers are no-ops, and the
// recompute that eventually runs scans the full session set anyway.
type statsRecalculator struct {
	svc *FocusService

	mu      sync.Mutex
	pending map[string]bool
	stopped bool
	queue   chan string

	stopOnce sync.Once
	done     chan struct{}

	attempts int
	backoff  time.Duration
}

func newStatsRecalculator(svc *FocusService) *statsRecalculator {
	return &statsRecalculator{
		svc:      svc,
		pending:  make(map[string]bool),
		queue:    make(chan string, 256),
		done:     make(chan struct{}),
		attempts: 3,
		backoff:  time.Second,
	}
}

func (r *statsRecalculator) start() {
	go r.run()
}

// stop drains the queue and waits for the worker to exit. Further
// enqueues after stop are dropped.
func (r *statsRecalculator) stop() {
	r.stopOnce.Do(func() {
		r.mu.Lock()
		r.stopped = true
		r.mu.Unlock()
		close(r.queue)
	})
	<-r.done
}

func (r *statsRecalculator) enqueue(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped || r.pending[userID] {
		return
	}

	// The send stays under the lock so stop cannot close the queue
	// between the stopped check and the send.
	select {
	case r.queue <- userID:
		r.pending[userID] = true
	default:
		// Queue full: the recompute is lost until the next
		// transition re-enqueues, never the session state itself.
		log.Printf("stats recalc queue full, deferring recompute for user %s", userID)
	}
}

func (r *statsRecalculator) run() {
	defer close(r.done)
	for userID := range r.queue {
		r.mu.Lock()
		delete(r.pending, userID)
		r.mu.Unlock()

		r.recalculate(userID)
	}
}

func (r *statsRecalculator) recalculate(userID string) {
	delay := r.backoff
	for attempt := 1; attempt <= r.attempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		_, err := r.svc.RecalculateStats(ctx, userID)
		cancel()

		if err == nil {
			utils.TrackStatsRecalculation(true)
			return
		}

		log.Printf("stats recalc for user %s failed (attempt %d/%d): %v",
			userID, attempt, r.attempts, err)
		utils.TrackStatsRecalculation(false)

		if attempt < r.attempts {
			time.Sleep(delay)
			delay *= 2
		}
	}
}
