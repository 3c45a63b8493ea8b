package queue

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/corehr/employee-api/internal/api/metrics"
	"github.com/corehr/employee-api/internal/core/domain"
	"github.com/corehr/employee-api/internal/core/ports"
)

const (
	defaultWorkers      = 2
	channelBuffer       = 256
	defaultWriteTimeout = 5 * time.Second
)

// AuditDispatcher implements ports.AuditRecorder. Events are routed to a fixed
// set of workers by employee id, so events for one employee are written in
// the order they were recorded.
type AuditDispatcher struct {
	workers      []chan domain.AuditEvent
	repo         ports.AuditRepository
	log          zerolog.Logger
	writeTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewAuditDispatcher creates an AuditDispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	return newAuditDispatcher(numWorkers, channelBuffer, repo, log)
}

func newAuditDispatcher(numWorkers, buffer int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers:      make([]chan domain.AuditEvent, numWorkers),
		repo:         repo,
		log:          log,
		writeTimeout: defaultWriteTimeout,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEvent, buffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled
// or, after Shutdown, once their queue is drained.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues event without blocking. When the worker queue is full, or
// the dispatcher has been shut down, the event is dropped and counted.
func (d *AuditDispatcher) Record(event domain.AuditEvent) {
	if !d.enqueue(event) {
		metrics.AuditEventsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Str("action", string(event.Action)).
			Int64("employee_id", event.EmployeeID).
			Msg("audit event dropped")
	}
}

func (d *AuditDispatcher) enqueue(event domain.AuditEvent) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return false
	}

	idx := d.shardIndex(event.EmployeeID)
	select {
	case d.workers[idx] <- event:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return true
	default:
		return false
	}
}

// Shutdown stops accepting events and waits for the workers to drain their
// queues, or for ctx to end.
func (d *AuditDispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Join(errors.New("audit dispatcher: shutdown timed out"), ctx.Err())
	}
}

// shardIndex maps an employee id deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(employeeID int64) int {
	n := int64(len(d.workers))
	return int(((employeeID % n) + n) % n)
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEvent) {
	defer d.wg.Done()
	workerID := strconv.Itoa(id)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			d.write(ctx, id, event)
		}
	}
}

func (d *AuditDispatcher) write(ctx context.Context, workerID int, event domain.AuditEvent) {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.writeTimeout)
	defer cancel()

	start := time.Now()
	err := d.repo.Insert(writeCtx, &event)
	metrics.AuditWriteDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.AuditEventsTotal.WithLabelValues("failed").Inc()
		d.log.Error().Err(err).
			Str("action", string(event.Action)).
			Int64("employee_id", event.EmployeeID).
			Int("worker_id", workerID).
			Msg("audit event write failed")
		return
	}
	metrics.AuditEventsTotal.WithLabelValues("written").Inc()
}
