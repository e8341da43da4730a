package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/libraryhub/portal/internal/api/metrics"
	"github.com/libraryhub/portal/internal/core/domain"
	"github.com/libraryhub/portal/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes session events to a fixed set of workers using consistent
// hashing on the browser context ID, guaranteeing per-context event ordering.
type Dispatcher struct {
	workers  []chan domain.SessionEvent
	handlers []ports.SessionEventHandler
	log      zerolog.Logger
}

var _ ports.SessionEventPublisher = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers, each
// event being handed to every handler in order.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger, handlers ...ports.SessionEventHandler) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan domain.SessionEvent, numWorkers),
		handlers: handlers,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.SessionEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Publish hands an event to the worker responsible for its context. It never
// blocks the session transition that produced the event: when the worker
// buffer is full the event is dropped.
func (d *Dispatcher) Publish(event domain.SessionEvent) {
	idx := d.shardIndex(event.ContextID)
	select {
	case d.workers[idx] <- event:
		metrics.SessionEventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.SessionEventsDroppedTotal.Inc()
		d.log.Warn().
			Str("context_id", event.ContextID).
			Str("reason", string(event.Reason)).
			Int("worker_id", idx).
			Msg("session event dropped, worker saturated")
	}
}

// shardIndex maps a context ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(contextID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(contextID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.SessionEvent) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.SessionEventsQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			for _, h := range d.handlers {
				if err := h.Handle(ctx, event); err != nil {
					d.log.Error().Err(err).
						Str("context_id", event.ContextID).
						Int("worker_id", id).
						Msg("session event handling failed")
				}
			}
		}
	}
}
