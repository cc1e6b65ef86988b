package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/skillbarter/swap-api/internal/core/domain"
	"github.com/skillbarter/swap-api/internal/core/ports"
	"github.com/skillbarter/swap-api/internal/infrastructure/metrics"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes swap events to a fixed set of workers using consistent
// hashing on the swap ID, guaranteeing per-swap event ordering.
type Dispatcher struct {
	workers   []chan domain.SwapEvent
	processor ports.SwapEventProcessor
	log       zerolog.Logger

	done chan struct{}
	wg   sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, processor ports.SwapEventProcessor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan domain.SwapEvent, numWorkers),
		processor: processor,
		log:       log,
		done:      make(chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.SwapEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain what is already queued
// and stop when ctx is cancelled; Wait blocks until they have exited.
func (d *Dispatcher) Start(ctx context.Context) {
	go func() {
		<-ctx.Done()
		close(d.done)
	}()
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has stopped.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Publish sends an event to the worker responsible for its swap. The call is
// non-blocking up to channelBuffer capacity; after shutdown events are dropped.
func (d *Dispatcher) Publish(event domain.SwapEvent) {
	idx := d.shardIndex(event.SwapID)
	select {
	case d.workers[idx] <- event:
		metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	case <-d.done:
		d.log.Warn().Str("swap_id", event.SwapID).Str("to", string(event.To)).Msg("dispatcher stopped, event dropped")
	}
}

// shardIndex maps a swap ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(swapID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(swapID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.SwapEvent) {
	defer d.wg.Done()
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			d.drain(id, ch)
			return
		case event := <-ch:
			metrics.EventsQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			d.process(ctx, id, event)
		}
	}
}

// drain processes events still buffered at shutdown with a fresh context so
// audit rows are not lost.
func (d *Dispatcher) drain(id int, ch <-chan domain.SwapEvent) {
	for {
		select {
		case event := <-ch:
			d.process(context.Background(), id, event)
		default:
			return
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, id int, event domain.SwapEvent) {
	if err := d.processor.Process(ctx, event); err != nil {
		d.log.Error().Err(err).
			Str("swap_id", event.SwapID).
			Int("worker_id", id).
			Msg("swap event processing failed")
	}
}
