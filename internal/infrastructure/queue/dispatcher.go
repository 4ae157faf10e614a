package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/recordops/ledger-api/internal/api/metrics"
	"github.com/recordops/ledger-api/internal/core/domain"
	"github.com/recordops/ledger-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// Dispatcher persists audit entries off the request path through a fixed set
// of workers, sharded by actor id so entries for one actor keep their order.
// A full channel drops the entry rather than blocking a request; drops are
// counted and logged.
type Dispatcher struct {
	workers []chan domain.AuditEntry
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an audit entry for asynchronous persistence. Never blocks:
// when the shard's buffer is full the entry is dropped and counted.
func (d *Dispatcher) Record(entry domain.AuditEntry) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	idx := d.shardIndex(entry.ActorID)
	select {
	case d.workers[idx] <- entry:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.AuditWriteErrorsTotal.Inc()
		d.log.Error().
			Str("actor_id", entry.ActorID).
			Str("action", entry.Action).
			Msg("audit queue full, entry dropped")
	}
}

// shardIndex maps an actor id deterministically to a worker index.
func (d *Dispatcher) shardIndex(actorID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actorID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			if err := d.repo.Create(writeCtx, &entry); err != nil {
				metrics.AuditWriteErrorsTotal.Inc()
				d.log.Error().Err(err).
					Str("actor_id", entry.ActorID).
					Str("action", entry.Action).
					Int("worker", id).
					Msg("audit write failed")
			}
			cancel()
			metrics.AuditQueueDepth.WithLabelValues(worker).Set(float64(len(ch)))
		}
	}
}
