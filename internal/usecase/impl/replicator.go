package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"quest/config"
	"quest/internal/domain/entity"
	"quest/internal/domain/service"
	"quest/internal/errors"

	"go.uber.org/fx"
)

// replicationJob mirrors rows into the local store.
type replicationJob struct {
	kind  entity.Kind
	rows  int
	write func(ctx context.Context) (int, error)
}

// Replicator runs mirror writes in the background. Enqueue never blocks: when the
// queue is full the job is dropped, since the next read or full sync refreshes
// the local store anyway.
type Replicator struct {
	jobs         chan replicationJob
	workers      int
	writeTimeout time.Duration
	logger       *slog.Logger
	metrics      service.TierMetrics

	mu      sync.RWMutex
	started bool
	stopped bool
	wg      sync.WaitGroup
}

// ReplicatorParams holds dependencies for the replicator, injected by Fx
type ReplicatorParams struct {
	fx.In
	fx.Lifecycle

	Config  *config.Config
	Logger  *slog.Logger
	Metrics service.TierMetrics
}

// NewReplicator creates the replicator and starts its workers with the application.
func NewReplicator(params ReplicatorParams) *Replicator {
	r := newReplicator(params.Config.Replication, params.Logger, params.Metrics)

	params.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			r.Start()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			return r.Stop(ctx)
		},
	})

	return r
}

func newReplicator(cfg *config.ReplicationConfig, logger *slog.Logger, tierMetrics service.TierMetrics) *Replicator {
	return &Replicator{
		jobs:         make(chan replicationJob, cfg.QueueSize),
		workers:      max(cfg.Workers, 1),
		writeTimeout: cfg.WriteTimeout,
		logger:       logger,
		metrics:      tierMetrics,
	}
}

// Start launches the worker goroutines. Calling it twice has no effect.
func (r *Replicator) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started || r.stopped {
		return
	}
	r.started = true

	for range r.workers {
		r.wg.Add(1)
		go r.run()
	}
}

// Stop rejects new jobs and waits for queued ones until ctx expires.
func (r *Replicator) Stop(ctx context.Context) error {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()

		return nil
	}
	r.stopped = true
	close(r.jobs)
	started := r.started
	r.mu.Unlock()

	if !started {
		return nil
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "replication queue not drained")
	}
}

// Enqueue schedules a mirror write and reports whether it was accepted.
func (r *Replicator) Enqueue(kind entity.Kind, rows int, write func(ctx context.Context) (int, error)) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.stopped {
		r.metrics.RecordReplication(kind, service.ReplicationDropped, rows)

		return false
	}

	select {
	case r.jobs <- replicationJob{kind: kind, rows: rows, write: write}:
		r.metrics.SetReplicationQueueDepth(len(r.jobs))

		return true
	default:
		r.logger.Warn("Replication queue full, dropping job",
			slog.String("entity", kind.String()),
			slog.Int("rows", rows),
		)
		r.metrics.RecordReplication(kind, service.ReplicationDropped, rows)

		return false
	}
}

func (r *Replicator) run() {
	defer r.wg.Done()

	for job := range r.jobs {
		r.metrics.SetReplicationQueueDepth(len(r.jobs))
		r.process(job)
	}
}

func (r *Replicator) process(job replicationJob) {
	ctx, cancel := context.WithTimeout(context.Background(), r.writeTimeout)
	defer cancel()

	stored, err := job.write(ctx)
	r.metrics.RecordReplication(job.kind, service.ReplicationStored, stored)
	if err == nil {
		return
	}

	status := service.ReplicationSkipped
	if stored == 0 {
		status = service.ReplicationFailed
	}
	r.metrics.RecordReplication(job.kind, status, job.rows-stored)
	r.logger.Warn("Background replication incomplete",
		slog.String("entity", job.kind.String()),
		slog.Int("stored", stored),
		slog.Int("rows", job.rows),
		slog.Any("error", err),
	)
}
