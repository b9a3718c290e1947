package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "quest/internal/delivery/context"
	"quest/internal/domain/entity"
	domainerrors "quest/internal/domain/errors"
	"quest/internal/domain/service"
	"quest/internal/errors"
	"quest/internal/usecase"
	"quest/internal/util"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// FullSync fetches all six collections concurrently and swaps them into the local
// store in one transaction. Any failed fetch aborts the sync before the store is touched.
func (s *hybridService) FullSync(ctx context.Context) *usecase.SyncResult {
	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)
	startedAt := s.now()

	if !s.syncMu.TryLock() {
		logger.Warn("Full sync requested while another is running")

		return s.syncFailed(startedAt, domainerrors.ErrSyncInProgress)
	}
	defer s.syncMu.Unlock()

	syncCtx, cancel := context.WithTimeout(ctx, s.syncTimeout)
	defer cancel()

	logger.Info("Full sync started")

	snapshot, err := s.fetchSnapshot(syncCtx)
	if err == nil {
		err = s.local.BulkReplace(syncCtx, snapshot)
	}

	var result *usecase.SyncResult
	if err != nil {
		result = s.syncFailed(startedAt, domainerrors.ErrSyncFailed.WrapMessage(err.Error()))
		logger.Error("Full sync failed",
			slog.Any("error", err),
			slog.String("elapsed", util.FormatDuration(result.FinishedAt.Sub(startedAt))),
		)
	} else {
		finishedAt := s.now()
		s.lastSync.Store(&finishedAt)
		result = &usecase.SyncResult{
			Success:    true,
			Counts:     snapshot.Counts(),
			StartedAt:  startedAt,
			FinishedAt: finishedAt,
		}
		logger.Info("Full sync completed",
			slog.Any("counts", result.Counts),
			slog.String("elapsed", util.FormatDuration(finishedAt.Sub(startedAt))),
		)
	}

	s.metrics.RecordSync(result.Success, result.FinishedAt.Sub(startedAt), result.FinishedAt, result.Counts)
	s.publishSyncEvent(ctx, logger, result)

	return result
}

func (s *hybridService) syncFailed(startedAt time.Time, err error) *usecase.SyncResult {
	return &usecase.SyncResult{
		Success:    false,
		Error:      err.Error(),
		StartedAt:  startedAt,
		FinishedAt: s.now(),
		Err:        err,
	}
}

func (s *hybridService) fetchSnapshot(ctx context.Context) (*entity.Snapshot, error) {
	snapshot := new(entity.Snapshot)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(fetchAll(gctx, s, entity.KindAdventurer, endpointAdventurers, &snapshot.Adventurers))
	g.Go(fetchAll(gctx, s, entity.KindRegion, endpointRegions, &snapshot.Regions))
	g.Go(fetchAll(gctx, s, entity.KindLandmark, endpointLandmarks, &snapshot.Landmarks))
	g.Go(fetchAll(gctx, s, entity.KindAdventure, endpointAdventures, &snapshot.Adventures))
	g.Go(fetchAll(gctx, s, entity.KindToken, endpointTokens, &snapshot.Tokens))
	g.Go(fetchAll(gctx, s, entity.KindCompletedAdventure, endpointCompletedAdventures, &snapshot.CompletedAdventures))

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return snapshot, nil
}

func fetchAll[T any](ctx context.Context, s *hybridService, kind entity.Kind, endpoint string, dst *[]*T) func() error {
	return func() error {
		rows, err := remoteList[T](s, endpoint, entity.Filter{})(ctx)
		if err != nil {
			s.metrics.RecordTierFailure(kind, entity.SourceRemote)

			return errors.Wrapf(err, "fetch %s", kind)
		}
		*dst = rows

		return nil
	}
}

func (s *hybridService) publishSyncEvent(ctx context.Context, logger *slog.Logger, result *usecase.SyncResult) {
	counts := make(map[string]int, len(result.Counts))
	for kind, n := range result.Counts {
		counts[kind.String()] = n
	}

	event := &service.SyncEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		EventID:    uuid.NewString(),
		Success:    result.Success,
		Error:      result.Error,
		Counts:     counts,
		StartedAt:  result.StartedAt,
		FinishedAt: result.FinishedAt,
	}

	// The sync outcome stands even if nobody hears about it.
	if err := s.publisher.PublishSyncEvent(context.WithoutCancel(ctx), event); err != nil {
		logger.Warn("Failed to publish sync event",
			slog.String("event_id", event.EventID),
			slog.Any("error", err),
		)
	}
}

// GetStatus probes the remote service and the local store concurrently.
// Fixture data is always available.
func (s *hybridService) GetStatus(ctx context.Context) *usecase.Status {
	status := &usecase.Status{Fixture: true}

	var g errgroup.Group
	g.Go(func() error {
		status.Remote = s.remote.Probe(ctx) == nil

		return nil
	})
	g.Go(func() error {
		status.Local = s.local.IsAvailable(ctx)

		return nil
	})
	_ = g.Wait()

	return status
}

func (s *hybridService) GetLastSyncTime() *time.Time {
	last := s.lastSync.Load()
	if last == nil {
		return nil
	}
	t := *last

	return &t
}
