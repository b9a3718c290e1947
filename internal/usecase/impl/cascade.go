package impl

import (
	"context"
	"log/slog"

	deliverycontext "quest/internal/delivery/context"
	"quest/internal/domain/entity"
	"quest/internal/domain/service"
	"quest/internal/errors"
	"quest/internal/usecase"
)

// readTiers are the three ways one read can be answered.
type readTiers[T any] struct {
	kind    entity.Kind
	remote  func(ctx context.Context) (T, error)
	local   func(ctx context.Context) (T, error)
	fixture func() T
	// found decides whether a local answer is usable.
	found func(T) bool
	// mirror schedules the background copy of a remote answer; may be nil.
	mirror func(T)
}

// writeTiers are the two places one write can land.
type writeTiers[T any] struct {
	kind   entity.Kind
	remote func(ctx context.Context) (T, error)
	local  func(ctx context.Context) (T, error)
	mirror func(T)
}

// fetchTiered answers from the first tier that can: the remote service verbatim,
// then non-empty local rows, then fixture data. Only a context canceled before
// the first attempt is an error.
func fetchTiered[T any](ctx context.Context, s *hybridService, tiers readTiers[T]) (*usecase.Result[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)

	data, err := tiers.remote(ctx)
	if err == nil {
		if tiers.mirror != nil {
			tiers.mirror(data)
		}

		return served(s, tiers.kind, service.OperationRead, data, entity.SourceRemote), nil
	}
	s.fallback(ctx, logger, tiers.kind, entity.SourceRemote, err)

	data, err = tiers.local(ctx)
	switch {
	case err != nil:
		s.fallback(ctx, logger, tiers.kind, entity.SourceLocal, err)
	case tiers.found(data):
		return served(s, tiers.kind, service.OperationRead, data, entity.SourceLocal), nil
	default:
		logger.Debug("Local store has no matching rows, using fixture data",
			slog.String("entity", tiers.kind.String()),
		)
	}

	return served(s, tiers.kind, service.OperationRead, tiers.fixture(), entity.SourceFixture), nil
}

// writeTiered sends the write to the remote service and mirrors the answer, or
// writes locally when the remote service fails. Fixture data is read-only.
func writeTiered[T any](ctx context.Context, s *hybridService, tiers writeTiers[T]) (*usecase.Result[T], error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)

	data, remoteErr := tiers.remote(ctx)
	if remoteErr == nil {
		if tiers.mirror != nil {
			tiers.mirror(data)
		}

		return served(s, tiers.kind, service.OperationWrite, data, entity.SourceRemote), nil
	}
	s.fallback(ctx, logger, tiers.kind, entity.SourceRemote, remoteErr)

	data, localErr := tiers.local(ctx)
	if localErr != nil {
		s.metrics.RecordTierFailure(tiers.kind, entity.SourceLocal)
		logger.Error("Write rejected by every tier",
			slog.String("entity", tiers.kind.String()),
			slog.Any("remote_error", remoteErr),
			slog.Any("local_error", localErr),
		)

		return nil, &usecase.TierError{Remote: remoteErr, Local: localErr}
	}

	return served(s, tiers.kind, service.OperationWrite, data, entity.SourceLocal), nil
}

func (s *hybridService) fallback(ctx context.Context, logger *slog.Logger, kind entity.Kind, tier entity.Source, err error) {
	s.metrics.RecordTierFailure(kind, tier)
	logger.LogAttrs(ctx, slog.LevelWarn, "Tier failed, falling back",
		slog.String("entity", kind.String()),
		slog.String("tier", tier.String()),
		slog.Any("error", err),
	)
}

func served[T any](s *hybridService, kind entity.Kind, operation string, data T, source entity.Source) *usecase.Result[T] {
	s.metrics.RecordServed(kind, operation, source)

	return &usecase.Result[T]{Data: data, Source: source}
}
