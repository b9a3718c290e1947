package impl

import (
	"context"

	"quest/internal/domain/entity"
	domainerrors "quest/internal/domain/errors"
	"quest/internal/domain/repository"
	"quest/internal/errors"
)

type upsertFunc[T any] func(context.Context, []*T) (int, error)

// upsertSelector picks the upsert of one collection from transaction-bound repositories.
type upsertSelector[T any] func(repository.RepositoryFactory) upsertFunc[T]

func upsertAdventurers(repos repository.RepositoryFactory) upsertFunc[entity.Adventurer] {
	return repos.NewAdventurerRepository().UpsertAdventurers
}

func upsertRegions(repos repository.RepositoryFactory) upsertFunc[entity.Region] {
	return repos.NewRegionRepository().UpsertRegions
}

func upsertLandmarks(repos repository.RepositoryFactory) upsertFunc[entity.Landmark] {
	return repos.NewLandmarkRepository().UpsertLandmarks
}

func upsertAdventures(repos repository.RepositoryFactory) upsertFunc[entity.Adventure] {
	return repos.NewAdventureRepository().UpsertAdventures
}

func upsertTokens(repos repository.RepositoryFactory) upsertFunc[entity.Token] {
	return repos.NewTokenRepository().UpsertTokens
}

func upsertCompletedAdventures(repos repository.RepositoryFactory) upsertFunc[entity.CompletedAdventure] {
	return repos.NewCompletedAdventureRepository().UpsertCompletedAdventures
}

type referencing[T any] interface {
	*T
	References() []entity.Reference
}

// mirrorList queues a background upsert of remote rows.
func mirrorList[T any, P referencing[T]](s *hybridService, kind entity.Kind, upsert upsertSelector[T]) func([]*T) {
	return func(rows []*T) {
		if len(rows) == 0 {
			return
		}
		s.replicator.Enqueue(kind, len(rows), func(ctx context.Context) (int, error) {
			return mirrorRows[T, P](ctx, s, rows, upsert)
		})
	}
}

func mirrorOne[T any, P referencing[T]](s *hybridService, kind entity.Kind, upsert upsertSelector[T]) func(*T) {
	mirror := mirrorList[T, P](s, kind, upsert)

	return func(item *T) {
		if item != nil {
			mirror([]*T{item})
		}
	}
}

// mirrorRows upserts rows into the local store. Rows whose parents are not mirrored
// yet fail the foreign key check; the missing parent chain is then fetched from the
// remote service and written together with the rows in one transaction.
func mirrorRows[T any, P referencing[T]](ctx context.Context, s *hybridService, rows []*T, upsert upsertSelector[T]) (int, error) {
	stored, err := s.writeLocal(ctx, func(repos repository.RepositoryFactory) (int, error) {
		return upsert(repos)(ctx, rows)
	})
	if !errors.Is(err, domainerrors.ErrForeignKeyViolation) {
		return stored, err
	}

	var refs []entity.Reference
	for _, row := range rows {
		refs = append(refs, P(row).References()...)
	}

	parents, resolveErr := s.fetchMissingParents(ctx, refs)
	if resolveErr != nil {
		return stored, errors.Wrapf(err, "parents unavailable: %v", resolveErr)
	}

	return s.writeLocal(ctx, func(repos repository.RepositoryFactory) (int, error) {
		if err := writeParents(ctx, repos, parents); err != nil {
			return 0, err
		}

		return upsert(repos)(ctx, rows)
	})
}

// writeLocal runs write in a transaction that commits the rows it managed to store,
// and returns write's own outcome.
func (s *hybridService) writeLocal(ctx context.Context, write func(repository.RepositoryFactory) (int, error)) (int, error) {
	var (
		stored   int
		writeErr error
	)
	if err := s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		stored, writeErr = write(repos)

		return nil
	}); err != nil {
		return 0, err
	}

	return stored, writeErr
}

// fetchMissingParents walks references up to the adventurers and fetches every row
// the local store lacks. Regions and adventures pull in their own parents.
func (s *hybridService) fetchMissingParents(ctx context.Context, refs []entity.Reference) (*entity.Snapshot, error) {
	parents := &entity.Snapshot{}
	seen := make(map[entity.Reference]bool)

	for len(refs) > 0 {
		ref := refs[0]
		refs = refs[1:]
		if seen[ref] {
			continue
		}
		seen[ref] = true

		present, err := s.storedLocally(ctx, ref)
		if err != nil {
			return nil, err
		}
		if present {
			continue
		}

		more, err := s.fetchParent(ctx, ref, parents)
		if err != nil {
			return nil, err
		}
		refs = append(refs, more...)
	}

	return parents, nil
}

func (s *hybridService) storedLocally(ctx context.Context, ref entity.Reference) (bool, error) {
	var (
		n   int
		err error
	)
	switch ref.Kind {
	case entity.KindAdventurer:
		var rows []*entity.Adventurer
		rows, err = s.local.FindAdventurers(ctx, entity.ByAdventurer(ref.ID))
		n = len(rows)
	case entity.KindRegion:
		var rows []*entity.Region
		rows, err = s.local.FindRegions(ctx, entity.ByRegion(ref.ID))
		n = len(rows)
	case entity.KindAdventure:
		var rows []*entity.Adventure
		rows, err = s.local.FindAdventures(ctx, entity.ByAdventure(ref.ID))
		n = len(rows)
	default:
		return false, errors.Errorf("%s rows are never referenced", ref.Kind)
	}

	return n > 0, err
}

// fetchParent adds the referenced remote row to parents and returns its own references.
func (s *hybridService) fetchParent(ctx context.Context, ref entity.Reference, parents *entity.Snapshot) ([]entity.Reference, error) {
	switch ref.Kind {
	case entity.KindAdventurer:
		row, err := remoteByID[entity.Adventurer](ctx, s, endpointAdventurers, entity.ByAdventurer(ref.ID))
		if err != nil {
			return nil, err
		}
		parents.Adventurers = append(parents.Adventurers, row)

		return row.References(), nil
	case entity.KindRegion:
		row, err := remoteByID[entity.Region](ctx, s, endpointRegions, entity.ByRegion(ref.ID))
		if err != nil {
			return nil, err
		}
		parents.Regions = append(parents.Regions, row)

		return row.References(), nil
	case entity.KindAdventure:
		row, err := remoteByID[entity.Adventure](ctx, s, endpointAdventures, entity.ByAdventure(ref.ID))
		if err != nil {
			return nil, err
		}
		parents.Adventures = append(parents.Adventures, row)

		return row.References(), nil
	default:
		return nil, errors.Errorf("%s rows are never referenced", ref.Kind)
	}
}

func remoteByID[T any, P matcher[T]](ctx context.Context, s *hybridService, endpoint string, filter entity.Filter) (*T, error) {
	rows, err := remoteList[T](s, endpoint, filter)(ctx)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if P(row).Matches(filter) {
			return row, nil
		}
	}

	return nil, domainerrors.ErrNotFound.WithDetails("remote has no row for the referenced id")
}

// writeParents stores fetched parents in dependency order.
func writeParents(ctx context.Context, repos repository.RepositoryFactory, parents *entity.Snapshot) error {
	if _, err := repos.NewAdventurerRepository().UpsertAdventurers(ctx, parents.Adventurers); err != nil {
		return err
	}
	if _, err := repos.NewRegionRepository().UpsertRegions(ctx, parents.Regions); err != nil {
		return err
	}
	_, err := repos.NewAdventureRepository().UpsertAdventures(ctx, parents.Adventures)

	return err
}
