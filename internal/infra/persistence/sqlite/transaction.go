package sqlite

import (
	"context"

	"quest/internal/domain/repository"
	"quest/internal/errors"

	"gorm.io/gorm"
)

type sessionFunc func(ctx context.Context) (*gorm.DB, error)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	session sessionFunc
}

// gormRepositoryFactory hands out repositories bound to one transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB
}

func (f *gormRepositoryFactory) bound(ctx context.Context) (*gorm.DB, error) {
	return f.tx.WithContext(ctx), nil
}

func (f *gormRepositoryFactory) NewAdventurerRepository() repository.AdventurerRepository {
	return &adventurerRepository{session: f.bound}
}

func (f *gormRepositoryFactory) NewRegionRepository() repository.RegionRepository {
	return &regionRepository{session: f.bound}
}

func (f *gormRepositoryFactory) NewLandmarkRepository() repository.LandmarkRepository {
	return &landmarkRepository{session: f.bound}
}

func (f *gormRepositoryFactory) NewAdventureRepository() repository.AdventureRepository {
	return &adventureRepository{session: f.bound}
}

func (f *gormRepositoryFactory) NewTokenRepository() repository.TokenRepository {
	return &tokenRepository{session: f.bound}
}

func (f *gormRepositoryFactory) NewCompletedAdventureRepository() repository.CompletedAdventureRepository {
	return &completedAdventureRepository{session: f.bound}
}

// Execute runs the given function within a single database transaction.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	db, err := tm.session(ctx)
	if err != nil {
		return err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return translateError(tx.Error, "failed to begin transaction")
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(&gormRepositoryFactory{tx: tx}); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return errors.Wrapf(err, "transaction rollback failed: %v", rbErr)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return translateError(err, "failed to commit transaction")
	}

	return nil
}
