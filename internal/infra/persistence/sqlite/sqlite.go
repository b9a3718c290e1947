// Package sqlite contains the embedded local store built on GORM and SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"quest/config"
	"quest/internal/domain/entity"
	domainerrors "quest/internal/domain/errors"
	"quest/internal/domain/lifecycle"
	"quest/internal/domain/repository"
	"quest/internal/errors"
	"quest/internal/infra/persistence/model"

	"go.uber.org/fx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Store implements repository.LocalStore. The schema is created lazily on the
// first call and again after a call finds a table missing.
type Store struct {
	*adventurerRepository
	*regionRepository
	*landmarkRepository
	*adventureRepository
	*tokenRepository
	*completedAdventureRepository

	db     *gorm.DB
	sqlDB  *sql.DB
	cfg    *config.LocalStoreConfig
	logger *slog.Logger

	mu          sync.Mutex
	initialized bool
	closed      bool

	// set by schemaGuard, which may run inside a transaction and must not take mu
	stale atomic.Bool
}

var _ repository.LocalStore = (*Store)(nil)

// New opens the local store and binds it to the application lifecycle.
// A failed schema initialization at start is logged, not fatal: the next call retries it.
func New(params Params) (*Store, error) {
	store, err := Open(params.Config.LocalStore, params.Logger, params.Config.Env.Debug)
	if err != nil {
		return nil, err
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if _, err := store.session(ctx); err != nil {
				params.Logger.Warn("Local store initialization deferred", slog.Any("error", err))
			}

			return nil
		},
		OnStop: func(_ context.Context) error {
			return store.Close()
		},
	})

	return store, nil
}

// NewTransactionManager exposes the store's database to transactional work.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &gormTransactionManager{session: store.session}
}

// Open creates a store for cfg without touching the schema.
func Open(cfg *config.LocalStoreConfig, logger *slog.Logger, debug bool) (*Store, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_foreign_keys=on",
		cfg.Path, cfg.BusyTimeout.Milliseconds())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 newGormSlogLogger(logger, debug),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open local store")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get local store sql.DB")
	}
	// SQLite allows a single writer; one connection serializes every write.
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)

	store := &Store{
		db:     db,
		sqlDB:  sqlDB,
		cfg:    cfg,
		logger: logger,
	}
	store.adventurerRepository = &adventurerRepository{session: store.session}
	store.regionRepository = &regionRepository{session: store.session}
	store.landmarkRepository = &landmarkRepository{session: store.session}
	store.adventureRepository = &adventureRepository{session: store.session}
	store.tokenRepository = &tokenRepository{session: store.session}
	store.completedAdventureRepository = &completedAdventureRepository{session: store.session}

	if err := db.Callback().Query().After("gorm:query").Register("quest:schema_guard", store.schemaGuard); err != nil {
		return nil, errors.Wrap(err, "failed to register schema guard")
	}
	if err := db.Callback().Create().After("gorm:create").Register("quest:schema_guard", store.schemaGuard); err != nil {
		return nil, errors.Wrap(err, "failed to register schema guard")
	}
	if err := db.Callback().Update().After("gorm:update").Register("quest:schema_guard", store.schemaGuard); err != nil {
		return nil, errors.Wrap(err, "failed to register schema guard")
	}

	return store, nil
}

// session returns a context-bound handle, initializing the schema first when needed.
func (s *Store) session(ctx context.Context) (*gorm.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, domainerrors.ErrLocalStoreFailed.WithDetails("store is closed")
	}

	if s.stale.Swap(false) {
		s.initialized = false
	}

	db := s.db.WithContext(ctx)
	if s.initialized {
		return db, nil
	}

	if err := createSchema(db, s.cfg.ResetsOnInit()); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to initialize schema")
	}
	s.initialized = true
	s.logger.Info("Local store initialized",
		slog.String("path", s.cfg.Path),
		slog.Bool("resetOnInit", s.cfg.ResetsOnInit()),
	)

	return db, nil
}

// schemaGuard marks the store uninitialized when a statement hits a missing table.
func (s *Store) schemaGuard(db *gorm.DB) {
	if db.Error == nil || !isMissingTable(db.Error) {
		return
	}

	s.stale.Store(true)

	s.logger.Warn("Local store schema missing, reinitializing on next call", slog.Any("error", db.Error))
}

// Close releases the database. Every later call fails with ErrLocalStoreFailed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	return errors.WithStack(s.sqlDB.Close())
}

// IsAvailable reports whether the store is initialized and holds at least one adventurer.
func (s *Store) IsAvailable(ctx context.Context) bool {
	db, err := s.session(ctx)
	if err != nil {
		return false
	}

	var count int64
	if err := db.Model(&model.AdventurerModel{}).Limit(1).Count(&count).Error; err != nil {
		return false
	}

	return count > 0
}

// Counts returns the row count of every table.
func (s *Store) Counts(ctx context.Context) (map[entity.Kind]int64, error) {
	db, err := s.session(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[entity.Kind]int64, len(tableByKind))
	for _, kind := range entity.Kinds() {
		var count int64
		if err := db.Table(tableByKind[kind]).Count(&count).Error; err != nil {
			return nil, domainerrors.NewDatabaseExecuteError(err, "failed to count "+kind.String())
		}
		counts[kind] = count
	}

	return counts, nil
}

// BulkReplace truncates every table and reinserts the snapshot in one transaction.
// On any failure the previous contents are kept.
func (s *Store) BulkReplace(ctx context.Context, snapshot *entity.Snapshot) error {
	db, err := s.session(ctx)
	if err != nil {
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := truncateAll(tx); err != nil {
			return err
		}

		return insertSnapshot(tx, snapshot)
	})
	if err != nil {
		return translateError(err, "failed to replace local snapshot")
	}

	return nil
}
