package sqlite

import (
	"slices"

	"quest/internal/domain/entity"
	"quest/internal/infra/persistence/model"

	"gorm.io/gorm"
)

const insertBatchSize = 200

var tableByKind = map[entity.Kind]string{
	entity.KindAdventurer:         model.AdventurerModel{}.TableName(),
	entity.KindRegion:             model.RegionModel{}.TableName(),
	entity.KindLandmark:           model.LandmarkModel{}.TableName(),
	entity.KindAdventure:          model.AdventureModel{}.TableName(),
	entity.KindToken:              model.TokenModel{}.TableName(),
	entity.KindCompletedAdventure: model.CompletedAdventureModel{}.TableName(),
}

// schemaStatements are ordered parents first.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS adventurers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL,
		password TEXT NOT NULL,
		profile_picture TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS regions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		adventurer_id INTEGER REFERENCES adventurers(id),
		name TEXT NOT NULL,
		description TEXT,
		center_x REAL,
		center_y REAL,
		radius REAL NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS landmarks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		region_id INTEGER REFERENCES regions(id),
		name TEXT NOT NULL,
		location_x REAL,
		location_y REAL
	)`,
	`CREATE TABLE IF NOT EXISTS adventures (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		adventurer_id INTEGER REFERENCES adventurers(id),
		region_id INTEGER REFERENCES regions(id),
		name TEXT NOT NULL,
		token_count INTEGER NOT NULL DEFAULT 0,
		location_x REAL,
		location_y REAL
	)`,
	`CREATE TABLE IF NOT EXISTS tokens (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		adventure_id INTEGER REFERENCES adventures(id),
		location_x REAL,
		location_y REAL,
		hint TEXT NOT NULL DEFAULT '',
		token_order INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS completed_adventures (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		adventurer_id INTEGER REFERENCES adventurers(id),
		adventure_id INTEGER REFERENCES adventures(id),
		completion_date TEXT NOT NULL,
		completion_time TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_regions_adventurer ON regions(adventurer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_landmarks_region ON landmarks(region_id)`,
	`CREATE INDEX IF NOT EXISTS idx_adventures_region ON adventures(region_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tokens_adventure ON tokens(adventure_id, token_order)`,
	`CREATE INDEX IF NOT EXISTS idx_completed_adventures_adventurer ON completed_adventures(adventurer_id)`,
}

// childrenFirst lists the tables in the order they can be emptied or dropped.
func childrenFirst() []string {
	kinds := entity.Kinds()
	slices.Reverse(kinds)

	tables := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		tables = append(tables, tableByKind[kind])
	}

	return tables
}

// createSchema creates the six tables. With reset, existing tables are dropped first
// and every previously stored row is lost.
func createSchema(db *gorm.DB, reset bool) error {
	if reset {
		for _, table := range childrenFirst() {
			if err := db.Exec("DROP TABLE IF EXISTS " + table).Error; err != nil {
				return err
			}
		}
	}

	for _, stmt := range schemaStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}

func truncateAll(tx *gorm.DB) error {
	for _, table := range childrenFirst() {
		if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}

	return nil
}

// insertSnapshot inserts every collection parents first, keeping the given ids.
func insertSnapshot(tx *gorm.DB, snapshot *entity.Snapshot) error {
	if err := insertAll(tx, mapAll(snapshot.Adventurers, fromAdventurerDomain)); err != nil {
		return err
	}
	if err := insertAll(tx, mapAll(snapshot.Regions, fromRegionDomain)); err != nil {
		return err
	}
	if err := insertAll(tx, mapAll(snapshot.Landmarks, fromLandmarkDomain)); err != nil {
		return err
	}
	if err := insertAll(tx, mapAll(snapshot.Adventures, fromAdventureDomain)); err != nil {
		return err
	}
	if err := insertAll(tx, mapAll(snapshot.Tokens, fromTokenDomain)); err != nil {
		return err
	}

	return insertAll(tx, mapAll(snapshot.CompletedAdventures, fromCompletedAdventureDomain))
}

func insertAll[M any](tx *gorm.DB, rows []*M) error {
	if len(rows) == 0 {
		return nil
	}

	return tx.CreateInBatches(rows, insertBatchSize).Error
}

func mapAll[E, M any](items []*E, convert func(*E) *M) []*M {
	out := make([]*M, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		out = append(out, convert(item))
	}

	return out
}
