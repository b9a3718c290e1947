package sqlite

import (
	"context"

	"quest/internal/domain/entity"
	"quest/internal/infra/persistence/model"
)

// adventureRepository implements the domain.AdventureRepository interface.
type adventureRepository struct {
	session sessionFunc
}

func (repo *adventureRepository) FindAdventures(ctx context.Context, filter entity.Filter) ([]*entity.Adventure, error) {
	db, err := repo.session(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.AdventureModel{})
	if filter.AdventurerID != nil {
		query = query.Where("adventurer_id = ?", *filter.AdventurerID)
	}
	if filter.RegionID != nil {
		query = query.Where("region_id = ?", *filter.RegionID)
	}
	if filter.AdventureID != nil {
		query = query.Where("id = ?", *filter.AdventureID)
	}

	var rows []*model.AdventureModel
	if err := query.Order("id").Find(&rows).Error; err != nil {
		return nil, translateError(err, "failed to find adventures")
	}

	return mapAll(rows, toAdventureDomain), nil
}

func (repo *adventureRepository) FindAdventureByID(ctx context.Context, id int64) (*entity.Adventure, error) {
	row, err := findByID[model.AdventureModel](ctx, repo.session, id, "failed to find adventure by ID")
	if err != nil {
		return nil, err
	}

	return toAdventureDomain(row), nil
}

func (repo *adventureRepository) CreateAdventure(ctx context.Context, adventure *entity.Adventure) error {
	db, err := repo.session(ctx)
	if err != nil {
		return err
	}

	row := fromAdventureDomain(adventure)
	if err := db.Create(row).Error; err != nil {
		return translateError(err, "failed to create adventure")
	}
	adventure.ID = row.ID

	return nil
}

func (repo *adventureRepository) UpsertAdventures(ctx context.Context, adventures []*entity.Adventure) (int, error) {
	return upsertEach(ctx, repo.session, adventures, fromAdventureDomain, entity.KindAdventure)
}
