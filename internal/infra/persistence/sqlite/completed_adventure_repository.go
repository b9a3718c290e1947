package sqlite

import (
	"context"

	"quest/internal/domain/entity"
	"quest/internal/infra/persistence/model"
)

// completedAdventureRepository implements the domain.CompletedAdventureRepository interface.
type completedAdventureRepository struct {
	session sessionFunc
}

func (repo *completedAdventureRepository) FindCompletedAdventures(ctx context.Context, filter entity.Filter) ([]*entity.CompletedAdventure, error) {
	db, err := repo.session(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.CompletedAdventureModel{})
	if filter.AdventurerID != nil {
		query = query.Where("adventurer_id = ?", *filter.AdventurerID)
	}
	if filter.AdventureID != nil {
		query = query.Where("adventure_id = ?", *filter.AdventureID)
	}

	var rows []*model.CompletedAdventureModel
	if err := query.Order("id").Find(&rows).Error; err != nil {
		return nil, translateError(err, "failed to find completed adventures")
	}

	return mapAll(rows, toCompletedAdventureDomain), nil
}

func (repo *completedAdventureRepository) CreateCompletedAdventure(ctx context.Context, completed *entity.CompletedAdventure) error {
	db, err := repo.session(ctx)
	if err != nil {
		return err
	}

	row := fromCompletedAdventureDomain(completed)
	if err := db.Create(row).Error; err != nil {
		return translateError(err, "failed to create completed adventure")
	}
	completed.ID = row.ID

	return nil
}

func (repo *completedAdventureRepository) UpsertCompletedAdventures(ctx context.Context, completed []*entity.CompletedAdventure) (int, error) {
	return upsertEach(ctx, repo.session, completed, fromCompletedAdventureDomain, entity.KindCompletedAdventure)
}
