package sqlite

import (
	"context"

	"quest/internal/domain/entity"
	"quest/internal/domain/repository"
	"quest/internal/infra/persistence/model"
)

// adventurerRepository implements the domain.AdventurerRepository interface.
type adventurerRepository struct {
	session sessionFunc
}

// FindAdventurers returns adventurers matching the id and username filters, ordered by id.
func (repo *adventurerRepository) FindAdventurers(ctx context.Context, filter entity.Filter) ([]*entity.Adventurer, error) {
	db, err := repo.session(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.AdventurerModel{})
	if filter.AdventurerID != nil {
		query = query.Where("id = ?", *filter.AdventurerID)
	}
	if filter.Username != "" {
		query = query.Where("username = ?", filter.Username)
	}

	var rows []*model.AdventurerModel
	if err := query.Order("id").Find(&rows).Error; err != nil {
		return nil, translateError(err, "failed to find adventurers")
	}

	return mapAll(rows, toAdventurerDomain), nil
}

// FindAdventurerByID retrieves an adventurer by its id.
func (repo *adventurerRepository) FindAdventurerByID(ctx context.Context, id int64) (*entity.Adventurer, error) {
	row, err := findByID[model.AdventurerModel](ctx, repo.session, id, "failed to find adventurer by ID")
	if err != nil {
		return nil, err
	}

	return toAdventurerDomain(row), nil
}

// CreateAdventurer persists a new adventurer and stores the assigned id back on it.
func (repo *adventurerRepository) CreateAdventurer(ctx context.Context, adventurer *entity.Adventurer) error {
	db, err := repo.session(ctx)
	if err != nil {
		return err
	}

	row := fromAdventurerDomain(adventurer)
	if err := db.Create(row).Error; err != nil {
		return translateError(err, "failed to create adventurer")
	}
	adventurer.ID = row.ID

	return nil
}

// UpdateAdventurer overwrites every column of the row with the adventurer's id.
func (repo *adventurerRepository) UpdateAdventurer(ctx context.Context, adventurer *entity.Adventurer) error {
	db, err := repo.session(ctx)
	if err != nil {
		return err
	}

	result := db.Model(&model.AdventurerModel{}).
		Where("id = ?", adventurer.ID).
		Updates(map[string]any{
			"username":        adventurer.Username,
			"password":        adventurer.Password,
			"profile_picture": adventurer.ProfilePicture,
		})
	if result.Error != nil {
		return translateError(result.Error, "failed to update adventurer")
	}

	if result.RowsAffected == 0 {
		return repository.ErrRecordNotFound
	}

	return nil
}

func (repo *adventurerRepository) UpsertAdventurers(ctx context.Context, adventurers []*entity.Adventurer) (int, error) {
	return upsertEach(ctx, repo.session, adventurers, fromAdventurerDomain, entity.KindAdventurer)
}
