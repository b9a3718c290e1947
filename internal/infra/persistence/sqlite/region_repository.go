package sqlite

import (
	"context"

	"quest/internal/domain/entity"
	"quest/internal/infra/persistence/model"
)

// regionRepository implements the domain.RegionRepository interface.
type regionRepository struct {
	session sessionFunc
}

func (repo *regionRepository) FindRegions(ctx context.Context, filter entity.Filter) ([]*entity.Region, error) {
	db, err := repo.session(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.RegionModel{})
	if filter.AdventurerID != nil {
		query = query.Where("adventurer_id = ?", *filter.AdventurerID)
	}
	if filter.RegionID != nil {
		query = query.Where("id = ?", *filter.RegionID)
	}

	var rows []*model.RegionModel
	if err := query.Order("id").Find(&rows).Error; err != nil {
		return nil, translateError(err, "failed to find regions")
	}

	return mapAll(rows, toRegionDomain), nil
}

func (repo *regionRepository) FindRegionByID(ctx context.Context, id int64) (*entity.Region, error) {
	row, err := findByID[model.RegionModel](ctx, repo.session, id, "failed to find region by ID")
	if err != nil {
		return nil, err
	}

	return toRegionDomain(row), nil
}

func (repo *regionRepository) CreateRegion(ctx context.Context, region *entity.Region) error {
	db, err := repo.session(ctx)
	if err != nil {
		return err
	}

	row := fromRegionDomain(region)
	if err := db.Create(row).Error; err != nil {
		return translateError(err, "failed to create region")
	}
	region.ID = row.ID

	return nil
}

func (repo *regionRepository) UpsertRegions(ctx context.Context, regions []*entity.Region) (int, error) {
	return upsertEach(ctx, repo.session, regions, fromRegionDomain, entity.KindRegion)
}
