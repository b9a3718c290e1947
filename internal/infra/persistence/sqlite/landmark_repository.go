package sqlite

import (
	"context"

	"quest/internal/domain/entity"
	"quest/internal/infra/persistence/model"
)

// landmarkRepository implements the domain.LandmarkRepository interface.
type landmarkRepository struct {
	session sessionFunc
}

func (repo *landmarkRepository) FindLandmarks(ctx context.Context, filter entity.Filter) ([]*entity.Landmark, error) {
	db, err := repo.session(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.LandmarkModel{})
	if filter.RegionID != nil {
		query = query.Where("region_id = ?", *filter.RegionID)
	}

	var rows []*model.LandmarkModel
	if err := query.Order("id").Find(&rows).Error; err != nil {
		return nil, translateError(err, "failed to find landmarks")
	}

	return mapAll(rows, toLandmarkDomain), nil
}

func (repo *landmarkRepository) CreateLandmark(ctx context.Context, landmark *entity.Landmark) error {
	db, err := repo.session(ctx)
	if err != nil {
		return err
	}

	row := fromLandmarkDomain(landmark)
	if err := db.Create(row).Error; err != nil {
		return translateError(err, "failed to create landmark")
	}
	landmark.ID = row.ID

	return nil
}

func (repo *landmarkRepository) UpsertLandmarks(ctx context.Context, landmarks []*entity.Landmark) (int, error) {
	return upsertEach(ctx, repo.session, landmarks, fromLandmarkDomain, entity.KindLandmark)
}
