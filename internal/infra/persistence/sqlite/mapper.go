package sqlite

import (
	"context"

	"quest/internal/domain/entity"
	"quest/internal/domain/repository"
	"quest/internal/errors"
	"quest/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// nullableID stores a zero id as NULL.
func nullableID(id int64) *int64 {
	if id == 0 {
		return nil
	}

	return &id
}

func idValue(id *int64) int64 {
	if id == nil {
		return 0
	}

	return *id
}

// upsertEach writes rows one by one keyed by id. Rows that fail are skipped; the
// returned error reports how many and why the first one failed.
func upsertEach[E, M any](ctx context.Context, session sessionFunc, items []*E, convert func(*E) *M, kind entity.Kind) (int, error) {
	db, err := session(ctx)
	if err != nil {
		return 0, err
	}

	var (
		stored   int
		skipped  int
		firstErr error
	)
	for _, item := range items {
		if item == nil {
			continue
		}
		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(convert(item)).Error; err != nil {
			skipped++
			if firstErr == nil {
				firstErr = err
			}

			continue
		}
		stored++
	}

	if firstErr != nil {
		return stored, errors.Wrapf(translateError(firstErr, "failed to upsert "+kind.String()), "%d of %d rows skipped", skipped, skipped+stored)
	}

	return stored, nil
}

func findByID[M any](ctx context.Context, session sessionFunc, id int64, details string) (*M, error) {
	db, err := session(ctx)
	if err != nil {
		return nil, err
	}

	row := new(M)
	if err := db.Where("id = ?", id).Take(row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRecordNotFound
		}

		return nil, translateError(err, details)
	}

	return row, nil
}

func toAdventurerDomain(data *model.AdventurerModel) *entity.Adventurer {
	return &entity.Adventurer{
		ID:             data.ID,
		Username:       data.Username,
		Password:       data.Password,
		ProfilePicture: data.ProfilePicture,
	}
}

func fromAdventurerDomain(data *entity.Adventurer) *model.AdventurerModel {
	return &model.AdventurerModel{
		ID:             data.ID,
		Username:       data.Username,
		Password:       data.Password,
		ProfilePicture: data.ProfilePicture,
	}
}

func toRegionDomain(data *model.RegionModel) *entity.Region {
	return &entity.Region{
		ID:           data.ID,
		AdventurerID: idValue(data.AdventurerID),
		Name:         data.Name,
		Description:  data.Description,
		Center:       entity.NewPoint(data.CenterX, data.CenterY),
		Radius:       data.Radius,
	}
}

func fromRegionDomain(data *entity.Region) *model.RegionModel {
	x, y := data.Center.Coordinates()

	return &model.RegionModel{
		ID:           data.ID,
		AdventurerID: nullableID(data.AdventurerID),
		Name:         data.Name,
		Description:  data.Description,
		CenterX:      x,
		CenterY:      y,
		Radius:       data.Radius,
	}
}

func toLandmarkDomain(data *model.LandmarkModel) *entity.Landmark {
	return &entity.Landmark{
		ID:       data.ID,
		RegionID: idValue(data.RegionID),
		Name:     data.Name,
		Location: entity.NewPoint(data.LocationX, data.LocationY),
	}
}

func fromLandmarkDomain(data *entity.Landmark) *model.LandmarkModel {
	x, y := data.Location.Coordinates()

	return &model.LandmarkModel{
		ID:        data.ID,
		RegionID:  nullableID(data.RegionID),
		Name:      data.Name,
		LocationX: x,
		LocationY: y,
	}
}

func toAdventureDomain(data *model.AdventureModel) *entity.Adventure {
	return &entity.Adventure{
		ID:           data.ID,
		AdventurerID: idValue(data.AdventurerID),
		RegionID:     idValue(data.RegionID),
		Name:         data.Name,
		TokenCount:   data.TokenCount,
		Location:     entity.NewPoint(data.LocationX, data.LocationY),
	}
}

func fromAdventureDomain(data *entity.Adventure) *model.AdventureModel {
	x, y := data.Location.Coordinates()

	return &model.AdventureModel{
		ID:           data.ID,
		AdventurerID: nullableID(data.AdventurerID),
		RegionID:     nullableID(data.RegionID),
		Name:         data.Name,
		TokenCount:   data.TokenCount,
		LocationX:    x,
		LocationY:    y,
	}
}

func toTokenDomain(data *model.TokenModel) *entity.Token {
	return &entity.Token{
		ID:          data.ID,
		AdventureID: idValue(data.AdventureID),
		Location:    entity.NewPoint(data.LocationX, data.LocationY),
		Hint:        data.Hint,
		TokenOrder:  data.TokenOrder,
	}
}

func fromTokenDomain(data *entity.Token) *model.TokenModel {
	x, y := data.Location.Coordinates()

	return &model.TokenModel{
		ID:          data.ID,
		AdventureID: nullableID(data.AdventureID),
		LocationX:   x,
		LocationY:   y,
		Hint:        data.Hint,
		TokenOrder:  data.TokenOrder,
	}
}

func toCompletedAdventureDomain(data *model.CompletedAdventureModel) *entity.CompletedAdventure {
	return &entity.CompletedAdventure{
		ID:             data.ID,
		AdventurerID:   idValue(data.AdventurerID),
		AdventureID:    idValue(data.AdventureID),
		CompletionDate: data.CompletionDate,
		CompletionTime: data.CompletionTime,
	}
}

func fromCompletedAdventureDomain(data *entity.CompletedAdventure) *model.CompletedAdventureModel {
	return &model.CompletedAdventureModel{
		ID:             data.ID,
		AdventurerID:   nullableID(data.AdventurerID),
		AdventureID:    nullableID(data.AdventureID),
		CompletionDate: data.CompletionDate,
		CompletionTime: data.CompletionTime,
	}
}
