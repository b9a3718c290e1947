package sqlite

import (
	"context"

	"quest/internal/domain/entity"
	"quest/internal/infra/persistence/model"
)

// tokenRepository implements the domain.TokenRepository interface.
type tokenRepository struct {
	session sessionFunc
}

// FindTokens returns tokens in collection order.
func (repo *tokenRepository) FindTokens(ctx context.Context, filter entity.Filter) ([]*entity.Token, error) {
	db, err := repo.session(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.TokenModel{})
	if filter.AdventureID != nil {
		query = query.Where("adventure_id = ?", *filter.AdventureID)
	}

	var rows []*model.TokenModel
	if err := query.Order("token_order").Order("id").Find(&rows).Error; err != nil {
		return nil, translateError(err, "failed to find tokens")
	}

	return mapAll(rows, toTokenDomain), nil
}

func (repo *tokenRepository) CreateToken(ctx context.Context, token *entity.Token) error {
	db, err := repo.session(ctx)
	if err != nil {
		return err
	}

	row := fromTokenDomain(token)
	if err := db.Create(row).Error; err != nil {
		return translateError(err, "failed to create token")
	}
	token.ID = row.ID

	return nil
}

func (repo *tokenRepository) UpsertTokens(ctx context.Context, tokens []*entity.Token) (int, error) {
	return upsertEach(ctx, repo.session, tokens, fromTokenDomain, entity.KindToken)
}
