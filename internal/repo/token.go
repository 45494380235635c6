package repo

import (
	"context"
	"fmt"

	"github.com/KNICEX/market-alert/internal/entity"
	"github.com/KNICEX/market-alert/internal/errs"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TokenRepo interface {
	// Create inserts the token, returns errs.ErrDuplicateKey when the address already exists.
	Create(ctx context.Context, token entity.DexToken) error
	ListAddresses(ctx context.Context) ([]string, error)
}

type tokenRepo struct {
	db *gorm.DB
}

func NewTokenRepo(db *gorm.DB) TokenRepo {
	return &tokenRepo{
		db: db,
	}
}

func (r *tokenRepo) Create(ctx context.Context, token entity.DexToken) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "token_address"}}, DoNothing: true}).
		Create(&token)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: token %s", errs.ErrDuplicateKey, token.TokenAddress)
	}
	return nil
}

func (r *tokenRepo) ListAddresses(ctx context.Context) ([]string, error) {
	var addresses []string
	err := r.db.WithContext(ctx).Model(&entity.DexToken{}).Order("id").Pluck("token_address", &addresses).Error
	if err != nil {
		return nil, err
	}
	return addresses, nil
}
