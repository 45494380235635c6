package repo

import (
	"context"
	"errors"

	"github.com/KNICEX/market-alert/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AlertStateRepo interface {
	// Find returns found=false when the identifier has never alerted.
	Find(ctx context.Context, identifier string) (state entity.AlertState, found bool, err error)
	Upsert(ctx context.Context, state entity.AlertState) error
}

type alertStateRepo struct {
	db *gorm.DB
}

func NewAlertStateRepo(db *gorm.DB) AlertStateRepo {
	return &alertStateRepo{
		db: db,
	}
}

func (r *alertStateRepo) Find(ctx context.Context, identifier string) (entity.AlertState, bool, error) {
	var state entity.AlertState
	err := r.db.WithContext(ctx).Where("identifier = ?", identifier).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.AlertState{}, false, nil
	}
	if err != nil {
		return entity.AlertState{}, false, err
	}
	return state, true, nil
}

func (r *alertStateRepo) Upsert(ctx context.Context, state entity.AlertState) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "identifier"}}, UpdateAll: true}).
		Create(&state).Error
}

type WatchLevelRepo interface {
	FindWatching(ctx context.Context) ([]entity.WatchLevel, error)
}

type watchLevelRepo struct {
	db *gorm.DB
}

func NewWatchLevelRepo(db *gorm.DB) WatchLevelRepo {
	return &watchLevelRepo{
		db: db,
	}
}

func (r *watchLevelRepo) FindWatching(ctx context.Context) ([]entity.WatchLevel, error) {
	var levels []entity.WatchLevel
	err := r.db.WithContext(ctx).Where("watch = ?", true).Find(&levels).Error
	if err != nil {
		return nil, err
	}
	return levels, nil
}
