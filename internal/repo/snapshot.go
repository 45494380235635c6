package repo

import (
	"context"

	"github.com/KNICEX/market-alert/internal/entity"
	"gorm.io/gorm"
)

const insertBatchSize = 500

type SnapshotRepo interface {
	Create(ctx context.Context, snapshot entity.TokenSnapshot) error
	// Recent returns the latest limit rows, newest first.
	Recent(ctx context.Context, limit int) ([]entity.TokenSnapshot, error)
}

type snapshotRepo struct {
	db *gorm.DB
}

func NewSnapshotRepo(db *gorm.DB) SnapshotRepo {
	return &snapshotRepo{
		db: db,
	}
}

func (r *snapshotRepo) Create(ctx context.Context, snapshot entity.TokenSnapshot) error {
	return r.db.WithContext(ctx).Create(&snapshot).Error
}

func (r *snapshotRepo) Recent(ctx context.Context, limit int) ([]entity.TokenSnapshot, error) {
	var snapshots []entity.TokenSnapshot
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Limit(limit).Find(&snapshots).Error
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}

type TickerRepo interface {
	CreateBatch(ctx context.Context, tickers []entity.TickerSnapshot) error
}

type tickerRepo struct {
	db *gorm.DB
}

func NewTickerRepo(db *gorm.DB) TickerRepo {
	return &tickerRepo{
		db: db,
	}
}

func (r *tickerRepo) CreateBatch(ctx context.Context, tickers []entity.TickerSnapshot) error {
	if len(tickers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(tickers, insertBatchSize).Error
}
