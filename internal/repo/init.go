package repo

import (
	"github.com/KNICEX/market-alert/internal/entity"
	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.DexToken{},
		&entity.TokenSnapshot{},
		&entity.TickerSnapshot{},
		&entity.AlertState{},
		&entity.WatchLevel{},
	)
}
