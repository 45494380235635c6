package ioc

import (
	"fmt"
	"time"

	"github.com/KNICEX/market-alert/internal/errs"
	"github.com/spf13/viper"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB() *gorm.DB {
	driver := viper.GetString("db.driver")
	dsn := viper.GetString("db.dsn")
	if dsn == "" {
		panic(fmt.Errorf("%w: db.dsn is required", errs.ErrConfig))
	}

	var dialector gorm.Dialector
	switch driver {
	case "", "sqlite":
		dialector = sqlite.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		panic(fmt.Errorf("%w: unsupported db.driver %q", errs.ErrConfig, driver))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		panic(fmt.Errorf("open %s database: %w", driver, err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	if driver == "mysql" {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetConnMaxLifetime(time.Hour)
	} else {
		// sqlite 单写
		sqlDB.SetMaxOpenConns(1)
	}
	return db
}
