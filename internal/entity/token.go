package entity

import "time"

// DexToken token profile, one row per address
type DexToken struct {
	Id           int64     `gorm:"primaryKey;autoIncrement"`
	TokenAddress string    `gorm:"size:255;uniqueIndex"`
	ChainId      string    `gorm:"size:50"`
	Url          string    `gorm:"size:255"`
	Icon         string    `gorm:"size:255"`
	Description  string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"index"`
}

func (DexToken) TableName() string {
	return "dex_tokens"
}
