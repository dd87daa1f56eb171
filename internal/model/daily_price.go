package model

import "time"

type DailyPrice struct {
	ID     uint      `gorm:"primaryKey" json:"-"`
	Ticker string    `gorm:"type:varchar(5);not null;uniqueIndex:idx_daily_prices_key,priority:1" json:"ticker"`
	Date   time.Time `gorm:"type:date;not null;uniqueIndex:idx_daily_prices_key,priority:2" json:"date"`

	Open   float64 `gorm:"type:numeric;not null" json:"open"`
	High   float64 `gorm:"type:numeric;not null" json:"high"`
	Low    float64 `gorm:"type:numeric;not null" json:"low"`
	Close  float64 `gorm:"type:numeric;not null" json:"close"`
	Volume int64   `gorm:"not null" json:"volume"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (DailyPrice) TableName() string {
	return "daily_prices"
}
