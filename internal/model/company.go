package model

import "time"

// Company is the ticker master. Ingestion refuses rows for tickers that are
// not registered here.
type Company struct {
	Ticker    string    `gorm:"type:varchar(5);primaryKey" json:"ticker"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Sector    string    `gorm:"type:varchar(100)" json:"sector"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Company) TableName() string {
	return "companies"
}
