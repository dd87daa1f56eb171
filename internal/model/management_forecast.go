package model

import "time"

// ManagementForecast stores company guidance. Quarter names the period the
// forecast targets (FY or Q2 cumulative), not the period it was announced
// in. AnnouncedDate is part of the key: a revised forecast lands on its own
// row, so guidance history survives revisions.
type ManagementForecast struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	Ticker        string    `gorm:"type:varchar(5);not null;uniqueIndex:idx_management_forecasts_key,priority:1" json:"ticker"`
	FiscalYear    int       `gorm:"not null;uniqueIndex:idx_management_forecasts_key,priority:2" json:"fiscal_year"`
	Quarter       string    `gorm:"type:varchar(2);not null;uniqueIndex:idx_management_forecasts_key,priority:3" json:"quarter"`
	AnnouncedDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_management_forecasts_key,priority:4" json:"announced_date"`

	ForecastType string `gorm:"type:varchar(10);not null" json:"forecast_type"`

	Revenue          *float64 `gorm:"type:numeric" json:"revenue"`
	OperatingIncome  *float64 `gorm:"type:numeric" json:"operating_income"`
	OrdinaryIncome   *float64 `gorm:"type:numeric" json:"ordinary_income"`
	NetIncome        *float64 `gorm:"type:numeric" json:"net_income"`
	EPS              *float64 `gorm:"type:numeric;column:eps" json:"eps"`
	DividendPerShare *float64 `gorm:"type:numeric" json:"dividend_per_share"`

	RevisionDirection *string `gorm:"type:varchar(10)" json:"revision_direction"`
	RevisionReason    *string `gorm:"type:text" json:"revision_reason"`

	Source string `gorm:"type:varchar(20);not null" json:"source"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ManagementForecast) TableName() string {
	return "management_forecasts"
}
