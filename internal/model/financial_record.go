package model

import (
	"time"
)

// FinancialRecord is the canonical reconciled row for one reporting period
// of one company. Metric values are cumulative from the start of the fiscal
// year and stored in millions of yen, except EPS which stays in yen.
// Nil means the figure was never disclosed, never zero.
type FinancialRecord struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	Ticker     string `gorm:"type:varchar(5);not null;uniqueIndex:idx_financial_records_key,priority:1" json:"ticker"`
	FiscalYear int    `gorm:"not null;uniqueIndex:idx_financial_records_key,priority:2" json:"fiscal_year"`
	Quarter    string `gorm:"type:varchar(2);not null;uniqueIndex:idx_financial_records_key,priority:3" json:"quarter"`

	Revenue         *float64 `gorm:"type:numeric" json:"revenue"`
	GrossProfit     *float64 `gorm:"type:numeric" json:"gross_profit"`
	OperatingIncome *float64 `gorm:"type:numeric" json:"operating_income"`
	OrdinaryIncome  *float64 `gorm:"type:numeric" json:"ordinary_income"`
	NetIncome       *float64 `gorm:"type:numeric" json:"net_income"`
	EPS             *float64 `gorm:"type:numeric;column:eps" json:"eps"`

	FiscalEndDate    *time.Time `gorm:"type:date" json:"fiscal_end_date"`
	AnnouncementDate *time.Time `gorm:"type:date" json:"announcement_date"`
	AnnouncementTime *string    `gorm:"type:varchar(8)" json:"announcement_time"`
	Source           string     `gorm:"type:varchar(20);not null" json:"source"`
	SourceDocumentID *string    `gorm:"type:varchar(100)" json:"source_document_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (FinancialRecord) TableName() string {
	return "financial_records"
}

type GetFinancialRecordsParam struct {
	Ticker     string
	FiscalYear *int
	Quarter    *string
}
