package model

// Read models over the comparison views. The arithmetic lives in SQL so the
// API and ad-hoc queries agree; see the view migrations.

type YoYComparisonRow struct {
	Ticker     string `json:"ticker"`
	FiscalYear int    `json:"fiscal_year"`
	Quarter    string `json:"quarter"`

	Revenue          *float64 `json:"revenue"`
	RevenuePrevYear  *float64 `gorm:"column:revenue_prev_year" json:"revenue_prev_year"`
	RevenueYoYChange *float64 `gorm:"column:revenue_yoy_change" json:"revenue_yoy_change"`
	RevenueYoYPct    *float64 `gorm:"column:revenue_yoy_pct" json:"revenue_yoy_pct"`

	OperatingIncome          *float64 `json:"operating_income"`
	OperatingIncomePrevYear  *float64 `gorm:"column:operating_income_prev_year" json:"operating_income_prev_year"`
	OperatingIncomeYoYChange *float64 `gorm:"column:operating_income_yoy_change" json:"operating_income_yoy_change"`
	OperatingIncomeYoYPct    *float64 `gorm:"column:operating_income_yoy_pct" json:"operating_income_yoy_pct"`

	OrdinaryIncome          *float64 `json:"ordinary_income"`
	OrdinaryIncomePrevYear  *float64 `gorm:"column:ordinary_income_prev_year" json:"ordinary_income_prev_year"`
	OrdinaryIncomeYoYChange *float64 `gorm:"column:ordinary_income_yoy_change" json:"ordinary_income_yoy_change"`
	OrdinaryIncomeYoYPct    *float64 `gorm:"column:ordinary_income_yoy_pct" json:"ordinary_income_yoy_pct"`

	NetIncome          *float64 `json:"net_income"`
	NetIncomePrevYear  *float64 `gorm:"column:net_income_prev_year" json:"net_income_prev_year"`
	NetIncomeYoYChange *float64 `gorm:"column:net_income_yoy_change" json:"net_income_yoy_change"`
	NetIncomeYoYPct    *float64 `gorm:"column:net_income_yoy_pct" json:"net_income_yoy_pct"`

	EPS          *float64 `gorm:"column:eps" json:"eps"`
	EPSPrevYear  *float64 `gorm:"column:eps_prev_year" json:"eps_prev_year"`
	EPSYoYChange *float64 `gorm:"column:eps_yoy_change" json:"eps_yoy_change"`
	EPSYoYPct    *float64 `gorm:"column:eps_yoy_pct" json:"eps_yoy_pct"`
}

func (YoYComparisonRow) TableName() string {
	return "v_financials_yoy"
}

type StandaloneQuarterRow struct {
	Ticker     string `json:"ticker"`
	FiscalYear int    `json:"fiscal_year"`
	Quarter    string `json:"quarter"`

	RevenueStandalone         *float64 `gorm:"column:revenue_standalone" json:"revenue_standalone"`
	GrossProfitStandalone     *float64 `gorm:"column:gross_profit_standalone" json:"gross_profit_standalone"`
	OperatingIncomeStandalone *float64 `gorm:"column:operating_income_standalone" json:"operating_income_standalone"`
	OrdinaryIncomeStandalone  *float64 `gorm:"column:ordinary_income_standalone" json:"ordinary_income_standalone"`
	NetIncomeStandalone       *float64 `gorm:"column:net_income_standalone" json:"net_income_standalone"`

	HasPriorQuarter bool `gorm:"column:has_prior_quarter" json:"has_prior_quarter"`
}

func (StandaloneQuarterRow) TableName() string {
	return "v_financials_standalone"
}

type QoQComparisonRow struct {
	Ticker     string `json:"ticker"`
	FiscalYear int    `json:"fiscal_year"`
	Quarter    string `json:"quarter"`

	RevenueStandalone  *float64 `gorm:"column:revenue_standalone" json:"revenue_standalone"`
	RevenuePrevQuarter *float64 `gorm:"column:revenue_prev_quarter" json:"revenue_prev_quarter"`
	RevenueQoQChange   *float64 `gorm:"column:revenue_qoq_change" json:"revenue_qoq_change"`
	RevenueQoQPct      *float64 `gorm:"column:revenue_qoq_pct" json:"revenue_qoq_pct"`

	GrossProfitStandalone  *float64 `gorm:"column:gross_profit_standalone" json:"gross_profit_standalone"`
	GrossProfitPrevQuarter *float64 `gorm:"column:gross_profit_prev_quarter" json:"gross_profit_prev_quarter"`
	GrossProfitQoQChange   *float64 `gorm:"column:gross_profit_qoq_change" json:"gross_profit_qoq_change"`
	GrossProfitQoQPct      *float64 `gorm:"column:gross_profit_qoq_pct" json:"gross_profit_qoq_pct"`

	OperatingIncomeStandalone  *float64 `gorm:"column:operating_income_standalone" json:"operating_income_standalone"`
	OperatingIncomePrevQuarter *float64 `gorm:"column:operating_income_prev_quarter" json:"operating_income_prev_quarter"`
	OperatingIncomeQoQChange   *float64 `gorm:"column:operating_income_qoq_change" json:"operating_income_qoq_change"`
	OperatingIncomeQoQPct      *float64 `gorm:"column:operating_income_qoq_pct" json:"operating_income_qoq_pct"`

	OrdinaryIncomeStandalone  *float64 `gorm:"column:ordinary_income_standalone" json:"ordinary_income_standalone"`
	OrdinaryIncomePrevQuarter *float64 `gorm:"column:ordinary_income_prev_quarter" json:"ordinary_income_prev_quarter"`
	OrdinaryIncomeQoQChange   *float64 `gorm:"column:ordinary_income_qoq_change" json:"ordinary_income_qoq_change"`
	OrdinaryIncomeQoQPct      *float64 `gorm:"column:ordinary_income_qoq_pct" json:"ordinary_income_qoq_pct"`

	NetIncomeStandalone  *float64 `gorm:"column:net_income_standalone" json:"net_income_standalone"`
	NetIncomePrevQuarter *float64 `gorm:"column:net_income_prev_quarter" json:"net_income_prev_quarter"`
	NetIncomeQoQChange   *float64 `gorm:"column:net_income_qoq_change" json:"net_income_qoq_change"`
	NetIncomeQoQPct      *float64 `gorm:"column:net_income_qoq_pct" json:"net_income_qoq_pct"`
}

func (QoQComparisonRow) TableName() string {
	return "v_financials_qoq"
}
