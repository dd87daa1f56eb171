package dto

// JQuantsTokenResponse is returned by /token/auth_refresh.
type JQuantsTokenResponse struct {
	IDToken string `json:"idToken"`
}

// JQuantsStatementsResponse wraps /fins/statements. All metric fields come
// back as strings, empty when the company did not disclose the figure.
type JQuantsStatementsResponse struct {
	Statements    []JQuantsStatement `json:"statements"`
	PaginationKey string             `json:"pagination_key"`
}

type JQuantsStatement struct {
	DisclosedDate        string `json:"DisclosedDate"`
	DisclosedTime        string `json:"DisclosedTime"`
	LocalCode            string `json:"LocalCode"`
	DisclosureNumber     string `json:"DisclosureNumber"`
	TypeOfDocument       string `json:"TypeOfDocument"`
	TypeOfCurrentPeriod  string `json:"TypeOfCurrentPeriod"`
	CurrentPeriodEndDate string `json:"CurrentPeriodEndDate"`

	CurrentFiscalYearEndDate string `json:"CurrentFiscalYearEndDate"`
	NextFiscalYearEndDate    string `json:"NextFiscalYearEndDate"`

	NetSales         string `json:"NetSales"`
	OperatingProfit  string `json:"OperatingProfit"`
	OrdinaryProfit   string `json:"OrdinaryProfit"`
	Profit           string `json:"Profit"`
	EarningsPerShare string `json:"EarningsPerShare"`

	ForecastNetSales                   string `json:"ForecastNetSales"`
	ForecastOperatingProfit            string `json:"ForecastOperatingProfit"`
	ForecastOrdinaryProfit             string `json:"ForecastOrdinaryProfit"`
	ForecastProfit                     string `json:"ForecastProfit"`
	ForecastEarningsPerShare           string `json:"ForecastEarningsPerShare"`
	ForecastDividendPerShareAnnual     string `json:"ForecastDividendPerShareAnnual"`
	ForecastNetSales2ndQuarter         string `json:"ForecastNetSales2ndQuarter"`
	ForecastOperatingProfit2ndQuarter  string `json:"ForecastOperatingProfit2ndQuarter"`
	ForecastOrdinaryProfit2ndQuarter   string `json:"ForecastOrdinaryProfit2ndQuarter"`
	ForecastProfit2ndQuarter           string `json:"ForecastProfit2ndQuarter"`
	ForecastEarningsPerShare2ndQuarter string `json:"ForecastEarningsPerShare2ndQuarter"`
}

type GetJQuantsStatementsParam struct {
	Code string // 4-digit ticker, the API itself takes the 5-digit local code
	Date string // YYYY-MM-DD, mutually exclusive with Code
}
