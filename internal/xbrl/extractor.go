package xbrl

import (
	"strings"
	"time"
)

// Financials holds the extracted current-period P/L items. Monetary values
// are in millions of yen, EPS stays in yen. Nil means not disclosed.
type Financials struct {
	Revenue         *float64
	GrossProfit     *float64
	OperatingIncome *float64
	OrdinaryIncome  *float64
	NetIncome       *float64
	EPS             *float64
	FiscalEndDate   *time.Time
}

func (f *Financials) fieldRef(field string) **float64 {
	switch field {
	case FieldRevenue:
		return &f.Revenue
	case FieldGrossProfit:
		return &f.GrossProfit
	case FieldOperatingIncome:
		return &f.OperatingIncome
	case FieldOrdinaryIncome:
		return &f.OrdinaryIncome
	case FieldNetIncome:
		return &f.NetIncome
	case FieldEPS:
		return &f.EPS
	}
	return nil
}

// IsEmpty reports whether no metric was extracted at all.
func (f *Financials) IsEmpty() bool {
	return f.Revenue == nil && f.GrossProfit == nil && f.OperatingIncome == nil &&
		f.OrdinaryIncome == nil && f.NetIncome == nil && f.EPS == nil
}

// isCurrentPeriodContext keeps current-period facts only. Annual reports use
// Current* contexts, semiannual reports use Interim*; anything mentioning
// prior belongs to the comparative column.
func isCurrentPeriodContext(contextRef string) bool {
	ctx := strings.ToLower(contextRef)
	if strings.Contains(ctx, "prior") {
		return false
	}
	return strings.Contains(ctx, "current") || strings.Contains(ctx, "interim")
}

// ExtractFinancials maps the document's facts onto canonical fields. The
// first matching fact wins per field; monetary values are converted from
// yen to millions.
func ExtractFinancials(doc *Document) Financials {
	var out Financials

	for _, fact := range doc.Facts {
		if !isSupportedNamespace(fact.Name) {
			continue
		}
		if !isCurrentPeriodContext(fact.ContextRef) {
			continue
		}

		field := mappedField(fact.Name.Local)
		if field == "" {
			continue
		}

		ref := out.fieldRef(field)
		if ref == nil || *ref != nil {
			continue
		}

		value, err := fact.NumericValue()
		if err != nil || value == nil {
			continue
		}

		if field != FieldEPS {
			millions := *value / 1_000_000
			value = &millions
		}
		*ref = value
	}

	out.FiscalEndDate = extractFiscalEndDate(doc)
	return out
}

// extractFiscalEndDate reads the fiscal period end from context definitions.
// CurrentYearInstant is the period-end point in time and the most reliable;
// CurrentYearDuration's endDate is the fallback. Contexts carrying a
// scenario are dimension members and are skipped.
func extractFiscalEndDate(doc *Document) *time.Time {
	for _, ctx := range doc.Contexts {
		if ctx.HasScenario {
			continue
		}
		if strings.Contains(ctx.ID, "CurrentYear") && strings.Contains(ctx.ID, "Instant") && ctx.Period.Instant != "" {
			if t, err := time.Parse("2006-01-02", ctx.Period.Instant); err == nil {
				return &t
			}
		}
	}
	for _, ctx := range doc.Contexts {
		if ctx.HasScenario {
			continue
		}
		if strings.Contains(ctx.ID, "CurrentYear") && strings.Contains(ctx.ID, "Duration") && ctx.Period.EndDate != "" {
			if t, err := time.Parse("2006-01-02", ctx.Period.EndDate); err == nil {
				return &t
			}
		}
	}
	return nil
}

// SummaryMeta is the document metadata carried by TDnet earnings summary
// attachments (tse-ed-t taxonomy plus DEI elements).
type SummaryMeta struct {
	SecuritiesCode      string
	DocumentName        string
	FilingDate          string
	FiscalYearEnd       string
	QuarterlyPeriod     string
	TypeOfCurrentPeriod string
}

// ExtractSummaryMeta collects the metadata elements. The first non-empty
// value wins; TDnet summaries repeat them across member contexts.
func ExtractSummaryMeta(doc *Document) SummaryMeta {
	var meta SummaryMeta
	for _, fact := range doc.Facts {
		value := strings.TrimSpace(fact.Value)
		if value == "" {
			continue
		}
		switch fact.Name.Local {
		case "SecuritiesCode":
			if meta.SecuritiesCode == "" {
				meta.SecuritiesCode = value
			}
		case "DocumentName":
			if meta.DocumentName == "" {
				meta.DocumentName = value
			}
		case "FilingDate":
			if meta.FilingDate == "" {
				meta.FilingDate = value
			}
		case "FiscalYearEnd":
			if meta.FiscalYearEnd == "" {
				meta.FiscalYearEnd = value
			}
		case "QuarterlyPeriod":
			if meta.QuarterlyPeriod == "" {
				meta.QuarterlyPeriod = value
			}
		case "TypeOfCurrentPeriodDEI":
			if meta.TypeOfCurrentPeriod == "" {
				meta.TypeOfCurrentPeriod = value
			}
		}
	}
	return meta
}

// Forecast holds management guidance figures from a TDnet summary. Values
// in millions of yen except EPS and dividend which stay in yen.
type Forecast struct {
	Revenue          *float64
	OperatingIncome  *float64
	OrdinaryIncome   *float64
	NetIncome        *float64
	EPS              *float64
	DividendPerShare *float64
}

func (f *Forecast) IsEmpty() bool {
	return f.Revenue == nil && f.OperatingIncome == nil && f.OrdinaryIncome == nil &&
		f.NetIncome == nil && f.EPS == nil && f.DividendPerShare == nil
}

var forecastFields = map[string]string{
	"NetSales":                               FieldRevenue,
	"Sales":                                  FieldRevenue,
	"NetSalesIFRS":                           FieldRevenue,
	"SalesIFRS":                              FieldRevenue,
	"OperatingRevenues":                      FieldRevenue,
	"OperatingIncome":                        FieldOperatingIncome,
	"OperatingProfit":                        FieldOperatingIncome,
	"OperatingIncomeIFRS":                    FieldOperatingIncome,
	"OrdinaryIncome":                         FieldOrdinaryIncome,
	"OrdinaryProfit":                         FieldOrdinaryIncome,
	"ProfitBeforeTaxIFRS":                    FieldOrdinaryIncome,
	"NetIncome":                              FieldNetIncome,
	"ProfitAttributableToOwnersOfParent":     FieldNetIncome,
	"ProfitAttributableToOwnersOfParentIFRS": FieldNetIncome,
	"NetIncomePerShare":                      FieldEPS,
	"BasicEarningsPerShareIFRS":              FieldEPS,
}

// ExtractForecast pulls guidance figures, identified by forecast member
// contexts. Dividend figures come from the DividendPerShare elements on
// annual contexts.
func ExtractForecast(doc *Document) Forecast {
	var out Forecast

	assign := func(field string, fact Fact, perShare bool) {
		var ref **float64
		switch field {
		case FieldRevenue:
			ref = &out.Revenue
		case FieldOperatingIncome:
			ref = &out.OperatingIncome
		case FieldOrdinaryIncome:
			ref = &out.OrdinaryIncome
		case FieldNetIncome:
			ref = &out.NetIncome
		case FieldEPS:
			ref = &out.EPS
		}
		if ref == nil || *ref != nil {
			return
		}
		value, err := fact.NumericValue()
		if err != nil || value == nil {
			return
		}
		if !perShare {
			millions := *value / 1_000_000
			value = &millions
		}
		*ref = value
	}

	for _, fact := range doc.Facts {
		if !isSupportedNamespace(fact.Name) {
			continue
		}
		ctx := strings.ToLower(fact.ContextRef)
		if !strings.Contains(ctx, "forecast") {
			continue
		}
		if strings.Contains(ctx, "prior") {
			continue
		}

		if fact.Name.Local == "DividendPerShare" || fact.Name.Local == "DistributionsPerUnit" {
			if out.DividendPerShare == nil && strings.Contains(ctx, "annual") {
				if value, err := fact.NumericValue(); err == nil && value != nil {
					out.DividendPerShare = value
				}
			}
			continue
		}

		field, ok := forecastFields[fact.Name.Local]
		if !ok {
			continue
		}
		assign(field, fact, field == FieldEPS)
	}

	return out
}
