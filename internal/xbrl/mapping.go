package xbrl

import "strings"

// Canonical field names the extractor populates.
const (
	FieldRevenue         = "revenue"
	FieldGrossProfit     = "gross_profit"
	FieldOperatingIncome = "operating_income"
	FieldOrdinaryIncome  = "ordinary_income"
	FieldNetIncome       = "net_income"
	FieldEPS             = "eps"
)

// Namespace patterns for Japanese GAAP filings. jpcrp_cor carries the
// business-summary items (EPS among them) in annual reports.
var jgaapNamespacePatterns = []string{
	"jppfs_cor",
	"jpcrp_cor",
	"http://disclosure.edinet-fsa.go.jp/taxonomy/jppfs",
}

// Namespace patterns for IFRS filings plus the TSE earnings-summary
// taxonomy used by TDnet attachments.
var ifrsNamespacePatterns = []string{
	"ifrs-full",
	"ifrs_cor",
	"jpcif_cor",
	"jpigp_cor",
	"tse-ed-t",
	"http://xbrl.ifrs.org/taxonomy",
}

// jgaapFields maps element local names to canonical fields for Japanese
// GAAP. Industry taxonomies name the revenue line differently (banks report
// ordinary income, construction reports completed contracts, and so on),
// which is why the revenue list is long.
var jgaapFields = map[string]string{
	"NetSales":         FieldRevenue,
	"Revenue":          FieldRevenue,
	"OperatingRevenue": FieldRevenue,

	"OperatingRevenue1":                             FieldRevenue,
	"OperatingRevenue2":                             FieldRevenue,
	"NetSalesOfCompletedConstructionContracts":      FieldRevenue,
	"NetSalesOfCompletedConstructionContractsCNS":   FieldRevenue,
	"NetSalesAndOperatingRevenue":                   FieldRevenue,
	"NetSalesAndOperatingRevenue2":                  FieldRevenue,
	"BusinessRevenue":                               FieldRevenue,
	"OperatingRevenueELE":                           FieldRevenue,
	"ShippingBusinessRevenueWAT":                    FieldRevenue,
	"OperatingRevenueSEC":                           FieldRevenue,
	"OperatingRevenueSPF":                           FieldRevenue,
	"OrdinaryIncomeBNK":                             FieldRevenue,
	"OrdinaryIncomeINS":                             FieldRevenue,
	"OperatingIncomeINS":                            FieldRevenue,
	"TotalOperatingRevenue":                         FieldRevenue,
	"OperatingRevenueINV":                           FieldRevenue,
	"OperatingRevenueIVT":                           FieldRevenue,
	"OperatingRevenueCMD":                           FieldRevenue,

	"NetSalesSummaryOfBusinessResults":                                 FieldRevenue,
	"OperatingRevenue1SummaryOfBusinessResults":                        FieldRevenue,
	"OperatingRevenue2SummaryOfBusinessResults":                        FieldRevenue,
	"NetSalesOfCompletedConstructionContractsSummaryOfBusinessResults": FieldRevenue,
	"NetSalesAndOperatingRevenueSummaryOfBusinessResults":              FieldRevenue,
	"BusinessRevenueSummaryOfBusinessResults":                          FieldRevenue,
	"OrdinaryIncomeBNKSummaryOfBusinessResults":                        FieldRevenue,
	"OrdinaryIncomeINSSummaryOfBusinessResults":                        FieldRevenue,
	"RevenueIFRSSummaryOfBusinessResults":                              FieldRevenue,
	"RevenuesUSGAAPSummaryOfBusinessResults":                           FieldRevenue,

	"GrossProfit": FieldGrossProfit,
	"GrossProfitOnCompletedConstructionContracts":    FieldGrossProfit,
	"GrossProfitOnCompletedConstructionContractsCNS": FieldGrossProfit,
	"NetOperatingRevenueSEC":                         FieldGrossProfit,
	"OperatingGrossProfit":                           FieldGrossProfit,
	"OperatingGrossProfitWAT":                        FieldGrossProfit,

	"OperatingIncome": FieldOperatingIncome,
	"OperatingProfit": FieldOperatingIncome,
	"OperatingProfitLossIFRSSummaryOfBusinessResults": FieldOperatingIncome,

	"OrdinaryIncome": FieldOrdinaryIncome,
	"OrdinaryProfit": FieldOrdinaryIncome,
	"ProfitLossBeforeTaxIFRSSummaryOfBusinessResults":   FieldOrdinaryIncome,
	"ProfitLossBeforeTaxUSGAAPSummaryOfBusinessResults": FieldOrdinaryIncome,

	"ProfitLoss":                            FieldNetIncome,
	"NetIncome":                             FieldNetIncome,
	"ProfitLossAttributableToOwnersOfParent": FieldNetIncome,
	"ProfitLossAttributableToOwnersOfParentIFRSSummaryOfBusinessResults":  FieldNetIncome,
	"NetIncomeLossAttributableToOwnersOfParentUSGAAPSummaryOfBusinessResults": FieldNetIncome,

	"BasicEarningsLossPerShare":                           FieldEPS,
	"EarningsPerShare":                                    FieldEPS,
	"BasicEarningsLossPerShareSummaryOfBusinessResults":   FieldEPS,
	"DilutedEarningsPerShareSummaryOfBusinessResults":     FieldEPS,
	"BasicEarningsLossPerShareUSGAAPSummaryOfBusinessResults":   FieldEPS,
	"DilutedEarningsLossPerShareUSGAAPSummaryOfBusinessResults": FieldEPS,
}

// ifrsFields covers IFRS filers and the tse-ed-t earnings-summary elements.
var ifrsFields = map[string]string{
	"Revenue":                           FieldRevenue,
	"SalesIFRS":                         FieldRevenue,
	"RevenueFromContractsWithCustomers": FieldRevenue,
	"RevenueIFRS":                       FieldRevenue,
	"Revenue2IFRS":                      FieldRevenue,
	"NetSalesAndOperatingRevenueIFRS":   FieldRevenue,
	"OperatingRevenueIFRS":              FieldRevenue,
	"TotalNetRevenuesIFRS":              FieldRevenue,
	"OperatingRevenues":                 FieldRevenue,
	"OrdinaryRevenuesBK":                FieldRevenue,
	"OrdinaryRevenuesIN":                FieldRevenue,
	"OperatingRevenuesSE":               FieldRevenue,
	"NetSalesIFRS":                      FieldRevenue,
	"OperatingRevenuesIFRS":             FieldRevenue,
	"NetSalesUS":                        FieldRevenue,

	"GrossProfit":     FieldGrossProfit,
	"GrossProfitIFRS": FieldGrossProfit,

	"ProfitLossFromOperatingActivities": FieldOperatingIncome,
	"OperatingProfitLoss":               FieldOperatingIncome,
	"OperatingProfitLossIFRS":           FieldOperatingIncome,
	"OperatingIncomeIFRS":               FieldOperatingIncome,
	"OperatingIncomeUS":                 FieldOperatingIncome,

	"ProfitLossBeforeTax":     FieldOrdinaryIncome,
	"ProfitLossBeforeTaxIFRS": FieldOrdinaryIncome,
	"ProfitBeforeTaxIFRS":     FieldOrdinaryIncome,

	"ProfitLossAttributableToOwnersOfParent": FieldNetIncome,
	"ProfitLoss":                             FieldNetIncome,
	"ProfitLossAttributableToOwnersOfParentIFRS": FieldNetIncome,
	"ProfitAttributableToOwnersOfParentIFRS":     FieldNetIncome,
	"ProfitAttributableToOwnersOfParent":         FieldNetIncome,
	"ProfitLossIFRS":                             FieldNetIncome,
	"ProfitIFRS":                                 FieldNetIncome,
	"NetIncomeUS":                                FieldNetIncome,

	"BasicEarningsLossPerShare":               FieldEPS,
	"DilutedEarningsLossPerShare":             FieldEPS,
	"BasicEarningsPerShareIFRS":               FieldEPS,
	"BasicEarningsLossPerShareIFRS":           FieldEPS,
	"BasicEarningsLossPerShareIFRSSummaryOfBusinessResults":   FieldEPS,
	"DilutedEarningsLossPerShareIFRSSummaryOfBusinessResults": FieldEPS,
	"NetIncomePerShare":                       FieldEPS,
	"DilutedNetIncomePerShare":                FieldEPS,
	"DilutedEarningsPerShareIFRS":             FieldEPS,
	"DilutedEarningsLossPerShareIFRS":         FieldEPS,
	"NetIncomePerShareUS":                     FieldEPS,
	"BasicAndDilutedEarningsLossPerShareIFRS": FieldEPS,
}

func matchesAny(s string, patterns []string) bool {
	if s == "" {
		return false
	}
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func isJGAAPNamespace(name QName) bool {
	return matchesAny(name.Prefix, jgaapNamespacePatterns) || matchesAny(name.Space, jgaapNamespacePatterns)
}

func isIFRSNamespace(name QName) bool {
	return matchesAny(name.Prefix, ifrsNamespacePatterns) || matchesAny(name.Space, ifrsNamespacePatterns)
}

func isSupportedNamespace(name QName) bool {
	return isJGAAPNamespace(name) || isIFRSNamespace(name)
}

// mappedField resolves a local name against the JGAAP table first, then the
// IFRS table. Empty string when the element is not a mapped P/L item.
func mappedField(local string) string {
	if field, ok := jgaapFields[local]; ok {
		return field
	}
	if field, ok := ifrsFields[local]; ok {
		return field
	}
	return ""
}
