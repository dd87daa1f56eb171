package period

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang-kessan/internal/dto"
	"golang-kessan/internal/xbrl"
	"golang-kessan/pkg/logger"
	"golang-kessan/pkg/utils"
)

// deiPeriodMap translates the DEI TypeOfCurrentPeriodDEI element into a
// quarter. Semiannual filers report HY, which lands on the Q2 row.
var deiPeriodMap = map[string]dto.Quarter{
	"Q1": dto.QuarterQ1,
	"Q2": dto.QuarterQ2,
	"Q3": dto.QuarterQ3,
	"Q4": dto.QuarterQ4,
	"FY": dto.QuarterFY,
	"HY": dto.QuarterQ2,
}

var quarterlyReportPattern = regexp.MustCompile(`第([1-3])四半期`)
var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Resolution is the outcome of period resolution for one disclosure.
type Resolution struct {
	FiscalYear    int
	Quarter       dto.Quarter
	FiscalEndDate *time.Time
	Corrected     bool
}

// Resolver decides the (fiscal_year, quarter, fiscal_end_date) key of a
// disclosure from its title, summary metadata, and XBRL contexts. Sources
// disagree often enough that it applies a correction policy rather than
// trusting any single field.
type Resolver struct {
	log *logger.Logger
}

func NewResolver(log *logger.Logger) *Resolver {
	return &Resolver{log: log}
}

// TDnetInput bundles everything known about a TDnet disclosure before
// resolution.
type TDnetInput struct {
	Title         string
	AnnouncedAt   time.Time
	Meta          xbrl.SummaryMeta
	XBRLFiscalEnd *time.Time
}

// ResolveTDnet determines the record key for a TDnet earnings disclosure.
//
// The quarter comes from the summary's QuarterlyPeriod, then the DEI period
// type, then the title. For Q1-Q3 the fiscal end date computed from the
// title or the declared fiscal year end is trusted over the raw XBRL
// context, because interim attachments frequently tag the full-year end.
// For FY/Q4 the raw XBRL date wins and corrects the fiscal year instead.
// Corrections are logged, never treated as errors.
func (r *Resolver) ResolveTDnet(ctx context.Context, in TDnetInput) Resolution {
	quarter := r.resolveTDnetQuarter(in)
	fiscalYear := r.resolveTDnetFiscalYear(in)

	res := Resolution{FiscalYear: fiscalYear, Quarter: quarter}

	switch quarter {
	case dto.QuarterFY, dto.QuarterQ4:
		if in.XBRLFiscalEnd != nil {
			res.FiscalEndDate = in.XBRLFiscalEnd
			if in.XBRLFiscalEnd.Year() != fiscalYear {
				r.log.InfoContext(ctx, "Corrected fiscal year from XBRL period end",
					logger.IntField("title_fiscal_year", fiscalYear),
					logger.IntField("xbrl_fiscal_year", in.XBRLFiscalEnd.Year()),
					logger.StringField("title", in.Title),
				)
				res.FiscalYear = in.XBRLFiscalEnd.Year()
				res.Corrected = true
			}
			return res
		}
		res.FiscalEndDate = r.expectedQuarterEnd(in, quarter)
		return res

	default:
		expected := r.expectedQuarterEnd(in, quarter)
		if expected != nil {
			if in.XBRLFiscalEnd != nil && !in.XBRLFiscalEnd.Equal(*expected) {
				r.log.InfoContext(ctx, "Corrected quarter end date",
					logger.TimeField("xbrl_end", *in.XBRLFiscalEnd),
					logger.TimeField("corrected_end", *expected),
					logger.StringField("quarter", string(quarter)),
					logger.StringField("title", in.Title),
				)
				res.Corrected = true
			}
			res.FiscalEndDate = expected
			return res
		}
		res.FiscalEndDate = in.XBRLFiscalEnd
		return res
	}
}

func (r *Resolver) resolveTDnetQuarter(in TDnetInput) dto.Quarter {
	qp := strings.TrimSpace(in.Meta.QuarterlyPeriod)
	if qp == "1" || qp == "2" || qp == "3" {
		n, _ := strconv.Atoi(qp)
		return dto.QuarterFromNumber(n)
	}

	if q, ok := deiPeriodMap[strings.TrimSpace(in.Meta.TypeOfCurrentPeriod)]; ok {
		return q
	}

	title := in.Title
	if in.Meta.DocumentName != "" {
		title = in.Meta.DocumentName
	}
	_, quarter := DetectFiscalPeriod(title, in.AnnouncedAt)
	return quarter
}

func (r *Resolver) resolveTDnetFiscalYear(in TDnetInput) int {
	if fyEnd := strings.TrimSpace(in.Meta.FiscalYearEnd); isoDatePattern.MatchString(fyEnd) {
		if t, err := time.Parse("2006-01-02", fyEnd); err == nil {
			return t.Year()
		}
	}
	fiscalYear, _ := DetectFiscalPeriod(in.Title, in.AnnouncedAt)
	return fiscalYear
}

// expectedQuarterEnd computes the quarter end from the title first, then
// from the declared fiscal year end.
func (r *Resolver) expectedQuarterEnd(in TDnetInput, quarter dto.Quarter) *time.Time {
	if end := FiscalEndFromTitle(in.Title, quarter); end != nil {
		return end
	}
	if fyEnd := strings.TrimSpace(in.Meta.FiscalYearEnd); isoDatePattern.MatchString(fyEnd) {
		if t, err := time.Parse("2006-01-02", fyEnd); err == nil {
			return ComputeFiscalEndDate(utils.EndOfMonth(t.Year(), t.Month()), quarter)
		}
	}
	return nil
}

// ResolveEDINET determines fiscal year and quarter for an EDINET filing.
// The document type code decides the quarter: annual reports are FY,
// semiannual reports are Q2, quarterly reports carry the quarter number in
// their description and default to Q1 when it is missing.
func (r *Resolver) ResolveEDINET(ctx context.Context, doc dto.EDINETDocument) (int, dto.Quarter) {
	description := ""
	if doc.DocDescription != nil {
		description = NormalizeTitle(*doc.DocDescription)
	}

	var quarter dto.Quarter
	docType := ""
	if doc.DocTypeCode != nil {
		docType = *doc.DocTypeCode
	}
	switch docType {
	case dto.EDINETDocTypeAnnual:
		quarter = dto.QuarterFY
	case dto.EDINETDocTypeSemiAnnual:
		quarter = dto.QuarterQ2
	case dto.EDINETDocTypeQuarterly:
		if m := quarterlyReportPattern.FindStringSubmatch(description); m != nil {
			n, _ := strconv.Atoi(m[1])
			quarter = dto.QuarterFromNumber(n)
		} else {
			quarter = dto.QuarterQ1
			r.log.WarnContext(ctx, "Quarter number missing from description, assuming Q1",
				logger.StringField("doc_id", doc.DocID),
				logger.StringField("description", description),
			)
		}
	default:
		quarter = dto.QuarterFY
	}

	fiscalYear := 0
	if m := fiscalYearPattern.FindStringSubmatch(description); m != nil {
		fiscalYear, _ = strconv.Atoi(m[1])
	}
	if fiscalYear == 0 {
		fiscalYear = r.fiscalYearFromPeriod(doc)
	}

	return fiscalYear, quarter
}

// fiscalYearFromPeriod falls back to the filing period columns. A period
// starting in January belongs to a December year end in the same calendar
// year; any other start month closes in the following year.
func (r *Resolver) fiscalYearFromPeriod(doc dto.EDINETDocument) int {
	if doc.PeriodStart != nil && len(*doc.PeriodStart) >= 7 {
		if t, err := time.Parse("2006-01-02", *doc.PeriodStart); err == nil {
			if t.Month() == time.January {
				return t.Year()
			}
			return t.Year() + 1
		}
	}
	if doc.PeriodEnd != nil {
		if t, err := time.Parse("2006-01-02", *doc.PeriodEnd); err == nil {
			return t.Year()
		}
	}
	if len(doc.SubmitDateTime) >= 4 {
		if y, err := strconv.Atoi(doc.SubmitDateTime[:4]); err == nil {
			return y
		}
	}
	return 0
}
