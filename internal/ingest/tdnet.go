package ingest

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"golang-kessan/internal/dto"
	"golang-kessan/internal/model"
	"golang-kessan/internal/period"
	"golang-kessan/internal/xbrl"
	"golang-kessan/pkg/logger"
	"golang-kessan/pkg/utils"
)

// IngestTDnet processes one day of TDnet disclosures. Every disclosure is
// recorded as an announcement; the ones that are earnings summaries with an
// XBRL attachment also feed the financial pipeline.
func (s *service) IngestTDnet(ctx context.Context, date time.Time) (Stats, error) {
	var stats Stats

	rows, err := s.repo.TDnetRepo.GetDisclosures(ctx, dto.GetTDnetDisclosuresParam{Date: date})
	if err != nil {
		return stats, fmt.Errorf("failed to fetch TDnet disclosures: %w", err)
	}

	if err := s.storeAnnouncements(ctx, rows); err != nil {
		s.log.ErrorContext(ctx, "Failed to store announcements", logger.ErrorField(err))
	}

	for _, row := range rows {
		if !utils.ShouldContinue(ctx, s.log) {
			return stats, ctx.Err()
		}
		if row.XBRLURL == "" || classifyAnnouncement(row.Title) != dto.AnnouncementEarnings {
			continue
		}

		stats.Processed++
		applied, err := s.processTDnetDisclosure(ctx, row)
		if err != nil {
			stats.Failed++
			s.log.WarnContext(ctx, "Failed to process TDnet disclosure",
				logger.ErrorField(err),
				logger.StringField("code", row.Code),
				logger.StringField("title", row.Title),
			)
			continue
		}
		if applied {
			stats.Applied++
		} else {
			stats.Skipped++
		}
	}

	s.log.InfoContext(ctx, "TDnet ingestion completed",
		logger.StringField("date", date.Format("2006-01-02")),
		logger.StringField("stats", stats.String()),
	)
	return stats, nil
}

func (s *service) storeAnnouncements(ctx context.Context, rows []dto.TDnetDisclosure) error {
	var announcements []model.Announcement
	for _, row := range rows {
		ticker := tickerFromSecCode(row.Code)
		if ticker == "" {
			continue
		}
		announcements = append(announcements, model.Announcement{
			Ticker:      ticker,
			Title:       row.Title,
			Type:        string(classifyAnnouncement(row.Title)),
			AnnouncedAt: row.Time,
			DocumentURL: row.PDFURL,
		})
	}
	return s.repo.AnnouncementRepo.CreateBulk(ctx, announcements)
}

func classifyAnnouncement(title string) dto.AnnouncementType {
	switch {
	case strings.Contains(title, "決算短信"):
		return dto.AnnouncementEarnings
	case strings.Contains(title, "修正"):
		return dto.AnnouncementRevision
	case strings.Contains(title, "配当"):
		return dto.AnnouncementDividend
	default:
		return dto.AnnouncementOther
	}
}

func (s *service) processTDnetDisclosure(ctx context.Context, row dto.TDnetDisclosure) (bool, error) {
	zipBytes, err := s.repo.TDnetRepo.Download(ctx, row.XBRLURL)
	if err != nil {
		return false, err
	}

	summary, err := fileFromZip(zipBytes, isTDnetSummary)
	if err != nil {
		return false, fmt.Errorf("no summary document in attachment: %w", err)
	}

	parsed, err := xbrl.Parse(bytes.NewReader(summary))
	if err != nil {
		return false, fmt.Errorf("failed to parse summary document: %w", err)
	}

	meta := xbrl.ExtractSummaryMeta(parsed)
	financials := xbrl.ExtractFinancials(parsed)

	ticker := tickerFromSecCode(meta.SecuritiesCode)
	if ticker == "" {
		ticker = tickerFromSecCode(row.Code)
	}
	if ticker == "" {
		return false, fmt.Errorf("no usable securities code")
	}

	if row.CompanyName != "" {
		if err := s.repo.CompanyRepo.Upsert(ctx, []model.Company{{Ticker: ticker, Name: row.CompanyName}}); err != nil {
			return false, fmt.Errorf("failed to upsert company: %w", err)
		}
	}

	res := s.resolver.ResolveTDnet(ctx, period.TDnetInput{
		Title:         period.NormalizeTitle(row.Title),
		AnnouncedAt:   row.Time,
		Meta:          meta,
		XBRLFiscalEnd: financials.FiscalEndDate,
	})
	if res.FiscalYear == 0 || res.Quarter == "" {
		return false, fmt.Errorf("could not resolve fiscal period from %q", row.Title)
	}

	applied := false
	if !financials.IsEmpty() {
		announcedDate := utils.DateOnly(row.Time)
		record := model.FinancialRecord{
			Ticker:           ticker,
			FiscalYear:       res.FiscalYear,
			Quarter:          string(res.Quarter),
			Revenue:          financials.Revenue,
			GrossProfit:      financials.GrossProfit,
			OperatingIncome:  financials.OperatingIncome,
			OrdinaryIncome:   financials.OrdinaryIncome,
			NetIncome:        financials.NetIncome,
			EPS:              financials.EPS,
			FiscalEndDate:    res.FiscalEndDate,
			AnnouncementDate: &announcedDate,
			AnnouncementTime: utils.ToPointer(row.Time.Format("15:04")),
			Source:           string(dto.SourceTDnet),
			SourceDocumentID: documentIDFromURL(row.XBRLURL),
		}
		result, err := s.repo.FinancialRepo.Upsert(ctx, &record)
		if err != nil {
			return false, err
		}
		applied = result.Applied
	}

	if err := s.storeTDnetForecast(ctx, parsed, ticker, row, res); err != nil {
		s.log.WarnContext(ctx, "Failed to store forecast",
			logger.ErrorField(err),
			logger.StringField("ticker", ticker),
		)
	}

	return applied, nil
}

// storeTDnetForecast extracts guidance from the summary. A full-year
// disclosure guides the coming fiscal year, an interim one guides the year
// it belongs to. Each announcement date gets its own row, so revisions
// accumulate instead of replacing earlier guidance.
func (s *service) storeTDnetForecast(ctx context.Context, doc *xbrl.Document, ticker string, row dto.TDnetDisclosure, res period.Resolution) error {
	forecast := xbrl.ExtractForecast(doc)
	if forecast.IsEmpty() {
		return nil
	}

	targetYear := res.FiscalYear
	if res.Quarter == dto.QuarterFY || res.Quarter == dto.QuarterQ4 {
		targetYear++
	}

	forecastType := dto.ForecastInitial
	if classifyAnnouncement(row.Title) == dto.AnnouncementRevision || strings.Contains(row.Title, "修正") {
		forecastType = dto.ForecastRevised
	}

	_, err := s.repo.ForecastRepo.Upsert(ctx, &model.ManagementForecast{
		Ticker:            ticker,
		FiscalYear:        targetYear,
		Quarter:           string(dto.QuarterFY),
		AnnouncedDate:     utils.DateOnly(row.Time),
		ForecastType:      string(forecastType),
		Revenue:           forecast.Revenue,
		OperatingIncome:   forecast.OperatingIncome,
		OrdinaryIncome:    forecast.OrdinaryIncome,
		NetIncome:         forecast.NetIncome,
		EPS:               forecast.EPS,
		DividendPerShare:  forecast.DividendPerShare,
		RevisionDirection: revisionDirection(row.Title),
		Source:            string(dto.SourceTDnet),
	})
	return err
}

// revisionDirection reads the direction from a revision title. 上方修正 is
// an upward revision, 下方修正 a downward one; plain 修正 titles stay nil.
func revisionDirection(title string) *string {
	switch {
	case strings.Contains(title, "上方修正"):
		return utils.ToPointer("up")
	case strings.Contains(title, "下方修正"):
		return utils.ToPointer("down")
	default:
		return nil
	}
}

// documentIDFromURL takes the attachment file name, extension stripped, as
// the disclosure's document identifier.
func documentIDFromURL(rawURL string) *string {
	name := rawURL
	if idx := strings.IndexAny(name, "?#"); idx >= 0 {
		name = name[:idx]
	}
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	if name == "" {
		return nil
	}
	return &name
}

// isTDnetSummary matches the earnings summary attachment inside the XBRL
// zip. Packages ship either a Summary folder or a tse-prefixed inline
// document at the top level.
func isTDnetSummary(name string) bool {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "summary") && (strings.HasSuffix(lower, ".htm") || strings.HasSuffix(lower, ".xbrl")) {
		return true
	}
	base := lower
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	return strings.HasPrefix(base, "tse-") && strings.HasSuffix(base, "ixbrl.htm")
}
