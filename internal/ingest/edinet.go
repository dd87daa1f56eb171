package ingest

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"golang-kessan/internal/dto"
	"golang-kessan/internal/model"
	"golang-kessan/internal/xbrl"
	"golang-kessan/pkg/logger"
	"golang-kessan/pkg/utils"
)

// edinetDocTypes are the filing types carrying financial statements:
// annual securities reports, quarterly reports, semiannual reports.
var edinetDocTypes = map[string]bool{
	dto.EDINETDocTypeAnnual:     true,
	dto.EDINETDocTypeQuarterly:  true,
	dto.EDINETDocTypeSemiAnnual: true,
}

// IngestEDINET processes one day of EDINET filings. Date is YYYY-MM-DD.
func (s *service) IngestEDINET(ctx context.Context, date string) (Stats, error) {
	var stats Stats

	docs, err := s.repo.EDINETRepo.ListDocuments(ctx, dto.GetEDINETDocumentsParam{Date: date})
	if err != nil {
		return stats, fmt.Errorf("failed to list EDINET documents: %w", err)
	}

	for _, doc := range docs {
		if !utils.ShouldContinue(ctx, s.log) {
			return stats, ctx.Err()
		}

		docType := ""
		if doc.DocTypeCode != nil {
			docType = *doc.DocTypeCode
		}
		if !edinetDocTypes[docType] {
			continue
		}

		secCode := ""
		if doc.SecCode != nil {
			secCode = *doc.SecCode
		}
		ticker := tickerFromSecCode(secCode)
		if ticker == "" {
			continue
		}

		stats.Processed++
		applied, err := s.processEDINETDocument(ctx, doc, ticker)
		if err != nil {
			stats.Failed++
			s.log.WarnContext(ctx, "Failed to process EDINET document",
				logger.ErrorField(err),
				logger.StringField("doc_id", doc.DocID),
				logger.StringField("ticker", ticker),
			)
			continue
		}
		if applied {
			stats.Applied++
		} else {
			stats.Skipped++
		}
	}

	s.log.InfoContext(ctx, "EDINET ingestion completed",
		logger.StringField("date", date),
		logger.StringField("stats", stats.String()),
	)
	return stats, nil
}

func (s *service) processEDINETDocument(ctx context.Context, doc dto.EDINETDocument, ticker string) (bool, error) {
	zipBytes, err := s.repo.EDINETRepo.DownloadDocument(ctx, doc.DocID)
	if err != nil {
		return false, err
	}

	instance, err := fileFromZip(zipBytes, isEDINETInstance)
	if err != nil {
		return false, fmt.Errorf("no XBRL instance in package: %w", err)
	}

	parsed, err := xbrl.Parse(bytes.NewReader(instance))
	if err != nil {
		return false, fmt.Errorf("failed to parse XBRL instance: %w", err)
	}

	financials := xbrl.ExtractFinancials(parsed)
	if financials.IsEmpty() {
		return false, nil
	}

	// Filings name the issuer, so the filing itself registers the company.
	if doc.FilerName != nil && *doc.FilerName != "" {
		if err := s.repo.CompanyRepo.Upsert(ctx, []model.Company{{Ticker: ticker, Name: *doc.FilerName}}); err != nil {
			return false, fmt.Errorf("failed to upsert company: %w", err)
		}
	}

	fiscalYear, quarter := s.resolver.ResolveEDINET(ctx, doc)
	if fiscalYear == 0 || quarter == "" {
		return false, fmt.Errorf("could not resolve fiscal period for document %s", doc.DocID)
	}

	fiscalEnd := financials.FiscalEndDate
	if fiscalEnd == nil && doc.PeriodEnd != nil {
		if t, err := time.Parse("2006-01-02", *doc.PeriodEnd); err == nil {
			fiscalEnd = &t
		}
	}

	record := model.FinancialRecord{
		Ticker:           ticker,
		FiscalYear:       fiscalYear,
		Quarter:          string(quarter),
		Revenue:          financials.Revenue,
		GrossProfit:      financials.GrossProfit,
		OperatingIncome:  financials.OperatingIncome,
		OrdinaryIncome:   financials.OrdinaryIncome,
		NetIncome:        financials.NetIncome,
		EPS:              financials.EPS,
		FiscalEndDate:    fiscalEnd,
		AnnouncementDate: parseSubmitDate(doc.SubmitDateTime),
		AnnouncementTime: parseSubmitTime(doc.SubmitDateTime),
		Source:           string(dto.SourceEDINET),
		SourceDocumentID: utils.ToPointer(doc.DocID),
	}

	result, err := s.repo.FinancialRepo.Upsert(ctx, &record)
	if err != nil {
		return false, err
	}
	return result.Applied, nil
}

// isEDINETInstance matches the public document XBRL instance inside the
// filing package.
func isEDINETInstance(name string) bool {
	return strings.Contains(name, "PublicDoc") && strings.HasSuffix(name, ".xbrl")
}

func parseSubmitDate(submitDateTime string) *time.Time {
	if len(submitDateTime) < 10 {
		return nil
	}
	t, err := time.Parse("2006-01-02", submitDateTime[:10])
	if err != nil {
		return nil
	}
	return &t
}

// parseSubmitTime lifts the HH:MM part of "2006-01-02 15:04".
func parseSubmitTime(submitDateTime string) *string {
	if len(submitDateTime) < 16 {
		return nil
	}
	hhmm := submitDateTime[11:16]
	return &hhmm
}
