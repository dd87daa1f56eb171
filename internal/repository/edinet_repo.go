package repository

import (
	"context"
	"fmt"
	"net/http"

	"golang-kessan/config"
	"golang-kessan/internal/dto"
	"golang-kessan/pkg/httpclient"
	"golang-kessan/pkg/logger"
	"golang-kessan/pkg/ratelimit"
)

type EDINETRepository interface {
	ListDocuments(ctx context.Context, param dto.GetEDINETDocumentsParam) ([]dto.EDINETDocument, error)
	DownloadDocument(ctx context.Context, docID string) ([]byte, error)
}

type edinetRepository struct {
	httpClient httpclient.HTTPClient
	cfg        *config.Config
	log        *logger.Logger
	limiter    *ratelimit.TokenLimiter
}

func NewEDINETRepository(cfg *config.Config, log *logger.Logger) EDINETRepository {
	return &edinetRepository{
		httpClient: httpclient.New(log, cfg.EDINET.BaseURL, cfg.EDINET.Timeout, ""),
		cfg:        cfg,
		log:        log,
		limiter:    ratelimit.NewTokenLimiter(cfg.EDINET.MaxRequestPerMinute),
	}
}

// ListDocuments fetches the filing index for one date. Type 2 requests the
// full metadata list. Withdrawn filings and filings without XBRL are
// filtered out here so callers only see processable documents.
func (r *edinetRepository) ListDocuments(ctx context.Context, param dto.GetEDINETDocumentsParam) ([]dto.EDINETDocument, error) {
	if err := r.limiter.Wait(ctx, 1); err != nil {
		return nil, err
	}

	queryParams := map[string]string{
		"date": param.Date,
		"type": "2",
	}
	if r.cfg.EDINET.APIKey != "" {
		queryParams["Subscription-Key"] = r.cfg.EDINET.APIKey
	}

	var listResp dto.EDINETDocumentListResponse
	resp, err := r.httpClient.Get(ctx, "/documents.json", queryParams, nil, &listResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch EDINET document list: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		r.log.ErrorContext(ctx, "EDINET API returned non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("date", param.Date),
		)
		return nil, fmt.Errorf("edinet api returned status: %d", resp.StatusCode)
	}

	var documents []dto.EDINETDocument
	for _, doc := range listResp.Results {
		if doc.XbrlFlag != "1" || doc.WithdrawalStatus == "1" {
			continue
		}
		documents = append(documents, doc)
	}
	return documents, nil
}

// DownloadDocument retrieves the XBRL zip for a filing. Type 1 is the XBRL
// package.
func (r *edinetRepository) DownloadDocument(ctx context.Context, docID string) ([]byte, error) {
	if err := r.limiter.Wait(ctx, 1); err != nil {
		return nil, err
	}

	queryParams := map[string]string{"type": "1"}
	if r.cfg.EDINET.APIKey != "" {
		queryParams["Subscription-Key"] = r.cfg.EDINET.APIKey
	}

	resp, err := r.httpClient.Get(ctx, "/documents/"+docID, queryParams, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download EDINET document %s: %w", docID, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("edinet document download returned status: %d", resp.StatusCode)
	}
	return resp.Body, nil
}
