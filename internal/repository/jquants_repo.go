package repository

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang-kessan/config"
	"golang-kessan/internal/dto"
	"golang-kessan/pkg/httpclient"
	"golang-kessan/pkg/logger"

	"golang.org/x/time/rate"
)

type JQuantsRepository interface {
	GetStatements(ctx context.Context, param dto.GetJQuantsStatementsParam) ([]dto.JQuantsStatement, error)
}

type jquantsRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	log            *logger.Logger
	requestLimiter *rate.Limiter

	mu          sync.Mutex
	idToken     string
	tokenExpiry time.Time
}

func NewJQuantsRepository(cfg *config.Config, log *logger.Logger) JQuantsRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.JQuants.MaxRequestPerMinute)
	return &jquantsRepository{
		httpClient:     httpclient.New(log, cfg.JQuants.BaseURL, cfg.JQuants.Timeout, ""),
		cfg:            cfg,
		log:            log,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

// ensureIDToken exchanges the long-lived refresh token for an id token.
// J-Quants id tokens last 24 hours; refresh an hour early.
func (r *jquantsRepository) ensureIDToken(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.idToken != "" && time.Now().Before(r.tokenExpiry) {
		return r.idToken, nil
	}

	var tokenResp dto.JQuantsTokenResponse
	endpoint := fmt.Sprintf("/token/auth_refresh?refreshtoken=%s", r.cfg.JQuants.RefreshToken)
	resp, err := r.httpClient.Post(ctx, endpoint, nil, nil, &tokenResp)
	if err != nil {
		return "", fmt.Errorf("failed to refresh J-Quants token: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("j-quants token refresh returned status: %d", resp.StatusCode)
	}
	if tokenResp.IDToken == "" {
		return "", fmt.Errorf("j-quants token refresh returned empty token")
	}

	r.idToken = tokenResp.IDToken
	r.tokenExpiry = time.Now().Add(23 * time.Hour)
	return r.idToken, nil
}

// GetStatements pages through /fins/statements for one ticker or one
// disclosure date.
func (r *jquantsRepository) GetStatements(ctx context.Context, param dto.GetJQuantsStatementsParam) ([]dto.JQuantsStatement, error) {
	token, err := r.ensureIDToken(ctx)
	if err != nil {
		return nil, err
	}
	headers := map[string]string{"Authorization": "Bearer " + token}

	queryParams := map[string]string{}
	if param.Code != "" {
		// The API keys on the 5-digit local code.
		queryParams["code"] = param.Code + "0"
	}
	if param.Date != "" {
		queryParams["date"] = param.Date
	}

	var statements []dto.JQuantsStatement
	for {
		if err := r.requestLimiter.Wait(ctx); err != nil {
			return nil, err
		}

		var page dto.JQuantsStatementsResponse
		resp, err := r.httpClient.Get(ctx, "/fins/statements", queryParams, headers, &page)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch J-Quants statements: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			r.log.ErrorContext(ctx, "J-Quants API returned non-OK status",
				logger.IntField("status_code", resp.StatusCode),
				logger.StringField("body", string(resp.Body)),
			)
			return nil, fmt.Errorf("j-quants api returned status: %d", resp.StatusCode)
		}

		statements = append(statements, page.Statements...)
		if page.PaginationKey == "" {
			break
		}
		queryParams["pagination_key"] = page.PaginationKey
	}

	return statements, nil
}
