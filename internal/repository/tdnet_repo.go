package repository

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang-kessan/config"
	"golang-kessan/internal/dto"
	"golang-kessan/pkg/httpclient"
	"golang-kessan/pkg/logger"
	"golang-kessan/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

type TDnetRepository interface {
	GetDisclosures(ctx context.Context, param dto.GetTDnetDisclosuresParam) ([]dto.TDnetDisclosure, error)
	Download(ctx context.Context, url string) ([]byte, error)
}

type tdnetRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	log            *logger.Logger
	requestLimiter *rate.Limiter
}

func NewTDnetRepository(cfg *config.Config, log *logger.Logger) TDnetRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.TDnet.MaxRequestPerMinute)
	return &tdnetRepository{
		httpClient:     httpclient.New(log, cfg.TDnet.BaseURL, cfg.TDnet.Timeout, ""),
		cfg:            cfg,
		log:            log,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

// GetDisclosures scrapes the daily disclosure list. The list is paginated
// as I_list_001_YYYYMMDD.html, I_list_002_... until a page 404s or comes
// back empty.
func (r *tdnetRepository) GetDisclosures(ctx context.Context, param dto.GetTDnetDisclosuresParam) ([]dto.TDnetDisclosure, error) {
	dateCompact := param.Date.Format("20060102")

	var disclosures []dto.TDnetDisclosure
	for page := 1; ; page++ {
		if !utils.ShouldContinue(ctx, r.log) {
			return disclosures, ctx.Err()
		}
		if err := r.requestLimiter.Wait(ctx); err != nil {
			return nil, err
		}

		endpoint := fmt.Sprintf("/inbs/I_list_%03d_%s.html", page, dateCompact)
		resp, err := r.httpClient.Get(ctx, endpoint, nil, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch TDnet list page %d: %w", page, err)
		}
		if resp.StatusCode == http.StatusNotFound {
			break
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("tdnet returned status: %d", resp.StatusCode)
		}

		pageRows, err := r.parseListPage(resp.Body, param.Date)
		if err != nil {
			return nil, err
		}
		if len(pageRows) == 0 {
			break
		}
		disclosures = append(disclosures, pageRows...)
	}

	r.log.InfoContext(ctx, "Fetched TDnet disclosures",
		logger.StringField("date", param.Date.Format("2006-01-02")),
		logger.IntField("count", len(disclosures)),
	)
	return disclosures, nil
}

func (r *tdnetRepository) parseListPage(body []byte, date time.Time) ([]dto.TDnetDisclosure, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse TDnet list page: %w", err)
	}

	var rows []dto.TDnetDisclosure
	doc.Find("table#main-list-table tr").Each(func(_ int, tr *goquery.Selection) {
		timeText := strings.TrimSpace(tr.Find("td.kjTime").Text())
		code := strings.TrimSpace(tr.Find("td.kjCode").Text())
		if timeText == "" || code == "" {
			return
		}

		row := dto.TDnetDisclosure{
			Code:        code,
			CompanyName: utils.CleanToValidUTF8(strings.TrimSpace(tr.Find("td.kjName").Text())),
			Title:       utils.CleanToValidUTF8(strings.TrimSpace(tr.Find("td.kjTitle").Text())),
			Time:        combineListTime(date, timeText),
		}
		if href, ok := tr.Find("td.kjTitle a").Attr("href"); ok {
			row.PDFURL = r.resolveURL(href)
		}
		if href, ok := tr.Find("td.kjXbrl a").Attr("href"); ok {
			row.XBRLURL = r.resolveURL(href)
		}
		rows = append(rows, row)
	})
	return rows, nil
}

// combineListTime merges the HH:MM column with the list date, in JST.
func combineListTime(date time.Time, hhmm string) time.Time {
	t, err := time.Parse("15:04", strings.TrimSpace(hhmm))
	if err != nil {
		return utils.DateOnly(date)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, utils.GetJSTLocation())
}

func (r *tdnetRepository) resolveURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return r.cfg.TDnet.BaseURL + "/inbs/" + strings.TrimPrefix(href, "./")
}

// Download fetches a disclosure attachment (PDF or XBRL zip).
func (r *tdnetRepository) Download(ctx context.Context, url string) ([]byte, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := strings.TrimPrefix(url, r.cfg.TDnet.BaseURL)
	resp, err := r.httpClient.Get(ctx, endpoint, nil, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download TDnet attachment: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tdnet attachment download returned status: %d", resp.StatusCode)
	}
	return resp.Body, nil
}
