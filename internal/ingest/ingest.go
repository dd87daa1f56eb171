package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"golang-kessan/config"
	"golang-kessan/internal/period"
	"golang-kessan/internal/repository"
	"golang-kessan/pkg/logger"
)

// Stats summarizes one ingestion run, reported back into the task
// execution history.
type Stats struct {
	Processed int
	Applied   int
	Skipped   int
	Failed    int
}

func (s Stats) String() string {
	return fmt.Sprintf("processed=%d applied=%d skipped=%d failed=%d", s.Processed, s.Applied, s.Skipped, s.Failed)
}

type Service interface {
	IngestEDINET(ctx context.Context, date string) (Stats, error)
	IngestTDnet(ctx context.Context, date time.Time) (Stats, error)
	IngestJQuants(ctx context.Context, date string) (Stats, error)
	IngestPrices(ctx context.Context) (Stats, error)
}

type service struct {
	cfg      *config.Config
	log      *logger.Logger
	repo     *repository.Repository
	resolver *period.Resolver
}

func New(cfg *config.Config, log *logger.Logger, repo *repository.Repository) Service {
	return &service{
		cfg:      cfg,
		log:      log,
		repo:     repo,
		resolver: period.NewResolver(log),
	}
}

// tickerFromSecCode normalizes a securities code to the 4-character ticker.
// EDINET and TDnet carry the 5-digit local code whose last digit is a
// branch marker, 0 for the common listing.
func tickerFromSecCode(code string) string {
	code = strings.TrimSpace(code)
	if len(code) == 5 && strings.HasSuffix(code, "0") {
		return code[:4]
	}
	if len(code) == 4 {
		return code
	}
	return ""
}

// fileFromZip returns the first archive entry whose name the matcher
// accepts.
func fileFromZip(zipBytes []byte, match func(name string) bool) ([]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return nil, fmt.Errorf("failed to open zip archive: %w", err)
	}
	for _, file := range reader.File {
		if !match(file.Name) {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open zip entry %s: %w", file.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read zip entry %s: %w", file.Name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("no matching file in archive")
}
