package strategy

import (
	"context"
	"testing"

	"golang-kessan/internal/ingest"
	"golang-kessan/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSystemParamRepo struct {
	lastFetched map[string]string
}

func newFakeSystemParamRepo() *fakeSystemParamRepo {
	return &fakeSystemParamRepo{lastFetched: map[string]string{}}
}

func (f *fakeSystemParamRepo) Get(ctx context.Context, name string, destValue interface{}) error {
	return nil
}

func (f *fakeSystemParamRepo) Set(ctx context.Context, name string, value interface{}) error {
	return nil
}

func (f *fakeSystemParamRepo) GetLastFetchedDate(ctx context.Context, name string) (string, error) {
	return f.lastFetched[name], nil
}

func (f *fakeSystemParamRepo) SetLastFetchedDate(ctx context.Context, name, date string) error {
	f.lastFetched[name] = date
	return nil
}

func TestDatesToFetch(t *testing.T) {
	ctx := context.Background()
	today := utils.DateOnly(utils.TimeNowJST())

	t.Run("pinned date bypasses the watermark", func(t *testing.T) {
		repo := newFakeSystemParamRepo()
		repo.lastFetched["w"] = "2020-01-01"

		dates, err := datesToFetch(ctx, repo, "w", FetchPayload{Date: "2025-05-09"})
		require.NoError(t, err)
		assert.Equal(t, []string{"2025-05-09"}, dates)
	})

	t.Run("invalid pinned date", func(t *testing.T) {
		_, err := datesToFetch(ctx, newFakeSystemParamRepo(), "w", FetchPayload{Date: "09/05/2025"})
		assert.Error(t, err)
	})

	t.Run("first run walks the lookback window", func(t *testing.T) {
		dates, err := datesToFetch(ctx, newFakeSystemParamRepo(), "w", FetchPayload{})
		require.NoError(t, err)
		require.Len(t, dates, defaultLookbackDays)
		assert.Equal(t, today.Format("2006-01-02"), dates[len(dates)-1])
	})

	t.Run("watermark yesterday yields only today", func(t *testing.T) {
		repo := newFakeSystemParamRepo()
		repo.lastFetched["w"] = today.AddDate(0, 0, -1).Format("2006-01-02")

		dates, err := datesToFetch(ctx, repo, "w", FetchPayload{})
		require.NoError(t, err)
		assert.Equal(t, []string{today.Format("2006-01-02")}, dates)
	})

	t.Run("watermark today yields nothing", func(t *testing.T) {
		repo := newFakeSystemParamRepo()
		repo.lastFetched["w"] = today.Format("2006-01-02")

		dates, err := datesToFetch(ctx, repo, "w", FetchPayload{})
		require.NoError(t, err)
		assert.Empty(t, dates)
	})

	t.Run("stale watermark is capped", func(t *testing.T) {
		repo := newFakeSystemParamRepo()
		repo.lastFetched["w"] = today.AddDate(0, 0, -120).Format("2006-01-02")

		dates, err := datesToFetch(ctx, repo, "w", FetchPayload{})
		require.NoError(t, err)
		assert.Len(t, dates, maxCatchUpDays+1)
		assert.Equal(t, today.Format("2006-01-02"), dates[len(dates)-1])
	})
}

func TestFetchResult(t *testing.T) {
	tests := []struct {
		name        string
		results     []dateStats
		total       ingest.Stats
		failedDates int
		wantCode    int32
		wantErr     bool
	}{
		{
			name:        "all dates failed",
			results:     []dateStats{{Date: "2025-05-09", Error: "boom"}},
			failedDates: 1,
			wantCode:    JOB_EXIT_CODE_FAILED,
			wantErr:     true,
		},
		{
			name:        "some dates failed",
			results:     []dateStats{{Date: "2025-05-08"}, {Date: "2025-05-09", Error: "boom"}},
			total:       ingest.Stats{Processed: 5, Applied: 5},
			failedDates: 1,
			wantCode:    JOB_EXIT_CODE_PARTIAL_SUCCESS,
		},
		{
			name:     "some documents failed",
			results:  []dateStats{{Date: "2025-05-09"}},
			total:    ingest.Stats{Processed: 5, Applied: 4, Failed: 1},
			wantCode: JOB_EXIT_CODE_PARTIAL_SUCCESS,
		},
		{
			name:     "nothing to process",
			results:  []dateStats{{Date: "2025-05-09"}},
			total:    ingest.Stats{},
			wantCode: JOB_EXIT_CODE_SKIPPED,
		},
		{
			name:     "clean run",
			results:  []dateStats{{Date: "2025-05-09"}},
			total:    ingest.Stats{Processed: 5, Applied: 3, Skipped: 2},
			wantCode: JOB_EXIT_CODE_SUCCESS,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := fetchResult(tt.results, tt.total, tt.failedDates)
			assert.Equal(t, tt.wantCode, result.ExitCode)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NotEmpty(t, result.Output)
		})
	}
}
