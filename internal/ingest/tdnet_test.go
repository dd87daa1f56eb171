package ingest

import (
	"testing"

	"golang-kessan/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyAnnouncement(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  dto.AnnouncementType
	}{
		{
			name:  "earnings report",
			title: "2025年3月期 決算短信〔日本基準〕（連結）",
			want:  dto.AnnouncementEarnings,
		},
		{
			name:  "quarterly earnings report",
			title: "2025年3月期 第1四半期決算短信〔ＩＦＲＳ〕（連結）",
			want:  dto.AnnouncementEarnings,
		},
		{
			name:  "forecast revision",
			title: "業績予想の修正に関するお知らせ",
			want:  dto.AnnouncementRevision,
		},
		{
			name:  "dividend notice",
			title: "剰余金の配当に関するお知らせ",
			want:  dto.AnnouncementDividend,
		},
		{
			name:  "earnings wins over revision keyword",
			title: "2025年3月期 決算短信の一部修正について",
			want:  dto.AnnouncementEarnings,
		},
		{
			name:  "anything else",
			title: "代表取締役の異動に関するお知らせ",
			want:  dto.AnnouncementOther,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyAnnouncement(tt.title))
		})
	}
}

func TestRevisionDirection(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  *string
	}{
		{
			name:  "upward revision",
			title: "業績予想の上方修正に関するお知らせ",
			want:  strPtr("up"),
		},
		{
			name:  "downward revision",
			title: "通期業績予想の下方修正について",
			want:  strPtr("down"),
		},
		{
			name:  "plain revision carries no direction",
			title: "業績予想の修正に関するお知らせ",
			want:  nil,
		},
		{
			name:  "unrelated title",
			title: "2025年3月期 決算短信〔日本基準〕（連結）",
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := revisionDirection(tt.title)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestDocumentIDFromURL(t *testing.T) {
	got := documentIDFromURL("https://www.release.tdnet.info/inbs/081220250509487544.zip")
	require.NotNil(t, got)
	assert.Equal(t, "081220250509487544", *got)

	withQuery := documentIDFromURL("https://example.com/docs/140120250620501234.zip?download=1")
	require.NotNil(t, withQuery)
	assert.Equal(t, "140120250620501234", *withQuery)

	assert.Nil(t, documentIDFromURL(""))
}

func strPtr(v string) *string {
	return &v
}
