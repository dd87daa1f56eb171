package ingest

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickerFromSecCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{name: "five digit common listing", code: "72030", want: "7203"},
		{name: "four digit passthrough", code: "7203", want: "7203"},
		{name: "whitespace trimmed", code: " 72030 ", want: "7203"},
		{name: "five digit branch listing rejected", code: "72031", want: ""},
		{name: "empty", code: "", want: ""},
		{name: "too short", code: "720", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tickerFromSecCode(tt.code))
		})
	}
}

func TestFileFromZip(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"XBRL/PublicDoc/manifest.xml":             "<manifest/>",
		"XBRL/PublicDoc/jpcrp030000-asr-001.xbrl": "<xbrl/>",
		"XBRL/AuditDoc/jpaud-aar-cn-001.xbrl":     "<audit/>",
	} {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	data, err := fileFromZip(buf.Bytes(), isEDINETInstance)
	require.NoError(t, err)
	assert.Equal(t, "<xbrl/>", string(data))

	_, err = fileFromZip(buf.Bytes(), func(name string) bool {
		return strings.HasSuffix(name, ".htm")
	})
	assert.Error(t, err)

	_, err = fileFromZip([]byte("not a zip"), isEDINETInstance)
	assert.Error(t, err)
}

func TestIsEDINETInstance(t *testing.T) {
	assert.True(t, isEDINETInstance("XBRL/PublicDoc/jpcrp030000-asr-001_E02144-000_2025-03-31_01_2025-06-20.xbrl"))
	assert.False(t, isEDINETInstance("XBRL/AuditDoc/jpaud-aar-cn-001.xbrl"))
	assert.False(t, isEDINETInstance("XBRL/PublicDoc/manifest.xml"))
}

func TestIsTDnetSummary(t *testing.T) {
	tests := []struct {
		name  string
		entry string
		want  bool
	}{
		{name: "summary inline html", entry: "XBRLData/Summary/tse-acedjpsm-72030-20250509-ixbrl.htm", want: true},
		{name: "summary plain instance", entry: "XBRLData/Summary/tse-acedjpsm-72030.xbrl", want: true},
		{name: "tse prefixed inline at root", entry: "tse-qcedjpsm-72030-20250807-ixbrl.htm", want: true},
		{name: "attachment document", entry: "XBRLData/Attachment/0101010-qcbs01-tse-qcedjpfr.htm", want: false},
		{name: "image asset", entry: "XBRLData/Summary/logo.png", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTDnetSummary(tt.entry))
		})
	}
}
