package xbrl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plainInstance = `<?xml version="1.0" encoding="UTF-8"?>
<xbrli:xbrl xmlns:xbrli="http://www.xbrl.org/2003/instance"
            xmlns:jppfs_cor="http://disclosure.edinet-fsa.go.jp/taxonomy/jppfs/2023-12-01/jppfs_cor">
  <xbrli:context id="CurrentYearDuration">
    <xbrli:period>
      <xbrli:startDate>2024-04-01</xbrli:startDate>
      <xbrli:endDate>2025-03-31</xbrli:endDate>
    </xbrli:period>
  </xbrli:context>
  <xbrli:context id="CurrentYearInstant">
    <xbrli:period>
      <xbrli:instant>2025-03-31</xbrli:instant>
    </xbrli:period>
  </xbrli:context>
  <xbrli:context id="Prior1YearDuration">
    <xbrli:period>
      <xbrli:startDate>2023-04-01</xbrli:startDate>
      <xbrli:endDate>2024-03-31</xbrli:endDate>
    </xbrli:period>
  </xbrli:context>
  <jppfs_cor:NetSales contextRef="CurrentYearDuration" unitRef="JPY" decimals="-6">45095325000000</jppfs_cor:NetSales>
  <jppfs_cor:NetSales contextRef="Prior1YearDuration" unitRef="JPY" decimals="-6">37154298000000</jppfs_cor:NetSales>
  <jppfs_cor:OperatingIncome contextRef="CurrentYearDuration" unitRef="JPY">5352934000000</jppfs_cor:OperatingIncome>
</xbrli:xbrl>`

func TestParse_PlainInstance(t *testing.T) {
	doc, err := Parse(strings.NewReader(plainInstance))
	require.NoError(t, err)

	assert.Len(t, doc.Contexts, 3)
	assert.Len(t, doc.Facts, 3)

	byID := map[string]Context{}
	for _, ctx := range doc.Contexts {
		byID[ctx.ID] = ctx
	}
	assert.Equal(t, "2025-03-31", byID["CurrentYearInstant"].Period.Instant)
	assert.Equal(t, "2025-03-31", byID["CurrentYearDuration"].Period.EndDate)
	assert.False(t, byID["CurrentYearDuration"].HasScenario)

	fact := doc.Facts[0]
	assert.Contains(t, fact.Name.Space, "jppfs_cor")
	assert.Equal(t, "NetSales", fact.Name.Local)
	assert.Equal(t, "CurrentYearDuration", fact.ContextRef)
}

const inlineInstance = `<html xmlns:ix="http://www.xbrl.org/2013/inlineXBRL">
<body>
<span>売上高</span>
<ix:nonFraction name="tse-ed-t:NetSales" contextRef="CurrentYearDuration" unitRef="JPY" scale="6" decimals="0">45,095,325</ix:nonFraction>
<ix:nonFraction name="tse-ed-t:OperatingIncome" contextRef="CurrentYearDuration" unitRef="JPY" scale="6" sign="-" decimals="0">120</ix:nonFraction>
<ix:nonNumeric name="tse-ed-t:SecuritiesCode" contextRef="CurrentYearInstant">72030</ix:nonNumeric>
</body>
</html>`

func TestParse_InlineDocument(t *testing.T) {
	doc, err := Parse(strings.NewReader(inlineInstance))
	require.NoError(t, err)
	require.Len(t, doc.Facts, 3)

	sales := doc.Facts[0]
	assert.Equal(t, "tse-ed-t", sales.Name.Prefix)
	assert.Equal(t, "NetSales", sales.Name.Local)
	assert.Equal(t, "6", sales.Scale)

	value, err := sales.NumericValue()
	require.NoError(t, err)
	require.NotNil(t, value)
	assert.InDelta(t, 45_095_325_000_000, *value, 1)

	negative, err := doc.Facts[1].NumericValue()
	require.NoError(t, err)
	require.NotNil(t, negative)
	assert.InDelta(t, -120_000_000, *negative, 1)

	assert.Equal(t, "72030", doc.Facts[2].Value)
}

func TestFact_NumericValue(t *testing.T) {
	tests := []struct {
		name    string
		fact    Fact
		want    *float64
		wantErr bool
	}{
		{
			name: "plain number with commas",
			fact: Fact{Value: "1,234,567"},
			want: ptr(1234567),
		},
		{
			name: "triangle negative marker",
			fact: Fact{Value: "△1,500"},
			want: ptr(-1500),
		},
		{
			name: "filled triangle negative marker",
			fact: Fact{Value: "▲42"},
			want: ptr(-42),
		},
		{
			name: "scale applied",
			fact: Fact{Value: "123", Scale: "3"},
			want: ptr(123000),
		},
		{
			name: "sign attribute",
			fact: Fact{Value: "99", Sign: "-"},
			want: ptr(-99),
		},
		{
			name: "nil fact",
			fact: Fact{IsNil: true, Value: ""},
			want: nil,
		},
		{
			name: "empty value",
			fact: Fact{Value: ""},
			want: nil,
		},
		{
			name:    "not a number",
			fact:    Fact{Value: "該当なし"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fact.NumericValue()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 0.001)
		})
	}
}

func ptr(v float64) *float64 {
	return &v
}
