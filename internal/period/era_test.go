package period

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWarekiToSeireki(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "reiwa year",
			text: "令和7年3月期 決算短信",
			want: "2025年3月期 決算短信",
		},
		{
			name: "heisei year",
			text: "平成31年3月期 決算短信",
			want: "2019年3月期 決算短信",
		},
		{
			name: "reiwa first decade single digit",
			text: "令和2年12月期",
			want: "2020年12月期",
		},
		{
			name: "gregorian year untouched",
			text: "2025年3月期 第1四半期決算短信",
			want: "2025年3月期 第1四半期決算短信",
		},
		{
			name: "no year at all",
			text: "業績予想の修正に関するお知らせ",
			want: "業績予想の修正に関するお知らせ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WarekiToSeireki(tt.text))
		})
	}
}
