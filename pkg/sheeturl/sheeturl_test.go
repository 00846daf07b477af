package sheeturl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jinford/scansheet/pkg/sheeturl"
)

func TestExtractID(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "編集URL",
			raw:  "https://docs.google.com/spreadsheets/d/1aBcD_e-F9/edit#gid=0",
			want: "1aBcD_e-F9",
		},
		{
			name: "共有URL",
			raw:  "https://docs.google.com/spreadsheets/d/abc123/view?usp=sharing",
			want: "abc123",
		},
		{
			name: "素のID",
			raw:  "abc123",
			want: "abc123",
		},
		{
			name: "前後の空白",
			raw:  "  abc123  ",
			want: "abc123",
		},
		{
			name: "空入力",
			raw:  "",
			want: "",
		},
		{
			name: "空白のみ",
			raw:  "   ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sheeturl.ExtractID(tt.raw))
		})
	}
}
