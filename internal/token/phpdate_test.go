package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTime(t *testing.T) {
	// Saturday 2024-03-02 07:05:09 UTC
	ts := time.Date(2024, time.March, 2, 7, 5, 9, 123456000, time.UTC)

	tests := []struct {
		format string
		want   string
	}{
		{"", "2024-03-02_07-05-09"},
		{DefaultTimestampFormat, "2024-03-02_07-05-09"},
		{"Ymd", "20240302"},
		{"y-n-j", "24-3-2"},
		{"D, d M Y", "Sat, 02 Mar 2024"},
		{"l jS F", "Saturday 2nd March"},
		{"g:i a", "7:05 am"},
		{"h A", "07 AM"},
		{"G", "7"},
		{"N w z", "6 6 61"},
		{"W o", "09 2024"},
		{"t L", "31 1"},
		{"U", "1709363109"},
		{"u v", "123456 123"},
		{"c", "2024-03-02T07:05:09+00:00"},
		{"O P T Z e", "+0000 +00:00 UTC 0 UTC"},
		{`\Y\-Y`, "Y-2024"},
		{"%Y%m%d-%H%M", "20240302-0705"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTime(tt.format, ts))
		})
	}
}

func TestOrdinalSuffix(t *testing.T) {
	cases := map[int]string{1: "st", 2: "nd", 3: "rd", 4: "th", 11: "th", 12: "th", 13: "th", 21: "st", 22: "nd", 23: "rd", 31: "st"}
	for day, want := range cases {
		assert.Equal(t, want, ordinalSuffix(day), day)
	}
}
