package utils

import "testing"

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0:00"},
		{9, "0:09"},
		{60, "1:00"},
		{899, "14:59"},
		{900, "15:00"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
		{-30, "+0:30"},
		{-3661, "+1:01:01"},
	}

	for _, tt := range tests {
		if got := FormatSeconds(tt.seconds); got != tt.want {
			t.Errorf("FormatSeconds(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
