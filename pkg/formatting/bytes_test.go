package formatting_test

import (
	"testing"

	"github.com/JaimeStill/vouch/pkg/formatting"
)

func TestParseBytes(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"2048", 2048, false},
		{"512B", 512, false},
		{"2048KB", 2048 * 1024, false},
		{"2MB", 2 * 1024 * 1024, false},
		{"1.5 kb", 1536, false},
		{"  2MB ", 2 * 1024 * 1024, false},
		{"1GB", 1 << 30, false},
		{"", 0, true},
		{"MB", 0, true},
		{"-5MB", 0, true},
		{"2XB", 0, true},
		{"1.2.3MB", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBytes(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseBytes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n         int64
		precision int
		want      string
	}{
		{0, 2, "0 B"},
		{-1, 0, "0 B"},
		{500, 0, "500 B"},
		{1024, 0, "1 KB"},
		{1536, 1, "1.5 KB"},
		{2048 * 1024, 0, "2 MB"},
		{2048*1024 + 1, 1, "2.0 MB"},
		{1 << 30, -3, "1 GB"},
	}

	for _, tt := range tests {
		if got := formatting.FormatBytes(tt.n, tt.precision); got != tt.want {
			t.Errorf("FormatBytes(%d, %d) = %q, want %q", tt.n, tt.precision, got, tt.want)
		}
	}
}
