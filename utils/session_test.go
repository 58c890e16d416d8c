package utils

import (
	"strings"
	"testing"
)

func TestParseUserAgent(t *testing.T) {
	tests := []struct {
		name        string
		userAgent   string
		wantBrowser string
		wantOS      string
		wantDevice  string
	}{
		{
			name:        "empty user agent",
			userAgent:   "",
			wantBrowser: "Unknown Browser",
			wantOS:      "Unknown OS",
			wantDevice:  "Desktop",
		},
		{
			name:        "desktop chrome",
			userAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			wantBrowser: "Chrome",
			wantOS:      "Windows",
			wantDevice:  "Desktop",
		},
		{
			name:        "iphone safari",
			userAgent:   "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			wantBrowser: "Safari",
			wantOS:      "iOS",
			wantDevice:  "iPhone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			browser, os, device := ParseUserAgent(tt.userAgent)
			if browser != tt.wantBrowser {
				t.Errorf("browser = %q, want %q", browser, tt.wantBrowser)
			}
			if os != tt.wantOS {
				t.Errorf("os = %q, want %q", os, tt.wantOS)
			}
			if device != tt.wantDevice {
				t.Errorf("device = %q, want %q", device, tt.wantDevice)
			}
		})
	}
}

func TestGenerateSessionName(t *testing.T) {
	name := GenerateSessionName("")
	if !strings.Contains(name, "Unknown Browser") || !strings.Contains(name, "Desktop") {
		t.Errorf("session name %q missing expected parts", name)
	}
}
