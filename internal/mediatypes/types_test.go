package mediatypes

import "testing"

func TestIsVideo(t *testing.T) {
	tests := []struct {
		ext  string
		want bool
	}{
		{".mp4", true},
		{".mkv", true},
		{".mov", true},
		{".webm", true},
		{".m3u8", false},
		{".jpg", false},
		{".txt", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsVideo(tt.ext); got != tt.want {
			t.Errorf("IsVideo(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}
}

func TestGetMimeType(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{".mp4", "video/mp4"},
		{".ts", "video/mp2t"},
		{".m3u8", "application/x-mpegURL"},
		{".jpg", "image/jpeg"},
		{".xyz", "application/octet-stream"},
	}

	for _, tt := range tests {
		if got := GetMimeType(tt.ext); got != tt.want {
			t.Errorf("GetMimeType(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}
