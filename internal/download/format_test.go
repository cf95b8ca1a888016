package download

import "testing"

func TestSelectFormatRecognizedPlatform(t *testing.T) {
	cases := []struct {
		resolution string
		want       string
	}{
		{"480p", "bestvideo[height<=480]+bestaudio/best[height<=480]/best"},
		{"720p", "bestvideo[height<=720]+bestaudio/best[height<=720]/best"},
		{"1080p", "bestvideo[height<=1080]+bestaudio/best[height<=1080]/best"},
		{"best", "bestvideo+bestaudio/best"},
		// Unrecognized values fall back to the 720p ceiling.
		{"2160p", "bestvideo[height<=720]+bestaudio/best[height<=720]/best"},
		{"", "bestvideo[height<=720]+bestaudio/best[height<=720]/best"},
	}
	for _, tc := range cases {
		t.Run("res="+tc.resolution, func(t *testing.T) {
			if got := SelectFormat(true, tc.resolution); got != tc.want {
				t.Fatalf("SelectFormat(true, %q) = %q, want %q", tc.resolution, got, tc.want)
			}
		})
	}
}

func TestSelectFormatOtherPlatform(t *testing.T) {
	cases := []struct {
		resolution string
		want       string
	}{
		{"480p", "worst[height>=480]/best[height<=480]/worst"},
		{"best", "bestvideo+bestaudio/best"},
		// Non-primary platforms report unreliable heights: everything else
		// prefers at-least-HD with graceful degradation.
		{"720p", "bestvideo[height>=720]+bestaudio/best[height>=720]/best"},
		{"1080p", "bestvideo[height>=720]+bestaudio/best[height>=720]/best"},
		{"potato", "bestvideo[height>=720]+bestaudio/best[height>=720]/best"},
	}
	for _, tc := range cases {
		t.Run("res="+tc.resolution, func(t *testing.T) {
			if got := SelectFormat(false, tc.resolution); got != tc.want {
				t.Fatalf("SelectFormat(false, %q) = %q, want %q", tc.resolution, got, tc.want)
			}
		})
	}
}

func TestRecognizedPlatform(t *testing.T) {
	cases := []struct {
		url  string
		want bool
	}{
		{"https://www.youtube.com/watch?v=abc", true},
		{"https://youtu.be/abc", true},
		{"https://music.youtube.com/watch?v=abc", true},
		{"https://vimeo.com/12345", false},
		{"https://example.com/video.mp4", false},
		{"not a url", false},
	}
	for _, tc := range cases {
		if got := RecognizedPlatform(tc.url); got != tc.want {
			t.Fatalf("RecognizedPlatform(%q) = %v, want %v", tc.url, got, tc.want)
		}
	}
}
