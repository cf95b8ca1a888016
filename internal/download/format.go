package download

import (
	"net/url"
	"strings"
)

// platformMarkers identify hosts whose height metadata is reliable enough
// for strict resolution ceilings.
var platformMarkers = []string{"youtube.com", "youtu.be"}

// RecognizedPlatform reports whether the URL points at a primary video
// platform. The check is advisory; it only drives format selection.
func RecognizedPlatform(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, marker := range platformMarkers {
		if strings.Contains(host, marker) {
			return true
		}
	}
	return false
}

// SelectFormat derives the yt-dlp -f expression for a platform class and
// requested resolution.
//
// Recognized platforms get a strict height ceiling with graceful fallback.
// Other platforms often report unreliable heights, so everything except
// 480p and best prefers "at least HD" and degrades from there.
func SelectFormat(recognized bool, resolution string) string {
	if recognized {
		switch resolution {
		case "480p":
			return "bestvideo[height<=480]+bestaudio/best[height<=480]/best"
		case "720p":
			return "bestvideo[height<=720]+bestaudio/best[height<=720]/best"
		case "1080p":
			return "bestvideo[height<=1080]+bestaudio/best[height<=1080]/best"
		case "best":
			return "bestvideo+bestaudio/best"
		default:
			return "bestvideo[height<=720]+bestaudio/best[height<=720]/best"
		}
	}
	switch resolution {
	case "480p":
		return "worst[height>=480]/best[height<=480]/worst"
	case "best":
		return "bestvideo+bestaudio/best"
	default:
		return "bestvideo[height>=720]+bestaudio/best[height>=720]/best"
	}
}
