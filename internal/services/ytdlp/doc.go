// Package ytdlp wraps the yt-dlp command-line downloader. The client shells
// out for every operation; nothing is cached between calls. Callers own
// working-directory staging and move semantics.
package ytdlp
