package ytdlp

// Chapter is a named time-bounded segment of a video, offsets in seconds.
type Chapter struct {
	Title     string  `json:"title"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// VideoInfo is the subset of the yt-dlp metadata dump ytbridge consumes.
// A missing or empty chapters array is valid; not every video defines
// chapters.
type VideoInfo struct {
	Title    string    `json:"title"`
	Chapters []Chapter `json:"chapters"`
}

// HasChapters reports whether the metadata carries at least one chapter.
func (v VideoInfo) HasChapters() bool {
	return len(v.Chapters) > 0
}
