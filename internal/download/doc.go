// Package download implements the video download workflow: URL validation,
// platform-aware format selection, a staged yt-dlp invocation, optional
// chapter splitting through ffmpeg, and an atomic move of all produced files
// into the downloads directory.
//
// Every invocation owns a private staging directory nested under the
// downloads directory. The staging directory is removed on every exit path;
// files only ever reach the downloads directory through the finalize step,
// so a failed run leaves no partial artifacts behind.
package download
