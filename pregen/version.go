/*
Package pregen holds the constants stamped into the zeronsd executable at release time.
*/
package pregen

const (
	ProgramName = "zeronsd"
	ProjectURL  = "https://github.com/markdingo/zeronsd"

	// Version and ReleaseDate are generated from ChangeLog.md
	Version     = "v0.5.0"
	ReleaseDate = "2026-10-19"
)
