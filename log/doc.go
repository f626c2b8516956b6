/*
Package log is the process-wide output controller for zeronsd. There are four inclusive
levels: Silent, Major, Minor and Debug. Setting MinorLevel implies MajorLevel output and
so on.

Major is for events an operator cares about: a sync pass committing a new serial, a
listen socket opening, a failed membership fetch. Minor carries the details behind a
Major event, such as per-source record counts. Debug is for developers.

The Print and Printf style functions differ from their fmt cousins in two ways: every
line of a multi-line message carries the level prefix, and a trailing newline is neither
needed nor honoured more than once.

Output that is not governed by levels (query logs, usage, fatal reports) should be
written to log.Out() so tests can capture it with SetOut.
*/
package log
