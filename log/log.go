package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

type logLevel int

const (
	SilentLevel logLevel = iota
	MajorLevel
	MinorLevel
	DebugLevel
)

var (
	majorPrefix = ""
	minorPrefix = "  "
	debugPrefix = "   Dbg:"

	// The sync loop, the signal loop and every DNS server go-routine all log, so
	// writes and settings are serialized by mu. Interleaved lines are unreadable.
	mu    sync.Mutex
	out   io.Writer = os.Stdout
	level logLevel
)

func (t logLevel) String() string {
	switch t {
	case MajorLevel:
		return "Major"
	case MinorLevel:
		return "Minor"
	case DebugLevel:
		return "Debug"
	}

	return "Silent"
}

// ParseLevel converts the String() form of a level back into a level. Case is ignored.
func ParseLevel(s string) (logLevel, error) {
	for _, l := range []logLevel{SilentLevel, MajorLevel, MinorLevel, DebugLevel} {
		if strings.EqualFold(s, l.String()) {
			return l, nil
		}
	}

	return SilentLevel, fmt.Errorf("Unknown log level '%s'", s)
}

// SetOut replaces the output writer. The default is os.Stdout. Panics on a nil writer as
// that is always a programming error.
func SetOut(w io.Writer) {
	if w == nil {
		panic("log.SetOut() called with a nil io.Writer")
	}
	mu.Lock()
	out = w
	mu.Unlock()
}

// Out returns the current writer for output which is not controlled by levels, such as
// query logs and usage. Never nil.
func Out() io.Writer {
	mu.Lock()
	defer mu.Unlock()

	return out
}

// SetLevel sets the current logging level.
func SetLevel(l logLevel) {
	mu.Lock()
	level = l
	mu.Unlock()
}

// Level returns the current level.
func Level() logLevel {
	mu.Lock()
	defer mu.Unlock()

	return level
}

// IfMajor returns true if Major output is written. The If* functions exist for callers
// whose log arguments are expensive to evaluate.
func IfMajor() bool {
	return Level() >= MajorLevel
}

func IfMinor() bool {
	return Level() >= MinorLevel
}

func IfDebug() bool {
	return Level() >= DebugLevel
}

// Majorf is the fmt.Printf form of Major. A trailing newline is always supplied so the
// caller should not include one.
func Majorf(format string, a ...interface{}) (int, error) {
	return emit(MajorLevel, majorPrefix, func() string { return fmt.Sprintf(format, a...) })
}

// Major is the fmt.Print form of logging at MajorLevel. Being fmt.Print based, spaces are
// only added between operands when neither is a string.
func Major(a ...interface{}) (int, error) {
	return emit(MajorLevel, majorPrefix, func() string { return fmt.Sprint(a...) })
}

// Minorf is the fmt.Printf form of Minor.
func Minorf(format string, a ...interface{}) (int, error) {
	return emit(MinorLevel, minorPrefix, func() string { return fmt.Sprintf(format, a...) })
}

// Minor logs at MinorLevel which also implies MajorLevel.
func Minor(a ...interface{}) (int, error) {
	return emit(MinorLevel, minorPrefix, func() string { return fmt.Sprint(a...) })
}

// Debugf is the fmt.Printf form of Debug.
func Debugf(format string, a ...interface{}) (int, error) {
	return emit(DebugLevel, debugPrefix, func() string { return fmt.Sprintf(format, a...) })
}

// Debug is for developers. Nobody else should want to see this output.
func Debug(a ...interface{}) (int, error) {
	return emit(DebugLevel, debugPrefix, func() string { return fmt.Sprint(a...) })
}

// emit formats the message only if the level is active, then writes every line of it with
// the prefix prepended. Trailing empty lines are discarded and a single newline ends the
// output.
func emit(want logLevel, prefix string, format func() string) (int, error) {
	mu.Lock()
	defer mu.Unlock()
	if level < want {
		return 0, nil
	}

	lines := strings.Split(format(), "\n")
	for len(lines) > 1 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(prefix)
		b.WriteString(l)
		b.WriteByte('\n')
	}

	return io.WriteString(out, b.String())
}
