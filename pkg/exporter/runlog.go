package exporter

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// Logger receives progress messages for terminal display. A nil Logger
// means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// RunLog is the append-only run log and issue counter for one export run.
// Every message is written to the sink as a timestamped line of the form
//
//	2006-01-02 15:04:05,000 - LEVEL - message
//
// and optionally mirrored to a Logger for terminal display. An issue is a
// recorded, non-fatal failure; the counter is only read back for the final
// summary. RunLog is an explicit context object threaded through the
// pipeline, not process state: independent runs own independent RunLogs.
// The counter is atomic so an embedding caller may share one across
// concurrent runs, though a single run is strictly sequential.
type RunLog struct {
	mu     sync.Mutex
	sink   io.Writer
	mirror Logger
	issues atomic.Int64

	now func() time.Time // test hook
}

// NewRunLog returns a RunLog writing to sink. mirror may be nil.
func NewRunLog(sink io.Writer, mirror Logger) *RunLog {
	return &RunLog{sink: sink, mirror: mirror, now: time.Now}
}

// Infof appends an INFO line.
func (l *RunLog) Infof(format string, args ...any) {
	l.write("INFO", format, args...)
	if l.mirror != nil {
		l.mirror.Infof(format, args...)
	}
}

// Warnf appends a WARNING line.
func (l *RunLog) Warnf(format string, args ...any) {
	l.write("WARNING", format, args...)
	if l.mirror != nil {
		l.mirror.Warnf(format, args...)
	}
}

// Errorf appends an ERROR line.
func (l *RunLog) Errorf(format string, args ...any) {
	l.write("ERROR", format, args...)
	if l.mirror != nil {
		l.mirror.Errorf(format, args...)
	}
}

// RecordIssue increments the issue counter.
func (l *RunLog) RecordIssue() {
	l.issues.Add(1)
}

// Issues returns the number of issues recorded so far.
func (l *RunLog) Issues() int {
	return int(l.issues.Load())
}

func (l *RunLog) write(level, format string, args ...any) {
	t := l.now()
	stamp := fmt.Sprintf("%s,%03d", t.Format("2006-01-02 15:04:05"), t.Nanosecond()/1e6)

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.sink, "%s - %s - %s\n", stamp, level, fmt.Sprintf(format, args...))
}
