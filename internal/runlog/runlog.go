// Package runlog writes a rotating audit log of import runs under the
// workspace directory.
package runlog

import (
	"io"
	"log"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSizeMB  = 5
	maxBackups = 3
)

// Logger is an append-only run log with rotation.
type Logger struct {
	*log.Logger
	sink io.Closer
}

// Open returns a logger writing to path with rotation. Opening never
// fails; lumberjack creates the file lazily on first write.
func Open(path string) *Logger {
	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	}
	return &Logger{
		Logger: log.New(sink, "", log.LstdFlags),
		sink:   sink,
	}
}

// Discard returns a logger that writes nowhere. Used when no workspace
// directory exists and by tests.
func Discard() *Logger {
	return &Logger{Logger: log.New(io.Discard, "", 0)}
}

func (l *Logger) Close() error {
	if l.sink == nil {
		return nil
	}
	return l.sink.Close()
}
