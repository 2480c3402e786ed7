package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Logger writes info lines to stdout and combined.log, and error lines to
// stderr, combined.log and error.log. It satisfies services.Logger.
type Logger struct {
	info  *log.Logger
	err   *log.Logger
	files []*os.File
}

// NewLogger opens the log files under dir. An empty dir logs to the console only.
func NewLogger(dir string) (*Logger, error) {
	infoOut := []io.Writer{os.Stdout}
	errOut := []io.Writer{os.Stderr}
	l := &Logger{}

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		combined, err := openLogFile(filepath.Join(dir, "combined.log"))
		if err != nil {
			return nil, err
		}
		errorsFile, err := openLogFile(filepath.Join(dir, "error.log"))
		if err != nil {
			combined.Close()
			return nil, err
		}
		l.files = append(l.files, combined, errorsFile)
		infoOut = append(infoOut, combined)
		errOut = append(errOut, combined, errorsFile)
	}

	l.info = log.New(io.MultiWriter(infoOut...), "INFO  ", log.LstdFlags|log.Lmicroseconds)
	l.err = log.New(io.MultiWriter(errOut...), "ERROR ", log.LstdFlags|log.Lmicroseconds)
	return l, nil
}

// NewNopLogger discards everything
func NewNopLogger() *Logger {
	return &Logger{
		info: log.New(io.Discard, "", 0),
		err:  log.New(io.Discard, "", 0),
	}
}

func (l *Logger) Infof(format string, args ...any) {
	l.info.Printf(format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.err.Printf(format, args...)
}

// Writer exposes the info stream, used for the HTTP access log
func (l *Logger) Writer() io.Writer {
	return l.info.Writer()
}

func (l *Logger) Close() error {
	var first error
	for _, f := range l.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func openLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
