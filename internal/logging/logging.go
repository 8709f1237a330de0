// Package logging builds the append-only file logger used by the driver.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Conventional log location.
const (
	DefaultDir  = "logs"
	DefaultFile = "running_logs.log"
)

// Logger is a logrus logger bound to an open log file.
// Create it once at startup and Close it before exit.
type Logger struct {
	*logrus.Logger
	file *os.File
}

// Options configures New.
type Options struct {
	Dir     string       // defaults to DefaultDir
	File    string       // defaults to DefaultFile
	Level   logrus.Level // defaults to info
	Console io.Writer    // optional mirror, e.g. os.Stderr
}

// New opens dir/file for appending, creating the directory if needed.
func New(o Options) (*Logger, error) {
	if o.Dir == "" {
		o.Dir = DefaultDir
	}
	if o.File == "" {
		o.File = DefaultFile
	}
	if o.Level == 0 {
		o.Level = logrus.InfoLevel
	}

	if err := os.MkdirAll(o.Dir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create log directory")
	}
	file, err := os.OpenFile(filepath.Join(o.Dir, o.File), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open log file")
	}

	var out io.Writer = file
	if o.Console != nil {
		out = io.MultiWriter(file, o.Console)
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(o.Level)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	return &Logger{Logger: l, file: file}, nil
}

// Module returns an entry tagged with the module it logs for.
func (l *Logger) Module(name string) *logrus.Entry {
	return l.WithField("module", name)
}

// Path returns the log file path.
func (l *Logger) Path() string {
	return l.file.Name()
}

// Close flushes and closes the log file. Further writes go to stderr.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	l.SetOutput(os.Stderr)
	err := l.file.Sync()
	if cerr := l.file.Close(); err == nil {
		err = cerr
	}
	l.file = nil
	return errors.Wrap(err, "close log file")
}
