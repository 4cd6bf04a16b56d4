package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger adapts logrus to ports.Logger.
type Logger struct {
	log *logrus.Logger
}

// New creates a Logger writing to out at the given level.
func New(level string, out io.Writer) (*Logger, error) {
	if out == nil {
		out = os.Stderr
	}
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lg := &Logger{log: l}
	if err := lg.SetLevel(level); err != nil {
		return nil, err
	}
	return lg, nil
}

// Discard returns a Logger that drops everything. Used by tests.
func Discard() *Logger {
	lg, _ := New("error", io.Discard)
	return lg
}

// SetLevel accepts debug, info, warn(ing), error or fatal.
// An empty level leaves the current level unchanged.
func (l *Logger) SetLevel(level string) error {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "":
		return nil
	case "debug":
		l.log.SetLevel(logrus.DebugLevel)
	case "info":
		l.log.SetLevel(logrus.InfoLevel)
	case "warning", "warn":
		l.log.SetLevel(logrus.WarnLevel)
	case "error":
		l.log.SetLevel(logrus.ErrorLevel)
	case "fatal":
		l.log.SetLevel(logrus.FatalLevel)
	default:
		return fmt.Errorf("bad log level %q (want debug|info|warn|error|fatal)", level)
	}
	return nil
}

// Level returns the active level name.
func (l *Logger) Level() string {
	return l.log.GetLevel().String()
}

func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Debug(msg)
}

func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Info(msg)
}

func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Warn(msg)
}

func (l *Logger) Error(msg string, err error, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).WithError(err).Error(msg)
}

// Writer returns a pipe that logs each line at warn level, for http.Server.ErrorLog.
func (l *Logger) Writer() *io.PipeWriter {
	return l.log.WriterLevel(logrus.WarnLevel)
}
