package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"qa_automation/domain/entities"
	"qa_automation/infrastructure/config"
)

// writerHook writes entries of the given levels to a writer with its own formatter
type writerHook struct {
	writer    io.Writer
	formatter logrus.Formatter
	levels    []logrus.Level
}

func (h *writerHook) Levels() []logrus.Level {
	return h.levels
}

func (h *writerHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.writer.Write(line)
	return err
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup creates the logger: INFO and above go to the console, every enabled
// level goes to a rotated file test_execution_<timestamp>.log in s.Dir.
// Closing the returned closer closes the log file.
func Setup(s config.LogSettings, console io.Writer) (*logrus.Logger, io.Closer, error) {
	level, err := logrus.ParseLevel(s.Level)
	if err != nil {
		return nil, nil, &entities.ConfigurationError{Field: "LOG_LEVEL", Reason: err.Error()}
	}
	if console == nil {
		console = os.Stdout
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetOutput(io.Discard)

	textFormatter := &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	}
	logger.SetFormatter(textFormatter)

	logger.AddHook(&writerHook{
		writer:    console,
		formatter: textFormatter,
		levels:    levelsUpTo(logrus.InfoLevel),
	})

	if s.Dir == "" {
		return logger, nopCloser{}, nil
	}

	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(s.Dir, fmt.Sprintf("test_execution_%s.log", time.Now().Format("20060102_150405"))),
		MaxSize:    s.MaxSizeMB,
		MaxBackups: s.MaxBackups,
	}

	var fileFormatter logrus.Formatter = textFormatter
	if s.JSON {
		fileFormatter = &logrus.JSONFormatter{}
	}
	logger.AddHook(&writerHook{
		writer:    file,
		formatter: fileFormatter,
		levels:    logrus.AllLevels,
	})

	logger.WithField("file", file.Filename).Debug("Logger initialized")
	return logger, file, nil
}

// Component returns a logger tagged with a component name
func Component(logger logrus.FieldLogger, name string) logrus.FieldLogger {
	return logger.WithField("component", name)
}

func levelsUpTo(max logrus.Level) []logrus.Level {
	levels := make([]logrus.Level, 0, len(logrus.AllLevels))
	for _, l := range logrus.AllLevels {
		if l <= max {
			levels = append(levels, l)
		}
	}
	return levels
}
