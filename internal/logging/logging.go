package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/saltyorg/inman/internal/config"
)

const (
	DefaultLogFilePath = "inman.log"
	DefaultFileLevel   = "trace"
	DefaultMaxSizeMB   = 50
	DefaultMaxBackups  = 5
	DefaultMaxAgeDays  = 30
	DefaultCompress    = true

	timeFormat = "2006-01-02 15:04:05"
)

var (
	mu         sync.Mutex
	fileWriter *lumberjack.Logger
)

// Apply configures the process-wide logger with two sinks: the console, which
// only shows events at level or above, and a rotating log file, which receives
// everything down to log.file_level (trace by default).
// logFilePath is the destination file; when empty, a default filename in the current working directory is used.
// Calling Apply again replaces both sinks.
func Apply(level string, loader *config.Loader, logFilePath string) {
	applyOutputs(level, loader, logFilePath, os.Stdout)
}

// For returns a logger tagged with the owning component.
// Call it after Apply; the child keeps the outputs that were active when it was created.
func For(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Close flushes and closes the log file, if one is open.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if fileWriter == nil {
		return nil
	}
	err := fileWriter.Close()
	fileWriter = nil
	return err
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func applyOutputs(level string, loader *config.Loader, logFilePath string, console io.Writer) {
	consoleLevel := parseLevel(level)
	fileLevel := parseLevel(loader.String("log.file_level", DefaultFileLevel))

	maxSize := DefaultMaxSizeMB
	if val := loader.Int("log.max_size_mb", DefaultMaxSizeMB); val > 0 {
		maxSize = val
	}
	maxBackups := DefaultMaxBackups
	if val := loader.Int("log.max_backups", DefaultMaxBackups); val >= 0 {
		maxBackups = val
	}
	maxAgeDays := DefaultMaxAgeDays
	if val := loader.Int("log.max_age_days", DefaultMaxAgeDays); val >= 0 {
		maxAgeDays = val
	}
	compress := loader.Bool("log.compress", DefaultCompress)

	if logFilePath == "" {
		logFilePath = DefaultLogFilePath
	}

	mu.Lock()
	defer mu.Unlock()

	if fileWriter != nil {
		_ = fileWriter.Close()
		fileWriter = nil
	}

	consoleOutput := zerolog.ConsoleWriter{Out: console, TimeFormat: timeFormat}
	filteredConsole := &zerolog.FilteredLevelWriter{
		Writer: zerolog.LevelWriterAdapter{Writer: consoleOutput},
		Level:  consoleLevel,
	}

	if err := ensureLogDir(logFilePath); err != nil {
		zerolog.SetGlobalLevel(consoleLevel)
		log.Logger = zerolog.New(filteredConsole).With().Timestamp().Logger()
		log.Error().Err(err).Str("path", logFilePath).Msg("Failed to prepare log directory; logging to console only")
		return
	}

	fileWriter = &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   compress,
	}

	fileConsole := zerolog.ConsoleWriter{
		Out:        fileWriter,
		TimeFormat: timeFormat,
		NoColor:    true,
	}
	filteredFile := &zerolog.FilteredLevelWriter{
		Writer: zerolog.LevelWriterAdapter{Writer: fileConsole},
		Level:  fileLevel,
	}

	// The global level is the more verbose of the two sinks; each sink filters on its own.
	zerolog.SetGlobalLevel(min(consoleLevel, fileLevel))

	multi := zerolog.MultiLevelWriter(filteredConsole, filteredFile)
	log.Logger = zerolog.New(multi).With().Timestamp().Logger()
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
