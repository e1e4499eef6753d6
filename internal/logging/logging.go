// Package logging provides per-run file logging for the vedit CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/five82/vedit/internal/util"
)

// Logger writes leveled printf-style messages to a run log.
// A nil *Logger is valid and discards everything.
type Logger struct {
	sugar    *zap.SugaredLogger
	file     *os.File
	filePath string
	runID    string
}

// DefaultLogDir returns ~/.local/state/vedit/logs, or ./logs when the home
// directory is unknown.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "logs"
	}
	return filepath.Join(home, ".local", "state", "vedit", "logs")
}

// Setup creates a logger writing to vedit_<command>_<timestamp>.log in logDir.
// Returns nil if logging is disabled (noLog=true).
func Setup(logDir, command string, verbose, noLog bool) (*Logger, error) {
	if noLog {
		return nil, nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filePath := filepath.Join(logDir, fmt.Sprintf("vedit_%s_%s.log", command, timestamp))

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file %s: %w", filePath, err)
	}

	l := New(file, verbose)
	l.file = file
	l.filePath = filePath

	l.Info("vedit %s starting", command)
	if verbose {
		l.Info("Debug level logging enabled")
	}
	l.Info("Log file: %s", filePath)
	host := util.GetSystemInfo()
	l.Info("Host: %s (%s/%s, %d CPUs)", host.Hostname, host.OS, host.Arch, host.NumCPU)

	return l, nil
}

// New creates a logger writing to w with a fresh run ID.
func New(w io.Writer, verbose bool) *Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05")
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)

	runID := uuid.NewString()
	return &Logger{
		sugar: zap.New(core).Sugar().With("run_id", runID),
		runID: runID,
	}
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	_ = l.sugar.Sync()
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// FilePath returns the path to the log file.
func (l *Logger) FilePath() string {
	if l == nil {
		return ""
	}
	return l.filePath
}

// RunID returns the identifier attached to every line of this run.
func (l *Logger) RunID() string {
	if l == nil {
		return ""
	}
	return l.runID
}

// Info logs an info-level message.
func (l *Logger) Info(format string, args ...any) {
	if l == nil {
		return
	}
	l.sugar.Infof(format, args...)
}

// Debug logs a debug-level message (only if verbose mode is enabled).
func (l *Logger) Debug(format string, args ...any) {
	if l == nil {
		return
	}
	l.sugar.Debugf(format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) {
	if l == nil {
		return
	}
	l.sugar.Warnf(format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	if l == nil {
		return
	}
	l.sugar.Errorf(format, args...)
}

// With returns a child logger carrying extra key/value context.
func (l *Logger) With(keysAndValues ...any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{
		sugar:    l.sugar.With(keysAndValues...),
		filePath: l.filePath,
		runID:    l.runID,
	}
}
