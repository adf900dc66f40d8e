// Package log provides functionality for logging commands, errors and application events.
package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"skillscape/local-app/pkg/model"
)

// Fields carries structured key/value context for a log message.
type Fields map[string]any

// LogMessage represents a message to be logged
type LogMessage struct {
	Level   LogLevel
	Content string
	Fields  Fields
	Context context.Context
}

// Logger represents a logging instance that writes command, error and info log
// files through a single goroutine.
type Logger struct {
	commandLogger *slog.Logger
	errorLogger   *slog.Logger
	infoLogger    *slog.Logger
	commandFile   *os.File
	errorFile     *os.File
	infoFile      *os.File
	logChan       chan LogMessage
	done          chan struct{}
	wg            sync.WaitGroup
	level         LogLevel
}

// NewLogger creates a new Logger instance writing to the log folder and file
// names given in the configuration. Messages above the given level are dropped.
func NewLogger(cfg *model.Config, level LogLevel) (*Logger, error) {
	// Create log directory if it doesn't exist
	if err := os.MkdirAll(cfg.LogFolder, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Open command log file
	commandFilePath := filepath.Join(cfg.LogFolder, cfg.CommandLog)
	commandFile, err := os.OpenFile(commandFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open command log file: %w", err)
	}

	// Open error log file
	errorFilePath := filepath.Join(cfg.LogFolder, cfg.ErrorLog)
	errorFile, err := os.OpenFile(errorFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		commandFile.Close()
		return nil, fmt.Errorf("failed to open error log file: %w", err)
	}

	// Open info log file
	infoFilePath := filepath.Join(cfg.LogFolder, cfg.InfoLog)
	infoFile, err := os.OpenFile(infoFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		commandFile.Close()
		errorFile.Close()
		return nil, fmt.Errorf("failed to open info log file: %w", err)
	}

	// Create slog loggers
	commandLogger := slog.New(slog.NewJSONHandler(commandFile, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	errorLogger := slog.New(slog.NewJSONHandler(errorFile, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	infoLogger := slog.New(slog.NewJSONHandler(infoFile, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	logger := &Logger{
		commandLogger: commandLogger,
		errorLogger:   errorLogger,
		infoLogger:    infoLogger,
		commandFile:   commandFile,
		errorFile:     errorFile,
		infoFile:      infoFile,
		logChan:       make(chan LogMessage, 100), // Buffered channel with capacity of 100
		done:          make(chan struct{}),
		level:         level,
	}

	// Start the logging goroutine
	logger.wg.Add(1)
	go logger.processLogs()

	return logger, nil
}

// processLogs handles incoming log messages until Close is called, then drains
// whatever is still buffered.
func (l *Logger) processLogs() {
	defer l.wg.Done()
	for {
		select {
		case msg := <-l.logChan:
			l.write(msg)
		case <-l.done:
			for {
				select {
				case msg := <-l.logChan:
					l.write(msg)
				default:
					return
				}
			}
		}
	}
}

// write routes a single message to the slog logger for its level.
func (l *Logger) write(msg LogMessage) {
	ctx := msg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	args := make([]any, 0, len(msg.Fields))
	for key, value := range msg.Fields {
		args = append(args, slog.Any(key, value))
	}
	switch msg.Level {
	case LevelCommand:
		l.commandLogger.InfoContext(ctx, msg.Content, args...)
	case LevelError:
		l.errorLogger.ErrorContext(ctx, msg.Content, args...)
	default:
		l.infoLogger.Log(ctx, msg.Level.toSlogLevel(), msg.Content, args...)
	}
}

// log enqueues a message if its level passes the configured threshold. Command
// messages always pass.
func (l *Logger) log(ctx context.Context, level LogLevel, msg string, fields Fields) {
	if level != LevelCommand && level > l.level {
		return
	}
	l.logChan <- LogMessage{Level: level, Content: msg, Fields: fields, Context: ctx}
}

// Command logs an executed command to the command log.
func (l *Logger) Command(ctx context.Context, msg string, fields Fields) {
	l.log(ctx, LevelCommand, msg, fields)
}

// Error logs a failure to the error log.
func (l *Logger) Error(ctx context.Context, msg string, fields Fields) {
	l.log(ctx, LevelError, msg, fields)
}

// Warn logs a recoverable anomaly, such as a repaired cache inconsistency.
func (l *Logger) Warn(ctx context.Context, msg string, fields Fields) {
	l.log(ctx, LevelWarn, msg, fields)
}

// Info logs normal application events.
func (l *Logger) Info(ctx context.Context, msg string, fields Fields) {
	l.log(ctx, LevelInfo, msg, fields)
}

// Debug logs operation detail.
func (l *Logger) Debug(ctx context.Context, msg string, fields Fields) {
	l.log(ctx, LevelDebug, msg, fields)
}

// SetLevel changes the logging threshold.
func (l *Logger) SetLevel(level LogLevel) {
	l.level = level
}

// Close stops the logging goroutine and closes all log files
func (l *Logger) Close() error {
	close(l.done)
	l.wg.Wait() // Wait for the logging goroutine to finish

	if err := l.commandFile.Close(); err != nil {
		return fmt.Errorf("failed to close command log file: %w", err)
	}

	if err := l.errorFile.Close(); err != nil {
		return fmt.Errorf("failed to close error log file: %w", err)
	}

	if err := l.infoFile.Close(); err != nil {
		return fmt.Errorf("failed to close info log file: %w", err)
	}

	return nil
}
