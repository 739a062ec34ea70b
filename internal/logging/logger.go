// Package logging provides categorized, debug-gated file logging for the
// discovery engine. Logs are written under <dir>/logs with one file per
// category per day. When debug mode is off every call is a no-op, so hot
// paths can log freely.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Category represents a log category/system.
type Category string

const (
	CategoryBoot      Category = "boot"      // Startup and wiring
	CategoryIntent    Category = "intent"    // Tokenization and classification
	CategoryEntity    Category = "entity"    // Entity extraction
	CategoryRank      Category = "rank"      // Scoring and fallback cascade
	CategoryStyle     Category = "style"     // Style profile updates
	CategoryCompose   Category = "compose"   // Reply assembly
	CategoryCatalog   Category = "catalog"   // Catalog fetches
	CategoryProfile   Category = "profile"   // Profile store operations
	CategoryKnowledge Category = "knowledge" // Knowledge source loads/reloads
	CategoryLLM       Category = "llm"       // Optional generative hooks
	CategoryEngine    Category = "engine"    // Pipeline orchestration
)

// Log levels.
const (
	LevelDebug = 0
	LevelInfo  = 1
	LevelWarn  = 2
	LevelError = 3
)

// Options controls gating. It is supplied by the caller (internal/config)
// rather than read from disk here.
type Options struct {
	DebugMode  bool
	Categories map[string]bool // nil = all categories enabled, otherwise allowlist
	Level      string          // debug, info, warn, error
}

// CategorySet converts a configured category list into the allowlist form.
// An empty list means all categories.
func CategorySet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

// Logger wraps a standard logger with category and file output.
type Logger struct {
	category Category
	logger   *log.Logger
	file     *os.File
}

var (
	loggers   = make(map[Category]*Logger)
	loggersMu sync.RWMutex
	logsDir   string
	opts      Options
	optsMu    sync.RWMutex
	logLevel  int
)

// Configure sets up the logging directory and gating options. Call once at
// startup; calling with DebugMode false keeps logging a silent no-op.
func Configure(dir string, o Options) error {
	optsMu.Lock()
	opts = o
	switch o.Level {
	case "debug":
		logLevel = LevelDebug
	case "warn", "warning":
		logLevel = LevelWarn
	case "error":
		logLevel = LevelError
	default:
		logLevel = LevelInfo
	}
	optsMu.Unlock()

	if !o.DebugMode {
		return nil
	}
	if dir == "" {
		return fmt.Errorf("logging directory required in debug mode")
	}

	logsDir = filepath.Join(dir, "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return fmt.Errorf("create logs directory: %w", err)
	}

	boot := Get(CategoryBoot)
	boot.Info("=== shopmind logging configured ===")
	boot.Info("logs directory: %s", logsDir)
	boot.Info("level: %s", o.Level)
	return nil
}

// IsDebugMode reports whether debug logging is enabled.
func IsDebugMode() bool {
	optsMu.RLock()
	defer optsMu.RUnlock()
	return opts.DebugMode
}

// IsCategoryEnabled reports whether a category is enabled.
func IsCategoryEnabled(category Category) bool {
	optsMu.RLock()
	defer optsMu.RUnlock()
	if !opts.DebugMode {
		return false
	}
	if opts.Categories == nil {
		return true
	}
	return opts.Categories[string(category)]
}

// Get returns (or creates) a logger for the given category. Returns a no-op
// logger if debug mode or the category is disabled.
func Get(category Category) *Logger {
	if !IsCategoryEnabled(category) || logsDir == "" {
		return &Logger{category: category}
	}

	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}

	// Date prefix for easy rotation.
	date := time.Now().Format("2006-01-02")
	logPath := filepath.Join(logsDir, fmt.Sprintf("%s_%s.log", date, category))

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] could not open %s: %v\n", logPath, err)
		return &Logger{category: category}
	}

	l := &Logger{
		category: category,
		file:     file,
		logger:   log.New(file, "", log.Ldate|log.Ltime|log.Lmicroseconds),
	}
	loggers[category] = l
	return l
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.logger == nil || logLevel > LevelDebug {
		return
	}
	l.logger.Printf("[DEBUG] %s", fmt.Sprintf(format, args...))
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	if l.logger == nil || logLevel > LevelInfo {
		return
	}
	l.logger.Printf("[INFO] %s", fmt.Sprintf(format, args...))
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.logger == nil || logLevel > LevelWarn {
		return
	}
	l.logger.Printf("[WARN] %s", fmt.Sprintf(format, args...))
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Printf("[ERROR] %s", fmt.Sprintf(format, args...))
}

// CloseAll closes all open log files (call at shutdown).
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	for _, l := range loggers {
		if l.file != nil {
			l.file.Close()
		}
	}
	loggers = make(map[Category]*Logger)
}

// =============================================================================
// CONVENIENCE FUNCTIONS - Quick logging without getting a logger first
// =============================================================================

// Boot logs to the boot category.
func Boot(format string, args ...interface{}) { Get(CategoryBoot).Info(format, args...) }

// BootError logs error to the boot category.
func BootError(format string, args ...interface{}) { Get(CategoryBoot).Error(format, args...) }

// Intent logs to the intent category.
func Intent(format string, args ...interface{}) { Get(CategoryIntent).Info(format, args...) }

// IntentDebug logs debug to the intent category.
func IntentDebug(format string, args ...interface{}) { Get(CategoryIntent).Debug(format, args...) }

// Entity logs to the entity category.
func Entity(format string, args ...interface{}) { Get(CategoryEntity).Info(format, args...) }

// Rank logs to the rank category.
func Rank(format string, args ...interface{}) { Get(CategoryRank).Info(format, args...) }

// RankDebug logs debug to the rank category.
func RankDebug(format string, args ...interface{}) { Get(CategoryRank).Debug(format, args...) }

// Style logs to the style category.
func Style(format string, args ...interface{}) { Get(CategoryStyle).Info(format, args...) }

// Compose logs to the compose category.
func Compose(format string, args ...interface{}) { Get(CategoryCompose).Info(format, args...) }

// Catalog logs to the catalog category.
func Catalog(format string, args ...interface{}) { Get(CategoryCatalog).Info(format, args...) }

// CatalogWarn logs warning to the catalog category.
func CatalogWarn(format string, args ...interface{}) { Get(CategoryCatalog).Warn(format, args...) }

// Profile logs to the profile category.
func Profile(format string, args ...interface{}) { Get(CategoryProfile).Info(format, args...) }

// ProfileWarn logs warning to the profile category.
func ProfileWarn(format string, args ...interface{}) { Get(CategoryProfile).Warn(format, args...) }

// Knowledge logs to the knowledge category.
func Knowledge(format string, args ...interface{}) { Get(CategoryKnowledge).Info(format, args...) }

// KnowledgeWarn logs warning to the knowledge category.
func KnowledgeWarn(format string, args ...interface{}) {
	Get(CategoryKnowledge).Warn(format, args...)
}

// LLM logs to the llm category.
func LLM(format string, args ...interface{}) { Get(CategoryLLM).Info(format, args...) }

// LLMWarn logs warning to the llm category.
func LLMWarn(format string, args ...interface{}) { Get(CategoryLLM).Warn(format, args...) }

// Engine logs to the engine category.
func Engine(format string, args ...interface{}) { Get(CategoryEngine).Info(format, args...) }

// EngineWarn logs warning to the engine category.
func EngineWarn(format string, args ...interface{}) { Get(CategoryEngine).Warn(format, args...) }

// =============================================================================
// TIMING HELPERS
// =============================================================================

// Timer helps measure operation duration.
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation.
func StartTimer(category Category, operation string) *Timer {
	return &Timer{category: category, op: operation, start: time.Now()}
}

// Stop ends the timer and logs the duration at debug level.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("%s completed in %v", t.op, elapsed)
	return elapsed
}
