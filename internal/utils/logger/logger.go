package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the verbosity and the optional log file.
type Config struct {
	Level    string
	FilePath string
}

// swappableWriter lets tests redirect console output after initialization.
type swappableWriter struct {
	mu     sync.RWMutex
	writer io.Writer
}

func (w *swappableWriter) Write(p []byte) (int, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.writer == nil {
		return len(p), nil
	}
	return w.writer.Write(p)
}

func (w *swappableWriter) Sync() error {
	return nil
}

// liveCore forwards to the cores installed by the latest applyConfig, so
// loggers handed out before a reconfiguration, including those derived with
// With, also reach a new log file.
type liveCore struct {
	fields []zapcore.Field
}

func (c liveCore) current() zapcore.Core {
	core := *activeCore.Load()
	if len(c.fields) > 0 {
		core = core.With(c.fields)
	}
	return core
}

func (liveCore) Enabled(l zapcore.Level) bool {
	return atomicLevel.Enabled(l)
}

func (c liveCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	return liveCore{fields: append(merged, fields...)}
}

func (c liveCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c liveCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	return c.current().Write(ent, fields)
}

func (liveCore) Sync() error {
	return (*activeCore.Load()).Sync()
}

var (
	activeCore    atomic.Pointer[zapcore.Core]
	sugarLogger   *zap.SugaredLogger
	baseLogger    *zap.Logger
	atomicLevel   = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	once          sync.Once
	mu            sync.RWMutex
	logFile       *os.File
	currentConfig Config
	stderrWriter  = &swappableWriter{writer: os.Stderr}
)

func applyConfig(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	level := parseLevel(cfg.Level)
	atomicLevel.SetLevel(level)

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeCaller = zapcore.ShortCallerEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(stderrWriter), atomicLevel),
	}

	filePath := strings.TrimSpace(cfg.FilePath)
	if filePath != "" {
		core, handle, err := buildFileCore(filePath)
		if err != nil {
			return err
		}
		if logFile != nil && logFile != handle {
			_ = logFile.Close()
		}
		logFile = handle
		cores = append(cores, core)
	} else if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	tee := zapcore.NewTee(cores...)
	activeCore.Store(&tee)
	if baseLogger == nil {
		baseLogger = zap.New(liveCore{}, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
		sugarLogger = baseLogger.Sugar()
		zap.ReplaceGlobals(baseLogger)
	}

	currentConfig = Config{Level: level.String(), FilePath: filePath}
	return nil
}

// buildFileCore opens path for appending and returns a JSON core writing to it.
func buildFileCore(path string) (zapcore.Core, *os.File, error) {
	cleaned := filepath.Clean(path)
	if dir := filepath.Dir(cleaned); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory %q: %w", dir, err)
		}
	}

	file, err := os.OpenFile(cleaned, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %q: %w", cleaned, err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(file), atomicLevel), file, nil
}

// InitWithConfig installs the process logger, reconfiguring it when it was
// already built with a different Config. The returned cleanup flushes and
// closes the log file.
func InitWithConfig(cfg Config) (*zap.SugaredLogger, func(), error) {
	requested := Config{Level: parseLevel(cfg.Level).String(), FilePath: strings.TrimSpace(cfg.FilePath)}

	var initErr error
	initializedHere := false
	once.Do(func() {
		initErr = applyConfig(cfg)
		initializedHere = true
	})
	if initErr != nil {
		return nil, nil, fmt.Errorf("logger initialization failed: %w", initErr)
	}

	if !initializedHere {
		mu.RLock()
		same := currentConfig == requested
		mu.RUnlock()
		if !same {
			if err := applyConfig(cfg); err != nil {
				return nil, nil, fmt.Errorf("logger reconfiguration failed: %w", err)
			}
		}
	}

	mu.RLock()
	defer mu.RUnlock()
	return sugarLogger, cleanupFunc(logFile), nil
}

// Logger returns the process logger, building an info-level console logger
// on first use.
func Logger() *zap.SugaredLogger {
	once.Do(func() {
		if err := applyConfig(Config{Level: "info"}); err != nil {
			panic(fmt.Sprintf("logger initialization failed: %v", err))
		}
	})

	mu.RLock()
	defer mu.RUnlock()
	return sugarLogger
}

func cleanupFunc(file *os.File) func() {
	return func() {
		mu.Lock()
		defer mu.Unlock()

		if baseLogger != nil {
			_ = baseLogger.Sync()
		}
		if file != nil {
			if err := file.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "error closing log file: %v\n", err)
			}
			if logFile == file {
				logFile = nil
				// Force the next InitWithConfig to rebuild the cores.
				currentConfig = Config{}
			}
		}
	}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// SetLogLevel changes the verbosity of the running logger.
func SetLogLevel(level string) {
	mu.Lock()
	defer mu.Unlock()

	l := parseLevel(level)
	atomicLevel.SetLevel(l)
	currentConfig.Level = l.String()
}

// Level reports the current verbosity.
func Level() zapcore.Level {
	return atomicLevel.Level()
}

// ReplaceStderrWriter redirects console output and returns the previous
// writer. A nil writer restores os.Stderr.
func ReplaceStderrWriter(w io.Writer) io.Writer {
	if w == nil {
		w = os.Stderr
	}

	stderrWriter.mu.Lock()
	defer stderrWriter.mu.Unlock()

	old := stderrWriter.writer
	stderrWriter.writer = w
	return old
}
