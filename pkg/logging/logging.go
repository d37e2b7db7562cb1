package logging

import (
	"errors"
	"io"
	"os"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Logger is the global logger instance
var Logger = zap.NewNop()

// New builds a console logger writing to w. Only warnings and errors are
// written unless debug is set.
func New(w io.Writer, debug bool, appName, appVersion string) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	encCfg.StacktraceKey = ""

	level := zapcore.WarnLevel
	if debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(zapcore.AddSync(w)), level)
	logger := zap.New(core)
	if debug {
		// Add default fields
		logger = logger.With(zap.String("appName", appName), zap.String("appVersion", appVersion))
	}
	return logger
}

// Setup replaces the global logger with one built by New.
func Setup(w io.Writer, debug bool, appName, appVersion string) *zap.Logger {
	Logger = New(w, debug, appName, appVersion)
	zap.ReplaceGlobals(Logger)
	return Logger
}

// Sync flushes logger when stderr is a terminal or a regular file. Other
// destinations such as pipes are left alone, and EINVAL from a device that
// cannot be synced is not reported.
func Sync(logger *zap.Logger, stderr *os.File) error {
	if !term.IsTerminal(int(stderr.Fd())) && !isRegularFile(stderr) {
		return nil
	}
	if err := logger.Sync(); err != nil && !errors.Is(err, syscall.EINVAL) {
		return err
	}
	return nil
}

func isRegularFile(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode().IsRegular()
}
