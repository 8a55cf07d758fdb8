package navigation

import "fmt"

var LoggerEnabled = false

// Logger is the logging surface used across the package.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

type defaultLogger struct {
}

func (d *defaultLogger) Debug(format string, args ...any) {
	if LoggerEnabled {
		fmt.Printf("[DEBUG] "+format+"\n", args...)
	}
}

func (d *defaultLogger) Info(format string, args ...any) {
	if LoggerEnabled {
		fmt.Printf("[INFO] "+format+"\n", args...)
	}
}

func (d *defaultLogger) Warn(format string, args ...any) {
	if LoggerEnabled {
		fmt.Printf("[WARN] "+format+"\n", args...)
	}
}

func (d *defaultLogger) Error(format string, args ...any) {
	if LoggerEnabled {
		if len(args) == 1 {
			if t, ok := args[0].(map[string]any); ok {
				fmt.Printf("[ERROR] %s %+v\n", format, t)
				return
			}
		}
		fmt.Printf("[ERROR] "+format+"\n", args...)
	}
}

func getLogger(lgrs ...Logger) Logger {
	if len(lgrs) > 0 && lgrs[0] != nil {
		return lgrs[0]
	}
	return &defaultLogger{}
}

// DefaultLogger returns the package logger, silent unless LoggerEnabled is set.
func DefaultLogger() Logger {
	return &defaultLogger{}
}
