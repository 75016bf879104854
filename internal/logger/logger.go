package logger

import (
	"fmt"
	"os"

	"github.com/sqve/git-artifact/internal/config"
	"github.com/sqve/git-artifact/internal/styles"
)

// Init sets the output mode for all logging helpers.
func Init(plain, debug bool) {
	config.Global.Plain = plain
	config.Global.Debug = debug
}

func isPlain() bool {
	return config.IsPlain()
}

// Debug prints debug information when debug mode is enabled
func Debug(format string, args ...any) {
	if config.IsDebug() {
		fmt.Fprintf(os.Stderr, "%s "+format+"\n", append([]any{styles.Render(&styles.Dimmed, "[DEBUG]")}, args...)...)
	}
}

// Info prints informational messages
func Info(format string, args ...any) {
	if isPlain() {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
		return
	}
	fmt.Fprintf(os.Stderr, "%s "+format+"\n", append([]any{styles.Render(&styles.Info, "→")}, args...)...)
}

// Success prints success messages
func Success(format string, args ...any) {
	if isPlain() {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
		return
	}
	fmt.Fprintf(os.Stderr, "%s "+format+"\n", append([]any{styles.Render(&styles.Success, "✓")}, args...)...)
}

// Warning prints warnings that do not stop the run
func Warning(format string, args ...any) {
	if isPlain() {
		fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
		return
	}
	fmt.Fprintf(os.Stderr, "%s "+format+"\n", append([]any{styles.Render(&styles.Warning, "⚠")}, args...)...)
}

// Error prints error messages to stderr
func Error(format string, args ...any) {
	if isPlain() {
		fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
		return
	}
	fmt.Fprintf(os.Stderr, "%s "+format+"\n", append([]any{styles.Render(&styles.Error, "✗")}, args...)...)
}
