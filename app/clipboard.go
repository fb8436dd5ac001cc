//go:build !js && (windows || cgo)

package app

import (
	"log/slog"

	"golang.design/x/clipboard"
)

var clipboardReady bool

func initClipboard(logger *slog.Logger) {
	err := clipboard.Init()
	clipboardReady = err == nil
	if err != nil {
		logger.Warn("clipboard_unavailable", "error", err)
	}
}

// clipboardWriteText copies s and reports whether the clipboard took it.
func clipboardWriteText(s string) bool {
	if !clipboardReady {
		return false
	}
	clipboard.Write(clipboard.FmtText, []byte(s))
	return true
}
