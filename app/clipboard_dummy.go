// golang.design/x/clipboard needs cgo outside Windows and has no js backend.

//go:build js || (!windows && !cgo)

package app

import "log/slog"

func initClipboard(logger *slog.Logger) {
	logger.Info("clipboard_disabled")
}

func clipboardWriteText(string) bool {
	return false
}
