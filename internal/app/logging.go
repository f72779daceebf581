package app

import (
	"log/slog"

	"github.com/treykane/cli-gallery/internal/logging"
)

// appLog is the structured logger for the terminal host. The TUI owns the
// screen, so the gallery command points logging at a file before starting
// the program (see logging.Configure).
var appLog = logging.New("app")

// setStatusError shows status in the footer and logs err with attrs.
//
//	m.setStatusError("Download failed", err, "id", item.ID)
func (m *Model) setStatusError(status string, err error, attrs ...any) {
	m.status = status
	fields := make([]any, 0, len(attrs)+2)
	fields = append(fields, slog.Any("error", err))
	fields = append(fields, attrs...)
	appLog.Error(status, fields...)
}
