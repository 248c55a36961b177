package safe

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/secmon-lab/cipher/pkg/utils/logging"
)

// Close closes closer and logs a failure instead of returning it.
// A nil closer is ignored.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Error("Failed to close", slog.Any("error", err))
	}
}

// Write writes data to w and logs a failure instead of returning it.
// A nil writer is ignored.
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	if _, err := w.Write(data); err != nil {
		logging.From(ctx).Error("Failed to write", slog.Any("error", err))
	}
}

// WriteJSON encodes v as indented JSON followed by a newline into w.
// Encoding and write failures are logged.
func WriteJSON(ctx context.Context, w io.Writer, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logging.From(ctx).Error("Failed to encode JSON", slog.Any("error", err))
		return
	}
	Write(ctx, w, append(data, '\n'))
}
