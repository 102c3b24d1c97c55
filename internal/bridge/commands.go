package bridge

import (
	"context"
	"encoding/json"

	"github.com/biovault/bvconsole/internal/logview"
)

// logTextArgs are the arguments of get_desktop_log_text. The webview sends
// camelCase keys.
type logTextArgs struct {
	MaxBytes int64 `json:"maxBytes"`
}

// RegisterDesktopCommands wires the built-in desktop commands into the
// server registry.
func RegisterDesktopCommands(s *Server, version string, store *logview.Store, source logview.Source) {
	s.Handle("ping", func(context.Context, json.RawMessage) (any, error) {
		return "pong", nil
	})

	s.Handle("get_app_version", func(context.Context, json.RawMessage) (any, error) {
		return version, nil
	})

	s.Handle("get_desktop_log_text", func(ctx context.Context, raw json.RawMessage) (any, error) {
		var args logTextArgs
		if len(raw) > 0 {
			// Bad args fall back to an unbounded read rather than failing;
			// the viewer can always show something.
			_ = json.Unmarshal(raw, &args)
		}
		return source.FetchLogText(ctx, args.MaxBytes)
	})

	s.Handle("clear_desktop_logs", func(context.Context, json.RawMessage) (any, error) {
		if err := store.Clear(); err != nil {
			return nil, err
		}
		return true, nil
	})
}

// LogSource fetches desktop log text through a bridge client. It satisfies
// logview.Source, letting the viewer poll a remote backend exactly like a
// local file.
type LogSource struct {
	client *Client
}

// NewLogSource wraps a connected client.
func NewLogSource(client *Client) *LogSource {
	return &LogSource{client: client}
}

// FetchLogText invokes get_desktop_log_text.
func (s *LogSource) FetchLogText(ctx context.Context, maxBytes int64) (string, error) {
	var text string
	err := s.client.InvokeInto(ctx, "get_desktop_log_text", logTextArgs{MaxBytes: maxBytes}, &text)
	if err != nil {
		return "", err
	}
	return text, nil
}
