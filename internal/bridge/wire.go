// Package bridge implements the desktop command bridge: JSON requests over a
// localhost WebSocket, so the webview (or a browser during development) can
// invoke backend commands. Requests and responses are correlated by id;
// commands run concurrently so a slow one never stalls the connection.
package bridge

import "encoding/json"

// Request is one command invocation sent by the webview.
type Request struct {
	ID   uint32          `json:"id"`
	Cmd  string          `json:"cmd"`
	Args json.RawMessage `json:"args,omitempty"`
}

// Response answers exactly one Request, carrying either a result or an
// error, never both.
type Response struct {
	ID     uint32          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}
