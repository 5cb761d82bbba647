// Package peer sends a project document to another running instance over a
// WebSocket session and receives documents sent to this one.
//
// A session is: invite (text), accept or decline (text), the document as binary
// chunks, done (text), received (text). Either side closes on anything else.
package peer

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"ideas-cli/internal/transfer"

	"github.com/gorilla/websocket"
)

const (
	Path = "/share"

	DefaultChunkSize = 32 * 1024

	// MaxChunkSize is the largest binary message a receiver reads.
	MaxChunkSize = 1 << 20

	// MaxDocumentSize bounds what a receiver accepts in one session.
	MaxDocumentSize = 256 << 20

	// DefaultChunkTimeout is how long a receiver waits for the next message.
	DefaultChunkTimeout = 30 * time.Second

	controlLimit = 64 * 1024
)

var (
	ErrDeclined      = errors.New("peer declined the invitation")
	ErrInviteTimeout = errors.New("peer did not answer the invitation in time")
	ErrProtocol      = errors.New("unexpected peer message")
)

const (
	msgInvite   = "invite"
	msgAccept   = "accept"
	msgDecline  = "decline"
	msgDone     = "done"
	msgReceived = "received"
	msgError    = "error"
)

type message struct {
	Type    string          `json:"type"`
	From    string          `json:"from,omitempty"`
	Context json.RawMessage `json:"context,omitempty"`
	Size    int             `json:"size,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Invitation is what a receiver sees before deciding.
type Invitation struct {
	From    string
	Context transfer.SharingContext
	Size    int
}

// Transfer is a completely received document.
type Transfer struct {
	From    string
	Context transfer.SharingContext
	Data    []byte
}

// URL returns the session endpoint for a host:port or an existing ws:// URL.
func URL(addr string) string {
	addr = strings.TrimSpace(addr)
	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		if strings.HasSuffix(addr, Path) {
			return addr
		}
		return strings.TrimSuffix(addr, "/") + Path
	}
	return "ws://" + strings.TrimSuffix(addr, "/") + Path
}

func writeMessage(conn *websocket.Conn, m message) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, b)
}

func readMessage(conn *websocket.Conn) (message, error) {
	mt, data, err := conn.ReadMessage()
	if err != nil {
		return message{}, err
	}
	if mt != websocket.TextMessage {
		return message{}, ErrProtocol
	}
	return decodeText(data)
}

func decodeText(data []byte) (message, error) {
	var m message
	if err := json.Unmarshal(data, &m); err != nil {
		return message{}, ErrProtocol
	}
	return m, nil
}

// decodeContext never fails: a missing or malformed context shows placeholders.
func decodeContext(raw json.RawMessage) transfer.SharingContext {
	var sc transfer.SharingContext
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &sc); err != nil {
			sc = transfer.SharingContext{}
		}
	}
	return sc.Normalized()
}
