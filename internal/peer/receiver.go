package peer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"ideas-cli/internal/notify"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  32 * 1024,
	WriteBufferSize: 32 * 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			return true
		}
		return strings.Contains(origin, "://"+strings.TrimSpace(r.Host))
	},
}

// Receiver answers invitations. Decide runs on the connection's goroutine and may
// block; the sender gives up after its own timeout. A nil Decide declines.
type Receiver struct {
	Decide    func(Invitation) bool
	OnReceive func(Transfer)
	Notifier  notify.Notifier
	Logger    *zerolog.Logger

	// MaxSize caps the announced document size; zero means MaxDocumentSize.
	MaxSize int

	// ChunkTimeout bounds the wait for each message; zero means DefaultChunkTimeout.
	ChunkTimeout time.Duration
}

func (r *Receiver) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+Path, r.handleSession)
	return mux
}

// ListenAndServe accepts sessions on addr until ctx is cancelled.
func (r *Receiver) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return r.Serve(ctx, ln)
}

func (r *Receiver) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: r.Handler(), ReadHeaderTimeout: 10 * time.Second}
	stop := context.AfterFunc(ctx, func() { _ = srv.Close() })
	defer stop()
	log := r.logger()
	log.Info().Str("addr", ln.Addr().String()).Msg("waiting for peers")
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (r *Receiver) handleSession(w http.ResponseWriter, req *http.Request) {
	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		http.Error(w, "websocket upgrade failed", http.StatusBadRequest)
		return
	}
	defer conn.Close()

	n := notify.OrDiscard(r.Notifier)
	log := r.logger()
	timeout := r.ChunkTimeout
	if timeout <= 0 {
		timeout = DefaultChunkTimeout
	}

	conn.SetReadLimit(controlLimit)
	_ = conn.SetReadDeadline(time.Now().Add(timeout))
	invite, err := readMessage(conn)
	if err != nil || invite.Type != msgInvite {
		log.Debug().Err(err).Str("type", invite.Type).Msg("dropping session without invitation")
		return
	}
	inv := Invitation{From: strings.TrimSpace(invite.From), Context: decodeContext(invite.Context), Size: invite.Size}
	if inv.From == "" {
		inv.From = "unknown peer"
	}

	limit := r.MaxSize
	if limit <= 0 {
		limit = MaxDocumentSize
	}
	if inv.Size < 0 || inv.Size > limit || r.Decide == nil || !r.Decide(inv) {
		_ = writeMessage(conn, message{Type: msgDecline})
		return
	}
	if err := writeMessage(conn, message{Type: msgAccept}); err != nil {
		log.Debug().Err(err).Str("from", inv.From).Msg("invitation withdrawn")
		return
	}
	n.Report(fmt.Sprintf("Started receiving Data from \"%s\"", inv.From), notify.Standard, notify.DefaultDuration)

	data, err := receive(conn, inv.Size, timeout)
	if err != nil {
		n.Report(fmt.Sprintf("Error while receiving Data from \"%s\": %v", inv.From, err), notify.Destructive, notify.DefaultDuration)
		_ = writeMessage(conn, message{Type: msgError, Error: err.Error()})
		return
	}
	if err := writeMessage(conn, message{Type: msgReceived}); err != nil {
		log.Debug().Err(err).Msg("confirmation not delivered")
	}
	log.Info().Str("from", inv.From).Int("size", len(data)).Msg("document received")
	if r.OnReceive != nil {
		r.OnReceive(Transfer{From: inv.From, Context: inv.Context, Data: data})
	}
}

// receive reads binary chunks until done. No single message may exceed the
// announced size (or MaxChunkSize), and each must arrive within timeout.
func receive(conn *websocket.Conn, size int, timeout time.Duration) ([]byte, error) {
	conn.SetReadLimit(int64(max(min(size, MaxChunkSize), controlLimit)))
	data := make([]byte, 0, min(size, MaxChunkSize))
	for {
		if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
			return nil, err
		}
		mt, chunk, err := conn.ReadMessage()
		if err != nil {
			return nil, err
		}
		if mt == websocket.BinaryMessage {
			if len(data)+len(chunk) > size {
				return nil, fmt.Errorf("received more than the announced %d bytes", size)
			}
			data = append(data, chunk...)
			continue
		}
		m, err := decodeText(chunk)
		if err != nil {
			return nil, err
		}
		if m.Type != msgDone {
			return nil, fmt.Errorf("%w: %q", ErrProtocol, m.Type)
		}
		if len(data) != size {
			return nil, fmt.Errorf("received %d of %d bytes", len(data), size)
		}
		return data, nil
	}
}

func (r *Receiver) logger() zerolog.Logger {
	if r.Logger == nil {
		return zerolog.Nop()
	}
	return *r.Logger
}
