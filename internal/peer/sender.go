package peer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"ideas-cli/internal/notify"
	"ideas-cli/internal/transfer"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const DefaultInviteTimeout = 30 * time.Second

// Sender offers one document per Send call. Progress may be read from any goroutine.
type Sender struct {
	Name          string
	InviteTimeout time.Duration
	ChunkSize     int
	Notifier      notify.Notifier
	Logger        *zerolog.Logger
	Dialer        *websocket.Dialer

	sent  atomic.Int64
	total atomic.Int64
}

// Progress returns the fraction of the current document written so far.
func (s *Sender) Progress() float64 {
	total := s.total.Load()
	if total <= 0 {
		return 0
	}
	return float64(s.sent.Load()) / float64(total)
}

// Send invites the peer at url and streams data once it accepts. An unanswered
// invitation is dropped after InviteTimeout and never retried.
func (s *Sender) Send(ctx context.Context, url string, sc transfer.SharingContext, data []byte) error {
	err := s.send(ctx, url, sc, data)
	if err != nil && !errors.Is(err, ErrDeclined) && !errors.Is(err, ErrInviteTimeout) {
		notify.OrDiscard(s.Notifier).Report("Error while sending Data: "+err.Error(), notify.Destructive, notify.DefaultDuration)
	}
	return err
}

func (s *Sender) send(ctx context.Context, url string, sc transfer.SharingContext, data []byte) error {
	log := s.logger()
	s.sent.Store(0)
	s.total.Store(int64(len(data)))

	dialer := s.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", url, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	rawCtx, err := json.Marshal(sc)
	if err != nil {
		return err
	}
	if err := writeMessage(conn, message{Type: msgInvite, From: s.Name, Context: rawCtx, Size: len(data)}); err != nil {
		return fmt.Errorf("send invitation: %w", err)
	}
	log.Debug().Str("url", url).Int("size", len(data)).Msg("invitation sent")

	timeout := s.InviteTimeout
	if timeout <= 0 {
		timeout = DefaultInviteTimeout
	}
	_ = conn.SetReadDeadline(time.Now().Add(timeout))
	answer, err := readMessage(conn)
	if err != nil {
		if isTimeout(err) {
			return ErrInviteTimeout
		}
		return ctxErr(ctx, fmt.Errorf("read answer: %w", err))
	}
	switch answer.Type {
	case msgAccept:
	case msgDecline:
		return ErrDeclined
	default:
		return fmt.Errorf("%w: %q", ErrProtocol, answer.Type)
	}
	_ = conn.SetReadDeadline(time.Time{})

	chunk := s.ChunkSize
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}
	chunk = min(chunk, MaxChunkSize)
	for off := 0; off < len(data); off += chunk {
		end := min(off+chunk, len(data))
		if err := conn.WriteMessage(websocket.BinaryMessage, data[off:end]); err != nil {
			return ctxErr(ctx, fmt.Errorf("send chunk: %w", err))
		}
		s.sent.Store(int64(end))
	}
	if err := writeMessage(conn, message{Type: msgDone}); err != nil {
		return ctxErr(ctx, fmt.Errorf("send done: %w", err))
	}

	_ = conn.SetReadDeadline(time.Now().Add(timeout))
	ack, err := readMessage(conn)
	if err != nil {
		return ctxErr(ctx, fmt.Errorf("read confirmation: %w", err))
	}
	switch ack.Type {
	case msgReceived:
	case msgError:
		return fmt.Errorf("peer: %s", ack.Error)
	default:
		return fmt.Errorf("%w: %q", ErrProtocol, ack.Type)
	}
	log.Debug().Str("url", url).Msg("document delivered")
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return nil
}

func (s *Sender) logger() zerolog.Logger {
	if s.Logger == nil {
		return zerolog.Nop()
	}
	return *s.Logger
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func ctxErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
