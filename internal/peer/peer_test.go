package peer

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"ideas-cli/internal/mainloop"
	"ideas-cli/internal/model"
	"ideas-cli/internal/notify"
	"ideas-cli/internal/store"
	"ideas-cli/internal/transfer"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, r *Receiver) string {
	t.Helper()
	srv := httptest.NewServer(r.Handler())
	t.Cleanup(srv.Close)
	return URL(strings.TrimPrefix(srv.URL, "http://"))
}

func TestSendDeliversDocumentInChunks(t *testing.T) {
	payload := []byte(strings.Repeat("0123456789", 25))
	got := make(chan Transfer, 1)
	invites := make(chan Invitation, 1)
	r := &Receiver{
		Decide:    func(inv Invitation) bool { invites <- inv; return true },
		OnReceive: func(tr Transfer) { got <- tr },
	}
	url := serve(t, r)

	s := &Sender{Name: "laptop", ChunkSize: 7}
	sc := transfer.SharingContext{Primary: "Plans", Secondary: "3 Ideas in 1 Buckets", Tertiary: "250 B"}
	require.NoError(t, s.Send(context.Background(), url, sc, payload))
	assert.Equal(t, 1.0, s.Progress())

	select {
	case tr := <-got:
		assert.Equal(t, payload, tr.Data)
		assert.Equal(t, "laptop", tr.From)
		assert.Equal(t, "Plans", tr.Context.Primary)
	case <-time.After(2 * time.Second):
		t.Fatal("transfer not received")
	}
	seen := <-invites
	assert.Equal(t, len(payload), seen.Size)
	assert.Equal(t, sc, seen.Context)
}

func TestSendDeclined(t *testing.T) {
	url := serve(t, &Receiver{Decide: func(Invitation) bool { return false }})
	rec := &notify.Recorder{}
	s := &Sender{Name: "a", Notifier: rec}
	err := s.Send(context.Background(), url, transfer.SharingContext{}, []byte("x"))
	assert.ErrorIs(t, err, ErrDeclined)
	assert.Zero(t, rec.Count(notify.Destructive))
}

func TestSendInviteTimeout(t *testing.T) {
	release := make(chan struct{})
	var once sync.Once
	url := serve(t, &Receiver{Decide: func(Invitation) bool {
		<-release
		return true
	}})
	t.Cleanup(func() { once.Do(func() { close(release) }) })

	s := &Sender{Name: "a", InviteTimeout: 50 * time.Millisecond}
	start := time.Now()
	err := s.Send(context.Background(), url, transfer.SharingContext{}, []byte("x"))
	assert.ErrorIs(t, err, ErrInviteTimeout)
	assert.Less(t, time.Since(start), 2*time.Second)
	once.Do(func() { close(release) })
}

func TestReceiverToleratesMalformedContext(t *testing.T) {
	seen := make(chan Invitation, 1)
	url := serve(t, &Receiver{Decide: func(inv Invitation) bool {
		seen <- inv
		return false
	}})

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"invite","from":"x","context":"garbage","size":3}`)))

	inv := <-seen
	assert.Equal(t, transfer.NoFurtherInformation, inv.Context.Primary)
	assert.Equal(t, transfer.NoFurtherInformation, inv.Context.Tertiary)

	m, err := readMessage(conn)
	require.NoError(t, err)
	assert.Equal(t, msgDecline, m.Type)
}

func TestReceiverRejectsShortDocument(t *testing.T) {
	rec := &notify.Recorder{}
	received := make(chan Transfer, 1)
	url := serve(t, &Receiver{
		Decide:    func(Invitation) bool { return true },
		OnReceive: func(tr Transfer) { received <- tr },
		Notifier:  rec,
	})

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, writeMessage(conn, message{Type: msgInvite, From: "x", Size: 10}))
	m, err := readMessage(conn)
	require.NoError(t, err)
	require.Equal(t, msgAccept, m.Type)

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte("abc")))
	require.NoError(t, writeMessage(conn, message{Type: msgDone}))
	m, err = readMessage(conn)
	require.NoError(t, err)
	assert.Equal(t, msgError, m.Type)
	assert.Empty(t, received)
	assert.Equal(t, 1, rec.Count(notify.Destructive))
}

func TestReceiverRejectsChunkLargerThanAnnounced(t *testing.T) {
	rec := &notify.Recorder{}
	received := make(chan Transfer, 1)
	url := serve(t, &Receiver{
		Decide:    func(Invitation) bool { return true },
		OnReceive: func(tr Transfer) { received <- tr },
		Notifier:  rec,
	})

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, writeMessage(conn, message{Type: msgInvite, From: "x", Size: 10}))
	m, err := readMessage(conn)
	require.NoError(t, err)
	require.Equal(t, msgAccept, m.Type)

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, make([]byte, controlLimit+1)))
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if m, err := readMessage(conn); err == nil {
		assert.Equal(t, msgError, m.Type)
	}
	assert.Eventually(t, func() bool { return rec.Count(notify.Destructive) == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Empty(t, received)
}

func TestReceiverGivesUpOnStalledPeer(t *testing.T) {
	rec := &notify.Recorder{}
	url := serve(t, &Receiver{
		Decide:       func(Invitation) bool { return true },
		OnReceive:    func(Transfer) { t.Error("nothing should be received") },
		Notifier:     rec,
		ChunkTimeout: 50 * time.Millisecond,
	})

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, writeMessage(conn, message{Type: msgInvite, From: "x", Size: 10}))
	m, err := readMessage(conn)
	require.NoError(t, err)
	require.Equal(t, msgAccept, m.Type)

	// Send nothing: the receiver must time out on its own.
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	m, err = readMessage(conn)
	require.NoError(t, err)
	assert.Equal(t, msgError, m.Type)
	assert.Equal(t, 1, rec.Count(notify.Destructive))
}

func TestImportIntoRunsOnLoop(t *testing.T) {
	c := store.NewContext(store.Options{})
	require.NoError(t, c.Open(context.Background(), store.NewMemoryBackend()))

	loop := mainloop.New(0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = loop.Run(ctx) }()

	b, err := transfer.Encode(model.PresetProject())
	require.NoError(t, err)

	rec := &notify.Recorder{}
	done := make(chan error, 2)
	handle := ImportInto(loop, c, rec, func(_ Transfer, _ *model.Project, err error) { done <- err })

	handle(Transfer{From: "desk", Data: b})
	require.NoError(t, <-done)
	handle(Transfer{From: "desk", Data: []byte("{")})
	require.Error(t, <-done)

	require.NoError(t, loop.Do(ctx, func() error {
		assert.Len(t, c.Projects(), 1)
		return nil
	}))
	notes := rec.Notes()
	require.Len(t, notes, 2)
	assert.Equal(t, `Received "Preset project" from "desk"`, notes[0].Message)
	assert.Equal(t, notify.Destructive, notes[1].Severity)
	assert.True(t, strings.HasPrefix(notes[1].Message, "Import failed: "))
}

func TestImportIntoAfterStopOnlyReports(t *testing.T) {
	c := store.NewContext(store.Options{})
	require.NoError(t, c.Open(context.Background(), store.NewMemoryBackend()))

	loop := mainloop.New(0)
	loop.Stop()

	b, err := transfer.Encode(model.PresetProject())
	require.NoError(t, err)

	rec := &notify.Recorder{}
	handle := ImportInto(loop, c, rec, func(Transfer, *model.Project, error) {
		t.Error("done must not run once the loop has stopped")
	})
	handle(Transfer{From: "desk", Data: b})

	assert.Empty(t, c.Projects())
	require.Equal(t, 1, rec.Count(notify.Destructive))
	assert.Equal(t, "Import failed: "+mainloop.ErrStopped.Error(), rec.Notes()[0].Message)
}

func TestURL(t *testing.T) {
	assert.Equal(t, "ws://10.0.0.2:7373/share", URL("10.0.0.2:7373"))
	assert.Equal(t, "ws://h:1/share", URL("ws://h:1/"))
	assert.Equal(t, "ws://h:1/share", URL("ws://h:1/share"))
}

func TestSendReportsTransportFailure(t *testing.T) {
	rec := &notify.Recorder{}
	s := &Sender{Name: "a", Notifier: rec}
	err := s.Send(context.Background(), "ws://127.0.0.1:1/share", transfer.SharingContext{}, []byte("x"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrDeclined))
	assert.Equal(t, 1, rec.Count(notify.Destructive))
}
