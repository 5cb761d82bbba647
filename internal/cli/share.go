package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"ideas-cli/internal/mainloop"
	"ideas-cli/internal/model"
	"ideas-cli/internal/peer"
	"ideas-cli/internal/store"
	"ideas-cli/internal/transfer"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newShareCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Send projects to a peer or receive them",
	}
	cmd.AddCommand(newShareSendCmd(app))
	cmd.AddCommand(newShareReceiveCmd(app))
	return cmd
}

func newShareSendCmd(app *App) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "send <host:port|ws-url> [project]",
		Short: "Offer a project to a listening peer",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(c *store.Context) (any, error) {
				p, err := currentProject(c, firstArg(args[1:]))
				if err != nil {
					return nil, err
				}
				data, err := transfer.Encode(p)
				if err != nil {
					return nil, err
				}
				s := &peer.Sender{
					Name:          app.cfg.Peer.Name,
					InviteTimeout: app.cfg.Peer.InviteTimeout,
					ChunkSize:     app.cfg.Peer.ChunkSize,
					Notifier:      app.notifier(cmd),
					Logger:        &app.logger.Logger,
				}
				if cmd.Flags().Changed("timeout") {
					s.InviteTimeout = timeout
				}
				url := peer.URL(args[0])
				if err := s.Send(cmd.Context(), url, transfer.NewSharingContext(p, len(data)), data); err != nil {
					return nil, err
				}
				return textf(map[string]any{"sent": p.ID, "bytes": len(data), "to": url}, "sent %s to %s", p.Title, url), nil
			})
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", peer.DefaultInviteTimeout, "How long to wait for the peer to answer (default: $IDEAS_INVITE_TIMEOUT)")
	return cmd
}

type receiveSummary struct {
	Listen   string      `json:"listen"`
	Received []uuid.UUID `json:"received"`
	Failed   int         `json:"failed"`
}

func (s receiveSummary) Text() string {
	return fmt.Sprintf("received %d projects (%d failed)", len(s.Received), s.Failed)
}

func newShareReceiveCmd(app *App) *cobra.Command {
	var listen string
	var yes, once bool

	cmd := &cobra.Command{
		Use:   "receive",
		Short: "Listen for peers and import the projects they send",
		RunE: func(cmd *cobra.Command, args []string) error {
			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			addr := app.cfg.Peer.Listen
			if cmd.Flags().Changed("listen") {
				addr = listen
			}

			loop := mainloop.New(0)
			opts := app.storeOptions(cmd)
			opts.Loop = loop
			c, closeStore, err := app.openStore(cmd, opts)
			if err != nil {
				return writeErr(cmd, err)
			}
			n := app.notifier(cmd)

			var mu sync.Mutex
			in := bufio.NewReader(cmd.InOrStdin())
			decide := func(inv peer.Invitation) bool {
				if yes {
					return true
				}
				mu.Lock()
				defer mu.Unlock()
				fmt.Fprintf(cmd.ErrOrStderr(), "%s wants to share %q (%s, %s). Accept? [y/N] ",
					inv.From, inv.Context.Primary, inv.Context.Secondary, inv.Context.Tertiary)
				line, _ := in.ReadString('\n')
				switch strings.ToLower(strings.TrimSpace(line)) {
				case "y", "yes":
					return true
				}
				return false
			}

			// done runs on the loop goroutine; summary is read after the loop exits.
			summary := receiveSummary{Listen: addr, Received: []uuid.UUID{}}
			done := func(_ peer.Transfer, p *model.Project, err error) {
				if err != nil {
					summary.Failed++
				} else {
					summary.Received = append(summary.Received, p.ID)
				}
				if once {
					cancel()
				}
			}

			r := &peer.Receiver{
				Decide:    decide,
				OnReceive: peer.ImportInto(loop, c, n, done),
				Notifier:  n,
				Logger:    &app.logger.Logger,
			}
			serveErr := make(chan error, 1)
			go func() {
				serveErr <- r.ListenAndServe(ctx, addr)
				cancel()
			}()
			fmt.Fprintf(cmd.ErrOrStderr(), "listening on %s (Ctrl-C to stop)\n", peer.URL(addr))

			_ = loop.Run(ctx)
			err = <-serveErr
			if cerr := closeStore(); err == nil {
				err = cerr
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, summary)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (default: $IDEAS_PEER_LISTEN or 127.0.0.1:7373)")
	cmd.Flags().BoolVar(&yes, "yes", false, "Accept every invitation without asking")
	cmd.Flags().BoolVar(&once, "once", false, "Stop after the first transfer")
	return cmd
}
