package main

import (
	"context"
	"net"

	ntcpconfig "github.com/go-i2p/ntcp1/lib/config"
	"github.com/go-i2p/ntcp1/lib/transport/ntcp"
	"github.com/go-i2p/ntcp1/lib/util"
	"github.com/go-i2p/ntcp1/lib/util/signals"
	"github.com/spf13/cobra"
)

func newListenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listen",
		Short: "Accept inbound NTCP1 connections and handshake as the server role",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ntcpconfig.InitConfig()

			local, err := ntcpconfig.LoadLocalIdentity(cfg.IdentityPath)
			if err != nil {
				return err
			}
			peers, err := ntcpconfig.LoadPeerBook(cfg.PeersPath)
			if err != nil {
				return err
			}

			ln, err := net.Listen("tcp", cfg.ListenAddress)
			if err != nil {
				return err
			}
			util.RegisterCloser(ln)
			defer util.CloseAll()

			ctx, cancel := context.WithCancel(context.Background())
			signals.RegisterInterruptHandler(func() { cancel() })
			signals.RegisterInterruptHandler(util.CloseAll)

			handler := logHandler{}
			registry := newMemRegistry()
			signals.RegisterPreShutdownHandler(func() {
				sendFarewell(handler, registry)
			})
			go signals.Handle()

			acceptor := &ntcp.Acceptor{
				Local:        local,
				Handler:      handler,
				Registry:     registry,
				Resolve:      peers.Resolve,
				PhaseTimeout: cfg.PhaseTimeout,
			}
			log.WithField("address", cfg.ListenAddress).Info("listening for ntcp1 connections")
			return acceptor.Serve(ctx, ln)
		},
	}
}

// sendFarewell tells every live peer this router is going offline by
// sending a zero-address DatabaseStore, then lets the normal shutdown
// path close the sockets. Errors are logged, not returned: a peer
// that can't be reached is about to lose the connection anyway.
func sendFarewell(handler logHandler, registry *memRegistry) {
	sessions := registry.Sessions()
	if len(sessions) == 0 {
		return
	}
	msg, err := handler.CreateFarewellMsg()
	if err != nil {
		log.WithError(err).Warn("failed to build farewell message")
		return
	}
	for _, s := range sessions {
		if err := s.SendMessage(msg); err != nil {
			log.WithField("session", s.ID()).WithError(err).Warn("failed to send farewell message")
		}
	}
	log.WithField("count", len(sessions)).Info("sent farewell database store to live peers")
}
