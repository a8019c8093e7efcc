package main

import (
	"context"
	"encoding/hex"

	ntcpconfig "github.com/go-i2p/ntcp1/lib/config"
	"github.com/go-i2p/ntcp1/lib/transport/ntcp"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

func newConnectCmd() *cobra.Command {
	var peerIdentHash string

	cmd := &cobra.Command{
		Use:   "connect <address>",
		Short: "Dial a known peer and handshake as the client role",
		Args:  cobra.ExactArgs(1),
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

			hashBytes, err := hex.DecodeString(peerIdentHash)
			if err != nil || len(hashBytes) != 32 {
				return oops.Errorf("connect: --peer-ident must be a 32-byte hex IdentHash")
			}
			var hash [32]byte
			copy(hash[:], hashBytes)

			peerInfo, ok := peers.Get(hash)
			if !ok {
				return oops.Errorf("connect: peer %s not found in peers file", peerIdentHash)
			}

			connector := &ntcp.Connector{
				Local:        local,
				Handler:      logHandler{},
				Registry:     newMemRegistry(),
				PhaseTimeout: cfg.PhaseTimeout,
			}
			session, err := connector.Dial(context.Background(), "tcp", args[0], peerInfo.Identity)
			if err != nil {
				return err
			}
			log.WithField("session", session.ID()).Info("handshake established")
			return session.Receive()
		},
	}
	cmd.Flags().StringVar(&peerIdentHash, "peer-ident", "", "hex-encoded IdentHash of the peer to dial (required)")
	cmd.MarkFlagRequired("peer-ident")
	return cmd
}
