package main

import (
	ntcpclock "github.com/go-i2p/ntcp1/lib/util/clock"
	"github.com/spf13/cobra"
)

func newClockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clock <ntp-server>",
		Short: "Query an NTP server and report local clock offset (diagnostic only, not used by the handshake)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sample, err := ntcpclock.Query(args[0])
			if err != nil {
				return err
			}
			log.WithField("server", sample.Server).
				WithField("offset", sample.Offset).
				WithField("rtt", sample.RTT).
				Info("clock sample")
			return nil
		},
	}
}
