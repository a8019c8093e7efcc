// Command ntcpd is a minimal NTCP1 peer: it can listen for inbound
// router connections or dial a single known peer, completing the
// handshake and exchanging framed I2NP traffic.
package main

import (
	"fmt"
	"os"

	"github.com/go-i2p/logger"
	ntcpconfig "github.com/go-i2p/ntcp1/lib/config"
	"github.com/spf13/cobra"
)

var log = logger.GetGoI2PLogger()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ntcpd",
		Short: "Legacy NTCP1 router-to-router transport peer",
	}
	root.PersistentFlags().StringVar(&ntcpconfig.CfgFile, "config", "", "path to config.yaml")
	root.AddCommand(newListenCmd())
	root.AddCommand(newConnectCmd())
	root.AddCommand(newClockCmd())
	return root
}
