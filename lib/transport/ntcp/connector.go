package ntcp

import (
	"context"
	"net"
	"time"

	"github.com/go-i2p/ntcp1/lib/common/routeridentity"
	"github.com/samber/oops"
)

// Connector dials remote routers and drives the initiator side of
// the handshake. It is the Go analogue of the original's
// async-connect-then-handshake NTCPClient: here the two steps
// collapse into one blocking call the caller runs on its own
// goroutine.
type Connector struct {
	Local    RouterContext
	Handler  I2NPHandler
	Registry Registry

	// PhaseTimeout bounds how long a single handshake phase read may
	// take. Zero uses the package default PhaseTimeout.
	PhaseTimeout time.Duration
}

// Dial connects to addr over network (normally "tcp"), then runs the
// client handshake against peer. On handshake failure the connection
// is closed and no Session is registered.
func (c *Connector) Dial(ctx context.Context, network, addr string, peer routeridentity.RouterIdentity) (*Session, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, network, addr)
	if err != nil {
		return nil, oops.Errorf("ntcp: dial %s failed: %w", addr, err)
	}

	hr, err := RunClient(conn, c.Local, peer, c.PhaseTimeout)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	s := newSession(conn, hr, c.Handler, c.Registry)
	return s, nil
}
