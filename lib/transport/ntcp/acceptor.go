package ntcp

import (
	"context"
	"net"
	"time"

	"github.com/go-i2p/ntcp1/lib/common/routeridentity"
)

// Acceptor accepts inbound connections and drives the responder side
// of the handshake on each, one goroutine per connection.
type Acceptor struct {
	Local    RouterContext
	Handler  I2NPHandler
	Registry Registry

	// Resolve looks up a claimed peer IdentHash against known router
	// identities. A server that cannot resolve an unrecognized caller
	// rejects the handshake with ErrUnknownPeer.
	Resolve func(routeridentity.IdentHash) (routeridentity.RouterIdentity, bool)

	// PhaseTimeout bounds how long a single handshake phase read may
	// take. Zero uses the package default PhaseTimeout.
	PhaseTimeout time.Duration

	// OnEstablished, if set, is called with each session that
	// completes its handshake, before Receive starts.
	OnEstablished func(s *Session)
}

// Serve accepts connections from ln until ctx is done or Accept
// fails, spawning a handshake-and-receive goroutine per connection.
func (a *Acceptor) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return err
			}
		}
		go a.handle(conn)
	}
}

func (a *Acceptor) handle(conn net.Conn) {
	hr, err := RunServer(conn, a.Local, a.Resolve, a.PhaseTimeout)
	if err != nil {
		log.WithError(err).Warn("server handshake failed")
		_ = conn.Close()
		return
	}

	s := newSession(conn, hr, a.Handler, a.Registry)
	if a.OnEstablished != nil {
		a.OnEstablished(s)
	}
	if s.PostEstablishTraffic != nil {
		if err := s.PostEstablishTraffic(s); err != nil {
			log.WithError(err).Warn("post-establish traffic failed")
		}
	}
	_ = s.Receive()
}
