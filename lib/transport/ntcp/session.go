package ntcp

import (
	"net"
	"sync"

	"github.com/go-i2p/ntcp1/lib/common/routeridentity"
	"github.com/samber/oops"
)

// State is the Session's position in its handshake/established
// lifecycle.
type State int

const (
	StateConnecting State = iota
	StateAwaitingPhase1
	StateHandshaking
	StateEstablished
	StateTerminated
)

// Session is one live NTCP1 connection: a socket, its keyed encrypt
// and decrypt state, the authenticated peer, and the framing buffers
// that turn the byte stream into I2NP messages.
type Session struct {
	conn net.Conn

	decoder *Decoder
	encoder *Encoder

	peerIdent routeridentity.RouterIdentity

	handler  I2NPHandler
	registry Registry

	// PostEstablishTraffic, when non-nil, is invoked by Acceptor once
	// a server-side session reaches Established, before its receive
	// loop starts; Connector.Dial does not invoke it. The default set
	// by newSession sends a time-sync frame followed by the
	// DatabaseStore and DeliveryStatus messages; callers may
	// overwrite it with nil to suppress that traffic.
	PostEstablishTraffic func(s *Session) error

	sendMu sync.Mutex

	stateMu sync.Mutex
	state   State

	terminateOnce sync.Once
	terminateErr  error
}

func newSession(conn net.Conn, hr *handshakeResult, handler I2NPHandler, registry Registry) *Session {
	s := &Session{
		conn:      conn,
		decoder:   NewDecoder(hr.decrypter),
		encoder:   NewEncoder(hr.encrypter),
		peerIdent: hr.peerIdent,
		handler:   handler,
		registry:  registry,
		state:     StateEstablished,
	}
	s.PostEstablishTraffic = s.sendInitialTraffic
	if registry != nil {
		registry.AddSession(s)
	}
	return s
}

// ID is a stable, purely observational identifier for log lines: the
// hex prefix of the peer's IdentHash.
func (s *Session) ID() string {
	h := s.peerIdent.IdentHash()
	return hexPrefix(h[:], 8)
}

// PeerIdentity returns the authenticated remote router identity.
func (s *Session) PeerIdentity() routeridentity.RouterIdentity {
	return s.peerIdent
}

func (s *Session) getState() State {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.state
}

func (s *Session) setState(st State) {
	s.stateMu.Lock()
	s.state = st
	s.stateMu.Unlock()
}

// SendMessage frames and writes payload as a regular I2NP frame.
// Calls are serialized: at most one encrypt-and-write is ever in
// flight for a session.
func (s *Session) SendMessage(payload []byte) error {
	if s.getState() == StateTerminated {
		return ErrSessionTerminated
	}
	frame, err := func() ([]byte, error) {
		s.sendMu.Lock()
		defer s.sendMu.Unlock()
		return s.encoder.Encode(payload, false)
	}()
	if err != nil {
		s.terminate(err)
		return err
	}
	if _, err := s.conn.Write(frame); err != nil {
		werr := oops.Errorf("ntcp: write failed: %w", err)
		s.terminate(werr)
		return werr
	}
	return nil
}

// SendTimeSync sends a zero-size frame carrying the current
// timestamp.
func (s *Session) SendTimeSync() error {
	if s.getState() == StateTerminated {
		return ErrSessionTerminated
	}
	ts := nowTimestamp()
	frame, err := func() ([]byte, error) {
		s.sendMu.Lock()
		defer s.sendMu.Unlock()
		return s.encoder.Encode(ts[:], true)
	}()
	if err != nil {
		s.terminate(err)
		return err
	}
	if _, err := s.conn.Write(frame); err != nil {
		werr := oops.Errorf("ntcp: write failed: %w", err)
		s.terminate(werr)
		return werr
	}
	return nil
}

func (s *Session) sendInitialTraffic(sess *Session) error {
	if s.handler == nil {
		return nil
	}
	if err := s.SendTimeSync(); err != nil {
		return err
	}
	dbStore, err := s.handler.CreateDatabaseStoreMsg()
	if err != nil {
		return err
	}
	if err := s.SendMessage(dbStore); err != nil {
		return err
	}
	delStatus, err := s.handler.CreateDeliveryStatusMsg()
	if err != nil {
		return err
	}
	return s.SendMessage(delStatus)
}

// Receive runs the post-handshake read loop: it reads from the
// socket, decodes complete frames, and dispatches each to the I2NP
// handler (or logs a clock sample, for time-sync frames) until the
// connection fails or is terminated. Callers run this on its own
// goroutine; it blocks until the session ends.
func (s *Session) Receive() error {
	buf := make([]byte, 4096)
	for {
		n, err := s.conn.Read(buf)
		if err != nil {
			terr := oops.Errorf("ntcp: read failed: %w", err)
			s.terminate(terr)
			return terr
		}
		frames, ferr := s.decoder.Feed(buf[:n])
		for _, f := range frames {
			if f.IsTimeSync {
				log.WithField("session", s.ID()).
					WithField("peer_time", decodeTimestamp(f.Timestamp[:])).
					Debug("received time-sync frame")
				continue
			}
			if s.handler != nil {
				if herr := s.handler.HandleI2NPMessage(s, f.Payload); herr != nil {
					log.WithError(herr).Warn("i2np handler returned error")
				}
			}
		}
		if ferr != nil {
			s.terminate(ferr)
			return ferr
		}
	}
}

// terminate tears the session down exactly once: it closes the
// socket and removes the session from the registry. Every subsequent
// call, from any goroutine, is a no-op.
func (s *Session) terminate(cause error) {
	s.terminateOnce.Do(func() {
		s.terminateErr = cause
		s.setState(StateTerminated)
		if cause != nil {
			log.WithField("session", s.ID()).WithError(cause).Warn("session terminated")
		} else {
			log.WithField("session", s.ID()).Debug("session terminated")
		}
		_ = s.conn.Close()
		if s.registry != nil {
			s.registry.RemoveSession(s)
		}
	})
}

// Terminate is the exported, idempotent teardown entry point callers
// use to close a session deliberately (as opposed to a protocol
// fault driving termination internally).
func (s *Session) Terminate() {
	s.terminate(nil)
}

func hexPrefix(b []byte, n int) string {
	const hextable = "0123456789abcdef"
	if n > len(b) {
		n = len(b)
	}
	out := make([]byte, n*2)
	for i := 0; i < n; i++ {
		out[i*2] = hextable[b[i]>>4]
		out[i*2+1] = hextable[b[i]&0x0f]
	}
	return string(out)
}
