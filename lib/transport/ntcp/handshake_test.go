package ntcp

import (
	"crypto/sha256"
	"net"
	"testing"

	"github.com/go-i2p/ntcp1/lib/common/routeridentity"
	"github.com/stretchr/testify/require"
)

func resolverFor(idents ...routeridentity.RouterIdentity) func(routeridentity.IdentHash) (routeridentity.RouterIdentity, bool) {
	byHash := make(map[routeridentity.IdentHash]routeridentity.RouterIdentity, len(idents))
	for _, id := range idents {
		byHash[id.IdentHash()] = id
	}
	return func(h routeridentity.IdentHash) (routeridentity.RouterIdentity, bool) {
		id, ok := byHash[h]
		return id, ok
	}
}

// TestHandshake_HappyPath verifies scenario 1 and P4: both sides
// reach Established over a pair of in-memory sockets, and the
// server's authenticated peer identity matches the client's own.
func TestHandshake_HappyPath(t *testing.T) {
	client, err := newFixtureRouter()
	require.NoError(t, err)
	server, err := newFixtureRouter()
	require.NoError(t, err)

	clientConn, serverConn := net.Pipe()

	type result struct {
		hr  *handshakeResult
		err error
	}
	clientCh := make(chan result, 1)
	serverCh := make(chan result, 1)

	go func() {
		hr, err := RunClient(clientConn, client, server.RouterIdentity(), 0)
		clientCh <- result{hr, err}
	}()
	go func() {
		hr, err := RunServer(serverConn, server, resolverFor(client.RouterIdentity()), 0)
		serverCh <- result{hr, err}
	}()

	cr := <-clientCh
	sr := <-serverCh

	require.NoError(t, cr.err)
	require.NoError(t, sr.err)

	clientIdentHash := client.RouterIdentity().IdentHash()
	require.Equal(t, clientIdentHash, sr.hr.peerIdent.IdentHash())

	// P4: the peer identity the server authenticated hashes back to
	// exactly the 387-byte identity the client published.
	wantHash := sha256.Sum256(client.RouterIdentity().Bytes())
	require.Equal(t, wantHash, sr.hr.peerIdent.IdentHash())
}

// TestHandshake_WrongIdentHash verifies scenario 2: a client that
// XORs HX against the wrong IdentHash is rejected by the server
// before it ever writes Phase2.
func TestHandshake_WrongIdentHash(t *testing.T) {
	client, err := newFixtureRouter()
	require.NoError(t, err)
	server, err := newFixtureRouter()
	require.NoError(t, err)
	impostor, err := newFixtureRouter()
	require.NoError(t, err)

	clientConn, serverConn := net.Pipe()

	serverCh := make(chan error, 1)
	go func() {
		_, err := RunServer(serverConn, server, resolverFor(client.RouterIdentity()), 0)
		serverCh <- err
	}()

	// Drive the client handshake against the wrong peer identity so
	// HX_xor_HI is computed against an IdentHash the server doesn't
	// recognize as its own.
	clientCh := make(chan error, 1)
	go func() {
		_, err := RunClient(clientConn, client, impostor.RouterIdentity(), 0)
		clientCh <- err
	}()

	serverErr := <-serverCh
	require.ErrorIs(t, serverErr, ErrIdentHashMismatch)
	<-clientCh
}

// TestHandshake_HXYTamper verifies scenario 3: a server that corrupts
// one byte of its encrypted Phase2 block causes the client to detect
// the tamper and terminate without sending Phase3.
func TestHandshake_HXYTamper(t *testing.T) {
	client, err := newFixtureRouter()
	require.NoError(t, err)
	server, err := newFixtureRouter()
	require.NoError(t, err)

	tamperedServer := &tamperingConn{}
	clientConn, serverConn := net.Pipe()
	tamperedServer.Conn = serverConn
	tamperedServer.tamperPhase2 = true

	clientCh := make(chan error, 1)
	go func() {
		_, err := RunClient(clientConn, client, server.RouterIdentity(), 0)
		clientCh <- err
	}()

	go func() {
		_, _ = RunServer(tamperedServer, server, resolverFor(client.RouterIdentity()), 0)
	}()

	err = <-clientCh
	require.ErrorIs(t, err, ErrSharedSecretTamper)
}

// TestHandshake_BadPhase3Signature verifies scenario 4: a Phase3
// whose signature bytes are corrupted in transit (one ciphertext byte
// inside the signature span is inverted) is rejected by the server,
// which never sends Phase4.
func TestHandshake_BadPhase3Signature(t *testing.T) {
	client, err := newFixtureRouter()
	require.NoError(t, err)
	server, err := newFixtureRouter()
	require.NoError(t, err)

	clientConn, serverConn := net.Pipe()
	tamperedClient := &tamperingConn{Conn: clientConn, tamperPhase3Sig: true}

	serverCh := make(chan error, 1)
	go func() {
		_, err := RunServer(serverConn, server, resolverFor(client.RouterIdentity()), 0)
		serverCh <- err
	}()

	go func() {
		_, _ = RunClient(tamperedClient, client, server.RouterIdentity(), 0)
	}()

	err = <-serverCh
	require.ErrorIs(t, err, ErrSignatureInvalid)
}

// tamperingConn wraps a net.Conn and corrupts specific handshake
// messages as they pass through Write, to drive the fault-injection
// scenarios above without needing a second, independently-decrypting
// party in the middle.
type tamperingConn struct {
	net.Conn
	tamperPhase2    bool
	tamperPhase3Sig bool
	wroteCount      int
}

func (c *tamperingConn) Write(b []byte) (int, error) {
	c.wroteCount++
	out := b
	if c.tamperPhase2 && len(b) == Phase2Size {
		out = append([]byte{}, b...)
		out[260] ^= 0xff
	}
	if c.tamperPhase3Sig && len(b) == Phase3Size {
		out = append([]byte{}, b...)
		out[len(out)-20] ^= 0xff
	}
	return c.Conn.Write(out)
}
