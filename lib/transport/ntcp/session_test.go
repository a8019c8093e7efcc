package ntcp

import (
	"net"
	"sync"
	"testing"

	"github.com/go-i2p/ntcp1/lib/common/session_key"
	ntcpaes "github.com/go-i2p/ntcp1/lib/crypto/aes"
	"github.com/stretchr/testify/require"
)

type countingRegistry struct {
	mu      sync.Mutex
	added   int
	removed int
}

func (r *countingRegistry) AddSession(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.added++
}

func (r *countingRegistry) RemoveSession(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed++
}

func fixtureHandshakeResult(t *testing.T) *handshakeResult {
	t.Helper()
	var key session_key.SessionKey
	iv := make([]byte, 16)
	enc, err := ntcpaes.NewCBCEncrypter(key, iv)
	require.NoError(t, err)
	dec, err := ntcpaes.NewCBCDecrypter(key, iv)
	require.NoError(t, err)
	router, err := newFixtureRouter()
	require.NoError(t, err)
	return &handshakeResult{
		encrypter: enc,
		decrypter: dec,
		peerIdent: router.RouterIdentity(),
	}
}

// TestTerminate_Idempotent verifies P7: concurrent and repeated
// Terminate calls close the socket and remove the session from the
// registry exactly once.
func TestTerminate_Idempotent(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer serverConn.Close()

	registry := &countingRegistry{}
	s := newSession(clientConn, fixtureHandshakeResult(t), nil, registry)
	require.Equal(t, 1, registry.added)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Terminate()
		}()
	}
	wg.Wait()

	require.Equal(t, 1, registry.removed)
	require.Equal(t, StateTerminated, s.getState())

	_, err := clientConn.Write([]byte("x"))
	require.Error(t, err)
}

// TestSendMessage_AfterTerminate verifies a session refuses to send
// once terminated rather than writing to a closed socket.
func TestSendMessage_AfterTerminate(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer serverConn.Close()

	s := newSession(clientConn, fixtureHandshakeResult(t), nil, &countingRegistry{})
	s.Terminate()

	err := s.SendMessage([]byte("hello"))
	require.ErrorIs(t, err, ErrSessionTerminated)
}
