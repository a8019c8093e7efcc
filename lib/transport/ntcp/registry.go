package ntcp

import "github.com/go-i2p/ntcp1/lib/common/routeridentity"

// RouterContext is the local router's identity and signing material,
// as consumed by the handshake. The core never generates or stores
// these keys itself.
type RouterContext interface {
	// PrivateKey returns the local router's 256-byte DH private key.
	PrivateKey() [256]byte

	// RouterIdentity returns the local router's published identity.
	RouterIdentity() routeridentity.RouterIdentity

	// Sign produces a DSA-SHA1 signature over msg using the local
	// router's signing key.
	Sign(msg []byte) ([]byte, error)
}

// I2NPHandler is the upper layer that consumes decoded frames and
// supplies the traffic a session sends immediately on establishment.
type I2NPHandler interface {
	// HandleI2NPMessage is invoked once per decoded frame with
	// size > 0.
	HandleI2NPMessage(s *Session, payload []byte) error

	// CreateDatabaseStoreMsg builds the DatabaseStore message a
	// server sends as initial post-handshake traffic.
	CreateDatabaseStoreMsg() ([]byte, error)

	// CreateDeliveryStatusMsg builds the DeliveryStatus message a
	// server sends as initial post-handshake traffic.
	CreateDeliveryStatusMsg() ([]byte, error)
}

// Registry is the transport-wide table of live sessions. A Session
// adds itself on construction and removes itself exactly once, on
// terminate.
type Registry interface {
	AddSession(s *Session)
	RemoveSession(s *Session)
}
