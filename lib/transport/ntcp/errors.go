package ntcp

import "github.com/samber/oops"

// Errors a handshake or an established session can fail with.
var (
	// ErrHandshakeTimeout means a phase message did not arrive
	// within PhaseTimeout.
	ErrHandshakeTimeout = oops.Errorf("ntcp: handshake phase timed out")

	// ErrIdentHashMismatch means Phase1's HX_xor_HI did not match the
	// responder's own IdentHash.
	ErrIdentHashMismatch = oops.Errorf("ntcp: phase1 ident hash mismatch")

	// ErrSharedSecretTamper means Phase2's HXY did not match the
	// locally computed hash of X || Y.
	ErrSharedSecretTamper = oops.Errorf("ntcp: phase2 HXY verification failed")

	// ErrSignatureInvalid means a DSA signature in Phase3 or Phase4
	// failed to verify.
	ErrSignatureInvalid = oops.Errorf("ntcp: signature verification failed")

	// ErrMessageTooLarge means a decoded frame declared a size over
	// MaxMessageSize.
	ErrMessageTooLarge = oops.Errorf("ntcp: message exceeds maximum size")

	// ErrChecksumMismatch means a frame's trailing Adler-32 did not
	// match its recomputed checksum.
	ErrChecksumMismatch = oops.Errorf("ntcp: frame checksum mismatch")

	// ErrSessionTerminated means an operation was attempted on a
	// session that has already been torn down.
	ErrSessionTerminated = oops.Errorf("ntcp: session terminated")

	// ErrUnknownPeer means the router identity a caller sent in
	// Phase3 is not known to the acceptor's Resolve function.
	ErrUnknownPeer = oops.Errorf("ntcp: unrecognized peer identity")
)
