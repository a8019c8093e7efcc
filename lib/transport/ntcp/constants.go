package ntcp

import "time"

const (
	// MaxMessageSize is the largest I2NP payload a frame may carry.
	MaxMessageSize = 16384

	// Phase1Size is the length in bytes of the initiator's first
	// handshake message: X (256) || HX_xor_HI (32).
	Phase1Size = 256 + 32

	// Phase2Size is the length in bytes of the responder's reply:
	// Y (256) || AES({HXY (32) || tsB (4) || filler (12)}); the
	// encrypted block is 48 bytes, for a 304-byte total.
	Phase2Size = 256 + 48

	// Phase3Size is the length of the initiator's identity message:
	// AES({size (2) || RouterIdentity (387) || tsA (4) || signature
	// (40) || padding (15)}).
	Phase3Size = 448

	// Phase4Size is the length of the responder's final message:
	// AES({signature (40) || padding (8)}).
	Phase4Size = 48

	// PhaseTimeout bounds how long a handshake phase may take to
	// arrive before the connection is abandoned.
	PhaseTimeout = 10 * time.Second

	aesBlockSize = 16
)
