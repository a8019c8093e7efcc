// Package routeridentity implements the I2P RouterIdentity common
// data structure, fixed to the profile NTCP1 exchanges on the wire: a
// 256-byte DH public key, a 128-byte DSA public key, and a trailing
// null Certificate. No key-certificate extension is ever negotiated
// over NTCP1, so unlike the general KeysAndCert structure this type
// carries a fixed 3-byte certificate area rather than a variable one.
package routeridentity

/*
[RouterIdentity], NTCP1 profile

+----+----+----+----+----+----+----+----+
| public_key (256 bytes)                |
~                                       ~
+----+----+----+----+----+----+----+----+
| signing_key (128 bytes)               |
~                                       ~
+----+----+----+----+----+----+----+----+
|type| length  |
+----+----+----+

total length: 387 bytes. type and length are always 0 (NULL
certificate); a non-zero certificate type or length is a protocol
error in this profile.
*/

import (
	"crypto/sha256"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

var log = logger.GetGoI2PLogger()

const (
	// Size is the total encoded length of a RouterIdentity in the
	// NTCP1 profile.
	Size = 387

	PublicKeySize = 256
	SigningKeySize = 128
	certificateSize = 3
)

// RouterIdentity is a router's DH and DSA public keys, canonically
// encoded with a trailing null Certificate.
type RouterIdentity struct {
	PublicKey  [PublicKeySize]byte
	SigningKey [SigningKeySize]byte
}

// IdentHash is the SHA-256 of a router's canonical RouterIdentity
// encoding.
type IdentHash [32]byte

// Bytes encodes the RouterIdentity to its 387-byte wire form.
func (r RouterIdentity) Bytes() []byte {
	out := make([]byte, Size)
	copy(out[0:PublicKeySize], r.PublicKey[:])
	copy(out[PublicKeySize:PublicKeySize+SigningKeySize], r.SigningKey[:])
	// trailing type=0, length=0 null certificate; already zeroed.
	return out
}

// IdentHash returns the SHA-256 of the canonical encoding.
func (r RouterIdentity) IdentHash() IdentHash {
	return sha256.Sum256(r.Bytes())
}

// Read parses a 387-byte RouterIdentity from data, returning the
// trailing bytes that followed it.
func Read(data []byte) (ident RouterIdentity, remainder []byte, err error) {
	if len(data) < Size {
		log.WithField("data_length", len(data)).Warn("short RouterIdentity")
		err = oops.Errorf("router identity: need %d bytes, got %d", Size, len(data))
		return
	}
	copy(ident.PublicKey[:], data[0:PublicKeySize])
	copy(ident.SigningKey[:], data[PublicKeySize:PublicKeySize+SigningKeySize])
	certType := data[PublicKeySize+SigningKeySize]
	certLen := int(data[PublicKeySize+SigningKeySize+1])<<8 | int(data[PublicKeySize+SigningKeySize+2])
	if certType != 0 || certLen != 0 {
		err = oops.Errorf("router identity: unsupported certificate type=%d length=%d", certType, certLen)
		return
	}
	remainder = data[Size:]
	return
}
