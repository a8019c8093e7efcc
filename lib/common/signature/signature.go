// Package signature implements the I2P Signature common data
// structure, fixed to the only type NTCP1 ever carries: a 40-byte
// DSA-SHA1 signature.
package signature

import "github.com/samber/oops"

// DSA_SHA1_SIZE is the length of a DSA-SHA1 signature: r (20 bytes)
// followed by s (20 bytes). I2P's common-structures spec assigns
// sizes to nine other signing algorithms; NTCP1 negotiates none of
// them, so this package carries only the one its wire format uses.
const DSA_SHA1_SIZE = 40

/*
[Signature]

Contents
A 40-byte DSA-SHA1 signature: r (20 bytes) followed by s (20 bytes).
*/

// Signature is a DSA-SHA1 signature, as exchanged in Phase3 and
// Phase4 of the handshake.
type Signature [DSA_SHA1_SIZE]byte

// ReadSignature returns a Signature from a []byte.
// The remaining bytes after the specified length are also returned.
func ReadSignature(bytes []byte) (sig Signature, remainder []byte, err error) {
	if len(bytes) < DSA_SHA1_SIZE {
		err = oops.Errorf("signature: need %d bytes, got %d", DSA_SHA1_SIZE, len(bytes))
		return
	}
	copy(sig[:], bytes[:DSA_SHA1_SIZE])
	remainder = bytes[DSA_SHA1_SIZE:]
	return
}

// NewSignature creates a new *Signature from []byte using ReadSignature.
func NewSignature(data []byte) (sig *Signature, remainder []byte, err error) {
	s, remainder, err := ReadSignature(data)
	if err != nil {
		return nil, remainder, err
	}
	sig = &s
	return
}
