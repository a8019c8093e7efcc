package dh

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestAESKeyFromSecret_SignExtension verifies P1: the reduction
// prepends a zero byte and drops the trailing byte exactly when the
// top bit of the secret's first byte is set, and copies the secret
// verbatim otherwise.
func TestAESKeyFromSecret_SignExtension(t *testing.T) {
	var highBit [256]byte
	highBit[0] = 0x80
	for i := 1; i < 32; i++ {
		highBit[i] = byte(i)
	}
	key := AESKeyFromSecret(highBit)
	require.Equal(t, byte(0x00), key[0])
	require.Equal(t, highBit[:31], key[1:])

	var lowBit [256]byte
	lowBit[0] = 0x7f
	for i := 1; i < 32; i++ {
		lowBit[i] = byte(i)
	}
	key2 := AESKeyFromSecret(lowBit)
	require.Equal(t, lowBit[:32], key2[:])
}

// TestAgree_SharesSecret verifies two DH peers deriving from each
// other's public values reach the same shared secret.
func TestAgree_SharesSecret(t *testing.T) {
	var a, b PrivateKey
	a[len(a)-1] = 0x11
	a[0] = 0x03
	b[len(b)-1] = 0x22
	b[0] = 0x05

	pubA := a.Public()
	pubB := b.Public()

	secretA, err := a.Agree(pubB)
	require.NoError(t, err)
	secretB, err := b.Agree(pubA)
	require.NoError(t, err)
	require.Equal(t, secretA, secretB)
}

// TestAgree_RejectsOutOfRangePeer verifies a peer public value outside
// [1, P) is rejected rather than silently accepted.
func TestAgree_RejectsOutOfRangePeer(t *testing.T) {
	var a PrivateKey
	a[0] = 0x01
	var zero PublicKey
	_, err := a.Agree(zero)
	require.Error(t, err)

	var tooBig PublicKey
	for i := range tooBig {
		tooBig[i] = 0xff
	}
	_, err = a.Agree(tooBig)
	require.Error(t, err)
}
