package ntcp

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"io"
	"net"
	"time"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/ntcp1/lib/common/routeridentity"
	"github.com/go-i2p/ntcp1/lib/common/signature"
	ntcpaes "github.com/go-i2p/ntcp1/lib/crypto/aes"
	"github.com/go-i2p/ntcp1/lib/crypto/dh"
	"github.com/go-i2p/ntcp1/lib/crypto/dsa"
	"github.com/samber/oops"
)

var log = logger.GetGoI2PLogger()

// handshakeResult is what a completed handshake hands to the Session
// constructor: keyed ciphers for both directions plus the
// authenticated peer identity.
type handshakeResult struct {
	encrypter *ntcpaes.CBCEncrypter
	decrypter *ntcpaes.CBCDecrypter
	peerIdent routeridentity.RouterIdentity
	localTS   [4]byte
	peerTS    [4]byte
}

// signedBlob reproduces the exact 552-byte record both sides sign
// during the handshake: X(256) || Y(256) || ident(32) || tsA(4) ||
// tsB(4). Field order never varies.
func signedBlob(x, y [256]byte, ident routeridentity.IdentHash, tsA, tsB [4]byte) []byte {
	buf := make([]byte, 0, 552)
	buf = append(buf, x[:]...)
	buf = append(buf, y[:]...)
	buf = append(buf, ident[:]...)
	buf = append(buf, tsA[:]...)
	buf = append(buf, tsB[:]...)
	return buf
}

func readFull(conn net.Conn, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(conn, buf); err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return nil, oops.Errorf("ntcp: %w: %s", ErrHandshakeTimeout, err)
		}
		return nil, oops.Errorf("ntcp: short read: %w", err)
	}
	return buf, nil
}

func randomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, oops.Errorf("ntcp: failed to read random bytes: %w", err)
	}
	return buf, nil
}

// RunClient drives the initiator side of the handshake to completion
// over conn, authenticating peer against peerIdent. On success it
// returns the keyed session state; on any deviation it returns an
// error and conn should be closed by the caller.
func RunClient(conn net.Conn, local RouterContext, peerIdent routeridentity.RouterIdentity, phaseTimeout time.Duration) (*handshakeResult, error) {
	if phaseTimeout <= 0 {
		phaseTimeout = PhaseTimeout
	}
	localPrivBytes := local.PrivateKey()
	var localPriv dh.PrivateKey
	copy(localPriv[:], localPrivBytes[:])
	X := localPriv.Public()

	peerIdentHash := peerIdent.IdentHash()

	hx := sha256.Sum256(X[:])
	var hxXorHI [32]byte
	for i := range hxXorHI {
		hxXorHI[i] = hx[i] ^ peerIdentHash[i]
	}

	phase1 := make([]byte, Phase1Size)
	copy(phase1[0:256], X[:])
	copy(phase1[256:288], hxXorHI[:])
	if err := setDeadline(conn, phaseTimeout); err != nil {
		return nil, err
	}
	if _, err := conn.Write(phase1); err != nil {
		return nil, oops.Errorf("ntcp: failed to write phase1: %w", err)
	}
	log.Debug("client: sent phase1")

	if err := setDeadline(conn, phaseTimeout); err != nil {
		return nil, err
	}
	phase2, err := readFull(conn, Phase2Size)
	if err != nil {
		return nil, err
	}
	var Y [256]byte
	copy(Y[:], phase2[0:256])
	peerPubDH := dh.PublicKey(Y)

	secret, err := localPriv.Agree(peerPubDH)
	if err != nil {
		return nil, oops.Errorf("ntcp: phase2 DH agreement failed: %w", err)
	}
	aesKey := dh.AESKeyFromSecret(secret)

	decrypter, err := ntcpaes.NewCBCDecrypter(aesKey, Y[240:256])
	if err != nil {
		return nil, err
	}
	encBlock := make([]byte, 48)
	if err := decrypter.Process(encBlock, phase2[256:304]); err != nil {
		return nil, err
	}

	wantHXY := sha256.Sum256(append(append([]byte{}, X[:]...), Y[:]...))
	if !bytesEqual(encBlock[0:32], wantHXY[:]) {
		return nil, ErrSharedSecretTamper
	}
	var tsB [4]byte
	copy(tsB[:], encBlock[32:36])

	encrypter, err := ntcpaes.NewCBCEncrypter(aesKey, hxXorHI[16:32])
	if err != nil {
		return nil, err
	}

	localIdent := local.RouterIdentity()
	localIdentBytes := localIdent.Bytes()
	tsA := nowTimestamp()

	blob := signedBlob(X, Y, peerIdentHash, tsA, tsB)
	sig, err := local.Sign(blob)
	if err != nil {
		return nil, oops.Errorf("ntcp: failed to sign phase3: %w", err)
	}

	phase3Plain := make([]byte, Phase3Size)
	binary.BigEndian.PutUint16(phase3Plain[0:2], uint16(len(localIdentBytes)))
	copy(phase3Plain[2:2+routeridentity.Size], localIdentBytes)
	off := 2 + routeridentity.Size
	copy(phase3Plain[off:off+4], tsA[:])
	off += 4
	copy(phase3Plain[off:off+signature.DSA_SHA1_SIZE], sig)
	off += signature.DSA_SHA1_SIZE
	padding, err := randomBytes(Phase3Size - off)
	if err != nil {
		return nil, err
	}
	copy(phase3Plain[off:], padding)

	phase3Cipher := make([]byte, Phase3Size)
	if err := encrypter.Process(phase3Cipher, phase3Plain); err != nil {
		return nil, err
	}
	if err := setDeadline(conn, phaseTimeout); err != nil {
		return nil, err
	}
	if _, err := conn.Write(phase3Cipher); err != nil {
		return nil, oops.Errorf("ntcp: failed to write phase3: %w", err)
	}
	log.Debug("client: sent phase3")

	if err := setDeadline(conn, phaseTimeout); err != nil {
		return nil, err
	}
	phase4Cipher, err := readFull(conn, Phase4Size)
	if err != nil {
		return nil, err
	}
	phase4Plain := make([]byte, Phase4Size)
	if err := decrypter.Process(phase4Plain, phase4Cipher); err != nil {
		return nil, err
	}

	verifyBlob := signedBlob(X, Y, localIdent.IdentHash(), tsA, tsB)
	if err := verifySignature(peerIdent, verifyBlob, phase4Plain[0:signature.DSA_SHA1_SIZE]); err != nil {
		return nil, err
	}
	log.Debug("client: handshake established")

	if err := clearDeadline(conn); err != nil {
		return nil, err
	}

	return &handshakeResult{
		encrypter: encrypter,
		decrypter: decrypter,
		peerIdent: peerIdent,
		localTS:   tsA,
		peerTS:    tsB,
	}, nil
}

// RunServer drives the responder side of the handshake to completion
// over conn. Phase1 is checked against the local IdentHash, so the
// server needs no a-priori expectation of who is calling. resolve, if
// non-nil, looks up the IdentHash of the identity the initiator sends
// in Phase3; an unknown identity fails the handshake with
// ErrUnknownPeer.
func RunServer(conn net.Conn, local RouterContext, resolve func(routeridentity.IdentHash) (routeridentity.RouterIdentity, bool), phaseTimeout time.Duration) (*handshakeResult, error) {
	if phaseTimeout <= 0 {
		phaseTimeout = PhaseTimeout
	}
	if err := setDeadline(conn, phaseTimeout); err != nil {
		return nil, err
	}
	phase1, err := readFull(conn, Phase1Size)
	if err != nil {
		return nil, err
	}
	var X [256]byte
	copy(X[:], phase1[0:256])
	var hxXorHI [32]byte
	copy(hxXorHI[:], phase1[256:288])

	localIdent := local.RouterIdentity()
	localIdentHash := localIdent.IdentHash()

	hx := sha256.Sum256(X[:])
	var gotHI [32]byte
	for i := range gotHI {
		gotHI[i] = hx[i] ^ hxXorHI[i]
	}
	if !bytesEqual(gotHI[:], localIdentHash[:]) {
		return nil, ErrIdentHashMismatch
	}
	log.Debug("server: phase1 verified")

	localPrivBytes := local.PrivateKey()
	var localPriv dh.PrivateKey
	copy(localPriv[:], localPrivBytes[:])
	Y := localPriv.Public()

	secret, err := localPriv.Agree(dh.PublicKey(X))
	if err != nil {
		return nil, oops.Errorf("ntcp: phase1 DH agreement failed: %w", err)
	}
	aesKey := dh.AESKeyFromSecret(secret)

	encrypter, err := ntcpaes.NewCBCEncrypter(aesKey, Y[240:256])
	if err != nil {
		return nil, err
	}
	decrypter, err := ntcpaes.NewCBCDecrypter(aesKey, hxXorHI[16:32])
	if err != nil {
		return nil, err
	}

	hxy := sha256.Sum256(append(append([]byte{}, X[:]...), Y[:]...))
	tsB := nowTimestamp()
	filler, err := randomBytes(12)
	if err != nil {
		return nil, err
	}
	encBlockPlain := make([]byte, 48)
	copy(encBlockPlain[0:32], hxy[:])
	copy(encBlockPlain[32:36], tsB[:])
	copy(encBlockPlain[36:48], filler)

	phase2 := make([]byte, Phase2Size)
	copy(phase2[0:256], Y[:])
	if err := encrypter.Process(phase2[256:304], encBlockPlain); err != nil {
		return nil, err
	}
	if err := setDeadline(conn, phaseTimeout); err != nil {
		return nil, err
	}
	if _, err := conn.Write(phase2); err != nil {
		return nil, oops.Errorf("ntcp: failed to write phase2: %w", err)
	}
	log.Debug("server: sent phase2")

	if err := setDeadline(conn, phaseTimeout); err != nil {
		return nil, err
	}
	phase3Cipher, err := readFull(conn, Phase3Size)
	if err != nil {
		return nil, err
	}
	phase3Plain := make([]byte, Phase3Size)
	if err := decrypter.Process(phase3Plain, phase3Cipher); err != nil {
		return nil, err
	}

	size := binary.BigEndian.Uint16(phase3Plain[0:2])
	if int(size) != routeridentity.Size {
		return nil, oops.Errorf("ntcp: phase3 declared identity size %d, want %d", size, routeridentity.Size)
	}
	peerIdent, _, err := routeridentity.Read(phase3Plain[2 : 2+routeridentity.Size])
	if err != nil {
		return nil, oops.Errorf("ntcp: phase3 identity: %w", err)
	}
	if resolve != nil {
		if known, ok := resolve(peerIdent.IdentHash()); ok {
			peerIdent = known
		} else {
			return nil, ErrUnknownPeer
		}
	}

	off := 2 + routeridentity.Size
	var tsA [4]byte
	copy(tsA[:], phase3Plain[off:off+4])
	off += 4
	sig := phase3Plain[off : off+signature.DSA_SHA1_SIZE]

	verifyBlob := signedBlob(X, Y, localIdentHash, tsA, tsB)
	if err := verifySignature(peerIdent, verifyBlob, sig); err != nil {
		return nil, err
	}
	log.Debug("server: phase3 verified")

	signBlob := signedBlob(X, Y, peerIdent.IdentHash(), tsA, tsB)
	ownSig, err := local.Sign(signBlob)
	if err != nil {
		return nil, oops.Errorf("ntcp: failed to sign phase4: %w", err)
	}
	phase4Plain := make([]byte, Phase4Size)
	copy(phase4Plain[0:signature.DSA_SHA1_SIZE], ownSig)
	padding, err := randomBytes(Phase4Size - signature.DSA_SHA1_SIZE)
	if err != nil {
		return nil, err
	}
	copy(phase4Plain[signature.DSA_SHA1_SIZE:], padding)

	phase4Cipher := make([]byte, Phase4Size)
	if err := encrypter.Process(phase4Cipher, phase4Plain); err != nil {
		return nil, err
	}
	if err := setDeadline(conn, phaseTimeout); err != nil {
		return nil, err
	}
	if _, err := conn.Write(phase4Cipher); err != nil {
		return nil, oops.Errorf("ntcp: failed to write phase4: %w", err)
	}
	log.Debug("server: handshake established")

	if err := clearDeadline(conn); err != nil {
		return nil, err
	}

	return &handshakeResult{
		encrypter: encrypter,
		decrypter: decrypter,
		peerIdent: peerIdent,
		localTS:   tsB,
		peerTS:    tsA,
	}, nil
}

func setDeadline(conn net.Conn, timeout time.Duration) error {
	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return oops.Errorf("ntcp: failed to set deadline: %w", err)
	}
	return nil
}

// clearDeadline removes the absolute deadline the handshake phases
// set on conn. SetDeadline's value persists across calls until reset,
// so without this an established session would inherit the last
// handshake phase's deadline into its read loop and get torn down by
// a spurious timeout once that deadline elapses.
func clearDeadline(conn net.Conn) error {
	if err := conn.SetDeadline(time.Time{}); err != nil {
		return oops.Errorf("ntcp: failed to clear deadline: %w", err)
	}
	return nil
}

func verifySignature(ident routeridentity.RouterIdentity, msg, sig []byte) error {
	pub := dsa.DSAPublicKey(ident.SigningKey)
	if err := pub.Verify(msg, sig); err != nil {
		return ErrSignatureInvalid
	}
	return nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
