package ntcp

import (
	"encoding/binary"

	"github.com/go-i2p/ntcp1/lib/crypto/adler32"
	ntcpaes "github.com/go-i2p/ntcp1/lib/crypto/aes"
)

// roundUp16 rounds n up to the next multiple of 16.
func roundUp16(n int) int {
	return (n + 15) &^ 15
}

// Frame is one decoded data frame: either an I2NP payload (Size > 0)
// or a time-sync sample (Size == 0, Timestamp valid).
type Frame struct {
	Size       int
	Payload    []byte
	Timestamp  [4]byte
	IsTimeSync bool
}

// Decoder holds the receive-side framing state: recvCipher accumulates
// bytes not yet a multiple of the AES block size, recvPlain holds
// decrypted bytes not yet parsed into complete frames.
type Decoder struct {
	decrypter *ntcpaes.CBCDecrypter

	recvCipher []byte
	recvPlain  []byte
}

// NewDecoder creates a Decoder bound to the session's already-keyed
// receive-direction cipher.
func NewDecoder(decrypter *ntcpaes.CBCDecrypter) *Decoder {
	return &Decoder{decrypter: decrypter}
}

// Feed appends n newly-read bytes to the decrypt buffer, decrypts
// every complete 16-byte block, and returns every frame that becomes
// fully available as a result. recv_cipher_off (len(recvCipher)) is
// always < 16 between calls (spec invariant ii).
func (d *Decoder) Feed(n []byte) ([]Frame, error) {
	d.recvCipher = append(d.recvCipher, n...)

	blocks := len(d.recvCipher) / aesBlockSize
	if blocks > 0 {
		toDecrypt := d.recvCipher[:blocks*aesBlockSize]
		plain := make([]byte, len(toDecrypt))
		if err := d.decrypter.Process(plain, toDecrypt); err != nil {
			return nil, err
		}
		d.recvPlain = append(d.recvPlain, plain...)

		rem := len(d.recvCipher) - blocks*aesBlockSize
		remBuf := make([]byte, rem)
		copy(remBuf, d.recvCipher[blocks*aesBlockSize:])
		d.recvCipher = remBuf
	}

	var frames []Frame
	for {
		f, consumed, ok, err := d.parseOne()
		if err != nil {
			return frames, err
		}
		if !ok {
			break
		}
		frames = append(frames, f)
		d.recvPlain = d.recvPlain[consumed:]
	}
	return frames, nil
}

// parseOne attempts to parse a single frame from the front of
// recvPlain. ok is false if not enough bytes have arrived yet.
func (d *Decoder) parseOne() (f Frame, consumed int, ok bool, err error) {
	if len(d.recvPlain) < 2 {
		return
	}
	size := int(binary.BigEndian.Uint16(d.recvPlain[0:2]))

	var frameLen int
	if size == 0 {
		frameLen = 16
	} else {
		if size > MaxMessageSize {
			err = ErrMessageTooLarge
			return
		}
		frameLen = roundUp16(size + 6)
	}

	if len(d.recvPlain) < frameLen {
		return
	}

	frameBuf := d.recvPlain[:frameLen]
	checksumOff := frameLen - 4
	want := adler32.Checksum(frameBuf[:checksumOff])
	if !bytesEqual(want[:], frameBuf[checksumOff:frameLen]) {
		err = ErrChecksumMismatch
		return
	}

	if size == 0 {
		var ts [4]byte
		copy(ts[:], frameBuf[2:6])
		f = Frame{Size: 0, IsTimeSync: true, Timestamp: ts}
	} else {
		payload := make([]byte, size)
		copy(payload, frameBuf[2:2+size])
		f = Frame{Size: size, Payload: payload}
	}
	consumed = frameLen
	ok = true
	return
}

// Encoder frames and encrypts outbound payloads under the session's
// send-direction cipher.
type Encoder struct {
	encrypter *ntcpaes.CBCEncrypter
}

// NewEncoder creates an Encoder bound to the session's already-keyed
// send-direction cipher.
func NewEncoder(encrypter *ntcpaes.CBCEncrypter) *Encoder {
	return &Encoder{encrypter: encrypter}
}

// Encode frames payload (or, if zeroSize, a time-sync sample with
// payload treated as a 4-byte timestamp), pads it to a 16-byte
// boundary, appends an Adler-32 checksum, and encrypts the result.
func (e *Encoder) Encode(payload []byte, zeroSize bool) ([]byte, error) {
	var size int
	if !zeroSize {
		size = len(payload)
	}

	frameLen := roundUp16(size + 6)
	plain := make([]byte, frameLen)
	if zeroSize {
		binary.BigEndian.PutUint16(plain[0:2], 0)
		copy(plain[2:6], payload)
	} else {
		binary.BigEndian.PutUint16(plain[0:2], uint16(size))
		copy(plain[2:2+size], payload)
	}

	checksumOff := frameLen - 4
	sum := adler32.Checksum(plain[:checksumOff])
	copy(plain[checksumOff:], sum[:])

	out := make([]byte, frameLen)
	if err := e.encrypter.Process(out, plain); err != nil {
		return nil, err
	}
	return out, nil
}
