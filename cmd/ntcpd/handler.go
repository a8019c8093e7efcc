package main

import (
	"encoding/binary"
	"time"

	"github.com/go-i2p/ntcp1/lib/transport/ntcp"
)

// logHandler is a minimal I2NPHandler: it logs every inbound frame
// and answers the post-establish traffic hook with placeholder
// DatabaseStore/DeliveryStatus payloads. A real router would hand
// decoded frames to its I2NP processor instead.
type logHandler struct{}

func (logHandler) HandleI2NPMessage(s *ntcp.Session, payload []byte) error {
	log.WithField("session", s.ID()).WithField("bytes", len(payload)).Debug("received i2np message")
	return nil
}

func (logHandler) CreateDatabaseStoreMsg() ([]byte, error) {
	return placeholderMessage(0), nil
}

func (logHandler) CreateDeliveryStatusMsg() ([]byte, error) {
	return placeholderMessage(10), nil
}

// CreateFarewellMsg builds the zero-address DatabaseStore a server
// sends each live peer right before shutting down, so they stop
// treating this router as reachable instead of waiting for the
// connection to time out.
func (logHandler) CreateFarewellMsg() ([]byte, error) {
	return placeholderMessage(0), nil
}

// placeholderMessage builds a minimal synthetic I2NP payload: a
// single type byte followed by a big-endian send time. A full router
// would build the real wire format via its I2NP message layer, which
// is out of this binary's scope.
func placeholderMessage(msgType byte) []byte {
	buf := make([]byte, 9)
	buf[0] = msgType
	binary.BigEndian.PutUint64(buf[1:], uint64(time.Now().UnixMilli()))
	return buf
}
