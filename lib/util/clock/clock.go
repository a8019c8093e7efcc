// Package clock is a standalone NTP-based clock sanity check, exposed
// only as a CLI diagnostic. Nothing in lib/transport/ntcp imports this
// package: the handshake deliberately does not validate timestamp
// skew (an open question the original leaves to upper-layer policy),
// and wiring a skew check into the core would silently introduce one.
package clock

import (
	"time"

	"github.com/beevik/ntp"
	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

var log = logger.GetGoI2PLogger()

const (
	maxRTT          = 2 * time.Second
	maxClockOffset  = 10 * time.Second
	minStratum      = 1
	maxStratum      = 15
)

// Sample is one NTP query's sanity-checked offset estimate.
type Sample struct {
	Server string
	Offset time.Duration
	RTT    time.Duration
}

// Query asks server for the current time and reports how far the
// local clock appears to be off, rejecting responses that fail basic
// sanity checks (unsynchronized server, implausible stratum, excessive
// round-trip time).
func Query(server string) (Sample, error) {
	resp, err := ntp.Query(server)
	if err != nil {
		return Sample{}, oops.Errorf("clock: ntp query to %s failed: %w", server, err)
	}
	if err := resp.Validate(); err != nil {
		return Sample{}, oops.Errorf("clock: ntp response from %s failed validation: %w", server, err)
	}
	if resp.Stratum < minStratum || resp.Stratum > maxStratum {
		return Sample{}, oops.Errorf("clock: ntp response from %s has out-of-range stratum %d", server, resp.Stratum)
	}
	if resp.RTT < 0 || resp.RTT > maxRTT {
		return Sample{}, oops.Errorf("clock: ntp response from %s has excessive round-trip time %s", server, resp.RTT)
	}
	if abs(resp.ClockOffset) > maxClockOffset {
		log.WithField("offset", resp.ClockOffset).Warn("local clock offset exceeds sanity threshold")
	}

	return Sample{Server: server, Offset: resp.ClockOffset, RTT: resp.RTT}, nil
}

func abs(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
