package netsim

//
// Network link modeling
//

import (
	"math/rand"
	"time"
)

// LossSource decides whether a given transmission is lost. It is
// abstracted so that tests can force specific packets to be lost
// deterministically.
type LossSource interface {
	// Float64 returns a pseudo-random value in [0, 1), like [rand.Rand.Float64].
	Float64() float64
}

var _ LossSource = &rand.Rand{}

// LinkConfig contains config for creating a [Link]. Make sure you
// initialize all the fields marked as MANDATORY.
type LinkConfig struct {
	// DistanceMeters is the MANDATORY physical distance between the two
	// endpoints, in meters.
	DistanceMeters float64

	// SpeedMetersPerSecond is the MANDATORY propagation speed, in meters
	// per second (e.g. ~2e8 for a typical copper or fiber medium).
	SpeedMetersPerSecond float64

	// LostProb is the OPTIONAL per-packet loss probability in [0, 1],
	// applied independently at each transmission attempt.
	LostProb float64

	// Loss is the OPTIONAL [LossSource] to use. When nil, a [Link]
	// default-constructs one seeded from the current time.
	Loss LossSource
}

// Link models a bidirectional channel between two NICs with a fixed
// propagation delay and an independent per-packet loss probability
// applied at transmission time. The zero value is invalid; use
// [NewLink] to construct.
type Link struct {
	distanceMeters float64
	speedMPS       float64
	lostProb       float64
	loss           LossSource
	nics           []*NIC
}

// NewLink creates a new [Link] from the given config.
func NewLink(config *LinkConfig) *Link {
	loss := config.Loss
	if loss == nil {
		loss = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Link{
		distanceMeters: config.DistanceMeters,
		speedMPS:       config.SpeedMetersPerSecond,
		lostProb:       config.LostProb,
		loss:           loss,
		nics:           nil,
	}
}

// DelayPr returns the link's one-way propagation delay.
func (l *Link) DelayPr() time.Duration {
	seconds := l.distanceMeters / l.speedMPS
	return time.Duration(seconds * float64(time.Second))
}

// shouldDrop decides, using the link's [LossSource], whether the packet
// currently being transmitted should be lost. Loss is sampled once per
// transmission attempt: a retransmitted packet is an independent trial.
func (l *Link) shouldDrop() bool {
	return l.loss.Float64() < l.lostProb
}

// Attach appends nic as one of this link's (at most two) endpoints,
// enforcing at-most-two attachment and rate matching between endpoints.
func (l *Link) Attach(nic *NIC) error {
	for _, existing := range l.nics {
		if existing == nic {
			return ErrNICAlreadyAttached
		}
	}
	if len(l.nics) >= 2 {
		return ErrLinkFull
	}
	if len(l.nics) == 1 && l.nics[0].Rate() != nic.Rate() {
		return ErrRateMismatch
	}
	l.nics = append(l.nics, nic)
	return nil
}

// Other returns the NIC at the opposite end of the link from nic. Both
// endpoints must already be attached.
func (l *Link) Other(nic *NIC) (*NIC, error) {
	if len(l.nics) != 2 {
		return nil, ErrLinkNotFull
	}
	switch nic {
	case l.nics[0]:
		return l.nics[1], nil
	case l.nics[1]:
		return l.nics[0], nil
	default:
		return nil, ErrNICNotAttached
	}
}
