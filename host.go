package netsim

//
// Host: the reliability-engine endpoint
//

import (
	"fmt"
	"time"
)

// Mode selects a [Host]'s delivery reliability strategy.
type Mode int

const (
	// ModeNoReliability submits every packet with no acknowledgment
	// and no retained state.
	ModeNoReliability = Mode(iota)

	// ModeAcknowledges is stop-and-wait with no retransmission: the
	// sender stalls forever if a DATA or ACK packet is lost.
	ModeAcknowledges

	// ModeAcknowledgesRTX is stop-and-wait with a retransmission timer:
	// the sender retransmits if no ACK arrives before it fires.
	ModeAcknowledgesRTX

	// ModePipeliningFixedWindow is Go-Back-N with a fixed window size:
	// the sender keeps several unacknowledged packets in flight at once.
	ModePipeliningFixedWindow

	// ModePipeliningDynamicWindow is Go-Back-N with an additive-increase,
	// reset-on-loss window.
	ModePipeliningDynamicWindow
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeNoReliability:
		return "NO_RELIABILITY"
	case ModeAcknowledges:
		return "ACKNOWLEDGES"
	case ModeAcknowledgesRTX:
		return "ACKNOWLEDGES_WITH_RETRANSMISSION"
	case ModePipeliningFixedWindow:
		return "PIPELINING_FIXED_WINDOW"
	case ModePipeliningDynamicWindow:
		return "PIPELINING_DYNAMIC_WINDOW"
	default:
		return "UNKNOWN"
	}
}

// HostConfig contains config for creating a [Host]. Make sure you
// initialize all the fields marked as MANDATORY.
type HostConfig struct {
	// Mode is the MANDATORY reliability mode.
	Mode Mode

	// RTO is the retransmission timeout. REQUIRED for
	// ModeAcknowledgesRTX, ModePipeliningFixedWindow, and
	// ModePipeliningDynamicWindow; ignored otherwise.
	RTO time.Duration

	// WindowSize is the fixed window size. Used only by
	// ModePipeliningFixedWindow; defaults to 5 when zero.
	WindowSize int
}

// deliveryEngine is the per-mode state machine a [Host] delegates to.
// Modeling the five reliability modes as implementations of a single
// narrow interface keeps each mode's state isolated without a tagged union.
type deliveryEngine interface {
	send(pkts []*Packet)
	receive(pkt *Packet)
}

// Host is the reliability-engine endpoint. It selects one of five modes
// at construction and drives both send (from the upper layer) and
// receive (from its NIC) behavior accordingly. The zero value is
// invalid; use [NewHost] to construct.
type Host struct {
	name   string
	nic    *NIC
	sim    *Simulator
	logger Logger
	mode   Mode
	engine deliveryEngine
}

var _ NICOwner = (*Host)(nil)

// NewHost creates a new [Host] with no NIC attached yet.
func NewHost(sim *Simulator, logger Logger, name string, config *HostConfig) *Host {
	h := &Host{
		name:   name,
		nic:    nil,
		sim:    sim,
		logger: logger,
		mode:   config.Mode,
	}
	h.engine = newDeliveryEngine(h, config)
	return h
}

// newDeliveryEngine selects the engine implementation for config.Mode.
func newDeliveryEngine(h *Host, config *HostConfig) deliveryEngine {
	switch config.Mode {
	case ModeNoReliability:
		return &noReliabilityEngine{host: h}
	case ModeAcknowledges:
		return newStopAndWaitEngine(h, false, 0)
	case ModeAcknowledgesRTX:
		return newStopAndWaitEngine(h, true, config.RTO)
	case ModePipeliningFixedWindow:
		windowSize := config.WindowSize
		if windowSize == 0 {
			windowSize = 5
		}
		return newPipeliningEngine(h, false, windowSize, config.RTO)
	case ModePipeliningDynamicWindow:
		return newPipeliningEngine(h, true, 1, config.RTO)
	default:
		panic(fmt.Sprintf("netsim: unknown reliability mode %v", config.Mode))
	}
}

// Name returns the host's name.
func (h *Host) Name() string {
	return h.name
}

// Mode returns the host's reliability mode.
func (h *Host) Mode() Mode {
	return h.mode
}

// AddNIC attaches nic to this host. The NIC must not already have an owner.
func (h *Host) AddNIC(nic *NIC) error {
	if err := nic.SetOwner(h); err != nil {
		return err
	}
	h.nic = nic
	return nil
}

// Send submits an ordered batch of DATA packets from the upper layer.
// Admission into the NIC is governed by the active mode.
func (h *Host) Send(pkts []*Packet) {
	h.engine.send(pkts)
}

// Receive implements NICOwner: it hands an arriving packet to the
// active mode's engine.
func (h *Host) Receive(nic *NIC, pkt *Packet) {
	if nic != h.nic {
		h.logger.Warnf("netsim: %s: received on unexpected NIC %s", h, nic)
		return
	}
	h.logger.Infof("netsim: %s: received %s on %s", h, pkt, nic)
	h.engine.receive(pkt)
}

// startTimer schedules a zero-argument event after dt and returns
// nothing: callers capture whatever context they need in the closure.
// This centralizes the "schedule a plain timer" idiom used by the
// stop-and-wait and pipelining engines.
func (h *Host) startTimer(dt time.Duration, fn func()) {
	h.sim.AddEvent(EventFunc(fn), dt)
}

// String implements fmt.Stringer.
func (h *Host) String() string {
	return fmt.Sprintf("Host(%s)", h.name)
}
