package netsim

//
// NIC: half-duplex serializer attached to one link and one owner
//

import (
	"fmt"
	"sync/atomic"
	"time"
)

// nicID is the unique ID of each NIC, used to build its name.
var nicID = &atomic.Int64{}

// newNICName constructs a new, unique name for a NIC.
func newNICName() string {
	return fmt.Sprintf("eth%d", nicID.Add(1))
}

// NICConfig contains config for creating a [NIC]. Make sure you
// initialize all the fields marked as MANDATORY.
type NICConfig struct {
	// RateBitsPerSecond is the MANDATORY transmission rate.
	RateBitsPerSecond float64

	// QueueCapacityPackets is the OPTIONAL outbound queue capacity, in
	// packets. Zero means unbounded. A capacity of N admits at most N-1
	// queued packets while one packet is in transmission.
	QueueCapacityPackets int
}

// NIC is a half-duplex serializer attached to one [Link] and one
// [NICOwner] (a [Host] or a [Router]). It owns an outbound FIFO queue
// with an optional bounded capacity, models transmission delay, and
// schedules reception at the far end after transmission plus
// propagation. The zero value is invalid; use [NewNIC] to construct.
type NIC struct {
	name         string
	rate         float64
	queueCap     int
	queue        []*Packet
	transmitting bool
	link         *Link
	owner        NICOwner
	sim          *Simulator
	logger       Logger
}

var _ NICOwner = (*Router)(nil)

// NewNIC creates a new, idle [NIC]. It must be attached to a [Link]
// (via [NIC.Attach]) and given an owner (via [NIC.SetOwner]) before use.
func NewNIC(sim *Simulator, logger Logger, config *NICConfig) *NIC {
	return &NIC{
		name:         newNICName(),
		rate:         config.RateBitsPerSecond,
		queueCap:     config.QueueCapacityPackets,
		queue:        nil,
		transmitting: false,
		link:         nil,
		owner:        nil,
		sim:          sim,
		logger:       logger,
	}
}

// Name returns the NIC's interface name (e.g. "eth1").
func (n *NIC) Name() string {
	return n.name
}

// Rate returns the NIC's transmission rate in bits per second.
func (n *NIC) Rate() float64 {
	return n.rate
}

// QueueDepth returns the number of packets currently queued (not
// counting the packet, if any, presently in transmission).
func (n *NIC) QueueDepth() int {
	return len(n.queue)
}

// Owner returns the NIC's current owner, or nil if it has none.
func (n *NIC) Owner() NICOwner {
	return n.owner
}

// SetOwner assigns this NIC to a [Host] or [Router]. It is a
// configuration error to set the owner twice.
func (n *NIC) SetOwner(owner NICOwner) error {
	if n.owner != nil {
		return ErrNICHasOwner
	}
	n.owner = owner
	return nil
}

// Attach attaches this NIC to a [Link].
func (n *NIC) Attach(link *Link) error {
	if err := link.Attach(n); err != nil {
		return err
	}
	n.link = link
	return nil
}

// delayTr returns the time needed to transmit a packet of the given size.
func (n *NIC) delayTr(size uint32) time.Duration {
	seconds := float64(size) * 8 / n.rate
	return time.Duration(seconds * float64(time.Second))
}

// Send submits pkt for transmission. If the NIC is idle, transmission
// begins immediately. Otherwise, pkt is enqueued if room remains, or
// silently dropped (logged but not reported) on overflow.
func (n *NIC) Send(pkt *Packet) {
	if !n.transmitting {
		n.transmit(pkt)
		return
	}
	if n.queueCap == 0 || n.QueueDepth()+1 < n.queueCap {
		n.logger.Debugf("netsim: %s: enqueue %s", n, pkt)
		n.queue = append(n.queue, pkt)
		return
	}
	n.logger.Infof("netsim: %s: dropped %s (queue full)", n, pkt)
}

// transmit begins transmitting pkt: it marks the NIC busy, schedules the
// end-of-transmission event, and independently decides (once, for this
// attempt) whether the packet is lost on the link.
func (n *NIC) transmit(pkt *Packet) {
	n.transmitting = true
	delay := n.delayTr(pkt.Size)
	n.logger.Debugf("netsim: %s: transmitting %s, queue depth = %d", n, pkt, n.QueueDepth())

	n.sim.AddEvent(EventFunc(func() {
		n.onEndOfTransmission()
	}), delay)

	if n.link.shouldDrop() {
		n.logger.Infof("netsim: %s: %s lost on link", n, pkt)
		return
	}

	peer, err := n.link.Other(n)
	if err != nil {
		n.logger.Warnf("netsim: %s: no peer to deliver %s: %s", n, pkt, err)
		return
	}
	n.sim.AddEvent(EventFunc(func() {
		peer.onReceive(pkt)
	}), delay+n.link.DelayPr())
}

// onEndOfTransmission fires when the packet currently in transmission
// has finished transmitting. If more packets are queued, the next one
// starts transmitting immediately; otherwise the NIC goes idle.
func (n *NIC) onEndOfTransmission() {
	n.logger.Debugf("netsim: %s: end of transmission", n)
	if len(n.queue) > 0 {
		pkt := n.queue[0]
		n.queue = n.queue[1:]
		n.transmit(pkt)
		return
	}
	n.transmitting = false
}

// onReceive fires at the peer NIC when a packet arrives, and hands it
// to this NIC's owner.
func (n *NIC) onReceive(pkt *Packet) {
	n.logger.Debugf("netsim: %s: received %s", n, pkt)
	n.owner.Receive(n, pkt)
}

// String implements fmt.Stringer.
func (n *NIC) String() string {
	ownerName := "unattached"
	if named, ok := n.owner.(interface{ Name() string }); ok {
		ownerName = named.Name()
	}
	return fmt.Sprintf("NIC(%s:%s)", ownerName, n.name)
}
