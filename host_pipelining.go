package netsim

//
// Host modes: PIPELINING_FIXED_WINDOW and PIPELINING_DYNAMIC_WINDOW
//

import (
	"sort"
	"time"
)

// pipeliningAckSize is the fixed payload size used for ACKs generated
// in pipelined modes. Stop-and-wait ACKs, by contrast, reuse the DATA
// packet's size; this constant affects wire-time accounting only.
const pipeliningAckSize = 10

// pipeliningEngine implements Go-Back-N pipelining shared by the fixed-
// and dynamic-window modes. dynamic selects the additive-increase,
// reset-on-timeout window behavior of PDW; when dynamic is false,
// windowSize stays constant, giving PFW.
//
// Sender state: base/next delimit the in-flight range [base, next), with
// inFlight holding exactly those packets. Receiver state (expected,
// recvCache) is independent of the sender state and tracked regardless
// of which side of a flow this host is playing.
type pipeliningEngine struct {
	host *Host

	dynamic    bool
	windowSize int
	rto        time.Duration

	base     *uint64
	next     *uint64
	inFlight map[uint64]*Packet
	appQueue []*Packet

	timerToken uint64

	expected  uint64
	recvCache map[uint64]*Packet
}

var _ deliveryEngine = (*pipeliningEngine)(nil)

func newPipeliningEngine(host *Host, dynamic bool, windowSize int, rto time.Duration) *pipeliningEngine {
	return &pipeliningEngine{
		host:       host,
		dynamic:    dynamic,
		windowSize: windowSize,
		rto:        rto,
		inFlight:   map[uint64]*Packet{},
		expected:   1,
		recvCache:  map[uint64]*Packet{},
	}
}

// tag returns the log prefix for this engine's mode.
func (e *pipeliningEngine) tag() string {
	if e.dynamic {
		return "PDW"
	}
	return "PFW"
}

func (e *pipeliningEngine) send(pkts []*Packet) {
	e.appQueue = append(e.appQueue, pkts...)
	e.fillWindow()
}

// fillWindow initializes base/next when no window is open (base is nil,
// as on the first send or after every in-flight packet was acked), then admits
// packets into flight while the window has room and the head of
// appQueue is the next expected sn in sequence.
func (e *pipeliningEngine) fillWindow() {
	if e.base == nil {
		if len(e.appQueue) == 0 {
			return
		}
		first := e.appQueue[0].SN
		e.base = &first
		next := first
		e.next = &next
	}

	for e.next != nil {
		if len(e.inFlight) >= e.windowSize {
			return
		}
		if len(e.appQueue) == 0 {
			return
		}
		pkt := e.appQueue[0]
		if pkt.SN != *e.next {
			return
		}
		e.appQueue = e.appQueue[1:]
		e.inFlight[pkt.SN] = pkt

		e.host.logger.Infof("netsim: %s: [%s] sends %s (window base=%d, next=%d, size=%d)",
			e.host, e.tag(), pkt, *e.base, *e.next, e.windowSize)
		e.host.nic.Send(pkt)

		if len(e.inFlight) == 1 {
			e.startTimer(*e.base)
		}
		*e.next++
	}
}

func (e *pipeliningEngine) startTimer(baseSN uint64) {
	e.timerToken++
	token := e.timerToken
	e.host.logger.Infof("netsim: %s: [%s] timer started for base SN=%d (RTO=%s)", e.host, e.tag(), baseSN, e.rto)
	e.host.startTimer(e.rto, func() {
		e.onTimeout(token, baseSN)
	})
}

func (e *pipeliningEngine) stopTimer() {
	e.timerToken++
	e.host.logger.Infof("netsim: %s: [%s] timer stopped", e.host, e.tag())
}

// onTimeout retransmits only the packet at base -- a deliberate
// simplification of classical Go-Back-N that does not resend the whole
// window. In PDW it also collapses windowSize back to 1.
func (e *pipeliningEngine) onTimeout(token uint64, sn uint64) {
	if token != e.timerToken {
		return
	}
	if e.base == nil || sn != *e.base {
		return
	}

	if e.dynamic {
		old := e.windowSize
		e.windowSize = 1
		e.host.logger.Infof("netsim: %s: [PDW] timeout -> window size %d -> %d", e.host, old, e.windowSize)
	}

	pkt, ok := e.inFlight[*e.base]
	if !ok {
		return
	}
	e.host.logger.Infof("netsim: %s: [%s] timeout -> retransmit oldest unacked %s", e.host, e.tag(), pkt)
	e.host.nic.Send(pkt)
	e.startTimer(*e.base)
}

func (e *pipeliningEngine) sendCumAck() {
	ackSN := e.expected - 1
	ack := NewAckPacket(ackSN, pipeliningAckSize)
	e.host.logger.Infof("netsim: %s: [%s] sends cumulative %s (ack up to SN=%d)", e.host, e.tag(), ack, ackSN)
	e.host.nic.Send(ack)
}

// onDataReceived implements the receiver side: in-order delivery
// advances expected and drains any cached successors; out-of-order
// packets are cached; duplicates (sn < expected) are ignored. Every
// case replies with a cumulative ACK.
func (e *pipeliningEngine) onDataReceived(pkt *Packet) {
	sn := pkt.SN

	switch {
	case sn == e.expected:
		e.host.logger.Infof("netsim: %s: [%s] in-order DATA SN=%d (expected=%d)", e.host, e.tag(), sn, e.expected)
		e.expected++
		for {
			cached, ok := e.recvCache[e.expected]
			if !ok {
				break
			}
			delete(e.recvCache, e.expected)
			e.host.logger.Infof("netsim: %s: [%s] deliver cached DATA SN=%d", e.host, e.tag(), cached.SN)
			e.expected++
		}

	case sn > e.expected:
		if _, ok := e.recvCache[sn]; !ok {
			e.recvCache[sn] = pkt
			e.host.logger.Infof("netsim: %s: [%s] out-of-order DATA SN=%d cached (expected=%d)", e.host, e.tag(), sn, e.expected)
		}

	default:
		e.host.logger.Infof("netsim: %s: [%s] duplicate DATA SN=%d ignored (expected=%d)", e.host, e.tag(), sn, e.expected)
	}

	e.sendCumAck()
}

// onAckReceived implements the sender side: retires every in-flight
// packet with sn <= ack, slides base forward, and (in PDW) grows the
// window additively on any ACK that retires at least one packet.
func (e *pipeliningEngine) onAckReceived(pkt *Packet) {
	ackSN := pkt.SN
	if e.base == nil {
		return
	}
	if *e.base > 0 && ackSN < *e.base-1 {
		e.host.logger.Infof("netsim: %s: [%s] stale ACK SN=%d ignored (base=%d)", e.host, e.tag(), ackSN, *e.base)
		return
	}

	var newlyAcked []uint64
	for sn := range e.inFlight {
		if sn <= ackSN {
			newlyAcked = append(newlyAcked, sn)
		}
	}
	if len(newlyAcked) == 0 {
		e.host.logger.Infof("netsim: %s: [%s] ACK SN=%d received (nothing new) (base=%d)", e.host, e.tag(), ackSN, *e.base)
		return
	}
	sort.Slice(newlyAcked, func(i, j int) bool { return newlyAcked[i] < newlyAcked[j] })
	for _, sn := range newlyAcked {
		delete(e.inFlight, sn)
	}

	if e.dynamic {
		old := e.windowSize
		e.windowSize++
		e.host.logger.Infof("netsim: %s: [PDW] ACK received -> window size %d -> %d", e.host, old, e.windowSize)
	}

	oldBase := *e.base
	newBase := ackSN + 1
	e.base = &newBase
	e.host.logger.Infof("netsim: %s: [%s] cumulative ACK up to SN=%d -> slide window (base %d -> %d)",
		e.host, e.tag(), ackSN, oldBase, newBase)

	if len(e.inFlight) == 0 {
		e.stopTimer()
		e.base = nil
		e.next = nil
	} else {
		e.startTimer(*e.base)
	}

	e.fillWindow()
}

func (e *pipeliningEngine) receive(pkt *Packet) {
	switch pkt.Kind {
	case PacketData:
		e.onDataReceived(pkt)
	case PacketAck:
		e.onAckReceived(pkt)
	}
}
