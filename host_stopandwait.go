package netsim

//
// Host modes: ACKNOWLEDGES and ACKNOWLEDGES_WITH_RETRANSMISSION
//

import "time"

// stopAndWaitEngine implements stop-and-wait delivery, with or without
// a retransmission timer depending on retransmits. Sender state:
// sendQueue, waitingAck, current. Receiver side just mirrors DATA back
// as an ACK of the same size as the DATA packet it acknowledges.
type stopAndWaitEngine struct {
	host *Host

	retransmits bool
	rto         time.Duration

	sendQueue  []*Packet
	waitingAck bool
	current    *Packet

	timerToken uint64
}

var _ deliveryEngine = (*stopAndWaitEngine)(nil)

func newStopAndWaitEngine(host *Host, retransmits bool, rto time.Duration) *stopAndWaitEngine {
	return &stopAndWaitEngine{
		host:        host,
		retransmits: retransmits,
		rto:         rto,
	}
}

func (e *stopAndWaitEngine) send(pkts []*Packet) {
	e.sendQueue = append(e.sendQueue, pkts...)
	e.trySendNext()
}

// trySendNext pops the head of sendQueue and transmits it, provided we
// are not already waiting for an ACK.
func (e *stopAndWaitEngine) trySendNext() {
	if e.waitingAck || len(e.sendQueue) == 0 {
		return
	}
	pkt := e.sendQueue[0]
	e.sendQueue = e.sendQueue[1:]
	e.current = pkt
	e.waitingAck = true

	e.host.logger.Infof("netsim: %s: [SW] sends %s on %s (waiting ACK)", e.host, pkt, e.host.nic)
	e.host.nic.Send(pkt)

	if e.retransmits {
		e.startTimer(pkt.SN)
	}
}

// startTimer arms a fresh retransmission timer for sn, invalidating any
// previously live timer by bumping timerToken.
func (e *stopAndWaitEngine) startTimer(sn uint64) {
	e.timerToken++
	token := e.timerToken
	e.host.logger.Infof("netsim: %s: [SW] timer started for SN=%d (RTO=%s)", e.host, sn, e.rto)
	e.host.startTimer(e.rto, func() {
		e.onTimeout(token, sn)
	})
}

// stopTimer invalidates the current timer without scheduling a new one.
func (e *stopAndWaitEngine) stopTimer(sn uint64) {
	e.timerToken++
	e.host.logger.Infof("netsim: %s: [SW] timer stopped for SN=%d", e.host, sn)
}

func (e *stopAndWaitEngine) onTimeout(token uint64, sn uint64) {
	if token != e.timerToken {
		return
	}
	if !e.waitingAck || e.current == nil {
		return
	}
	if e.current.SN != sn {
		return
	}
	e.host.logger.Infof("netsim: %s: [SW] timer expired for SN=%d -> retransmit %s", e.host, sn, e.current)
	e.host.nic.Send(e.current)
	e.startTimer(sn)
}

func (e *stopAndWaitEngine) receive(pkt *Packet) {
	if pkt.Kind == PacketData {
		ack := NewAckPacket(pkt.SN, pkt.Size)
		e.host.logger.Infof("netsim: %s: [SW] sends %s on %s (ACK for SN=%d)", e.host, ack, e.host.nic, pkt.SN)
		e.host.nic.Send(ack)
		return
	}

	// pkt.Kind == PacketAck
	if !e.waitingAck || e.current == nil {
		e.host.logger.Debugf("netsim: %s: [SW] unexpected ACK SN=%d ignored (idle)", e.host, pkt.SN)
		return
	}
	if pkt.SN != e.current.SN {
		e.host.logger.Infof("netsim: %s: [SW] unexpected ACK SN=%d ignored", e.host, pkt.SN)
		return
	}

	e.host.logger.Infof("netsim: %s: [SW] received expected ACK for SN=%d", e.host, pkt.SN)
	if e.retransmits {
		e.stopTimer(pkt.SN)
	}
	e.waitingAck = false
	e.current = nil
	e.trySendNext()
}
