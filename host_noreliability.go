package netsim

//
// Host mode: NO_RELIABILITY
//

// noReliabilityEngine submits each packet to the NIC in order, with no
// state retained across calls. Received packets are logged and
// discarded; no ACK is ever generated.
type noReliabilityEngine struct {
	host *Host
}

var _ deliveryEngine = (*noReliabilityEngine)(nil)

func (e *noReliabilityEngine) send(pkts []*Packet) {
	for _, pkt := range pkts {
		e.host.logger.Infof("netsim: %s: sends %s on %s", e.host, pkt, e.host.nic)
		e.host.nic.Send(pkt)
	}
}

func (e *noReliabilityEngine) receive(pkt *Packet) {
	e.host.logger.Debugf("netsim: %s: discards %s (no reliability)", e.host, pkt)
}
