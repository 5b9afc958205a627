package netsim

//
// Packet routing
//

import "fmt"

// Router is a two-NIC store-and-forward node that forwards every
// received packet out the other NIC unchanged. It keeps no routing
// table and no queues of its own beyond its NICs' queues, and never
// drops a packet on its own account. The zero value is invalid; use
// [NewRouter] to construct.
type Router struct {
	name   string
	nics   []*NIC
	logger Logger
}

// NewRouter creates a new, portless [Router].
func NewRouter(name string, logger Logger) *Router {
	return &Router{
		name:   name,
		nics:   nil,
		logger: logger,
	}
}

// Name returns the router's name.
func (r *Router) Name() string {
	return r.name
}

// AddNIC attaches nic to this router. The NIC must not already have an
// owner. A [Router] accepts at most two NICs.
func (r *Router) AddNIC(nic *NIC) error {
	if len(r.nics) >= 2 {
		return fmt.Errorf("netsim: %s already has two NICs", r)
	}
	if err := nic.SetOwner(r); err != nil {
		return err
	}
	r.nics = append(r.nics, nic)
	return nil
}

// Receive implements NICOwner: it forwards pkt, unchanged, out whichever
// of the router's two NICs did not receive it.
func (r *Router) Receive(nic *NIC, pkt *Packet) {
	if len(r.nics) != 2 {
		r.logger.Warnf("netsim: %s: receive on a router without two NICs", r)
		return
	}
	var other *NIC
	switch nic {
	case r.nics[0]:
		other = r.nics[1]
	case r.nics[1]:
		other = r.nics[0]
	default:
		r.logger.Warnf("netsim: %s: received on unknown NIC", r)
		return
	}
	r.logger.Infof("netsim: %s: received %s on %s, forwarding on %s", r, pkt, nic, other)
	other.Send(pkt)
	r.logger.Debugf("netsim: %s: queue depth on %s = %d", r, other, other.QueueDepth())
}

// String implements fmt.Stringer.
func (r *Router) String() string {
	return fmt.Sprintf("Router(%s)", r.name)
}
