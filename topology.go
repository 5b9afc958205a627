package netsim

//
// Network topologies
//
// A minimal driver does not need these helpers -- it can wire a
// [Simulator], [Link]s, [NIC]s, and [Host]s by hand -- but every
// scenario in cmd/netsim and in the test suite needs the same few
// topologies, so we factor them out here.
//

// PPPTopology is a point-to-point topology: two [Host]s joined directly
// by one [Link]. By convention, Left is the sender and Right is the
// receiver. The zero value is invalid; use [NewPPPTopology] to construct.
type PPPTopology struct {
	// Sim is the topology's simulator.
	Sim *Simulator

	// Left is the left-hand host.
	Left *Host

	// Right is the right-hand host.
	Right *Host

	// Link is the link connecting Left and Right.
	Link *Link
}

// NewPPPTopology creates a [PPPTopology].
//
// Arguments:
//
//   - logger is the logger to use;
//
//   - leftConfig, rightConfig describe the two hosts' reliability modes;
//
//   - nicConfig describes the (identical) rate and queue capacity used
//     by both NICs;
//
//   - lc describes the link's distance, speed, and loss probability.
func NewPPPTopology(
	logger Logger,
	leftConfig, rightConfig *HostConfig,
	nicConfig *NICConfig,
	lc *LinkConfig,
) (*PPPTopology, error) {
	sim := NewSimulator(logger)

	left := NewHost(sim, logger, "left", leftConfig)
	right := NewHost(sim, logger, "right", rightConfig)

	leftNIC := NewNIC(sim, logger, nicConfig)
	rightNIC := NewNIC(sim, logger, nicConfig)

	if err := left.AddNIC(leftNIC); err != nil {
		return nil, err
	}
	if err := right.AddNIC(rightNIC); err != nil {
		return nil, err
	}

	link := NewLink(lc)
	if err := leftNIC.Attach(link); err != nil {
		return nil, err
	}
	if err := rightNIC.Attach(link); err != nil {
		return nil, err
	}

	return &PPPTopology{
		Sim:   sim,
		Left:  left,
		Right: right,
		Link:  link,
	}, nil
}

// RelayTopology is a three-node topology: a sending [Host], a
// forwarding [Router], and a receiving [Host], joined by two [Link]s.
// Because a [Router] has exactly two NICs, this is the
// largest topology a single [Router] can anchor. The zero
// value is invalid; use [NewRelayTopology] to construct.
type RelayTopology struct {
	// Sim is the topology's simulator.
	Sim *Simulator

	// Sender is the originating host.
	Sender *Host

	// Router forwards packets between Sender and Receiver.
	Router *Router

	// Receiver is the destination host.
	Receiver *Host

	// SenderLink connects Sender to Router.
	SenderLink *Link

	// ReceiverLink connects Router to Receiver.
	ReceiverLink *Link
}

// NewRelayTopology creates a [RelayTopology]. lcSender and lcReceiver
// describe the two links' distance, speed, and loss probability; they
// need not be identical.
func NewRelayTopology(
	logger Logger,
	senderConfig, receiverConfig *HostConfig,
	nicConfig *NICConfig,
	lcSender, lcReceiver *LinkConfig,
) (*RelayTopology, error) {
	sim := NewSimulator(logger)

	sender := NewHost(sim, logger, "sender", senderConfig)
	receiver := NewHost(sim, logger, "receiver", receiverConfig)
	router := NewRouter("router", logger)

	senderNIC := NewNIC(sim, logger, nicConfig)
	routerNIC1 := NewNIC(sim, logger, nicConfig)
	routerNIC2 := NewNIC(sim, logger, nicConfig)
	receiverNIC := NewNIC(sim, logger, nicConfig)

	if err := sender.AddNIC(senderNIC); err != nil {
		return nil, err
	}
	if err := router.AddNIC(routerNIC1); err != nil {
		return nil, err
	}
	if err := router.AddNIC(routerNIC2); err != nil {
		return nil, err
	}
	if err := receiver.AddNIC(receiverNIC); err != nil {
		return nil, err
	}

	senderLink := NewLink(lcSender)
	if err := senderNIC.Attach(senderLink); err != nil {
		return nil, err
	}
	if err := routerNIC1.Attach(senderLink); err != nil {
		return nil, err
	}

	receiverLink := NewLink(lcReceiver)
	if err := routerNIC2.Attach(receiverLink); err != nil {
		return nil, err
	}
	if err := receiverNIC.Attach(receiverLink); err != nil {
		return nil, err
	}

	return &RelayTopology{
		Sim:          sim,
		Sender:       sender,
		Router:       router,
		Receiver:     receiver,
		SenderLink:   senderLink,
		ReceiverLink: receiverLink,
	}, nil
}
