package netsim

//
// Data model
//

// Logger is the logger we're using.
type Logger interface {
	// Debugf formats and emits a debug message.
	Debugf(format string, v ...any)

	// Debug emits a debug message.
	Debug(message string)

	// Infof formats and emits an informational message.
	Infof(format string, v ...any)

	// Info emits an informational message.
	Info(message string)

	// Warnf formats and emits a warning message.
	Warnf(format string, v ...any)

	// Warn emits a warning message.
	Warn(message string)
}

// NICOwner is anything that can sit behind a [NIC] and receive packets
// addressed to it. Both [Host] and [Router] implement this interface,
// which lets a [NIC] stay oblivious to what kind of node it serves.
type NICOwner interface {
	// Receive is called by a [NIC] when a [Packet] has arrived for this owner.
	Receive(nic *NIC, pkt *Packet)
}
