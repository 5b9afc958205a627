// Package netsim is a discrete-event simulator of a small packet
// network, used to study reliable-delivery protocols layered over a
// lossy, rate-limited, store-and-forward datapath.
//
// A scenario builds a topology out of [Host]s, [Router]s, [NIC]s, and
// [Link]s, all driven by a single [Simulator]. Submitting a burst of
// packets to a [Host] via [Host.Send] and then calling [Simulator.Run]
// advances virtual time, popping events in (time, insertion order) and
// invoking them, until the queue drains.
//
// A [Host] selects one of five reliability [Mode]s at construction:
//
//   - [ModeNoReliability] sends and forgets;
//
//   - [ModeAcknowledges] is stop-and-wait with no retransmission;
//
//   - [ModeAcknowledgesRTX] is stop-and-wait with a retransmission timer;
//
//   - [ModePipeliningFixedWindow] is Go-Back-N with a fixed window;
//
//   - [ModePipeliningDynamicWindow] is Go-Back-N with a window that
//     grows by one per acknowledging ACK and collapses to one on timeout.
//
// A [NIC] is a half-duplex, rate-limited, optionally bounded-queue
// serializer attached to one [Link] and one owner (a [Host] or a
// [Router]). A [Link] carries a fixed propagation delay and an
// independent per-packet loss probability. A [Router] forwards every
// packet it receives, unchanged, out its other NIC.
//
// Two topology constructors cover the common cases: [NewPPPTopology]
// wires two hosts directly through one link, and [NewRelayTopology]
// wires a sender and a receiver through a two-NIC router.
package netsim
