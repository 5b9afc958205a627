package netsim

//
// Simulator events
//

// Event is anything the [Simulator] can dispatch. An event's Run method
// takes no arguments: any context it needs must be captured by the
// value implementing this interface (typically a closure).
type Event interface {
	Run()
}

// EventFunc adapts a plain closure to the [Event] interface, mirroring
// the source simulator's "a couple of (context, callback)" design
// without requiring a dedicated context type per call site.
type EventFunc func()

var _ Event = EventFunc(nil)

// Run implements Event.
func (f EventFunc) Run() {
	f()
}
