package netsim

//
// Simplest discrete event simulator
//

import (
	"container/heap"
	"time"
)

// Simulator is a priority queue of time-stamped events ordered by
// (time, insertion index). It advances virtual time by popping the
// earliest event and invoking it. The zero value is invalid; use
// [NewSimulator] to construct.
type Simulator struct {
	// logger is the logger to use.
	logger Logger

	// now is the simulator's virtual clock.
	now time.Duration

	// queue is the underlying event heap.
	queue eventHeap

	// seq is the monotonically increasing insertion index, used to
	// break ties between events scheduled for the same instant.
	seq uint64
}

// NewSimulator creates a new, empty [Simulator].
func NewSimulator(logger Logger) *Simulator {
	return &Simulator{
		logger: logger,
		now:    0,
		queue:  nil,
		seq:    0,
	}
}

// Now returns the simulator's current virtual time.
func (s *Simulator) Now() time.Duration {
	return s.now
}

// AddEvent schedules ev to run at Now()+dt. It is a programming error to
// call this function with a negative dt.
func (s *Simulator) AddEvent(ev Event, dt time.Duration) {
	if dt < 0 {
		panic("netsim: Simulator.AddEvent: negative dt")
	}
	item := &eventItem{
		time:  s.now + dt,
		index: s.seq,
		event: ev,
	}
	s.seq++
	s.logger.Debugf("netsim: scheduling %T at t=%s (in %s)", ev, item.time, dt)
	heap.Push(&s.queue, item)
}

// Run drains the event queue, advancing virtual time to each popped
// event's deadline before invoking it. Run returns once the queue is
// exhausted.
func (s *Simulator) Run() {
	s.logger.Debug("netsim: simulator running")
	for s.queue.Len() > 0 {
		item := heap.Pop(&s.queue).(*eventItem)
		s.now = item.time
		s.logger.Debugf("netsim: now = %s, %d events remaining", s.now, s.queue.Len())
		item.event.Run()
	}
	s.logger.Debug("netsim: simulator terminated")
}

// eventItem is one entry in the simulator's priority queue.
type eventItem struct {
	time  time.Duration
	index uint64
	event Event
}

// eventHeap implements container/heap.Interface ordering by
// (time, index), which gives FIFO behavior among same-time events.
type eventHeap []*eventItem

var _ heap.Interface = &eventHeap{}

// Len implements sort.Interface.
func (h eventHeap) Len() int { return len(h) }

// Less implements sort.Interface.
func (h eventHeap) Less(i, j int) bool {
	if h[i].time != h[j].time {
		return h[i].time < h[j].time
	}
	return h[i].index < h[j].index
}

// Swap implements sort.Interface.
func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// Push implements heap.Interface.
func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(*eventItem))
}

// Pop implements heap.Interface.
func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
