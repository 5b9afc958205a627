package netsim_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/montanaflynn/stats"

	"github.com/bassosimone/netsim"
	"github.com/bassosimone/netsim/internal"
)

// TestRelayTopologyEndToEnd drives a ModeNoReliability burst through a
// [netsim.RelayTopology]. The receiving Host discards what it gets, so
// delivery is observed indirectly through the simulator's completion time.
func TestRelayTopologyEndToEnd(t *testing.T) {
	logger := &internal.NullLogger{}

	leftConfig := &netsim.HostConfig{Mode: netsim.ModeNoReliability}
	rightConfig := &netsim.HostConfig{Mode: netsim.ModeNoReliability}
	nicConfig := &netsim.NICConfig{RateBitsPerSecond: 1e6}
	lc := &netsim.LinkConfig{DistanceMeters: 1000, SpeedMetersPerSecond: 2e8}

	topo := netsim.Must1(netsim.NewRelayTopology(logger, leftConfig, rightConfig, nicConfig, lc, lc))

	pkts := make([]*netsim.Packet, 3)
	for i := range pkts {
		pkts[i] = netsim.NewDataPacket(uint64(i+1), 10)
	}
	topo.Sender.Send(pkts)
	topo.Sim.Run()

	// Two hops of 80us transmission + 5us propagation each, serialized
	// at the router since it has no parallel forwarding path.
	want := 2 * (80*time.Microsecond + 5*time.Microsecond)
	if got := topo.Sim.Now(); got < want {
		t.Fatalf("completion time %s is earlier than the first packet's own delivery bound %s", got, want)
	}
}

func TestNewPPPTopologyBuildsFreshTopology(t *testing.T) {
	logger := &internal.NullLogger{}
	leftConfig := &netsim.HostConfig{Mode: netsim.ModeNoReliability}
	rightConfig := &netsim.HostConfig{Mode: netsim.ModeNoReliability}
	nicConfig := &netsim.NICConfig{RateBitsPerSecond: 1e6}
	lc := &netsim.LinkConfig{DistanceMeters: 1, SpeedMetersPerSecond: 1}

	if _, err := netsim.NewPPPTopology(logger, leftConfig, rightConfig, nicConfig, lc); err != nil {
		t.Fatalf("unexpected error building a fresh topology: %s", err)
	}
}

// countingOwner counts how many packets actually arrive, used to turn
// a configured loss probability into an observable delivery rate.
type countingOwner struct {
	delivered int
}

func (c *countingOwner) Receive(nic *netsim.NIC, pkt *netsim.Packet) {
	c.delivered++
}

// TestLossRateConverges runs many independent single-packet trials
// over a link with a known loss probability and checks that the
// empirically observed delivery rate lands close to 1-lostProb.
func TestLossRateConverges(t *testing.T) {
	logger := &internal.NullLogger{}
	const trials = 2000
	const lostProb = 0.3

	outcomes := make([]float64, 0, trials)
	for i := 0; i < trials; i++ {
		sim := netsim.NewSimulator(logger)
		sender := netsim.NewNIC(sim, logger, &netsim.NICConfig{RateBitsPerSecond: 1e6})
		receiver := netsim.NewNIC(sim, logger, &netsim.NICConfig{RateBitsPerSecond: 1e6})
		owner := &countingOwner{}
		netsim.Must0(receiver.SetOwner(owner))

		link := netsim.NewLink(&netsim.LinkConfig{
			DistanceMeters: 1000, SpeedMetersPerSecond: 2e8,
			LostProb: lostProb, Loss: rand.New(rand.NewSource(int64(i))),
		})
		netsim.Must0(sender.Attach(link))
		netsim.Must0(receiver.Attach(link))

		sender.Send(netsim.NewDataPacket(1, 10))
		sim.Run()

		outcomes = append(outcomes, float64(owner.delivered))
	}

	mean := netsim.Must1(stats.Mean(outcomes))
	wantDeliveryRate := 1 - lostProb
	if diff := cmp.Diff(wantDeliveryRate, mean, cmp.Comparer(func(a, b float64) bool {
		const tolerance = 0.05
		d := a - b
		return d > -tolerance && d < tolerance
	})); diff != "" {
		t.Fatalf("observed delivery rate %.3f too far from expected %.3f: %s", mean, wantDeliveryRate, diff)
	}
}
