// Command netsim runs a canned scenario against the reliability engine
// and reports how long delivery took under the requested link
// conditions. It wires a topology, calls Host.Send, then Simulator.Run.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/apex/log"
	"github.com/bassosimone/netsim"
	"github.com/montanaflynn/stats"
)

func modeFromFlag(name string) netsim.Mode {
	switch name {
	case "none":
		return netsim.ModeNoReliability
	case "ack":
		return netsim.ModeAcknowledges
	case "ack-rtx":
		return netsim.ModeAcknowledgesRTX
	case "pfw":
		return netsim.ModePipeliningFixedWindow
	case "pdw":
		return netsim.ModePipeliningDynamicWindow
	default:
		log.Fatalf("netsim: unknown mode %q", name)
		panic("unreachable")
	}
}

func runOnce(modeName string, count int, size uint32, rate float64,
	distance, speed, lostProb float64, rto time.Duration,
	windowSize int, relay bool, seed int64) time.Duration {

	logger := log.Log
	mode := modeFromFlag(modeName)

	senderConfig := &netsim.HostConfig{Mode: mode, RTO: rto, WindowSize: windowSize}
	receiverConfig := &netsim.HostConfig{Mode: mode, RTO: rto, WindowSize: windowSize}
	nicConfig := &netsim.NICConfig{RateBitsPerSecond: rate}
	lc := &netsim.LinkConfig{
		DistanceMeters:       distance,
		SpeedMetersPerSecond: speed,
		LostProb:             lostProb,
		Loss:                 rand.New(rand.NewSource(seed)),
	}

	var sim *netsim.Simulator
	var sender *netsim.Host

	if relay {
		topo := netsim.Must1(netsim.NewRelayTopology(
			logger, senderConfig, receiverConfig, nicConfig, lc, lc))
		sim, sender = topo.Sim, topo.Sender
	} else {
		topo := netsim.Must1(netsim.NewPPPTopology(
			logger, senderConfig, receiverConfig, nicConfig, lc))
		sim, sender = topo.Sim, topo.Left
	}

	pkts := make([]*netsim.Packet, 0, count)
	for i := 1; i <= count; i++ {
		pkts = append(pkts, netsim.NewDataPacket(uint64(i), size))
	}
	sender.Send(pkts)
	sim.Run()

	return sim.Now()
}

func main() {
	modeFlag := flag.String("mode", "pfw", "reliability mode: none, ack, ack-rtx, pfw, pdw")
	count := flag.Int("count", 20, "number of DATA packets to send")
	size := flag.Uint("size", 1000, "packet size in bytes")
	rate := flag.Float64("rate", 1e6, "NIC rate in bits per second")
	distance := flag.Float64("distance", 1000, "link distance in meters")
	speed := flag.Float64("speed", 2e8, "link propagation speed in meters per second")
	lostProb := flag.Float64("loss", 0.05, "per-packet loss probability")
	rto := flag.Duration("rto", 50*time.Millisecond, "retransmission timeout")
	windowSize := flag.Int("window", 5, "fixed window size (pfw only)")
	relay := flag.Bool("relay", false, "route through a Router instead of a direct link")
	runs := flag.Int("runs", 1, "number of independent seeded runs to average over")
	flag.Parse()

	elapsed := make([]float64, 0, *runs)
	for i := 0; i < *runs; i++ {
		d := runOnce(*modeFlag, *count, uint32(*size), *rate,
			*distance, *speed, *lostProb, *rto, *windowSize, *relay, int64(i))
		elapsed = append(elapsed, d.Seconds())
		log.Infof("netsim: run %d completed at virtual time %s", i, d)
	}

	mean := netsim.Must1(stats.Mean(elapsed))
	if *runs > 1 {
		stddev := netsim.Must1(stats.StandardDeviation(elapsed))
		fmt.Printf("mode=%s runs=%d mean_completion=%.6fs stddev=%.6fs\n",
			*modeFlag, *runs, mean, stddev)
	} else {
		fmt.Printf("mode=%s completion=%.6fs\n", *modeFlag, mean)
	}
}
