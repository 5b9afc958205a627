package netsim

import (
	"testing"
	"time"

	"github.com/bassosimone/netsim/internal"
)

// fixedLoss is a [LossSource] that always returns the same value,
// letting tests force or forbid a drop deterministically.
type fixedLoss float64

func (f fixedLoss) Float64() float64 {
	return float64(f)
}

func newTestNIC(sim *Simulator, logger Logger, rate float64) *NIC {
	return NewNIC(sim, logger, &NICConfig{RateBitsPerSecond: rate})
}

func TestLink(t *testing.T) {
	logger := &internal.NullLogger{}

	t.Run("DelayPr computes propagation delay from distance and speed", func(t *testing.T) {
		link := NewLink(&LinkConfig{DistanceMeters: 1000, SpeedMetersPerSecond: 2e8})
		if got, want := link.DelayPr(), 5*time.Microsecond; got != want {
			t.Fatalf("DelayPr() = %s, want %s", got, want)
		}
	})

	t.Run("shouldDrop compares against LostProb using the configured source", func(t *testing.T) {
		always := NewLink(&LinkConfig{LostProb: 0.5, Loss: fixedLoss(0.1)})
		if !always.shouldDrop() {
			t.Fatal("expected a drop when loss source < LostProb")
		}
		never := NewLink(&LinkConfig{LostProb: 0.5, Loss: fixedLoss(0.9)})
		if never.shouldDrop() {
			t.Fatal("expected no drop when loss source >= LostProb")
		}
	})

	t.Run("Attach enforces at-most-two endpoints and matching rates", func(t *testing.T) {
		sim := NewSimulator(logger)
		link := NewLink(&LinkConfig{DistanceMeters: 1, SpeedMetersPerSecond: 1})

		a := newTestNIC(sim, logger, 1e6)
		b := newTestNIC(sim, logger, 1e6)
		c := newTestNIC(sim, logger, 2e6)

		if err := link.Attach(a); err != nil {
			t.Fatalf("first Attach failed: %s", err)
		}
		if err := link.Attach(a); err == nil {
			t.Fatal("expected error re-attaching the same NIC")
		}
		if err := link.Attach(c); err == nil {
			t.Fatal("expected error attaching a NIC with a mismatched rate")
		}
		if err := link.Attach(b); err != nil {
			t.Fatalf("second Attach failed: %s", err)
		}
		d := newTestNIC(sim, logger, 1e6)
		if err := link.Attach(d); err == nil {
			t.Fatal("expected error attaching a third NIC")
		}
	})

	t.Run("Other resolves the peer only once both ends are attached", func(t *testing.T) {
		sim := NewSimulator(logger)
		link := NewLink(&LinkConfig{DistanceMeters: 1, SpeedMetersPerSecond: 1})
		a := newTestNIC(sim, logger, 1e6)

		if _, err := link.Other(a); err == nil {
			t.Fatal("expected ErrLinkNotFull before two NICs are attached")
		}

		b := newTestNIC(sim, logger, 1e6)
		Must0(link.Attach(a))
		Must0(link.Attach(b))

		peer, err := link.Other(a)
		if err != nil || peer != b {
			t.Fatalf("Other(a) = %v, %v; want b, nil", peer, err)
		}
		peer, err = link.Other(b)
		if err != nil || peer != a {
			t.Fatalf("Other(b) = %v, %v; want a, nil", peer, err)
		}

		stranger := newTestNIC(sim, logger, 1e6)
		if _, err := link.Other(stranger); err == nil {
			t.Fatal("expected ErrNICNotAttached for an unrelated NIC")
		}
	})
}
