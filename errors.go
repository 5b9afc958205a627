package netsim

import "errors"

//
// Configuration errors
//
// These are programming errors: attaching a NIC twice,
// mismatched link rates, double-homing a NIC, etc. They are returned
// to the caller at topology-construction time rather than panicking,
// so that a driver can decide how to report a bad scenario; but they
// are never expected to occur in a correctly wired topology.
//

// ErrLinkFull indicates that a [Link] already has two NICs attached.
var ErrLinkFull = errors.New("netsim: link already has two NICs attached")

// ErrNICAlreadyAttached indicates that a [NIC] is already attached to this [Link].
var ErrNICAlreadyAttached = errors.New("netsim: NIC already attached to this link")

// ErrRateMismatch indicates that two NICs sharing a [Link] advertise different rates.
var ErrRateMismatch = errors.New("netsim: NIC rate mismatch on link")

// ErrLinkNotFull indicates that [Link.Other] was called before two NICs were attached.
var ErrLinkNotFull = errors.New("netsim: link does not have two NICs attached yet")

// ErrNICNotAttached indicates that a NIC is not one of this [Link]'s endpoints.
var ErrNICNotAttached = errors.New("netsim: NIC not attached to this link")

// ErrNICHasOwner indicates that a [NIC] already has an owner (a [Host] or [Router]).
var ErrNICHasOwner = errors.New("netsim: NIC already has an owner")
