// Package dserrors defines the sentinel errors raised across the driver
// station protocol core. Errors are grouped by functional area so callers
// can match with errors.Is against a stable, documented set.
package dserrors

import "errors"

// Configuration errors.
//
// These are the only hard errors the core raises; they surface at adapter
// installation time, never from a running session (see spec §7).

// ErrBadConfig indicates an adapter was installed with a non-positive
// cadence (fms_hz/robot_hz) or a non-positive port number. IP lists are
// not checked.
var ErrBadConfig = errors.New("dspc: bad adapter configuration")

// Adapter registry errors.

// ErrAdapterAlreadyRegistered indicates a second adapter tried to register
// under a name already claimed by another factory.
var ErrAdapterAlreadyRegistered = errors.New("dspc: adapter already registered")

// ErrUnknownAdapter indicates a lookup for an adapter name with no
// registered factory.
var ErrUnknownAdapter = errors.New("dspc: no adapter registered under that name")

// Socket Manager errors.

// ErrSocketNotBound indicates a send was attempted before the socket
// manager's ports were configured.
var ErrSocketNotBound = errors.New("dspc: socket manager ports not configured")

// ErrNoSweepTarget indicates a send was attempted before any robot address
// candidate existed to target.
var ErrNoSweepTarget = errors.New("dspc: no sweep target available")
