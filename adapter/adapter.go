// Package adapter defines the protocol adapter contract (spec §6) — the
// pluggability seam a concrete wire format plugs into the core through —
// and the factory registry adapters install themselves into.
package adapter

import "dspc/input"

// Snapshot is the read-only view of core state an encoder needs. Passed
// by value so encoders cannot mutate the core directly (spec §5: "Adapter
// encoders receive read-only snapshots").
type Snapshot struct {
	Team            int
	Alliance        string
	ControlMode     string
	Enabled         bool
	EmergencyStop   bool
	BatteryVoltage  float64
	SendDatetime    bool
	Joysticks       []input.Joystick
}

// Adapter is the pluggable wire-format seam (spec §6). Exactly one
// Adapter is installed per ProtocolCore.
type Adapter interface {
	// Name is banner text shown in console/log output.
	Name() string

	// FMSHz / RobotHz are the two independent emission cadences.
	FMSHz() int
	RobotHz() int

	// TCPProbePort is the robot liveness-probe destination port.
	TCPProbePort() int

	// FMSInputPort, FMSOutputPort, RobotInputPort, RobotOutputPort are
	// the four UDP ports the socket manager binds/targets.
	FMSInputPort() int
	FMSOutputPort() int
	RobotInputPort() int
	RobotOutputPort() int

	// ExtraRadioIPs / ExtraRobotIPs are prepended ahead of the fixed
	// discovery entries (spec §4.3).
	ExtraRadioIPs() []string
	ExtraRobotIPs() []string

	// BuildFMSPacket / BuildRobotPacket encode outgoing datagrams from a
	// read-only state snapshot.
	BuildFMSPacket(snap Snapshot) []byte
	BuildRobotPacket(snap Snapshot) []byte

	// ParseFMSPacket / ParseRobotPacket decode an inbound datagram,
	// returning true iff it decoded. apply is called with any derived
	// setter calls the adapter wants to make on the core (voltage, robot
	// code liveness, send_datetime, ...); decoders may mutate the core
	// only through it.
	ParseFMSPacket(data []byte, apply Setters) bool
	ParseRobotPacket(data []byte, apply Setters) bool

	// RequestRobotInformation is invoked on Partial->Full.
	RequestRobotInformation()

	// ResetHook is invoked on Full->Failing, before the core clears its
	// own volatile fields.
	ResetHook()
}

// Setters is the narrow surface a decoder may use to report derived
// state back to the core — voltage/code/brownout/datetime-request, never
// comm_status or the watchdog directly (those are core-owned).
type Setters interface {
	SetBatteryVoltage(digit, decimal string)
	SetRobotCode(bool)
	SetVoltageBrownout(bool)
	SetSendDatetime(bool)
}
