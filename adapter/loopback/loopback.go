// Package loopback is a reference Adapter (spec §6) for local
// development and the debug console: its ParseRobotPacket accepts any
// datagram and reports a healthy, code-running robot. It does not route
// its own outbound packets back in (its robot output and input ports
// differ), so a session still needs a datagram arriving on the robot
// input port, and a reachable probe port, to reach comm_status=Full.
// Grounded on spec.md P7 (the round-trip law every adapter must satisfy).
package loopback

import "dspc/adapter"

const (
	fmsInPort    = 1260
	fmsOutPort   = 1220
	robotInPort  = 1221
	robotOutPort = 1230
	tcpProbePort = 1736
)

func init() {
	adapter.Register("loopback", func() adapter.Adapter { return New() })
}

// Adapter is the loopback reference implementation. It does not
// serialize anything meaningful onto the wire; ParseRobotPacket always
// succeeds and reports a healthy, code-running robot at a fixed voltage.
type Adapter struct {
	fmsHz, robotHz int
}

// New returns a loopback Adapter at 2Hz FMS / 50Hz robot.
func New() *Adapter {
	return &Adapter{fmsHz: 2, robotHz: 50}
}

func (a *Adapter) Name() string         { return "loopback" }
func (a *Adapter) FMSHz() int           { return a.fmsHz }
func (a *Adapter) RobotHz() int         { return a.robotHz }
func (a *Adapter) TCPProbePort() int    { return tcpProbePort }
func (a *Adapter) FMSInputPort() int    { return fmsInPort }
func (a *Adapter) FMSOutputPort() int   { return fmsOutPort }
func (a *Adapter) RobotInputPort() int  { return robotInPort }
func (a *Adapter) RobotOutputPort() int { return robotOutPort }

func (a *Adapter) ExtraRadioIPs() []string { return []string{"127.0.0.1"} }
func (a *Adapter) ExtraRobotIPs() []string { return []string{"127.0.0.1"} }

func (a *Adapter) BuildRobotPacket(snap adapter.Snapshot) []byte { return []byte("loopback-robot") }
func (a *Adapter) BuildFMSPacket(snap adapter.Snapshot) []byte   { return []byte("loopback-fms") }

func (a *Adapter) ParseRobotPacket(data []byte, apply adapter.Setters) bool {
	apply.SetRobotCode(true)
	apply.SetVoltageBrownout(false)
	apply.SetSendDatetime(false)
	apply.SetBatteryVoltage("12", "60")
	return true
}

func (a *Adapter) ParseFMSPacket(data []byte, apply adapter.Setters) bool { return true }

func (a *Adapter) RequestRobotInformation() {}
func (a *Adapter) ResetHook()               {}
