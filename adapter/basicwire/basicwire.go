// Package basicwire is a reference Adapter (spec §6): a compact binary
// wire format exercising every field the core reads and writes. It has
// no affiliation with any specific field-control vendor; it exists to
// prove the adapter seam and to give the core's tests and the debug
// console something concrete to run against.
package basicwire

import (
	"bytes"
	"encoding/binary"
	"strconv"

	"dspc/adapter"
)

const (
	fmsInPort    = 1160
	fmsOutPort   = 1120
	robotInPort  = 1121
	robotOutPort = 1130
	tcpProbePort = 1735
)

var allianceCodes = map[string]byte{
	"Red1": 0, "Red2": 1, "Red3": 2, "Blue1": 3, "Blue2": 4, "Blue3": 5,
}

var allianceNames = []string{"Red1", "Red2", "Red3", "Blue1", "Blue2", "Blue3"}

var controlModeCodes = map[string]byte{
	"Invalid": 0, "Teleop": 1, "Autonomous": 2, "Test": 3,
}

var controlModeNames = []string{"Invalid", "Teleop", "Autonomous", "Test"}

func init() {
	adapter.Register("basicwire", func() adapter.Adapter { return New() })
}

// Adapter is the basicwire reference implementation.
type Adapter struct {
	fmsHz, robotHz int
}

// New returns a basicwire Adapter emitting at the game's conventional
// 2Hz FMS / 50Hz robot cadences.
func New() *Adapter {
	return &Adapter{fmsHz: 2, robotHz: 50}
}

func (a *Adapter) Name() string        { return "basicwire" }
func (a *Adapter) FMSHz() int          { return a.fmsHz }
func (a *Adapter) RobotHz() int        { return a.robotHz }
func (a *Adapter) TCPProbePort() int   { return tcpProbePort }
func (a *Adapter) FMSInputPort() int   { return fmsInPort }
func (a *Adapter) FMSOutputPort() int  { return fmsOutPort }
func (a *Adapter) RobotInputPort() int { return robotInPort }
func (a *Adapter) RobotOutputPort() int { return robotOutPort }

func (a *Adapter) ExtraRadioIPs() []string { return nil }
func (a *Adapter) ExtraRobotIPs() []string { return nil }

// BuildRobotPacket encodes the outbound control packet:
//
//	byte 0: flags (bit0 enabled, bit1 emergency_stop, bit2 send_datetime)
//	byte 1: control mode code
//	byte 2: alliance code
//	byte 3-4: team number, big-endian uint16
//	byte 5: joystick count
//	per joystick: axis count, axis bytes (signed, scaled to int8),
//	  button count, then ceil(buttons/8) bitmask bytes
func (a *Adapter) BuildRobotPacket(snap adapter.Snapshot) []byte {
	var buf bytes.Buffer

	var flags byte
	if snap.Enabled {
		flags |= 1 << 0
	}
	if snap.EmergencyStop {
		flags |= 1 << 1
	}
	if snap.SendDatetime {
		flags |= 1 << 2
	}
	buf.WriteByte(flags)
	buf.WriteByte(controlModeCodes[snap.ControlMode])
	buf.WriteByte(allianceCodes[snap.Alliance])

	var teamBytes [2]byte
	binary.BigEndian.PutUint16(teamBytes[:], uint16(snap.Team))
	buf.Write(teamBytes[:])

	buf.WriteByte(byte(len(snap.Joysticks)))
	for _, js := range snap.Joysticks {
		buf.WriteByte(byte(len(js.Axes)))
		for _, axis := range js.Axes {
			buf.WriteByte(byte(int8(axis * 127)))
		}
		buf.WriteByte(byte(len(js.Buttons)))
		packed := make([]byte, (len(js.Buttons)+7)/8)
		for i, pressed := range js.Buttons {
			if pressed {
				packed[i/8] |= 1 << uint(i%8)
			}
		}
		buf.Write(packed)
	}

	return buf.Bytes()
}

// BuildFMSPacket encodes a minimal field-assignment echo: alliance code
// and team number. A real field network would drive these from the
// match schedule; basicwire has no field-side counterpart, so it simply
// mirrors the core's own current state back out.
func (a *Adapter) BuildFMSPacket(snap adapter.Snapshot) []byte {
	var buf bytes.Buffer
	buf.WriteByte(allianceCodes[snap.Alliance])
	var teamBytes [2]byte
	binary.BigEndian.PutUint16(teamBytes[:], uint16(snap.Team))
	buf.Write(teamBytes[:])
	return buf.Bytes()
}

// ParseRobotPacket decodes the inbound telemetry packet:
//
//	byte 0: flags (bit0 robot_code, bit1 voltage_brownout, bit2 send_datetime_request)
//	byte 1: voltage digit (0-99)
//	byte 2: voltage decimal (0-99)
func (a *Adapter) ParseRobotPacket(data []byte, apply adapter.Setters) bool {
	if len(data) < 3 {
		return false
	}
	flags := data[0]
	apply.SetRobotCode(flags&(1<<0) != 0)
	apply.SetVoltageBrownout(flags&(1<<1) != 0)
	apply.SetSendDatetime(flags&(1<<2) != 0)
	apply.SetBatteryVoltage(strconv.Itoa(int(data[1])), strconv.Itoa(int(data[2])))
	return true
}

// ParseFMSPacket decodes the inbound field-authority packet. basicwire
// has no FMS-driven fields on the core today; it validates the frame
// shape and otherwise no-ops.
func (a *Adapter) ParseFMSPacket(data []byte, apply adapter.Setters) bool {
	return len(data) >= 3
}

func (a *Adapter) RequestRobotInformation() {}
func (a *Adapter) ResetHook()               {}

// AllianceName and ControlModeName are small decode-side helpers the
// debug console uses to render a raw code byte back to a label.
func AllianceName(code byte) string {
	if int(code) >= len(allianceNames) {
		return "Unknown"
	}
	return allianceNames[code]
}

func ControlModeName(code byte) string {
	if int(code) >= len(controlModeNames) {
		return "Unknown"
	}
	return controlModeNames[code]
}
