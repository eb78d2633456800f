package basicwire

import (
	"testing"

	"dspc/adapter"
	"dspc/input"
)

type captureSetters struct {
	voltageDigit, voltageDecimal string
	robotCode, brownout, sendDT  bool
}

func (c *captureSetters) SetBatteryVoltage(digit, decimal string) {
	c.voltageDigit, c.voltageDecimal = digit, decimal
}
func (c *captureSetters) SetRobotCode(v bool)      { c.robotCode = v }
func (c *captureSetters) SetVoltageBrownout(v bool) { c.brownout = v }
func (c *captureSetters) SetSendDatetime(v bool)    { c.sendDT = v }

func TestBuildRobotPacketSetsEnabledFlag(t *testing.T) {
	a := New()
	snap := adapter.Snapshot{
		Team: 3794, Alliance: "Blue2", ControlMode: "Teleop",
		Enabled: true, EmergencyStop: false,
		Joysticks: []input.Joystick{
			{ID: 0, Axes: []float64{1, -1, 0.5}, Buttons: []bool{true, false, true}},
		},
	}
	data := a.BuildRobotPacket(snap)
	if len(data) == 0 {
		t.Fatal("expected non-empty robot packet")
	}
	if data[0]&(1<<0) == 0 {
		t.Fatal("expected enabled flag set")
	}
}

func TestParseRobotPacketDecodesVoltage(t *testing.T) {
	a := New()
	var c captureSetters
	ok := a.ParseRobotPacket([]byte{0b101, 12, 34}, &c)
	if !ok {
		t.Fatal("expected successful decode")
	}
	if !c.robotCode {
		t.Fatal("expected robot_code true")
	}
	if c.brownout {
		t.Fatal("expected brownout false")
	}
	if !c.sendDT {
		t.Fatal("expected send_datetime true")
	}
	if c.voltageDigit != "12" || c.voltageDecimal != "34" {
		t.Fatalf("expected voltage 12/34, got %s/%s", c.voltageDigit, c.voltageDecimal)
	}
}

func TestParseRobotPacketRejectsShortFrame(t *testing.T) {
	a := New()
	var c captureSetters
	if a.ParseRobotPacket([]byte{1, 2}, &c) {
		t.Fatal("expected short frame to be rejected")
	}
}

func TestRegisteredUnderBasicwireName(t *testing.T) {
	got, ok := adapter.New("basicwire")
	if !ok {
		t.Fatal("expected basicwire to be registered")
	}
	if got.Name() != "basicwire" {
		t.Fatalf("expected name basicwire, got %s", got.Name())
	}
}
