package core

import "dspc/adapter"

// snapshotLocked builds the read-only view an adapter's encoders see.
// Only ever called from the actor loop goroutine.
func (c *ProtocolCore) snapshotLocked() adapter.Snapshot {
	c.mu.RLock()
	snap := adapter.Snapshot{
		Team:           c.team,
		Alliance:       string(c.alliance),
		ControlMode:    string(c.controlMode),
		Enabled:        c.enabled,
		EmergencyStop:  c.emergencyStop,
		BatteryVoltage: c.voltageFloat,
		SendDatetime:   c.sendDatetime,
	}
	c.mu.RUnlock()

	if c.agg != nil {
		snap.Joysticks = c.agg.Snapshot()
	}
	return snap
}

// coreSetters is the narrow adapter.Setters implementation handed to
// ParseFMSPacket/ParseRobotPacket. It always runs on the actor loop
// goroutine (decode happens inside an enqueued closure), so it writes
// fields directly under the core's lock rather than re-entering enqueue.
type coreSetters struct {
	c *ProtocolCore
}

func (s coreSetters) SetBatteryVoltage(digit, decimal string) {
	str, f := formatVoltage(digit, decimal)
	s.c.mu.Lock()
	s.c.voltageStr = str
	s.c.voltageFloat = f
	s.c.mu.Unlock()
	s.c.publish(EventVoltageChanged, str)
}

func (s coreSetters) SetRobotCode(code bool) {
	s.c.mu.Lock()
	was := s.c.robotCode
	s.c.robotCode = code
	s.c.mu.Unlock()

	if was != code {
		s.c.publish(EventRobotCodeChanged, code)
	}
	if was && !code {
		s.c.demoteEnabledIfNeeded()
	}
}

func (s coreSetters) SetVoltageBrownout(brownout bool) {
	s.c.mu.Lock()
	s.c.voltageBrownout = brownout
	s.c.mu.Unlock()
}

func (s coreSetters) SetSendDatetime(send bool) {
	s.c.mu.Lock()
	s.c.sendDatetime = send
	s.c.mu.Unlock()
}
