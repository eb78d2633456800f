package core

import (
	"fmt"

	"dspc/discovery"
)

// This file implements the Failing/Partial/Full state machine and the
// mutators it shares with the public API (spec §4.1). Every function
// here assumes it runs on the actor loop goroutine — callers from
// outside must go through enqueue.

func (c *ProtocolCore) transitionToPartial() {
	c.mu.Lock()
	c.commStatus = Partial
	c.mu.Unlock()
	c.publish(EventCommStatusChanged, Partial)
}

func (c *ProtocolCore) transitionToFull() {
	c.mu.Lock()
	c.commStatus = Full
	if c.controlMode == Invalid {
		c.controlMode = Teleop
	}
	enabled := c.enabled
	c.mu.Unlock()

	c.watchdog.SetTimeout(watchdogTimeoutFull)
	c.watchdog.Restart()

	c.publish(EventCommStatusChanged, Full)
	c.publish(EventControlModeChanged, c.ControlMode())
	// Re-emit enabled so downstream observers resync (spec §4.1).
	c.publish(EventEnabledChanged, enabled)

	c.adapter.RequestRobotInformation()
}

func (c *ProtocolCore) transitionToFailing() {
	c.watchdog.SetTimeout(watchdogTimeoutFailing)
	c.adapter.ResetHook()

	c.mu.Lock()
	c.commStatus = Failing
	c.voltageStr = "00.00"
	c.voltageFloat = 0
	c.robotCode = false
	c.radioConnected = false
	c.sendDatetime = false
	pinned := c.robotAddrPinned
	robotIPs := append([]string(nil), c.robotIPs...)
	c.mu.Unlock()

	c.publish(EventCommStatusChanged, Failing)
	c.publish(EventVoltageChanged, "00.00")
	c.publish(EventRobotCodeChanged, false)
	c.publish(EventRadioConnectedChanged, false)

	c.demoteEnabledIfNeeded()

	if !pinned {
		c.sock.RefreshIPs(robotIPs)
	}
}

// resetInternal is shared by the public Reset() and by the T+200ms
// initialization-ceremony step. It is idempotent: calling it from any
// state always leaves the core in Failing with its volatile fields
// cleared.
func (c *ProtocolCore) resetInternal() {
	c.mu.Lock()
	c.commStatus = Failing
	c.voltageStr = "00.00"
	c.voltageFloat = 0
	c.robotCode = false
	c.radioConnected = false
	c.sendDatetime = false
	pinned := c.robotAddrPinned
	team := c.team
	c.mu.Unlock()

	c.watchdog.SetTimeout(watchdogTimeoutFailing)
	c.watchdog.Restart()
	c.adapter.ResetHook()

	c.publish(EventCommStatusChanged, Failing)

	c.demoteEnabledIfNeeded()

	// Regenerate the candidate IP lists whenever there is no confirmed
	// (pinned) robot address, rather than just re-sweeping the existing
	// list (spec §3: IPs regenerate on reset with no confirmed address).
	if !pinned {
		c.regenerateIPs(team)
	}
}

// initializeInternal is the T+800ms ceremony step: it computes the
// estimated detection window, emits the three startup notices, and
// starts both cadence loops (spec §4.7).
func (c *ProtocolCore) initializeInternal() {
	c.mu.Lock()
	robotIPCount := len(c.robotIPs)
	radioIPCount := len(c.radioIPs)
	ifaceCount := c.interfaceCount
	c.mu.Unlock()

	windowSeconds := estimatedDetectionWindowSeconds(robotIPCount, int(watchdogTimeoutFailing.Milliseconds()), 1)

	banner := fmt.Sprintf("%s driver station link initializing", c.adapter.Name())
	windowNotice := notice(windowSeconds)
	summary := ipSummaryNotice(robotIPCount, radioIPCount, ifaceCount)

	c.logf("core: %s", banner)
	c.logf("core: %s", windowNotice)
	c.logf("core: %s", summary)

	c.publish(EventNotice, banner)
	c.publish(EventNotice, windowNotice)
	c.publish(EventNotice, summary)

	c.startCadenceLoops()
}

func (c *ProtocolCore) demoteEnabledIfNeeded() {
	c.mu.Lock()
	was := c.enabled
	if !c.robotCode && was {
		c.enabled = false
	}
	now := c.enabled
	c.mu.Unlock()

	if was && !now {
		c.publish(EventEnabledChanged, false)
	}
}

func (c *ProtocolCore) setTeamInternal(team int) {
	c.mu.Lock()
	changed := c.team != team
	c.team = team
	c.mu.Unlock()

	// Regenerate unconditionally: team 0 is both the zero value and a
	// legitimate "not yet configured" team, so an equality guard here
	// would skip seeding robot_ips/radio_ips on the very first call.
	c.regenerateIPs(team)
	if changed {
		c.publish(EventTeamChanged, team)
	}
}

func (c *ProtocolCore) regenerateIPs(team int) {
	res := discovery.Generate(team, c.adapter.ExtraRadioIPs(), c.adapter.ExtraRobotIPs())

	c.mu.Lock()
	c.robotIPs = res.RobotIPs
	c.radioIPs = res.RadioIPs
	c.interfaceCount = res.InterfaceCount
	pinned := c.robotAddrPinned
	c.mu.Unlock()

	if !pinned {
		c.sock.RefreshIPs(res.RobotIPs)
	}
}

func (c *ProtocolCore) setEnabledInternal(enabled bool) {
	c.mu.Lock()
	c.enabled = enabled
	c.mu.Unlock()
	c.publish(EventEnabledChanged, enabled)
}

func (c *ProtocolCore) setEmergencyStopInternal(stop bool) {
	c.mu.Lock()
	c.emergencyStop = stop
	if c.eStopClearTimer != nil {
		c.eStopClearTimer.Stop()
		c.eStopClearTimer = nil
	}
	c.mu.Unlock()

	c.publish(EventEmergencyStopChanged, stop)
	c.publish(EventEStopFired, stop)

	if stop {
		c.mu.Lock()
		c.eStopClearTimer = c.clk.AfterFunc(eStopClearAfter, func() {
			c.enqueue(func(c *ProtocolCore) { c.setEmergencyStopInternal(false) })
		})
		c.mu.Unlock()
	}
}

func (c *ProtocolCore) setControlModeInternal(mode ControlMode) {
	c.mu.RLock()
	stopped := c.emergencyStop
	c.mu.RUnlock()
	if stopped {
		return
	}

	c.mu.Lock()
	c.controlMode = mode
	c.mu.Unlock()
	c.publish(EventControlModeChanged, mode)
}
