package core

import "time"

// startCadenceLoops arms the two independent one-shot chains described in
// spec §4.1. Each tick reschedules itself unconditionally before
// returning, so a slow emission never compresses the next interval, and
// the timers keep running even while operating is false (stop only
// silences the emission, it does not cancel the chain).
func (c *ProtocolCore) startCadenceLoops() {
	fmsPeriod := time.Second / time.Duration(c.adapter.FMSHz())
	robotPeriod := time.Second / time.Duration(c.adapter.RobotHz())

	c.armFMSTick(fmsPeriod)
	c.armRobotTick(robotPeriod)
}

func (c *ProtocolCore) armFMSTick(period time.Duration) {
	c.mu.Lock()
	c.fmsCadenceTimer = c.clk.AfterFunc(period, func() {
		c.enqueue(func(c *ProtocolCore) { c.fmsTick(period) })
	})
	c.mu.Unlock()
}

func (c *ProtocolCore) armRobotTick(period time.Duration) {
	c.mu.Lock()
	c.robotCadenceTimer = c.clk.AfterFunc(period, func() {
		c.enqueue(func(c *ProtocolCore) { c.robotTick(period) })
	})
	c.mu.Unlock()
}

func (c *ProtocolCore) fmsTick(period time.Duration) {
	if c.operating {
		c.mu.Lock()
		c.sentFMSPackets++
		c.mu.Unlock()

		snap := c.snapshotLocked()
		data := c.adapter.BuildFMSPacket(snap)
		c.sock.SendFMS(data)
		if c.observer != nil {
			c.observer("outbound", "fms", data)
		}
		c.publish(EventPacketSent, "fms")
	}
	c.armFMSTick(period)
}

func (c *ProtocolCore) robotTick(period time.Duration) {
	if c.operating {
		c.mu.Lock()
		c.sentRobotPkts++
		c.mu.Unlock()

		snap := c.snapshotLocked()
		data := c.adapter.BuildRobotPacket(snap)
		c.sock.SendRobot(data)
		c.sock.Advance()
		if c.observer != nil {
			c.observer("outbound", "robot", data)
		}
		c.publish(EventPacketSent, "robot")
	}
	c.armRobotTick(period)
}
