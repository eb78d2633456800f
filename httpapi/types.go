// Package httpapi is the reference HTTP host for a ProtocolCore (spec
// §4.9): the "host process" of spec.md §6, exposing the core's getters
// and setters over HTTP for an operator console, plus a live SSE/WebSocket
// telemetry push. The core itself stays an embedded library — this
// package is just one way to drive it, same relationship the teacher's
// http_server has to robot_manager.
package httpapi

import (
	"dspc/core"
	"dspc/packetlog"
	"dspc/telemetry"
)

// StatusResponse is the full state snapshot returned by GET /status.
type StatusResponse struct {
	Team             int      `json:"team"`
	Alliance         string   `json:"alliance"`
	ControlMode      string   `json:"control_mode"`
	Enabled          bool     `json:"enabled"`
	EmergencyStop    bool     `json:"emergency_stop"`
	Operating        bool     `json:"operating"`
	RobotCode        bool     `json:"robot_code"`
	RadioConnected   bool     `json:"radio_connected"`
	VoltageBrownout  bool     `json:"voltage_brownout"`
	VoltageString    string   `json:"voltage_string"`
	VoltageFloat     float64  `json:"voltage_float"`
	CommStatus       string   `json:"comm_status"`
	SentFMSPackets   uint64   `json:"sent_fms_packets"`
	SentRobotPackets uint64   `json:"sent_robot_packets"`
	RobotIPs         []string `json:"robot_ips"`
	RadioIPs         []string `json:"radio_ips"`
	InterfaceCount   int      `json:"interface_count"`
	VoltageMean      float64  `json:"voltage_mean,omitempty"`
	VoltageStdDev    float64  `json:"voltage_stddev,omitempty"`
	TelemetryHealthy bool     `json:"telemetry_healthy"`
}

func snapshotResponse(c *core.ProtocolCore, trend *telemetry.VoltageTrend, tw *telemetry.Writer) StatusResponse {
	voltageStr, voltageFloat := c.Voltage()
	resp := StatusResponse{
		Team:             c.Team(),
		Alliance:         string(c.Alliance()),
		ControlMode:      string(c.ControlMode()),
		Enabled:          c.Enabled(),
		EmergencyStop:    c.EmergencyStop(),
		Operating:        c.Operating(),
		RobotCode:        c.RobotCode(),
		RadioConnected:   c.RadioConnected(),
		VoltageBrownout:  c.VoltageBrownout(),
		VoltageString:    voltageStr,
		VoltageFloat:     voltageFloat,
		CommStatus:       string(c.CommStatus()),
		SentFMSPackets:   c.SentFMSPackets(),
		SentRobotPackets: c.SentRobotPackets(),
		RobotIPs:         c.RobotIPs(),
		RadioIPs:         c.RadioIPs(),
		InterfaceCount:   c.InterfaceCount(),
		TelemetryHealthy: tw.IsHealthy(),
	}
	if trend != nil {
		resp.VoltageMean, resp.VoltageStdDev = trend.MeanStdDev()
	}
	return resp
}

// PacketEntry is one captured datagram as returned by
// GET /diagnostics/packets, decompressed for the caller's convenience.
type PacketEntry struct {
	At        string `json:"at"`
	Direction string `json:"direction"`
	Channel   string `json:"channel"`
	Length    int    `json:"length"`
	Data      []byte `json:"data"`
}

func packetEntries(ring *packetlog.Ring) []PacketEntry {
	if ring == nil {
		return nil
	}
	snap := ring.Snapshot()
	out := make([]PacketEntry, 0, len(snap))
	for _, e := range snap {
		data, err := e.Decompress()
		if err != nil {
			continue
		}
		out = append(out, PacketEntry{
			At:        e.At.Format("2006-01-02T15:04:05.000Z07:00"),
			Direction: string(e.Direction),
			Channel:   string(e.Channel),
			Length:    e.RawLen,
			Data:      data,
		})
	}
	return out
}
