package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"dspc/core"
	"dspc/eventbus"
	"dspc/logging"
)

// wsFrame is one JSON frame pushed per core event. Grounded on
// SPEC_FULL.md §4.9: "a direct fill-in of the teacher's own TODO" — the
// teacher's wsHandler (http_server/robot.go) upgrades the connection and
// does nothing further; this completes it by pushing one frame per
// packet_sent/state-change event instead of leaving the socket idle.
type wsFrame struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleWebSocket upgrades the connection and pushes every core event as
// a JSON frame until the client disconnects. There is no inbound command
// protocol over this socket — it is telemetry-out only, matching
// SPEC_FULL.md §4.9's routing table (mutation goes through the POST
// endpoints, not the socket).
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Print("httpapi: websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	frames := make(chan wsFrame, 64)
	sub := eventbus.NewSubscriber()
	handler := func(event eventbus.Event) {
		select {
		case frames <- wsFrame{Type: event.GetType(), Data: event.GetData()}:
		default:
			logging.Print("httpapi: websocket frame dropped, client too slow")
		}
	}
	for _, eventType := range wsPushedEventTypes {
		s.eb.Subscribe(eventType, sub, handler)
	}
	defer s.eb.Unsubscribe("", sub)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case frame := <-frames:
			payload, err := json.Marshal(frame)
			if err != nil {
				logging.Print("httpapi: websocket marshal failed: %v", err)
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

var wsPushedEventTypes = []string{
	core.EventTeamChanged, core.EventAllianceChanged, core.EventEnabledChanged,
	core.EventEmergencyStopChanged, core.EventEStopFired, core.EventControlModeChanged,
	core.EventCommStatusChanged, core.EventVoltageChanged, core.EventRobotCodeChanged,
	core.EventRadioConnectedChanged, core.EventPacketSent, core.EventNotice,
}
