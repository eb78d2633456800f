package httpapi

import (
	"net/http"
	"strings"

	"dspc/core"
	"dspc/httpapi/http_events"
)

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, snapshotResponse(s.core, s.trend, s.telem))
}

func (s *Server) handleSetTeam(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Team int `json:"team"`
	}
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	s.core.SetTeam(req.Team)
	s.telem.Record("team_changed", map[string]interface{}{"team": req.Team})
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSetEnabled(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	s.core.SetEnabled(req.Enabled)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSetEStop(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Stop bool `json:"stop"`
	}
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	s.core.SetEmergencyStop(req.Stop)
	s.telem.Record("e_stop", map[string]interface{}{"stop": req.Stop})
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSetControlMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"control_mode"`
	}
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	mode := core.ControlMode(req.Mode)
	switch mode {
	case core.Invalid, core.Teleop, core.Autonomous, core.Test:
	default:
		http.Error(w, "unknown control_mode", http.StatusBadRequest)
		return
	}
	s.core.SetControlMode(mode)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSetRobotAddress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Address string `json:"address"`
	}
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	s.core.SetRobotAddress(req.Address)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSSE upgrades the request to a Server-Sent Events stream, the same
// protocol as http_events.EventsClient's SSE framing. Event names to
// subscribe to up front are taken from ?events=a,b,c.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	sess := http_events.NewSession()
	client := s.events.RegisterClient(sess, w)

	if eventsParam := r.URL.Query().Get("events"); eventsParam != "" {
		for _, name := range strings.Split(eventsParam, ",") {
			client.SubscribeToEvent(strings.TrimSpace(name))
		}
	}

	<-r.Context().Done()
	s.events.UnregisterClient(sess)
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req http_events.SubscriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	client, ok := s.events.GetClient(req.Session)
	if !ok {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}
	for _, t := range req.EventTypes {
		if t != "" {
			client.SubscribeToEvent(t)
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "subscribed", "events": req.EventTypes})
}

func (s *Server) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	var req http_events.SubscriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	client, ok := s.events.GetClient(req.Session)
	if !ok {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}
	for _, t := range req.EventTypes {
		if t != "" {
			client.UnsubscribeFromEvent(t)
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "unsubscribed", "events": req.EventTypes})
}

func (s *Server) handleDiagnosticsPackets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, packetEntries(s.ring))
}
