package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dspc/core"
	"dspc/eventbus"
	"dspc/httpapi/http_events"
	"dspc/logging"
	"dspc/packetlog"
	"dspc/telemetry"
)

// Server is the reference HTTP host for one ProtocolCore. Grounded on the
// teacher's http_server.HTTPServer_t — a thin struct wiring a chi router
// to the domain collaborators it exposes.
type Server struct {
	core    *core.ProtocolCore
	eb      eventbus.EventBus
	ring    *packetlog.Ring
	telem   *telemetry.Writer
	trend   *telemetry.VoltageTrend
	events  *http_events.Manager
	router  *chi.Mux
	srv     *http.Server
}

// New builds a Server around c. eb is the event bus c was constructed
// with (used for SSE/WebSocket fan-out); ring and tw may be nil to
// disable packet diagnostics / telemetry persistence respectively.
func New(c *core.ProtocolCore, eb eventbus.EventBus, ring *packetlog.Ring, tw *telemetry.Writer, trend *telemetry.VoltageTrend) *Server {
	s := &Server{
		core:   c,
		eb:     eb,
		ring:   ring,
		telem:  tw,
		trend:  trend,
		events: http_events.NewManager(eb),
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/status", s.handleStatus)
	s.router.Post("/team", s.handleSetTeam)
	s.router.Post("/enabled", s.handleSetEnabled)
	s.router.Post("/estop", s.handleSetEStop)
	s.router.Post("/control_mode", s.handleSetControlMode)
	s.router.Post("/robot_address", s.handleSetRobotAddress)
	s.router.Get("/events", s.handleSSE)
	s.router.Post("/events/subscribe", s.handleSubscribe)
	s.router.Post("/events/unsubscribe", s.handleUnsubscribe)
	s.router.Get("/ws", s.handleWebSocket)
	s.router.Get("/diagnostics/packets", s.handleDiagnosticsPackets)
}

// ListenAndServe starts the HTTP server on addr and blocks until ctx is
// canceled, at which point it shuts down gracefully. Grounded on the
// teacher's http_server.Start: a goroutine running ListenAndServe,
// selecting between a server error and ctx.Done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.srv = &http.Server{Addr: addr, Handler: s.router}

	serverErr := make(chan error, 1)
	go func() {
		logging.Print("httpapi: listening on %s", addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("httpapi: %w", err)
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logging.Print("httpapi: shutting down")
		return s.srv.Shutdown(context.Background())
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Print("httpapi: encode response failed: %v", err)
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
